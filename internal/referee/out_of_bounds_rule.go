package referee

import (
	"github.com/utama-ssl/decision-core/internal/model"
	"github.com/utama-ssl/decision-core/internal/proximity"
)

// OutOfBoundsRule grants the opposing team a direct free kick when the
// ball leaves the field outside either goal mouth. Last-touch tracking
// runs on every tick regardless of command, since a touch can occur in
// the frame immediately before the ball crosses the line.
type OutOfBoundsRule struct {
	touchThreshold float64
	infieldOffset  float64

	hasTouch        bool
	lastTouchYellow bool
}

// NewOutOfBoundsRule constructs an OutOfBoundsRule. touchThreshold is the
// robot-to-ball distance (metres) counted as a touch; infieldOffset pulls
// the free-kick designated position back inside the boundary line.
func NewOutOfBoundsRule(touchThreshold, infieldOffset float64) *OutOfBoundsRule {
	return &OutOfBoundsRule{touchThreshold: touchThreshold, infieldOffset: infieldOffset}
}

// Check implements Rule.
func (r *OutOfBoundsRule) Check(frame model.GameFrame, geometry Geometry, currentCommand model.RefereeCommand) *model.RuleViolation {
	r.updateLastTouch(frame)

	if !activePlayCommand(currentCommand) {
		return nil
	}
	if frame.Ball == nil {
		return nil
	}

	bx, by := frame.Ball.Position.X, frame.Ball.Position.Y
	if geometry.IsInField(bx, by) {
		return nil
	}
	if geometry.IsInLeftGoal(bx, by) || geometry.IsInRightGoal(bx, by) {
		// GoalRule's territory; runs ahead of us in priority order.
		return nil
	}

	designatedX := clamp(bx, -geometry.HalfLength+r.infieldOffset, geometry.HalfLength-r.infieldOffset)
	designatedY := clamp(by, -geometry.HalfWidth+r.infieldOffset, geometry.HalfWidth-r.infieldOffset)

	// The team that did not touch it last is awarded the free kick.
	// Unknown last-toucher resolves to Yellow (spec's deterministic
	// tiebreak), not Blue.
	awardYellow := !r.lastTouchYellow
	if !r.hasTouch {
		awardYellow = true
	}

	awardedCommand := model.CommandDirectFreeBlue
	statusMessage := "Ball left the field; free kick Blue"
	if awardYellow {
		awardedCommand = model.CommandDirectFreeYellow
		statusMessage = "Ball left the field; free kick Yellow"
	}

	return &model.RuleViolation{
		RuleName:           "out_of_bounds",
		SuggestedCommand:   model.CommandStop,
		NextCommand:        cmdPtr(awardedCommand),
		StatusMessage:      statusMessage,
		DesignatedPosition: posPtr(designatedX, designatedY),
	}
}

// Reset is a no-op: last-touch state persists across rule firings of any
// kind, it is not a violation-local counter.
func (r *OutOfBoundsRule) Reset() {}

// updateLastTouch credits a friendly robot reporting has_ball first, and
// otherwise the robot closest to the ball within touchThreshold.
func (r *OutOfBoundsRule) updateLastTouch(frame model.GameFrame) {
	for _, robot := range frame.FriendlyRobots {
		if robot.HasBall {
			r.lastTouchYellow = frame.MyTeamIsYellow
			r.hasTouch = true
			return
		}
	}
	if frame.Ball == nil {
		return
	}
	lookup := proximity.Build(frame)
	key, dist, ok := lookup.ClosestToBallAny()
	if !ok || dist > r.touchThreshold {
		return
	}
	touchedFriendly := key.Team == proximity.TeamFriendly
	r.lastTouchYellow = touchedFriendly == frame.MyTeamIsYellow
	r.hasTouch = true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
