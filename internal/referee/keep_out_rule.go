package referee

import "github.com/utama-ssl/decision-core/internal/model"

// KeepOutRule enforces the minimum distance robots must keep from the
// ball during stoppages and restarts. The team taking the restart (if
// any) is exempt; during STOP neither team is exempt. A violation must
// persist for persistenceFrames consecutive ticks before it fires, to
// absorb single-frame vision noise.
type KeepOutRule struct {
	radiusMeters      float64
	persistenceFrames int

	violationStreak int
}

// NewKeepOutRule constructs a KeepOutRule.
func NewKeepOutRule(radiusMeters float64, persistenceFrames int) *KeepOutRule {
	return &KeepOutRule{radiusMeters: radiusMeters, persistenceFrames: persistenceFrames}
}

// Check implements Rule.
func (r *KeepOutRule) Check(frame model.GameFrame, geometry Geometry, currentCommand model.RefereeCommand) *model.RuleViolation {
	if frame.Ball == nil || activePlayCommand(currentCommand) {
		r.violationStreak = 0
		return nil
	}

	ballPos := frame.Ball.Position.To2D()
	kickingYellow, hasKicker := kickingColorIsYellow(currentCommand)

	violates := func(robots map[uint8]model.Robot, teamIsYellow bool) bool {
		if hasKicker && teamIsYellow == kickingYellow {
			return false
		}
		for _, robot := range robots {
			if robot.Position.DistanceTo(ballPos) < r.radiusMeters {
				return true
			}
		}
		return false
	}

	myTeamYellow := frame.MyTeamIsYellow
	if !violates(frame.FriendlyRobots, myTeamYellow) && !violates(frame.EnemyRobots, !myTeamYellow) {
		r.violationStreak = 0
		return nil
	}

	r.violationStreak++
	if r.violationStreak < r.persistenceFrames {
		return nil
	}

	// The free kick returns to the team that was taking it (yellow if
	// the stoppage itself, STOP, had no kicker of its own).
	nextYellow := kickingYellow
	if !hasKicker {
		nextYellow = true
	}
	nextCommand := model.CommandDirectFreeBlue
	if nextYellow {
		nextCommand = model.CommandDirectFreeYellow
	}

	return &model.RuleViolation{
		RuleName:         "keep_out",
		SuggestedCommand: model.CommandStop,
		NextCommand:      cmdPtr(nextCommand),
		StatusMessage:    "Robot violated keep-out distance from the ball",
	}
}

// Reset clears the persistence counter, called whenever any rule fires.
func (r *KeepOutRule) Reset() {
	r.violationStreak = 0
}

// kickingColorIsYellow reports which color, if any, is taking the
// current restart and is therefore exempt from the keep-out radius.
func kickingColorIsYellow(c model.RefereeCommand) (isYellow bool, hasKicker bool) {
	switch c {
	case model.CommandPrepareKickoffYellow, model.CommandPreparePenaltyYellow,
		model.CommandDirectFreeYellow, model.CommandBallPlacementYellow:
		return true, true
	case model.CommandPrepareKickoffBlue, model.CommandPreparePenaltyBlue,
		model.CommandDirectFreeBlue, model.CommandBallPlacementBlue:
		return false, true
	default:
		return false, false
	}
}
