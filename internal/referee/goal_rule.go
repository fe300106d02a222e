package referee

import (
	"math"

	"github.com/utama-ssl/decision-core/internal/model"
)

// GoalRule detects the ball crossing into a goal mouth during active
// play, with a cooldown to suppress re-detecting the same goal across
// consecutive frames.
type GoalRule struct {
	cooldownSeconds float64
	lastGoalTime    float64
}

// NewGoalRule constructs a GoalRule with the given re-detection cooldown.
func NewGoalRule(cooldownSeconds float64) *GoalRule {
	return &GoalRule{cooldownSeconds: cooldownSeconds, lastGoalTime: math.Inf(-1)}
}

// Check implements Rule.
func (r *GoalRule) Check(frame model.GameFrame, geometry Geometry, currentCommand model.RefereeCommand) *model.RuleViolation {
	if !activePlayCommand(currentCommand) {
		return nil
	}
	if frame.Ball == nil {
		return nil
	}

	currentTime := frame.Timestamp
	if currentTime-r.lastGoalTime < r.cooldownSeconds {
		return nil
	}

	bx, by := frame.Ball.Position.X, frame.Ball.Position.Y
	// yellow-is-right iff my_team_is_right == my_team_is_yellow (both
	// flags describe the same frame's perspective).
	yellowIsRight := frame.MyTeamIsRight == frame.MyTeamIsYellow

	if geometry.IsInRightGoal(bx, by) {
		r.lastGoalTime = currentTime
		if yellowIsRight {
			// Yellow conceded -> Blue scored -> Yellow kicks off.
			return &model.RuleViolation{
				RuleName:           "goal",
				SuggestedCommand:   model.CommandStop,
				NextCommand:        cmdPtr(model.CommandPrepareKickoffYellow),
				StatusMessage:      "Goal by Blue",
				DesignatedPosition: posPtr(0, 0),
			}
		}
		// Blue conceded -> Yellow scored -> Blue kicks off.
		return &model.RuleViolation{
			RuleName:           "goal",
			SuggestedCommand:   model.CommandStop,
			NextCommand:        cmdPtr(model.CommandPrepareKickoffBlue),
			StatusMessage:      "Goal by Yellow",
			DesignatedPosition: posPtr(0, 0),
		}
	}

	if geometry.IsInLeftGoal(bx, by) {
		r.lastGoalTime = currentTime
		if yellowIsRight {
			// Blue conceded -> Yellow scored -> Blue kicks off.
			return &model.RuleViolation{
				RuleName:           "goal",
				SuggestedCommand:   model.CommandStop,
				NextCommand:        cmdPtr(model.CommandPrepareKickoffBlue),
				StatusMessage:      "Goal by Yellow",
				DesignatedPosition: posPtr(0, 0),
			}
		}
		// Yellow conceded -> Blue scored -> Yellow kicks off.
		return &model.RuleViolation{
			RuleName:           "goal",
			SuggestedCommand:   model.CommandStop,
			NextCommand:        cmdPtr(model.CommandPrepareKickoffYellow),
			StatusMessage:      "Goal by Blue",
			DesignatedPosition: posPtr(0, 0),
		}
	}

	return nil
}

// Reset keeps lastGoalTime across resets — the cooldown must survive a
// transition triggered by any rule, not just this one.
func (r *GoalRule) Reset() {}
