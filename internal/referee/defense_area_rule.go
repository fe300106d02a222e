package referee

import "github.com/utama-ssl/decision-core/internal/model"

// DefenseAreaRule enforces the two defense-area constraints: no more than
// maxDefenders of a team's own robots may occupy its own defense area,
// and (when attackerInfringement is enabled) an opponent may not enter
// the defense area it does not defend.
type DefenseAreaRule struct {
	maxDefenders         int
	attackerInfringement bool
}

// NewDefenseAreaRule constructs a DefenseAreaRule.
func NewDefenseAreaRule(maxDefenders int, attackerInfringement bool) *DefenseAreaRule {
	return &DefenseAreaRule{maxDefenders: maxDefenders, attackerInfringement: attackerInfringement}
}

// Check implements Rule.
func (r *DefenseAreaRule) Check(frame model.GameFrame, geometry Geometry, currentCommand model.RefereeCommand) *model.RuleViolation {
	if !activePlayCommand(currentCommand) {
		return nil
	}

	myOwnArea := geometry.IsInLeftDefenseArea
	if frame.MyTeamIsRight {
		myOwnArea = geometry.IsInRightDefenseArea
	}

	myColor := model.CommandDirectFreeBlue
	theirColor := model.CommandDirectFreeYellow
	if frame.MyTeamIsYellow {
		myColor, theirColor = model.CommandDirectFreeYellow, model.CommandDirectFreeBlue
	}

	myDefenderCount := 0
	for _, robot := range frame.FriendlyRobots {
		if myOwnArea(robot.Position.X, robot.Position.Y) {
			myDefenderCount++
		}
	}
	if myDefenderCount > r.maxDefenders {
		return &model.RuleViolation{
			RuleName:         "defense_area",
			SuggestedCommand: model.CommandStop,
			NextCommand:      cmdPtr(theirColor),
			StatusMessage:    "Too many defenders in own defense area",
		}
	}

	if !r.attackerInfringement {
		return nil
	}

	for _, robot := range frame.EnemyRobots {
		if myOwnArea(robot.Position.X, robot.Position.Y) {
			return &model.RuleViolation{
				RuleName:         "defense_area",
				SuggestedCommand: model.CommandStop,
				NextCommand:      cmdPtr(myColor),
				StatusMessage:    "Attacker entered defense area it does not defend",
			}
		}
	}

	return nil
}

// Reset is a no-op: DefenseAreaRule is stateless between ticks.
func (r *DefenseAreaRule) Reset() {}
