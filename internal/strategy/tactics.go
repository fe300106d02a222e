package strategy

import (
	"github.com/utama-ssl/decision-core/internal/behaviortree"
	"github.com/utama-ssl/decision-core/internal/model"
)

// Tactic names written into Blackboard.Scratch.Tactic, read by leaves
// deciding whether to chase the ball or hold position.
const (
	TacticHalt   = "halt"
	TacticHold   = "hold"
	TacticAttack = "attack"
)

// SelectTactic derives the current tactic from the referee command: HALT
// stops everything, STOP/BALL_PLACEMENT holds formation, everything else
// plays on.
func SelectTactic(frame model.GameFrame, bb *behaviortree.Blackboard) behaviortree.Status {
	tactic := TacticAttack
	if frame.Referee != nil {
		switch frame.Referee.Command {
		case model.CommandHalt:
			tactic = TacticHalt
		case model.CommandStop, model.CommandBallPlacementYellow, model.CommandBallPlacementBlue:
			tactic = TacticHold
		}
	}
	bb.Scratch.Tactic = tactic
	return behaviortree.Success
}
