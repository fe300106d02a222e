package referee

import (
	"testing"

	"github.com/utama-ssl/decision-core/internal/model"
	"github.com/utama-ssl/decision-core/internal/vecmath"
)

func newTestReferee() *CustomReferee {
	sm := NewGameStateMachine("test", "Blue", "Yellow", 0.3, false, 2.0)
	sm.SetCommand(model.CommandForceStart, 0)
	geometry := StandardDivisionB()
	return NewCustomReferee(
		geometry,
		sm,
		NewGoalRule(1.0),
		NewOutOfBoundsRule(0.15, 0.1),
		NewDefenseAreaRule(1, true),
		NewKeepOutRule(0.5, 30),
	)
}

func TestCustomReferee_GoalDetectedAndScored(t *testing.T) {
	ref := newTestReferee()
	frame := model.NewGameFrame(10.0, true, false) // my team yellow, plays left; right goal is blue's
	ball := model.Ball{Position: vecmath.NewVector3D(5.0, 0, 0)}
	frame.Ball = &ball

	data := ref.Step(frame, 10.0, 600)
	if data.Command != model.CommandStop {
		t.Fatalf("expected STOP after goal, got %v", data.Command)
	}
	if data.NextCommand == nil || *data.NextCommand != model.CommandPrepareKickoffBlue {
		t.Fatalf("expected next command PREPARE_KICKOFF_BLUE, got %+v", data.NextCommand)
	}
	if data.YellowTeam.Score != 1 {
		t.Fatalf("expected Yellow to have scored, got %+v", data.YellowTeam)
	}
}

func TestCustomReferee_CooldownSuppressesRefire(t *testing.T) {
	ref := newTestReferee()
	frame := model.NewGameFrame(10.0, true, false)
	ball := model.Ball{Position: vecmath.NewVector3D(5.0, 0, 0)}
	frame.Ball = &ball

	first := ref.Step(frame, 10.0, 600)
	second := ref.Step(frame, 10.1, 600)

	if first.CommandCounter != second.CommandCounter {
		t.Fatalf("expected command counter to hold steady inside the cooldown window, got %d -> %d",
			first.CommandCounter, second.CommandCounter)
	}
}

func TestCustomReferee_NoViolationDuringPlay(t *testing.T) {
	ref := newTestReferee()
	frame := model.NewGameFrame(10.0, true, false)
	ball := model.Ball{Position: vecmath.NewVector3D(0, 0, 0)}
	frame.Ball = &ball
	frame.FriendlyRobots[0] = model.Robot{ID: 0, IsFriendly: true, Position: vecmath.NewVector2D(-1, 0)}

	data := ref.Step(frame, 10.0, 600)
	if data.Command != model.CommandForceStart {
		t.Fatalf("expected command to remain FORCE_START, got %v", data.Command)
	}
}
