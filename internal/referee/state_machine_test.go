package referee

import (
	"testing"

	"github.com/utama-ssl/decision-core/internal/model"
)

func TestSetCommand_AdvancesPreStageOnStartCommand(t *testing.T) {
	sm := NewGameStateMachine("test", "Blue", "Yellow", 0.3, false, 2.0)
	if sm.Stage() != model.StageNormalFirstHalfPre {
		t.Fatalf("expected to start in StageNormalFirstHalfPre, got %v", sm.Stage())
	}

	sm.SetCommand(model.CommandNormalStart, 0)

	if sm.Stage() != model.StageNormalFirstHalf {
		t.Fatalf("expected NORMAL_START to advance the pre stage, got %v", sm.Stage())
	}
}

func TestSetCommand_NonStartCommandLeavesStageUnchanged(t *testing.T) {
	sm := NewGameStateMachine("test", "Blue", "Yellow", 0.3, false, 2.0)

	sm.SetCommand(model.CommandHalt, 0)

	if sm.Stage() != model.StageNormalFirstHalfPre {
		t.Fatalf("expected HALT to leave the stage untouched, got %v", sm.Stage())
	}
}

func TestSetCommand_StartCommandOutsidePreStageDoesNotAdvance(t *testing.T) {
	sm := NewGameStateMachine("test", "Blue", "Yellow", 0.3, false, 2.0)
	sm.SetCommand(model.CommandNormalStart, 0) // NormalFirstHalfPre -> NormalFirstHalf

	sm.SetCommand(model.CommandForceStart, 1)

	if sm.Stage() != model.StageNormalFirstHalf {
		t.Fatalf("expected stage to hold at StageNormalFirstHalf, got %v", sm.Stage())
	}
}
