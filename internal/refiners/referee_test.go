package refiners

import (
	"testing"

	"github.com/utama-ssl/decision-core/internal/logging"
	"github.com/utama-ssl/decision-core/internal/model"
)

func TestRefereeRefiner_DedupesIdenticalSnapshots(t *testing.T) {
	r := NewRefereeRefiner(logging.Noop())
	frame := model.NewGameFrame(0, true, false)

	data := model.RefereeData{Command: model.CommandStop, CommandTimestamp: 1.0, Stage: model.StageNormalFirstHalf}

	r.Refine(frame, data)
	data.TimeReceived = 5.0 // volatile field, must not defeat dedup
	r.Refine(frame, data)

	if len(r.History()) != 1 {
		t.Fatalf("expected deduped history of length 1, got %d", len(r.History()))
	}
	if !r.IsStop() {
		t.Fatalf("expected IsStop() true")
	}
}

func TestRefereeRefiner_RecordsOnCommandChange(t *testing.T) {
	r := NewRefereeRefiner(logging.Noop())
	frame := model.NewGameFrame(0, true, false)

	r.Refine(frame, model.RefereeData{Command: model.CommandHalt})
	r.Refine(frame, model.RefereeData{Command: model.CommandForceStart})

	history := r.History()
	if len(history) != 2 {
		t.Fatalf("expected 2 distinct snapshots, got %d", len(history))
	}
	if !r.IsForceStart() {
		t.Fatalf("expected IsForceStart() true after the second snapshot")
	}
}

func TestRefereeRefiner_AttachesRefereeToFrame(t *testing.T) {
	r := NewRefereeRefiner(logging.Noop())
	frame := model.NewGameFrame(0, true, false)

	out := r.Refine(frame, model.RefereeData{Command: model.CommandBallPlacementYellow})

	if out.Referee == nil || out.Referee.Command != model.CommandBallPlacementYellow {
		t.Fatalf("expected frame.Referee to carry the snapshot")
	}
	if !r.IsBallPlacement() {
		t.Fatalf("expected IsBallPlacement() true")
	}
}
