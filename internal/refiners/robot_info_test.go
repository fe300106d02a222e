package refiners

import (
	"testing"

	"github.com/utama-ssl/decision-core/internal/logging"
	"github.com/utama-ssl/decision-core/internal/model"
	"github.com/utama-ssl/decision-core/internal/vecmath"
)

func TestRobotInfoRefiner_AppliesHasBall(t *testing.T) {
	r := NewRobotInfoRefiner(logging.Noop())
	frame := model.NewGameFrame(1.0, true, false)
	frame.FriendlyRobots[3] = model.Robot{ID: 3, Position: vecmath.NewVector2D(0, 0)}

	out := r.Refine(frame, []model.RobotResponse{{ID: 3, HasBall: true}})

	if !out.FriendlyRobots[3].HasBall {
		t.Fatalf("expected robot 3 to have HasBall=true")
	}
}

func TestRobotInfoRefiner_UnknownIDIgnored(t *testing.T) {
	r := NewRobotInfoRefiner(logging.Noop())
	frame := model.NewGameFrame(1.0, true, false)
	frame.FriendlyRobots[3] = model.Robot{ID: 3}

	out := r.Refine(frame, []model.RobotResponse{{ID: 99, HasBall: true}})

	if len(out.FriendlyRobots) != 1 {
		t.Fatalf("expected no robots added for unknown id")
	}
	if out.FriendlyRobots[3].HasBall {
		t.Fatalf("robot 3 should be unaffected by an unrelated response")
	}
}

func TestRobotInfoRefiner_NoResponsesReturnsFrameUnchanged(t *testing.T) {
	r := NewRobotInfoRefiner(logging.Noop())
	frame := model.NewGameFrame(1.0, true, false)
	frame.FriendlyRobots[3] = model.Robot{ID: 3}

	out := r.Refine(frame, nil)

	if out.FriendlyRobots[3].HasBall {
		t.Fatalf("expected unchanged frame")
	}
}
