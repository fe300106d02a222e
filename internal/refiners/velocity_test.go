package refiners

import (
	"testing"

	"github.com/utama-ssl/decision-core/internal/logging"
	"github.com/utama-ssl/decision-core/internal/model"
	"github.com/utama-ssl/decision-core/internal/vecmath"
)

func TestVelocityRefiner_BallVelocityAndAcceleration(t *testing.T) {
	game := model.NewPresentFutureGame(model.DefaultHistoryCapacity)
	for tick := 0; tick <= 15; tick++ {
		f := model.NewGameFrame(float64(tick), true, false)
		f.Ball = &model.Ball{
			Position: vecmath.NewVector3D(float64(tick), 0, 0),
			Velocity: vecmath.NewVector3D(float64(tick), 0, 0),
		}
		game.Push(f)
	}

	vr := NewVelocityRefiner(logging.Noop())
	incoming := model.NewGameFrame(16, true, false)
	incoming.Ball = &model.Ball{Position: vecmath.NewVector3D(16, 0, 0)}

	out := vr.Refine(game, incoming)

	if got := out.Ball.Velocity.X; got != 1 {
		t.Fatalf("expected ball velocity.X == 1, got %v", got)
	}
	if got := out.Ball.Acceleration.X; got < 0.999 || got > 1.001 {
		t.Fatalf("expected ball acceleration.X ~= 1, got %v", got)
	}
}

func TestVelocityRefiner_InsufficientHistoryYieldsZeroAcceleration(t *testing.T) {
	game := model.NewPresentFutureGame(model.DefaultHistoryCapacity)

	f0 := model.NewGameFrame(0, true, false)
	f0.Ball = &model.Ball{Position: vecmath.NewVector3D(0, 0, 0)}
	game.Push(f0)

	f1 := model.NewGameFrame(1, true, false)
	f1.Ball = &model.Ball{Position: vecmath.NewVector3D(1, 0, 0)}
	game.Push(f1)

	vr := NewVelocityRefiner(logging.Noop())
	incoming := model.NewGameFrame(2, true, false)
	incoming.Ball = &model.Ball{Position: vecmath.NewVector3D(3, 0, 0)}

	out := vr.Refine(game, incoming)

	if got := out.Ball.Velocity.X; got != 2 {
		t.Fatalf("expected ball velocity.X == 2, got %v", got)
	}
	if out.Ball.Acceleration != (vecmath.Vector3D{}) {
		t.Fatalf("expected zero acceleration with insufficient history, got %v", out.Ball.Acceleration)
	}
}

func TestVelocityRefiner_RobotVelocityFiniteDifference(t *testing.T) {
	game := model.NewPresentFutureGame(model.DefaultHistoryCapacity)

	f0 := model.NewGameFrame(0, true, false)
	f0.FriendlyRobots[1] = model.Robot{ID: 1, Position: vecmath.NewVector2D(0, 0)}
	game.Push(f0)

	f1 := model.NewGameFrame(1, true, false)
	f1.FriendlyRobots[1] = model.Robot{ID: 1, Position: vecmath.NewVector2D(0, 0)}
	game.Push(f1)

	vr := NewVelocityRefiner(logging.Noop())
	incoming := model.NewGameFrame(2, true, false)
	incoming.FriendlyRobots[1] = model.Robot{ID: 1, Position: vecmath.NewVector2D(2, 0)}

	out := vr.Refine(game, incoming)

	robot := out.FriendlyRobots[1]
	if robot.Velocity.X != 2 {
		t.Fatalf("expected robot velocity.X == 2, got %v", robot.Velocity.X)
	}
}
