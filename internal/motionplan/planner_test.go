package motionplan

import (
	"math"
	"testing"

	"github.com/utama-ssl/decision-core/internal/model"
	"github.com/utama-ssl/decision-core/internal/vecmath"
)

func TestDynamicWindowPlanner_TargetReached(t *testing.T) {
	planner := NewDynamicWindowPlanner()
	frame := model.NewGameFrame(0, true, true)
	frame.FriendlyRobots[0] = model.Robot{ID: 0, IsFriendly: true, Position: vecmath.NewVector2D(0, 0)}

	target := vecmath.NewVector2D(0.1, 0)
	result := planner.PathTo(frame, 0, target, nil)

	if !math.IsInf(result.Score, 1) {
		t.Fatalf("expected +Inf score when already at target, got %v", result.Score)
	}
	wantVel := target.DivScalar(SimulatedTimestep)
	if math.Abs(result.Velocity.X-wantVel.X) > 1e-9 || math.Abs(result.Velocity.Y-wantVel.Y) > 1e-9 {
		t.Fatalf("expected velocity %+v, got %+v", wantVel, result.Velocity)
	}
}

func TestDynamicWindowPlanner_ClearPath(t *testing.T) {
	planner := NewDynamicWindowPlanner()
	frame := model.NewGameFrame(0, true, true)
	frame.FriendlyRobots[0] = model.Robot{ID: 0, IsFriendly: true, Position: vecmath.NewVector2D(0, 0)}

	target := vecmath.NewVector2D(1.0, 0.0)
	result := planner.PathTo(frame, 0, target, nil)

	if result.Velocity.X <= 0 {
		t.Fatalf("expected positive x-component, got %+v", result.Velocity)
	}
	angle := result.Velocity.AngleBetween(vecmath.NewVector2D(1, 0))
	if angle >= math.Pi/NDirections {
		t.Fatalf("expected angle to (1,0) under pi/N, got %v", angle)
	}
}

func TestDynamicWindowPlanner_ObstacleBlock(t *testing.T) {
	planner := NewDynamicWindowPlanner()
	frame := model.NewGameFrame(0, true, true)
	frame.FriendlyRobots[0] = model.Robot{ID: 0, IsFriendly: true, Position: vecmath.NewVector2D(0, 0)}
	frame.EnemyRobots[0] = model.Robot{ID: 0, Position: vecmath.NewVector2D(0.3, 0)}

	target := vecmath.NewVector2D(1.0, 0.0)
	result := planner.PathTo(frame, 0, target, nil)

	if math.Abs(result.Velocity.Y) < 1e-6 {
		t.Fatalf("expected the robot to steer around the obstacle (non-trivial y), got %+v", result.Velocity)
	}
	if math.IsInf(result.Score, 0) {
		t.Fatalf("expected a finite score, got %v", result.Score)
	}
}

func TestAxisAlignedRectangle_DistanceToSegmentZeroWhenCrossing(t *testing.T) {
	rect := AxisAlignedRectangle{MinX: -1, MaxX: 1, MinY: -1, MaxY: 1}
	if d := rect.DistanceToSegment(vecmath.NewVector2D(-2, 0), vecmath.NewVector2D(2, 0)); d != 0 {
		t.Fatalf("expected zero distance for a crossing segment, got %v", d)
	}
}

func TestClosestPointExit_OutsideBuffer(t *testing.T) {
	rect := AxisAlignedRectangle{MinX: 0, MaxX: 1, MinY: 0, MaxY: 1}
	strategy := ClosestPointExit{}
	_, ok := strategy.GetExitPoint(vecmath.NewVector2D(5, 5), []ObstacleRegion{{Rect: rect}})
	if ok {
		t.Fatal("expected no exit point needed when robot is far from the obstacle")
	}
}

func TestClosestPointExit_InsideObstacle(t *testing.T) {
	rect := AxisAlignedRectangle{MinX: 0, MaxX: 1, MinY: 0, MaxY: 1}
	strategy := ClosestPointExit{}
	exitPoint, ok := strategy.GetExitPoint(vecmath.NewVector2D(0.5, 0.5), []ObstacleRegion{{Rect: rect}})
	if !ok {
		t.Fatal("expected an exit point when the robot is inside the obstacle")
	}
	if rect.Contains(exitPoint) {
		t.Fatalf("expected exit point outside the obstacle, got %+v", exitPoint)
	}
}
