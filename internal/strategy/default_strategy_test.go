package strategy

import (
	"testing"

	"github.com/utama-ssl/decision-core/internal/behaviortree"
	"github.com/utama-ssl/decision-core/internal/model"
	"github.com/utama-ssl/decision-core/internal/motionplan"
	"github.com/utama-ssl/decision-core/internal/referee"
	"github.com/utama-ssl/decision-core/internal/vecmath"
)

type stubMotionController struct{}

func (stubMotionController) PathTo(frame model.GameFrame, friendlyRobotID uint8, target vecmath.Vector2D, obstacles []motionplan.ObstacleRegion) motionplan.PlanResult {
	return motionplan.PlanResult{Velocity: vecmath.NewVector2D(1, 0), Score: 1}
}

func newTestGame() *model.PresentFutureGame {
	g := model.NewPresentFutureGame(model.DefaultHistoryCapacity)
	frame := model.NewGameFrame(0, true, false)
	frame.Ball = &model.Ball{Position: vecmath.NewVector3D(1, 0, 0)}
	frame.FriendlyRobots[0] = model.Robot{ID: 0, Position: vecmath.NewVector2D(-4, 0)}
	frame.FriendlyRobots[1] = model.Robot{ID: 1, Position: vecmath.NewVector2D(0, 0)}
	g.Push(frame)
	return g
}

func TestDefaultStrategy_TickAssignsRolesAndWritesCommands(t *testing.T) {
	s := NewDefaultStrategy(behaviortree.NamespaceMy, stubMotionController{}, referee.StandardDivisionB())

	if err := s.Tick(newTestGame()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bb := s.Blackboard()
	if len(bb.RoleMap) != 2 {
		t.Fatalf("expected roles assigned to both robots, got %d", len(bb.RoleMap))
	}
	if _, ok := bb.Command(1); !ok {
		t.Fatalf("expected robot 1 to receive a written command")
	}
}

func TestDefaultStrategy_HaltTacticWritesNoCommands(t *testing.T) {
	s := NewDefaultStrategy(behaviortree.NamespaceMy, stubMotionController{}, referee.StandardDivisionB())

	game := newTestGame()
	game.Current.Referee = &model.RefereeData{Command: model.CommandHalt}

	if err := s.Tick(game); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Blackboard().CmdMap) != 0 {
		t.Fatalf("expected no commands written during HALT, got %d", len(s.Blackboard().CmdMap))
	}
}

func TestDefaultStrategy_AssertExpectedRobotsRejectsOutOfRange(t *testing.T) {
	s := NewDefaultStrategy(behaviortree.NamespaceMy, stubMotionController{}, referee.StandardDivisionB())
	if err := s.AssertExpectedRobots(0, 6); err == nil {
		t.Fatalf("expected error for 0 friendly robots")
	}
	if err := s.AssertExpectedRobots(6, 6); err != nil {
		t.Fatalf("unexpected error for valid roster: %v", err)
	}
}
