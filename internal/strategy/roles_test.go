package strategy

import (
	"testing"

	"github.com/utama-ssl/decision-core/internal/behaviortree"
	"github.com/utama-ssl/decision-core/internal/model"
	"github.com/utama-ssl/decision-core/internal/vecmath"
)

func TestAssignRoles_StrikerIsClosestToBall(t *testing.T) {
	bb := behaviortree.NewBlackboard(behaviortree.NamespaceMy)
	frame := model.NewGameFrame(0, true, false)
	frame.Ball = &model.Ball{Position: vecmath.NewVector3D(1, 0, 0)}
	frame.FriendlyRobots[1] = model.Robot{ID: 1, Position: vecmath.NewVector2D(0, 0)}
	frame.FriendlyRobots[2] = model.Robot{ID: 2, Position: vecmath.NewVector2D(0.9, 0)}
	frame.FriendlyRobots[3] = model.Robot{ID: 3, Position: vecmath.NewVector2D(5, 5)}

	status := AssignRoles(frame, bb)

	if status != behaviortree.Success {
		t.Fatalf("expected SUCCESS, got %v", status)
	}
	if bb.RoleMap[1] != behaviortree.RoleGoalkeeper {
		t.Fatalf("expected lowest id to be goalkeeper, got %v", bb.RoleMap[1])
	}
	if bb.RoleMap[2] != behaviortree.RoleStriker {
		t.Fatalf("expected robot 2 (closest to ball) to be striker, got %v", bb.RoleMap[2])
	}
	if bb.RoleMap[3] != behaviortree.RoleDefender {
		t.Fatalf("expected remaining robot to get a non-striker role, got %v", bb.RoleMap[3])
	}
}

func TestAssignRoles_EmptyRosterFails(t *testing.T) {
	bb := behaviortree.NewBlackboard(behaviortree.NamespaceMy)
	frame := model.NewGameFrame(0, true, false)

	if status := AssignRoles(frame, bb); status != behaviortree.Failure {
		t.Fatalf("expected FAILURE for empty roster, got %v", status)
	}
}

func TestAssignRoles_StaleRoleMapEntryIsDropped(t *testing.T) {
	bb := behaviortree.NewBlackboard(behaviortree.NamespaceMy)
	bb.RoleMap[9] = behaviortree.RoleStriker

	frame := model.NewGameFrame(0, true, false)
	frame.FriendlyRobots[1] = model.Robot{ID: 1}

	AssignRoles(frame, bb)

	if _, ok := bb.RoleMap[9]; ok {
		t.Fatalf("expected stale role map entry for departed robot to be dropped")
	}
}
