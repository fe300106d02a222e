package strategy

import (
	"fmt"
	"math"

	"github.com/utama-ssl/decision-core/internal/behaviortree"
	"github.com/utama-ssl/decision-core/internal/model"
	"github.com/utama-ssl/decision-core/internal/referee"
	"github.com/utama-ssl/decision-core/internal/vecmath"
)

// Strategy is the contract the strategy runner drives once per tick
// (spec.md §4.5 step 6): own a blackboard and a behavior tree, and be
// able to validate the squad size it was built for.
type Strategy interface {
	Blackboard() *behaviortree.Blackboard
	Tick(game *model.PresentFutureGame) error
	AssertExpectedRobots(friendlyCount, enemyCount int) error
}

// DefaultStrategy is the bundled example: assign roles, pick a tactic,
// and drive every friendly robot toward a role-appropriate target via
// the motion planner — grounded on the skills/go_to_ball.py +
// skills/score_goal.py + skills/solo_defender.py pattern of "compute a
// target point for the robot's role, then path to it".
type DefaultStrategy struct {
	blackboard *behaviortree.Blackboard
	tree       behaviortree.Behaviour
	geometry   referee.Geometry
}

// NewDefaultStrategy builds a DefaultStrategy for namespace, driving
// robots with motion via geometry's field dimensions.
func NewDefaultStrategy(namespace behaviortree.Namespace, motion behaviortree.MotionController, geometry referee.Geometry) *DefaultStrategy {
	bb := behaviortree.NewBlackboard(namespace)
	bb.MotionController = motion

	bb.Access.Declare("game", behaviortree.AccessRead)
	bb.Access.Declare("motion_controller", behaviortree.AccessRead)
	bb.Access.Declare("role_map", behaviortree.AccessWrite)
	bb.Access.Declare("tactic", behaviortree.AccessWrite)
	bb.Access.Declare("tactic", behaviortree.AccessRead)
	bb.Access.Declare("cmd_map", behaviortree.AccessWrite)

	s := &DefaultStrategy{blackboard: bb, geometry: geometry}

	s.tree = behaviortree.NewSequence("default_strategy", false,
		&behaviortree.Action{Name: "assign_roles", Run: func() behaviortree.Status {
			return AssignRoles(bb.Game.Current, bb)
		}},
		&behaviortree.Action{Name: "select_tactic", Run: func() behaviortree.Status {
			return SelectTactic(bb.Game.Current, bb)
		}},
		&behaviortree.Action{Name: "dispatch_commands", Run: func() behaviortree.Status {
			return s.dispatchCommands()
		}},
	)

	return s
}

// Blackboard returns the strategy's blackboard.
func (s *DefaultStrategy) Blackboard() *behaviortree.Blackboard {
	return s.blackboard
}

// AssertExpectedRobots validates this strategy can run with the given
// squad sizes. DefaultStrategy has no formation requirements: it accepts
// 1..6 friendly robots and returns an error otherwise; enemyCount is not
// checked.
func (s *DefaultStrategy) AssertExpectedRobots(friendlyCount, enemyCount int) error {
	if friendlyCount < 1 || friendlyCount > 6 {
		return fmt.Errorf("strategy: expected 1..6 friendly robots, got %d", friendlyCount)
	}
	return nil
}

// Tick installs game onto the blackboard, resets cmd_map, and ticks the
// tree exactly once (spec.md §4.3 "Tick protocol").
func (s *DefaultStrategy) Tick(game *model.PresentFutureGame) error {
	s.blackboard.Game = game
	s.blackboard.Reset()
	status := s.tree.Tick()
	if status == behaviortree.Failure {
		return fmt.Errorf("strategy: behavior tree returned FAILURE")
	}
	return nil
}

func (s *DefaultStrategy) dispatchCommands() behaviortree.Status {
	frame := s.blackboard.Game.Current
	if s.blackboard.Scratch.Tactic == TacticHalt {
		return behaviortree.Success
	}

	for id, role := range s.blackboard.RoleMap {
		robot, ok := frame.FriendlyRobots[id]
		if !ok {
			continue
		}
		target := s.targetFor(frame, role, robot)
		result := s.blackboard.MotionController.PathTo(frame, id, target, nil)
		s.blackboard.WriteCommand(id, velocityToCommand(robot.Orientation, result.Velocity))
	}
	return behaviortree.Success
}

// targetFor computes the role-appropriate waypoint a robot should drive
// toward this tick.
func (s *DefaultStrategy) targetFor(frame model.GameFrame, role behaviortree.Role, robot model.Robot) vecmath.Vector2D {
	ownGoalX := -s.geometry.HalfLength
	if frame.MyTeamIsRight {
		ownGoalX = s.geometry.HalfLength
	}

	switch role {
	case behaviortree.RoleGoalkeeper:
		return vecmath.NewVector2D(ownGoalX*0.9, 0)
	case behaviortree.RoleStriker:
		if s.blackboard.Scratch.Tactic == TacticHold || frame.Ball == nil {
			return robot.Position
		}
		return frame.Ball.Position.To2D()
	case behaviortree.RoleDefender:
		if frame.Ball == nil {
			return vecmath.NewVector2D(ownGoalX*0.5, robot.Position.Y)
		}
		ball := frame.Ball.Position.To2D()
		return midpoint(ball, vecmath.NewVector2D(ownGoalX, 0))
	default: // RoleMidfielder, RoleUnassigned
		if frame.Ball == nil {
			return robot.Position
		}
		return midpoint(robot.Position, frame.Ball.Position.To2D())
	}
}

func midpoint(a, b vecmath.Vector2D) vecmath.Vector2D {
	return vecmath.NewVector2D((a.X+b.X)/2, (a.Y+b.Y)/2)
}

// velocityToCommand rotates a field-frame velocity into the robot's
// local body frame (forward/left), per the RobotCommand contract.
func velocityToCommand(orientationRad float64, fieldVel vecmath.Vector2D) model.RobotCommand {
	cos, sin := math.Cos(-orientationRad), math.Sin(-orientationRad)
	fwd := fieldVel.X*cos - fieldVel.Y*sin
	left := fieldVel.X*sin + fieldVel.Y*cos
	return model.RobotCommand{
		LocalForwardVel: float32(fwd),
		LocalLeftVel:    float32(left),
	}
}

// DefaultActionForRole is the strategy runner's fallback for any
// friendly robot the tree left without a cmd_map entry (spec.md §4.5
// step 7): hold position.
func DefaultActionForRole(role behaviortree.Role) model.RobotCommand {
	return model.ZeroCommand
}
