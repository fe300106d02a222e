// Package strategy implements role assignment, tactic selection, and an
// example behavior tree built on internal/behaviortree and
// internal/motionplan (spec.md §4.3, §9 "strategy" layer).
package strategy

import (
	"math"

	"github.com/utama-ssl/decision-core/internal/behaviortree"
	"github.com/utama-ssl/decision-core/internal/model"
)

// AssignRoles picks a goalkeeper (lowest robot id), a striker (the
// friendly robot closest to the ball), and splits the remainder evenly
// between defender and midfielder, writing the result into
// bb.RoleMap (spec.md §4.3 role_map WRITE key).
func AssignRoles(frame model.GameFrame, bb *behaviortree.Blackboard) behaviortree.Status {
	if len(frame.FriendlyRobots) == 0 {
		return behaviortree.Failure
	}

	ids := sortedRobotIDs(frame.FriendlyRobots)
	bb.RoleMap[ids[0]] = behaviortree.RoleGoalkeeper
	rest := ids[1:]

	if frame.Ball != nil && len(rest) > 0 {
		ballPos := frame.Ball.Position.To2D()
		striker, bestDist := rest[0], math.Inf(1)
		for _, id := range rest {
			d := frame.FriendlyRobots[id].Position.DistanceTo(ballPos)
			if d < bestDist {
				striker, bestDist = id, d
			}
		}
		bb.RoleMap[striker] = behaviortree.RoleStriker

		slot := 0
		for _, id := range rest {
			if id == striker {
				continue
			}
			if slot%2 == 0 {
				bb.RoleMap[id] = behaviortree.RoleDefender
			} else {
				bb.RoleMap[id] = behaviortree.RoleMidfielder
			}
			slot++
		}
	}

	for id := range bb.RoleMap {
		if _, present := frame.FriendlyRobots[id]; !present {
			delete(bb.RoleMap, id)
		}
	}

	return behaviortree.Success
}

// sortedRobotIDs returns robot ids in ascending order for deterministic
// role assignment across ticks with identical input.
func sortedRobotIDs(robots map[uint8]model.Robot) []uint8 {
	ids := make([]uint8, 0, len(robots))
	for id := range robots {
		ids = append(ids, id)
	}
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
	return ids
}
