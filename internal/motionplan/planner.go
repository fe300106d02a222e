package motionplan

import (
	"math"

	"github.com/utama-ssl/decision-core/internal/model"
	"github.com/utama-ssl/decision-core/internal/vecmath"
)

// Per-step constants (spec §4.2).
const (
	SimulatedTimestep     = 1.0 / 60.0
	MaxAcceleration       = 2.0
	RobotRadius           = 0.09
	NDirections           = 16
	targetReachedDistance = 1.5 * RobotRadius
	minScaleFactor        = 0.05
)

// PlanResult is one tick's output from the Dynamic Window planner: a
// velocity command in field coordinates (m/s) and the score of the
// chosen candidate (higher is better; +Inf means "target reached").
type PlanResult struct {
	Velocity vecmath.Vector2D
	Score    float64
}

// DynamicWindowPlanner samples candidate headings around a robot's
// current velocity and scores each against progress-to-target and
// obstacle time-of-closest-approach. Stateless: every call is
// independent of prior ticks.
type DynamicWindowPlanner struct{}

// NewDynamicWindowPlanner constructs a DynamicWindowPlanner.
func NewDynamicWindowPlanner() *DynamicWindowPlanner {
	return &DynamicWindowPlanner{}
}

// PathTo plans one tick's velocity command for friendlyRobotID toward
// target, avoiding every other robot on the field and any temporary
// obstacle region (defense areas, keep-out circles).
func (p *DynamicWindowPlanner) PathTo(frame model.GameFrame, friendlyRobotID uint8, target vecmath.Vector2D, temporaryObstacles []ObstacleRegion) PlanResult {
	robot := frame.FriendlyRobots[friendlyRobotID]

	if robot.Position.DistanceTo(target) < targetReachedDistance {
		return PlanResult{
			Velocity: target.Sub(robot.Position).DivScalar(SimulatedTimestep),
			Score:    math.Inf(1),
		}
	}
	return p.localPlanning(frame, friendlyRobotID, robot, target, temporaryObstacles)
}

func (p *DynamicWindowPlanner) localPlanning(frame model.GameFrame, friendlyRobotID uint8, robot model.Robot, target vecmath.Vector2D, temporaryObstacles []ObstacleRegion) PlanResult {
	startPos := robot.Position
	velocity := robot.Velocity
	deltaVel := SimulatedTimestep * MaxAcceleration
	obstacles := otherRobots(frame, friendlyRobotID)

	bestScore := math.Inf(-1)
	bestEnd := startPos

	for sf := 1.0; bestScore < 0 && sf > minScaleFactor; sf /= 4 {
		for i := 0; i < NDirections; i++ {
			ang := float64(i) * 2 * math.Pi / NDirections
			segEnd := motionSegmentEnd(startPos, velocity, deltaVel*sf, ang)
			if segmentBlocked(startPos, segEnd, temporaryObstacles) {
				continue
			}
			score := evaluateSegment(startPos, segEnd, target, obstacles)
			if score > bestScore {
				bestScore = score
				bestEnd = segEnd
			}
		}
	}

	if math.IsInf(bestScore, -1) {
		return PlanResult{Velocity: vecmath.Vector2D{}, Score: bestScore}
	}
	return PlanResult{
		Velocity: bestEnd.Sub(startPos).DivScalar(SimulatedTimestep),
		Score:    bestScore,
	}
}

func motionSegmentEnd(pos, vel vecmath.Vector2D, deltaVel, ang float64) vecmath.Vector2D {
	adjVelX := vel.X*SimulatedTimestep + deltaVel*math.Cos(ang)
	adjVelY := vel.Y*SimulatedTimestep + deltaVel*math.Sin(ang)
	return vecmath.NewVector2D(pos.X+adjVelX, pos.Y+adjVelY)
}

func segmentBlocked(start, end vecmath.Vector2D, obstacles []ObstacleRegion) bool {
	for _, obstacle := range obstacles {
		if obstacle.Rect.DistanceToSegment(start, end) < RobotRadius {
			return true
		}
	}
	return false
}

// evaluateSegment scores a candidate segment: progress toward the
// target, minus the worst obstacle time-of-closest-approach penalty,
// plus a closeness bonus based on the target's distance to the segment.
func evaluateSegment(segStart, segEnd, target vecmath.Vector2D, obstacles []model.Robot) float64 {
	targetFactor := target.DistanceTo(segStart) - target.DistanceTo(segEnd)
	ourVelocity := segEnd.Sub(segStart).DivScalar(SimulatedTimestep)

	obstacleFactor := 0.0
	for _, other := range obstacles {
		diffV := ourVelocity.Sub(other.Velocity)
		diffP := segStart.Sub(other.Position)

		denom := diffV.Dot(diffV)
		if denom == 0 {
			continue
		}
		t := -diffV.Dot(diffP) / denom
		if t <= 0 {
			continue
		}
		closest := diffP.Add(diffV.Scale(t))
		dSq := closest.Dot(closest)
		penalty := obstacleDistancePenalty(dSq) * obstacleTimePenalty(t)
		if penalty > obstacleFactor {
			obstacleFactor = penalty
		}
	}

	closeness := 4 * math.Exp(-8*pointSegmentDistance(target, segStart, segEnd))
	return 5*targetFactor - obstacleFactor + closeness
}

func obstacleDistancePenalty(dSq float64) float64 {
	return math.Exp(-8 * (dSq - 0.22))
}

func obstacleTimePenalty(t float64) float64 {
	return math.Exp(-8 * t)
}

// otherRobots returns every robot on the field except friendlyRobotID:
// the planner's obstacle set.
func otherRobots(frame model.GameFrame, friendlyRobotID uint8) []model.Robot {
	others := make([]model.Robot, 0, len(frame.FriendlyRobots)+len(frame.EnemyRobots))
	for id, r := range frame.FriendlyRobots {
		if id == friendlyRobotID {
			continue
		}
		others = append(others, r)
	}
	for _, r := range frame.EnemyRobots {
		others = append(others, r)
	}
	return others
}
