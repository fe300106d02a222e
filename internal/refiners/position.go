// Package refiners implements the Position -> RobotInfo -> Velocity ->
// Referee refiner chain (spec §4.4): pure functions that fold raw
// sensor/transport data into a validated GameFrame.
package refiners

import (
	"math"

	"go.uber.org/zap"

	"github.com/utama-ssl/decision-core/internal/model"
	"github.com/utama-ssl/decision-core/internal/vecmath"
)

// PositionRefiner merges multi-camera vision detections into a single
// GameFrame, applying the coordinate flip the team's perspective
// requires and deduplicating same-id detections across cameras by
// taking the highest-confidence observation.
type PositionRefiner struct {
	MinConfidence float64
	logger        *zap.SugaredLogger
}

// NewPositionRefiner constructs a PositionRefiner.
func NewPositionRefiner(minConfidence float64, logger *zap.SugaredLogger) *PositionRefiner {
	return &PositionRefiner{MinConfidence: minConfidence, logger: logger}
}

// Refine merges frames (one per camera, same tick) into a GameFrame
// describing the game from myTeamIsYellow/myTeamIsRight's perspective.
func (r *PositionRefiner) Refine(timestamp float64, myTeamIsYellow, myTeamIsRight bool, frames []model.RawVisionData) model.GameFrame {
	out := model.NewGameFrame(timestamp, myTeamIsYellow, myTeamIsRight)

	bestRobotConfidence := map[uint8]float64{}
	bestBallConfidence := -1.0

	flip := myTeamIsRight

	for _, camera := range frames {
		yellowPicks := r.dedupeRobots(camera.YellowRobots, bestRobotConfidence, flip)
		bluePicks := r.dedupeRobots(camera.BlueRobots, bestRobotConfidence, flip)

		friendlyPicks, enemyPicks := yellowPicks, bluePicks
		if !myTeamIsYellow {
			friendlyPicks, enemyPicks = bluePicks, yellowPicks
		}
		for id, robot := range friendlyPicks {
			robot.IsFriendly = true
			out.FriendlyRobots[id] = robot
		}
		for id, robot := range enemyPicks {
			out.EnemyRobots[id] = robot
		}

		for _, b := range camera.Balls {
			if b.Confidence < r.MinConfidence || b.Confidence <= bestBallConfidence {
				continue
			}
			bestBallConfidence = b.Confidence
			x, y := flipXY(b.XMeters, b.YMeters, flip)
			out.Ball = &model.Ball{Position: vecmath.NewVector3D(x, y, b.ZMeters)}
		}
	}

	return out
}

// dedupeRobots keeps, per robot id, the highest-confidence detection
// seen so far across all cameras processed this call, and returns only
// the ids whose confidence this camera's data improved on.
func (r *PositionRefiner) dedupeRobots(raw []model.RawRobotData, best map[uint8]float64, flip bool) map[uint8]model.Robot {
	picks := map[uint8]model.Robot{}
	for _, rd := range raw {
		if rd.Confidence < r.MinConfidence {
			r.logger.Debugw("dropping low-confidence robot detection", "robot_id", rd.ID, "confidence", rd.Confidence)
			continue
		}
		if prev, ok := best[rd.ID]; ok && rd.Confidence <= prev {
			continue
		}
		best[rd.ID] = rd.Confidence
		x, y := flipXY(rd.XMeters, rd.YMeters, flip)
		orientation := rd.OrientationRad
		if flip {
			orientation = vecmath.NormalizeAngle(orientation + math.Pi)
		}
		picks[rd.ID] = model.Robot{
			ID:          rd.ID,
			Position:    vecmath.NewVector2D(x, y),
			Orientation: orientation,
		}
	}
	return picks
}

func flipXY(x, y float64, flip bool) (float64, float64) {
	if !flip {
		return x, y
	}
	return -x, -y
}
