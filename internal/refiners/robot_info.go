package refiners

import (
	"go.uber.org/zap"

	"github.com/utama-ssl/decision-core/internal/model"
)

// RobotInfoRefiner applies has_ball feedback from transport responses
// onto the matching friendly robot, warning on any response whose id
// has no corresponding robot in the frame.
type RobotInfoRefiner struct {
	logger *zap.SugaredLogger
}

// NewRobotInfoRefiner constructs a RobotInfoRefiner.
func NewRobotInfoRefiner(logger *zap.SugaredLogger) *RobotInfoRefiner {
	return &RobotInfoRefiner{logger: logger}
}

// Refine returns a copy of frame with FriendlyRobots' HasBall flags
// updated from responses.
func (r *RobotInfoRefiner) Refine(frame model.GameFrame, responses []model.RobotResponse) model.GameFrame {
	if len(responses) == 0 {
		return frame
	}

	friendly := make(map[uint8]model.Robot, len(frame.FriendlyRobots))
	for id, robot := range frame.FriendlyRobots {
		friendly[id] = robot
	}

	for _, resp := range responses {
		robot, ok := friendly[resp.ID]
		if !ok {
			r.logger.Warnw("robot response id not found in friendly robots", "robot_id", resp.ID)
			continue
		}
		robot.HasBall = resp.HasBall
		friendly[resp.ID] = robot
	}

	frame.FriendlyRobots = friendly
	return frame
}
