package refiners

import (
	"go.uber.org/zap"

	"github.com/utama-ssl/decision-core/internal/model"
	"github.com/utama-ssl/decision-core/internal/vecmath"
)

// Acceleration windowing constants (spec §4.4).
const (
	accelerationWindowSize = 5
	accelerationNWindows   = 3
	minDeltaSeconds        = 1e-9
)

// vecLike is the set of operations VelocityRefiner needs from a
// position/velocity vector type, satisfied by both vecmath.Vector2D and
// vecmath.Vector3D — letting one generic implementation serve both the
// ball (3D) and robots (2D).
type vecLike[T any] interface {
	Add(T) T
	Sub(T) T
	DivScalar(float64) T
}

// VelocityRefiner computes velocity via finite differencing against the
// most recent earlier frame, and acceleration via a windowed finite
// difference over a fixed history depth.
type VelocityRefiner struct {
	logger *zap.SugaredLogger
}

// NewVelocityRefiner constructs a VelocityRefiner.
func NewVelocityRefiner(logger *zap.SugaredLogger) *VelocityRefiner {
	return &VelocityRefiner{logger: logger}
}

// Refine returns a copy of frame with velocity/acceleration filled in
// for the ball and every robot, using game.Current and game's history.
func (vr *VelocityRefiner) Refine(game *model.PresentFutureGame, frame model.GameFrame) model.GameFrame {
	if frame.Ball != nil {
		frame.Ball = vr.refineBall(game, frame)
	}
	frame.FriendlyRobots = vr.refineRobots(game, frame, frame.FriendlyRobots, true)
	frame.EnemyRobots = vr.refineRobots(game, frame, frame.EnemyRobots, false)
	return frame
}

func (vr *VelocityRefiner) refineBall(game *model.PresentFutureGame, frame model.GameFrame) *model.Ball {
	ball := *frame.Ball

	prev, ok := previousFrame(game, frame.Timestamp)
	if ok && prev.Ball != nil {
		if v, ok := finiteDifference(ball.Position, frame.Timestamp, prev.Ball.Position, prev.Timestamp); ok {
			ball.Velocity = v
		} else {
			vr.logger.Warnw("ball velocity dt too small, using zero", "timestamp", frame.Timestamp)
		}
	}

	samples, timestamps := vr.ballVelocitySeries(game, frame.Timestamp)
	if a, ok := windowedAcceleration(samples, timestamps, accelerationWindowSize, accelerationNWindows); ok {
		ball.Acceleration = a
	}
	return &ball
}

func (vr *VelocityRefiner) ballVelocitySeries(game *model.PresentFutureGame, before float64) ([]vecmath.Vector3D, []float64) {
	frames := game.FramesBefore(before, accelerationWindowSize*accelerationNWindows)
	samples := make([]vecmath.Vector3D, 0, len(frames))
	timestamps := make([]float64, 0, len(frames))
	for i := len(frames) - 1; i >= 0; i-- {
		if frames[i].Ball == nil {
			continue
		}
		samples = append(samples, frames[i].Ball.Velocity)
		timestamps = append(timestamps, frames[i].Timestamp)
	}
	return samples, timestamps
}

func (vr *VelocityRefiner) refineRobots(game *model.PresentFutureGame, frame model.GameFrame, robots map[uint8]model.Robot, friendly bool) map[uint8]model.Robot {
	out := make(map[uint8]model.Robot, len(robots))
	prevFrame, havePrev := previousFrame(game, frame.Timestamp)

	for id, robot := range robots {
		if havePrev {
			prevRobots := prevFrame.FriendlyRobots
			if !friendly {
				prevRobots = prevFrame.EnemyRobots
			}
			if prevRobot, ok := prevRobots[id]; ok {
				if v, ok := finiteDifference(robot.Position, frame.Timestamp, prevRobot.Position, prevFrame.Timestamp); ok {
					robot.Velocity = v
				} else {
					vr.logger.Warnw("robot velocity dt too small, using zero", "robot_id", id, "friendly", friendly)
				}
			}
		}

		samples, timestamps := vr.robotVelocitySeries(game, frame.Timestamp, id, friendly)
		if a, ok := windowedAcceleration(samples, timestamps, accelerationWindowSize, accelerationNWindows); ok {
			robot.Acceleration = a
		}
		out[id] = robot
	}
	return out
}

func (vr *VelocityRefiner) robotVelocitySeries(game *model.PresentFutureGame, before float64, id uint8, friendly bool) ([]vecmath.Vector2D, []float64) {
	frames := game.FramesBefore(before, accelerationWindowSize*accelerationNWindows)
	samples := make([]vecmath.Vector2D, 0, len(frames))
	timestamps := make([]float64, 0, len(frames))
	for i := len(frames) - 1; i >= 0; i-- {
		robots := frames[i].FriendlyRobots
		if !friendly {
			robots = frames[i].EnemyRobots
		}
		robot, ok := robots[id]
		if !ok {
			continue
		}
		samples = append(samples, robot.Velocity)
		timestamps = append(timestamps, frames[i].Timestamp)
	}
	return samples, timestamps
}

// previousFrame returns the most recent frame older than before:
// game.Current when it has been set and is older, otherwise the newest
// such frame in game's history.
func previousFrame(game *model.PresentFutureGame, before float64) (model.GameFrame, bool) {
	if game.Current.FriendlyRobots != nil && game.Current.Timestamp < before {
		return game.Current, true
	}
	return game.FrameBefore(before)
}

func finiteDifference[T vecLike[T]](current T, currentTs float64, prev T, prevTs float64) (T, bool) {
	dt := currentTs - prevTs
	if dt <= minDeltaSeconds {
		var zero T
		return zero, false
	}
	return current.Sub(prev).DivScalar(dt), true
}

// windowedAcceleration averages samples into nWindows windows of
// windowSize consecutive oldest-to-newest samples, then differentiates
// the per-window averages pairwise and averages the resulting
// accelerations, skipping any pair whose dt is too small.
func windowedAcceleration[T vecLike[T]](samples []T, timestamps []float64, windowSize, nWindows int) (T, bool) {
	var zero T
	need := windowSize * nWindows
	if len(samples) < need || len(timestamps) < need {
		return zero, false
	}

	avgVel := make([]T, nWindows)
	avgTs := make([]float64, nWindows)
	for w := 0; w < nWindows; w++ {
		sum := zero
		var tsum float64
		for k := 0; k < windowSize; k++ {
			idx := w*windowSize + k
			sum = sum.Add(samples[idx])
			tsum += timestamps[idx]
		}
		avgVel[w] = sum.DivScalar(float64(windowSize))
		avgTs[w] = tsum / float64(windowSize)
	}

	accelSum := zero
	count := 0
	for w := 1; w < nWindows; w++ {
		dt := avgTs[w] - avgTs[w-1]
		if dt < minDeltaSeconds {
			continue
		}
		dv := avgVel[w].Sub(avgVel[w-1])
		accelSum = accelSum.Add(dv.DivScalar(dt))
		count++
	}
	if count == 0 {
		return zero, false
	}
	return accelSum.DivScalar(float64(count)), true
}
