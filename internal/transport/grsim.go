package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/utama-ssl/decision-core/internal/model"
)

// grSimCommand is grSim's direct velocity command for one robot, in SSL
// standard frame units (m/s, rad/s).
type grSimCommand struct {
	ID         uint8   `json:"id"`
	VelNormal  float32 `json:"vel_normal"`
	VelTangent float32 `json:"vel_tangent"`
	VelAngular float32 `json:"vel_angular"`
	Kick       bool    `json:"kick"`
	Chip       bool    `json:"chip"`
	Dribble    bool    `json:"dribble"`
}

// GrSimAdapter sends each robot's velocity command directly to grSim as
// one JSON-encoded packet per robot, matching grSim's per-robot wire
// commands without requiring a protobuf toolchain.
type GrSimAdapter struct {
	writer io.Writer
	logger *zap.SugaredLogger
}

// NewGrSimAdapter constructs a GrSimAdapter writing to writer (typically
// a UDP connection dialed to the simulator).
func NewGrSimAdapter(writer io.Writer, logger *zap.SugaredLogger) *GrSimAdapter {
	return &GrSimAdapter{writer: writer, logger: logger}
}

// Send writes one packet per robot, retrying a failed write once, then
// continuing through failures and aggregating them (spec.md §7 error
// kind 5: transport errors do not abort the rest of the batch).
func (a *GrSimAdapter) Send(ctx context.Context, commands map[uint8]model.RobotCommand) ([]model.RobotResponse, error) {
	var errs error
	for id, cmd := range commands {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		payload, err := json.Marshal(grSimCommand{
			ID:         id,
			VelNormal:  cmd.LocalForwardVel,
			VelTangent: cmd.LocalLeftVel,
			VelAngular: cmd.AngularVel,
			Kick:       cmd.Kick,
			Chip:       cmd.Chip,
			Dribble:    cmd.Dribble,
		})
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("robot %d: encode: %w", id, err))
			continue
		}
		if _, err := a.writer.Write(payload); err != nil {
			a.logger.Warnw("grsim write failed, retrying", "robot_id", id, "error", err)
			if _, err := a.writer.Write(payload); err != nil {
				a.logger.Warnw("grsim write failed", "robot_id", id, "error", err)
				errs = multierr.Append(errs, fmt.Errorf("robot %d: write: %w", id, err))
			}
		}
	}
	return nil, errs
}

// Close is a no-op unless writer implements io.Closer.
func (a *GrSimAdapter) Close() error {
	if closer, ok := a.writer.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
