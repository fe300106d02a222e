package transport

import (
	"context"

	"github.com/utama-ssl/decision-core/internal/model"
)

// RSimAdapter wraps another Adapter (typically a GrSimAdapter-style
// direct sender) and inverts the Y axis RSim's Python backend expects
// (spec.md §6: "RSim: ... inverted Y axis; the adapter handles the
// conversion").
type RSimAdapter struct {
	inner Adapter
}

// NewRSimAdapter constructs an RSimAdapter delegating to inner.
func NewRSimAdapter(inner Adapter) *RSimAdapter {
	return &RSimAdapter{inner: inner}
}

// Send inverts each command's left-velocity and angular-velocity
// components before delegating.
func (a *RSimAdapter) Send(ctx context.Context, commands map[uint8]model.RobotCommand) ([]model.RobotResponse, error) {
	inverted := make(map[uint8]model.RobotCommand, len(commands))
	for id, cmd := range commands {
		// A Y-axis mirror flips handedness: left-velocity and the sense
		// of rotation both invert together.
		cmd.LocalLeftVel = -cmd.LocalLeftVel
		cmd.AngularVel = -cmd.AngularVel
		inverted[id] = cmd
	}
	return a.inner.Send(ctx, inverted)
}

// Close delegates to the inner adapter.
func (a *RSimAdapter) Close() error {
	return a.inner.Close()
}
