// Package transport adapts the decision core's per-robot RobotCommand
// output onto the three delivery mechanisms spec.md §6 names: the real
// radio link, grSim, and RSim. The core depends only on the Adapter
// interface; which concrete adapter is wired in is a runtime config
// choice (spec.md §6 "--mode").
package transport

import (
	"context"

	"github.com/utama-ssl/decision-core/internal/model"
)

// Adapter delivers one tick's worth of per-robot commands to the field
// (or a simulator standing in for it) and reports per-robot responses
// such as dribbler ball-possession feedback.
type Adapter interface {
	// Send delivers commands for a single tick in one batched call
	// (spec.md §4.5 step 8). The real and grSim adapters retry a failed
	// write once (spec.md §7 error kind 5) before reporting it; RSim
	// inherits the behaviour of the adapter it wraps.
	Send(ctx context.Context, commands map[uint8]model.RobotCommand) ([]model.RobotResponse, error)
	// Close releases the adapter's underlying connection or handle.
	Close() error
}
