package referee

import "github.com/utama-ssl/decision-core/internal/model"

// Rule is a single modular check in the ordered rule engine (spec
// §4.1.1). Implementations are state-limited: they may hold cooldowns
// or persistence counters but must not retain references to GameFrames
// across ticks.
type Rule interface {
	// Check inspects the current frame and returns a violation if one
	// fires, or nil otherwise.
	Check(frame model.GameFrame, geometry Geometry, currentCommand model.RefereeCommand) *model.RuleViolation
	// Reset is called on every tick a violation fires (from any rule),
	// so rule-local counters clear in step.
	Reset()
}

func cmdPtr(c model.RefereeCommand) *model.RefereeCommand {
	return &c
}

func posPtr(x, y float64) *[2]float64 {
	p := [2]float64{x, y}
	return &p
}

// activePlayCommand returns true if command is one under which the
// ball is live (NORMAL_START or FORCE_START).
func activePlayCommand(c model.RefereeCommand) bool {
	return c == model.CommandNormalStart || c == model.CommandForceStart
}
