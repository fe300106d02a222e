package behaviortree

import (
	"fmt"

	"github.com/utama-ssl/decision-core/internal/model"
	"github.com/utama-ssl/decision-core/internal/motionplan"
	"github.com/utama-ssl/decision-core/internal/vecmath"
)

// Role is a robot's assigned tactical role for the current tick.
type Role int

const (
	RoleUnassigned Role = iota
	RoleGoalkeeper
	RoleDefender
	RoleStriker
	RoleMidfielder
)

// String renders Role the way log lines expect to read it.
func (r Role) String() string {
	switch r {
	case RoleGoalkeeper:
		return "GOALKEEPER"
	case RoleDefender:
		return "DEFENDER"
	case RoleStriker:
		return "STRIKER"
	case RoleMidfielder:
		return "MIDFIELDER"
	default:
		return "UNASSIGNED"
	}
}

// Namespace distinguishes which side's blackboard a tree is reasoning
// about — spec §9's resolution for the source's dynamic "My"/"Opponent"
// blackboard clients: two separate typed instances instead of one
// client parameterised at runtime.
type Namespace int

const (
	NamespaceMy Namespace = iota
	NamespaceOpponent
)

// MotionController is the subset of DynamicWindowPlanner a tree leaf may
// call. Declared as an interface so tests can substitute a stub planner.
type MotionController interface {
	PathTo(frame model.GameFrame, friendlyRobotID uint8, target vecmath.Vector2D, temporaryObstacles []motionplan.ObstacleRegion) motionplan.PlanResult
}

// Scratch holds the per-strategy working fields a tree's leaves read and
// write across a single tick (spec §4.3 blackboard "Per-strategy scratch").
type Scratch struct {
	RobotID           uint8
	TargetCoords      vecmath.Vector2D
	TargetOrientation float64
	BestShot          *vecmath.Vector2D
	DribbledDistance  float64
	Tactic            string
}

// AccessMode is how a tree node declares it will touch a blackboard key.
type AccessMode int

const (
	AccessRead AccessMode = iota
	AccessWrite
)

// AccessRegistry collects every node's declared key access at tree setup
// time, so conflicting declarations (two writers, an undeclared reader)
// can be caught before the first tick rather than discovered mid-match.
type AccessRegistry struct {
	declarations map[string][]AccessMode
}

// NewAccessRegistry constructs an empty AccessRegistry.
func NewAccessRegistry() *AccessRegistry {
	return &AccessRegistry{declarations: map[string][]AccessMode{}}
}

// Declare records that a node accesses key with the given mode. Call
// once per node per key during tree construction.
func (r *AccessRegistry) Declare(key string, mode AccessMode) {
	r.declarations[key] = append(r.declarations[key], mode)
}

// Validate returns an error describing the first conflicting or
// undeclared access found, or nil if every key's declarations are
// consistent.
func (r *AccessRegistry) Validate() error {
	for _, key := range sortedKeys(r.declarations) {
		modes := r.declarations[key]
		writers, readers := 0, 0
		for _, m := range modes {
			if m == AccessWrite {
				writers++
			} else {
				readers++
			}
		}
		if writers > 1 {
			return fmt.Errorf("blackboard key %q declared WRITE by %d nodes", key, writers)
		}
		if readers > 0 && writers == 0 {
			return fmt.Errorf("blackboard key %q has a reader but no writer", key)
		}
	}
	return nil
}

func sortedKeys(m map[string][]AccessMode) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}

// Blackboard is the typed, strongly-keyed structure a strategy's tree
// reasons over. One field per required key (spec §9: the source's
// dynamic string-keyed client with runtime registration becomes a plain
// Go struct, with AccessRegistry standing in for the runtime access
// check).
type Blackboard struct {
	Namespace         Namespace
	Game              *model.PresentFutureGame
	MotionController  MotionController
	CmdMap            map[uint8]*model.RobotCommand
	RoleMap           map[uint8]Role
	Scratch           Scratch
	Access            *AccessRegistry
}

// NewBlackboard constructs an empty Blackboard for the given namespace.
func NewBlackboard(namespace Namespace) *Blackboard {
	return &Blackboard{
		Namespace: namespace,
		CmdMap:    map[uint8]*model.RobotCommand{},
		RoleMap:   map[uint8]Role{},
		Access:    NewAccessRegistry(),
	}
}

// WriteCommand records robotID's command for this tick (cmd_map write).
func (b *Blackboard) WriteCommand(robotID uint8, cmd model.RobotCommand) {
	b.CmdMap[robotID] = &cmd
}

// Command returns robotID's written command for this tick, if any.
func (b *Blackboard) Command(robotID uint8) (model.RobotCommand, bool) {
	cmd, ok := b.CmdMap[robotID]
	if !ok || cmd == nil {
		return model.RobotCommand{}, false
	}
	return *cmd, true
}

// Reset clears the per-tick write targets (cmd_map) ahead of a new tick.
// RoleMap persists across ticks by design — roles change only when the
// strategy reassigns them.
func (b *Blackboard) Reset() {
	for id := range b.CmdMap {
		delete(b.CmdMap, id)
	}
}
