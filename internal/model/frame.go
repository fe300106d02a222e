// Package model holds the immutable per-tick snapshot types: Ball, Robot,
// GameFrame, and the rolling PresentFutureGame history.
package model

import "github.com/utama-ssl/decision-core/internal/vecmath"

// Ball is the refined ball state for one tick. Created fresh by the
// refiner chain each frame; never mutated afterward.
type Ball struct {
	Position     vecmath.Vector3D
	Velocity     vecmath.Vector3D
	Acceleration vecmath.Vector3D
}

// Robot is the refined state of a single robot for one tick. Immutable
// once constructed by the refiner chain.
type Robot struct {
	ID          uint8
	IsFriendly  bool
	HasBall     bool
	Position    vecmath.Vector2D
	Velocity    vecmath.Vector2D
	Acceleration vecmath.Vector2D
	Orientation float64 // radians, [-pi, pi]
}

// GameFrame is a per-tick snapshot of the whole visible game state.
// Referee is nil until a referee source (custom or upstream) has
// produced at least one RefereeData snapshot.
type GameFrame struct {
	Timestamp      float64
	MyTeamIsYellow bool
	MyTeamIsRight  bool
	FriendlyRobots map[uint8]Robot
	EnemyRobots    map[uint8]Robot
	Ball           *Ball // nil when no ball observed this tick
	Referee        *RefereeData
}

// NewGameFrame returns an empty GameFrame for the given perspective.
func NewGameFrame(timestamp float64, myTeamIsYellow, myTeamIsRight bool) GameFrame {
	return GameFrame{
		Timestamp:      timestamp,
		MyTeamIsYellow: myTeamIsYellow,
		MyTeamIsRight:  myTeamIsRight,
		FriendlyRobots: map[uint8]Robot{},
		EnemyRobots:    map[uint8]Robot{},
	}
}

// WithBall returns a copy of f with the ball position overridden. Used by
// the strategy runner's "ball teleport on STOP edge" simulator hook
// (spec §4.5 step 5) — the referee's designated position replaces the
// observed ball position before the tree ticks.
func (f GameFrame) WithBall(b Ball) GameFrame {
	f.Ball = &b
	return f
}

// DefaultHistoryCapacity is the minimum ring-buffer depth required to
// support the velocity/acceleration estimation windows (5 frames per
// window, 3 windows).
const DefaultHistoryCapacity = 15

// PresentFutureGame bundles the current frame with a fixed-capacity ring
// of past frames and an optional one-step prediction.
type PresentFutureGame struct {
	Current   GameFrame
	Predicted *GameFrame

	history    []GameFrame
	capacity   int
	nextWrite  int
	count      int
}

// NewPresentFutureGame constructs a PresentFutureGame with the given
// history ring capacity (clamped up to DefaultHistoryCapacity).
func NewPresentFutureGame(capacity int) *PresentFutureGame {
	if capacity < DefaultHistoryCapacity {
		capacity = DefaultHistoryCapacity
	}
	return &PresentFutureGame{
		history:  make([]GameFrame, capacity),
		capacity: capacity,
	}
}

// Push advances the history ring with the outgoing Current frame and
// installs newFrame as the new Current. Call once per tick.
func (p *PresentFutureGame) Push(newFrame GameFrame) {
	if p.count > 0 || p.Current.FriendlyRobots != nil {
		p.history[p.nextWrite] = p.Current
		p.nextWrite = (p.nextWrite + 1) % p.capacity
		if p.count < p.capacity {
			p.count++
		}
	}
	p.Current = newFrame
}

// History returns past frames, most recent first. The returned slice is
// freshly allocated and safe for the caller to retain.
func (p *PresentFutureGame) History() []GameFrame {
	out := make([]GameFrame, 0, p.count)
	idx := p.nextWrite
	for i := 0; i < p.count; i++ {
		idx = (idx - 1 + p.capacity) % p.capacity
		out = append(out, p.history[idx])
	}
	return out
}

// FrameBefore returns the most recent historical frame whose timestamp is
// strictly less than before, along with whether one was found. Used by
// the velocity refiner to locate the "previous" sample for finite
// differencing.
func (p *PresentFutureGame) FrameBefore(before float64) (GameFrame, bool) {
	idx := p.nextWrite
	for i := 0; i < p.count; i++ {
		idx = (idx - 1 + p.capacity) % p.capacity
		if p.history[idx].Timestamp < before {
			return p.history[idx], true
		}
	}
	return GameFrame{}, false
}

// FramesBefore returns up to n historical frames strictly older than
// before, oldest describing the tail, ordered most-recent-first. Used by
// the acceleration window computation (spec §4.4).
func (p *PresentFutureGame) FramesBefore(before float64, n int) []GameFrame {
	out := make([]GameFrame, 0, n)
	idx := p.nextWrite
	for i := 0; i < p.count && len(out) < n; i++ {
		idx = (idx - 1 + p.capacity) % p.capacity
		if p.history[idx].Timestamp < before {
			out = append(out, p.history[idx])
		}
	}
	return out
}

// RobotCommand is the per-robot output of the decision core: velocities
// in the robot's local body frame (m/s, rad/s) plus kick/chip/dribble
// flags.
type RobotCommand struct {
	LocalForwardVel float32
	LocalLeftVel    float32
	AngularVel      float32
	Kick            bool
	Chip            bool
	Dribble         bool
}

// ZeroCommand is the safe default sent when a robot has no assigned
// command and transport send fails twice (spec §7, error kind 5).
var ZeroCommand = RobotCommand{}
