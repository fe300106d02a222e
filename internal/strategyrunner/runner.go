// Package strategyrunner implements the per-tick control loop (spec.md
// §4.5): poll vision/referee buffers, refine them into a validated
// GameFrame, step the referee, tick the strategy's behavior tree,
// resolve cmd_map into dispatched commands, and send them over
// transport — all on a single goroutine, the sole writer to shared
// state (spec.md §5).
package strategyrunner

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/utama-ssl/decision-core/internal/model"
	"github.com/utama-ssl/decision-core/internal/referee"
	"github.com/utama-ssl/decision-core/internal/refiners"
	"github.com/utama-ssl/decision-core/internal/ringbuffer"
	"github.com/utama-ssl/decision-core/internal/strategy"
	"github.com/utama-ssl/decision-core/internal/telemetry"
	"github.com/utama-ssl/decision-core/internal/transport"
	"github.com/utama-ssl/decision-core/internal/vecmath"
)

// ErrInvariant reports a fatal runtime invariant violation (spec.md §7
// error kind 2), e.g. more robots detected than the configured roster.
var ErrInvariant = fmt.Errorf("strategyrunner: invariant violation")

// Config bundles the per-match settings a Runner needs beyond its
// collaborators.
type Config struct {
	MyTeamIsYellow     bool
	MyTeamIsRight      bool
	FriendlyRobotCount int
	EnemyRobotCount    int
	// Simulated enables the ball-teleport-on-STOP-edge hook (spec.md
	// §4.5 step 5) and a finite wait_until_game_valid timeout (spec.md
	// §5); both are simulator-only behaviours.
	Simulated bool
	TickRate  time.Duration
}

// Runner is the strategy runner's main loop and all the state a single
// tick touches.
type Runner struct {
	RunID uuid.UUID

	cfg    Config
	logger *zap.SugaredLogger
	tel    *telemetry.Telemetry

	position  *refiners.PositionRefiner
	robotInfo *refiners.RobotInfoRefiner
	velocity  *refiners.VelocityRefiner
	refReffed *refiners.RefereeRefiner

	customReferee *referee.CustomReferee
	upstreamRef   *ringbuffer.Ring[model.RefereeData]

	strat     strategy.Strategy
	transport transport.Adapter

	visionBuffers []*ringbuffer.Ring[model.RawVisionData]

	game          *model.PresentFutureGame
	lastResponses []model.RobotResponse

	running atomic.Bool
}

// New constructs a Runner. Exactly one of customReferee / upstreamRef
// should be non-nil (spec.md §4.5 step 4).
func New(
	cfg Config,
	logger *zap.SugaredLogger,
	position *refiners.PositionRefiner,
	robotInfo *refiners.RobotInfoRefiner,
	velocity *refiners.VelocityRefiner,
	refereeRefiner *refiners.RefereeRefiner,
	customReferee *referee.CustomReferee,
	upstreamRef *ringbuffer.Ring[model.RefereeData],
	strat strategy.Strategy,
	adapter transport.Adapter,
	visionBuffers []*ringbuffer.Ring[model.RawVisionData],
) *Runner {
	r := &Runner{
		RunID:         uuid.New(),
		cfg:           cfg,
		logger:        logger,
		tel:           telemetry.New(logger),
		position:      position,
		robotInfo:     robotInfo,
		velocity:      velocity,
		refReffed:     refereeRefiner,
		customReferee: customReferee,
		upstreamRef:   upstreamRef,
		strat:         strat,
		transport:     adapter,
		visionBuffers: visionBuffers,
		game:          model.NewPresentFutureGame(model.DefaultHistoryCapacity),
	}
	r.running.Store(true)
	return r
}

// Telemetry exposes the runner's accumulated counters.
func (r *Runner) Telemetry() *telemetry.Telemetry {
	return r.tel
}

// Stop signals the run loop to exit at the start of its next iteration
// (spec.md §5 "Cancellation": a shared atomic running flag).
func (r *Runner) Stop() {
	r.running.Store(false)
}

// Run drives the control loop at cfg.TickRate until ctx is cancelled or
// Stop is called, gating on WaitUntilGameValid first.
func (r *Runner) Run(ctx context.Context, now func() float64) error {
	if err := r.WaitUntilGameValid(ctx, now); err != nil {
		return err
	}

	ticker := time.NewTicker(r.cfg.TickRate)
	defer ticker.Stop()

	for r.running.Load() {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			start := time.Now()
			if err := r.Step(now()); err != nil {
				return err
			}
			r.tel.RecordTick(time.Since(start))
		}
	}
	return nil
}

// WaitUntilGameValid polls the vision buffers at 20 Hz until both
// friendly and enemy robot counts match configuration, warning every
// 3 s. In simulated mode it fails fatally after 30 s (spec.md §5).
func (r *Runner) WaitUntilGameValid(ctx context.Context, now func() float64) error {
	const pollInterval = 50 * time.Millisecond
	const warnInterval = 3 * time.Second
	const simulatedTimeout = 30 * time.Second

	deadline := time.Now().Add(simulatedTimeout)
	lastWarn := time.Now()

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		frames := r.peekVisionFrames()
		frame := r.position.Refine(now(), r.cfg.MyTeamIsYellow, r.cfg.MyTeamIsRight, frames)
		if len(frame.FriendlyRobots) == r.cfg.FriendlyRobotCount && len(frame.EnemyRobots) == r.cfg.EnemyRobotCount {
			return nil
		}

		if time.Since(lastWarn) >= warnInterval {
			r.logger.Warnw("waiting for game to become valid",
				"friendly_seen", len(frame.FriendlyRobots), "friendly_expected", r.cfg.FriendlyRobotCount,
				"enemy_seen", len(frame.EnemyRobots), "enemy_expected", r.cfg.EnemyRobotCount)
			lastWarn = time.Now()
		}
		if r.cfg.Simulated && time.Now().After(deadline) {
			return fmt.Errorf("%w: timed out waiting for valid game state after %s", ErrInvariant, simulatedTimeout)
		}

		time.Sleep(pollInterval)
	}
}

func (r *Runner) peekVisionFrames() []model.RawVisionData {
	frames := make([]model.RawVisionData, 0, len(r.visionBuffers))
	for _, buf := range r.visionBuffers {
		if f, ok := buf.Peek(); ok {
			frames = append(frames, f)
		}
	}
	return frames
}

// Step runs exactly one control-loop iteration at the given timestamp,
// per spec.md §4.5's eight-step sequence.
func (r *Runner) Step(now float64) error {
	visionFrames := make([]model.RawVisionData, 0, len(r.visionBuffers))
	for _, buf := range r.visionBuffers {
		if f, ok := buf.Poll(); ok {
			visionFrames = append(visionFrames, f)
		}
	}

	// 2. Refiner chain: Position -> RobotInfo -> Velocity.
	frame := r.position.Refine(now, r.cfg.MyTeamIsYellow, r.cfg.MyTeamIsRight, visionFrames)
	frame = r.robotInfo.Refine(frame, r.lastResponses)
	frame = r.velocity.Refine(r.game, frame)

	if err := r.checkRobotCountInvariant(frame); err != nil {
		return err
	}

	previousCommand, hadPrevious := model.RefereeCommand(0), false
	if latest, ok := r.refReffed.Latest(); ok {
		previousCommand, hadPrevious = latest.Command, true
	}

	// 3. Update PresentFutureGame history.
	r.game.Push(frame)

	// 4. Referee step.
	refereeData, err := r.stepReferee(now)
	if err != nil {
		return err
	}
	if r.customReferee != nil {
		if fired := r.customReferee.LastFiredRule(); fired != "" {
			r.tel.RecordRuleFiring(fired)
		}
	}
	r.tel.RecordCommandCounter(refereeData.CommandCounter)

	r.game.Current = r.refReffed.Refine(r.game.Current, refereeData)

	// 5. Ball teleport on STOP edge (simulator mode only).
	if r.cfg.Simulated && refereeData.Command == model.CommandStop &&
		(!hadPrevious || previousCommand != model.CommandStop) &&
		refereeData.DesignatedPosition != nil {
		pos := *refereeData.DesignatedPosition
		r.game.Current = r.game.Current.WithBall(model.Ball{Position: ballPositionAt(pos, r.game.Current.Ball)})
	}

	// 6. Tick the strategy's behavior tree.
	if err := r.strat.Tick(r.game); err != nil {
		return fmt.Errorf("strategyrunner: strategy tick: %w", err)
	}

	// 7. Resolve cmd_map into dispatched commands.
	bb := r.strat.Blackboard()
	commands := make(map[uint8]model.RobotCommand, len(r.game.Current.FriendlyRobots))
	for id := range r.game.Current.FriendlyRobots {
		if cmd, ok := bb.Command(id); ok {
			commands[id] = cmd
			continue
		}
		commands[id] = strategy.DefaultActionForRole(bb.RoleMap[id])
	}

	// 8. Batched transport send.
	ctx := context.Background()
	responses, err := r.transport.Send(ctx, commands)
	if err != nil {
		r.logger.Warnw("transport send failed after retry, falling back to zero commands", "error", err)
		zeroCommands := make(map[uint8]model.RobotCommand, len(commands))
		for id := range commands {
			zeroCommands[id] = model.ZeroCommand
		}
		zeroResponses, zeroErr := r.transport.Send(ctx, zeroCommands)
		if zeroErr != nil {
			r.logger.Warnw("zero-command fallback send also failed, continuing without robot responses", "error", zeroErr)
			r.lastResponses = nil
			return nil
		}
		r.lastResponses = zeroResponses
		return nil
	}
	r.lastResponses = responses
	return nil
}

func (r *Runner) stepReferee(now float64) (model.RefereeData, error) {
	if r.customReferee != nil {
		return r.customReferee.Step(r.game.Current, now, 0), nil
	}
	data, ok := r.upstreamRef.Poll()
	if !ok {
		return model.RefereeData{}, fmt.Errorf("strategyrunner: no custom referee configured and no upstream referee data available")
	}
	return data, nil
}

func (r *Runner) checkRobotCountInvariant(frame model.GameFrame) error {
	if len(frame.FriendlyRobots) > r.cfg.FriendlyRobotCount {
		return fmt.Errorf("%w: detected %d friendly robots, expected at most %d", ErrInvariant, len(frame.FriendlyRobots), r.cfg.FriendlyRobotCount)
	}
	if len(frame.EnemyRobots) > r.cfg.EnemyRobotCount {
		return fmt.Errorf("%w: detected %d enemy robots, expected at most %d", ErrInvariant, len(frame.EnemyRobots), r.cfg.EnemyRobotCount)
	}
	return nil
}

func ballPositionAt(xy [2]float64, previous *model.Ball) vecmath.Vector3D {
	z := 0.0
	if previous != nil {
		z = previous.Position.Z
	}
	return vecmath.NewVector3D(xy[0], xy[1], z)
}
