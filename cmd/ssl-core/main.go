// Command ssl-core runs the decision-core strategy runner: it wires the
// refiner chain, the custom referee, a strategy, a motion planner and a
// transport adapter into strategyrunner.Runner and drives it until the
// process is interrupted (spec.md §6 CLI).
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.bug.st/serial"
	"go.uber.org/zap"

	"github.com/utama-ssl/decision-core/internal/behaviortree"
	"github.com/utama-ssl/decision-core/internal/config"
	"github.com/utama-ssl/decision-core/internal/logging"
	"github.com/utama-ssl/decision-core/internal/model"
	"github.com/utama-ssl/decision-core/internal/motionplan"
	"github.com/utama-ssl/decision-core/internal/referee"
	"github.com/utama-ssl/decision-core/internal/refiners"
	"github.com/utama-ssl/decision-core/internal/ringbuffer"
	"github.com/utama-ssl/decision-core/internal/strategy"
	"github.com/utama-ssl/decision-core/internal/strategyrunner"
	"github.com/utama-ssl/decision-core/internal/transport"
	"github.com/utama-ssl/decision-core/internal/visioningest"
)

// Exit codes (spec.md §6).
const (
	exitOK               = 0
	exitConfigError      = 1
	exitTransportFailure = 2
	exitInvariant        = 3
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		strategyName string
		mode         string
		yellow       bool
		right        bool
		headless     bool
		profileName  string
		visionAddr   string
		cameraCount  int
		tickHz       float64
		serialPort   string
		simAddr      string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "run the SSL decision core against a live or simulated match",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatch(matchOptions{
				strategyName: strategyName,
				mode:         mode,
				yellow:       yellow,
				right:        right,
				headless:     headless,
				profileName:  profileName,
				visionAddr:   visionAddr,
				cameraCount:  cameraCount,
				tickHz:       tickHz,
				serialPort:   serialPort,
				simAddr:      simAddr,
			})
		},
	}

	cmd.Flags().StringVar(&strategyName, "strategy", "default", "strategy to run (currently: default)")
	cmd.Flags().StringVar(&mode, "mode", "grsim", "transport mode: real|grsim|rsim")
	cmd.Flags().BoolVar(&yellow, "yellow", false, "play as the yellow team")
	cmd.Flags().BoolVar(&right, "right", false, "defend the right-hand goal")
	cmd.Flags().BoolVar(&headless, "headless", false, "disable any interactive output")
	cmd.Flags().StringVar(&profileName, "profile", "strict_ai", "referee profile: built-in name or YAML path")
	cmd.Flags().StringVar(&visionAddr, "vision-addr", ":10006", "UDP address to receive decoded vision frames on")
	cmd.Flags().IntVar(&cameraCount, "cameras", 4, "number of vision cameras to allocate ring buffers for")
	cmd.Flags().Float64Var(&tickHz, "tick-hz", 60, "strategy runner tick rate in Hz")
	cmd.Flags().StringVar(&serialPort, "serial-port", "/dev/ttyUSB0", "serial device for --mode=real")
	cmd.Flags().StringVar(&simAddr, "sim-addr", "127.0.0.1:20011", "grSim/RSim command address for --mode=grsim|rsim")

	if err := cmd.Execute(); err != nil {
		var exitErr *exitError
		if ok := asExitError(err, &exitErr); ok {
			fmt.Fprintln(os.Stderr, exitErr.err)
			return exitErr.code
		}
		fmt.Fprintln(os.Stderr, err)
		return exitConfigError
	}
	return exitOK
}

type matchOptions struct {
	strategyName string
	mode         string
	yellow       bool
	right        bool
	headless     bool
	profileName  string
	visionAddr   string
	cameraCount  int
	tickHz       float64
	serialPort   string
	simAddr      string
}

// exitError carries a specific process exit code alongside the error
// message, so run() can translate it without cobra's default handling
// collapsing every failure to exit code 1.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func asExitError(err error, target **exitError) bool {
	if ee, ok := err.(*exitError); ok {
		*target = ee
		return true
	}
	return false
}

func runMatch(opts matchOptions) error {
	logger, err := logging.New()
	if err != nil {
		return &exitError{exitConfigError, fmt.Errorf("constructing logger: %w", err)}
	}
	defer logger.Sync() //nolint:errcheck

	if opts.strategyName != "default" {
		return &exitError{exitConfigError, fmt.Errorf("unknown strategy %q (supported: default)", opts.strategyName)}
	}

	profile, err := config.LoadProfile(opts.profileName)
	if err != nil {
		return &exitError{exitConfigError, fmt.Errorf("loading referee profile: %w", err)}
	}
	if opts.cameraCount <= 0 {
		return &exitError{exitConfigError, fmt.Errorf("--cameras must be > 0")}
	}
	if opts.tickHz <= 0 {
		return &exitError{exitConfigError, fmt.Errorf("--tick-hz must be > 0")}
	}

	geometry := profile.FieldGeometry()
	rules := profile.BuildRules()
	sm := referee.NewGameStateMachine(
		"ssl-core", "blue", "yellow",
		profile.Game.TransitionCooldownMs/1000.0,
		profile.Game.ForceStartAfterGoal, // arcade auto-advance, enabled per profile
		profile.Game.StopDurationSeconds,
	)
	customReferee := referee.NewCustomReferee(geometry, sm, rules...)

	adapter, err := buildTransport(opts, logger)
	if err != nil {
		return &exitError{exitConfigError, err}
	}
	defer adapter.Close() //nolint:errcheck

	strat := strategy.NewDefaultStrategy(behaviortree.NamespaceMy, motionplan.NewDynamicWindowPlanner(), geometry)

	visionBuffers := make([]*ringbuffer.Ring[model.RawVisionData], opts.cameraCount)
	for i := range visionBuffers {
		visionBuffers[i] = ringbuffer.New[model.RawVisionData]()
	}

	source, err := visioningest.NewUDPSource(opts.visionAddr, visionBuffers, logger)
	if err != nil {
		return &exitError{exitConfigError, fmt.Errorf("starting vision ingestion: %w", err)}
	}
	defer source.Close() //nolint:errcheck

	runnerCfg := strategyrunner.Config{
		MyTeamIsYellow:     opts.yellow,
		MyTeamIsRight:      opts.right,
		FriendlyRobotCount: 6,
		EnemyRobotCount:    6,
		Simulated:          opts.mode != "real",
		TickRate:           time.Duration(float64(time.Second) / opts.tickHz),
	}

	runner := strategyrunner.New(
		runnerCfg, logger,
		refiners.NewPositionRefiner(0.3, logger),
		refiners.NewRobotInfoRefiner(logger),
		refiners.NewVelocityRefiner(logger),
		refiners.NewRefereeRefiner(logger),
		customReferee,
		nil,
		strat,
		adapter,
		visionBuffers,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ingestErrs := make(chan error, 1)
	go func() { ingestErrs <- source.Run(ctx) }()

	logger.Infow("starting strategy runner",
		"run_id", runner.RunID, "strategy", opts.strategyName, "mode", opts.mode,
		"yellow", opts.yellow, "right", opts.right, "headless", opts.headless)

	runErr := runner.Run(ctx, nowSeconds)
	stop()

	if runErr != nil {
		if refereeOrRunnerIsInvariant(runErr) {
			return &exitError{exitInvariant, runErr}
		}
		return &exitError{exitTransportFailure, runErr}
	}

	select {
	case err := <-ingestErrs:
		if err != nil && ctx.Err() == nil {
			return &exitError{exitTransportFailure, fmt.Errorf("vision ingestion: %w", err)}
		}
	default:
	}
	return nil
}

// buildTransport constructs the configured transport adapter. real uses
// an 8-byte-per-slot serial frame over a physical port (spec.md §6);
// grsim and rsim both speak to a UDP-listening simulator, with rsim
// additionally mirroring the Y axis (spec.md §6 "RSim").
func buildTransport(opts matchOptions, logger *zap.SugaredLogger) (transport.Adapter, error) {
	const slotCount = 6

	switch opts.mode {
	case "real":
		port, err := serial.Open(opts.serialPort, &serial.Mode{BaudRate: 115200})
		if err != nil {
			return nil, fmt.Errorf("opening serial port %q: %w", opts.serialPort, err)
		}
		return transport.NewRealAdapter(port, slotCount, logger), nil

	case "grsim":
		conn, err := net.Dial("udp", opts.simAddr)
		if err != nil {
			return nil, fmt.Errorf("dialing grSim at %q: %w", opts.simAddr, err)
		}
		return transport.NewGrSimAdapter(conn, logger), nil

	case "rsim":
		conn, err := net.Dial("udp", opts.simAddr)
		if err != nil {
			return nil, fmt.Errorf("dialing RSim at %q: %w", opts.simAddr, err)
		}
		return transport.NewRSimAdapter(transport.NewGrSimAdapter(conn, logger)), nil

	default:
		return nil, fmt.Errorf("unknown transport mode %q (supported: real, grsim, rsim)", opts.mode)
	}
}

// nowSeconds is the wall-clock source strategyrunner.Runner uses for
// timestamps and cooldowns.
func nowSeconds() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Second)
}

func refereeOrRunnerIsInvariant(err error) bool {
	return errors.Is(err, strategyrunner.ErrInvariant)
}
