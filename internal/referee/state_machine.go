package referee

import "github.com/utama-ssl/decision-core/internal/model"

// GameStateMachine owns the mutable referee state: command, stage,
// score, cards. Rule violations are applied through ApplyViolation,
// which is rate-limited by a transition cooldown so a single bounce in
// the ball's trajectory cannot fire two commands one tick apart.
type GameStateMachine struct {
	sourceID string

	command          model.RefereeCommand
	commandTimestamp float64
	commandCounter   uint64

	stage          model.Stage
	stageStartTime float64

	blueTeam   model.TeamInfo
	yellowTeam model.TeamInfo

	designatedPosition *[2]float64
	nextCommand        *model.RefereeCommand

	lastTransitionTime float64
	transitionCooldown float64

	// arcadeAutoAdvance, when set, transitions a STOP whose next command
	// is a PREPARE_KICKOFF to FORCE_START on its own after
	// autoAdvanceDelay seconds, without waiting for an external
	// NORMAL_START/FORCE_START command.
	arcadeAutoAdvance bool
	autoAdvanceDelay  float64
}

// NewGameStateMachine constructs a GameStateMachine starting in HALT at
// the pre-game stage.
func NewGameStateMachine(sourceID, blueName, yellowName string, transitionCooldown float64, arcadeAutoAdvance bool, autoAdvanceDelay float64) *GameStateMachine {
	return &GameStateMachine{
		sourceID:           sourceID,
		command:            model.CommandHalt,
		stage:              model.StageNormalFirstHalfPre,
		blueTeam:           model.TeamInfo{Name: blueName, CanPlaceBall: true},
		yellowTeam:         model.TeamInfo{Name: yellowName, CanPlaceBall: true},
		transitionCooldown: transitionCooldown,
		arcadeAutoAdvance:  arcadeAutoAdvance,
		autoAdvanceDelay:   autoAdvanceDelay,
	}
}

// ApplyViolation attempts to transition the state machine in response to
// a fired rule. Returns false if the transition cooldown has not yet
// elapsed, in which case the caller must leave the command unchanged.
func (sm *GameStateMachine) ApplyViolation(v *model.RuleViolation, currentTime float64) bool {
	if currentTime-sm.lastTransitionTime < sm.transitionCooldown {
		return false
	}
	if v.RuleName == "goal" && v.NextCommand != nil {
		switch *v.NextCommand {
		case model.CommandPrepareKickoffYellow:
			sm.blueTeam.IncrementScore()
		case model.CommandPrepareKickoffBlue:
			sm.yellowTeam.IncrementScore()
		}
	}

	sm.command = v.SuggestedCommand
	sm.commandTimestamp = currentTime
	sm.commandCounter++
	sm.designatedPosition = v.DesignatedPosition
	sm.nextCommand = v.NextCommand
	sm.lastTransitionTime = currentTime
	return true
}

// SetCommand forces the command directly, bypassing the cooldown. Used
// for operator/GC-issued commands (HALT, manual restarts). A start
// command (NORMAL_START/FORCE_START) issued while the stage is still a
// "*_PRE" stage advances it to its active counterpart.
func (sm *GameStateMachine) SetCommand(c model.RefereeCommand, currentTime float64) {
	sm.command = c
	sm.commandTimestamp = currentTime
	sm.commandCounter++
	sm.designatedPosition = nil
	sm.nextCommand = nil
	sm.lastTransitionTime = currentTime

	if isPreStage(sm.stage) && (c == model.CommandNormalStart || c == model.CommandForceStart) {
		sm.AdvanceStage(currentTime)
	}
}

// isPreStage reports whether stage is one of the "*_PRE" stages that a
// start command bumps into its active counterpart.
func isPreStage(stage model.Stage) bool {
	switch stage {
	case model.StageNormalFirstHalfPre, model.StageNormalSecondHalfPre,
		model.StageExtraFirstHalfPre, model.StageExtraSecondHalfPre:
		return true
	default:
		return false
	}
}

// AdvanceStage moves to the next stage in the fixed stage sequence. A
// stage at StagePostGame stays there.
func (sm *GameStateMachine) AdvanceStage(currentTime float64) {
	if sm.stage < model.StagePostGame {
		sm.stage++
	}
	sm.stageStartTime = currentTime
}

// MaybeAutoAdvance transitions a lingering post-goal STOP (one whose
// next command is a PREPARE_KICKOFF) to FORCE_START once
// autoAdvanceDelay has elapsed, when the arcade profile enables it.
func (sm *GameStateMachine) MaybeAutoAdvance(currentTime float64) {
	if !sm.arcadeAutoAdvance {
		return
	}
	if sm.command != model.CommandStop || sm.nextCommand == nil {
		return
	}
	if *sm.nextCommand != model.CommandPrepareKickoffYellow && *sm.nextCommand != model.CommandPrepareKickoffBlue {
		return
	}
	if currentTime-sm.commandTimestamp < sm.autoAdvanceDelay {
		return
	}
	sm.command = model.CommandForceStart
	sm.commandTimestamp = currentTime
	sm.commandCounter++
	sm.lastTransitionTime = currentTime
}

// Command returns the current command.
func (sm *GameStateMachine) Command() model.RefereeCommand {
	return sm.command
}

// Stage returns the current stage.
func (sm *GameStateMachine) Stage() model.Stage {
	return sm.stage
}

// Snapshot renders the state machine's state as a RefereeData for this
// tick.
func (sm *GameStateMachine) Snapshot(currentTime, stageTimeLeft float64) model.RefereeData {
	return model.RefereeData{
		SourceID:           sm.sourceID,
		TimeSent:           currentTime,
		TimeReceived:       currentTime,
		Command:            sm.command,
		CommandTimestamp:   sm.commandTimestamp,
		CommandCounter:     sm.commandCounter,
		Stage:              sm.stage,
		StageTimeLeft:      stageTimeLeft,
		BlueTeam:           sm.blueTeam,
		YellowTeam:         sm.yellowTeam,
		DesignatedPosition: sm.designatedPosition,
		NextCommand:        sm.nextCommand,
	}
}
