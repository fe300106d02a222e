package model

// RefereeCommand enumerates the SSL referee command set (spec §3).
type RefereeCommand int

const (
	CommandHalt RefereeCommand = iota
	CommandStop
	CommandNormalStart
	CommandForceStart
	CommandPrepareKickoffYellow
	CommandPrepareKickoffBlue
	CommandPreparePenaltyYellow
	CommandPreparePenaltyBlue
	CommandDirectFreeYellow
	CommandDirectFreeBlue
	CommandTimeoutYellow
	CommandTimeoutBlue
	CommandBallPlacementYellow
	CommandBallPlacementBlue
)

// String renders the command the way log lines and test failures expect
// to read it.
func (c RefereeCommand) String() string {
	switch c {
	case CommandHalt:
		return "HALT"
	case CommandStop:
		return "STOP"
	case CommandNormalStart:
		return "NORMAL_START"
	case CommandForceStart:
		return "FORCE_START"
	case CommandPrepareKickoffYellow:
		return "PREPARE_KICKOFF_YELLOW"
	case CommandPrepareKickoffBlue:
		return "PREPARE_KICKOFF_BLUE"
	case CommandPreparePenaltyYellow:
		return "PREPARE_PENALTY_YELLOW"
	case CommandPreparePenaltyBlue:
		return "PREPARE_PENALTY_BLUE"
	case CommandDirectFreeYellow:
		return "DIRECT_FREE_YELLOW"
	case CommandDirectFreeBlue:
		return "DIRECT_FREE_BLUE"
	case CommandTimeoutYellow:
		return "TIMEOUT_YELLOW"
	case CommandTimeoutBlue:
		return "TIMEOUT_BLUE"
	case CommandBallPlacementYellow:
		return "BALL_PLACEMENT_YELLOW"
	case CommandBallPlacementBlue:
		return "BALL_PLACEMENT_BLUE"
	default:
		return "UNKNOWN"
	}
}

// Stage enumerates the game stages a match progresses through.
type Stage int

const (
	StageNormalFirstHalfPre Stage = iota
	StageNormalFirstHalf
	StageNormalHalfTime
	StageNormalSecondHalfPre
	StageNormalSecondHalf
	StageExtraTimeBreak
	StageExtraFirstHalfPre
	StageExtraFirstHalf
	StageExtraHalfTime
	StageExtraSecondHalfPre
	StageExtraSecondHalf
	StagePenaltyShootoutBreak
	StagePenaltyShootout
	StagePostGame
)

func (s Stage) String() string {
	switch s {
	case StageNormalFirstHalfPre:
		return "NORMAL_FIRST_HALF_PRE"
	case StageNormalFirstHalf:
		return "NORMAL_FIRST_HALF"
	case StageNormalHalfTime:
		return "NORMAL_HALF_TIME"
	case StageNormalSecondHalfPre:
		return "NORMAL_SECOND_HALF_PRE"
	case StageNormalSecondHalf:
		return "NORMAL_SECOND_HALF"
	case StageExtraTimeBreak:
		return "EXTRA_TIME_BREAK"
	case StageExtraFirstHalfPre:
		return "EXTRA_FIRST_HALF_PRE"
	case StageExtraFirstHalf:
		return "EXTRA_FIRST_HALF"
	case StageExtraHalfTime:
		return "EXTRA_HALF_TIME"
	case StageExtraSecondHalfPre:
		return "EXTRA_SECOND_HALF_PRE"
	case StageExtraSecondHalf:
		return "EXTRA_SECOND_HALF"
	case StagePenaltyShootoutBreak:
		return "PENALTY_SHOOTOUT_BREAK"
	case StagePenaltyShootout:
		return "PENALTY_SHOOTOUT"
	case StagePostGame:
		return "POST_GAME"
	default:
		return "UNKNOWN"
	}
}

// TeamInfo carries one team's scoreboard and disciplinary state. Beyond
// the fields spec.md names explicitly, it also carries the bot
// substitution bookkeeping original_source's state_machine.py tracks —
// see SPEC_FULL.md "Supplemented features".
type TeamInfo struct {
	Name                     string
	Score                    uint32
	RedCards                 uint32
	YellowCards              uint32
	YellowCardExpiryTimes    []float64
	FoulCounter              uint32
	BallPlacementFailures    uint32
	CanPlaceBall             bool
	MaxAllowedBots           int
	BotSubstitutionIntent    bool
	BotSubstitutionAllowed   bool
	BotSubstitutionsLeft     int
}

// IncrementScore bumps the team's score by one goal.
func (t *TeamInfo) IncrementScore() {
	t.Score++
}

// RefereeData is the output snapshot produced once per tick by either the
// CustomReferee or an upstream Game Controller feed.
type RefereeData struct {
	SourceID                string
	TimeSent                float64
	TimeReceived             float64
	Command                 RefereeCommand
	CommandTimestamp        float64
	CommandCounter          uint64
	Stage                   Stage
	StageTimeLeft           float64
	BlueTeam                TeamInfo
	YellowTeam              TeamInfo
	DesignatedPosition      *[2]float64
	NextCommand             *RefereeCommand
	ActionTimeRemainingUs   *int64
}

// RuleViolation is produced by a referee rule when a condition fires.
type RuleViolation struct {
	RuleName           string
	SuggestedCommand   RefereeCommand
	NextCommand        *RefereeCommand
	StatusMessage      string
	DesignatedPosition *[2]float64
}
