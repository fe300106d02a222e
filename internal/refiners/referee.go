package refiners

import (
	"go.uber.org/zap"

	"github.com/utama-ssl/decision-core/internal/model"
)

// RefereeRefiner folds a RefereeData snapshot into the frame and keeps
// an append-only history deduplicated on the snapshot's stable fields,
// so strategies can inspect "how long have we been in this command"
// without the noise of every tick re-stamping TimeSent/TimeReceived.
type RefereeRefiner struct {
	history []model.RefereeData
	logger  *zap.SugaredLogger
}

// NewRefereeRefiner constructs a RefereeRefiner.
func NewRefereeRefiner(logger *zap.SugaredLogger) *RefereeRefiner {
	return &RefereeRefiner{logger: logger}
}

// Refine attaches data to frame and, if it differs from the most recent
// recorded snapshot on the stable fields, appends it to the history.
func (r *RefereeRefiner) Refine(frame model.GameFrame, data model.RefereeData) model.GameFrame {
	if len(r.history) == 0 || !refereeDataStableEqual(r.history[len(r.history)-1], data) {
		r.history = append(r.history, data)
		r.logger.Debugw("referee snapshot recorded", "command", data.Command, "stage", data.Stage)
	}
	frame.Referee = &data
	return frame
}

// History returns the recorded, deduplicated snapshots oldest first. The
// returned slice is owned by the caller's copy; callers must not mutate it.
func (r *RefereeRefiner) History() []model.RefereeData {
	out := make([]model.RefereeData, len(r.history))
	copy(out, r.history)
	return out
}

// Latest returns the most recently recorded snapshot, if any.
func (r *RefereeRefiner) Latest() (model.RefereeData, bool) {
	if len(r.history) == 0 {
		return model.RefereeData{}, false
	}
	return r.history[len(r.history)-1], true
}

func (r *RefereeRefiner) latestCommand() model.RefereeCommand {
	latest, ok := r.Latest()
	if !ok {
		return model.CommandHalt
	}
	return latest.Command
}

// IsHalt reports whether the most recent command is HALT.
func (r *RefereeRefiner) IsHalt() bool { return r.latestCommand() == model.CommandHalt }

// IsStop reports whether the most recent command is STOP.
func (r *RefereeRefiner) IsStop() bool { return r.latestCommand() == model.CommandStop }

// IsNormalStart reports whether the most recent command is NORMAL_START.
func (r *RefereeRefiner) IsNormalStart() bool {
	return r.latestCommand() == model.CommandNormalStart
}

// IsForceStart reports whether the most recent command is FORCE_START.
func (r *RefereeRefiner) IsForceStart() bool {
	return r.latestCommand() == model.CommandForceStart
}

// IsBallPlacement reports whether the most recent command is either
// team's BALL_PLACEMENT.
func (r *RefereeRefiner) IsBallPlacement() bool {
	c := r.latestCommand()
	return c == model.CommandBallPlacementYellow || c == model.CommandBallPlacementBlue
}

// IsDirectFree reports whether the most recent command is either team's
// DIRECT_FREE.
func (r *RefereeRefiner) IsDirectFree() bool {
	c := r.latestCommand()
	return c == model.CommandDirectFreeYellow || c == model.CommandDirectFreeBlue
}

// IsPreparingKickoff reports whether the most recent command is either
// team's PREPARE_KICKOFF.
func (r *RefereeRefiner) IsPreparingKickoff() bool {
	c := r.latestCommand()
	return c == model.CommandPrepareKickoffYellow || c == model.CommandPrepareKickoffBlue
}

// IsPreparingPenalty reports whether the most recent command is either
// team's PREPARE_PENALTY.
func (r *RefereeRefiner) IsPreparingPenalty() bool {
	c := r.latestCommand()
	return c == model.CommandPreparePenaltyYellow || c == model.CommandPreparePenaltyBlue
}

// IsTimeout reports whether the most recent command is either team's
// TIMEOUT.
func (r *RefereeRefiner) IsTimeout() bool {
	c := r.latestCommand()
	return c == model.CommandTimeoutYellow || c == model.CommandTimeoutBlue
}

func refereeDataStableEqual(a, b model.RefereeData) bool {
	if a.Command != b.Command ||
		a.CommandTimestamp != b.CommandTimestamp ||
		a.Stage != b.Stage ||
		!teamInfoEqual(a.BlueTeam, b.BlueTeam) ||
		!teamInfoEqual(a.YellowTeam, b.YellowTeam) {
		return false
	}
	if !pointerFloatArrayEqual(a.DesignatedPosition, b.DesignatedPosition) {
		return false
	}
	if (a.NextCommand == nil) != (b.NextCommand == nil) {
		return false
	}
	if a.NextCommand != nil && *a.NextCommand != *b.NextCommand {
		return false
	}
	return true
}

func teamInfoEqual(a, b model.TeamInfo) bool {
	if a.Name != b.Name ||
		a.Score != b.Score ||
		a.RedCards != b.RedCards ||
		a.YellowCards != b.YellowCards ||
		a.FoulCounter != b.FoulCounter ||
		a.BallPlacementFailures != b.BallPlacementFailures ||
		a.CanPlaceBall != b.CanPlaceBall ||
		a.MaxAllowedBots != b.MaxAllowedBots ||
		a.BotSubstitutionIntent != b.BotSubstitutionIntent ||
		a.BotSubstitutionAllowed != b.BotSubstitutionAllowed ||
		a.BotSubstitutionsLeft != b.BotSubstitutionsLeft {
		return false
	}
	if len(a.YellowCardExpiryTimes) != len(b.YellowCardExpiryTimes) {
		return false
	}
	for i := range a.YellowCardExpiryTimes {
		if a.YellowCardExpiryTimes[i] != b.YellowCardExpiryTimes[i] {
			return false
		}
	}
	return true
}

func pointerFloatArrayEqual(a, b *[2]float64) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	if a == nil {
		return true
	}
	return *a == *b
}
