package referee

import "github.com/utama-ssl/decision-core/internal/model"

// CustomReferee orchestrates the ordered rule engine over a
// GameStateMachine. Rules are checked in priority order; the first
// violation wins and subsequent rules are not evaluated that tick.
type CustomReferee struct {
	geometry Geometry
	rules    []Rule
	sm       *GameStateMachine

	lastFiredRule string
}

// NewCustomReferee constructs a CustomReferee with rules supplied in
// priority order: Goal, OutOfBounds, DefenseArea, KeepOut (spec §4.1.1).
func NewCustomReferee(geometry Geometry, sm *GameStateMachine, rules ...Rule) *CustomReferee {
	return &CustomReferee{geometry: geometry, rules: rules, sm: sm}
}

// Step evaluates rules against frame in priority order, stopping at the
// first violation (subsequent rules are not evaluated), applies it to
// the state machine (subject to its transition cooldown), advances the
// arcade auto-advance clock, and returns the resulting snapshot.
func (r *CustomReferee) Step(frame model.GameFrame, currentTime, stageTimeLeft float64) model.RefereeData {
	currentCommand := r.sm.Command()

	var fired *model.RuleViolation
	for _, rule := range r.rules {
		if v := rule.Check(frame, r.geometry, currentCommand); v != nil {
			fired = v
			break
		}
	}

	r.lastFiredRule = ""
	if fired != nil {
		r.lastFiredRule = fired.RuleName
		r.sm.ApplyViolation(fired, currentTime)
		for _, rule := range r.rules {
			rule.Reset()
		}
	} else {
		r.sm.MaybeAutoAdvance(currentTime)
	}

	return r.sm.Snapshot(currentTime, stageTimeLeft)
}

// LastFiredRule returns the name of the rule that fired on the most
// recent Step call, or "" if none did. Used by telemetry.
func (r *CustomReferee) LastFiredRule() string {
	return r.lastFiredRule
}

// SetCommand forwards a manual command override to the state machine.
func (r *CustomReferee) SetCommand(c model.RefereeCommand, currentTime float64) {
	r.sm.SetCommand(c, currentTime)
}

// AdvanceStage forwards a manual stage advance to the state machine.
func (r *CustomReferee) AdvanceStage(currentTime float64) {
	r.sm.AdvanceStage(currentTime)
}
