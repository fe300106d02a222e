package referee

import (
	"testing"

	"github.com/utama-ssl/decision-core/internal/model"
	"github.com/utama-ssl/decision-core/internal/vecmath"
)

func TestOutOfBoundsRule_AwardsOpposingTeam(t *testing.T) {
	rule := NewOutOfBoundsRule(0.15, 0.1)
	geometry := StandardDivisionB()

	frame := model.NewGameFrame(1.0, true, false)
	frame.FriendlyRobots[0] = model.Robot{ID: 0, IsFriendly: true, Position: vecmath.NewVector2D(0, 2.9)}
	ball := model.Ball{Position: vecmath.NewVector3D(0, 2.88, 0)}
	frame.Ball = &ball

	// Friendly (yellow) touches, then the ball rolls out over the
	// sideline on the next frame.
	rule.Check(frame, geometry, model.CommandForceStart)

	outFrame := frame
	outBall := model.Ball{Position: vecmath.NewVector3D(0, 3.3, 0)}
	outFrame.Ball = &outBall
	outFrame.FriendlyRobots = map[uint8]model.Robot{}

	v := rule.Check(outFrame, geometry, model.CommandForceStart)
	if v == nil {
		t.Fatal("expected an out-of-bounds violation")
	}
	if v.SuggestedCommand != model.CommandStop {
		t.Fatalf("expected suggested command STOP, got %v", v.SuggestedCommand)
	}
	if v.NextCommand == nil || *v.NextCommand != model.CommandDirectFreeBlue {
		t.Fatalf("expected next command free kick Blue, got %+v", v.NextCommand)
	}
}

func TestOutOfBoundsRule_UnknownTouchDefaultsToYellow(t *testing.T) {
	rule := NewOutOfBoundsRule(0.15, 0.1)
	geometry := StandardDivisionB()

	frame := model.NewGameFrame(1.0, true, false)
	ball := model.Ball{Position: vecmath.NewVector3D(0, 3.3, 0)}
	frame.Ball = &ball

	v := rule.Check(frame, geometry, model.CommandForceStart)
	if v == nil {
		t.Fatal("expected an out-of-bounds violation")
	}
	if v.SuggestedCommand != model.CommandStop {
		t.Fatalf("expected suggested command STOP, got %v", v.SuggestedCommand)
	}
	if v.NextCommand == nil || *v.NextCommand != model.CommandDirectFreeYellow {
		t.Fatalf("expected unknown-toucher tiebreak to award Yellow, got %+v", v.NextCommand)
	}
}

func TestDefenseAreaRule_TooManyDefenders(t *testing.T) {
	rule := NewDefenseAreaRule(1, true)
	geometry := StandardDivisionB()

	frame := model.NewGameFrame(1.0, true, false) // my team on the left
	frame.FriendlyRobots[0] = model.Robot{ID: 0, IsFriendly: true, Position: vecmath.NewVector2D(-4.3, 0)}
	frame.FriendlyRobots[1] = model.Robot{ID: 1, IsFriendly: true, Position: vecmath.NewVector2D(-4.2, 0.5)}

	v := rule.Check(frame, geometry, model.CommandForceStart)
	if v == nil {
		t.Fatal("expected a defense-area violation for two defenders")
	}
	if v.SuggestedCommand != model.CommandStop {
		t.Fatalf("expected suggested command STOP, got %v", v.SuggestedCommand)
	}
	if v.NextCommand == nil || *v.NextCommand != model.CommandDirectFreeBlue {
		t.Fatalf("expected next command free kick Blue, got %+v", v.NextCommand)
	}
}

func TestDefenseAreaRule_SingleDefenderAllowed(t *testing.T) {
	rule := NewDefenseAreaRule(1, true)
	geometry := StandardDivisionB()

	frame := model.NewGameFrame(1.0, true, false)
	frame.FriendlyRobots[0] = model.Robot{ID: 0, IsFriendly: true, Position: vecmath.NewVector2D(-4.3, 0)}

	if v := rule.Check(frame, geometry, model.CommandForceStart); v != nil {
		t.Fatalf("expected no violation for a single defender, got %+v", v)
	}
}

func TestKeepOutRule_FiresAfterPersistence(t *testing.T) {
	rule := NewKeepOutRule(0.5, 3)
	geometry := StandardDivisionB()

	frame := model.NewGameFrame(1.0, true, false)
	ball := model.Ball{Position: vecmath.NewVector3D(0, 0, 0)}
	frame.Ball = &ball
	frame.EnemyRobots[0] = model.Robot{ID: 0, Position: vecmath.NewVector2D(0.1, 0)}

	var last *model.RuleViolation
	for i := 0; i < 3; i++ {
		last = rule.Check(frame, geometry, model.CommandDirectFreeYellow)
	}
	if last == nil {
		t.Fatal("expected keep-out violation to fire after persistence frames elapse")
	}
	if last.SuggestedCommand != model.CommandStop {
		t.Fatalf("expected STOP, got %v", last.SuggestedCommand)
	}
	if last.NextCommand == nil || *last.NextCommand != model.CommandDirectFreeYellow {
		t.Fatalf("expected the restart to return to the originally kicking team (Yellow), got %+v", last.NextCommand)
	}
}

func TestKeepOutRule_UnknownKickerDefaultsNextCommandToYellow(t *testing.T) {
	rule := NewKeepOutRule(0.5, 1)
	geometry := StandardDivisionB()

	frame := model.NewGameFrame(1.0, true, false)
	ball := model.Ball{Position: vecmath.NewVector3D(0, 0, 0)}
	frame.Ball = &ball
	frame.EnemyRobots[0] = model.Robot{ID: 0, Position: vecmath.NewVector2D(0.1, 0)}

	v := rule.Check(frame, geometry, model.CommandStop)
	if v == nil {
		t.Fatal("expected a keep-out violation during STOP")
	}
	if v.NextCommand == nil || *v.NextCommand != model.CommandDirectFreeYellow {
		t.Fatalf("expected the no-kicker tiebreak to award Yellow, got %+v", v.NextCommand)
	}
}

func TestKeepOutRule_KickingTeamExempt(t *testing.T) {
	rule := NewKeepOutRule(0.5, 1)
	geometry := StandardDivisionB()

	frame := model.NewGameFrame(1.0, true, false)
	ball := model.Ball{Position: vecmath.NewVector3D(0, 0, 0)}
	frame.Ball = &ball
	frame.FriendlyRobots[0] = model.Robot{ID: 0, IsFriendly: true, Position: vecmath.NewVector2D(0.1, 0)}

	if v := rule.Check(frame, geometry, model.CommandDirectFreeYellow); v != nil {
		t.Fatalf("expected the kicking (yellow) team to be exempt, got %+v", v)
	}
}
