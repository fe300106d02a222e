package config

import "testing"

func TestLoadProfile_Builtins(t *testing.T) {
	for _, name := range []string{"strict_ai", "exhibition", "arcade"} {
		p, err := LoadProfile(name)
		if err != nil {
			t.Fatalf("LoadProfile(%q): %v", name, err)
		}
		if p.ProfileName != name {
			t.Fatalf("expected profile_name %q, got %q", name, p.ProfileName)
		}
	}
}

func TestLoadProfile_ArcadeDisablesKeepOut(t *testing.T) {
	p, err := LoadProfile("arcade")
	if err != nil {
		t.Fatal(err)
	}
	if p.Rules.KeepOut.Enabled {
		t.Fatal("expected arcade profile to disable keep_out")
	}
	if !p.Game.ForceStartAfterGoal {
		t.Fatal("expected arcade profile to force-start after goal")
	}
}

func TestLoadProfile_UnknownNameIsNotFound(t *testing.T) {
	_, err := LoadProfile("/nonexistent/path/does-not-exist.yaml")
	if err == nil {
		t.Fatal("expected an error for a nonexistent profile")
	}
}

func TestRefereeProfile_BuildRulesRespectsDisabled(t *testing.T) {
	p, err := LoadProfile("arcade")
	if err != nil {
		t.Fatal(err)
	}
	rules := p.BuildRules()
	if len(rules) != 3 {
		t.Fatalf("expected 3 enabled rules (keep_out disabled), got %d", len(rules))
	}
}
