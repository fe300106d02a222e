// Package config loads YAML referee profiles into the typed structures
// the referee package consumes (spec §4.1.2).
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/utama-ssl/decision-core/internal/referee"
)

// GoalDetectionConfig configures GoalRule.
type GoalDetectionConfig struct {
	Enabled         bool    `yaml:"enabled"`
	CooldownSeconds float64 `yaml:"cooldown_seconds"`
}

// OutOfBoundsConfig configures OutOfBoundsRule.
type OutOfBoundsConfig struct {
	Enabled         bool    `yaml:"enabled"`
	TouchThreshold  float64 `yaml:"touch_threshold_meters"`
	InfieldOffset   float64 `yaml:"infield_offset_meters"`
}

// DefenseAreaConfig configures DefenseAreaRule.
type DefenseAreaConfig struct {
	Enabled              bool `yaml:"enabled"`
	MaxDefenders         int  `yaml:"max_defenders"`
	AttackerInfringement bool `yaml:"attacker_infringement"`
}

// KeepOutConfig configures KeepOutRule.
type KeepOutConfig struct {
	Enabled                    bool    `yaml:"enabled"`
	RadiusMeters               float64 `yaml:"radius_meters"`
	ViolationPersistenceFrames int     `yaml:"violation_persistence_frames"`
}

// RulesConfig bundles every rule's configuration.
type RulesConfig struct {
	GoalDetection GoalDetectionConfig `yaml:"goal_detection"`
	OutOfBounds   OutOfBoundsConfig   `yaml:"out_of_bounds"`
	DefenseArea   DefenseAreaConfig   `yaml:"defense_area"`
	KeepOut       KeepOutConfig       `yaml:"keep_out"`
}

// GeometryConfig mirrors referee.Geometry for YAML decoding.
type GeometryConfig struct {
	HalfLength         float64 `yaml:"half_length"`
	HalfWidth          float64 `yaml:"half_width"`
	HalfGoalWidth      float64 `yaml:"half_goal_width"`
	HalfDefenseLength  float64 `yaml:"half_defense_length"`
	HalfDefenseWidth   float64 `yaml:"half_defense_width"`
	CenterCircleRadius float64 `yaml:"center_circle_radius"`
}

// GameConfig configures match pacing and stoppage behaviour.
type GameConfig struct {
	HalfDurationSeconds  float64 `yaml:"half_duration_seconds"`
	KickoffTeam          string  `yaml:"kickoff_team"`
	ForceStartAfterGoal  bool    `yaml:"force_start_after_goal"`
	StopDurationSeconds  float64 `yaml:"stop_duration_seconds"`
	TransitionCooldownMs float64 `yaml:"transition_cooldown_ms"`
}

// RefereeProfile is a fully decoded, defaulted referee configuration.
type RefereeProfile struct {
	ProfileName string         `yaml:"profile_name"`
	Geometry    GeometryConfig `yaml:"geometry"`
	Rules       RulesConfig    `yaml:"rules"`
	Game        GameConfig     `yaml:"game"`
}

var builtinProfiles = map[string]string{
	"strict_ai": `
profile_name: strict_ai
rules:
  goal_detection: {enabled: true, cooldown_seconds: 1.0}
  out_of_bounds: {enabled: true, touch_threshold_meters: 0.15, infield_offset_meters: 0.1}
  defense_area: {enabled: true, max_defenders: 1, attacker_infringement: true}
  keep_out: {enabled: true, radius_meters: 0.5, violation_persistence_frames: 30}
game:
  half_duration_seconds: 300.0
  kickoff_team: yellow
  force_start_after_goal: false
  stop_duration_seconds: 3.0
  transition_cooldown_ms: 300
`,
	"exhibition": `
profile_name: exhibition
rules:
  goal_detection: {enabled: true, cooldown_seconds: 1.0}
  out_of_bounds: {enabled: true, touch_threshold_meters: 0.15, infield_offset_meters: 0.1}
  defense_area: {enabled: true, max_defenders: 2, attacker_infringement: false}
  keep_out: {enabled: true, radius_meters: 0.5, violation_persistence_frames: 45}
game:
  half_duration_seconds: 300.0
  kickoff_team: yellow
  force_start_after_goal: false
  stop_duration_seconds: 3.0
  transition_cooldown_ms: 300
`,
	"arcade": `
profile_name: arcade
rules:
  goal_detection: {enabled: true, cooldown_seconds: 0.5}
  out_of_bounds: {enabled: true, touch_threshold_meters: 0.15, infield_offset_meters: 0.1}
  defense_area: {enabled: true, max_defenders: 1, attacker_infringement: true}
  keep_out: {enabled: false, radius_meters: 0.5, violation_persistence_frames: 30}
game:
  half_duration_seconds: 300.0
  kickoff_team: yellow
  force_start_after_goal: true
  stop_duration_seconds: 2.0
  transition_cooldown_ms: 300
`,
}

// ErrProfileNotFound is returned when name_or_path resolves to neither a
// built-in profile nor a readable file.
var ErrProfileNotFound = fmt.Errorf("referee profile not found")

// LoadProfile loads a RefereeProfile by built-in name ("strict_ai",
// "exhibition", "arcade") or by file path, applying defaults for any
// field omitted from the YAML document.
func LoadProfile(nameOrPath string) (RefereeProfile, error) {
	var raw []byte

	if builtin, ok := builtinProfiles[nameOrPath]; ok {
		raw = []byte(builtin)
	} else {
		abs := nameOrPath
		if !filepath.IsAbs(abs) {
			var err error
			abs, err = filepath.Abs(nameOrPath)
			if err != nil {
				return RefereeProfile{}, fmt.Errorf("resolving profile path %q: %w", nameOrPath, err)
			}
		}
		data, err := os.ReadFile(abs)
		if err != nil {
			return RefereeProfile{}, fmt.Errorf("%w: %q: %v", ErrProfileNotFound, nameOrPath, err)
		}
		raw = data
	}

	profile := defaultProfile()
	if err := yaml.Unmarshal(raw, &profile); err != nil {
		return RefereeProfile{}, fmt.Errorf("parsing referee profile %q: %w", nameOrPath, err)
	}
	return profile, nil
}

func defaultProfile() RefereeProfile {
	return RefereeProfile{
		ProfileName: "unknown",
		Geometry: GeometryConfig{
			HalfLength: 4.5, HalfWidth: 3.0, HalfGoalWidth: 0.5,
			HalfDefenseLength: 0.5, HalfDefenseWidth: 1.0, CenterCircleRadius: 0.5,
		},
		Rules: RulesConfig{
			GoalDetection: GoalDetectionConfig{Enabled: true, CooldownSeconds: 1.0},
			OutOfBounds:   OutOfBoundsConfig{Enabled: true, TouchThreshold: 0.15, InfieldOffset: 0.1},
			DefenseArea:   DefenseAreaConfig{Enabled: true, MaxDefenders: 1, AttackerInfringement: true},
			KeepOut:       KeepOutConfig{Enabled: true, RadiusMeters: 0.5, ViolationPersistenceFrames: 30},
		},
		Game: GameConfig{
			HalfDurationSeconds: 300.0, KickoffTeam: "yellow",
			StopDurationSeconds: 3.0, TransitionCooldownMs: 300,
		},
	}
}

// FieldGeometry converts the decoded geometry config into a referee.Geometry.
func (p RefereeProfile) FieldGeometry() referee.Geometry {
	return referee.Geometry{
		HalfLength:         p.Geometry.HalfLength,
		HalfWidth:          p.Geometry.HalfWidth,
		HalfGoalWidth:      p.Geometry.HalfGoalWidth,
		HalfDefenseLength:  p.Geometry.HalfDefenseLength,
		HalfDefenseWidth:   p.Geometry.HalfDefenseWidth,
		CenterCircleRadius: p.Geometry.CenterCircleRadius,
	}
}

// BuildRules constructs the four rule-engine rules from the profile's
// configuration, in the fixed priority order the engine requires, and
// omits any rule explicitly disabled in YAML.
func (p RefereeProfile) BuildRules() []referee.Rule {
	var rules []referee.Rule
	if p.Rules.GoalDetection.Enabled {
		rules = append(rules, referee.NewGoalRule(p.Rules.GoalDetection.CooldownSeconds))
	}
	if p.Rules.OutOfBounds.Enabled {
		rules = append(rules, referee.NewOutOfBoundsRule(p.Rules.OutOfBounds.TouchThreshold, p.Rules.OutOfBounds.InfieldOffset))
	}
	if p.Rules.DefenseArea.Enabled {
		rules = append(rules, referee.NewDefenseAreaRule(p.Rules.DefenseArea.MaxDefenders, p.Rules.DefenseArea.AttackerInfringement))
	}
	if p.Rules.KeepOut.Enabled {
		rules = append(rules, referee.NewKeepOutRule(p.Rules.KeepOut.RadiusMeters, p.Rules.KeepOut.ViolationPersistenceFrames))
	}
	return rules
}
