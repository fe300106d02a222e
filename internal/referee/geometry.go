// Package referee implements the custom rule-driven referee state
// machine (spec §4.1): field geometry predicates, the ordered rule
// engine, and the game state machine that owns score/command/stage.
package referee

// Geometry holds the immutable field constants a referee profile
// configures and the spatial predicates rules check against. All
// measurements are metres, standard SSL convention: origin at centre,
// +x toward the right goal, +y toward the top of the field.
type Geometry struct {
	HalfLength        float64
	HalfWidth         float64
	HalfGoalWidth     float64
	HalfDefenseLength float64
	HalfDefenseWidth  float64
	CenterCircleRadius float64
}

// StandardDivisionB returns geometry matching the SSL Division B field.
func StandardDivisionB() Geometry {
	return Geometry{
		HalfLength:         4.5,
		HalfWidth:          3.0,
		HalfGoalWidth:      0.5,
		HalfDefenseLength:  0.5,
		HalfDefenseWidth:   1.0,
		CenterCircleRadius: 0.5,
	}
}

// IsInField reports whether (x, y) lies within the playing field,
// boundary inclusive.
func (g Geometry) IsInField(x, y float64) bool {
	return absf(x) <= g.HalfLength && absf(y) <= g.HalfWidth
}

// IsInLeftGoal reports whether the ball has crossed the left goal line
// inside the goal mouth.
func (g Geometry) IsInLeftGoal(x, y float64) bool {
	return x < -g.HalfLength && absf(y) < g.HalfGoalWidth
}

// IsInRightGoal reports whether the ball has crossed the right goal line
// inside the goal mouth.
func (g Geometry) IsInRightGoal(x, y float64) bool {
	return x > g.HalfLength && absf(y) < g.HalfGoalWidth
}

// IsInLeftDefenseArea reports whether (x, y) lies inside the left
// defense area.
func (g Geometry) IsInLeftDefenseArea(x, y float64) bool {
	return x <= -g.HalfLength+2*g.HalfDefenseLength && absf(y) <= g.HalfDefenseWidth
}

// IsInRightDefenseArea reports whether (x, y) lies inside the right
// defense area.
func (g Geometry) IsInRightDefenseArea(x, y float64) bool {
	return x >= g.HalfLength-2*g.HalfDefenseLength && absf(y) <= g.HalfDefenseWidth
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
