// Package proximity builds the per-frame pairwise distance matrix between
// robots and the ball (spec §3, ProximityLookup).
package proximity

import (
	"math"

	"github.com/utama-ssl/decision-core/internal/model"
)

// Kind distinguishes the object a ProximityLookup row/column refers to.
type Kind int

const (
	KindRobot Kind = iota
	KindBall
)

// Team distinguishes friendly/enemy/neutral (the ball) ownership.
type Team int

const (
	TeamFriendly Team = iota
	TeamEnemy
	TeamNeutral
)

// Key identifies one row/column of the proximity matrix.
type Key struct {
	Team Team
	Kind Kind
	ID   uint8
}

// Lookup is an immutable, once-built-per-frame pairwise distance matrix
// between all robots and the ball. Self-distance is always +Inf so
// argmin-style queries never return the querying object itself.
type Lookup struct {
	keys      []Key
	index     map[Key]int
	distances [][]float64

	friendlyEnd int // exclusive end index of the friendly-robot block
	enemyEnd    int // exclusive end index of the enemy-robot block (friendly+enemy)
	hasBall     bool
}

// Build constructs a Lookup from a GameFrame. Robot ordering within each
// team is unspecified (map iteration order) — only the team partition
// indices are meaningful.
func Build(frame model.GameFrame) *Lookup {
	l := &Lookup{index: map[Key]int{}}

	pts := make([][2]float64, 0, len(frame.FriendlyRobots)+len(frame.EnemyRobots)+1)
	for id, r := range frame.FriendlyRobots {
		l.keys = append(l.keys, Key{Team: TeamFriendly, Kind: KindRobot, ID: id})
		pts = append(pts, r.Position.ToArray())
	}
	l.friendlyEnd = len(l.keys)

	for id, r := range frame.EnemyRobots {
		l.keys = append(l.keys, Key{Team: TeamEnemy, Kind: KindRobot, ID: id})
		pts = append(pts, r.Position.ToArray())
	}
	l.enemyEnd = len(l.keys)

	if frame.Ball != nil {
		l.keys = append(l.keys, Key{Team: TeamNeutral, Kind: KindBall})
		pts = append(pts, frame.Ball.Position.To2D().ToArray())
		l.hasBall = true
	}

	for i, k := range l.keys {
		l.index[k] = i
	}

	n := len(pts)
	l.distances = make([][]float64, n)
	for i := range l.distances {
		l.distances[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				l.distances[i][j] = math.Inf(1)
				continue
			}
			dx := pts[i][0] - pts[j][0]
			dy := pts[i][1] - pts[j][1]
			l.distances[i][j] = math.Hypot(dx, dy)
		}
	}
	return l
}

// Distance returns the Euclidean distance between a and b, or +Inf if
// either key is unknown or a == b.
func (l *Lookup) Distance(a, b Key) float64 {
	ai, aok := l.index[a]
	bi, bok := l.index[b]
	if !aok || !bok {
		return math.Inf(1)
	}
	return l.distances[ai][bi]
}

// ClosestToBall returns the nearest robot to the ball, restricted to
// team when it is TeamFriendly or TeamEnemy; any other value searches
// both teams (as ClosestToBallAny does). Returns false if there is no
// ball or no candidate robot.
func (l *Lookup) ClosestToBall(team Team) (Key, float64, bool) {
	if !l.hasBall {
		return Key{}, math.Inf(1), false
	}
	ballIdx := len(l.keys) - 1
	row := l.distances[ballIdx]

	start, end := 0, l.enemyEnd
	switch team {
	case TeamFriendly:
		start, end = 0, l.friendlyEnd
	case TeamEnemy:
		start, end = l.friendlyEnd, l.enemyEnd
	}
	if start == end {
		return Key{}, math.Inf(1), false
	}

	best := start
	for i := start + 1; i < end; i++ {
		if row[i] < row[best] {
			best = i
		}
	}
	return l.keys[best], row[best], true
}

// ClosestToBallAny returns the nearest robot to the ball across both teams.
func (l *Lookup) ClosestToBallAny() (Key, float64, bool) {
	if !l.hasBall {
		return Key{}, math.Inf(1), false
	}
	ballIdx := len(l.keys) - 1
	row := l.distances[ballIdx]
	if l.enemyEnd == 0 {
		return Key{}, math.Inf(1), false
	}
	best := 0
	for i := 1; i < l.enemyEnd; i++ {
		if row[i] < row[best] {
			best = i
		}
	}
	return l.keys[best], row[best], true
}

// Symmetric reports whether the distance matrix is symmetric — an
// invariant checked in tests (spec §8).
func (l *Lookup) Symmetric() bool {
	n := len(l.keys)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if l.distances[i][j] != l.distances[j][i] {
				return false
			}
		}
	}
	return true
}

// DiagonalIsInf reports whether every self-distance is +Inf.
func (l *Lookup) DiagonalIsInf() bool {
	for i := range l.keys {
		if !math.IsInf(l.distances[i][i], 1) {
			return false
		}
	}
	return true
}
