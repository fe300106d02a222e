package motionplan

import "github.com/utama-ssl/decision-core/internal/vecmath"

// Exit-strategy tuning constants (spec §4.2 "Exit strategies").
const (
	exitPointBuffer        = 0.12 // metres outward from the boundary the exit point targets
	obstacleSafeBuffer     = 0.05 // distance inside which a robot is considered "too close"
	closeEnoughToExitPoint = 0.03 // distance from the exit point considered "reached"
)

// ExitStrategy decides how a robot already inside or hugging a temporary
// obstacle should get clear of it. Returns ok=false when no action is
// required.
type ExitStrategy interface {
	GetExitPoint(robotPosition vecmath.Vector2D, obstacles []ObstacleRegion) (vecmath.Vector2D, bool)
}

// ClosestPointExit exits via the nearest rectangle boundary point, offset
// outward by exitPointBuffer. Assumes obstacles do not overlap, so a
// robot is inside at most one at a time.
type ClosestPointExit struct{}

// GetExitPoint implements ExitStrategy.
func (ClosestPointExit) GetExitPoint(robotPosition vecmath.Vector2D, obstacles []ObstacleRegion) (vecmath.Vector2D, bool) {
	for _, obstacle := range obstacles {
		if isTooClose(robotPosition, obstacle) {
			return obstacle.Rect.ExitPointWithBuffer(robotPosition, exitPointBuffer), true
		}
	}
	return vecmath.Vector2D{}, false
}

func isTooClose(robotPosition vecmath.Vector2D, obstacle ObstacleRegion) bool {
	return obstacle.Rect.Contains(robotPosition) || obstacle.Rect.DistanceToBoundary(robotPosition) < obstacleSafeBuffer
}

// IsCloseEnoughToExitPoint reports whether robotPosition has reached
// exitPoint closely enough to stop steering toward it.
func IsCloseEnoughToExitPoint(robotPosition, exitPoint vecmath.Vector2D) bool {
	return robotPosition.DistanceTo(exitPoint) < closeEnoughToExitPoint
}
