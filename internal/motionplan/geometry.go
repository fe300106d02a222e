// Package motionplan implements the Dynamic-Window local motion planner
// (spec §4.2): candidate-velocity sampling, obstacle scoring, and exit
// strategies for temporary keep-out polygons.
package motionplan

import (
	"math"

	"github.com/utama-ssl/decision-core/internal/vecmath"
)

const geometryEpsilon = 1e-9

// AxisAlignedRectangle is a cheap bounding-box approximation of a
// temporary obstacle polygon (defense areas, keep-out circles), used for
// clearance checks in the fast planner loop.
type AxisAlignedRectangle struct {
	MinX, MaxX, MinY, MaxY float64
}

// Contains reports whether p lies within the rectangle, boundary inclusive.
func (r AxisAlignedRectangle) Contains(p vecmath.Vector2D) bool {
	return r.MinX <= p.X && p.X <= r.MaxX && r.MinY <= p.Y && p.Y <= r.MaxY
}

// DistanceToBoundary returns the Euclidean distance from p to the
// rectangle's nearest edge. Zero when p is inside.
func (r AxisAlignedRectangle) DistanceToBoundary(p vecmath.Vector2D) float64 {
	dx := math.Max(math.Max(r.MinX-p.X, 0), p.X-r.MaxX)
	dy := math.Max(math.Max(r.MinY-p.Y, 0), p.Y-r.MaxY)
	return math.Hypot(dx, dy)
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// nearestBoundaryPointAndNormal returns the closest point on the
// rectangle boundary to p, and the outward normal at that point. If p is
// inside, the nearest of the four edges is chosen; if outside, the
// clamped point is used.
func (r AxisAlignedRectangle) nearestBoundaryPointAndNormal(p vecmath.Vector2D) (vecmath.Vector2D, vecmath.Vector2D) {
	if r.Contains(p) {
		type candidate struct {
			dist   float64
			normal vecmath.Vector2D
			point  vecmath.Vector2D
		}
		candidates := []candidate{
			{p.X - r.MinX, vecmath.NewVector2D(-1, 0), vecmath.NewVector2D(r.MinX, p.Y)},
			{r.MaxX - p.X, vecmath.NewVector2D(1, 0), vecmath.NewVector2D(r.MaxX, p.Y)},
			{p.Y - r.MinY, vecmath.NewVector2D(0, -1), vecmath.NewVector2D(p.X, r.MinY)},
			{r.MaxY - p.Y, vecmath.NewVector2D(0, 1), vecmath.NewVector2D(p.X, r.MaxY)},
		}
		best := candidates[0]
		for _, c := range candidates[1:] {
			if c.dist < best.dist {
				best = c
			}
		}
		return best.point, best.normal
	}

	clamped := vecmath.NewVector2D(clampf(p.X, r.MinX, r.MaxX), clampf(p.Y, r.MinY, r.MaxY))
	diff := p.Sub(clamped)
	norm := diff.Magnitude()
	if norm < geometryEpsilon {
		switch {
		case math.Abs(p.X-r.MinX) < geometryEpsilon:
			return clamped, vecmath.NewVector2D(-1, 0)
		case math.Abs(p.X-r.MaxX) < geometryEpsilon:
			return clamped, vecmath.NewVector2D(1, 0)
		case math.Abs(p.Y-r.MinY) < geometryEpsilon:
			return clamped, vecmath.NewVector2D(0, -1)
		default:
			return clamped, vecmath.NewVector2D(0, 1)
		}
	}
	return clamped, diff.DivScalar(norm)
}

// ExitPointWithBuffer returns a point buffer metres outward, along the
// boundary normal nearest p.
func (r AxisAlignedRectangle) ExitPointWithBuffer(p vecmath.Vector2D, buffer float64) vecmath.Vector2D {
	boundaryPoint, normal := r.nearestBoundaryPointAndNormal(p)
	return boundaryPoint.Add(normal.Scale(buffer))
}

func (r AxisAlignedRectangle) corners() [4]vecmath.Vector2D {
	return [4]vecmath.Vector2D{
		vecmath.NewVector2D(r.MinX, r.MinY),
		vecmath.NewVector2D(r.MaxX, r.MinY),
		vecmath.NewVector2D(r.MaxX, r.MaxY),
		vecmath.NewVector2D(r.MinX, r.MaxY),
	}
}

func (r AxisAlignedRectangle) edges() [4][2]vecmath.Vector2D {
	c := r.corners()
	return [4][2]vecmath.Vector2D{
		{c[0], c[1]}, {c[1], c[2]}, {c[2], c[3]}, {c[3], c[0]},
	}
}

// DistanceToSegment returns the minimum distance between the rectangle
// and the segment [start, end]; zero if either endpoint lies inside the
// rectangle or the segment crosses an edge.
func (r AxisAlignedRectangle) DistanceToSegment(start, end vecmath.Vector2D) float64 {
	if r.Contains(start) || r.Contains(end) {
		return 0
	}
	best := math.Min(r.DistanceToBoundary(start), r.DistanceToBoundary(end))
	for _, edge := range r.edges() {
		if d := segmentToSegmentDistance(start, end, edge[0], edge[1]); d < best {
			best = d
		}
	}
	return best
}

func pointSegmentDistance(point, start, end vecmath.Vector2D) float64 {
	segment := end.Sub(start)
	denom := segment.Dot(segment)
	if denom < geometryEpsilon {
		return point.DistanceTo(start)
	}
	t := clampf(point.Sub(start).Dot(segment)/denom, 0, 1)
	projection := start.Add(segment.Scale(t))
	return point.DistanceTo(projection)
}

func orientation(a, b, c vecmath.Vector2D) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

func onSegment(a, b, c vecmath.Vector2D) bool {
	return math.Min(a.X, c.X)-geometryEpsilon <= b.X && b.X <= math.Max(a.X, c.X)+geometryEpsilon &&
		math.Min(a.Y, c.Y)-geometryEpsilon <= b.Y && b.Y <= math.Max(a.Y, c.Y)+geometryEpsilon
}

func segmentsIntersect(p1, q1, p2, q2 vecmath.Vector2D) bool {
	o1 := orientation(p1, q1, p2)
	o2 := orientation(p1, q1, q2)
	o3 := orientation(p2, q2, p1)
	o4 := orientation(p2, q2, q1)

	if ((o1 > 0 && o2 < 0) || (o1 < 0 && o2 > 0)) && ((o3 > 0 && o4 < 0) || (o3 < 0 && o4 > 0)) {
		return true
	}
	if math.Abs(o1) <= geometryEpsilon && onSegment(p1, p2, q1) {
		return true
	}
	if math.Abs(o2) <= geometryEpsilon && onSegment(p1, q2, q1) {
		return true
	}
	if math.Abs(o3) <= geometryEpsilon && onSegment(p2, p1, q2) {
		return true
	}
	if math.Abs(o4) <= geometryEpsilon && onSegment(p2, q1, q2) {
		return true
	}
	return false
}

func segmentToSegmentDistance(aStart, aEnd, bStart, bEnd vecmath.Vector2D) float64 {
	if segmentsIntersect(aStart, aEnd, bStart, bEnd) {
		return 0
	}
	return math.Min(
		math.Min(pointSegmentDistance(aStart, bStart, bEnd), pointSegmentDistance(aEnd, bStart, bEnd)),
		math.Min(pointSegmentDistance(bStart, aStart, aEnd), pointSegmentDistance(bEnd, aStart, aEnd)),
	)
}
