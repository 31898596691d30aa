package geometry

import "math"

// NearestPoint returns the point closest to (x, y) that lies strictly within
// tolerance. It is the drop-target test used when a drag is released.
func NearestPoint(points []Point, x, y, tolerance float64) (Point, bool) {
	best := Point{}
	bestDist := math.Inf(1)
	found := false
	for _, p := range points {
		d := math.Hypot(p.X-x, p.Y-y)
		if d < tolerance && d < bestDist {
			best = p
			bestDist = d
			found = true
		}
	}
	return best, found
}

// PointToLineDistance returns the perpendicular distance from (px, py) to the
// line through (x1, y1) and (x2, y2). A degenerate line falls back to the
// distance between the two points.
func PointToLineDistance(px, py, x1, y1, x2, y2 float64) float64 {
	den := math.Hypot(y2-y1, x2-x1)
	if den == 0 {
		return math.Hypot(px-x1, py-y1)
	}
	num := math.Abs((y2-y1)*px - (x2-x1)*py + x2*y1 - y2*x1)
	return num / den
}
