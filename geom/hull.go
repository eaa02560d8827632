package geom

import (
	"image"
	"sort"
)

// Clockwise 8-neighbourhood in screen coordinates (y grows down), starting east.
var neighbours = [8]image.Point{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1},
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

// Outline traces the boundary of the first opaque region in raster order and
// returns it as an ordered polyline. A lone pixel yields a single point and an
// empty mask yields nil.
func (m *Mask) Outline() []image.Point {
	start, ok := m.firstSet()
	if !ok {
		return nil
	}
	points := []image.Point{start}

	// Everything west of and above start is empty, so the scan begins at NW.
	dir := m.nextDir(start, 5)
	if dir < 0 {
		return points
	}
	firstDir := dir
	cur := start
	limit := 4*m.w*m.h + 8
	for i := 0; i < limit; i++ {
		cur = cur.Add(neighbours[dir])
		next := m.nextDir(cur, (dir+6)%8)
		if cur == start && next == firstDir {
			break
		}
		points = append(points, cur)
		dir = next
	}
	return points
}

func (m *Mask) firstSet() (image.Point, bool) {
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			if m.At(x, y) {
				return image.Pt(x, y), true
			}
		}
	}
	return image.Point{}, false
}

// nextDir scans the neighbours of p clockwise from index from and returns the
// first opaque one, or -1.
func (m *Mask) nextDir(p image.Point, from int) int {
	for i := 0; i < 8; i++ {
		k := (from + i) % 8
		n := p.Add(neighbours[k])
		if m.At(n.X, n.Y) {
			return k
		}
	}
	return -1
}

// ConvexHull returns the convex hull of the mask's outline as an ordered
// polygon starting at its leftmost vertex. Masks with fewer than three outline
// points, or whose outline is collinear, produce an empty hull.
func ConvexHull(m *Mask) []image.Point {
	if m == nil {
		return nil
	}
	outline := m.Outline()
	if len(outline) < 3 {
		return nil
	}
	return HullOf(outline)
}

// HullOf computes the convex hull of an arbitrary point set using Andrew's
// monotone chain. Collinear points on the hull edges are dropped.
func HullOf(points []image.Point) []image.Point {
	pts := make([]image.Point, len(points))
	copy(pts, points)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})
	pts = dedupe(pts)
	if len(pts) < 3 {
		return nil
	}

	hull := make([]image.Point, 0, 2*len(pts))
	// lower chain
	for _, p := range pts {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	// upper chain
	lower := len(hull) + 1
	for i := len(pts) - 2; i >= 0; i-- {
		p := pts[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	hull = hull[:len(hull)-1]
	if len(hull) < 3 {
		return nil
	}
	return hull
}

func cross(o, a, b image.Point) int {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

func dedupe(sorted []image.Point) []image.Point {
	if len(sorted) == 0 {
		return sorted
	}
	out := sorted[:1]
	for _, p := range sorted[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	return out
}

// Translate returns a copy of points shifted by offset.
func Translate(points []image.Point, offset image.Point) []image.Point {
	if len(points) == 0 {
		return nil
	}
	out := make([]image.Point, len(points))
	for i, p := range points {
		out[i] = p.Add(offset)
	}
	return out
}
