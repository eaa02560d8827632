package sim

import "image"

// Default quadtree limits
const (
	DefaultQuadtreeMaxObjects = 10
	DefaultQuadtreeMaxLevels  = 5
)

// Quadtree is a recursive spatial index over entity bounding rectangles. It is
// cleared and rebuilt every frame, so it never holds stale positions.
//
// Rectangles are half-open pixel boxes. An entity whose box straddles a
// midpoint is stored in every child quadrant it overlaps. A box that overlaps
// no child (a zero-area box lying exactly on a midpoint) stays in the node
// that split, so Retrieve still returns it.
type Quadtree struct {
	bounds     image.Rectangle
	maxObjects int
	maxLevels  int
	level      int

	objects []*Entity
	nodes   []*Quadtree
}

// NewQuadtree creates a root node. Non-positive limits fall back to the defaults.
func NewQuadtree(bounds image.Rectangle, maxObjects, maxLevels int) *Quadtree {
	if maxObjects <= 0 {
		maxObjects = DefaultQuadtreeMaxObjects
	}
	if maxLevels < 0 {
		maxLevels = DefaultQuadtreeMaxLevels
	}
	return newNode(bounds, maxObjects, maxLevels, 0)
}

func newNode(bounds image.Rectangle, maxObjects, maxLevels, level int) *Quadtree {
	return &Quadtree{
		bounds:     bounds,
		maxObjects: maxObjects,
		maxLevels:  maxLevels,
		level:      level,
	}
}

// Bounds returns the region covered by this node
func (q *Quadtree) Bounds() image.Rectangle {
	return q.bounds
}

// Level returns the depth of this node (root is 0)
func (q *Quadtree) Level() int {
	return q.level
}

// Children returns the four child quadrants, or nil when the node has not split.
// Order: top-left, top-right, bottom-left, bottom-right.
func (q *Quadtree) Children() []*Quadtree {
	return q.nodes
}

// Objects returns the entities held directly by this node
func (q *Quadtree) Objects() []*Entity {
	return q.objects
}

// Clear recursively empties every node and discards all children
func (q *Quadtree) Clear() {
	for i := range q.objects {
		q.objects[i] = nil
	}
	q.objects = q.objects[:0]
	for _, n := range q.nodes {
		n.Clear()
	}
	q.nodes = nil
}

func (q *Quadtree) split() {
	subW := q.bounds.Dx() / 2
	subH := q.bounds.Dy() / 2
	x, y := q.bounds.Min.X, q.bounds.Min.Y
	next := q.level + 1

	q.nodes = []*Quadtree{
		newNode(image.Rect(x, y, x+subW, y+subH), q.maxObjects, q.maxLevels, next),
		newNode(image.Rect(x+subW, y, x+2*subW, y+subH), q.maxObjects, q.maxLevels, next),
		newNode(image.Rect(x, y+subH, x+subW, y+2*subH), q.maxObjects, q.maxLevels, next),
		newNode(image.Rect(x+subW, y+subH, x+2*subW, y+2*subH), q.maxObjects, q.maxLevels, next),
	}
}

// quadrants returns the indexes of every child quadrant r overlaps. The
// midpoint row and column belong to the bottom and right halves.
func (q *Quadtree) quadrants(r image.Rectangle) []int {
	vMid := q.bounds.Min.X + q.bounds.Dx()/2
	hMid := q.bounds.Min.Y + q.bounds.Dy()/2

	top := r.Min.Y < hMid && r.Max.Y > r.Min.Y
	bottom := r.Max.Y > hMid && r.Max.Y > r.Min.Y
	left := r.Min.X < vMid && r.Max.X > r.Min.X
	right := r.Max.X > vMid && r.Max.X > r.Min.X

	indexes := make([]int, 0, 4)
	if top && left {
		indexes = append(indexes, 0)
	}
	if top && right {
		indexes = append(indexes, 1)
	}
	if bottom && left {
		indexes = append(indexes, 2)
	}
	if bottom && right {
		indexes = append(indexes, 3)
	}
	return indexes
}

// Insert adds an entity. A split node forwards it to every overlapping child.
// A leaf keeps it and splits once it holds more than maxObjects, as long as
// maxLevels has not been reached.
func (q *Quadtree) Insert(e *Entity) {
	if e == nil {
		return
	}
	if q.nodes != nil {
		q.insertIntoChildren(e)
		return
	}

	q.objects = append(q.objects, e)
	if len(q.objects) <= q.maxObjects || q.level >= q.maxLevels {
		return
	}

	q.split()
	held := q.objects
	q.objects = nil
	for _, obj := range held {
		q.insertIntoChildren(obj)
	}
}

func (q *Quadtree) insertIntoChildren(e *Entity) {
	indexes := q.quadrants(e.Bounds())
	if len(indexes) == 0 {
		q.objects = append(q.objects, e)
		return
	}
	for _, i := range indexes {
		q.nodes[i].Insert(e)
	}
}

// Retrieve returns every entity that may collide with query: the objects held
// at this node plus the retrieval of each child the query overlaps. The result
// contains duplicates when stored entities or the query straddle a boundary.
func (q *Quadtree) Retrieve(query *Entity) []*Entity {
	if query == nil {
		return nil
	}
	return q.RetrieveRect(query.Bounds(), nil)
}

// RetrieveRect appends the candidates for r to buf and returns it
func (q *Quadtree) RetrieveRect(r image.Rectangle, buf []*Entity) []*Entity {
	buf = append(buf, q.objects...)
	if q.nodes == nil {
		return buf
	}
	for _, i := range q.quadrants(r) {
		buf = q.nodes[i].RetrieveRect(r, buf)
	}
	return buf
}

// RetrieveUnique is Retrieve with duplicates removed, preserving first-seen order
func (q *Quadtree) RetrieveUnique(query *Entity) []*Entity {
	all := q.Retrieve(query)
	seen := make(map[*Entity]struct{}, len(all))
	out := all[:0]
	for _, e := range all {
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}
