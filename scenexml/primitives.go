package scenexml

import (
	"sort"
)

// cursor is used while parsing scene files
type cursor struct {
	cfg config

	// image size, used to scale normalized positions
	width, height int
	// legacy files transpose x,y and store colors as BGR
	swap bool
}

// readPoints reads `count` consecutive `tag` children of `parent`.
// Normalized points are scaled by the image size: note that x is
// scaled by the height and y by the width, as the file formats do.
// If `swap` is true, x and y are exchanged after scaling.
func (c *cursor) readPoints(parent *element, tag string, count int, isNormalized, swap bool) ([]Point, error) {
	child := parent.firstChild(tag)
	if child == nil {
		return nil, missingElement(tag, 0)
	}
	points := make([]Point, 0, capacity(parent, count))
	for i := 0; i < count; i++ {
		if child == nil {
			return nil, missingElement(tag, i)
		}
		p := Point{
			X: child.floatAttr("x", 0),
			Y: child.floatAttr("y", 0),
		}
		if isNormalized {
			p.X *= float64(c.height)
			p.Y *= float64(c.width)
		}
		if swap {
			p.X, p.Y = p.Y, p.X
		}
		points = append(points, p)
		child = child.nextSibling(tag)
	}
	c.warnUnread(child, tag, count)
	return points, nil
}

// readColors reads `count` consecutive `tag` children of `parent`.
// If `swap` is true, the red and blue channels are exchanged.
func (c *cursor) readColors(parent *element, tag string, count int, swap bool) ([]Color, error) {
	child := parent.firstChild(tag)
	if child == nil {
		return nil, missingElement(tag, 0)
	}
	colors := make([]Color, 0, capacity(parent, count))
	for i := 0; i < count; i++ {
		if child == nil {
			return nil, missingElement(tag, i)
		}
		colors = append(colors, readColor(child, swap))
		child = child.nextSibling(tag)
	}
	c.warnUnread(child, tag, count)
	return colors, nil
}

// readColorPoints reads `count` consecutive `tag` children of `parent`,
// with their parameter location stored in the globalID attribute.
// When parameters go beyond 1, the whole sequence is divided by
// the maximum parameter.
func (c *cursor) readColorPoints(parent *element, tag string, count int, swap bool) ([]ColorPoint, error) {
	child := parent.firstChild(tag)
	if child == nil {
		return nil, missingElement(tag, 0)
	}
	points := make([]ColorPoint, 0, capacity(parent, count))
	maxT := 1.
	for i := 0; i < count; i++ {
		if child == nil {
			return nil, missingElement(tag, i)
		}
		cp := ColorPoint{
			Color: readColor(child, swap),
			T:     child.floatAttr("globalID", 0),
		}
		if cp.T > maxT {
			maxT = cp.T
		}
		points = append(points, cp)
		child = child.nextSibling(tag)
	}
	c.warnUnread(child, tag, count)

	if maxT > 1 {
		for i := range points {
			points[i].T /= maxT
		}
	}
	if c.cfg.sortParameters {
		sort.SliceStable(points, func(i, j int) bool { return points[i].T < points[j].T })
	}
	return points, nil
}

// readColor decodes one color element. Each channel is given
// either in [0, 255] (uppercase attribute) or in [0, 1] (lowercase attribute).
func readColor(el *element, swap bool) Color {
	col := Color{
		R: readChannel(el, "R", "r"),
		G: readChannel(el, "G", "g"),
		B: readChannel(el, "B", "b"),
	}
	if swap {
		col.R, col.B = col.B, col.R
	}
	return col
}

func readChannel(el *element, upper, lower string) float64 {
	if _, ok := el.attr(upper); ok {
		return el.floatAttr(upper, 0) / 255
	}
	return el.floatAttr(lower, 0)
}

// warnExtra logs the elements found beyond the declared count
func (c *cursor) warnExtra(next *element, tag string, count int) {
	if next == nil || count < 0 {
		return
	}
	extra := 0
	for ; next != nil; next = next.nextSibling(tag) {
		extra++
	}
	c.cfg.logger.Warn("ignoring elements beyond the declared count",
		"tag", tag, "declared", count, "ignored", extra)
}

// warnUnread is warnExtra for sequences whose first element is required:
// with a zero count, that element was not read but is not extra either.
func (c *cursor) warnUnread(next *element, tag string, count int) {
	if count == 0 && next != nil {
		next = next.nextSibling(tag)
	}
	c.warnExtra(next, tag, count)
}

// capacity bounds the preallocation by the number of children,
// so that a huge declared count does not allocate.
func capacity(parent *element, count int) int {
	if count < 0 {
		return 0
	}
	if n := len(parent.children); count > n {
		return n
	}
	return count
}
