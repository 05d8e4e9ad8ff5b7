package scene

import "seehuhn.de/go/geom/vec"

// PathBuilder accumulates path commands.
type PathBuilder struct {
	cmds []Command
}

func NewPath() *PathBuilder {
	return &PathBuilder{}
}

func (b *PathBuilder) MoveTo(x, y float64) *PathBuilder {
	b.cmds = append(b.cmds, Command{Op: MoveTo, Points: []vec.Vec2{{X: x, Y: y}}})
	return b
}

func (b *PathBuilder) LineTo(x, y float64) *PathBuilder {
	b.cmds = append(b.cmds, Command{Op: LineTo, Points: []vec.Vec2{{X: x, Y: y}}})
	return b
}

// QuadTo appends a quadratic Bezier with control point (cx, cy) ending at (x, y).
func (b *PathBuilder) QuadTo(cx, cy, x, y float64) *PathBuilder {
	b.cmds = append(b.cmds, Command{Op: QuadTo, Points: []vec.Vec2{{X: cx, Y: cy}, {X: x, Y: y}}})
	return b
}

func (b *PathBuilder) Close() *PathBuilder {
	b.cmds = append(b.cmds, Command{Op: Close})
	return b
}

// Polyline starts a contour at the first point and runs through the rest.
func (b *PathBuilder) Polyline(pts ...vec.Vec2) *PathBuilder {
	for i, p := range pts {
		if i == 0 {
			b.MoveTo(p.X, p.Y)
			continue
		}
		b.LineTo(p.X, p.Y)
	}
	return b
}

func (b *PathBuilder) Build(class Class) Path {
	cmds := make([]Command, len(b.cmds))
	copy(cmds, b.cmds)
	return Path{Commands: cmds, Class: class}
}

// Polygon returns a closed path through pts.
func Polygon(class Class, pts ...vec.Vec2) Path {
	return NewPath().Polyline(pts...).Close().Build(class)
}

// Polyline returns an open path through pts.
func Polyline(class Class, pts ...vec.Vec2) Path {
	return NewPath().Polyline(pts...).Build(class)
}

// Pt is shorthand for a point literal.
func Pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}
