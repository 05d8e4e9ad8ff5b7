package scene

import "seehuhn.de/go/geom/vec"

// Translate returns n moved by (dx, dy).
func Translate(n Node, dx, dy float64) Node {
	switch v := n.(type) {
	case Line:
		v.X1, v.Y1, v.X2, v.Y2 = v.X1+dx, v.Y1+dy, v.X2+dx, v.Y2+dy
		return v
	case Rect:
		v.X, v.Y = v.X+dx, v.Y+dy
		return v
	case Circle:
		v.CX, v.CY = v.CX+dx, v.CY+dy
		return v
	case Path:
		d := vec.Vec2{X: dx, Y: dy}
		cmds := make([]Command, len(v.Commands))
		for i, c := range v.Commands {
			pts := make([]vec.Vec2, len(c.Points))
			for j, p := range c.Points {
				pts[j] = p.Add(d)
			}
			cmds[i] = Command{Op: c.Op, Points: pts}
		}
		v.Commands = cmds
		return v
	case Text:
		v.X, v.Y = v.X+dx, v.Y+dy
		return v
	case Group:
		children := make([]Node, len(v.Children))
		for i, c := range v.Children {
			children[i] = Translate(c, dx, dy)
		}
		v.Children = children
		v.Pivot = vec.Vec2{X: v.Pivot.X + dx, Y: v.Pivot.Y + dy}
		return v
	}
	return n
}

// Center moves the content so its bounds are centred on the canvas. When the
// content plus margin on each side is larger than the canvas, the canvas
// grows to fit.
func (s *Scene) Center(margin float64) {
	b := s.Bounds()
	if !b.IsSet() {
		return
	}
	s.Width = max(s.Width, b.Width()+2*margin)
	s.Height = max(s.Height, b.Height()+2*margin)
	c := b.Center()
	dx, dy := s.Width/2-c.X, s.Height/2-c.Y
	for i, n := range s.Nodes {
		s.Nodes[i] = Translate(n, dx, dy)
	}
}
