package scene

import (
	"encoding/json"

	"seehuhn.de/go/geom/vec"
)

// ============================================================
// JSON wire form
// ============================================================

type wireCommand struct {
	Op     Op           `json:"op"`
	Points [][2]float64 `json:"points,omitempty"`
}

type wireNode struct {
	Type   Kind  `json:"type"`
	Class  Class `json:"class,omitempty"`
	Active bool  `json:"active,omitempty"`

	X1 float64 `json:"x1,omitempty"`
	Y1 float64 `json:"y1,omitempty"`
	X2 float64 `json:"x2,omitempty"`
	Y2 float64 `json:"y2,omitempty"`

	X float64 `json:"x,omitempty"`
	Y float64 `json:"y,omitempty"`
	W float64 `json:"w,omitempty"`
	H float64 `json:"h,omitempty"`

	CX float64 `json:"cx,omitempty"`
	CY float64 `json:"cy,omitempty"`
	R  float64 `json:"r,omitempty"`

	Commands []wireCommand `json:"commands,omitempty"`

	Content  string  `json:"content,omitempty"`
	FontSize float64 `json:"fontSize,omitempty"`
	Anchor   Anchor  `json:"anchor,omitempty"`
	Rotation float64 `json:"rotation,omitempty"`

	Pivot    *[2]float64 `json:"pivot,omitempty"`
	Children []wireNode  `json:"children,omitempty"`
}

type wireScene struct {
	Width  float64    `json:"width"`
	Height float64    `json:"height"`
	Nodes  []wireNode `json:"nodes"`
}

func (s Scene) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireScene{Width: s.Width, Height: s.Height, Nodes: toWire(s.Nodes)})
}

// UnmarshalJSON decodes a scene. Nodes of an unknown type are dropped
// without failing the whole scene.
func (s *Scene) UnmarshalJSON(data []byte) error {
	var w wireScene
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	s.Width, s.Height = w.Width, w.Height
	if s.Width <= 0 {
		s.Width = DefaultWidth
	}
	if s.Height <= 0 {
		s.Height = DefaultHeight
	}
	s.Nodes = fromWire(w.Nodes)
	return nil
}

func toWire(nodes []Node) []wireNode {
	out := make([]wireNode, 0, len(nodes))
	for _, n := range nodes {
		switch v := n.(type) {
		case Line:
			out = append(out, wireNode{Type: KindLine, Class: v.Class, Active: v.Active, X1: v.X1, Y1: v.Y1, X2: v.X2, Y2: v.Y2})
		case Rect:
			out = append(out, wireNode{Type: KindRect, Class: v.Class, Active: v.Active, X: v.X, Y: v.Y, W: v.W, H: v.H})
		case Circle:
			out = append(out, wireNode{Type: KindCircle, Class: v.Class, Active: v.Active, CX: v.CX, CY: v.CY, R: v.R})
		case Path:
			cmds := make([]wireCommand, 0, len(v.Commands))
			for _, c := range v.Commands {
				wc := wireCommand{Op: c.Op}
				for _, p := range c.Points {
					wc.Points = append(wc.Points, [2]float64{p.X, p.Y})
				}
				cmds = append(cmds, wc)
			}
			out = append(out, wireNode{Type: KindPath, Class: v.Class, Active: v.Active, Commands: cmds})
		case Text:
			out = append(out, wireNode{Type: KindText, Class: v.Class, Active: v.Active, X: v.X, Y: v.Y,
				Content: v.Content, FontSize: v.FontSize, Anchor: v.Anchor, Rotation: v.Rotation})
		case Group:
			out = append(out, wireNode{Type: KindGroup, Rotation: v.Rotation,
				Pivot: &[2]float64{v.Pivot.X, v.Pivot.Y}, Children: toWire(v.Children)})
		}
	}
	return out
}

func fromWire(nodes []wireNode) []Node {
	out := make([]Node, 0, len(nodes))
	for _, w := range nodes {
		switch w.Type {
		case KindLine:
			out = append(out, Line{X1: w.X1, Y1: w.Y1, X2: w.X2, Y2: w.Y2, Class: ParseClass(string(w.Class)), Active: w.Active})
		case KindRect:
			out = append(out, Rect{X: w.X, Y: w.Y, W: w.W, H: w.H, Class: ParseClass(string(w.Class)), Active: w.Active})
		case KindCircle:
			out = append(out, Circle{CX: w.CX, CY: w.CY, R: w.R, Class: ParseClass(string(w.Class)), Active: w.Active})
		case KindPath:
			p := Path{Class: ParseClass(string(w.Class)), Active: w.Active}
			for _, c := range w.Commands {
				cmd := Command{Op: c.Op}
				for _, pt := range c.Points {
					cmd.Points = append(cmd.Points, vec.Vec2{X: pt[0], Y: pt[1]})
				}
				p.Commands = append(p.Commands, cmd)
			}
			out = append(out, p)
		case KindText:
			anchor := w.Anchor
			if anchor == "" {
				anchor = AnchorLeft
			}
			class := AnnotationText
			if w.Class != "" {
				class = ParseClass(string(w.Class))
			}
			out = append(out, Text{X: w.X, Y: w.Y, Content: w.Content, FontSize: w.FontSize, Anchor: anchor,
				Rotation: w.Rotation, Class: class, Active: w.Active})
		case KindGroup:
			g := Group{Rotation: w.Rotation, Children: fromWire(w.Children)}
			if w.Pivot != nil {
				g.Pivot = vec.Vec2{X: w.Pivot[0], Y: w.Pivot[1]}
			}
			out = append(out, g)
		}
	}
	return out
}
