package scene

import (
	"seehuhn.de/go/geom/vec"
)

// ============================================================
// Semantic classes
// ============================================================

// Class is the semantic role of a leaf node. It decides stroke style in SVG
// and layer/color in the interchange document.
type Class string

const (
	Body           Class = "body"
	Flange         Class = "flange"
	Dimension      Class = "dimension"
	Centerline     Class = "centerline"
	Phantom        Class = "phantom"
	Hidden         Class = "hidden"
	AnnotationText Class = "annotation-text"

	// Accent is reserved for decorative geometry with a fixed color
	// (reinforcement bars on large plates).
	Accent Class = "accent"

	// Page template classes, used by the layout composer only.
	Frame Class = "frame"
	Label Class = "label"
	Logo  Class = "logo"
)

// Classes lists every known class in a stable order.
var Classes = []Class{Body, Flange, Dimension, Centerline, Phantom, Hidden, AnnotationText, Accent, Frame, Label, Logo}

// ParseClass maps a class attribute to a Class. Unknown names fall back to
// Body so that foreign markup still lands on the object layer.
func ParseClass(s string) Class {
	for _, c := range Classes {
		if string(c) == s {
			return c
		}
	}
	switch s {
	case "text", "annotation":
		return AnnotationText
	case "dim":
		return Dimension
	}
	return Body
}

// ============================================================
// Nodes
// ============================================================

type Kind string

const (
	KindLine   Kind = "line"
	KindRect   Kind = "rect"
	KindCircle Kind = "circle"
	KindPath   Kind = "path"
	KindText   Kind = "text"
	KindGroup  Kind = "group"
)

// Node is one shape of a scene.
type Node interface {
	Kind() Kind
}

type Line struct {
	X1, Y1, X2, Y2 float64
	Class          Class
	Active         bool
}

type Rect struct {
	X, Y, W, H float64
	Class      Class
	Active     bool
}

type Circle struct {
	CX, CY, R float64
	Class     Class
	Active    bool
}

// Op is a path instruction.
type Op string

const (
	MoveTo Op = "M"
	LineTo Op = "L"
	QuadTo Op = "Q"
	Close  Op = "Z"
)

// Command is one path instruction. QuadTo carries the control point first
// and the end point second; MoveTo and LineTo carry a single point.
type Command struct {
	Op     Op
	Points []vec.Vec2
}

type Path struct {
	Commands []Command
	Class    Class
	Active   bool
}

type Anchor string

const (
	AnchorLeft   Anchor = "left"
	AnchorCenter Anchor = "center"
	AnchorRight  Anchor = "right"
)

type Text struct {
	X, Y     float64
	Content  string
	FontSize float64
	Anchor   Anchor
	Rotation float64 // degrees, clockwise on screen (SVG convention)
	Class    Class
	Active   bool
}

// Group rotates its children about Pivot by Rotation degrees.
type Group struct {
	Rotation float64
	Pivot    vec.Vec2
	Children []Node
}

func (Line) Kind() Kind   { return KindLine }
func (Rect) Kind() Kind   { return KindRect }
func (Circle) Kind() Kind { return KindCircle }
func (Path) Kind() Kind   { return KindPath }
func (Text) Kind() Kind   { return KindText }
func (Group) Kind() Kind  { return KindGroup }

// ClassOf returns the class of a leaf node. Groups have no class.
func ClassOf(n Node) (Class, bool) {
	switch v := n.(type) {
	case Line:
		return v.Class, true
	case Rect:
		return v.Class, true
	case Circle:
		return v.Class, true
	case Path:
		return v.Class, true
	case Text:
		return v.Class, true
	}
	return "", false
}

// ============================================================
// Scene
// ============================================================

const (
	DefaultWidth  = 500
	DefaultHeight = 500
)

// Scene is the vector drawing of one component on a fixed abstract canvas
// with a downward Y axis.
type Scene struct {
	Width  float64
	Height float64
	Nodes  []Node
}

// New returns an empty scene on a canvas of the given size.
func New(width, height float64) *Scene {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &Scene{Width: width, Height: height}
}

// Add appends nodes in drawing order.
func (s *Scene) Add(nodes ...Node) {
	s.Nodes = append(s.Nodes, nodes...)
}

// Walk visits every leaf node depth-first in drawing order.
func (s *Scene) Walk(fn func(Node)) {
	walk(s.Nodes, fn)
}

func walk(nodes []Node, fn func(Node)) {
	for _, n := range nodes {
		if g, ok := n.(Group); ok {
			walk(g.Children, fn)
			continue
		}
		fn(n)
	}
}

// Count returns the number of leaf nodes with the given class.
func (s *Scene) Count(class Class) int {
	count := 0
	s.Walk(func(n Node) {
		if c, ok := ClassOf(n); ok && c == class {
			count++
		}
	})
	return count
}

// Texts returns the content of every text node.
func (s *Scene) Texts() []string {
	var out []string
	s.Walk(func(n Node) {
		if t, ok := n.(Text); ok {
			out = append(out, t.Content)
		}
	})
	return out
}

// Empty reports whether the scene has no leaf nodes.
func (s *Scene) Empty() bool {
	empty := true
	s.Walk(func(Node) { empty = false })
	return empty
}
