package parser

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/scene"
)

// ============================================================
// Result
// ============================================================

// Result is a scene read from markup. Skipped counts elements that were
// dropped because their tag is unknown or their attributes are malformed.
type Result struct {
	Scene   scene.Scene
	Skipped int
}

// ignored elements carry no drawing and are dropped without counting.
var ignored = map[string]bool{
	"style": true, "defs": true, "title": true, "desc": true, "metadata": true,
}

var errMalformed = errors.New("malformed element")

// ============================================================
// Parser
// ============================================================

// ParseSVG reads the drawing subset of SVG (line, rect, circle, path, text
// and nested g) into a scene. Only invalid XML or a missing svg root is an
// error; anything else unreadable is skipped.
func ParseSVG(r io.Reader) (*Result, error) {
	dec := xml.NewDecoder(r)
	root, err := findRoot(dec)
	if err != nil {
		return nil, err
	}

	w, h := canvasSize(root)
	rd := &reader{dec: dec}
	nodes, err := rd.children()
	if err != nil {
		return nil, err
	}

	sc := scene.New(w, h)
	sc.Add(nodes...)
	return &Result{Scene: *sc, Skipped: rd.skipped}, nil
}

func findRoot(dec *xml.Decoder) (xml.StartElement, error) {
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return xml.StartElement{}, fmt.Errorf("no svg root element")
		}
		if err != nil {
			return xml.StartElement{}, fmt.Errorf("invalid svg: %w", err)
		}
		if se, ok := tok.(xml.StartElement); ok {
			if se.Name.Local != "svg" {
				return xml.StartElement{}, fmt.Errorf("root element is <%s>, not <svg>", se.Name.Local)
			}
			return se, nil
		}
	}
}

// canvasSize takes width/height, falling back to the viewBox extent.
func canvasSize(root xml.StartElement) (float64, float64) {
	w, _ := length(attr(root, "width"))
	h, _ := length(attr(root, "height"))
	if w > 0 && h > 0 {
		return w, h
	}
	fields := strings.FieldsFunc(attr(root, "viewBox"), func(r rune) bool { return r == ' ' || r == ',' })
	if len(fields) == 4 {
		vw, err1 := strconv.ParseFloat(fields[2], 64)
		vh, err2 := strconv.ParseFloat(fields[3], 64)
		if err1 == nil && err2 == nil {
			return vw, vh
		}
	}
	return w, h
}

type reader struct {
	dec     *xml.Decoder
	skipped int
}

// children reads sibling elements up to the end tag of the current element.
func (r *reader) children() ([]scene.Node, error) {
	var nodes []scene.Node
	for {
		tok, err := r.dec.Token()
		if err == io.EOF {
			return nil, fmt.Errorf("invalid svg: unexpected end of document")
		}
		if err != nil {
			return nil, fmt.Errorf("invalid svg: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			got, err := r.element(t)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, got...)
		case xml.EndElement:
			return nodes, nil
		}
	}
}

func (r *reader) element(se xml.StartElement) ([]scene.Node, error) {
	name := se.Name.Local
	if ignored[name] {
		return nil, r.skip()
	}

	var (
		node scene.Node
		err  error
	)
	switch name {
	case "g":
		kids, err := r.children()
		if err != nil {
			return nil, err
		}
		tfs, terr := ParseTransform(attr(se, "transform"))
		if terr != nil {
			r.skipped++
			return nil, nil
		}
		return apply(kids, tfs), nil
	case "text":
		content, err := r.text()
		if err != nil {
			return nil, err
		}
		node, err = textNode(se, content)
		if err != nil {
			r.skipped++
			return nil, nil
		}
		return r.transformed(se, node), nil
	case "line":
		node, err = lineNode(se)
	case "rect":
		node, err = rectNode(se)
	case "circle":
		node, err = circleNode(se)
	case "path":
		node, err = pathNode(se)
	default:
		r.skipped++
		return nil, r.skip()
	}

	if serr := r.skip(); serr != nil {
		return nil, serr
	}
	if err != nil {
		r.skipped++
		return nil, nil
	}
	return r.transformed(se, node), nil
}

// transformed applies a leaf's own transform attribute. A text rotated about
// its own anchor keeps the rotation on the node.
func (r *reader) transformed(se xml.StartElement, n scene.Node) []scene.Node {
	tfs, err := ParseTransform(attr(se, "transform"))
	if err != nil {
		r.skipped++
		return nil
	}
	if t, ok := n.(scene.Text); ok && len(tfs) == 1 && tfs[0].Rotate &&
		tfs[0].Pivot.X == t.X && tfs[0].Pivot.Y == t.Y {
		t.Rotation = tfs[0].Angle
		return []scene.Node{t}
	}
	return apply([]scene.Node{n}, tfs)
}

func (r *reader) skip() error {
	if err := r.dec.Skip(); err != nil {
		return fmt.Errorf("invalid svg: %w", err)
	}
	return nil
}

// text collects the character data of a text element, tspans included.
func (r *reader) text() (string, error) {
	var b strings.Builder
	depth := 0
	for {
		tok, err := r.dec.Token()
		if err != nil {
			return "", fmt.Errorf("invalid svg: %w", err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			b.Write(t)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			if depth == 0 {
				return strings.TrimSpace(b.String()), nil
			}
			depth--
		}
	}
}

// ============================================================
// Element builders
// ============================================================

func lineNode(se xml.StartElement) (scene.Node, error) {
	v, err := numbers(se, "x1", "y1", "x2", "y2")
	if err != nil {
		return nil, err
	}
	class, active := classOf(se)
	return scene.Line{X1: v[0], Y1: v[1], X2: v[2], Y2: v[3], Class: class, Active: active}, nil
}

func rectNode(se xml.StartElement) (scene.Node, error) {
	v, err := numbers(se, "x", "y", "width", "height")
	if err != nil {
		return nil, err
	}
	if v[2] < 0 || v[3] < 0 {
		return nil, errMalformed
	}
	class, active := classOf(se)
	return scene.Rect{X: v[0], Y: v[1], W: v[2], H: v[3], Class: class, Active: active}, nil
}

func circleNode(se xml.StartElement) (scene.Node, error) {
	v, err := numbers(se, "cx", "cy", "r")
	if err != nil {
		return nil, err
	}
	if v[2] < 0 {
		return nil, errMalformed
	}
	class, active := classOf(se)
	return scene.Circle{CX: v[0], CY: v[1], R: v[2], Class: class, Active: active}, nil
}

func pathNode(se xml.StartElement) (scene.Node, error) {
	cmds, err := ParsePath(attr(se, "d"))
	if err != nil {
		return nil, err
	}
	class, active := classOf(se)
	return scene.Path{Commands: cmds, Class: class, Active: active}, nil
}

func textNode(se xml.StartElement, content string) (scene.Node, error) {
	v, err := numbers(se, "x", "y")
	if err != nil {
		return nil, err
	}
	size, err := length(attr(se, "font-size"))
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		size = 12
	}

	anchor := scene.AnchorLeft
	switch attr(se, "text-anchor") {
	case "middle":
		anchor = scene.AnchorCenter
	case "end":
		anchor = scene.AnchorRight
	}

	class := scene.AnnotationText
	active := false
	if attr(se, "class") != "" {
		class, active = classOf(se)
	}
	return scene.Text{X: v[0], Y: v[1], Content: content, FontSize: size, Anchor: anchor, Class: class, Active: active}, nil
}

// ============================================================
// Attribute helpers
// ============================================================

func attr(se xml.StartElement, name string) string {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return strings.TrimSpace(a.Value)
		}
	}
	return ""
}

// classOf reads the class list: the first known class wins and the extra
// class "active" marks a highlighted node.
func classOf(se xml.StartElement) (scene.Class, bool) {
	class := scene.Body
	found, active := false, false
	for _, f := range strings.Fields(attr(se, "class")) {
		if f == "active" {
			active = true
			continue
		}
		if !found {
			class = scene.ParseClass(f)
			found = true
		}
	}
	return class, active
}

// length parses a number with an optional px suffix. Blank is zero.
func length(s string) (float64, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errMalformed
	}
	return f, nil
}

func numbers(se xml.StartElement, names ...string) ([]float64, error) {
	out := make([]float64, len(names))
	for i, n := range names {
		f, err := length(attr(se, n))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", n, err)
		}
		out[i] = f
	}
	return out, nil
}
