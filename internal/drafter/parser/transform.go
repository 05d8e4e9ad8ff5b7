package parser

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"seehuhn.de/go/geom/vec"

	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/scene"
)

// ============================================================
// Transform attribute grammar
// ============================================================

var transformLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Ident", Pattern: `[a-zA-Z]+`},
	{Name: "Number", Pattern: `[-+]?(?:[0-9]+\.?[0-9]*|\.[0-9]+)(?:[eE][-+]?[0-9]+)?`},
	{Name: "Punct", Pattern: `[()]`},
	{Name: "Sep", Pattern: `[\s,]+`},
})

type transformList struct {
	Items []*transformItem `parser:"@@*"`
}

type transformItem struct {
	Name string    `parser:"@Ident '('"`
	Args []float64 `parser:"@Number* ')'"`
}

var transformParser = sync.OnceValues(func() (*participle.Parser[transformList], error) {
	return participle.Build[transformList](
		participle.Lexer(transformLexer),
		participle.Elide("Sep"),
	)
})

// Transform is one entry of a transform list. Only rotations and
// translations are meaningful for drawings.
type Transform struct {
	Rotate bool
	Angle  float64
	Pivot  vec.Vec2
	Offset vec.Vec2
}

// ParseTransform reads a transform attribute such as
// "translate(10 20) rotate(45 100 100)". Scaling, skewing and matrices are
// rejected.
func ParseTransform(s string) ([]Transform, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	p, err := transformParser()
	if err != nil {
		return nil, fmt.Errorf("failed to build transform parser: %w", err)
	}
	list, err := p.ParseString("", s)
	if err != nil {
		return nil, fmt.Errorf("parse transform: %w", err)
	}

	out := make([]Transform, 0, len(list.Items))
	for _, it := range list.Items {
		a := it.Args
		switch strings.ToLower(it.Name) {
		case "rotate":
			switch len(a) {
			case 1:
				out = append(out, Transform{Rotate: true, Angle: a[0]})
			case 3:
				out = append(out, Transform{Rotate: true, Angle: a[0], Pivot: vec.Vec2{X: a[1], Y: a[2]}})
			default:
				return nil, fmt.Errorf("rotate: %d arguments", len(a))
			}
		case "translate":
			switch len(a) {
			case 1:
				out = append(out, Transform{Offset: vec.Vec2{X: a[0]}})
			case 2:
				out = append(out, Transform{Offset: vec.Vec2{X: a[0], Y: a[1]}})
			default:
				return nil, fmt.Errorf("translate: %d arguments", len(a))
			}
		default:
			return nil, fmt.Errorf("unsupported transform %q", it.Name)
		}
	}
	return out, nil
}

// apply wraps nodes in the transforms, innermost (rightmost) first.
func apply(nodes []scene.Node, tfs []Transform) []scene.Node {
	for i := len(tfs) - 1; i >= 0; i-- {
		tf := tfs[i]
		if tf.Rotate {
			if tf.Angle == 0 {
				continue
			}
			nodes = []scene.Node{scene.Group{Rotation: tf.Angle, Pivot: tf.Pivot, Children: nodes}}
			continue
		}
		for j, n := range nodes {
			nodes[j] = scene.Translate(n, tf.Offset.X, tf.Offset.Y)
		}
	}
	return nodes
}

// FormatFloat prints v with at most four decimals and no trailing zeros.
func FormatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', 4, 64)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}
