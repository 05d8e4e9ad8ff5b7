package parser

import (
	"fmt"
	"strings"
	"sync"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"seehuhn.de/go/geom/vec"

	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/scene"
)

// ============================================================
// Path data grammar
// ============================================================

// PathLexer tokenizes SVG path data: single-letter commands and numbers
// separated by optional whitespace and commas.
var PathLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Command", Pattern: `[MmLlHhVvQqZz]`},
	{Name: "Number", Pattern: `[-+]?(?:[0-9]+\.?[0-9]*|\.[0-9]+)(?:[eE][-+]?[0-9]+)?`},
	{Name: "Sep", Pattern: `[\s,]+`},
})

type pathData struct {
	Segments []*pathSegment `parser:"@@*"`
}

type pathSegment struct {
	Op   string    `parser:"@Command"`
	Args []float64 `parser:"@Number*"`
}

var pathParser = sync.OnceValues(func() (*participle.Parser[pathData], error) {
	return participle.Build[pathData](
		participle.Lexer(PathLexer),
		participle.Elide("Sep"),
	)
})

// ParsePath reads path data into absolute path commands. Supported commands
// are M, L, H, V, Q and Z in absolute and relative form; anything else is an
// error.
func ParsePath(d string) ([]scene.Command, error) {
	d = strings.TrimSpace(d)
	if d == "" {
		return nil, fmt.Errorf("empty path")
	}
	p, err := pathParser()
	if err != nil {
		return nil, fmt.Errorf("failed to build path parser: %w", err)
	}
	data, err := p.ParseString("", d)
	if err != nil {
		return nil, fmt.Errorf("parse path: %w", err)
	}
	return resolve(data.Segments)
}

// arity is the number of arguments one repetition of a command takes.
var arity = map[byte]int{'M': 2, 'L': 2, 'H': 1, 'V': 1, 'Q': 4, 'Z': 0}

func resolve(segments []*pathSegment) ([]scene.Command, error) {
	var (
		cmds       []scene.Command
		cur, start vec.Vec2
	)
	if len(segments) == 0 || strings.ToUpper(segments[0].Op) != "M" {
		return nil, fmt.Errorf("path must start with a moveto")
	}
	for _, seg := range segments {
		op := seg.Op[0]
		relative := op >= 'a'
		upper := op &^ 0x20
		n := arity[upper]
		if n == 0 {
			if len(seg.Args) > 0 {
				return nil, fmt.Errorf("closepath takes no arguments")
			}
			cmds = append(cmds, scene.Command{Op: scene.Close})
			cur = start
			continue
		}
		if len(seg.Args) == 0 || len(seg.Args)%n != 0 {
			return nil, fmt.Errorf("command %c: %d arguments", op, len(seg.Args))
		}

		for i := 0; i < len(seg.Args); i += n {
			a := seg.Args[i : i+n]
			base := vec.Vec2{}
			if relative {
				base = cur
			}
			switch upper {
			case 'M':
				p := base.Add(vec.Vec2{X: a[0], Y: a[1]})
				// Pairs after the first are implicit linetos.
				if i == 0 {
					cmds = append(cmds, scene.Command{Op: scene.MoveTo, Points: []vec.Vec2{p}})
					start = p
				} else {
					cmds = append(cmds, scene.Command{Op: scene.LineTo, Points: []vec.Vec2{p}})
				}
				cur = p
			case 'L':
				cur = base.Add(vec.Vec2{X: a[0], Y: a[1]})
				cmds = append(cmds, scene.Command{Op: scene.LineTo, Points: []vec.Vec2{cur}})
			case 'H':
				x := a[0]
				if relative {
					x += cur.X
				}
				cur = vec.Vec2{X: x, Y: cur.Y}
				cmds = append(cmds, scene.Command{Op: scene.LineTo, Points: []vec.Vec2{cur}})
			case 'V':
				y := a[0]
				if relative {
					y += cur.Y
				}
				cur = vec.Vec2{X: cur.X, Y: y}
				cmds = append(cmds, scene.Command{Op: scene.LineTo, Points: []vec.Vec2{cur}})
			case 'Q':
				ctrl := base.Add(vec.Vec2{X: a[0], Y: a[1]})
				cur = base.Add(vec.Vec2{X: a[2], Y: a[3]})
				cmds = append(cmds, scene.Command{Op: scene.QuadTo, Points: []vec.Vec2{ctrl, cur}})
			}
		}
	}
	return cmds, nil
}

// FormatPath writes commands back as absolute path data.
func FormatPath(cmds []scene.Command) string {
	var b strings.Builder
	for i, c := range cmds {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(string(c.Op))
		for _, p := range c.Points {
			fmt.Fprintf(&b, " %s %s", FormatFloat(p.X), FormatFloat(p.Y))
		}
	}
	return b.String()
}
