package geom

import (
	"math"
	"sort"
	"strings"

	"seehuhn.de/go/geom/vec"
)

// ============================================================
// Annotation leaders
// ============================================================

const (
	leaderLineSpacing = 1.25
	leaderWrapChars   = 28
	// CharWidth is the glyph advance relative to the font size.
	CharWidth = 0.6
)

// Leader is the placement of a remark call-out: a sloped leg from the anchor
// to an elbow, a horizontal shoulder under the text, and the text lines.
type Leader struct {
	Anchor    vec.Vec2
	Elbow     vec.Vec2
	Shoulder  vec.Vec2
	TextStart vec.Vec2 // baseline start of the first line
	AlignEnd  bool     // text is right-aligned at TextStart
	Lines     []string
	// Occupied is the vertical extent from the anchor to the far edge of
	// the text block.
	Occupied float64
}

// LeaderLayout places a remark next to anchor. direction < 0 runs the leader
// to the left; sideBias < 0 raises it, > 0 lowers it. textAbove puts the text
// on top of the shoulder, otherwise it hangs below.
func LeaderLayout(anchor vec.Vec2, text string, direction, sideBias, leaderLength, fontSize float64, textAbove bool) Leader {
	dx := 1.0
	if direction < 0 {
		dx = -1
	}
	dy := -1.0
	if sideBias > 0 {
		dy = 1
	}
	leaderLength = math.Max(leaderLength, fontSize)

	lines := Wrap(text, leaderWrapChars)
	widest := 0
	for _, l := range lines {
		widest = max(widest, len([]rune(l)))
	}
	textWidth := float64(widest) * fontSize * CharWidth
	lineHeight := fontSize * leaderLineSpacing
	block := float64(len(lines)) * lineHeight

	leg := leaderLength * math.Sqrt2 / 2
	elbow := vec.Vec2{X: anchor.X + dx*leg, Y: anchor.Y + dy*leg}
	shoulder := vec.Vec2{X: elbow.X + dx*textWidth, Y: elbow.Y}

	l := Leader{
		Anchor:   anchor,
		Elbow:    elbow,
		Shoulder: shoulder,
		AlignEnd: dx < 0,
		Lines:    lines,
	}

	gap := fontSize * 0.3
	if textAbove {
		// Lines stack upward from the shoulder.
		l.TextStart = vec.Vec2{X: elbow.X, Y: elbow.Y - gap - float64(len(lines)-1)*lineHeight}
	} else {
		l.TextStart = vec.Vec2{X: elbow.X, Y: elbow.Y + gap + fontSize}
	}

	rise := math.Abs(elbow.Y - anchor.Y)
	if (textAbove && dy < 0) || (!textAbove && dy > 0) {
		l.Occupied = rise + gap + block
	} else {
		l.Occupied = math.Max(rise, gap+block)
	}
	return l
}

// Wrap splits text into lines of at most width runes on word boundaries.
// Explicit newlines are kept.
func Wrap(text string, width int) []string {
	var out []string
	for _, para := range strings.Split(strings.TrimSpace(text), "\n") {
		line := ""
		for _, word := range strings.Fields(para) {
			switch {
			case line == "":
				line = word
			case len([]rune(line))+1+len([]rune(word)) <= width:
				line += " " + word
			default:
				out = append(out, line)
				line = word
			}
		}
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// ============================================================
// Dimension stacking
// ============================================================

// StackDimensions assigns each distance along an axis of length total to a
// tier so that labels sharing a tier are at least gap apart. Labels are
// placed in ascending distance (input order breaks ties), each on the lowest
// tier with room. The result is parallel to distances; tiers grow from 0.
func StackDimensions(distances []float64, total, gap float64) []int {
	order := make([]int, len(distances))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return distances[order[a]] < distances[order[b]]
	})

	tiers := make([]int, len(distances))
	var placed [][]float64
	for _, idx := range order {
		x := distances[idx]
		if total > 0 {
			x = Clamp(x, 0, total)
		}
		tier := 0
		for ; tier < len(placed); tier++ {
			if fits(placed[tier], x, gap) {
				break
			}
		}
		if tier == len(placed) {
			placed = append(placed, nil)
		}
		placed[tier] = append(placed[tier], x)
		tiers[idx] = tier
	}
	return tiers
}

func fits(row []float64, x, gap float64) bool {
	for _, other := range row {
		if math.Abs(other-x) < gap {
			return false
		}
	}
	return true
}

// TierCount returns 1 + the largest tier index, or 0 for no tiers.
func TierCount(tiers []int) int {
	n := 0
	for _, t := range tiers {
		n = max(n, t+1)
	}
	return n
}
