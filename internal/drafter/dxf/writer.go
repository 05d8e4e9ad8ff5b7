package dxf

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ============================================================
// Document
// ============================================================

// UnitsMillimeters is the $INSUNITS code for millimetres.
const UnitsMillimeters = 4

// CodePage is the declared $DWGCODEPAGE. Text is kept to ASCII by
// TextValue, so the page only matters to readers that insist on one.
const CodePage = "ANSI_1252"

// Document is an append-only list of entities serialised as a two-section
// interchange file (HEADER and ENTITIES).
type Document struct {
	entities []Entity
	Stats    Stats
}

func NewDocument() *Document {
	return &Document{}
}

// Add appends entities in order.
func (d *Document) Add(entities ...Entity) {
	d.entities = append(d.entities, entities...)
	d.Stats.Entities = len(d.entities)
}

// Entities returns a copy of the entity list.
func (d *Document) Entities() []Entity {
	out := make([]Entity, len(d.entities))
	copy(out, d.entities)
	return out
}

func (d *Document) Len() int { return len(d.entities) }

// WriteTo serialises the document.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	bw := bufio.NewWriter(cw)
	out := &writer{w: bw}

	out.pair(0, "SECTION")
	out.pair(2, "HEADER")
	out.pair(9, "$ACADVER")
	out.pair(1, "AC1015")
	out.pair(9, "$DWGCODEPAGE")
	out.pair(3, CodePage)
	out.pair(9, "$INSUNITS")
	out.integer(70, UnitsMillimeters)
	out.pair(0, "ENDSEC")

	out.pair(0, "SECTION")
	out.pair(2, "ENTITIES")
	for _, e := range d.entities {
		out.pair(0, e.Name())
		e.write(out)
	}
	out.pair(0, "ENDSEC")
	out.pair(0, "EOF")

	if out.err != nil {
		return cw.n, fmt.Errorf("write dxf: %w", out.err)
	}
	if err := bw.Flush(); err != nil {
		return cw.n, fmt.Errorf("write dxf: %w", err)
	}
	return cw.n, nil
}

// Bytes returns the serialised document.
func (d *Document) Bytes() []byte {
	var buf bytes.Buffer
	_, _ = d.WriteTo(&buf)
	return buf.Bytes()
}

// ============================================================
// Records
// ============================================================

func (e LineEntity) write(w *writer) {
	w.style(e.Style)
	w.point(10, e.From.X, e.From.Y)
	w.point(11, e.To.X, e.To.Y)
}

func (e CircleEntity) write(w *writer) {
	w.style(e.Style)
	w.point(10, e.Center.X, e.Center.Y)
	w.num(40, e.Radius)
}

func (e TextEntity) write(w *writer) {
	w.style(e.Style)
	w.point(10, e.At.X, e.At.Y)
	w.num(40, e.Height)
	w.pair(1, TextValue(e.Content))
	if Num(e.Rotation) != "0" {
		w.num(50, e.Rotation)
	}
	if e.Align != AlignLeft {
		w.integer(72, e.Align)
		w.point(11, e.At.X, e.At.Y)
	}
}

func (e PolylineEntity) write(w *writer) {
	w.style(e.Style)
	w.integer(90, len(e.Points))
	closed := 0
	if e.Closed {
		closed = 1
	}
	w.integer(70, closed)
	for _, p := range e.Points {
		w.num(10, p.X)
		w.num(20, p.Y)
	}
}

// ============================================================
// Low-level writer
// ============================================================

type writer struct {
	w   *bufio.Writer
	err error
}

func (w *writer) pair(code int, value string) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.w, "%d\n%s\n", code, value)
}

func (w *writer) integer(code, v int) { w.pair(code, strconv.Itoa(v)) }

func (w *writer) num(code int, v float64) { w.pair(code, Num(v)) }

// point writes an XYZ triple at code, code+10 and code+20 with Z = 0.
func (w *writer) point(code int, x, y float64) {
	w.num(code, x)
	w.num(code+10, y)
	w.num(code+20, 0)
}

func (w *writer) style(s Style) {
	w.pair(8, s.Layer)
	w.integer(62, s.Color)
}

// textCodes keeps text values on a single record line and spells the
// drafting symbols with their control codes.
var textCodes = strings.NewReplacer(
	"\r", "", "\n", " ",
	"Ø", "%%c", "ø", "%%c", "⌀", "%%c",
	"°", "%%d",
	"±", "%%p",
)

// TextValue encodes a TEXT value: drafting symbols become %%c, %%d and %%p,
// any other non-ASCII rune becomes a \U+XXXX escape.
func TextValue(s string) string {
	s = textCodes.Replace(s)
	var b strings.Builder
	for _, r := range s {
		if r < utf8.RuneSelf {
			b.WriteRune(r)
			continue
		}
		fmt.Fprintf(&b, "\\U+%04X", r)
	}
	return b.String()
}

// Num prints v with at most four decimals, without trailing zeros or a
// negative zero.
func Num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 4, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	if s == "-0" {
		return "0"
	}
	return s
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
