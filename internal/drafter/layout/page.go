// Package layout composes item drawings into A4 fabrication sheets and
// emits them as one interchange document.
package layout

import (
	"fmt"
	"strings"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"

	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/geom"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/models"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/scene"
)

// ============================================================
// Page geometry (millimetres, Y down within a page)
// ============================================================

const (
	PageWidth    = 210.0
	PageHeight   = 297.0
	PageGap      = 20.0
	Margin       = 10.0
	Columns      = 2
	Rows         = 3
	SlotsPerPage = Columns * Rows

	headerHeight   = 25.0
	metaRows       = 6
	metaRowHeight  = 8.0
	addressHeight  = 14.0
	footerHeight   = 10.0
	ruleHeight     = 7.0
	sketchInset    = 2.0
	labelColumn    = 26.0
	addressWrap    = 90
	descriptionCap = 58

	metaTop    = Margin + headerHeight
	gridTop    = metaTop + (metaRows-1)*metaRowHeight + addressHeight
	gridBottom = PageHeight - Margin - footerHeight
	cellWidth  = (PageWidth - 2*Margin) / Columns
	cellHeight = (gridBottom - gridTop) / Rows

	companySize = 5.0
	titleSize   = 4.0
	labelSize   = 2.2
	valueSize   = 2.8
)

// PageOrigin is the document-space offset of page i. Pages run left to
// right with a fixed gap.
func PageOrigin(i int) vec.Vec2 {
	return vec.Vec2{X: float64(i) * (PageWidth + PageGap)}
}

// PageMatrix maps page coordinates of page i into document space.
func PageMatrix(i int) matrix.Matrix {
	o := PageOrigin(i)
	return matrix.Scale(1, -1).Translate(o.X, o.Y+PageHeight)
}

// Cell is the box of grid slot s on a page, in page coordinates.
func Cell(s int) scene.Box {
	row, col := s/Columns, s%Columns
	x := Margin + float64(col)*cellWidth
	y := gridTop + float64(row)*cellHeight
	return scene.BoxOf(x, y, x+cellWidth, y+cellHeight)
}

// SketchBox is the drawing area of slot s: the cell less its two text rows
// on top and the note row at the bottom.
func SketchBox(s int) scene.Box {
	c := Cell(s)
	return scene.BoxOf(c.MinX+sketchInset, c.MinY+2*ruleHeight+sketchInset, c.MaxX-sketchInset, c.MaxY-ruleHeight-sketchInset)
}

// ============================================================
// Template
// ============================================================

// template is the fixed part of one page drawn as a scene.
type template struct {
	sc *scene.Scene
}

func newTemplate() *template {
	return &template{sc: scene.New(PageWidth, PageHeight)}
}

func (t *template) rule(x1, y1, x2, y2 float64) {
	t.sc.Add(scene.Line{X1: x1, Y1: y1, X2: x2, Y2: y2, Class: scene.Frame})
}

func (t *template) text(x, y float64, s string, size float64, class scene.Class, anchor scene.Anchor) {
	if strings.TrimSpace(s) == "" {
		return
	}
	t.sc.Add(scene.Text{X: x, Y: y, Content: s, FontSize: size, Anchor: anchor, Class: class})
}

// header draws the border, the company block and the sheet title.
func (t *template) header(company string, page, pages int) {
	t.sc.Add(scene.Rect{X: Margin, Y: Margin, W: PageWidth - 2*Margin, H: PageHeight - 2*Margin, Class: scene.Frame})

	logoW := 50.0
	t.sc.Add(scene.Rect{X: Margin, Y: Margin, W: logoW, H: headerHeight, Class: scene.Logo})
	t.text(Margin+logoW/2, Margin+headerHeight/2+companySize/2, strings.ToUpper(company), companySize, scene.Logo, scene.AnchorCenter)

	t.rule(Margin, metaTop, PageWidth-Margin, metaTop)
	t.text(Margin+logoW+6, Margin+11, "DUCT FITTING FABRICATION SHEET", titleSize, scene.Label, scene.AnchorLeft)
	t.text(PageWidth-Margin-3, Margin+20, fmt.Sprintf("SHEET %d / %d", page, pages), labelSize*1.2, scene.Label, scene.AnchorRight)
}

// metadata draws the six-row grid; the last row holds the wrapped address.
func (t *template) metadata(h models.DocumentHeader) {
	fields := [][2][2]string{
		{{"PROJECT", h.Project}, {"DOCUMENT NO", h.DocumentNo}},
		{{"CLIENT", h.Client}, {"REVISION", h.Revision}},
		{{"CONTRACTOR", h.Contractor}, {"DATE", h.Date}},
		{{"SYSTEM", h.System}, {"PRESSURE CLASS", h.Pressure}},
		{{"DRAWN BY", h.DrawnBy}, {"CHECKED BY", h.CheckedBy}},
	}
	mid := PageWidth / 2
	for i, row := range fields {
		y := metaTop + float64(i)*metaRowHeight
		t.rule(Margin, y+metaRowHeight, PageWidth-Margin, y+metaRowHeight)
		for j, f := range row {
			x := Margin + float64(j)*(mid-Margin)
			t.rule(x+labelColumn, y, x+labelColumn, y+metaRowHeight)
			t.text(x+1.5, y+5.5, f[0], labelSize, scene.Label, scene.AnchorLeft)
			t.text(x+labelColumn+1.5, y+5.5, f[1], valueSize, scene.AnnotationText, scene.AnchorLeft)
		}
	}
	addrTop := metaTop + (metaRows-1)*metaRowHeight
	t.rule(mid, metaTop, mid, addrTop)
	t.rule(Margin+labelColumn, addrTop, Margin+labelColumn, gridTop)
	t.text(Margin+1.5, addrTop+5.5, "ADDRESS", labelSize, scene.Label, scene.AnchorLeft)
	for i, line := range geom.Wrap(h.Address, addressWrap) {
		if i == 2 {
			break
		}
		t.text(Margin+labelColumn+1.5, addrTop+5.5+float64(i)*4.5, line, valueSize, scene.AnnotationText, scene.AnchorLeft)
	}
}

// slot draws the rules of one grid cell. Empty cells get the same rules.
func (t *template) slot(s int) {
	c := Cell(s)
	t.sc.Add(scene.Rect{X: c.MinX, Y: c.MinY, W: c.Width(), H: c.Height(), Class: scene.Frame})
	t.rule(c.MinX, c.MinY+ruleHeight, c.MaxX, c.MinY+ruleHeight)
	t.rule(c.MinX, c.MinY+2*ruleHeight, c.MaxX, c.MinY+2*ruleHeight)
	t.rule(c.MinX, c.MaxY-ruleHeight, c.MaxX, c.MaxY-ruleHeight)
}

// item fills the text rows of a slot.
func (t *template) item(s, number int, description string, m models.ItemMeta) {
	c := Cell(s)
	base := 4.8

	qty := m.Quantity
	if qty <= 0 {
		qty = 1
	}
	attrs := []string{fmt.Sprintf("QTY: %d", qty)}
	for _, kv := range [][2]string{{"MAT", m.Material}, {"THK", m.Thickness}, {"FINISH", m.Finish}} {
		if strings.TrimSpace(kv[1]) != "" {
			attrs = append(attrs, kv[0]+": "+kv[1])
		}
	}
	t.text(c.MinX+1.5, c.MinY+base, fmt.Sprintf("ITEM %d", number), labelSize, scene.Label, scene.AnchorLeft)
	t.text(c.MaxX-1.5, c.MinY+base, strings.Join(attrs, "   "), labelSize, scene.AnnotationText, scene.AnchorRight)

	tag := m.Tag
	if tag == "" {
		tag = "-"
	}
	t.text(c.MinX+1.5, c.MinY+ruleHeight+base, "TAG: "+tag, valueSize, scene.AnnotationText, scene.AnchorLeft)
	if lines := geom.Wrap(description, descriptionCap); len(lines) > 0 {
		t.text(c.MaxX-1.5, c.MinY+ruleHeight+base, lines[0], labelSize, scene.AnnotationText, scene.AnchorRight)
	}
	if m.Note != "" {
		t.text(c.MinX+1.5, c.MaxY-ruleHeight+base, "NOTE: "+m.Note, labelSize, scene.AnnotationText, scene.AnchorLeft)
	}
}

// footer draws the running page number.
func (t *template) footer(h models.DocumentHeader, company string, page, pages int) {
	y := gridBottom + footerHeight/2 + labelSize/2
	t.text(Margin+1.5, y, h.DocumentNo, labelSize, scene.Label, scene.AnchorLeft)
	t.text(PageWidth/2, y, fmt.Sprintf("PAGE %d OF %d", page, pages), labelSize, scene.Label, scene.AnchorCenter)
	t.text(PageWidth-Margin-1.5, y, strings.ToUpper(company), labelSize, scene.Label, scene.AnchorRight)
}
