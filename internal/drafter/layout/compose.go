package layout

import (
	"strings"
	"sync"

	"seehuhn.de/go/geom/vec"

	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/dxf"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/fittings"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/models"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/scene"
)

const DefaultCompany = "ACESIAN"

type Options struct {
	// Company is printed in the header block and footer.
	Company string
	// Library regenerates drawings of items without a stored scene.
	Library *fittings.Library
}

// Paginate splits items into pages of SlotsPerPage slots in order. The last
// page is padded with nil slots; no items still yields one empty page.
func Paginate(items []models.Item) [][]*models.Item {
	n := max(1, (len(items)+SlotsPerPage-1)/SlotsPerPage)
	pages := make([][]*models.Item, n)
	for p := range pages {
		pages[p] = make([]*models.Item, SlotsPerPage)
		for s := range SlotsPerPage {
			if i := p*SlotsPerPage + s; i < len(items) {
				pages[p][s] = &items[i]
			}
		}
	}
	return pages
}

// Compose lays the items out on as many pages as needed and returns the
// document. Pages are built concurrently and appended in page order.
func Compose(header models.DocumentHeader, items []models.Item, opts Options) *dxf.Document {
	if opts.Company == "" {
		opts.Company = DefaultCompany
	}
	if opts.Library == nil {
		opts.Library = fittings.New(nil)
	}

	pages := Paginate(items)
	type result struct {
		entities []dxf.Entity
		stats    dxf.Stats
	}
	results := make([]result, len(pages))

	var wg sync.WaitGroup
	for i, slots := range pages {
		wg.Go(func() {
			ents, stats := composePage(header, opts, i, len(pages), slots)
			results[i] = result{ents, stats}
		})
	}
	wg.Wait()

	doc := dxf.NewDocument()
	for _, r := range results {
		doc.Add(r.entities...)
		doc.Stats.Skipped += r.stats.Skipped
	}
	return doc
}

func composePage(h models.DocumentHeader, opts Options, page, pages int, slots []*models.Item) ([]dxf.Entity, dxf.Stats) {
	t := newTemplate()
	t.header(opts.Company, page+1, pages)
	t.metadata(h)

	type drawing struct {
		slot int
		sc   *scene.Scene
	}
	var (
		drawings []drawing
		stats    dxf.Stats
	)
	for s, item := range slots {
		t.slot(s)
		if item == nil {
			continue
		}
		sc, ok := itemScene(opts.Library, item)
		if !ok {
			stats.Skipped++
		}
		t.item(s, page*SlotsPerPage+s+1, description(opts.Library, item), item.Meta)
		if sc != nil && !sc.Empty() {
			drawings = append(drawings, drawing{s, sc})
		}
	}
	t.footer(h, opts.Company, page+1, pages)

	ents, st := dxf.TranscodeWith(t.sc, PageMatrix(page))
	stats.Add(st)
	for _, d := range drawings {
		e, st := dxf.Transcode(d.sc, Placement(page, d.slot))
		ents = append(ents, e...)
		stats.Add(st)
	}
	stats.Entities = len(ents)
	return ents, stats
}

// Placement is the target of an item drawing in slot s of page p.
func Placement(p, s int) dxf.Placement {
	box := SketchBox(s)
	c := box.Center()
	o := PageOrigin(p)
	return dxf.Placement{
		TargetCenter: vec.Vec2{X: o.X + c.X, Y: o.Y + PageHeight - c.Y},
		MaxWidth:     box.Width(),
		MaxHeight:    box.Height(),
	}
}

// itemScene returns the stored drawing of an item or regenerates it. An
// unknown archetype yields no drawing and reports false.
func itemScene(lib *fittings.Library, item *models.Item) (*scene.Scene, bool) {
	if item.Scene != nil {
		return item.Scene, true
	}
	sc, err := lib.Generate(item.Archetype, item.Params, "")
	if err != nil {
		return nil, false
	}
	return &sc, true
}

func description(lib *fittings.Library, item *models.Item) string {
	if strings.TrimSpace(item.Meta.Description) != "" {
		return item.Meta.Description
	}
	d, err := lib.Describe(item.Archetype, item.Params)
	if err != nil {
		return strings.ToUpper(item.Archetype)
	}
	return d
}
