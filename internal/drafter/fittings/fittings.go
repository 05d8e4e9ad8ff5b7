// Package fittings turns a parameter set into the schematic drawing of one
// duct fitting. Every generator is a pure function of its parameters.
package fittings

import (
	"errors"
	"fmt"
	"sort"

	"seehuhn.de/go/geom/vec"

	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/draw"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/geom"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/scene"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/standards"
)

var ErrUnknownArchetype = errors.New("unknown archetype")

const (
	Straight         = "straight"
	Elbow            = "elbow"
	Reducer          = "reducer"
	Offset           = "offset"
	Tee              = "tee"
	CrossTee         = "cross_tee"
	LateralTee       = "lateral_tee"
	BootTee          = "boot_tee"
	SaddleTap        = "saddle_tap"
	Transformation   = "transformation"
	VolumeDamper     = "volume_damper"
	MultibladeDamper = "multiblade_damper"
	BlastGate        = "blast_gate"
	StraightWithTaps = "straight_with_taps"
	BlindPlate       = "blind_plate"
	AngleFlange      = "angle_flange"
	Manual           = "manual"
)

const (
	defaultMargin    = 20
	wideCanvasWidth  = 850
	wideCanvasHeight = 600
)

// archetype binds a generator to its description line.
type archetype struct {
	title    string
	wide     bool
	build    func(c *ctx)
	describe func(p scene.Params) string
}

var registry = map[string]archetype{
	Straight:         {title: "Straight Duct", build: buildStraight, describe: describeStraight},
	Elbow:            {title: "Elbow", build: buildElbow, describe: describeElbow},
	Reducer:          {title: "Reducer", build: buildReducer, describe: describeReducer},
	Offset:           {title: "Offset", build: buildOffset, describe: describeOffset},
	Tee:              {title: "Tee", wide: true, build: buildTee, describe: describeTee},
	CrossTee:         {title: "Cross Tee", wide: true, build: buildCrossTee, describe: describeCrossTee},
	LateralTee:       {title: "Lateral Tee", wide: true, build: buildLateralTee, describe: describeLateralTee},
	BootTee:          {title: "Boot Tee", wide: true, build: buildBootTee, describe: describeBootTee},
	SaddleTap:        {title: "Saddle Tap", wide: true, build: buildSaddleTap, describe: describeSaddleTap},
	Transformation:   {title: "Transformation", wide: true, build: buildTransformation, describe: describeTransformation},
	VolumeDamper:     {title: "Volume Damper", wide: true, build: buildVolumeDamper, describe: describeVolumeDamper},
	MultibladeDamper: {title: "Multiblade Damper", wide: true, build: buildMultibladeDamper, describe: describeMultibladeDamper},
	BlastGate:        {title: "Blast Gate Damper", wide: true, build: buildBlastGate, describe: describeBlastGate},
	StraightWithTaps: {title: "Straight Duct with Taps", wide: true, build: buildStraightWithTaps, describe: describeStraightWithTaps},
	BlindPlate:       {title: "Blind Plate", wide: true, build: buildBlindPlate, describe: describeBlindPlate},
	AngleFlange:      {title: "Angle Flange", wide: true, build: buildAngleFlange, describe: describeAngleFlange},
	Manual:           {title: "Manual", build: func(*ctx) {}, describe: describeManual},
}

// Info is the catalogue entry of an archetype.
type Info struct {
	Name     string       `json:"name"`
	Title    string       `json:"title"`
	Defaults scene.Params `json:"defaults"`
}

// Library generates drawings against one standards table.
type Library struct {
	table *standards.Table
}

func New(table *standards.Table) *Library {
	if table == nil {
		table = standards.Default()
	}
	return &Library{table: table}
}

var defaultLibrary = New(nil)

// Generate is New(standards.Default()).Generate.
func Generate(name string, params scene.Params, active string) (scene.Scene, error) {
	return defaultLibrary.Generate(name, params, active)
}

// Describe is New(standards.Default()).Describe.
func Describe(name string, params scene.Params) (string, error) {
	return defaultLibrary.Describe(name, params)
}

// Table returns the standards table the library draws with.
func (l *Library) Table() *standards.Table {
	return l.table
}

// Generate draws archetype name. Missing parameters take the archetype
// defaults; active names the parameter whose dimension is highlighted.
func (l *Library) Generate(name string, params scene.Params, active string) (scene.Scene, error) {
	a, ok := registry[name]
	if !ok {
		return scene.Scene{}, fmt.Errorf("%w: %q", ErrUnknownArchetype, name)
	}
	w, h := float64(scene.DefaultWidth), float64(scene.DefaultHeight)
	if a.wide {
		w, h = wideCanvasWidth, wideCanvasHeight
	}
	c := &ctx{
		p:      l.table.Hydrate(name, params),
		active: active,
		table:  l.table,
		sc:     scene.New(w, h),
	}
	a.build(c)
	c.sc.Center(defaultMargin)
	return *c.sc, nil
}

// Describe returns the default description line of an item.
func (l *Library) Describe(name string, params scene.Params) (string, error) {
	a, ok := registry[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownArchetype, name)
	}
	return a.describe(l.table.Hydrate(name, params)), nil
}

// Archetypes returns the catalogue sorted by name.
func (l *Library) Archetypes() []Info {
	out := make([]Info, 0, len(registry))
	for name, a := range registry {
		out = append(out, Info{Name: name, Title: a.title, Defaults: l.table.Hydrate(name, nil)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Known reports whether name is a registered archetype.
func Known(name string) bool {
	_, ok := registry[name]
	return ok
}

// ============================================================
// Generator context
// ============================================================

type ctx struct {
	p      scene.Params
	active string
	table  *standards.Table
	sc     *scene.Scene
}

func (c *ctx) num(key string) float64 {
	return c.p.Num(key, 0)
}

// on reports whether key is the active field.
func (c *ctx) on(key string) bool {
	return key != "" && c.active == key
}

func (c *ctx) add(nodes ...scene.Node) {
	c.sc.Add(nodes...)
}

// remark draws the free-text remark stored under key pointing at anchor.
// Absent remarks draw nothing.
func (c *ctx) remark(key string, anchor vec.Vec2, direction float64) float64 {
	nodes, occupied := draw.Leader(anchor, c.p.Str(key, ""), direction, -1, true)
	c.add(nodes...)
	return occupied
}

// ============================================================
// Visual scale
// ============================================================

const (
	diameterScale = 0.4
	minVisualDia  = 60
	maxVisualDia  = 220
	lengthScale   = 0.25
)

// visualDiameter maps a real diameter onto the canvas.
func visualDiameter(d float64) float64 {
	return geom.Clamp(d*diameterScale, minVisualDia, maxVisualDia)
}

// relative scales a secondary real size against a reference real size and
// its visual size.
func relative(d, ref, visualRef, lo, hi float64) float64 {
	return geom.Clamp(visualRef*geom.Ratio(d, ref, 1), lo, hi)
}

// visualLength maps a real length onto the canvas, clamped to [lo, hi].
// A positive length never maps below lo.
func visualLength(l, lo, hi float64) float64 {
	if l <= 0 {
		return 0
	}
	return geom.Clamp(l*lengthScale, lo, hi)
}

// pipe draws the two side walls of a horizontal run from x0 to x1 with
// radius r around y, plus its axis.
func pipe(x0, x1, y, r float64) []scene.Node {
	return []scene.Node{
		draw.Body(x0, y-r, x1, y-r),
		draw.Body(x0, y+r, x1, y+r),
		draw.Centerline(scene.Pt(x0, y), scene.Pt(x1, y), 10),
	}
}

// saddle is the weld curve where a branch spanning x0..x1 meets the main
// edge at y. The curve dips by dip; sign points toward the main axis.
func saddle(x0, x1, y, dip, sign float64) scene.Path {
	mid := (x0 + x1) / 2
	return scene.NewPath().MoveTo(x0, y).QuadTo(mid, y+sign*2*dip, x1, y).Build(scene.Body)
}
