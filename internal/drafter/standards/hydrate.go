package standards

import (
	_ "embed"
	"fmt"
	"math"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/scene"
)

//go:embed defaults.yaml
var embeddedDefaults []byte

func loadDefaults() (map[string]map[string]any, error) {
	var out map[string]map[string]any
	if err := yaml.Unmarshal(embeddedDefaults, &out); err != nil {
		return nil, fmt.Errorf("parse archetype defaults: %w", err)
	}
	return out, nil
}

// derivation recomputes a parameter from the others.
type derivation struct {
	key    string
	derive func(t *Table, p scene.Params) any
}

func fromDiameter(field string, fn func(Row) any) func(*Table, scene.Params) any {
	return func(t *Table, p scene.Params) any {
		return fn(t.Lookup(p.Num(field, 0)))
	}
}

var (
	holesFromD1 = derivation{"holes", fromDiameter("d1", func(r Row) any { return r.HoleCount })}
	pcdFromD1   = derivation{"pcd", fromDiameter("d1", func(r Row) any { return r.BoltCircleDiameter })}
	midBranch   = derivation{"branch_pos", func(_ *Table, p scene.Params) any { return p.Num("length", 0) / 2 }}
)

var derivations = map[string][]derivation{
	"elbow": {
		{"radius", func(_ *Table, p scene.Params) any { return p.Num("d1", 0) / 2 }},
	},
	"tee": {midBranch},
	"cross_tee": {
		midBranch,
		{"d3", func(_ *Table, p scene.Params) any { return p.Num("d2", 0) }},
	},
	"boot_tee": {
		midBranch,
		{"boot", func(_ *Table, p scene.Params) any { return math.Round(p.Num("d2", 0) / 3) }},
	},
	"multiblade_damper": {
		{"blades", func(_ *Table, p scene.Params) any {
			return max(1, int(math.Ceil(p.Num("height", 0)/150)))
		}},
	},
	"blind_plate":  {holesFromD1, pcdFromD1},
	"angle_flange": {holesFromD1, pcdFromD1},
}

// Archetypes lists the archetypes that have defaults, sorted.
func (t *Table) Archetypes() []string {
	names := make([]string, 0, len(t.defaults))
	for name := range t.defaults {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Defaults returns a fresh copy of the default parameters of archetype, or
// nil when the archetype is unknown.
func (t *Table) Defaults(archetype string) scene.Params {
	d, ok := t.defaults[archetype]
	if !ok {
		return nil
	}
	out := make(scene.Params, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Hydrate merges caller values over the archetype defaults. Nil and blank
// values do not override, nor do non-numeric values for a numeric default.
// A derived parameter that the caller left out, or set to its plain
// default, is recomputed from the merged inputs.
func (t *Table) Hydrate(archetype string, partial scene.Params) scene.Params {
	defaults := t.Defaults(archetype)
	out := defaults.Clone()
	accepted := make(map[string]bool, len(partial))
	for k, v := range partial {
		if !partial.Has(k) {
			continue
		}
		if _, numeric := scene.ToFloat(defaults[k]); numeric {
			if _, ok := scene.ToFloat(v); !ok {
				continue
			}
		}
		out[k] = v
		accepted[k] = true
	}
	for _, d := range derivations[archetype] {
		if accepted[d.key] && !sameValue(partial[d.key], defaults[d.key]) {
			continue
		}
		out[d.key] = d.derive(t, out)
	}
	return out
}

func sameValue(a, b any) bool {
	fa, okA := scene.ToFloat(a)
	fb, okB := scene.ToFloat(b)
	if okA && okB {
		return fa == fb
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}
