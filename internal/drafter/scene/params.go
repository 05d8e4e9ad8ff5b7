package scene

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Params is the open parameter set of one component. Values arrive as
// JSON/YAML scalars, strings typed into a form, or nested lists of records.
type Params map[string]any

// Has reports whether key holds a usable value (not nil, not blank).
func (p Params) Has(key string) bool {
	v, ok := p[key]
	if !ok || v == nil {
		return false
	}
	if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
		return false
	}
	return true
}

// Num coerces key to a number, returning def when absent or not numeric.
func (p Params) Num(key string, def float64) float64 {
	if !p.Has(key) {
		return def
	}
	if f, ok := ToFloat(p[key]); ok {
		return f
	}
	return def
}

// Int is Num rounded toward zero.
func (p Params) Int(key string, def int) int {
	return int(p.Num(key, float64(def)))
}

// Str returns key as trimmed text, or def when absent.
func (p Params) Str(key, def string) string {
	if !p.Has(key) {
		return def
	}
	switch v := p[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	}
	return def
}

// List returns key as a list of records. Entries that are not records are
// dropped.
func (p Params) List(key string) []Params {
	raw, ok := p[key].([]any)
	if !ok {
		if typed, ok := p[key].([]Params); ok {
			return typed
		}
		if maps, ok := p[key].([]map[string]any); ok {
			out := make([]Params, 0, len(maps))
			for _, m := range maps {
				out = append(out, Params(m))
			}
			return out
		}
		return nil
	}
	out := make([]Params, 0, len(raw))
	for _, item := range raw {
		switch m := item.(type) {
		case map[string]any:
			out = append(out, Params(m))
		case Params:
			out = append(out, m)
		}
	}
	return out
}

// Clone returns a shallow copy.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// ToFloat converts the scalar kinds found in decoded JSON, YAML and form
// input to float64. NaN and infinities are not numbers here.
func ToFloat(v any) (float64, bool) {
	f, ok := toFloat(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}
