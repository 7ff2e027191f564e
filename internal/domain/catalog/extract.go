package catalog

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/scoutbase/combine/internal/domain/model"
)

// Extract returns the metric's numeric value from doc. Missing or
// non-numeric data yields ok=false; absence is never reported as zero and
// never as an error, so a player without a value simply drops out of that
// metric's ranking.
func Extract(m Metric, doc model.ScoreDoc) (float64, bool) {
	switch m.Source.Kind {
	case SourceMaxOf:
		a, aok := numericField(doc, m.Source.Field)
		b, bok := numericField(doc, m.Source.FieldB)
		switch {
		case aok && bok:
			return math.Max(a, b), true
		case aok:
			return a, true
		case bok:
			return b, true
		default:
			return 0, false
		}
	default:
		return numericField(doc, m.Source.Field)
	}
}

// numericField looks up field and coerces it to a finite float64.
func numericField(doc model.ScoreDoc, field string) (float64, bool) {
	raw, ok := doc[field]
	if !ok || raw == nil {
		return 0, false
	}

	var v float64
	switch t := raw.(type) {
	case float64:
		v = t
	case float32:
		v = float64(t)
	case int:
		v = float64(t)
	case int32:
		v = float64(t)
	case int64:
		v = float64(t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, false
		}
		v = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		v = f
	default:
		return 0, false
	}

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
