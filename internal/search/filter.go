package search

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Filter keeps the records where q is a case-insensitive substring of at least one
// of fields. An empty q keeps everything. The input slice is never modified.
func Filter(records []Record, q string, fields ...string) []Record {
	if q == "" {
		out := make([]Record, len(records))
		copy(out, records)
		return out
	}

	fold := cases.Fold()
	needle := fold.String(q)
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		for _, field := range fields {
			text, ok := fieldText(rec, field)
			if ok && strings.Contains(fold.String(text), needle) {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}

func fieldText(rec Record, field string) (string, bool) {
	v, ok := rec[field]
	if !ok || v == nil {
		return "", false
	}
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case map[string]any, []any:
		// Structured values are not searchable text.
		return "", false
	default:
		return fmt.Sprint(t), true
	}
}
