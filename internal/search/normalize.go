package search

import (
	"fmt"
	"strings"

	"bookgateway/internal/platform/outbound"
)

// Normalize turns a backend payload into records. nil and empty text are an
// empty list; text is parsed as JSON once; anything else that is not a list of
// objects is ErrMalformedPayload.
func Normalize(payload any) ([]Record, error) {
	return normalize(payload, true)
}

func normalize(payload any, parseText bool) ([]Record, error) {
	switch v := payload.(type) {
	case nil:
		return []Record{}, nil
	case []Record:
		out := make([]Record, len(v))
		copy(out, v)
		return out, nil
	case []map[string]any:
		out := make([]Record, len(v))
		for i, m := range v {
			out[i] = Record(m)
		}
		return out, nil
	case []any:
		out := make([]Record, 0, len(v))
		for i, item := range v {
			switch m := item.(type) {
			case map[string]any:
				out = append(out, Record(m))
			case Record:
				out = append(out, m)
			default:
				return nil, fmt.Errorf("%w: item %d is %T", ErrMalformedPayload, i, item)
			}
		}
		return out, nil
	case string:
		text := strings.TrimSpace(v)
		if text == "" {
			return []Record{}, nil
		}
		if !parseText {
			return nil, fmt.Errorf("%w: nested text payload", ErrMalformedPayload)
		}
		decoded := outbound.DecodePayload([]byte(text))
		if _, still := decoded.(string); still {
			return nil, fmt.Errorf("%w: text is not JSON", ErrMalformedPayload)
		}
		return normalize(decoded, false)
	default:
		return nil, fmt.Errorf("%w: got %T", ErrMalformedPayload, payload)
	}
}
