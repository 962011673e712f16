package search

import (
	"cmp"
	"encoding/json"
	"math/big"
	"slices"
	"strconv"
	"strings"
)

// SortBy returns a copy of records ordered ascending by field. The sort is stable.
// Numbers compare numerically and strings lexicographically; across kinds numbers
// come first, then strings, then booleans, then anything else. Records where the
// field is missing or null go last, in their original order.
func SortBy(records []Record, field string) []Record {
	out := make([]Record, len(records))
	copy(out, records)
	slices.SortStableFunc(out, func(a, b Record) int {
		av, aok := sortKey(a, field)
		bv, bok := sortKey(b, field)
		switch {
		case !aok && !bok:
			return 0
		case !aok:
			return 1
		case !bok:
			return -1
		}
		return compareValues(av, bv)
	})
	return out
}

func sortKey(rec Record, field string) (any, bool) {
	v, ok := rec[field]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

const (
	rankNumber = iota
	rankString
	rankBool
	rankOther
)

func rank(v any) int {
	switch v.(type) {
	case json.Number, float64, float32, int, int32, int64, uint, uint32, uint64:
		return rankNumber
	case string:
		return rankString
	case bool:
		return rankBool
	}
	return rankOther
}

func compareValues(a, b any) int {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}
	switch ra {
	case rankNumber:
		return compareNumbers(a, b)
	case rankString:
		return strings.Compare(a.(string), b.(string))
	case rankBool:
		return compareBools(a.(bool), b.(bool))
	}
	aj, _ := json.Marshal(a)
	bj, _ := json.Marshal(b)
	return strings.Compare(string(aj), string(bj))
}

// compareNumbers compares exactly, so that integers beyond float64 precision and
// fractions between them still order consistently.
func compareNumbers(a, b any) int {
	ar, aok := asRat(a)
	br, bok := asRat(b)
	if aok && bok {
		return ar.Cmp(br)
	}
	// Only non-finite floats get here.
	return cmp.Compare(asFloat(a), asFloat(b))
}

func asRat(v any) (*big.Rat, bool) {
	switch n := v.(type) {
	case json.Number:
		return new(big.Rat).SetString(n.String())
	case int:
		return new(big.Rat).SetInt64(int64(n)), true
	case int32:
		return new(big.Rat).SetInt64(int64(n)), true
	case int64:
		return new(big.Rat).SetInt64(n), true
	case uint:
		return new(big.Rat).SetUint64(uint64(n)), true
	case uint32:
		return new(big.Rat).SetUint64(uint64(n)), true
	case uint64:
		return new(big.Rat).SetUint64(n), true
	case float32:
		return ratFromFloat(float64(n))
	case float64:
		return ratFromFloat(n)
	}
	return nil, false
}

func ratFromFloat(f float64) (*big.Rat, bool) {
	r := new(big.Rat).SetFloat64(f)
	return r, r != nil
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case json.Number:
		f, _ := strconv.ParseFloat(n.String(), 64)
		return f
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint32:
		return float64(n)
	case uint64:
		return float64(n)
	}
	return 0
}

func compareBools(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	}
	return 1
}
