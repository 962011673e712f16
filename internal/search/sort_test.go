package search

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortBy_Strings(t *testing.T) {
	authors := []Record{{"name": "Ada"}, {"name": "Bob"}}
	assert.Equal(t, []Record{{"name": "Ada"}, {"name": "Bob"}}, SortBy(authors, "name"))

	reversed := []Record{{"name": "Bob"}, {"name": "Ada"}}
	assert.Equal(t, []Record{{"name": "Ada"}, {"name": "Bob"}}, SortBy(reversed, "name"))
	assert.Equal(t, "Bob", reversed[0]["name"], "input slice must not be modified")
}

func TestSortBy_NumbersAreNumeric(t *testing.T) {
	books := []Record{
		{"id": json.Number("10")},
		{"id": json.Number("9")},
		{"id": json.Number("2.5")},
		{"id": 1},
	}

	got := SortBy(books, "id")

	assert.Equal(t, []Record{
		{"id": 1},
		{"id": json.Number("2.5")},
		{"id": json.Number("9")},
		{"id": json.Number("10")},
	}, got)
}

func TestSortBy_StableForTies(t *testing.T) {
	books := []Record{
		{"price": json.Number("5"), "title": "first"},
		{"price": json.Number("1"), "title": "cheap"},
		{"price": json.Number("5"), "title": "second"},
		{"price": json.Number("5.0"), "title": "third"},
	}

	got := SortBy(books, "price")

	titles := make([]string, len(got))
	for i, r := range got {
		titles[i] = r["title"].(string)
	}
	assert.Equal(t, []string{"cheap", "first", "second", "third"}, titles)
}

func TestSortBy_MissingFieldsGoLast(t *testing.T) {
	books := []Record{
		{"title": "no year a"},
		{"title": "b", "year": json.Number("2001")},
		{"title": "null year", "year": nil},
		{"title": "a", "year": json.Number("1999")},
		{"title": "no year b"},
	}

	got := SortBy(books, "year")

	titles := make([]string, len(got))
	for i, r := range got {
		titles[i] = r["title"].(string)
	}
	assert.Equal(t, []string{"a", "b", "no year a", "null year", "no year b"}, titles)
}

func TestSortBy_MixedKinds(t *testing.T) {
	records := []Record{
		{"v": true},
		{"v": "text"},
		{"v": []any{"x"}},
		{"v": false},
		{"v": json.Number("3")},
	}

	got := SortBy(records, "v")

	assert.Equal(t, []Record{
		{"v": json.Number("3")},
		{"v": "text"},
		{"v": false},
		{"v": true},
		{"v": []any{"x"}},
	}, got)
}

func TestSortBy_NonDecreasing(t *testing.T) {
	records := []Record{
		{"name": "delta"}, {"name": "Alpha"}, {"name": "charlie"}, {"name": "bravo"}, {"name": "alpha"},
	}

	got := SortBy(records, "name")

	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, compareValues(got[i-1]["name"], got[i]["name"]), 0)
	}
	assert.Len(t, got, len(records))
}

func TestSortBy_LargeNumbersStayOrdered(t *testing.T) {
	records := []Record{
		{"id": json.Number("9007199254740993")},
		{"id": json.Number("9007199254740992.5")},
		{"id": json.Number("9007199254740992")},
	}

	got := SortBy(records, "id")

	assert.Equal(t, []Record{
		{"id": json.Number("9007199254740992")},
		{"id": json.Number("9007199254740992.5")},
		{"id": json.Number("9007199254740993")},
	}, got)
	for i := 1; i < len(got); i++ {
		assert.Negative(t, compareValues(got[i-1]["id"], got[i]["id"]))
	}
}

func TestCompareNumbers_ExactAcrossRepresentations(t *testing.T) {
	assert.Equal(t, 0, compareNumbers(json.Number("5"), json.Number("5.0")))
	assert.Equal(t, 0, compareNumbers(json.Number("1e3"), 1000))
	assert.Equal(t, -1, compareNumbers(json.Number("-2.5"), int64(-2)))
	assert.Equal(t, 1, compareNumbers(uint64(18446744073709551615), json.Number("18446744073709551614")))
	assert.Equal(t, -1, compareNumbers(0.1, json.Number("0.1000000000000000056")))
}
