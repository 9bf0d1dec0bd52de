package journal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func searchIndex() []Entry {
	return []Entry{
		{Metadata: Metadata{
			Filename: "trip.enc", Title: "Trip", Tags: []string{"travel"},
			Date: "2024-05-01", HasImage: true, Preview: "we drove down the coast",
		}},
		{Metadata: Metadata{
			Filename: "work.enc", Title: "Work log", Tags: []string{},
			Date: "2024-06-01", HasImage: false, Preview: "sprint planning notes",
		}},
	}
}

func titles(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Title
	}
	return out
}

func TestFilter_AndSemantics(t *testing.T) {
	index := searchIndex()

	got := Filter(index, Criteria{Keyword: "trip", ContentType: ContentWithImage})
	assert.Equal(t, []string{"Trip"}, titles(got))

	got = Filter(index, Criteria{Tag: "travel", DateFrom: "2024-01-01", DateTo: "2024-04-30"})
	assert.Empty(t, got, "date outside range must exclude the tagged entry")
}

func TestFilter_EmptyCriteriaMatchesAll(t *testing.T) {
	index := searchIndex()
	got := Filter(index, Criteria{})
	assert.Len(t, got, len(index))
}

func TestFilter_Keyword(t *testing.T) {
	index := searchIndex()

	tests := []struct {
		keyword string
		want    []string
	}{
		{"TRIP", []string{"Trip"}},            // case-insensitive title
		{"coast", []string{"Trip"}},           // matches preview
		{"sprint", []string{"Work log"}},      // preview only
		{"nothinghere", []string{}},           // no match, empty not error
		{"", []string{"Trip", "Work log"}},    // no constraint
	}
	for _, tt := range tests {
		got := Filter(index, Criteria{Keyword: tt.keyword})
		assert.Equal(t, tt.want, titles(got), "keyword %q", tt.keyword)
	}
}

func TestFilter_Tag(t *testing.T) {
	index := searchIndex()

	got := Filter(index, Criteria{Tag: "TRAVEL"})
	assert.Equal(t, []string{"Trip"}, titles(got), "tag match is case-insensitive")

	got = Filter(index, Criteria{Tag: "trav"})
	assert.Empty(t, got, "tag match is exact, not substring")
}

func TestFilter_DateRangeInclusive(t *testing.T) {
	index := searchIndex()

	got := Filter(index, Criteria{DateFrom: "2024-05-01", DateTo: "2024-05-01"})
	assert.Equal(t, []string{"Trip"}, titles(got), "bounds are inclusive")

	got = Filter(index, Criteria{DateFrom: "2024-05-02"})
	assert.Equal(t, []string{"Work log"}, titles(got), "open upper bound")

	got = Filter(index, Criteria{DateTo: "2024-05-31"})
	assert.Equal(t, []string{"Trip"}, titles(got), "open lower bound")
}

func TestFilter_ContentType(t *testing.T) {
	index := searchIndex()

	assert.Equal(t, []string{"Trip"}, titles(Filter(index, Criteria{ContentType: ContentWithImage})))
	assert.Equal(t, []string{"Work log"}, titles(Filter(index, Criteria{ContentType: ContentTextOnly})))
	assert.Len(t, Filter(index, Criteria{ContentType: ContentAny}), 2)
}
