package journal

import (
	"sort"
	"strings"
)

// Category classifies an entry.
type Category string

const (
	CategoryJournal Category = "Journal"
	CategoryDream   Category = "Dream"
	CategoryWork    Category = "Work"
	CategoryTravel  Category = "Travel"
	CategoryOther   Category = "Other"
)

// Categories lists the valid categories in display order.
var Categories = []Category{CategoryJournal, CategoryDream, CategoryWork, CategoryTravel, CategoryOther}

// ParseCategory matches s case-insensitively against the known categories,
// defaulting to CategoryOther.
func ParseCategory(s string) Category {
	for _, c := range Categories {
		if strings.EqualFold(string(c), s) {
			return c
		}
	}
	return CategoryOther
}

// Entry is one element of a user's in-memory index: the sidecar metadata
// (or its filename-derived fallback) plus where the ciphertext lives.
type Entry struct {
	Metadata

	// Path is the ciphertext file location.
	Path string

	// Fallback reports that the sidecar was missing or corrupt and the
	// metadata was synthesized from the filename.
	Fallback bool
}

// sortIndex orders entries for display: pinned first, then by title
// case-insensitively, with ties broken by filename so the order is total.
func sortIndex(index []Entry) {
	sort.SliceStable(index, func(i, j int) bool {
		a, b := index[i], index[j]
		if a.Pinned != b.Pinned {
			return a.Pinned
		}
		at, bt := strings.ToLower(a.Title), strings.ToLower(b.Title)
		if at != bt {
			return at < bt
		}
		return a.Filename < b.Filename
	})
}
