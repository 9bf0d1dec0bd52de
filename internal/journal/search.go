package journal

import "strings"

// ContentType narrows search results by whether entries embed images.
type ContentType string

const (
	ContentAny       ContentType = "Any"
	ContentTextOnly  ContentType = "TextOnly"
	ContentWithImage ContentType = "WithImage"
)

// Criteria configures a search over an entry index. A zero value for any
// field means "no constraint on that field"; populated fields are ANDed.
//
// Keyword matches case-insensitively against title and the stored content
// preview, never against ciphertext. Tag is exact, case-insensitive set
// membership. DateFrom/DateTo bound the entry date inclusively; comparison
// is lexicographic, which is correct for YYYY-MM-DD strings.
type Criteria struct {
	Keyword     string
	Tag         string
	DateFrom    string
	DateTo      string
	ContentType ContentType
}

// Filter returns the entries of index matching c, preserving index order.
// An empty result is not an error; callers distinguish "no matches" from
// "no entries at all" by the size of the input index.
func Filter(index []Entry, c Criteria) []Entry {
	matches := []Entry{}
	for _, e := range index {
		if matchesCriteria(e, c) {
			matches = append(matches, e)
		}
	}
	return matches
}

func matchesCriteria(e Entry, c Criteria) bool {
	if c.DateFrom != "" && e.Date < c.DateFrom {
		return false
	}
	if c.DateTo != "" && e.Date > c.DateTo {
		return false
	}

	switch c.ContentType {
	case ContentTextOnly:
		if e.HasImage {
			return false
		}
	case ContentWithImage:
		if !e.HasImage {
			return false
		}
	}

	if c.Keyword != "" {
		kw := strings.ToLower(c.Keyword)
		if !strings.Contains(strings.ToLower(e.Title), kw) &&
			!strings.Contains(strings.ToLower(e.Preview), kw) {
			return false
		}
	}

	if c.Tag != "" {
		found := false
		for _, tag := range e.Tags {
			if strings.EqualFold(tag, c.Tag) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}
