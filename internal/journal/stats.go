package journal

// Stats aggregates sidecar metadata for the statistics view. All figures
// come from the index; ciphertext is never read.
type Stats struct {
	TotalEntries    int
	LongestTitle    string
	LongestWords    int
	AverageWords    int
	MostActiveDay   string
	MostActiveCount int
	EarliestDate    string
	LatestDate      string
}

// ComputeStats derives Stats from an entry index. Entries running on
// fallback metadata contribute to the total but carry no word count or date.
func ComputeStats(index []Entry) Stats {
	var st Stats
	st.TotalEntries = len(index)

	totalWords := 0
	perDay := map[string]int{}

	for _, e := range index {
		totalWords += e.WordCount
		if e.WordCount > st.LongestWords {
			st.LongestWords = e.WordCount
			st.LongestTitle = e.Title
		}
		if e.Date == "" {
			continue
		}
		perDay[e.Date]++
		if st.EarliestDate == "" || e.Date < st.EarliestDate {
			st.EarliestDate = e.Date
		}
		if e.Date > st.LatestDate {
			st.LatestDate = e.Date
		}
	}

	if st.TotalEntries > 0 {
		st.AverageWords = totalWords / st.TotalEntries
	}
	for day, n := range perDay {
		if n > st.MostActiveCount || (n == st.MostActiveCount && day < st.MostActiveDay) {
			st.MostActiveDay = day
			st.MostActiveCount = n
		}
	}
	return st
}
