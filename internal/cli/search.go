package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/SidddhantJain/QuietQuill/internal/journal"
	"github.com/fatih/color"
)

// Search prompts for criteria and filters the in-memory index. Criteria are
// ANDed; leaving a prompt empty puts no constraint on that field.
func (a *App) Search(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	keyword, err := getSimpleText(a.reader, "Keyword (optional)", os.Stdout)
	if err != nil {
		return err
	}
	tag, err := getSimpleText(a.reader, "Tag (optional)", os.Stdout)
	if err != nil {
		return err
	}
	from, err := getSimpleText(a.reader, "From date YYYY-MM-DD (optional)", os.Stdout)
	if err != nil {
		return err
	}
	to, err := getSimpleText(a.reader, "To date YYYY-MM-DD (optional)", os.Stdout)
	if err != nil {
		return err
	}
	typeLine, err := getSimpleText(a.reader, "Content type: any/text/image (optional)", os.Stdout)
	if err != nil {
		return err
	}

	index, err := a.repo.List(ctx, a.session.Username)
	if err != nil {
		printlnFn(color.RedString("Search failed: %v", err))
		return err
	}

	matches := journal.Filter(index, journal.Criteria{
		Keyword:     keyword,
		Tag:         tag,
		DateFrom:    from,
		DateTo:      to,
		ContentType: parseContentType(typeLine),
	})

	if len(matches) == 0 {
		if len(index) == 0 {
			printlnFn("You have no entries at all yet.")
		} else {
			printlnFn("No entries matched your search.")
		}
		return nil
	}

	for _, e := range matches {
		printlnFn(fmt.Sprintf("%s - %s (%s)", e.Date, e.Title, e.Filename))
	}
	return nil
}

func parseContentType(s string) journal.ContentType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "textonly", "text only":
		return journal.ContentTextOnly
	case "image", "withimage", "with image":
		return journal.ContentWithImage
	default:
		return journal.ContentAny
	}
}

// Stats prints aggregate figures over the user's sidecar metadata.
func (a *App) Stats(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	index, err := a.repo.List(ctx, a.session.Username)
	if err != nil {
		printlnFn(color.RedString("Stats failed: %v", err))
		return err
	}
	if len(index) == 0 {
		printlnFn("No entries found for this user.")
		return nil
	}

	st := journal.ComputeStats(index)
	printlnFn(fmt.Sprintf("Total entries: %d", st.TotalEntries))
	printlnFn(fmt.Sprintf("Longest entry: %s (%d words)", st.LongestTitle, st.LongestWords))
	printlnFn(fmt.Sprintf("Average words per entry: %d", st.AverageWords))
	printlnFn(fmt.Sprintf("Most active day: %s (%d entries)", st.MostActiveDay, st.MostActiveCount))
	printlnFn(fmt.Sprintf("Earliest entry: %s", st.EarliestDate))
	printlnFn(fmt.Sprintf("Latest entry: %s", st.LatestDate))
	return nil
}

// Tags prints the distinct tags used across the user's entries.
func (a *App) Tags(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	tags, err := a.repo.TagSuggestions(ctx, a.session.Username)
	if err != nil {
		printlnFn(color.RedString("Tags failed: %v", err))
		return err
	}
	if len(tags) == 0 {
		printlnFn("No tags yet.")
		return nil
	}
	printlnFn(strings.Join(tags, ", "))
	return nil
}

// Calendar prints the dates that have at least one entry.
func (a *App) Calendar(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	dates, err := a.repo.DatesWithEntries(ctx, a.session.Username)
	if err != nil {
		printlnFn(color.RedString("Calendar failed: %v", err))
		return err
	}
	if len(dates) == 0 {
		printlnFn("No dated entries yet.")
		return nil
	}
	for _, d := range dates {
		printlnFn(d)
	}
	return nil
}

// Mood records an emoji for a date in the user's moods.json.
func (a *App) Mood(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	date, err := getSimpleText(a.reader, "Date YYYY-MM-DD", os.Stdout)
	if err != nil {
		return err
	}
	emoji, err := getSimpleText(a.reader, "Emoji (empty to clear)", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.repo.SetMood(ctx, a.session.Username, date, emoji); err != nil {
		printlnFn(color.RedString("Mood update failed: %v", err))
		return err
	}
	printlnFn("Mood saved.")
	return nil
}

// Moods prints the stored date→emoji map.
func (a *App) Moods(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	moods := a.repo.Moods(ctx, a.session.Username)
	if len(moods) == 0 {
		printlnFn("No moods recorded yet.")
		return nil
	}
	for date, emoji := range moods {
		printlnFn(fmt.Sprintf("%s %s", date, emoji))
	}
	return nil
}
