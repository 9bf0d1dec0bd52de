package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/SidddhantJain/QuietQuill/internal/common"
	"github.com/SidddhantJain/QuietQuill/internal/journal"
	"github.com/fatih/color"
)

var (
	pinnedStyle = color.New(color.FgYellow, color.Bold)
	titleStyle  = color.New(color.FgCyan)
)

// NewEntry prompts for content and metadata and saves a new encrypted entry.
// The session start time is when the command begins, so the entry lands in
// the year/month folder of the writing session, not of the final keystroke.
func (a *App) NewEntry(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	start := time.Now()

	content, err := getMultiline(a.reader, "Write your entry", os.Stdout)
	if err != nil {
		return err
	}

	title, err := getSimpleText(a.reader, "Enter title", os.Stdout)
	if err != nil {
		return err
	}

	tagsLine, err := getSimpleText(a.reader, "Tags (comma-separated, optional)", os.Stdout)
	if err != nil {
		return err
	}

	categoryLine, err := getSimpleText(a.reader, "Category (Journal/Dream/Work/Travel/Other)", os.Stdout)
	if err != nil {
		return err
	}

	entry, err := a.repo.Save(ctx, a.session.Username, []byte(content), journal.Draft{
		Title:     title,
		Tags:      SplitTags(tagsLine),
		Category:  journal.ParseCategory(categoryLine),
		StartTime: start,
	}, a.session.Key)
	if err != nil {
		if errors.Is(err, common.ErrValidation) {
			printlnFn(color.RedString("Entry title is required."))
		} else {
			printlnFn(color.RedString("Save failed: %v", err))
		}
		return err
	}

	printlnFn(color.GreenString("Saved %s", entry.Filename))
	return nil
}

// List prints the user's entry index: pinned entries first, then
// alphabetical by title.
func (a *App) List(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	index, err := a.repo.List(ctx, a.session.Username)
	if err != nil {
		printlnFn(color.RedString("Listing failed: %v", err))
		return err
	}
	if len(index) == 0 {
		printlnFn("No entries yet. Try 'new'.")
		return nil
	}

	a.printIndex(index)
	return nil
}

func (a *App) printIndex(index []journal.Entry) {
	for _, e := range index {
		label := fmt.Sprintf("%s | %s → %s", e.Title, e.StartTime, e.EndTime)
		if len(e.Tags) > 0 {
			label += fmt.Sprintf(" [%v]", e.Tags)
		}
		if e.Pinned {
			printlnFn(pinnedStyle.Sprintf("📌 %s", label), "("+e.Filename+")")
		} else {
			printlnFn(titleStyle.Sprint(label), "("+e.Filename+")")
		}
	}
}

// Show decrypts and prints one entry by filename.
func (a *App) Show(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	filename, err := getSimpleText(a.reader, "Entry filename", os.Stdout)
	if err != nil {
		return err
	}

	content, err := a.loadEntry(ctx, filename)
	if err != nil {
		return err
	}

	printlnFn(string(content))
	return nil
}

// loadEntry decrypts one entry and reports failures to the user. A ciphertext
// whose header does not parse is treated the same as one that fails the GCM
// check; both mean the file on disk is not what this key once wrote.
func (a *App) loadEntry(ctx context.Context, filename string) ([]byte, error) {
	content, err := a.repo.Load(ctx, a.session.Username, filename, a.session.Key)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrAuthenticationFailed), errors.Is(err, common.ErrUnsupportedFormat):
			printlnFn(color.RedString("Entry could not be loaded: integrity check failed."))
		case errors.Is(err, common.ErrNotFound):
			printlnFn(color.RedString("No such entry."))
		default:
			printlnFn(color.RedString("Load failed: %v", err))
		}
		return nil, err
	}
	return content, nil
}

// Edit re-opens a saved entry: shows the current content, collects
// replacements (an empty answer keeps the current value) and re-saves under
// the same filename, preserving start_time and pin state.
func (a *App) Edit(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	filename, err := getSimpleText(a.reader, "Entry filename", os.Stdout)
	if err != nil {
		return err
	}

	content, err := a.loadEntry(ctx, filename)
	if err != nil {
		return err
	}

	cur := journal.Entry{Metadata: *journal.FallbackMetadata(a.session.Username, filename)}
	if index, err := a.repo.List(ctx, a.session.Username); err == nil {
		for _, e := range index {
			if e.Filename == filename {
				cur = e
				break
			}
		}
	}

	printlnFn("Current content:")
	printlnFn(string(content))

	newContent, err := getMultiline(a.reader, "New content (empty keeps current)", os.Stdout)
	if err != nil {
		return err
	}
	if newContent == "" {
		newContent = string(content)
	}

	title, err := getSimpleText(a.reader, fmt.Sprintf("Title (empty keeps %q)", cur.Title), os.Stdout)
	if err != nil {
		return err
	}

	tagsLine, err := getSimpleText(a.reader, "Tags (empty keeps current)", os.Stdout)
	if err != nil {
		return err
	}
	tags := cur.Tags
	if tagsLine != "" {
		tags = SplitTags(tagsLine)
	}

	categoryLine, err := getSimpleText(a.reader, "Category (empty keeps current)", os.Stdout)
	if err != nil {
		return err
	}
	category := cur.Category
	if categoryLine != "" {
		category = journal.ParseCategory(categoryLine)
	}

	entry, err := a.repo.Save(ctx, a.session.Username, []byte(newContent), journal.Draft{
		Filename: filename,
		Title:    title,
		Tags:     tags,
		Category: category,
		Pinned:   cur.Pinned,
	}, a.session.Key)
	if err != nil {
		printlnFn(color.RedString("Save failed: %v", err))
		return err
	}

	printlnFn(color.GreenString("Updated %s", entry.Filename))
	return nil
}

// Pin toggles an entry's pinned flag.
func (a *App) Pin(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	filename, err := getSimpleText(a.reader, "Entry filename", os.Stdout)
	if err != nil {
		return err
	}

	pinned, err := a.repo.TogglePin(ctx, a.session.Username, filename)
	if err != nil {
		printlnFn(color.RedString("Pin failed: %v", err))
		return err
	}
	if pinned {
		printlnFn("Pinned.")
	} else {
		printlnFn("Unpinned.")
	}
	return nil
}

// Delete removes an entry and its sidecar after confirmation.
func (a *App) Delete(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	filename, err := getSimpleText(a.reader, "Entry filename", os.Stdout)
	if err != nil {
		return err
	}

	confirm, err := getSimpleText(a.reader, "Delete "+filename+"? (yes/no)", os.Stdout)
	if err != nil {
		return err
	}
	if confirm != "yes" {
		printlnFn("Cancelled.")
		return nil
	}

	if err := a.repo.Delete(ctx, a.session.Username, filename); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			printlnFn(color.RedString("No such entry."))
		} else {
			printlnFn(color.RedString("Delete failed: %v", err))
		}
		return err
	}

	printlnFn("Deleted.")
	return nil
}
