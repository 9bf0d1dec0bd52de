package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const moodsFile = "moods.json"

// Moods returns the user's date→emoji mood map from
// <root>/<username>/moods.json. A missing or corrupt file degrades to an
// empty map; moods are convenience data, never worth failing a session over.
func (r *Repository) Moods(_ context.Context, username string) map[string]string {
	data, err := os.ReadFile(filepath.Join(r.userDir(username), moodsFile))
	if err != nil {
		return map[string]string{}
	}

	moods := map[string]string{}
	if err := json.Unmarshal(data, &moods); err != nil {
		return map[string]string{}
	}
	return moods
}

// SetMood records an emoji for a YYYY-MM-DD date, creating the user
// directory and moods file as needed. An empty emoji removes the mark.
func (r *Repository) SetMood(ctx context.Context, username, date, emoji string) error {
	dir := r.userDir(username)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	moods := r.Moods(ctx, username)
	if emoji == "" {
		delete(moods, date)
	} else {
		moods[date] = emoji
	}

	data, err := json.MarshalIndent(moods, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal moods: %w", err)
	}
	return writeFileAtomic(filepath.Join(dir, moodsFile), data)
}
