package journal

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/SidddhantJain/QuietQuill/internal/common"
	"github.com/SidddhantJain/QuietQuill/internal/keyring"
	"github.com/SidddhantJain/QuietQuill/internal/logging"
	"github.com/google/uuid"
)

// Draft carries the caller-supplied attributes of an entry being saved.
// A zero Filename means a new entry; a zero StartTime means "this session
// started now" for new entries and "preserve the original" for re-saves.
type Draft struct {
	Filename  string
	Title     string
	Tags      []string
	Category  Category
	Pinned    bool
	StartTime time.Time
	HasImage  bool
}

// Repository discovers, organizes and mutates one user's entries under
// <root>/<username>/<YYYY>/<MM>/. The in-memory index returned by List is
// rebuilt from disk on every call; any create/update/delete invalidates it.
//
// There is no locking: two concurrent writers to the same entry race and the
// last writer wins. A single application instance per user is assumed.
type Repository struct {
	root  string
	store *MetadataStore
	log   logging.Logger
	now   func() time.Time
}

func NewRepository(root string, store *MetadataStore, log logging.Logger) *Repository {
	return &Repository{root: root, store: store, log: log, now: time.Now}
}

func (r *Repository) userDir(username string) string {
	return filepath.Join(r.root, username)
}

// List walks the user's directory tree and returns the entry index, ordered
// pinned-first then alphabetically by title (case-insensitive, ties broken
// by filename). A missing or unparseable sidecar degrades that one entry to
// filename fallback metadata; it never aborts the walk.
func (r *Repository) List(ctx context.Context, username string) ([]Entry, error) {
	dir := r.userDir(username)

	index := []Entry{}
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir && errors.Is(err, fs.ErrNotExist) {
				return filepath.SkipAll
			}
			r.log.Warn(ctx, "skipping unreadable path", "path", path, "err", err)
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), EncExt) {
			return nil
		}
		index = append(index, r.readEntry(ctx, username, path))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}

	sortIndex(index)
	return index, nil
}

func (r *Repository) readEntry(ctx context.Context, username, encPath string) Entry {
	filename := filepath.Base(encPath)

	md, err := r.store.Read(MetaPathFor(encPath))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			r.log.Warn(ctx, "sidecar unreadable, using filename fallback", "file", filename, "err", err)
		}
		return Entry{Metadata: *FallbackMetadata(username, filename), Path: encPath, Fallback: true}
	}

	// Trust the on-disk location over possibly stale sidecar fields.
	md.Username = username
	md.Filename = filename
	return Entry{Metadata: *md, Path: encPath}
}

// FindPath locates the folder-nested ciphertext file by name under the
// user's root. Returns common.ErrNotFound when no file matches.
func (r *Repository) FindPath(ctx context.Context, username, filename string) (string, error) {
	dir := r.userDir(username)

	var found string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir && errors.Is(err, fs.ErrNotExist) {
				return filepath.SkipAll
			}
			return nil
		}
		if !d.IsDir() && d.Name() == filename {
			found = path
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("walking %s: %w", dir, err)
	}
	if found == "" {
		return "", fmt.Errorf("file %q: %w", filename, common.ErrNotFound)
	}
	return found, nil
}

// Save encrypts content under key and writes the ciphertext plus its sidecar.
//
// A new entry (empty d.Filename) requires a non-empty title; its filename is
// "<UTC-timestamp>_<title-with-underscores>.enc" and it is placed under the
// year/month directory of the session start time, not the save time.
// An existing entry is overwritten in place, keeping the original start_time
// and title from its sidecar when the draft leaves them unset.
func (r *Repository) Save(ctx context.Context, username string, content []byte, d Draft, key keyring.Key) (*Entry, error) {
	now := r.now()
	start := d.StartTime

	var encPath string
	if d.Filename == "" {
		title := strings.TrimSpace(d.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: entry title is required", common.ErrValidation)
		}
		if start.IsZero() {
			start = now
		}
		d.Filename = now.UTC().Format(fileStampLayout) + "_" + strings.ReplaceAll(title, " ", "_") + EncExt
		d.Title = title

		dir := filepath.Join(r.userDir(username), start.Format("2006"), start.Format("01"))
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("creating %s: %w", dir, err)
		}
		encPath = filepath.Join(dir, d.Filename)
	} else {
		path, err := r.FindPath(ctx, username, d.Filename)
		if err != nil {
			return nil, err
		}
		encPath = path

		old, oldErr := r.store.Read(MetaPathFor(encPath))
		if d.Title == "" {
			if oldErr == nil && old.Title != "" {
				d.Title = old.Title
			} else {
				d.Title = strings.TrimSuffix(d.Filename, EncExt)
			}
		}
		if start.IsZero() {
			start = now
			if oldErr == nil {
				if t, perr := time.ParseInLocation(timeLayout, old.StartTime, time.Local); perr == nil {
					start = t
				}
			}
		}
	}

	ciphertext, err := keyring.Encrypt(content, key)
	if err != nil {
		return nil, fmt.Errorf("encrypting entry: %w", err)
	}
	if err := writeFileAtomic(encPath, ciphertext); err != nil {
		return nil, err
	}

	if d.Category == "" {
		d.Category = CategoryJournal
	}
	if d.Tags == nil {
		d.Tags = []string{}
	}

	md := &Metadata{
		Username:  username,
		Filename:  d.Filename,
		Title:     d.Title,
		StartTime: start.Format(timeLayout),
		EndTime:   now.Format(timeLayout),
		Tags:      d.Tags,
		Category:  d.Category,
		Pinned:    d.Pinned,
		WordCount: wordCount(content),
		Date:      start.Format(dateLayout),
		HasImage:  d.HasImage || strings.Contains(string(content), "<img"),
		Preview:   previewOf(content),
	}
	if err := r.store.Write(MetaPathFor(encPath), md); err != nil {
		return nil, err
	}

	r.log.Info(ctx, "entry saved", "user", username, "file", d.Filename)
	return &Entry{Metadata: *md, Path: encPath}, nil
}

// Load finds and decrypts an entry. Cryptographic failures propagate
// untouched so callers can distinguish a tampered file from a missing one.
func (r *Repository) Load(ctx context.Context, username, filename string, key keyring.Key) ([]byte, error) {
	path, err := r.FindPath(ctx, username, filename)
	if err != nil {
		return nil, err
	}
	ciphertext, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return keyring.Decrypt(ciphertext, key)
}

// Delete removes the ciphertext file and, if present, its sidecar. A missing
// sidecar is not an error; a missing ciphertext is common.ErrNotFound.
func (r *Repository) Delete(ctx context.Context, username, filename string) error {
	path, err := r.FindPath(ctx, username, filename)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("removing %s: %w", path, err)
	}
	if err := os.Remove(MetaPathFor(path)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing sidecar: %w", err)
	}
	r.log.Info(ctx, "entry deleted", "user", username, "file", filename)
	return nil
}

// TogglePin flips the pinned flag in the sidecar only; the ciphertext is not
// touched. Returns the new pin state. An entry without a usable sidecar gets
// a fresh fallback sidecar with pinned set.
func (r *Repository) TogglePin(ctx context.Context, username, filename string) (bool, error) {
	path, err := r.FindPath(ctx, username, filename)
	if err != nil {
		return false, err
	}

	metaPath := MetaPathFor(path)
	md, err := r.store.Read(metaPath)
	if err != nil {
		md = FallbackMetadata(username, filename)
	}
	md.Pinned = !md.Pinned

	if err := r.store.Write(metaPath, md); err != nil {
		return false, err
	}
	return md.Pinned, nil
}

// Rekey decrypts every entry under the user's root with oldKey and rewrites
// it encrypted under newKey. It stops at the first failure, leaving already
// re-encrypted files under the new key; callers must not persist the new
// credentials unless Rekey returns nil.
func (r *Repository) Rekey(ctx context.Context, username string, oldKey, newKey keyring.Key) error {
	index, err := r.List(ctx, username)
	if err != nil {
		return err
	}

	for _, e := range index {
		ciphertext, err := os.ReadFile(e.Path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", e.Path, err)
		}
		plaintext, err := keyring.Decrypt(ciphertext, oldKey)
		if err != nil {
			return fmt.Errorf("decrypting %s: %w", e.Filename, err)
		}
		reencrypted, err := keyring.Encrypt(plaintext, newKey)
		common.WipeByteArray(plaintext)
		if err != nil {
			return fmt.Errorf("re-encrypting %s: %w", e.Filename, err)
		}
		if err := writeFileAtomic(e.Path, reencrypted); err != nil {
			return err
		}
	}

	r.log.Info(ctx, "entries re-encrypted", "user", username, "count", len(index))
	return nil
}

// TagSuggestions returns the sorted distinct tags across the user's sidecars.
func (r *Repository) TagSuggestions(ctx context.Context, username string) ([]string, error) {
	index, err := r.List(ctx, username)
	if err != nil {
		return nil, err
	}

	seen := map[string]struct{}{}
	for _, e := range index {
		for _, tag := range e.Tags {
			seen[tag] = struct{}{}
		}
	}

	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags, nil
}

// DatesWithEntries returns the sorted distinct dates (YYYY-MM-DD) that have
// at least one entry, for calendar marking.
func (r *Repository) DatesWithEntries(ctx context.Context, username string) ([]string, error) {
	index, err := r.List(ctx, username)
	if err != nil {
		return nil, err
	}

	seen := map[string]struct{}{}
	for _, e := range index {
		if e.Date != "" {
			seen[e.Date] = struct{}{}
		}
	}

	dates := make([]string, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates, nil
}

// writeFileAtomic writes data to a temp file in the destination directory
// and renames it into place, so readers and the index never observe a
// partially written file.
func writeFileAtomic(path string, data []byte) error {
	tmp := filepath.Join(filepath.Dir(path), "."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write temp: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

func wordCount(content []byte) int {
	return len(strings.Fields(stripMarkup(string(content))))
}

// previewOf keeps a short plaintext excerpt in the sidecar so keyword search
// never has to touch ciphertext.
func previewOf(content []byte) string {
	text := strings.Join(strings.Fields(stripMarkup(string(content))), " ")
	const max = 160
	runes := []rune(text)
	if len(runes) > max {
		return string(runes[:max])
	}
	return text
}

// stripMarkup drops anything inside angle brackets; entry content may carry
// rich-text HTML markup.
func stripMarkup(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
			b.WriteRune(' ')
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}
