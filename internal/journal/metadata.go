// Package journal implements the per-user encrypted entry storage engine:
// the on-disk layout of ciphertext files and their JSON metadata sidecars,
// the repository that discovers and organizes them, and in-memory search
// over the resulting index.
package journal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/SidddhantJain/QuietQuill/internal/common"
	"github.com/google/uuid"
)

const (
	// EncExt is the ciphertext file extension.
	EncExt = ".enc"
	// MetaSuffix replaces EncExt to form the sidecar name, so ciphertext and
	// sidecar always share a stem in the same directory.
	MetaSuffix = ".meta.json"

	timeLayout      = "2006-01-02 15:04:05"
	dateLayout      = "2006-01-02"
	fileStampLayout = "2006-01-02_150405"
)

// Metadata is the sidecar document stored next to each ciphertext file.
// Field names and formats are part of the on-disk contract.
type Metadata struct {
	Username  string   `json:"username"`
	Filename  string   `json:"filename"`
	Title     string   `json:"title"`
	StartTime string   `json:"start_time"`
	EndTime   string   `json:"end_time"`
	Tags      []string `json:"tags"`
	Category  Category `json:"category"`
	Pinned    bool     `json:"pinned,omitempty"`
	WordCount int      `json:"word_count,omitempty"`
	Date      string   `json:"date,omitempty"`
	HasImage  bool     `json:"has_image,omitempty"`
	Preview   string   `json:"preview,omitempty"`
}

// MetaPathFor maps a ciphertext path to its sidecar path.
func MetaPathFor(encPath string) string {
	return strings.TrimSuffix(encPath, EncExt) + MetaSuffix
}

// FallbackMetadata synthesizes metadata from a ciphertext filename when the
// sidecar is missing or unreadable: title is the filename minus extension,
// no tags, not pinned.
func FallbackMetadata(username, filename string) *Metadata {
	return &Metadata{
		Username: username,
		Filename: filename,
		Title:    strings.TrimSuffix(filename, EncExt),
		Tags:     []string{},
		Category: CategoryOther,
	}
}

// MetadataStore reads and writes sidecar files.
type MetadataStore struct{}

func NewMetadataStore() *MetadataStore { return &MetadataStore{} }

// Read parses the sidecar at path. A file that exists but does not parse
// yields common.ErrCorruptMetadata so callers can degrade to fallback
// metadata; a missing file surfaces as an fs.ErrNotExist-wrapping error.
func (s *MetadataStore) Read(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sidecar: %w", err)
	}

	var md Metadata
	if err := json.Unmarshal(data, &md); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", common.ErrCorruptMetadata, filepath.Base(path), err)
	}
	if md.Tags == nil {
		md.Tags = []string{}
	}
	return &md, nil
}

// Write atomically replaces the sidecar at path: the JSON is written to a
// temporary file in the same directory and renamed over the destination, so
// a crash leaves either the old sidecar or the new one, never a truncation.
func (s *MetadataStore) Write(path string, md *Metadata) error {
	data, err := json.MarshalIndent(md, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal sidecar: %w", err)
	}

	tmp := filepath.Join(filepath.Dir(path), "."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write sidecar temp: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename sidecar: %w", err)
	}
	return nil
}
