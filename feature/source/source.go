package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"
)

// CatalogFile is the catalog file name inside a local or bucket archive.
const CatalogFile = "maimai_songs.json"

var (
	// ErrNotFound is returned by a Transport when the source image does not exist.
	ErrNotFound = errors.New("source image not found")
	// ErrInvalidID is returned for image ids that are empty or would escape the archive root.
	ErrInvalidID = errors.New("invalid image id")
)

// StatusError reports a non-success HTTP status for a fetch.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.StatusCode)
}

// Entry is one catalog song as seen by the sync pipeline.
type Entry struct {
	Artist       string
	CategoryCode string
	ImageID      string
	HasStandard  bool
	HasDeluxe    bool
	Title        string
	TitleKana    string
}

// Provider returns the ordered catalog entries.
type Provider interface {
	Name() string
	Entries(ctx context.Context) ([]Entry, error)
}

// Transport returns the bytes of a source image.
type Transport interface {
	Name() string
	Fetch(ctx context.Context, imageID string) ([]byte, error)
}

// songEntry mirrors the catalog JSON. Unknown fields are ignored.
type songEntry struct {
	Artist    string  `json:"artist"`
	CatCode   string  `json:"catcode"`
	ImageURL  string  `json:"image_url"`
	LevMas    *string `json:"lev_mas"`
	DxLevMas  *string `json:"dx_lev_mas"`
	Title     string  `json:"title"`
	TitleKana string  `json:"title_kana"`
}

// DecodeCatalog parses catalog JSON into entries, keeping source order.
func DecodeCatalog(data []byte) ([]Entry, error) {
	var raw []songEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	entries := make([]Entry, 0, len(raw))
	for _, s := range raw {
		entries = append(entries, Entry{
			Artist:       s.Artist,
			CategoryCode: s.CatCode,
			ImageID:      s.ImageURL,
			HasStandard:  s.LevMas != nil,
			HasDeluxe:    s.DxLevMas != nil,
			Title:        s.Title,
			TitleKana:    s.TitleKana,
		})
	}
	return entries, nil
}

// ValidateImageID rejects ids that are empty or contain path separators or dot segments.
func ValidateImageID(id string) error {
	if id == "" || id == "." || id == ".." ||
		strings.ContainsAny(id, `/\`) || path.Clean(id) != id {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}
