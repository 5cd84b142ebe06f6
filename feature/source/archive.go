package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Archive reads a pre-downloaded snapshot folder: the catalog JSON plus sibling image files.
type Archive struct {
	dir string
}

// NewArchive creates an archive source rooted at dir.
func NewArchive(dir string) *Archive {
	return &Archive{dir: dir}
}

// Name returns the source name.
func (a *Archive) Name() string {
	return "archive"
}

// Dir returns the archive root.
func (a *Archive) Dir() string {
	return a.dir
}

// Entries reads and decodes <dir>/maimai_songs.json.
func (a *Archive) Entries(ctx context.Context) ([]Entry, error) {
	data, err := os.ReadFile(filepath.Join(a.dir, CatalogFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read archive catalog: %w", err)
	}
	return DecodeCatalog(data)
}

// Fetch reads <dir>/<imageID>. A missing file yields ErrNotFound.
func (a *Archive) Fetch(ctx context.Context, imageID string) ([]byte, error) {
	if err := ValidateImageID(imageID); err != nil {
		return nil, err
	}
	p := filepath.Join(a.dir, imageID)
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, p)
		}
		return nil, fmt.Errorf("failed to read %s: %w", p, err)
	}
	return data, nil
}
