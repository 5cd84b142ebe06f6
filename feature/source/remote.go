package source

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"cover-sync/core/httpclient"
)

// Remote fetches the live catalog and cover images over HTTP.
type Remote struct {
	client       *httpclient.Client
	catalogURL   string
	imageBaseURL string
}

// NewRemote creates a remote source.
func NewRemote(client *httpclient.Client, cfg Config) *Remote {
	base := cfg.ImageBaseURL
	if base != "" && !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return &Remote{
		client:       client,
		catalogURL:   cfg.CatalogURL,
		imageBaseURL: base,
	}
}

// Name returns the source name.
func (r *Remote) Name() string {
	return "remote"
}

// CatalogJSON downloads the raw catalog bytes.
func (r *Remote) CatalogJSON(ctx context.Context) ([]byte, error) {
	resp, err := r.client.Get(ctx, r.catalogURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	if !resp.OK() {
		return nil, fmt.Errorf("failed to fetch catalog: %w", &StatusError{URL: r.catalogURL, StatusCode: resp.StatusCode})
	}
	return resp.Body, nil
}

// Entries downloads and decodes the live catalog.
func (r *Remote) Entries(ctx context.Context) ([]Entry, error) {
	data, err := r.CatalogJSON(ctx)
	if err != nil {
		return nil, err
	}
	return DecodeCatalog(data)
}

// Fetch downloads one cover image. 404 maps to ErrNotFound, other non-2xx to *StatusError.
func (r *Remote) Fetch(ctx context.Context, imageID string) ([]byte, error) {
	if err := ValidateImageID(imageID); err != nil {
		return nil, err
	}
	u := r.ImageURL(imageID)
	resp, err := r.client.Get(ctx, u)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, u)
	}
	if !resp.OK() {
		return nil, &StatusError{URL: u, StatusCode: resp.StatusCode}
	}
	return resp.Body, nil
}

// ImageURL returns the download URL for an image id.
func (r *Remote) ImageURL(imageID string) string {
	return r.imageBaseURL + url.PathEscape(imageID)
}
