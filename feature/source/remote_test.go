package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"cover-sync/core/httpclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRemoteServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/data/maimai_songs.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleCatalog))
	})
	mux.HandleFunc("/img/Music/a.png", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("png-a"))
	})
	mux.HandleFunc("/img/Music/forbidden.png", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestRemote(srv *httptest.Server) *Remote {
	client := httpclient.New(httpclient.Config{TimeoutSeconds: 5})
	return NewRemote(client, Config{
		CatalogURL:   srv.URL + "/data/maimai_songs.json",
		ImageBaseURL: srv.URL + "/img/Music",
	})
}

func TestRemote_Entries(t *testing.T) {
	r := newTestRemote(newRemoteServer(t))
	assert.Equal(t, "remote", r.Name())

	entries, err := r.Entries(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestRemote_CatalogStatus(t *testing.T) {
	srv := newRemoteServer(t)
	client := httpclient.New(httpclient.Config{TimeoutSeconds: 5})
	r := NewRemote(client, Config{CatalogURL: srv.URL + "/missing.json"})

	_, err := r.Entries(context.Background())
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}

func TestRemote_Fetch(t *testing.T) {
	r := newTestRemote(newRemoteServer(t))

	t.Run("OK", func(t *testing.T) {
		data, err := r.Fetch(context.Background(), "a.png")
		require.NoError(t, err)
		assert.Equal(t, []byte("png-a"), data)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := r.Fetch(context.Background(), "nope.png")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Forbidden", func(t *testing.T) {
		_, err := r.Fetch(context.Background(), "forbidden.png")
		var statusErr *StatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, http.StatusForbidden, statusErr.StatusCode)
	})

	t.Run("InvalidID", func(t *testing.T) {
		_, err := r.Fetch(context.Background(), "../a.png")
		assert.ErrorIs(t, err, ErrInvalidID)
	})
}

func TestRemote_ImageURL(t *testing.T) {
	r := NewRemote(nil, Config{ImageBaseURL: "https://example.test/img"})
	assert.Equal(t, "https://example.test/img/a%20b.png", r.ImageURL("a b.png"))
}
