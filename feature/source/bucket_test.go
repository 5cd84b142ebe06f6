package source

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"cover-sync/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBucket_Entries(t *testing.T) {
	mockClient := mocks.NewClient(t)
	mockClient.On("GetObject", mock.Anything, "covers", "archive/2024/maimai_songs.json", mock.Anything).
		Return(io.NopCloser(strings.NewReader(sampleCatalog)), nil)

	b := NewBucket(mockClient, "covers", "archive/2024")
	assert.Equal(t, "bucket", b.Name())

	entries, err := b.Entries(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestBucket_Fetch(t *testing.T) {
	mockClient := mocks.NewClient(t)
	mockClient.On("GetObject", mock.Anything, "covers", "archive/a.png", mock.Anything).
		Return(io.NopCloser(strings.NewReader("png-a")), nil)
	mockClient.On("GetObject", mock.Anything, "covers", "archive/missing.png", mock.Anything).
		Return(nil, minio.ErrorResponse{Code: "NoSuchKey"})
	mockClient.On("GetObject", mock.Anything, "covers", "archive/broken.png", mock.Anything).
		Return(nil, errors.New("connection reset"))

	b := NewBucket(mockClient, "covers", "archive")

	data, err := b.Fetch(context.Background(), "a.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("png-a"), data)

	_, err = b.Fetch(context.Background(), "missing.png")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = b.Fetch(context.Background(), "broken.png")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)

	_, err = b.Fetch(context.Background(), "../a.png")
	assert.ErrorIs(t, err, ErrInvalidID)
}
