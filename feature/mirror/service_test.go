package mirror

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"cover-sync/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupDirs(t *testing.T, covers ...string) Options {
	t.Helper()
	dir := t.TempDir()
	coverDir := filepath.Join(dir, "covers")
	require.NoError(t, os.Mkdir(coverDir, 0o755))
	for _, name := range covers {
		require.NoError(t, os.WriteFile(filepath.Join(coverDir, name), []byte("png "+name), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(coverDir, "notes.txt"), []byte("ignored"), 0o644))
	infoPath := filepath.Join(dir, "info.json")
	require.NoError(t, os.WriteFile(infoPath, []byte(`{}`), 0o644))

	return Options{CoverDir: coverDir, InfoPath: infoPath, Bucket: "test-bucket", Prefix: "dx"}
}

func TestService_Run(t *testing.T) {
	opts := setupDirs(t, "aaaaaaaa.png", "bbbbbbbb.png")
	mockClient := mocks.NewClient(t)
	mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(true, nil)
	mockClient.On("ListObjects", mock.Anything, "test-bucket", minio.ListObjectsOptions{Prefix: "dx/covers/", Recursive: true}).
		Return(mocks.Listing("dx/covers/bbbbbbbb.png", "dx/covers/cccccccc.png"))
	mockClient.On("PutObject", mock.Anything, "test-bucket", "dx/covers/aaaaaaaa.png", mock.Anything, int64(len("png aaaaaaaa.png")), mock.Anything).
		Return(minio.UploadInfo{}, nil).Once()
	mockClient.On("PutObject", mock.Anything, "test-bucket", "dx/info.json", mock.Anything, int64(2), mock.Anything).
		Return(minio.UploadInfo{}, nil).Once()

	svc := NewService(mockClient, opts, zap.NewNop())
	result, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Uploaded)
	assert.True(t, result.InfoUploaded)
	assert.Equal(t, []string{"cccccccc.png"}, result.StorageOnly)
	assert.Equal(t, 3, result.Plan.Summary.TotalItems)
	assert.Equal(t, 1, result.Plan.Summary.MissingLocal)
	mockClient.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_DryRun(t *testing.T) {
	opts := setupDirs(t, "aaaaaaaa.png")
	opts.DryRun = true
	mockClient := mocks.NewClient(t)
	mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(false, nil)
	mockClient.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return(mocks.Listing())

	result, err := NewService(mockClient, opts, zap.NewNop()).Run(context.Background())
	require.NoError(t, err)

	assert.Zero(t, result.Uploaded)
	assert.False(t, result.InfoUploaded)
	assert.Equal(t, 1, result.Plan.Summary.UploadActions)
	mockClient.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	mockClient.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_CreatesBucket(t *testing.T) {
	opts := setupDirs(t)
	mockClient := mocks.NewClient(t)
	mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(false, nil)
	mockClient.On("MakeBucket", mock.Anything, "test-bucket", mock.Anything).Return(nil)
	mockClient.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return(mocks.Listing())
	mockClient.On("PutObject", mock.Anything, "test-bucket", "dx/info.json", mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)

	_, err := NewService(mockClient, opts, zap.NewNop()).Run(context.Background())
	require.NoError(t, err)
}

func TestService_Errors(t *testing.T) {
	t.Run("BucketCheck", func(t *testing.T) {
		mockClient := mocks.NewClient(t)
		mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(false, errors.New("denied"))

		_, err := NewService(mockClient, setupDirs(t), zap.NewNop()).Run(context.Background())
		assert.ErrorContains(t, err, "denied")
	})

	t.Run("Listing", func(t *testing.T) {
		mockClient := mocks.NewClient(t)
		mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(true, nil)
		ch := make(chan minio.ObjectInfo, 1)
		ch <- minio.ObjectInfo{Err: errors.New("list failed")}
		close(ch)
		mockClient.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))

		_, err := NewService(mockClient, setupDirs(t), zap.NewNop()).Run(context.Background())
		assert.ErrorContains(t, err, "list failed")
	})

	t.Run("Upload", func(t *testing.T) {
		mockClient := mocks.NewClient(t)
		mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(true, nil)
		mockClient.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return(mocks.Listing())
		mockClient.On("PutObject", mock.Anything, "test-bucket", "dx/covers/aaaaaaaa.png", mock.Anything, mock.Anything, mock.Anything).
			Return(minio.UploadInfo{}, errors.New("quota"))

		result, err := NewService(mockClient, setupDirs(t, "aaaaaaaa.png"), zap.NewNop()).Run(context.Background())
		assert.ErrorContains(t, err, "quota")
		assert.False(t, result.InfoUploaded)
	})
}

func TestService_Keys(t *testing.T) {
	svc := NewService(nil, Options{Prefix: "/dx/"}, zap.NewNop())
	assert.Equal(t, "dx/covers/a.png", svc.CoverKey("a.png"))
	assert.Equal(t, "dx/info.json", svc.InfoKey())

	svc = NewService(nil, Options{}, zap.NewNop())
	assert.Equal(t, "covers/a.png", svc.CoverKey("a.png"))
	assert.Equal(t, "info.json", svc.InfoKey())
}
