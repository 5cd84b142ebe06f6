package covers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssetID_KnownValues(t *testing.T) {
	tests := []struct {
		category Category
		title    string
		want     string
	}{
		{CategoryMaimai, "SongA", "3fab3b62"},
		{CategoryPopsAnime, "SongA", "70a4dc71"},
		{CategoryTouhou, "Bad Apple!! feat nomico", "90e12ff3"},
		{CategoryNiconico, "SongB", "38970156"},
		{CategoryMaimai, "SongB", "cbdf117e"},
		{CategoryMaimai, "SongC", "a24112f5"},
	}

	for _, tt := range tests {
		t.Run(InfoKey(tt.category, tt.title), func(t *testing.T) {
			assert.Equal(t, tt.want, AssetID(tt.category, tt.title))
		})
	}
}

func TestAssetID_Deterministic(t *testing.T) {
	id := AssetID(CategoryGameVariety, "曲名 / with slash")
	assert.Equal(t, id, AssetID(CategoryGameVariety, "曲名 / with slash"))
	assert.Len(t, id, 8)
	assert.Regexp(t, `^[0-9a-f]{8}$`, id)
	assert.NotEqual(t, id, AssetID(CategoryPopsAnime, "曲名 / with slash"))
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "5_SongA", InfoKey(CategoryMaimai, "SongA"))
	assert.Equal(t, "5_SongA_f", VariantKey(CategoryMaimai, "SongA", false))
	assert.Equal(t, "5_SongA_t", VariantKey(CategoryMaimai, "SongA", true))
	assert.Equal(t, "3fab3b62.png", AssetFilename("3fab3b62"))
}
