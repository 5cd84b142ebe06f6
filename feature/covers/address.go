package covers

import (
	"crypto/sha256"
	"encoding/hex"
)

// assetIDLength is the number of hex characters kept from the digest.
const assetIDLength = 8

// InfoKey is the shared basis of the info record key and the asset id.
func InfoKey(category Category, title string) string {
	return category.String() + "_" + title
}

// VariantKey builds "{category}_{title}_{f|t}".
func VariantKey(category Category, title string, deluxe bool) string {
	suffix := "f"
	if deluxe {
		suffix = "t"
	}
	return InfoKey(category, title) + "_" + suffix
}

// AssetID returns the first 8 lowercase hex characters of
// SHA-256("{category}_{title}"). Existing cover files depend on this exact value.
func AssetID(category Category, title string) string {
	sum := sha256.Sum256([]byte(InfoKey(category, title)))
	return hex.EncodeToString(sum[:])[:assetIDLength]
}

// AssetFilename is the on-disk name of a cover.
func AssetFilename(id string) string {
	return id + ".png"
}
