package source

import "time"

// Config holds the live catalog endpoints and download pacing.
type Config struct {
	// CatalogURL is the live catalog JSON.
	CatalogURL string `mapstructure:"catalog_url" default:"https://maimai.sega.jp/data/maimai_songs.json"`
	// ImageBaseURL is joined with an entry's image id to download its cover.
	ImageBaseURL string `mapstructure:"image_base_url" default:"https://maimaidx.jp/maimai-mobile/img/Music/"`
	// FetchDelay is the minimum pause between two network image downloads.
	FetchDelay time.Duration `mapstructure:"fetch_delay" default:"125ms"`
}
