// Package snapshot downloads the live catalog and its cover images into a
// local folder that can later be used with `sync --cover-archive`.
package snapshot
