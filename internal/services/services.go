// package services defines interface Catalog for external music catalog lookups
package services

import (
	"context"
)

// Catalog defines the interface for external catalog providers that can
// answer free-text track searches with normalized results.
type Catalog interface {
	// SearchTracks issues a free-text search and returns normalized results.
	// Returns an empty slice when the query yields nothing.
	SearchTracks(ctx context.Context, query string, limit int) ([]SearchResult, error)

	// Name returns the name of the provider (e.g., "Spotify")
	Name() string
}

// SearchResult is one normalized catalog entry: the Track shape plus display
// extras (duration, preview link) that are not persisted anywhere.
type SearchResult struct {
	ID         string `json:"id"`
	SpotifyID  string `json:"spotifyId"`
	Title      string `json:"title"`
	Artist     string `json:"artist"` // all artist names joined ", "
	Album      string `json:"album"`
	AlbumArt   string `json:"albumArt"`
	Duration   int    `json:"duration"` // milliseconds
	PreviewURL string `json:"previewUrl,omitempty"`
}
