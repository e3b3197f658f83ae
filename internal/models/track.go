package models

import (
	"fmt"

	"github.com/mixtapehq/mixtape/internal/shared"
)

// Track is a normalized, immutable catalog entry keyed by its Spotify ID.
// One record exists per external identifier; playlists reference tracks by
// internal ID. Tracks are created lazily the first time an identifier is
// added to any playlist and are never updated or deleted.
type Track struct {
	record
	spotifyID string
	title     string
	artist    string
	album     string
	albumArt  string
}

// NewTrack creates a Track with the given sequence and display metadata.
// The artist field holds all artist names joined as a single display string.
func NewTrack(sequence int, spotifyID, title, artist, album, albumArt string) *Track {
	return &Track{
		record:    newRecord(sequence),
		spotifyID: spotifyID,
		title:     title,
		artist:    artist,
		album:     album,
		albumArt:  albumArt,
	}
}

func (t *Track) SpotifyID() string { return t.spotifyID }
func (t *Track) Title() string     { return t.title }
func (t *Track) Artist() string    { return t.artist }
func (t *Track) Album() string     { return t.album }
func (t *Track) AlbumArt() string  { return t.albumArt }

// Validate checks that the required metadata fields are present.
func (t *Track) Validate() error {
	if t.spotifyID == "" {
		return fmt.Errorf("%w: spotify id is required", shared.ErrInvalidInput)
	}
	if t.title == "" {
		return fmt.Errorf("%w: title is required", shared.ErrInvalidInput)
	}
	if t.artist == "" {
		return fmt.Errorf("%w: artist is required", shared.ErrInvalidInput)
	}
	if t.album == "" {
		return fmt.Errorf("%w: album is required", shared.ErrInvalidInput)
	}
	return nil
}
