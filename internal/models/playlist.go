package models

import (
	"fmt"

	"github.com/mixtapehq/mixtape/internal/shared"
)

// Playlist is a user-owned, insertion-ordered, duplicate-free collection of
// track references. The owner never changes after creation; name and
// description may be updated by the owner.
type Playlist struct {
	record
	userID      string
	name        string
	description string
	tracks      []*Track
}

// NewPlaylist creates a Playlist owned by userID with an empty track list.
func NewPlaylist(sequence int, userID, name, description string) *Playlist {
	return &Playlist{
		record:      newRecord(sequence),
		userID:      userID,
		name:        name,
		description: description,
		tracks:      []*Track{},
	}
}

func (p *Playlist) UserID() string      { return p.userID }
func (p *Playlist) Name() string        { return p.name }
func (p *Playlist) Description() string { return p.description }

// Tracks returns the resolved track records in insertion order.
// Empty until populated by the repository.
func (p *Playlist) Tracks() []*Track { return p.tracks }

// SetTracks replaces the resolved track list.
func (p *Playlist) SetTracks(tracks []*Track) {
	if tracks == nil {
		tracks = []*Track{}
	}
	p.tracks = tracks
}

// Rename replaces the mutable fields. Ownership is not touched.
func (p *Playlist) Rename(name, description string) {
	p.name = name
	p.description = description
}

// Validate checks that the playlist has an owner and a non-empty name.
func (p *Playlist) Validate() error {
	if p.userID == "" {
		return fmt.Errorf("%w: owner is required", shared.ErrInvalidInput)
	}
	if p.name == "" {
		return fmt.Errorf("%w: name is required", shared.ErrInvalidInput)
	}
	return nil
}
