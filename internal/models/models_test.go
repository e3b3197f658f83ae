package models

import (
	"errors"
	"testing"

	"github.com/mixtapehq/mixtape/internal/shared"
)

func TestUserValidate(t *testing.T) {
	tc := []struct {
		name     string
		username string
		email    string
		hash     string
		wantErr  bool
	}{
		{name: "valid", username: "alice", email: "alice@x.com", hash: "hash"},
		{name: "short username", username: "al", email: "alice@x.com", hash: "hash", wantErr: true},
		{name: "missing email", username: "alice", email: "", hash: "hash", wantErr: true},
		{name: "malformed email", username: "alice", email: "alicex.com", hash: "hash", wantErr: true},
		{name: "missing hash", username: "alice", email: "alice@x.com", hash: "", wantErr: true},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			user := NewUser(0, tt.username, tt.email, tt.hash)
			err := user.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, shared.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestUserNormalizesEmail(t *testing.T) {
	user := NewUser(0, "alice", "  Alice@X.Com ", "hash")
	if user.Email() != "alice@x.com" {
		t.Errorf("expected lowercased trimmed email, got %q", user.Email())
	}
}

func TestTrackValidate(t *testing.T) {
	track := NewTrack(0, "spotify123", "Imagine", "John Lennon", "Imagine", "")
	if err := track.Validate(); err != nil {
		t.Errorf("expected valid track, got %v", err)
	}

	missing := NewTrack(0, "", "Imagine", "John Lennon", "Imagine", "")
	if err := missing.Validate(); err == nil {
		t.Error("expected error for missing spotify id")
	}
}

func TestPlaylistValidate(t *testing.T) {
	playlist := NewPlaylist(0, "user-1", "Road Trip", "")
	if err := playlist.Validate(); err != nil {
		t.Errorf("expected valid playlist, got %v", err)
	}

	if len(playlist.Tracks()) != 0 {
		t.Error("new playlist should have an empty track list")
	}

	unnamed := NewPlaylist(0, "user-1", "", "")
	if err := unnamed.Validate(); err == nil {
		t.Error("expected error for empty name")
	}

	orphan := NewPlaylist(0, "", "Road Trip", "")
	if err := orphan.Validate(); err == nil {
		t.Error("expected error for missing owner")
	}
}

func TestPlaylistRename(t *testing.T) {
	playlist := NewPlaylist(0, "user-1", "Road Trip", "old")
	playlist.Rename("Commute", "new")

	if playlist.Name() != "Commute" || playlist.Description() != "new" {
		t.Errorf("Rename() = %q/%q", playlist.Name(), playlist.Description())
	}
	if playlist.UserID() != "user-1" {
		t.Error("Rename must not touch ownership")
	}
}
