package server

import (
	"time"

	"github.com/mixtapehq/mixtape/internal/models"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type authResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    userResponse `json:"user"`
}

type playlistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type addSongRequest struct {
	SpotifyID string `json:"spotifyId"`
	Title     string `json:"title"`
	Artist    string `json:"artist"`
	Album     string `json:"album"`
	AlbumArt  string `json:"albumArt"`
}

type trackResponse struct {
	ID        string `json:"id"`
	SpotifyID string `json:"spotifyId"`
	Title     string `json:"title"`
	Artist    string `json:"artist"`
	Album     string `json:"album"`
	AlbumArt  string `json:"albumArt"`
}

type playlistResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	User        string          `json:"user"`
	Songs       []trackResponse `json:"songs"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// makeUserResponse maps a user model to its API shape.
func makeUserResponse(user *models.User) userResponse {
	return userResponse{
		ID:       user.ID(),
		Username: user.Username(),
		Email:    user.Email(),
	}
}

// makeTrackResponse maps a track model to its API shape.
func makeTrackResponse(track *models.Track) trackResponse {
	return trackResponse{
		ID:        track.ID(),
		SpotifyID: track.SpotifyID(),
		Title:     track.Title(),
		Artist:    track.Artist(),
		Album:     track.Album(),
		AlbumArt:  track.AlbumArt(),
	}
}

// makePlaylistResponse maps a playlist model, tracks resolved, to its API shape.
func makePlaylistResponse(playlist *models.Playlist) playlistResponse {
	songs := []trackResponse{}
	for _, track := range playlist.Tracks() {
		songs = append(songs, makeTrackResponse(track))
	}

	return playlistResponse{
		ID:          playlist.ID(),
		Name:        playlist.Name(),
		Description: playlist.Description(),
		User:        playlist.UserID(),
		Songs:       songs,
		CreatedAt:   playlist.CreatedAt(),
		UpdatedAt:   playlist.UpdatedAt(),
	}
}
