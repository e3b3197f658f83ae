package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

// POST /api/playlists/{playlistId}/songs
//
// songAddHandler appends a track to a caller-owned playlist. The track record
// is created on first use of its Spotify ID and shared thereafter; adding a
// reference that is already present is a conflict.
func (a *API) songAddHandler(w http.ResponseWriter, r *http.Request) {
	claims := a.claimsFrom(w, r)
	if claims == nil {
		return
	}

	var req addSongRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		serveError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.SpotifyID) == "" {
		serveError(w, http.StatusBadRequest, "spotifyId is required")
		return
	}

	playlistID := mux.Vars(r)["playlistId"]
	playlist, err := a.playlists.GetForUser(playlistID, claims.UserID)
	if err != nil {
		a.serveStoreError(w, err, "songs: playlist lookup failed")
		return
	}

	track, err := a.tracks.Ensure(req.SpotifyID, req.Title, req.Artist, req.Album, req.AlbumArt)
	if err != nil {
		a.serveStoreError(w, err, "songs: ensure track failed")
		return
	}

	if err := a.playlists.AddTrack(playlist.ID(), track.ID()); err != nil {
		a.serveStoreError(w, err, "songs: add failed")
		return
	}

	playlist, err = a.playlists.GetForUser(playlistID, claims.UserID)
	if err != nil {
		a.serveStoreError(w, err, "songs: reload failed")
		return
	}

	serveJSON(w, http.StatusOK, makePlaylistResponse(playlist))
}

// DELETE /api/playlists/{playlistId}/songs/{songId}
//
// songRemoveHandler filters a track reference out of a caller-owned playlist.
// Removing an absent reference succeeds and leaves the list unchanged.
func (a *API) songRemoveHandler(w http.ResponseWriter, r *http.Request) {
	claims := a.claimsFrom(w, r)
	if claims == nil {
		return
	}

	vars := mux.Vars(r)
	playlistID := vars["playlistId"]

	playlist, err := a.playlists.GetForUser(playlistID, claims.UserID)
	if err != nil {
		a.serveStoreError(w, err, "songs: playlist lookup failed")
		return
	}

	if err := a.playlists.RemoveTrack(playlist.ID(), vars["songId"]); err != nil {
		a.serveStoreError(w, err, "songs: remove failed")
		return
	}

	playlist, err = a.playlists.GetForUser(playlistID, claims.UserID)
	if err != nil {
		a.serveStoreError(w, err, "songs: reload failed")
		return
	}

	serveJSON(w, http.StatusOK, makePlaylistResponse(playlist))
}
