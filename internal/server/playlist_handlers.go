package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mixtapehq/mixtape/internal/models"
)

// GET /api/playlists
//
// playlistListHandler returns all playlists owned by the caller, newest first,
// with track lists resolved.
func (a *API) playlistListHandler(w http.ResponseWriter, r *http.Request) {
	claims := a.claimsFrom(w, r)
	if claims == nil {
		return
	}

	playlists, err := a.playlists.ListByUser(claims.UserID)
	if err != nil {
		a.serveStoreError(w, err, "playlists: list failed")
		return
	}

	response := []playlistResponse{}
	for _, playlist := range playlists {
		response = append(response, makePlaylistResponse(playlist))
	}

	serveJSON(w, http.StatusOK, response)
}

// GET /api/playlists/{id}
//
// playlistGetHandler returns one caller-owned playlist. Someone else's
// playlist returns not-found, never forbidden.
func (a *API) playlistGetHandler(w http.ResponseWriter, r *http.Request) {
	claims := a.claimsFrom(w, r)
	if claims == nil {
		return
	}

	playlist, err := a.playlists.GetForUser(mux.Vars(r)["id"], claims.UserID)
	if err != nil {
		a.serveStoreError(w, err, "playlists: get failed")
		return
	}

	serveJSON(w, http.StatusOK, makePlaylistResponse(playlist))
}

// POST /api/playlists
//
// playlistCreateHandler creates an empty playlist owned by the caller.
func (a *API) playlistCreateHandler(w http.ResponseWriter, r *http.Request) {
	claims := a.claimsFrom(w, r)
	if claims == nil {
		return
	}

	var req playlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		serveError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		serveError(w, http.StatusBadRequest, "Playlist name is required")
		return
	}

	playlist := models.NewPlaylist(0, claims.UserID, req.Name, req.Description)
	if err := a.playlists.Create(playlist); err != nil {
		a.serveStoreError(w, err, "playlists: create failed")
		return
	}

	serveJSON(w, http.StatusCreated, makePlaylistResponse(playlist))
}

// PUT /api/playlists/{id}
//
// playlistUpdateHandler replaces name and description on a caller-owned playlist.
func (a *API) playlistUpdateHandler(w http.ResponseWriter, r *http.Request) {
	claims := a.claimsFrom(w, r)
	if claims == nil {
		return
	}

	var req playlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		serveError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		serveError(w, http.StatusBadRequest, "Playlist name is required")
		return
	}

	playlist, err := a.playlists.GetForUser(mux.Vars(r)["id"], claims.UserID)
	if err != nil {
		a.serveStoreError(w, err, "playlists: update lookup failed")
		return
	}

	playlist.Rename(req.Name, req.Description)
	if err := a.playlists.Update(playlist); err != nil {
		a.serveStoreError(w, err, "playlists: update failed")
		return
	}

	serveJSON(w, http.StatusOK, makePlaylistResponse(playlist))
}

// DELETE /api/playlists/{id}
//
// playlistDeleteHandler removes a caller-owned playlist and its track
// membership in one transaction.
func (a *API) playlistDeleteHandler(w http.ResponseWriter, r *http.Request) {
	claims := a.claimsFrom(w, r)
	if claims == nil {
		return
	}

	playlist, err := a.playlists.GetForUser(mux.Vars(r)["id"], claims.UserID)
	if err != nil {
		a.serveStoreError(w, err, "playlists: delete lookup failed")
		return
	}

	if err := a.playlists.Delete(playlist); err != nil {
		a.serveStoreError(w, err, "playlists: delete failed")
		return
	}

	serveJSON(w, http.StatusOK, messageResponse{Message: "Playlist deleted successfully"})
}
