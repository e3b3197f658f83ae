package server

import (
	"net/http"
	"strconv"
)

// GET /api/search?q=&limit=
//
// searchHandler proxies a free-text query to the external catalog and returns
// normalized track candidates. The catalog authenticates itself; callers only
// need their own bearer token.
func (a *API) searchHandler(w http.ResponseWriter, r *http.Request) {
	if claims := a.claimsFrom(w, r); claims == nil {
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		serveError(w, http.StatusBadRequest, "Search query is required")
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}

	results, err := a.catalog.SearchTracks(r.Context(), query, limit)
	if err != nil {
		a.logger.Error("search: catalog request failed", "err", err)
		serveError(w, http.StatusInternalServerError, "Failed to search songs")
		return
	}

	serveJSON(w, http.StatusOK, results)
}
