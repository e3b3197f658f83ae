package server

import (
	"encoding/json"
	"net/http"
)

// serveJSON writes obj as a JSON response with the given status code.
func serveJSON(w http.ResponseWriter, status int, obj any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(obj)
}

// serveError writes the JSON error shape. No detail beyond the short message
// ever reaches the client.
func serveError(w http.ResponseWriter, status int, message string) {
	serveJSON(w, status, messageResponse{Message: message})
}
