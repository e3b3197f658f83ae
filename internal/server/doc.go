// Package server exposes the playlist management HTTP API.
//
// # Surface
//
// All routes are mounted under the /api prefix:
//
//	POST   /api/auth/register                        → create account, returns token
//	POST   /api/auth/login                           → verify credentials, returns token
//	GET    /api/playlists                            → caller's playlists, newest first
//	GET    /api/playlists/{id}                       → one caller-owned playlist
//	POST   /api/playlists                            → create playlist
//	PUT    /api/playlists/{id}                       → rename playlist
//	DELETE /api/playlists/{id}                       → delete playlist
//	POST   /api/playlists/{playlistId}/songs         → add a track
//	DELETE /api/playlists/{playlistId}/songs/{songId} → remove a track
//	GET    /api/search?q=                            → proxy catalog search
//	GET    /api/health                               → liveness probe
//
// # Authentication
//
// Everything except register/login/health sits behind a bearer token gate:
// the middleware verifies the token's signature and expiry against the
// server secret and attaches the decoded identity to the request context.
// Claims are trusted for the token's lifetime; the user store is not
// re-queried per request.
//
// # Errors
//
// Handlers translate sentinel errors into JSON {"message": ...} responses:
// not-found and not-owned both map to 404 so that other users' playlists are
// never disclosed; duplicate registration and duplicate track-in-playlist map
// to 400; everything unexpected is logged and returned as a generic 500.
package server
