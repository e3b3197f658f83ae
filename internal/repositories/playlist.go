package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/mixtapehq/mixtape/internal/models"
	"github.com/mixtapehq/mixtape/internal/shared"
)

// PlaylistRepository persists [models.Playlist] records and their ordered
// track membership.
//
// Every read and write is scoped to the owning user: a playlist that exists
// but belongs to someone else is indistinguishable from one that does not
// exist ([shared.ErrPlaylistNotFound] either way).
type PlaylistRepository struct {
	db     *sql.DB
	tracks *TrackRepository
}

// NewPlaylistRepository creates a new PlaylistRepository with the given database connection
func NewPlaylistRepository(db *sql.DB) *PlaylistRepository {
	return &PlaylistRepository{db: db, tracks: NewTrackRepository(db)}
}

// Create inserts a new playlist with a generated ID and sequence and an empty track list
func (r *PlaylistRepository) Create(playlist *models.Playlist) error {
	sequence, err := NextSequence(r.db, "playlists")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	playlist.SetID(shared.GenerateID())
	playlist.SetSequence(sequence)

	if err := playlist.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO playlists (id, sequence, user_id, name, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		playlist.ID(),
		playlist.Sequence(),
		playlist.UserID(),
		playlist.Name(),
		playlist.Description(),
		playlist.CreatedAt(),
		playlist.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert playlist: %w", err)
	}

	return nil
}

// GetForUser retrieves a playlist by ID scoped to its owner, with tracks
// resolved. Returns [shared.ErrPlaylistNotFound] when the playlist is absent
// or owned by another user.
func (r *PlaylistRepository) GetForUser(id, userID string) (*models.Playlist, error) {
	query := `
		SELECT id, sequence, user_id, name, description, created_at, updated_at
		FROM playlists
		WHERE id = ? AND user_id = ? AND deleted_at IS NULL
	`

	playlist, err := r.scanOne(r.db.QueryRow(query, id, userID))
	if err != nil {
		return nil, err
	}

	if err := r.resolveTracks(playlist); err != nil {
		return nil, err
	}

	return playlist, nil
}

// ListByUser returns all playlists owned by userID, newest-created first,
// each with its track list resolved.
func (r *PlaylistRepository) ListByUser(userID string) ([]*models.Playlist, error) {
	query := `
		SELECT id, sequence, user_id, name, description, created_at, updated_at
		FROM playlists
		WHERE user_id = ? AND deleted_at IS NULL
		ORDER BY sequence DESC
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlists: %w", err)
	}
	defer rows.Close()

	playlists := []*models.Playlist{}
	for rows.Next() {
		playlist, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		playlists = append(playlists, playlist)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	for _, playlist := range playlists {
		if err := r.resolveTracks(playlist); err != nil {
			return nil, err
		}
	}

	return playlists, nil
}

// Update replaces the name and description of a caller-owned playlist.
// Returns [shared.ErrPlaylistNotFound] when absent or not owned.
func (r *PlaylistRepository) Update(playlist *models.Playlist) error {
	if err := playlist.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	playlist.SetUpdatedAt(now)

	query := `
		UPDATE playlists
		SET name = ?, description = ?, updated_at = ?
		WHERE id = ? AND user_id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		playlist.Name(),
		playlist.Description(),
		now,
		playlist.ID(),
		playlist.UserID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update playlist: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return shared.ErrPlaylistNotFound
	}

	return nil
}

// Delete soft-deletes a caller-owned playlist and removes its track membership
// in a single transaction, so a crash can never leave dangling references.
// The deletion timestamp is recorded on the playlist once committed.
// Returns [shared.ErrPlaylistNotFound] when absent, not owned, or already deleted.
func (r *PlaylistRepository) Delete(playlist *models.Playlist) error {
	if playlist.DeletedAt() != nil {
		return shared.ErrPlaylistNotFound
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	result, err := tx.Exec(`
		UPDATE playlists
		SET deleted_at = ?
		WHERE id = ? AND user_id = ? AND deleted_at IS NULL
	`, now, playlist.ID(), playlist.UserID())
	if err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return shared.ErrPlaylistNotFound
	}

	if _, err := tx.Exec("DELETE FROM playlist_tracks WHERE playlist_id = ?", playlist.ID()); err != nil {
		return fmt.Errorf("failed to clear playlist membership: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete: %w", err)
	}

	playlist.SetDeletedAt(&now)
	return nil
}

// AddTrack appends a track reference to the end of the playlist's ordered
// list. Returns [shared.ErrDuplicateTrack] when the reference is already
// present; the UNIQUE(playlist_id, track_id) constraint backs the check under
// concurrent adds.
func (r *PlaylistRepository) AddTrack(playlistID, trackID string) error {
	var exists bool
	err := r.db.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM playlist_tracks WHERE playlist_id = ? AND track_id = ?)",
		playlistID, trackID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if exists {
		return shared.ErrDuplicateTrack
	}

	query := `
		INSERT INTO playlist_tracks (playlist_id, track_id, position)
		SELECT ?, ?, COALESCE(MAX(position), 0) + 1
		FROM playlist_tracks
		WHERE playlist_id = ?
	`

	_, err = r.db.Exec(query, playlistID, trackID, playlistID)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return shared.ErrDuplicateTrack
		}
		return fmt.Errorf("failed to add track: %w", err)
	}

	return nil
}

// RemoveTrack filters a track reference out of the playlist. Removing an
// absent reference is not an error.
func (r *PlaylistRepository) RemoveTrack(playlistID, trackID string) error {
	_, err := r.db.Exec(
		"DELETE FROM playlist_tracks WHERE playlist_id = ? AND track_id = ?",
		playlistID, trackID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove track: %w", err)
	}

	return nil
}

// resolveTracks populates the playlist's track list from the membership table.
func (r *PlaylistRepository) resolveTracks(playlist *models.Playlist) error {
	tracks, err := r.tracks.ListByPlaylist(playlist.ID())
	if err != nil {
		return err
	}
	playlist.SetTracks(tracks)
	return nil
}

// scanOne scans a single row into a [models.Playlist]
func (r *PlaylistRepository) scanOne(row *sql.Row) (*models.Playlist, error) {
	var (
		id          string
		sequence    int
		userID      string
		name        string
		description string
		createdAt   time.Time
		updatedAt   time.Time
	)

	err := row.Scan(&id, &sequence, &userID, &name, &description, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, shared.ErrPlaylistNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan playlist: %w", err)
	}

	playlist := models.NewPlaylist(sequence, userID, name, description)
	playlist.SetID(id)
	playlist.SetCreatedAt(createdAt)
	playlist.SetUpdatedAt(updatedAt)

	return playlist, nil
}

// scanRow scans a row from [sql.Rows] into a [models.Playlist]
func (r *PlaylistRepository) scanRow(rows *sql.Rows) (*models.Playlist, error) {
	var (
		id          string
		sequence    int
		userID      string
		name        string
		description string
		createdAt   time.Time
		updatedAt   time.Time
	)

	err := rows.Scan(&id, &sequence, &userID, &name, &description, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan playlist: %w", err)
	}

	playlist := models.NewPlaylist(sequence, userID, name, description)
	playlist.SetID(id)
	playlist.SetCreatedAt(createdAt)
	playlist.SetUpdatedAt(updatedAt)

	return playlist, nil
}
