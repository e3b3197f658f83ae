package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/mixtapehq/mixtape/internal/models"
	"github.com/mixtapehq/mixtape/internal/shared"
)

// TrackRepository persists [models.Track] records.
//
// Tracks form a deduplicated registry keyed by Spotify ID: one immutable
// record per external identifier, shared by every playlist that references it.
// Deduplication is enforced by the spotify_id UNIQUE constraint at the
// storage layer, not an application lock.
type TrackRepository struct {
	db *sql.DB
}

// NewTrackRepository creates a new TrackRepository with the given database connection
func NewTrackRepository(db *sql.DB) *TrackRepository {
	return &TrackRepository{db: db}
}

// Ensure returns the existing track with the given Spotify ID, creating it
// first if absent. Concurrent ensure calls for the same identifier may race to
// insert; the UNIQUE constraint decides the winner and the loser re-reads.
func (r *TrackRepository) Ensure(spotifyID, title, artist, album, albumArt string) (*models.Track, error) {
	existing, err := r.GetBySpotifyID(spotifyID)
	if err == nil {
		return existing, nil
	}
	if err != shared.ErrTrackNotFound {
		return nil, err
	}

	track := models.NewTrack(0, spotifyID, title, artist, album, albumArt)
	if err := r.Create(track); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			// Lost the insert race; the winner's record is authoritative.
			return r.GetBySpotifyID(spotifyID)
		}
		return nil, err
	}

	return track, nil
}

// Create inserts a new track with a generated ID and sequence
func (r *TrackRepository) Create(track *models.Track) error {
	sequence, err := NextSequence(r.db, "tracks")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	track.SetID(shared.GenerateID())
	track.SetSequence(sequence)

	if err := track.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO tracks (id, sequence, spotify_id, title, artist, album, album_art, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		track.ID(),
		track.Sequence(),
		track.SpotifyID(),
		track.Title(),
		track.Artist(),
		track.Album(),
		track.AlbumArt(),
		track.CreatedAt(),
		track.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert track: %w", err)
	}

	return nil
}

// Get retrieves a track by internal ID
func (r *TrackRepository) Get(id string) (*models.Track, error) {
	query := `
		SELECT id, sequence, spotify_id, title, artist, album, album_art, created_at, updated_at
		FROM tracks
		WHERE id = ?
	`

	return r.scanOne(r.db.QueryRow(query, id))
}

// GetBySpotifyID retrieves a track by its external catalog identifier
func (r *TrackRepository) GetBySpotifyID(spotifyID string) (*models.Track, error) {
	query := `
		SELECT id, sequence, spotify_id, title, artist, album, album_art, created_at, updated_at
		FROM tracks
		WHERE spotify_id = ?
	`

	return r.scanOne(r.db.QueryRow(query, spotifyID))
}

// ListByPlaylist returns a playlist's tracks resolved to full records, in insertion order.
func (r *TrackRepository) ListByPlaylist(playlistID string) ([]*models.Track, error) {
	query := `
		SELECT t.id, t.sequence, t.spotify_id, t.title, t.artist, t.album, t.album_art, t.created_at, t.updated_at
		FROM tracks t
		JOIN playlist_tracks pt ON pt.track_id = t.id
		WHERE pt.playlist_id = ?
		ORDER BY pt.position ASC
	`

	rows, err := r.db.Query(query, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlist tracks: %w", err)
	}
	defer rows.Close()

	tracks := []*models.Track{}
	for rows.Next() {
		track, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, track)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return tracks, nil
}

// scanOne scans a single [sql.Row] into a [models.Track]
func (r *TrackRepository) scanOne(row *sql.Row) (*models.Track, error) {
	var (
		id        string
		sequence  int
		spotifyID string
		title     string
		artist    string
		album     string
		albumArt  string
		createdAt time.Time
		updatedAt time.Time
	)

	err := row.Scan(&id, &sequence, &spotifyID, &title, &artist, &album, &albumArt, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, shared.ErrTrackNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan track: %w", err)
	}

	track := models.NewTrack(sequence, spotifyID, title, artist, album, albumArt)
	track.SetID(id)
	track.SetCreatedAt(createdAt)
	track.SetUpdatedAt(updatedAt)

	return track, nil
}

// scanRow scans a row from [sql.Rows] into a [models.Track]
func (r *TrackRepository) scanRow(rows *sql.Rows) (*models.Track, error) {
	var (
		id        string
		sequence  int
		spotifyID string
		title     string
		artist    string
		album     string
		albumArt  string
		createdAt time.Time
		updatedAt time.Time
	)

	err := rows.Scan(&id, &sequence, &spotifyID, &title, &artist, &album, &albumArt, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan track: %w", err)
	}

	track := models.NewTrack(sequence, spotifyID, title, artist, album, albumArt)
	track.SetID(id)
	track.SetCreatedAt(createdAt)
	track.SetUpdatedAt(updatedAt)

	return track, nil
}
