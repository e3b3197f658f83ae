package repositories

import (
	"database/sql"
	"testing"

	"github.com/mixtapehq/mixtape/internal/models"
	"github.com/mixtapehq/mixtape/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	// A pooled second connection would see a separate empty in-memory database
	shared.ConfigureDatabase(db, 1, 1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

// createTestUser persists a user fixture
func createTestUser(t *testing.T, db *sql.DB, username, email string) *models.User {
	t.Helper()

	repo := NewUserRepository(db)
	user := models.NewUser(0, username, email, "hashed-password")
	if err := repo.Create(user); err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return user
}

func TestUserRepository(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewUserRepository(db)
		user := models.NewUser(0, "alice", "alice@example.com", "hash")

		err := repo.Create(user)
		if err != nil {
			t.Fatalf("failed to create user: %v", err)
		}

		if user.ID() == "" {
			t.Error("user ID should be set after creation")
		}

		if user.Sequence() == 0 {
			t.Error("user sequence should be set after creation")
		}
	})

	t.Run("Get", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewUserRepository(db)
		user := createTestUser(t, db, "alice", "alice@example.com")

		retrieved, err := repo.Get(user.ID())
		if err != nil {
			t.Fatalf("failed to get user: %v", err)
		}

		if retrieved.ID() != user.ID() {
			t.Errorf("expected ID %s, got %s", user.ID(), retrieved.ID())
		}

		if retrieved.Email() != user.Email() {
			t.Errorf("expected email %s, got %s", user.Email(), retrieved.Email())
		}
	})

	t.Run("GetByEmail", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewUserRepository(db)
		user := createTestUser(t, db, "alice", "alice@example.com")

		retrieved, err := repo.GetByEmail("Alice@Example.com")
		if err != nil {
			t.Fatalf("lookup should be case-insensitive: %v", err)
		}

		if retrieved.ID() != user.ID() {
			t.Errorf("expected ID %s, got %s", user.ID(), retrieved.ID())
		}
	})

	t.Run("Exists", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewUserRepository(db)
		createTestUser(t, db, "alice", "alice@example.com")

		exists, err := repo.Exists("alice", "other@example.com")
		if err != nil {
			t.Fatalf("existence check failed: %v", err)
		}
		if !exists {
			t.Error("expected existence by username")
		}

		exists, err = repo.Exists("bob", "alice@example.com")
		if err != nil {
			t.Fatalf("existence check failed: %v", err)
		}
		if !exists {
			t.Error("expected existence by email")
		}

		exists, err = repo.Exists("bob", "bob@example.com")
		if err != nil {
			t.Fatalf("existence check failed: %v", err)
		}
		if exists {
			t.Error("expected no existence for unknown user")
		}
	})
}

func TestTrackRepository(t *testing.T) {
	t.Run("Create & GetBySpotifyID", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewTrackRepository(db)
		track := models.NewTrack(0, "spotify123", "Test Song", "Test Artist", "Test Album", "https://img.example/a.jpg")

		if err := repo.Create(track); err != nil {
			t.Fatalf("failed to create track: %v", err)
		}

		retrieved, err := repo.GetBySpotifyID("spotify123")
		if err != nil {
			t.Fatalf("failed to get track: %v", err)
		}

		if retrieved.Title() != "Test Song" {
			t.Errorf("expected title 'Test Song', got %s", retrieved.Title())
		}

		if retrieved.AlbumArt() != "https://img.example/a.jpg" {
			t.Errorf("unexpected album art %s", retrieved.AlbumArt())
		}
	})

	t.Run("Ensure deduplicates by spotify id", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewTrackRepository(db)

		first, err := repo.Ensure("spotify123", "Test Song", "Test Artist", "Test Album", "")
		if err != nil {
			t.Fatalf("first ensure failed: %v", err)
		}

		second, err := repo.Ensure("spotify123", "Different Title", "Different Artist", "Different Album", "x")
		if err != nil {
			t.Fatalf("second ensure failed: %v", err)
		}

		if first.ID() != second.ID() {
			t.Error("ensure must never create a second record for the same identifier")
		}

		// The original record is authoritative; later metadata is ignored
		if second.Title() != "Test Song" {
			t.Errorf("expected original title, got %s", second.Title())
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM tracks").Scan(&count); err != nil {
			t.Fatalf("failed to count tracks: %v", err)
		}
		if count != 1 {
			t.Errorf("expected 1 track, got %d", count)
		}
	})
}

func TestPlaylistRepository(t *testing.T) {
	t.Run("Create & GetForUser", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		user := createTestUser(t, db, "alice", "alice@example.com")
		repo := NewPlaylistRepository(db)

		playlist := models.NewPlaylist(0, user.ID(), "Road Trip", "songs for the road")
		if err := repo.Create(playlist); err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}

		retrieved, err := repo.GetForUser(playlist.ID(), user.ID())
		if err != nil {
			t.Fatalf("failed to get playlist: %v", err)
		}

		if retrieved.Name() != "Road Trip" {
			t.Errorf("expected name 'Road Trip', got %s", retrieved.Name())
		}

		if retrieved.UserID() != user.ID() {
			t.Errorf("expected user ID %s, got %s", user.ID(), retrieved.UserID())
		}

		if len(retrieved.Tracks()) != 0 {
			t.Errorf("expected empty track list, got %d tracks", len(retrieved.Tracks()))
		}
	})

	t.Run("Ownership isolation", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		alice := createTestUser(t, db, "alice", "alice@example.com")
		bob := createTestUser(t, db, "bob", "bob@example.com")
		repo := NewPlaylistRepository(db)

		playlist := models.NewPlaylist(0, alice.ID(), "Road Trip", "")
		if err := repo.Create(playlist); err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}

		if _, err := repo.GetForUser(playlist.ID(), bob.ID()); err != shared.ErrPlaylistNotFound {
			t.Errorf("expected ErrPlaylistNotFound for non-owner, got %v", err)
		}

		playlists, err := repo.ListByUser(bob.ID())
		if err != nil {
			t.Fatalf("failed to list playlists: %v", err)
		}
		if len(playlists) != 0 {
			t.Errorf("another user's playlist must never be listed, got %d", len(playlists))
		}
	})

	t.Run("ListByUser newest first", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		user := createTestUser(t, db, "alice", "alice@example.com")
		repo := NewPlaylistRepository(db)

		for _, name := range []string{"First", "Second", "Third"} {
			if err := repo.Create(models.NewPlaylist(0, user.ID(), name, "")); err != nil {
				t.Fatalf("failed to create playlist %s: %v", name, err)
			}
		}

		playlists, err := repo.ListByUser(user.ID())
		if err != nil {
			t.Fatalf("failed to list playlists: %v", err)
		}

		if len(playlists) != 3 {
			t.Fatalf("expected 3 playlists, got %d", len(playlists))
		}

		if playlists[0].Name() != "Third" || playlists[2].Name() != "First" {
			t.Errorf("expected newest-created first, got %s...%s", playlists[0].Name(), playlists[2].Name())
		}
	})

	t.Run("Update", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		user := createTestUser(t, db, "alice", "alice@example.com")
		repo := NewPlaylistRepository(db)

		playlist := models.NewPlaylist(0, user.ID(), "Road Trip", "")
		if err := repo.Create(playlist); err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}

		playlist.Rename("Commute", "weekday drive")
		if err := repo.Update(playlist); err != nil {
			t.Fatalf("failed to update playlist: %v", err)
		}

		retrieved, err := repo.GetForUser(playlist.ID(), user.ID())
		if err != nil {
			t.Fatalf("failed to get playlist: %v", err)
		}
		if retrieved.Name() != "Commute" || retrieved.Description() != "weekday drive" {
			t.Errorf("update not persisted: %s/%s", retrieved.Name(), retrieved.Description())
		}
	})

	t.Run("Delete removes playlist and membership", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		user := createTestUser(t, db, "alice", "alice@example.com")
		repo := NewPlaylistRepository(db)
		trackRepo := NewTrackRepository(db)

		playlist := models.NewPlaylist(0, user.ID(), "Road Trip", "")
		if err := repo.Create(playlist); err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}

		track, err := trackRepo.Ensure("spotify123", "Test Song", "Test Artist", "Test Album", "")
		if err != nil {
			t.Fatalf("failed to ensure track: %v", err)
		}
		if err := repo.AddTrack(playlist.ID(), track.ID()); err != nil {
			t.Fatalf("failed to add track: %v", err)
		}

		if err := repo.Delete(playlist); err != nil {
			t.Fatalf("failed to delete playlist: %v", err)
		}

		if playlist.DeletedAt() == nil {
			t.Error("expected deletion timestamp to be recorded")
		}

		if err := repo.Delete(playlist); err != shared.ErrPlaylistNotFound {
			t.Errorf("expected ErrPlaylistNotFound on repeat delete, got %v", err)
		}

		if _, err := repo.GetForUser(playlist.ID(), user.ID()); err != shared.ErrPlaylistNotFound {
			t.Errorf("expected ErrPlaylistNotFound after delete, got %v", err)
		}

		playlists, err := repo.ListByUser(user.ID())
		if err != nil {
			t.Fatalf("failed to list playlists: %v", err)
		}
		if len(playlists) != 0 {
			t.Errorf("deleted playlist must not appear in the owner's list, got %d", len(playlists))
		}

		var memberships int
		if err := db.QueryRow("SELECT COUNT(*) FROM playlist_tracks WHERE playlist_id = ?", playlist.ID()).Scan(&memberships); err != nil {
			t.Fatalf("failed to count memberships: %v", err)
		}
		if memberships != 0 {
			t.Errorf("expected membership rows removed with the playlist, got %d", memberships)
		}

		// Shared catalog entries survive playlist deletion
		if _, err := trackRepo.GetBySpotifyID("spotify123"); err != nil {
			t.Errorf("track registry entry should survive: %v", err)
		}
	})
}

func TestPlaylistMembership(t *testing.T) {
	t.Run("AddTrack rejects duplicates", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		user := createTestUser(t, db, "alice", "alice@example.com")
		repo := NewPlaylistRepository(db)
		trackRepo := NewTrackRepository(db)

		playlist := models.NewPlaylist(0, user.ID(), "Road Trip", "")
		if err := repo.Create(playlist); err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}

		track, err := trackRepo.Ensure("spotify123", "Test Song", "Test Artist", "Test Album", "")
		if err != nil {
			t.Fatalf("failed to ensure track: %v", err)
		}

		if err := repo.AddTrack(playlist.ID(), track.ID()); err != nil {
			t.Fatalf("first add should succeed: %v", err)
		}

		if err := repo.AddTrack(playlist.ID(), track.ID()); err != shared.ErrDuplicateTrack {
			t.Errorf("expected ErrDuplicateTrack, got %v", err)
		}

		retrieved, err := repo.GetForUser(playlist.ID(), user.ID())
		if err != nil {
			t.Fatalf("failed to get playlist: %v", err)
		}
		if len(retrieved.Tracks()) != 1 {
			t.Errorf("failed add must not change track count, got %d", len(retrieved.Tracks()))
		}
	})

	t.Run("Tracks keep insertion order", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		user := createTestUser(t, db, "alice", "alice@example.com")
		repo := NewPlaylistRepository(db)
		trackRepo := NewTrackRepository(db)

		playlist := models.NewPlaylist(0, user.ID(), "Road Trip", "")
		if err := repo.Create(playlist); err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}

		for i, spotifyID := range []string{"sp1", "sp2", "sp3"} {
			track, err := trackRepo.Ensure(spotifyID, "Song", "Artist", "Album", "")
			if err != nil {
				t.Fatalf("failed to ensure track %d: %v", i, err)
			}
			if err := repo.AddTrack(playlist.ID(), track.ID()); err != nil {
				t.Fatalf("failed to add track %d: %v", i, err)
			}
		}

		retrieved, err := repo.GetForUser(playlist.ID(), user.ID())
		if err != nil {
			t.Fatalf("failed to get playlist: %v", err)
		}

		tracks := retrieved.Tracks()
		if len(tracks) != 3 {
			t.Fatalf("expected 3 tracks, got %d", len(tracks))
		}
		for i, want := range []string{"sp1", "sp2", "sp3"} {
			if tracks[i].SpotifyID() != want {
				t.Errorf("position %d: expected %s, got %s", i, want, tracks[i].SpotifyID())
			}
		}
	})

	t.Run("RemoveTrack is idempotent", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		user := createTestUser(t, db, "alice", "alice@example.com")
		repo := NewPlaylistRepository(db)
		trackRepo := NewTrackRepository(db)

		playlist := models.NewPlaylist(0, user.ID(), "Road Trip", "")
		if err := repo.Create(playlist); err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}

		track, err := trackRepo.Ensure("spotify123", "Test Song", "Test Artist", "Test Album", "")
		if err != nil {
			t.Fatalf("failed to ensure track: %v", err)
		}
		if err := repo.AddTrack(playlist.ID(), track.ID()); err != nil {
			t.Fatalf("failed to add track: %v", err)
		}

		if err := repo.RemoveTrack(playlist.ID(), track.ID()); err != nil {
			t.Fatalf("failed to remove track: %v", err)
		}

		// Removing again is not an error
		if err := repo.RemoveTrack(playlist.ID(), track.ID()); err != nil {
			t.Errorf("removing an absent reference should succeed: %v", err)
		}

		// Removing a reference that was never present is also fine
		if err := repo.RemoveTrack(playlist.ID(), "no-such-track"); err != nil {
			t.Errorf("removing an unknown reference should succeed: %v", err)
		}

		retrieved, err := repo.GetForUser(playlist.ID(), user.ID())
		if err != nil {
			t.Fatalf("failed to get playlist: %v", err)
		}
		if len(retrieved.Tracks()) != 0 {
			t.Errorf("expected empty track list, got %d", len(retrieved.Tracks()))
		}
	})
}

func TestNextSequence(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	seq1, err := NextSequence(db, "users")
	if err != nil {
		t.Fatalf("failed to get first sequence: %v", err)
	}

	if seq1 != 1 {
		t.Errorf("expected first sequence to be 1, got %d", seq1)
	}

	seq2, err := NextSequence(db, "users")
	if err != nil {
		t.Fatalf("failed to get second sequence: %v", err)
	}

	if seq2 != 2 {
		t.Errorf("expected second sequence to be 2, got %d", seq2)
	}

	trackSeq, err := NextSequence(db, "tracks")
	if err != nil {
		t.Fatalf("failed to get track sequence: %v", err)
	}

	if trackSeq != 1 {
		t.Errorf("expected first track sequence to be 1, got %d", trackSeq)
	}
}
