package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/maevebot/maeve/internal/domain"
)

func TestSetCurrentMovie_UpsertSingleRow(t *testing.T) {
	db := newMigratedDB(t)
	seedCatalog(t, db, mcuCatalog()...)
	ctx := context.Background()

	if err := SetCurrentMovie(ctx, db, "u1", 1); err != nil {
		t.Fatalf("SetCurrentMovie (create): %v", err)
	}
	if err := SetCurrentMovie(ctx, db, "u1", 2); err != nil {
		t.Fatalf("SetCurrentMovie (overwrite): %v", err)
	}

	var rows []domain.UserProgress
	if err := db.Where("user_id = ?", "u1").Find(&rows).Error; err != nil {
		t.Fatalf("load progress rows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected exactly 1 progress row, got %d", len(rows))
	}
	if rows[0].CurrentMovieID == nil || *rows[0].CurrentMovieID != 2 {
		t.Fatalf("current movie = %v, want 2", rows[0].CurrentMovieID)
	}
}

func TestGetUserProgress_NotFound(t *testing.T) {
	db := newMigratedDB(t)
	if _, err := GetUserProgress(context.Background(), db, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClearCurrentMovie(t *testing.T) {
	db := newMigratedDB(t)
	seedCatalog(t, db, mcuCatalog()...)
	ctx := context.Background()

	if err := SetCurrentMovie(ctx, db, "u1", 1); err != nil {
		t.Fatalf("SetCurrentMovie: %v", err)
	}
	if err := ClearCurrentMovie(ctx, db, "u1"); err != nil {
		t.Fatalf("ClearCurrentMovie: %v", err)
	}
	p, err := GetUserProgress(ctx, db, "u1")
	if err != nil {
		t.Fatalf("GetUserProgress: %v", err)
	}
	if p.CurrentMovieID != nil {
		t.Fatalf("pointer should be nil, got %v", *p.CurrentMovieID)
	}

	// No row at all is fine too.
	if err := ClearCurrentMovie(ctx, db, "nobody"); err != nil {
		t.Fatalf("ClearCurrentMovie on absent row: %v", err)
	}
}

func TestMarkWatched_ThenIsWatched(t *testing.T) {
	db := newMigratedDB(t)
	seedCatalog(t, db, mcuCatalog()...)
	ctx := context.Background()

	if w, err := IsWatched(ctx, db, "u1", 1); err != nil || w {
		t.Fatalf("fresh user already watched: %v %v", w, err)
	}
	if err := MarkWatched(ctx, db, "u1", 1); err != nil {
		t.Fatalf("MarkWatched: %v", err)
	}
	if w, err := IsWatched(ctx, db, "u1", 1); err != nil || !w {
		t.Fatalf("expected watched after mark: %v %v", w, err)
	}
}

func TestMarkWatched_DuplicateRejected(t *testing.T) {
	db := newMigratedDB(t)
	seedCatalog(t, db, mcuCatalog()...)
	ctx := context.Background()

	if err := MarkWatched(ctx, db, "u1", 1); err != nil {
		t.Fatalf("first mark: %v", err)
	}
	if err := MarkWatched(ctx, db, "u1", 1); !errors.Is(err, ErrDuplicateWatch) {
		t.Fatalf("expected ErrDuplicateWatch, got %v", err)
	}
	// Still exactly one row.
	var n int64
	db.Model(&domain.WatchedMovie{}).Where("user_id = ? AND movie_id = ?", "u1", 1).Count(&n)
	if n != 1 {
		t.Fatalf("expected 1 watch row, got %d", n)
	}

	// The same movie watched by a different user is not a duplicate.
	if err := MarkWatched(ctx, db, "u2", 1); err != nil {
		t.Fatalf("other user's mark: %v", err)
	}
}

func TestUnmarkWatched(t *testing.T) {
	db := newMigratedDB(t)
	seedCatalog(t, db, mcuCatalog()...)
	ctx := context.Background()

	if err := MarkWatched(ctx, db, "u1", 1); err != nil {
		t.Fatalf("MarkWatched: %v", err)
	}
	removed, err := UnmarkWatched(ctx, db, "u1", 1)
	if err != nil || !removed {
		t.Fatalf("UnmarkWatched = %v, %v; want removed", removed, err)
	}
	if w, _ := IsWatched(ctx, db, "u1", 1); w {
		t.Fatalf("still watched after unmark")
	}

	removed, err = UnmarkWatched(ctx, db, "u1", 1)
	if err != nil || removed {
		t.Fatalf("second unmark = %v, %v; want no-op", removed, err)
	}
}

func TestListWatchedIDs_FranchiseScope(t *testing.T) {
	db := newMigratedDB(t)
	seedCatalog(t, db,
		domain.Movie{Title: "Iron Man", TMDBID: 1726, ReleaseYear: 2008, SortOrder: 1, Franchise: "mcu"},
		domain.Movie{Title: "Final Destination", TMDBID: 9532, ReleaseYear: 2000, SortOrder: 1, Franchise: "final-destination"},
	)
	ctx := context.Background()

	if err := MarkWatched(ctx, db, "u1", 1); err != nil {
		t.Fatalf("mark mcu: %v", err)
	}
	if err := MarkWatched(ctx, db, "u1", 2); err != nil {
		t.Fatalf("mark fd: %v", err)
	}

	all, err := ListWatchedIDs(ctx, db, "u1", "")
	if err != nil || len(all) != 2 {
		t.Fatalf("unscoped ids = %v, %v; want 2", all, err)
	}
	mcu, err := ListWatchedIDs(ctx, db, "u1", "mcu")
	if err != nil || len(mcu) != 1 || mcu[0] != 1 {
		t.Fatalf("mcu ids = %v, %v; want [1]", mcu, err)
	}
}

func TestResetProgress_ClearsEverything(t *testing.T) {
	db := newMigratedDB(t)
	seedCatalog(t, db, mcuCatalog()...)
	ctx := context.Background()

	if err := SetCurrentMovie(ctx, db, "u1", 2); err != nil {
		t.Fatalf("SetCurrentMovie: %v", err)
	}
	for _, id := range []uint{1, 2} {
		if err := MarkWatched(ctx, db, "u1", id); err != nil {
			t.Fatalf("MarkWatched %d: %v", id, err)
		}
	}
	// Another user's state must survive the reset.
	if err := MarkWatched(ctx, db, "u2", 3); err != nil {
		t.Fatalf("MarkWatched u2: %v", err)
	}

	deleted, err := ResetProgress(ctx, db, "u1")
	if err != nil {
		t.Fatalf("ResetProgress: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("deleted = %d, want 2", deleted)
	}

	if n, _ := CountWatched(ctx, db, "u1"); n != 0 {
		t.Fatalf("u1 still has %d watch rows", n)
	}
	p, err := GetUserProgress(ctx, db, "u1")
	if err != nil {
		t.Fatalf("GetUserProgress: %v", err)
	}
	if p.CurrentMovieID != nil {
		t.Fatalf("current pointer survived reset")
	}
	if n, _ := CountWatched(ctx, db, "u2"); n != 1 {
		t.Fatalf("u2's watch rows were touched: %d", n)
	}
}

func TestResetProgress_FailureRollsBack(t *testing.T) {
	db := newMigratedDB(t)
	seedCatalog(t, db, mcuCatalog()...)
	ctx := context.Background()

	if err := MarkWatched(ctx, db, "u1", 1); err != nil {
		t.Fatalf("MarkWatched: %v", err)
	}

	// Break the second statement of the reset: the watched delete succeeds,
	// nulling the pointer cannot.
	if err := db.Migrator().DropTable(&domain.UserProgress{}); err != nil {
		t.Fatalf("drop user_progress: %v", err)
	}

	if _, err := ResetProgress(ctx, db, "u1"); err == nil {
		t.Fatal("expected error when the pointer update fails")
	}
	// The whole transaction rolled back, so the watch marks survive.
	if n, err := CountWatched(ctx, db, "u1"); err != nil || n != 1 {
		t.Fatalf("watch rows after failed reset = %d, %v; want 1", n, err)
	}
}

func TestCountWatched(t *testing.T) {
	db := newMigratedDB(t)
	seedCatalog(t, db, mcuCatalog()...)
	ctx := context.Background()

	if n, err := CountWatched(ctx, db, "u1"); err != nil || n != 0 {
		t.Fatalf("fresh count = %d, %v", n, err)
	}
	if err := MarkWatched(ctx, db, "u1", 1); err != nil {
		t.Fatalf("MarkWatched: %v", err)
	}
	if n, err := CountWatched(ctx, db, "u1"); err != nil || n != 1 {
		t.Fatalf("count after mark = %d, %v", n, err)
	}
}
