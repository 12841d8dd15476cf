// Package services – ProgressService
//
// This file implements the ProgressService, which manages a user's journey
// through a franchise: resolving free-text titles against the catalog,
// moving the current-movie pointer, maintaining the watched set, and
// resetting everything. Service-level errors (e.g. ErrMovieNotFound,
// ErrAlreadyWatched) are returned for predictable cases so command
// handlers can map them to user-visible messages consistently.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/maevebot/maeve/internal/domain"
	"github.com/maevebot/maeve/internal/repo"
)

// Snapshot is the authoritative state needed to render a franchise listing:
// the ordered catalog, the user's watched set, and their current pointer.
type Snapshot struct {
	Movies    []domain.Movie
	WatchedID map[uint]bool
	CurrentID *uint
}

// WatchedCount returns how many movies of the snapshot's franchise the user
// has marked watched.
func (s Snapshot) WatchedCount() int {
	n := 0
	for _, m := range s.Movies {
		if s.WatchedID[m.ID] {
			n++
		}
	}
	return n
}

// ProgressService provides the use-cases behind every movie command.
type ProgressService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// NewProgressService constructs a ProgressService.
func NewProgressService(db *gorm.DB) *ProgressService {
	return &ProgressService{DB: db}
}

// ResolveMovie turns free-text user input into a catalog row within the
// named franchise. Unknown franchises and unmatched titles yield sentinel
// errors.
func (s *ProgressService) ResolveMovie(ctx context.Context, franchise, query string) (*domain.Movie, error) {
	if _, ok := domain.FranchiseBySlug(franchise); !ok {
		return nil, ErrUnknownFranchise
	}
	m, err := repo.FindMovieByTitle(ctx, s.DB, franchise, query)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return m, nil
}

// SetCurrent resolves the query within the franchise and upserts the user's
// current-movie pointer to the match.
func (s *ProgressService) SetCurrent(ctx context.Context, userID, franchise, query string) (*domain.Movie, error) {
	m, err := s.ResolveMovie(ctx, franchise, query)
	if err != nil {
		return nil, err
	}
	if err := repo.SetCurrentMovie(ctx, s.DB, userID, m.ID); err != nil {
		return nil, err
	}
	return m, nil
}

// CurrentMovie returns the user's current movie. ErrNoProgress when no
// pointer is set; ErrMovieNotFound when the pointer references a movie that
// has since left the catalog.
func (s *ProgressService) CurrentMovie(ctx context.Context, userID string) (*domain.Movie, error) {
	p, err := repo.GetUserProgress(ctx, s.DB, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNoProgress
		}
		return nil, err
	}
	if p.CurrentMovieID == nil {
		return nil, ErrNoProgress
	}
	m, err := repo.GetMovie(ctx, s.DB, *p.CurrentMovieID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return m, nil
}

// MarkWatched resolves the query and adds the match to the user's watched
// set. The existence pre-check makes the common already-watched path a
// clean ErrAlreadyWatched; the check-then-insert pair is not atomic, so a
// concurrent duplicate that slips through to the unique constraint is
// translated to the same error rather than surfaced raw.
func (s *ProgressService) MarkWatched(ctx context.Context, userID, franchise, query string) (*domain.Movie, error) {
	m, err := s.ResolveMovie(ctx, franchise, query)
	if err != nil {
		return nil, err
	}
	watched, err := repo.IsWatched(ctx, s.DB, userID, m.ID)
	if err != nil {
		return nil, err
	}
	if watched {
		return m, ErrAlreadyWatched
	}
	if err := repo.MarkWatched(ctx, s.DB, userID, m.ID); err != nil {
		if errors.Is(err, repo.ErrDuplicateWatch) {
			return m, ErrAlreadyWatched
		}
		return nil, err
	}
	return m, nil
}

// MarkWatchedByID adds movieID to the user's watched set without a title
// lookup. Used by the watched-toggle button on /current.
func (s *ProgressService) MarkWatchedByID(ctx context.Context, userID string, movieID uint) error {
	if err := repo.MarkWatched(ctx, s.DB, userID, movieID); err != nil {
		if errors.Is(err, repo.ErrDuplicateWatch) {
			return ErrAlreadyWatched
		}
		return err
	}
	return nil
}

// UnmarkWatched resolves the query and removes the match from the user's
// watched set; ErrNotWatched when the movie was never marked.
func (s *ProgressService) UnmarkWatched(ctx context.Context, userID, franchise, query string) (*domain.Movie, error) {
	m, err := s.ResolveMovie(ctx, franchise, query)
	if err != nil {
		return nil, err
	}
	removed, err := repo.UnmarkWatched(ctx, s.DB, userID, m.ID)
	if err != nil {
		return nil, err
	}
	if !removed {
		return m, ErrNotWatched
	}
	return m, nil
}

// UnmarkWatchedByID removes movieID from the user's watched set. A missing
// mark is a no-op; the toggle button treats both outcomes the same.
func (s *ProgressService) UnmarkWatchedByID(ctx context.Context, userID string, movieID uint) error {
	_, err := repo.UnmarkWatched(ctx, s.DB, userID, movieID)
	return err
}

// IsWatched reports whether the user has marked movieID watched.
func (s *ProgressService) IsWatched(ctx context.Context, userID string, movieID uint) (bool, error) {
	return repo.IsWatched(ctx, s.DB, userID, movieID)
}

// ListMovies returns the ordered catalog of a franchise.
func (s *ProgressService) ListMovies(ctx context.Context, franchise string) ([]domain.Movie, error) {
	return repo.ListMovies(ctx, s.DB, franchise)
}

// WatchedMovies returns the user's watched catalog rows within a franchise,
// in chronological order. Used by the removewatched autocomplete, which
// only offers titles the user can actually unmark.
func (s *ProgressService) WatchedMovies(ctx context.Context, userID, franchise string) ([]domain.Movie, error) {
	ids, err := repo.ListWatchedIDs(ctx, s.DB, userID, franchise)
	if err != nil {
		return nil, err
	}
	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	movies, err := repo.ListMovies(ctx, s.DB, franchise)
	if err != nil {
		return nil, err
	}
	out := movies[:0:0]
	for _, m := range movies {
		if set[m.ID] {
			out = append(out, m)
		}
	}
	return out, nil
}

// GetSnapshot captures the state a franchise listing renders from. The
// snapshot is taken once per invocation; pagination within one interactive
// session intentionally reuses it (see the listing command).
func (s *ProgressService) GetSnapshot(ctx context.Context, userID, franchise string) (Snapshot, error) {
	snap := Snapshot{WatchedID: map[uint]bool{}}

	movies, err := repo.ListMovies(ctx, s.DB, franchise)
	if err != nil {
		return snap, err
	}
	snap.Movies = movies

	ids, err := repo.ListWatchedIDs(ctx, s.DB, userID, franchise)
	if err != nil {
		return snap, err
	}
	for _, id := range ids {
		snap.WatchedID[id] = true
	}

	p, err := repo.GetUserProgress(ctx, s.DB, userID)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return snap, err
	}
	if p != nil {
		snap.CurrentID = p.CurrentMovieID
	}
	return snap, nil
}

// ProgressSummary reports the user's overall progress: watch-mark count and
// whether a current movie is set. ErrNoProgress when both are empty.
func (s *ProgressService) ProgressSummary(ctx context.Context, userID string) (watched int64, hasCurrent bool, err error) {
	watched, err = repo.CountWatched(ctx, s.DB, userID)
	if err != nil {
		return 0, false, err
	}
	p, err := repo.GetUserProgress(ctx, s.DB, userID)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return 0, false, err
	}
	if p != nil && p.CurrentMovieID != nil {
		hasCurrent = true
	}
	if watched == 0 && !hasCurrent {
		return 0, false, ErrNoProgress
	}
	return watched, hasCurrent, nil
}

// Reset clears the user's watched set and current-movie pointer in one
// transaction, returning how many watch marks were removed.
func (s *ProgressService) Reset(ctx context.Context, userID string) (int64, error) {
	return repo.ResetProgress(ctx, s.DB, userID)
}
