// Package repo – movie repository
//
// Read-only queries over the movie catalog. The catalog is written only by
// the seed process (see seed.go); commands never mutate it.
//
// Error semantics:
//   - When a movie is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors the raw gorm error is propagated.
package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/maevebot/maeve/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for consistency across the service
// layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// FindMovieByTitle resolves free-text user input to a catalog row within a
// franchise. The lookup is two-phase: an exact case-insensitive title match
// first, then a case-insensitive substring fallback. When several rows match
// the substring phase, whichever row the store returns first wins; callers
// must not assume chronological order.
func FindMovieByTitle(ctx context.Context, db *gorm.DB, franchise, query string) (*domain.Movie, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, ErrNotFound
	}

	var m domain.Movie
	err := db.WithContext(ctx).
		Where("franchise = ? AND lower(title) = ?", franchise, q).
		First(&m).Error
	if err == nil {
		return &m, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	err = db.WithContext(ctx).
		Where("franchise = ? AND lower(title) LIKE ?", franchise, "%"+q+"%").
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetMovie fetches a single movie by primary key, or ErrNotFound.
func GetMovie(ctx context.Context, db *gorm.DB, id uint) (*domain.Movie, error) {
	var m domain.Movie
	if err := db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// ListMovies returns every movie of a franchise in chronological order
// (ascending sort_order). It returns an empty slice for an unknown
// franchise.
func ListMovies(ctx context.Context, db *gorm.DB, franchise string) ([]domain.Movie, error) {
	var out []domain.Movie
	err := db.WithContext(ctx).
		Where("franchise = ?", franchise).
		Order("sort_order asc").
		Find(&out).Error
	return out, err
}

// CountMovies returns the total number of catalog rows across all
// franchises. The seed process uses it to decide whether to ingest.
func CountMovies(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&domain.Movie{}).Count(&total).Error
	return total, err
}
