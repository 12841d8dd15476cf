// Package repo – progress repository
//
// Persistence for the two user-owned relations: the current-movie pointer
// (user_progress) and the watched set (watched_movies). All functions are
// context-aware and accept a *gorm.DB handle, making them safe for use
// within transactions.
//
// Concurrency note: MarkWatched is not a race-free upsert. The service
// layer pre-checks existence and translates a concurrent duplicate insert
// (unique pair constraint) into ErrDuplicateWatch instead of letting the
// raw constraint error escape.
package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/maevebot/maeve/internal/domain"
)

// ErrDuplicateWatch is returned when inserting a watch mark that already
// exists for the (user, movie) pair.
var ErrDuplicateWatch = errors.New("movie already marked watched")

// GetUserProgress fetches the progress row for userID, or ErrNotFound if
// the user has never set a current movie.
func GetUserProgress(ctx context.Context, db *gorm.DB, userID string) (*domain.UserProgress, error) {
	var p domain.UserProgress
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SetCurrentMovie upserts the current-movie pointer for userID: the row is
// created if absent, otherwise the pointer is overwritten. Idempotent.
func SetCurrentMovie(ctx context.Context, db *gorm.DB, userID string, movieID uint) error {
	now := time.Now().UTC()
	p := domain.UserProgress{
		UserID:         userID,
		CurrentMovieID: &movieID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"current_movie_id", "updated_at"}),
		}).
		Create(&p).Error
}

// ClearCurrentMovie nulls the current-movie pointer for userID. A missing
// progress row is not an error; there is nothing to clear.
func ClearCurrentMovie(ctx context.Context, db *gorm.DB, userID string) error {
	return db.WithContext(ctx).
		Model(&domain.UserProgress{}).
		Where("user_id = ?", userID).
		Update("current_movie_id", nil).Error
}

// IsWatched reports whether userID has marked movieID watched.
func IsWatched(ctx context.Context, db *gorm.DB, userID string, movieID uint) (bool, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.WatchedMovie{}).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		Count(&n).Error
	return n > 0, err
}

// MarkWatched inserts a watch mark for (userID, movieID). If the pair
// already exists the unique constraint rejects the insert and
// ErrDuplicateWatch is returned.
func MarkWatched(ctx context.Context, db *gorm.DB, userID string, movieID uint) error {
	w := domain.WatchedMovie{
		UserID:    userID,
		MovieID:   movieID,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(&w).Error; err != nil {
		if domain.IsDuplicateErr(err) {
			return ErrDuplicateWatch
		}
		return err
	}
	return nil
}

// UnmarkWatched removes the watch mark for (userID, movieID) and reports
// whether a row was actually deleted. Removing an absent mark is a no-op.
func UnmarkWatched(ctx context.Context, db *gorm.DB, userID string, movieID uint) (bool, error) {
	res := db.WithContext(ctx).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		Delete(&domain.WatchedMovie{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ListWatchedIDs returns the IDs of every movie userID has marked watched.
// When franchise is non-empty the set is scoped to that franchise via a
// join on the catalog.
func ListWatchedIDs(ctx context.Context, db *gorm.DB, userID, franchise string) ([]uint, error) {
	q := db.WithContext(ctx).
		Model(&domain.WatchedMovie{}).
		Where("watched_movies.user_id = ?", userID)
	if franchise != "" {
		q = q.Joins("JOIN movies ON movies.id = watched_movies.movie_id").
			Where("movies.franchise = ?", franchise)
	}
	var ids []uint
	err := q.Pluck("watched_movies.movie_id", &ids).Error
	return ids, err
}

// CountWatched returns how many movies userID has marked watched.
func CountWatched(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.WatchedMovie{}).
		Where("user_id = ?", userID).
		Count(&n).Error
	return n, err
}

// ResetProgress deletes every watch mark of userID and nulls their
// current-movie pointer as a single transaction, returning the number of
// watch marks removed. Partial failure rolls the whole reset back.
func ResetProgress(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	var deleted int64
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ?", userID).Delete(&domain.WatchedMovie{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected

		return tx.Model(&domain.UserProgress{}).
			Where("user_id = ?", userID).
			Update("current_movie_id", nil).Error
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}
