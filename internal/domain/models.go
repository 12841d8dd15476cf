// Package domain defines the persistence models for the movie catalog and
// per-user watch progress. These types are mapped with GORM and form the
// core data layer of the bot.
package domain

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Movie is one entry of a franchise catalog, ordered chronologically.
// Rows are created once by the seed process and are immutable afterwards;
// no command mutates the catalog.
//
// Fields:
//   - ID: auto-incrementing primary key, stable for the lifetime of the row.
//   - Title: display title of the movie.
//   - TMDBID: The Movie Database identifier; unique, links to the metadata client.
//   - ReleaseYear: theatrical release year.
//   - Description: optional synopsis (enrichment normally comes from TMDB).
//   - SortOrder: chronological position within the franchise. Uniqueness per
//     franchise is an application-level convention, not a DB constraint.
//   - Phase: optional grouping number (e.g. MCU phases).
//   - Franchise: franchise slug such as "mcu" or "final-destination"; indexed.
type Movie struct {
	ID          uint      `json:"id"           gorm:"primaryKey"`
	Title       string    `json:"title"        gorm:"type:varchar(255);not null"`
	TMDBID      int       `json:"tmdb_id"      gorm:"column:tmdb_id;not null;uniqueIndex:ux_movies_tmdb"`
	ReleaseYear int       `json:"release_year" gorm:"not null"`
	Description *string   `json:"description,omitempty" gorm:"type:text"`
	SortOrder   int       `json:"order"        gorm:"column:sort_order;not null"`
	Phase       *int      `json:"phase,omitempty"`
	Franchise   string    `json:"franchise"    gorm:"type:varchar(64);not null;index:idx_movies_franchise"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the database table name for Movie.
func (Movie) TableName() string { return "movies" }

// UserProgress holds a user's "current movie" pointer. There is at most one
// row per user (unique index on UserID); the row is created on first
// /setcurrent and the pointer is nulled on reset or when the referenced
// movie is deleted.
type UserProgress struct {
	ID             uint      `json:"id"      gorm:"primaryKey"`
	UserID         string    `json:"user_id" gorm:"type:varchar(64);not null;uniqueIndex:ux_progress_user"`
	CurrentMovieID *uint     `json:"current_movie_id,omitempty" gorm:"column:current_movie_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// CurrentMovie is the pointed-at catalog entry. The pointer survives a
	// catalog delete as NULL rather than a dangling reference.
	CurrentMovie *Movie `json:"-" gorm:"foreignKey:CurrentMovieID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

// TableName returns the database table name for UserProgress.
func (UserProgress) TableName() string { return "user_progress" }

// WatchedMovie marks one movie as watched by one user. The (UserID, MovieID)
// pair is unique: a user cannot watch the same movie twice. Rows are removed
// individually by /removewatched, in bulk by /resetlist, and cascade away
// with their movie.
type WatchedMovie struct {
	ID        uint      `json:"id"       gorm:"primaryKey"`
	UserID    string    `json:"user_id"  gorm:"type:varchar(64);not null;uniqueIndex:ux_watched_user_movie,priority:1"`
	MovieID   uint      `json:"movie_id" gorm:"not null;uniqueIndex:ux_watched_user_movie,priority:2"`
	CreatedAt time.Time `json:"created_at"`

	// Movie is the watched catalog entry; watch marks are cascade-deleted
	// if the movie is removed.
	Movie Movie `json:"-" gorm:"foreignKey:MovieID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for WatchedMovie.
func (WatchedMovie) TableName() string { return "watched_movies" }

// IsDuplicateErr reports whether err is a unique-constraint violation.
// The raw SQLite message is matched in addition to gorm.ErrDuplicatedKey
// because the pure-Go driver does not translate every constraint error.
func IsDuplicateErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
