// Package services defines the business logic for watch progress. This
// file centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer;
// translation into user-facing messages is performed at the command
// handler layer.
package services

import "errors"

var (
	// ErrMovieNotFound indicates that free-text input did not resolve to any
	// catalog row, or that a referenced movie no longer exists.
	ErrMovieNotFound = errors.New("movie not found")

	// ErrAlreadyWatched is returned when marking a movie that is already in
	// the user's watched set.
	ErrAlreadyWatched = errors.New("movie already watched")

	// ErrNotWatched is returned when unmarking a movie that is not in the
	// user's watched set.
	ErrNotWatched = errors.New("movie not watched")

	// ErrNoProgress indicates that the user has no current movie and no
	// watch marks, so there is nothing to show or reset.
	ErrNoProgress = errors.New("no progress recorded")

	// ErrUnknownFranchise is returned for a category value outside the
	// franchise catalog.
	ErrUnknownFranchise = errors.New("unknown franchise")
)
