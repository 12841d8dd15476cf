package domain

import (
	"errors"
	"fmt"
	"testing"

	"gorm.io/gorm"
)

func TestTableNames(t *testing.T) {
	if got := (Movie{}).TableName(); got != "movies" {
		t.Errorf("Movie table = %q", got)
	}
	if got := (UserProgress{}).TableName(); got != "user_progress" {
		t.Errorf("UserProgress table = %q", got)
	}
	if got := (WatchedMovie{}).TableName(); got != "watched_movies" {
		t.Errorf("WatchedMovie table = %q", got)
	}
}

func TestIsDuplicateErr(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"translated", gorm.ErrDuplicatedKey, true},
		{"wrapped translated", fmt.Errorf("create: %w", gorm.ErrDuplicatedKey), true},
		{"raw sqlite", errors.New("UNIQUE constraint failed: movies.tmdb_id"), true},
		{"unrelated", errors.New("database is locked"), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := IsDuplicateErr(c.err); got != c.want {
				t.Errorf("IsDuplicateErr(%v) = %v, want %v", c.err, got, c.want)
			}
		})
	}
}

func TestFranchiseBySlug(t *testing.T) {
	f, ok := FranchiseBySlug("mcu")
	if !ok {
		t.Fatal("mcu missing from catalog")
	}
	if f.Name != "MCU" || f.Command != "mcu" {
		t.Errorf("mcu = %+v", f)
	}

	f, ok = FranchiseBySlug("final-destination")
	if !ok {
		t.Fatal("final-destination missing from catalog")
	}
	if f.Name != "Final Destination" {
		t.Errorf("fd = %+v", f)
	}

	if _, ok := FranchiseBySlug("dc"); ok {
		t.Error("unknown slug should not resolve")
	}
}

func TestFranchises_SlugsUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, f := range Franchises {
		if seen[f.Slug] {
			t.Errorf("duplicate slug %q", f.Slug)
		}
		seen[f.Slug] = true
		if f.Slug == "" || f.Name == "" || f.Command == "" {
			t.Errorf("incomplete franchise %+v", f)
		}
	}
}
