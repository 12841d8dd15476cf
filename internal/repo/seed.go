// Package repo – seed ingestion
//
// The movie catalog is populated from static JSON documents, one per
// franchise, living in a seed directory. Ingestion runs at first start:
// if the catalog already holds rows, every document is skipped. The
// reset-and-reseed path drops the schema first and ingests from scratch.
package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/maevebot/maeve/internal/domain"
)

// SeedDocument is the on-disk shape of one franchise seed file.
// The document-level franchise applies to every movie that does not carry
// its own override.
type SeedDocument struct {
	Franchise string      `json:"franchise"`
	Movies    []SeedMovie `json:"movies"`
}

// SeedMovie is one catalog entry of a seed document.
type SeedMovie struct {
	Title       string `json:"title"`
	TMDBID      int    `json:"tmdbId"`
	ReleaseYear int    `json:"releaseYear"`
	Order       int    `json:"order"`
	Phase       *int   `json:"phase,omitempty"`
	Franchise   string `json:"franchise,omitempty"`
}

// SeedMovies ingests every *.json document under dir into the movie
// catalog, unless the catalog already contains rows. It returns the number
// of movies inserted (0 when skipped).
func SeedMovies(ctx context.Context, db *gorm.DB, dir string) (int, error) {
	n, err := CountMovies(ctx, db)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		log.Info().Int64("movies", n).Msg("catalog already seeded, skipping")
		return 0, nil
	}
	return ingestDir(ctx, db, dir)
}

// ResetAndReseed drops the schema, recreates it, and ingests the seed
// documents from scratch. Destructive: all user progress is lost.
func ResetAndReseed(ctx context.Context, db *gorm.DB, dir string) (int, error) {
	if err := DropAll(db); err != nil {
		return 0, err
	}
	if err := AutoMigrate(db); err != nil {
		return 0, err
	}
	return ingestDir(ctx, db, dir)
}

func ingestDir(ctx context.Context, db *gorm.DB, dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read seed dir %s: %w", dir, err)
	}

	inserted := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		n, err := ingestFile(ctx, db, path)
		if err != nil {
			return inserted, fmt.Errorf("seed %s: %w", e.Name(), err)
		}
		log.Info().Str("file", e.Name()).Int("movies", n).Msg("seeded franchise document")
		inserted += n
	}
	return inserted, nil
}

func ingestFile(ctx context.Context, db *gorm.DB, path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	var doc SeedDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return 0, err
	}

	count := 0
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, sm := range doc.Movies {
			franchise := sm.Franchise
			if franchise == "" {
				franchise = doc.Franchise
			}
			if franchise == "" {
				return fmt.Errorf("movie %q has no franchise and document declares none", sm.Title)
			}
			m := domain.Movie{
				Title:       sm.Title,
				TMDBID:      sm.TMDBID,
				ReleaseYear: sm.ReleaseYear,
				SortOrder:   sm.Order,
				Phase:       sm.Phase,
				Franchise:   franchise,
			}
			if err := tx.Create(&m).Error; err != nil {
				return err
			}
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}
