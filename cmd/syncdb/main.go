// Command syncdb is a one-shot schema utility: by default it synchronizes
// the database schema (and seeds an empty catalog); with --reset it drops
// everything and reseeds from scratch. Exits 0 on success, 1 on failure.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/maevebot/maeve/internal/repo"
)

func main() {
	reset := flag.Bool("reset", false, "drop all tables and reseed the catalog (destroys user progress)")
	flag.Parse()

	_ = godotenv.Load()

	// Only the database settings matter here; bot credentials may be absent.
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "maeve.db"
	}
	seedDir := os.Getenv("SEED_DIR")
	if seedDir == "" {
		seedDir = "assets"
	}

	db, err := repo.OpenSQLite(dbPath)
	if err != nil {
		log.Error().Err(err).Str("path", dbPath).Msg("failed to open database")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if *reset {
		n, err := repo.ResetAndReseed(ctx, db, seedDir)
		if err != nil {
			log.Error().Err(err).Msg("failed to reset database")
			os.Exit(1)
		}
		log.Info().Int("movies", n).Msg("database reset and reseeded")
		return
	}

	if err := repo.AutoMigrate(db); err != nil {
		log.Error().Err(err).Msg("failed to synchronize schema")
		os.Exit(1)
	}
	n, err := repo.SeedMovies(ctx, db, seedDir)
	if err != nil {
		log.Error().Err(err).Msg("failed to seed catalog")
		os.Exit(1)
	}
	log.Info().Int("movies", n).Msg("database synchronized")
}
