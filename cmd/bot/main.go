// Command bot runs the Discord bot: it migrates and seeds the database,
// registers the slash-command surface, and serves gateway events until
// interrupted.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/maevebot/maeve/internal/bot"
	"github.com/maevebot/maeve/internal/config"
	ophttp "github.com/maevebot/maeve/internal/http"
	"github.com/maevebot/maeve/internal/repo"
	"github.com/maevebot/maeve/internal/services"
	"github.com/maevebot/maeve/internal/tmdb"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	setupLogger(cfg)

	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("failed to open database")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate schema")
	}

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 30*time.Second)
	n, err := repo.SeedMovies(seedCtx, db, cfg.SeedDir)
	cancelSeed()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed catalog")
	}
	if n > 0 {
		log.Info().Int("movies", n).Msg("seeded movie catalog")
	}

	progress := services.NewProgressService(db)
	meta := tmdb.New(cfg.TMDB.APIKey,
		tmdb.WithTimeout(cfg.TMDB.Timeout),
		tmdb.WithRateLimit(cfg.TMDB.RPS, cfg.TMDB.Burst))

	router := bot.NewRouter(bot.All(progress, meta))

	session, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create session")
	}
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentsGuildMembers

	session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Info().Str("user", r.User.Username).Msg("logged in")

		if _, err := s.ApplicationCommandBulkOverwrite(cfg.ClientID, "", router.Definitions()); err != nil {
			log.Error().Err(err).Msg("failed to register commands")
		} else {
			log.Info().Int("commands", len(router.Definitions())).Msg("registered application commands")
		}

		if err := bot.SetPresence(s, cfg.Presence); err != nil {
			log.Warn().Err(err).Msg("failed to set presence")
		} else {
			log.Info().
				Str("status", cfg.Presence.Status).
				Str("activity", cfg.Presence.ActivityName).
				Msg("presence set")
		}
	})
	session.AddHandler(router.HandleInteraction)

	if err := session.Open(); err != nil {
		log.Fatal().Err(err).Msg("failed to open gateway connection")
	}
	defer session.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go ophttp.Serve(ctx, cfg.HTTPPort, ophttp.NewRouter(db))

	log.Info().Msg("bot is running, press ctrl+c to exit")
	<-ctx.Done()
	log.Info().Msg("shutting down")
}

func setupLogger(cfg config.Config) {
	switch cfg.LogLevel {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "fatal":
		zerolog.SetGlobalLevel(zerolog.FatalLevel)
	case "panic":
		zerolog.SetGlobalLevel(zerolog.PanicLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}
