package bot

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/maevebot/maeve/internal/domain"
	"github.com/maevebot/maeve/internal/services"
	"github.com/maevebot/maeve/internal/tmdb"
)

// currentCommand shows the caller's current movie with TMDB enrichment, a
// watched toggle, and a cross-link to the franchise listing.
type currentCommand struct {
	Progress *services.ProgressService
	Meta     *tmdb.Client
}

func (c *currentCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "current",
		Description: "View your current movie with detailed information",
	}
}

func (c *currentCommand) Execute(ctx *Context) error {
	if err := ctx.Defer(false); err != nil {
		return err
	}
	userID := ctx.UserID()

	movie, err := c.Progress.CurrentMovie(ctx.Ctx, userID)
	switch {
	case errors.Is(err, services.ErrNoProgress):
		return ctx.EditContent("❌ You haven't set a current movie yet! Use `/setcurrent <movie>` to set one.")
	case errors.Is(err, services.ErrMovieNotFound):
		return ctx.EditContent("❌ Your current movie was not found in the database. Please set a new current movie.")
	case err != nil:
		return err
	}

	franchise, _ := domain.FranchiseBySlug(movie.Franchise)

	watched, err := c.Progress.IsWatched(ctx.Ctx, userID, movie.ID)
	if err != nil {
		return err
	}

	// Enrichment is best-effort: a TMDB failure degrades to catalog facts.
	details, err := c.Meta.MovieDetails(ctx.Ctx, movie.TMDBID)
	if err != nil {
		ctx.Log.Warn().Err(err).Str("title", movie.Title).Msg("tmdb enrichment failed")
		details = nil
	}

	msg, err := ctx.EditEmbed(currentMovieEmbed(movie, franchise, details, watched), currentMovieButtons(franchise, watched))
	if err != nil {
		return err
	}

	ctx.Router.Collect(ctx, msg.ID, BrowseTTL,
		"❌ You can only interact with your own movie!",
		func(actionCtx *Context, customID string) (bool, error) {
			switch customID {
			case idMarkWatched:
				if err := c.Progress.MarkWatchedByID(actionCtx.Ctx, userID, movie.ID); err != nil &&
					!errors.Is(err, services.ErrAlreadyWatched) {
					return false, err
				}
			case idMarkUnwatched:
				if err := c.Progress.UnmarkWatchedByID(actionCtx.Ctx, userID, movie.ID); err != nil {
					return false, err
				}
			case idViewList:
				return false, actionCtx.Notice(fmt.Sprintf(
					"📋 Use the `/%s` command to view the full chronological list!", franchise.Command))
			default:
				return false, nil
			}

			// Re-derive the watched state from the store on each toggle
			// rather than trusting the captured flag.
			nowWatched, err := c.Progress.IsWatched(actionCtx.Ctx, userID, movie.ID)
			if err != nil {
				return false, err
			}
			return false, actionCtx.UpdateMessage(
				currentMovieEmbed(movie, franchise, details, nowWatched),
				currentMovieButtons(franchise, nowWatched))
		},
		func(bool) {
			none := []discordgo.MessageComponent{}
			if _, err := ctx.Edit(&discordgo.WebhookEdit{Components: &none}); err != nil {
				ctx.Log.Warn().Err(err).Msg("failed to clear current-movie components")
			}
		})
	return nil
}
