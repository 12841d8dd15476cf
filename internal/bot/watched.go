package bot

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/maevebot/maeve/internal/services"
)

// setWatchedCommand marks a fuzzy-matched movie watched. Both mutations of
// the watched set reply ephemerally; only the caller cares.
type setWatchedCommand struct {
	Progress *services.ProgressService
}

func (c *setWatchedCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "setwatched",
		Description: "Mark a movie as watched",
		Options:     watchedOptions("Select the movie you watched"),
	}
}

func (c *setWatchedCommand) Execute(ctx *Context) error {
	if err := ctx.Defer(true); err != nil {
		return err
	}

	category := ctx.StringOption("category")
	title := ctx.StringOption("movie")

	movie, err := c.Progress.MarkWatched(ctx.Ctx, ctx.UserID(), category, title)
	switch {
	case errors.Is(err, services.ErrUnknownFranchise):
		return ctx.EditContent(fmt.Sprintf("❌ Unknown category %q.", category))
	case errors.Is(err, services.ErrMovieNotFound):
		return ctx.EditContent(fmt.Sprintf("❌ Movie %q not found in the %s database.", title, category))
	case errors.Is(err, services.ErrAlreadyWatched):
		return ctx.EditContent(fmt.Sprintf("✅ You have already marked **%s** as watched.", movie.Title))
	case err != nil:
		return err
	}

	_, err = ctx.EditEmbed(&discordgo.MessageEmbed{
		Title: "✅ Movie Marked as Watched!",
		Description: fmt.Sprintf("You have marked **%s** (%d) as watched.",
			movie.Title, movie.ReleaseYear),
		Color: colorSuccess,
	}, nil)
	return err
}

func (c *setWatchedCommand) Autocomplete(ctx *Context) ([]*discordgo.ApplicationCommandOptionChoice, error) {
	name, input := ctx.FocusedOption()
	if name != "movie" {
		return nil, nil
	}
	movies, err := c.Progress.ListMovies(ctx.Ctx, ctx.StringOption("category"))
	if err != nil {
		return nil, err
	}
	return movieChoices(movies, input), nil
}

// removeWatchedCommand removes a movie from the caller's watched set. Its
// autocomplete only offers titles the caller has actually marked.
type removeWatchedCommand struct {
	Progress *services.ProgressService
}

func (c *removeWatchedCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "removewatched",
		Description: "Remove a movie from your watched list",
		Options:     watchedOptions("Select the movie you want to remove from watched list"),
	}
}

func (c *removeWatchedCommand) Execute(ctx *Context) error {
	if err := ctx.Defer(true); err != nil {
		return err
	}

	category := ctx.StringOption("category")
	title := ctx.StringOption("movie")

	movie, err := c.Progress.UnmarkWatched(ctx.Ctx, ctx.UserID(), category, title)
	switch {
	case errors.Is(err, services.ErrUnknownFranchise):
		return ctx.EditContent(fmt.Sprintf("❌ Unknown category %q.", category))
	case errors.Is(err, services.ErrMovieNotFound):
		return ctx.EditContent(fmt.Sprintf("❌ Movie %q not found in the %s database.", title, category))
	case errors.Is(err, services.ErrNotWatched):
		return ctx.EditContent(fmt.Sprintf("❌ You have not marked **%s** as watched yet.", movie.Title))
	case err != nil:
		return err
	}

	_, err = ctx.EditEmbed(&discordgo.MessageEmbed{
		Title: "🗑️ Removed from Watched List",
		Description: fmt.Sprintf("You have removed **%s** (%d) from your watched movies.",
			movie.Title, movie.ReleaseYear),
		Color: colorDanger,
	}, nil)
	return err
}

func (c *removeWatchedCommand) Autocomplete(ctx *Context) ([]*discordgo.ApplicationCommandOptionChoice, error) {
	name, input := ctx.FocusedOption()
	if name != "movie" {
		return nil, nil
	}
	movies, err := c.Progress.WatchedMovies(ctx.Ctx, ctx.UserID(), ctx.StringOption("category"))
	if err != nil {
		return nil, err
	}
	return movieChoices(movies, input), nil
}

// watchedOptions is the shared category+movie option pair of the two
// watched-set commands.
func watchedOptions(movieDesc string) []*discordgo.ApplicationCommandOption {
	return []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "category",
			Description: "Select a category",
			Required:    true,
			Choices:     franchiseChoices(),
		},
		{
			Type:         discordgo.ApplicationCommandOptionString,
			Name:         "movie",
			Description:  movieDesc,
			Required:     true,
			Autocomplete: true,
		},
	}
}
