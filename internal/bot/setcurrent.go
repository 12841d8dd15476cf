package bot

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/maevebot/maeve/internal/services"
)

// setCurrentCommand moves the caller's current-movie pointer to a
// fuzzy-matched title within a franchise.
type setCurrentCommand struct {
	Progress *services.ProgressService
}

func (c *setCurrentCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "setcurrent",
		Description: "Set your current movie",
		Options: []*discordgo.ApplicationCommandOption{
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
				Description:  "The movie title to set as current",
				Required:     true,
				Autocomplete: true,
			},
		},
	}
}

func (c *setCurrentCommand) Execute(ctx *Context) error {
	if err := ctx.Defer(false); err != nil {
		return err
	}

	category := ctx.StringOption("category")
	title := ctx.StringOption("movie")

	movie, err := c.Progress.SetCurrent(ctx.Ctx, ctx.UserID(), category, title)
	switch {
	case errors.Is(err, services.ErrUnknownFranchise):
		return ctx.EditContent(fmt.Sprintf("❌ Unknown category %q.", category))
	case errors.Is(err, services.ErrMovieNotFound):
		return ctx.EditContent(fmt.Sprintf(
			"❌ Movie %q not found in the %s database. Use the autocomplete feature or check the listing command for available movies.",
			title, category))
	case err != nil:
		return err
	}

	embed := &discordgo.MessageEmbed{
		Title: "🎯 Current Movie Set!",
		Description: fmt.Sprintf("Your current movie has been set to:\n\n**%s** (%d)",
			movie.Title, movie.ReleaseYear),
		Color: colorSuccess,
		Fields: []*discordgo.MessageEmbedField{{
			Name:   "📍 Chronological Position",
			Value:  fmt.Sprintf("#%d in the %s timeline", movie.SortOrder, category),
			Inline: true,
		}},
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Use /current to view detailed information about this movie!",
		},
	}
	_, err = ctx.EditEmbed(embed, nil)
	return err
}

func (c *setCurrentCommand) Autocomplete(ctx *Context) ([]*discordgo.ApplicationCommandOptionChoice, error) {
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
