package bot

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/maevebot/maeve/internal/domain"
	"github.com/maevebot/maeve/internal/services"
	"github.com/maevebot/maeve/internal/tmdb"
)

// maxChoices is Discord's cap on autocomplete choices per response.
const maxChoices = 25

// Command is one slash command: a registration-time schema and an
// execution entry point. The registry below is the complete, explicit
// command surface; there is no discovery step.
type Command interface {
	// Definition returns the application-command schema registered with
	// Discord at startup.
	Definition() *discordgo.ApplicationCommand

	// Execute handles one invocation. Sentinel outcomes must be turned
	// into user-visible replies here; a returned error reaches the
	// router's boundary and becomes a generic failure message.
	Execute(ctx *Context) error
}

// Autocompleter is implemented by commands with autocompleted options.
type Autocompleter interface {
	// Autocomplete returns the choice list for the focused option.
	Autocomplete(ctx *Context) ([]*discordgo.ApplicationCommandOptionChoice, error)
}

// All builds the full command registry. One listing command is created per
// franchise in the catalog.
func All(progress *services.ProgressService, meta *tmdb.Client) []Command {
	cmds := []Command{
		&currentCommand{Progress: progress, Meta: meta},
		&setCurrentCommand{Progress: progress},
		&setWatchedCommand{Progress: progress},
		&removeWatchedCommand{Progress: progress},
		&resetListCommand{Progress: progress},
		&speakCommand{},
		&podBayDoorsCommand{},
	}
	for _, f := range domain.Franchises {
		cmds = append(cmds, &listCommand{Progress: progress, Franchise: f})
	}
	return cmds
}

// franchiseChoices builds the category option choices from the franchise
// catalog.
func franchiseChoices() []*discordgo.ApplicationCommandOptionChoice {
	out := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(domain.Franchises))
	for _, f := range domain.Franchises {
		out = append(out, &discordgo.ApplicationCommandOptionChoice{Name: f.Name, Value: f.Slug})
	}
	return out
}

// movieChoices maps catalog rows to autocomplete choices, filtered by a
// case-insensitive substring of the typed input and capped at maxChoices.
// The choice value is the title, which the execute path re-resolves.
func movieChoices(movies []domain.Movie, input string) []*discordgo.ApplicationCommandOptionChoice {
	input = strings.ToLower(input)
	var out []*discordgo.ApplicationCommandOptionChoice
	for _, m := range movies {
		if input != "" && !strings.Contains(strings.ToLower(m.Title), input) {
			continue
		}
		out = append(out, &discordgo.ApplicationCommandOptionChoice{
			Name:  choiceLabel(m),
			Value: m.Title,
		})
		if len(out) == maxChoices {
			break
		}
	}
	return out
}

func choiceLabel(m domain.Movie) string {
	return fmt.Sprintf("%d. %s (%d)", m.SortOrder, m.Title, m.ReleaseYear)
}
