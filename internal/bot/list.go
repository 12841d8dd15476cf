package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/maevebot/maeve/internal/domain"
	"github.com/maevebot/maeve/internal/render"
	"github.com/maevebot/maeve/internal/services"
)

// listCommand is the paginated chronological listing of one franchise.
// One instance per catalog entry is registered (e.g. /mcu,
// /final-destination).
type listCommand struct {
	Progress  *services.ProgressService
	Franchise domain.Franchise
}

func (c *listCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Franchise.Command,
		Description: fmt.Sprintf("Get a list of the %s movies", c.Franchise.Name),
	}
}

func (c *listCommand) Execute(ctx *Context) error {
	if err := ctx.Defer(false); err != nil {
		return err
	}

	// The snapshot is captured once per invocation and reused across the
	// whole paging session. Watch marks made elsewhere while the controls
	// are live show up on the next invocation, not mid-session.
	snap, err := c.Progress.GetSnapshot(ctx.Ctx, ctx.UserID(), c.Franchise.Slug)
	if err != nil {
		return err
	}
	if len(snap.Movies) == 0 {
		return ctx.EditContent(fmt.Sprintf("❌ No %s movies found in the database.", c.Franchise.Name))
	}

	page := 0
	embed := listEmbed(c.Franchise, snap, page)
	controls := render.Controls(page, len(snap.Movies), render.PageSize)

	msg, err := ctx.EditEmbed(embed, navigationRow(controls))
	if err != nil {
		return err
	}
	if len(controls) == 0 {
		return nil
	}

	notice := fmt.Sprintf("❌ You can only interact with your own %s list!", c.Franchise.Name)
	router := ctx.Router
	router.Collect(ctx, msg.ID, BrowseTTL, notice,
		func(actionCtx *Context, customID string) (bool, error) {
			target, ok := listPageTarget(customID, len(snap.Movies))
			if !ok {
				// Nothing to render, but the press still needs an ack.
				return false, actionCtx.Ack()
			}
			newEmbed := listEmbed(c.Franchise, snap, target)
			newControls := render.Controls(target, len(snap.Movies), render.PageSize)
			return false, actionCtx.UpdateMessage(newEmbed, navigationRow(newControls))
		},
		func(bool) {
			// Window closed: drop the buttons, keep the last page visible.
			none := []discordgo.MessageComponent{}
			if _, err := ctx.Edit(&discordgo.WebhookEdit{Components: &none}); err != nil {
				ctx.Log.Warn().Err(err).Msg("failed to clear listing components")
			}
		})
	return nil
}
