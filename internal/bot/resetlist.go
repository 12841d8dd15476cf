package bot

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/maevebot/maeve/internal/services"
)

// resetListCommand clears all of the caller's progress behind an ephemeral
// confirm/cancel step with a short window.
type resetListCommand struct {
	Progress *services.ProgressService
}

func (c *resetListCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "resetlist",
		Description: "Reset your watch progress (removes all watched movies and current movie)",
	}
}

func (c *resetListCommand) Execute(ctx *Context) error {
	userID := ctx.UserID()

	watched, hasCurrent, err := c.Progress.ProgressSummary(ctx.Ctx, userID)
	if errors.Is(err, services.ErrNoProgress) {
		return ctx.Reply("❌ You don't have any progress to reset!", true)
	}
	if err != nil {
		return err
	}

	currentLabel := "None"
	if hasCurrent {
		currentLabel = "Set"
	}
	confirm := &discordgo.MessageEmbed{
		Title: "⚠️ Reset Progress",
		Description: "Are you sure you want to reset your progress?\n\n**This will:**\n" +
			"• Remove all watched movies\n• Clear your current movie\n• Reset your progress to 0%\n\n" +
			"**This action cannot be undone!**",
		Color: colorWarn,
		Fields: []*discordgo.MessageEmbedField{{
			Name:  "📊 Current Progress",
			Value: fmt.Sprintf("• %d movies watched\n• Current movie: %s", watched, currentLabel),
		}},
	}
	buttons := []discordgo.MessageComponent{discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.Button{
			CustomID: idConfirmReset,
			Label:    "Yes, Reset Everything",
			Style:    discordgo.DangerButton,
			Emoji:    &discordgo.ComponentEmoji{Name: "⚠️"},
		},
		discordgo.Button{
			CustomID: idCancelReset,
			Label:    "Cancel",
			Style:    discordgo.SecondaryButton,
			Emoji:    &discordgo.ComponentEmoji{Name: "❌"},
		},
	}}}

	err = ctx.Respond(&discordgo.InteractionResponseData{
		Embeds:     []*discordgo.MessageEmbed{confirm},
		Components: buttons,
		Flags:      discordgo.MessageFlagsEphemeral,
	})
	if err != nil {
		return err
	}
	msg, err := ctx.Session.InteractionResponse(ctx.Interaction.Interaction)
	if err != nil {
		return err
	}

	ctx.Router.Collect(ctx, msg.ID, ConfirmTTL,
		"❌ You can only reset your own progress!",
		func(actionCtx *Context, customID string) (bool, error) {
			switch customID {
			case idConfirmReset:
				deleted, err := c.Progress.Reset(actionCtx.Ctx, userID)
				if err != nil {
					return true, err
				}
				return true, actionCtx.UpdateMessage(&discordgo.MessageEmbed{
					Title:       "✅ Progress Reset Complete!",
					Description: "Your progress has been successfully reset.",
					Color:       colorSuccess,
					Fields: []*discordgo.MessageEmbedField{{
						Name: "📊 Reset Summary",
						Value: fmt.Sprintf("• %d watched movies removed\n• Current movie cleared\n• Progress reset to 0%%",
							deleted),
					}},
					Footer: &discordgo.MessageEmbedFooter{
						Text: "Use /setcurrent to set a new current movie and start your journey!",
					},
				}, nil)
			case idCancelReset:
				return true, actionCtx.UpdateMessage(&discordgo.MessageEmbed{
					Title:       "❌ Reset Cancelled",
					Description: "Your progress has not been changed.",
					Color:       colorNeutral,
				}, nil)
			}
			return false, nil
		},
		func(received bool) {
			if received {
				return
			}
			// Timed out untouched: say so instead of silently dropping the
			// buttons.
			timeout := []*discordgo.MessageEmbed{{
				Title:       "⏰ Reset Timeout",
				Description: "Reset confirmation timed out. Your progress remains unchanged.",
				Color:       colorNeutral,
			}}
			none := []discordgo.MessageComponent{}
			if _, err := ctx.Edit(&discordgo.WebhookEdit{Embeds: &timeout, Components: &none}); err != nil {
				ctx.Log.Warn().Err(err).Msg("failed to render reset timeout")
			}
		})
	return nil
}
