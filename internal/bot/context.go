// Package bot implements the Discord surface: the slash-command registry,
// the interaction router, bounded-lifetime component collectors, and the
// command handlers themselves.
package bot

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// responseState tracks which response channel is currently valid for an
// interaction. Discord allows exactly one initial response; everything
// after that goes through edits or followups.
type responseState int

const (
	stateNone responseState = iota
	stateDeferred
	stateReplied
)

// Context carries everything a command handler needs for one interaction:
// a cancellable context, the session, the interaction itself, a scoped
// logger, and the response-state bookkeeping the error boundary relies on
// to pick the right channel when reporting failures.
type Context struct {
	Ctx         context.Context
	Session     *discordgo.Session
	Interaction *discordgo.InteractionCreate
	Log         zerolog.Logger

	// Router is the dispatching router; handlers use it to attach
	// component collectors to their rendered responses.
	Router *Router

	state responseState
}

// UserID returns the invoking user's ID, regardless of whether the command
// came from a guild channel or a DM.
func (c *Context) UserID() string {
	if c.Interaction.Member != nil && c.Interaction.Member.User != nil {
		return c.Interaction.Member.User.ID
	}
	if c.Interaction.User != nil {
		return c.Interaction.User.ID
	}
	return ""
}

// Mention returns the invoking user's mention string.
func (c *Context) Mention() string {
	return "<@" + c.UserID() + ">"
}

// StringOption returns the named string option of the command, or "".
func (c *Context) StringOption(name string) string {
	for _, opt := range c.Interaction.ApplicationCommandData().Options {
		if opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionString {
			return opt.StringValue()
		}
	}
	return ""
}

// FocusedOption returns the name and current value of the option being
// autocompleted.
func (c *Context) FocusedOption() (string, string) {
	for _, opt := range c.Interaction.ApplicationCommandData().Options {
		if opt.Focused {
			return opt.Name, opt.StringValue()
		}
	}
	return "", ""
}

// Deferred reports whether the initial response was deferred.
func (c *Context) Deferred() bool { return c.state == stateDeferred }

// Replied reports whether an initial response has been sent.
func (c *Context) Replied() bool { return c.state != stateNone }

// Defer acknowledges the interaction and buys time for slow work; the
// eventual payload is delivered with Edit.
func (c *Context) Defer(ephemeral bool) error {
	data := &discordgo.InteractionResponseData{}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	err := c.Session.InteractionRespond(c.Interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: data,
	})
	if err == nil {
		c.state = stateDeferred
	}
	return err
}

// Respond sends the initial interaction response.
func (c *Context) Respond(data *discordgo.InteractionResponseData) error {
	err := c.Session.InteractionRespond(c.Interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err == nil {
		c.state = stateReplied
	}
	return err
}

// Reply sends a plain-text initial response.
func (c *Context) Reply(content string, ephemeral bool) error {
	data := &discordgo.InteractionResponseData{Content: content}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	return c.Respond(data)
}

// Edit rewrites the deferred (or already sent) response.
func (c *Context) Edit(edit *discordgo.WebhookEdit) (*discordgo.Message, error) {
	msg, err := c.Session.InteractionResponseEdit(c.Interaction.Interaction, edit)
	if err == nil {
		c.state = stateReplied
	}
	return msg, err
}

// EditContent rewrites the response with plain text, dropping any embeds
// and components.
func (c *Context) EditContent(content string) error {
	empty := []*discordgo.MessageEmbed{}
	none := []discordgo.MessageComponent{}
	_, err := c.Edit(&discordgo.WebhookEdit{
		Content:    &content,
		Embeds:     &empty,
		Components: &none,
	})
	return err
}

// EditEmbed rewrites the response with one embed and a component set.
func (c *Context) EditEmbed(embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) (*discordgo.Message, error) {
	empty := ""
	embeds := []*discordgo.MessageEmbed{embed}
	if components == nil {
		components = []discordgo.MessageComponent{}
	}
	return c.Edit(&discordgo.WebhookEdit{
		Content:    &empty,
		Embeds:     &embeds,
		Components: &components,
	})
}

// Followup sends an ephemeral followup message, the only channel left once
// the initial response is spoken for.
func (c *Context) Followup(content string) error {
	_, err := c.Session.FollowupMessageCreate(c.Interaction.Interaction, true, &discordgo.WebhookParams{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	return err
}

// UpdateMessage responds to a component interaction by rewriting the
// message the component sits on.
func (c *Context) UpdateMessage(embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) error {
	if components == nil {
		components = []discordgo.MessageComponent{}
	}
	err := c.Session.InteractionRespond(c.Interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: components,
		},
	})
	if err == nil {
		c.state = stateReplied
	}
	return err
}

// Ack acknowledges a component interaction without changing the message,
// so Discord does not report the interaction as failed.
func (c *Context) Ack() error {
	err := c.Session.InteractionRespond(c.Interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
	if err == nil {
		c.state = stateReplied
	}
	return err
}

// Notice sends an ephemeral notice in response to a component interaction
// without touching the message it sits on.
func (c *Context) Notice(content string) error {
	err := c.Session.InteractionRespond(c.Interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err == nil {
		c.state = stateReplied
	}
	return err
}
