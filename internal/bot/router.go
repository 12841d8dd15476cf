package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/maevebot/maeve/internal/metrics"
)

// genericErrorMsg is what users see when a command fails for a reason they
// cannot act on. The detail goes to the logs.
const genericErrorMsg = "❌ There was an error while executing this command!"

// handlerTimeout bounds the store and metadata work of one interaction.
const handlerTimeout = 15 * time.Second

// Router dispatches gateway interactions: slash commands to their handler,
// autocomplete to the owning command, and component actions to the live
// collector of the message they were pressed on. Every dispatch is wrapped
// in a recover-and-report boundary so one bad interaction never takes the
// event loop down for other users.
type Router struct {
	commands   map[string]Command
	collectors *collectorStore
}

// NewRouter builds a Router over the given command registry.
func NewRouter(cmds []Command) *Router {
	r := &Router{
		commands:   make(map[string]Command, len(cmds)),
		collectors: newCollectorStore(),
	}
	for _, c := range cmds {
		r.commands[c.Definition().Name] = c
	}
	return r
}

// Definitions returns the schemas of every registered command, for bulk
// registration at startup.
func (r *Router) Definitions() []*discordgo.ApplicationCommand {
	out := make([]*discordgo.ApplicationCommand, 0, len(r.commands))
	for _, c := range r.commands {
		out = append(out, c.Definition())
	}
	return out
}

// HandleInteraction is the session's InteractionCreate handler.
func (r *Router) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	rctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	ctx := &Context{
		Ctx:         rctx,
		Session:     s,
		Interaction: i,
		Router:      r,
	}
	ctx.Log = log.With().
		Str("invocation_id", uuid.NewString()).
		Str("user_id", ctx.UserID()).
		Logger()

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		r.handleCommand(ctx)
	case discordgo.InteractionApplicationCommandAutocomplete:
		r.handleAutocomplete(ctx)
	case discordgo.InteractionMessageComponent:
		r.handleComponent(ctx)
	}
}

// Collect opens a bounded-lifetime subscription for the controls on
// messageID, scoped to the invoker of ctx.
func (r *Router) Collect(ctx *Context, messageID string, ttl time.Duration, notice string, fn CollectFunc, onEnd func(received bool)) {
	r.collectors.Attach(messageID, ctx.UserID(), ttl, notice, fn, onEnd)
}

func (r *Router) handleCommand(ctx *Context) {
	name := ctx.Interaction.ApplicationCommandData().Name
	ctx.Log = ctx.Log.With().Str("command", name).Logger()

	cmd, ok := r.commands[name]
	if !ok {
		ctx.Log.Error().Msg("no matching command")
		return
	}

	start := time.Now()
	err := r.safeExecute(cmd, ctx)
	metrics.CommandDuration(name, time.Since(start).Seconds())

	if err != nil {
		metrics.Command(name, "error")
		ctx.Log.Error().Err(err).Msg("command failed")
		r.reportError(ctx)
		return
	}
	metrics.Command(name, "ok")
}

// safeExecute runs the handler, converting panics into errors so the
// boundary below treats both the same way.
func (r *Router) safeExecute(cmd Command, ctx *Context) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return cmd.Execute(ctx)
}

// reportError tells the user something went wrong, picking the response
// channel the interaction is still able to use: a fresh ephemeral reply
// before any response, an edit of a deferred one, a followup otherwise.
func (r *Router) reportError(ctx *Context) {
	var err error
	switch {
	case !ctx.Replied():
		err = ctx.Reply(genericErrorMsg, true)
	case ctx.Deferred():
		err = ctx.EditContent(genericErrorMsg)
	default:
		err = ctx.Followup(genericErrorMsg)
	}
	if err != nil {
		ctx.Log.Error().Err(err).Msg("failed to deliver error response")
	}
}

func (r *Router) handleAutocomplete(ctx *Context) {
	name := ctx.Interaction.ApplicationCommandData().Name
	ctx.Log = ctx.Log.With().Str("command", name).Str("kind", "autocomplete").Logger()

	ac, ok := r.commands[name].(Autocompleter)
	if !ok {
		return
	}

	choices, err := ac.Autocomplete(ctx)
	if err != nil {
		// An empty choice list keeps the typing experience intact.
		ctx.Log.Warn().Err(err).Msg("autocomplete failed")
		choices = nil
	}
	if choices == nil {
		choices = []*discordgo.ApplicationCommandOptionChoice{}
	}

	err = ctx.Session.InteractionRespond(ctx.Interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{Choices: choices},
	})
	if err != nil {
		ctx.Log.Error().Err(err).Msg("failed to respond to autocomplete")
	}
}

func (r *Router) handleComponent(ctx *Context) {
	messageID := ctx.Interaction.Message.ID
	customID := ctx.Interaction.MessageComponentData().CustomID
	ctx.Log = ctx.Log.With().Str("custom_id", customID).Str("message_id", messageID).Logger()

	c, v := r.collectors.resolve(messageID, ctx.UserID())
	switch v {
	case verdictExpired:
		metrics.ComponentAction("expired")
		if err := ctx.Notice("⏰ These controls have expired. Run the command again."); err != nil {
			ctx.Log.Warn().Err(err).Msg("failed to answer expired component")
		}
		return
	case verdictRejected:
		metrics.ComponentAction("rejected")
		if err := ctx.Notice(c.notice); err != nil {
			ctx.Log.Warn().Err(err).Msg("failed to reject component action")
		}
		return
	}

	metrics.ComponentAction("accepted")
	done, err := c.fn(ctx, customID)
	if err != nil {
		ctx.Log.Error().Err(err).Msg("component action failed")
		if !ctx.Replied() {
			if nerr := ctx.Notice(genericErrorMsg); nerr != nil {
				ctx.Log.Error().Err(nerr).Msg("failed to deliver component error response")
			}
		}
		return
	}
	if done {
		r.collectors.remove(messageID)
	}
}
