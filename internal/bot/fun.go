package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// speakCommand echoes user input back verbatim.
type speakCommand struct{}

func (speakCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "speak",
		Description: "Make Maeve say anything you want!",
		Options: []*discordgo.ApplicationCommandOption{{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "input",
			Description: "The text you want Maeve to say",
			Required:    true,
		}},
	}
}

func (speakCommand) Execute(ctx *Context) error {
	return ctx.Reply(fmt.Sprintf("Maeve says: \"%s\"", ctx.StringOption("input")), false)
}

// podBayDoorsCommand is the canned HAL 9000 reply.
type podBayDoorsCommand struct{}

func (podBayDoorsCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "pod-bay-doors",
		Description: "Open the pod bay doors, MAEVE.",
	}
}

func (podBayDoorsCommand) Execute(ctx *Context) error {
	return ctx.Reply(fmt.Sprintf("I'm sorry, %s, I'm afraid I can't do that.", ctx.Mention()), false)
}
