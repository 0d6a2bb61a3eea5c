package commands

import (
	"fmt"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/bcr"

	"github.com/balt-dev/titanium/common"
)

func (bot *Bot) help(ctx *bcr.Context) (err error) {
	// help for commands
	if len(ctx.Args) > 0 {
		return ctx.Help(ctx.Args)
	}

	desc := bot.Config.Bot.Description
	if desc == "" {
		desc = fmt.Sprintf("%v keeps track of the Purriodic Table and its elements.", ctx.Bot.Username)
	}

	e := discord.Embed{
		Title:       "Help",
		Description: desc,
		Color:       common.ColourPurple,

		Fields: []discord.EmbedField{
			{
				Name:  "Elements",
				Value: "`element`: look up an element by name, symbol, or atomic number, or show the whole table\n\n`nonperiodic`: show the non-periodic table\n\n`stats`: show the most looked up elements",
			},
			{
				Name:  "Info commands",
				Value: "`help`: show this help\n\n`ping`: show the bot's latency",
			},
		},
	}

	if bot.Config.Info.SupportServer != "" {
		e.Fields = append(e.Fields, discord.EmbedField{
			Name:  "Support",
			Value: fmt.Sprintf("Use this link to join the support server: %v", bot.Config.Info.SupportServer),
		})
	}

	_, err = ctx.Send("", e)
	return
}
