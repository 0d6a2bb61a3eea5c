// Package commands implements the bot's text commands.
package commands

import (
	"github.com/starshine-sys/bcr"

	"github.com/balt-dev/titanium/bot"
)

// Bot ...
type Bot struct {
	*bot.Bot
}

// Init ...
func Init(base *bot.Bot) {
	b := &Bot{base}

	b.Router.AddCommand(&bcr.Command{
		Name:    "element",
		Aliases: []string{"e", "el", "elem", "t", "tab", "table"},
		Summary: "Get an element by their name, symbol, or atomic number.",
		Usage:   "[query]",

		Command: b.element,
	})

	b.Router.AddCommand(&bcr.Command{
		Name:    "nonperiodic",
		Aliases: []string{"nonperiodics", "np"},
		Summary: "Show the non-periodic table.",

		Command: b.nonperiodic,
	})

	b.Router.AddCommand(&bcr.Command{
		Name:    "sync",
		Summary: "Sync the table image from Tumblr and reload all elements. Owner-only.",

		Command: b.sync,
	})

	b.Router.AddCommand(&bcr.Command{
		Name:    "reload",
		Summary: "Reload the element registry from disk. Owner-only.",

		Command: b.reload,
	})

	t := b.Router.AddCommand(&bcr.Command{
		Name:    "toml",
		Summary: "Send or receive the element registry file. Owner-only.",

		Command: b.tomlGet,
	})

	t.AddSubcommand(&bcr.Command{
		Name:    "get",
		Summary: "Send the element registry file. Owner-only.",

		Command: b.tomlGet,
	})

	t.AddSubcommand(&bcr.Command{
		Name:    "set",
		Summary: "Replace the element registry file with an attachment. Owner-only.",

		Command: b.tomlSet,
	})

	b.Router.AddCommand(&bcr.Command{
		Name:    "ping",
		Summary: "Show the bot's latency and resource usage.",

		Command: b.ping,
	})

	b.Router.AddCommand(&bcr.Command{
		Name:    "stats",
		Summary: "Show the most looked up elements.",

		Command: b.stats,
	})

	b.Router.AddCommand(&bcr.Command{
		Name:    "help",
		Summary: "Show information about the bot, or a specific command.",
		Usage:   "[command]",

		Command: b.help,
	})
}

// isOwner reports whether the invoking user owns the bot. Commands gated on
// this return silently for everyone else, like unknown commands do.
func (bot *Bot) isOwner(ctx *bcr.Context) bool {
	return ctx.Author.ID == bot.Config.Bot.Owner
}
