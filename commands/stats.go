package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/bcr"

	"github.com/balt-dev/titanium/common"
)

func (bot *Bot) stats(ctx *bcr.Context) (err error) {
	bot.DB.Stats.IncCommand()

	counts, err := bot.DB.LookupCounts(context.Background(), 10)
	if err != nil {
		return bot.ReportError(ctx, err)
	}

	if len(counts) == 0 {
		_, err = ctx.Send("No elements have been looked up yet!")
		return
	}

	var b strings.Builder
	for i, c := range counts {
		fmt.Fprintf(&b, "%v. **%v** (%v lookups)\n", i+1, c.Element, c.Count)
	}

	_, err = ctx.Send("", discord.Embed{
		Title:       "Most looked up elements",
		Description: b.String(),
		Color:       common.ColourPurple,
	})
	return
}
