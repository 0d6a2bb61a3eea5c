package commands

import (
	"bytes"
	"context"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/utils/sendpart"
	"github.com/starshine-sys/bcr"

	"github.com/balt-dev/titanium/common"
	"github.com/balt-dev/titanium/elements"
)

func (bot *Bot) element(ctx *bcr.Context) (err error) {
	bot.DB.Stats.IncCommand()

	query := strings.TrimSpace(ctx.RawArgs)
	if query == "" {
		return bot.sendTable(ctx, "The Purriodic Table", elements.DefaultTable)
	}
	if common.Contains([]string{"nonperiodic", "nonperiodics"}, strings.ToLower(query)) {
		return bot.nonperiodic(ctx)
	}

	r := bot.Registry()
	if r == nil {
		return bot.Warn(ctx, "No elements are loaded yet! Try again in a bit.")
	}

	el, ok := r.Lookup(query)
	if !ok {
		return bot.Warn(ctx, fmt.Sprintf(
			"No element found with name, symbol, or atomic number `%v`!",
			elements.SanitizeQuery(query)))
	}

	return bot.sendElement(ctx, el)
}

func (bot *Bot) sendElement(ctx *bcr.Context, el *elements.Element) error {
	e := discord.Embed{
		Title: el.Name,
		Color: discord.Color(el.EmbedColor),
		Fields: []discord.EmbedField{
			{Name: "Symbol", Value: el.Symbol, Inline: true},
		},
	}

	// negative atomic numbers mean the element doesn't have one
	if el.AtomicNumber >= 0 {
		e.Fields = append(e.Fields, discord.EmbedField{
			Name:   "Atomic Number",
			Value:  strconv.Itoa(el.AtomicNumber),
			Inline: true,
		})
	}

	e.Fields = append(e.Fields,
		discord.EmbedField{Name: "Pronouns", Value: el.Pronouns, Inline: true},
		discord.EmbedField{Name: "Author", Value: el.Author},
	)

	gif, err := bot.IconGIF(context.Background(), el.Name)
	if err != nil {
		return bot.ReportError(ctx, errors.Wrap(err, "rendering icon"))
	}

	filename := iconFilename(el.Name)
	e.Image = &discord.EmbedImage{URL: "attachment://" + filename}

	bot.DB.Stats.RegisterLookup(el.Name)
	go func() {
		err := bot.DB.RecordLookup(context.Background(), el.Name, ctx.Author.ID, ctx.Message.ChannelID)
		if err != nil {
			common.Log.Errorf("Error recording lookup: %v", err)
		}
	}()

	return bot.replyFile(ctx, e, filename, gif)
}

func (bot *Bot) sendTable(ctx *bcr.Context, title, name string) error {
	b, err := bot.TableBytes(context.Background(), name)
	if err != nil {
		return bot.ReportError(ctx, errors.Wrap(err, "getting table image"))
	}

	e := discord.Embed{
		Title: title,
		Image: &discord.EmbedImage{URL: "attachment://table.png"},
	}
	return bot.replyFile(ctx, e, "table.png", b)
}

func (bot *Bot) nonperiodic(ctx *bcr.Context) (err error) {
	bot.DB.Stats.IncCommand()

	b, err := bot.Renders.Table(context.Background(), "nonperiodic")
	if err != nil {
		b, err = os.ReadFile(filepath.Join(bot.Config.Bot.ElementsDir, bot.Config.Bot.NonperiodicPath))
		if err != nil {
			return bot.ReportError(ctx, errors.Wrap(err, "reading non-periodic table"))
		}
		_ = bot.Renders.SetTable(context.Background(), "nonperiodic", b)
	}

	e := discord.Embed{
		Title: "The Non-Purriodic Table",
		Image: &discord.EmbedImage{URL: "attachment://table.png"},
	}
	return bot.replyFile(ctx, e, "table.png", b)
}

// replyFile replies to the invoking message with an embed and an attachment,
// without pinging anyone.
func (bot *Bot) replyFile(ctx *bcr.Context, embed discord.Embed, filename string, data []byte) error {
	_, err := ctx.State.SendMessageComplex(ctx.Message.ChannelID, api.SendMessageData{
		Embeds: []discord.Embed{embed},
		Files: []sendpart.File{{
			Name:   filename,
			Reader: bytes.NewReader(data),
		}},
		AllowedMentions: &api.AllowedMentions{
			Parse: []api.AllowedMentionType{},
		},
		Reference: &discord.MessageReference{
			MessageID: ctx.Message.ID,
		},
	})
	return err
}

// iconFilename derives a stable attachment name for an element's icon.
func iconFilename(name string) string {
	h := fnv.New64a()
	h.Write([]byte(name))
	return fmt.Sprintf("%#x.gif", h.Sum64())
}
