package commands

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/utils/sendpart"
	"github.com/starshine-sys/bcr"

	"github.com/balt-dev/titanium/elements"
)

func (bot *Bot) sync(ctx *bcr.Context) (err error) {
	if !bot.isOwner(ctx) {
		return nil
	}
	bot.DB.Stats.IncCommand()

	if err := bot.SyncTable(context.Background()); err != nil {
		return bot.ReportError(ctx, err)
	}

	_, err = ctx.Send("Synced image!")
	return
}

func (bot *Bot) reload(ctx *bcr.Context) (err error) {
	if !bot.isOwner(ctx) {
		return nil
	}
	bot.DB.Stats.IncCommand()

	if err := bot.LoadElements(context.Background()); err != nil {
		// usually a schema problem in the registry file, so show it in full
		return bot.Warn(ctx, err.Error())
	}

	_, err = ctx.Sendf("Reloaded %v elements!", bot.Registry().Len())
	return
}

func (bot *Bot) tomlGet(ctx *bcr.Context) (err error) {
	if !bot.isOwner(ctx) {
		return nil
	}
	bot.DB.Stats.IncCommand()

	b, err := os.ReadFile(filepath.Join(bot.Config.Bot.ElementsDir, bot.Config.Bot.ElementsFile))
	if err != nil {
		return bot.ReportError(ctx, errors.Wrap(err, "reading registry file"))
	}

	_, err = ctx.State.SendMessageComplex(ctx.Message.ChannelID, api.SendMessageData{
		Files: []sendpart.File{{
			Name:   bot.Config.Bot.ElementsFile,
			Reader: bytes.NewReader(b),
		}},
		AllowedMentions: &api.AllowedMentions{
			Parse: []api.AllowedMentionType{},
		},
		Reference: &discord.MessageReference{
			MessageID: ctx.Message.ID,
		},
	})
	return
}

func (bot *Bot) tomlSet(ctx *bcr.Context) (err error) {
	if !bot.isOwner(ctx) {
		return nil
	}
	bot.DB.Stats.IncCommand()

	if len(ctx.Message.Attachments) == 0 {
		return bot.Warn(ctx, "Attach the new registry file to your message!")
	}

	b, err := bot.download(context.Background(), ctx.Message.Attachments[0].URL)
	if err != nil {
		return bot.ReportError(ctx, errors.Wrap(err, "downloading attachment"))
	}

	registry, err := elements.Decode(b)
	if err != nil {
		return bot.Warn(ctx, err.Error())
	}

	// rewrite in canonical form rather than saving the upload as-is
	err = registry.EncodeFile(filepath.Join(bot.Config.Bot.ElementsDir, bot.Config.Bot.ElementsFile))
	if err != nil {
		return bot.ReportError(ctx, errors.Wrap(err, "saving registry file"))
	}

	if err := bot.LoadElements(context.Background()); err != nil {
		return bot.Warn(ctx, err.Error())
	}

	_, err = ctx.Sendf("Saved %v elements!", registry.Len())
	return
}

func (bot *Bot) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "creating request")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "doing request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("unexpected status %v", resp.Status)
	}

	return io.ReadAll(resp.Body)
}
