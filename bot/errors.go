package bot

import (
	"fmt"
	"time"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/starshine-sys/bcr"

	"github.com/balt-dev/titanium/common"
)

// ReportError reports an internal error to Sentry and tells the user.
func (bot *Bot) ReportError(ctx *bcr.Context, err error) error {
	common.Log.Errorf("Error in %v: %v", ctx.Command, err)

	if bot.Config.Auth.Sentry == "" {
		embed := discord.Embed{
			Title: "Internal error occurred",
			Description: fmt.Sprintf("An internal error has occurred. "+
				"If this issue persists, please contact the developer "+
				"in the [support server](%v).", bot.Config.Info.SupportServer),
			Color:     common.ColourRed,
			Timestamp: discord.NowTimestamp(),
		}

		return bot.Warn(ctx, "", embed)
	}

	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		if ctx.Author.ID.IsValid() {
			scope.SetUser(sentry.User{ID: ctx.Author.ID.String()})
		}
	})

	hub.AddBreadcrumb(&sentry.Breadcrumb{
		Data: map[string]any{
			"user":    ctx.Author.ID,
			"channel": ctx.Channel.ID,
			"command": ctx.Command,
		},
		Level:     sentry.LevelError,
		Timestamp: time.Now().UTC(),
	}, nil)

	id := hub.CaptureException(err)
	if id == nil {
		uid := uuid.New().String()
		id = (*sentry.EventID)(&uid)
	}

	return bot.Warn(ctx, fmt.Sprintf("Error code: ``%v``", string(*id)),
		discord.Embed{
			Title: "Internal error occurred",
			Description: fmt.Sprintf("An internal error has occurred. "+
				"If this issue persists, please contact the developer "+
				"in the [support server](%v) with the error code above.", bot.Config.Info.SupportServer),
			Color:     common.ColourRed,
			Timestamp: discord.NowTimestamp(),
			Footer: &discord.EmbedFooter{
				Text: string(*id),
			},
		})
}

// Warn reacts to the invoking message with ⚠️ and replies without pinging
// anyone. Used for user-facing errors like a failed lookup.
func (bot *Bot) Warn(ctx *bcr.Context, content string, embeds ...discord.Embed) error {
	if err := ctx.State.React(ctx.Message.ChannelID, ctx.Message.ID, discord.APIEmoji("⚠️")); err != nil {
		common.Log.Errorf("Error adding reaction: %v", err)
	}

	_, err := ctx.State.SendMessageComplex(ctx.Message.ChannelID, api.SendMessageData{
		Content: common.TruncateMessage(content),
		Embeds:  embeds,
		AllowedMentions: &api.AllowedMentions{
			Parse: []api.AllowedMentionType{},
		},
		Reference: &discord.MessageReference{
			MessageID: ctx.Message.ID,
		},
	})
	return err
}
