package bot

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"emperror.dev/errors"
	wsutil "github.com/diamondburned/arikawa/v3/utils/ws"
	"github.com/getsentry/sentry-go"
	"github.com/urfave/cli/v2"

	"github.com/balt-dev/titanium/bot"
	"github.com/balt-dev/titanium/commands"
	"github.com/balt-dev/titanium/common"
	"github.com/balt-dev/titanium/elements"
	"github.com/balt-dev/titanium/web"
)

var Command = &cli.Command{
	Name:   "bot",
	Usage:  "Run the bot",
	Action: run,
}

func run(c *cli.Context) (err error) {
	wsutil.WSDebug = common.Log.Named("ws").Debug
	wsutil.WSError = func(err error) {
		common.Log.Named("ws").Error(err)
	}

	// set up logger for this section
	log := common.Log.Named("init")

	conf, err := bot.ReadConfig(c.String("config"))
	if err != nil {
		return errors.Wrap(err, "reading configuration")
	}

	// sentry, if enabled
	if conf.Auth.Sentry != "" {
		err = sentry.Init(sentry.ClientOptions{
			Dsn: conf.Auth.Sentry,
		})
		if err != nil {
			return errors.Wrap(err, "initing Sentry")
		}
	}

	b, err := bot.New(conf)
	if err != nil {
		return errors.Wrap(err, "creating bot")
	}
	log.Info("Opened database connection.")

	b.Router.EmbedColor = common.ColourPurple

	commands.Init(b)

	if err := b.LoadElements(context.Background()); err != nil {
		log.Errorf("Error loading elements: %v", err)
	}

	// fetch the table from Tumblr if we don't have it yet
	if _, ok := b.TableImage(elements.DefaultTable); !ok {
		if err := b.SyncTable(context.Background()); err != nil {
			log.Errorf("Error syncing table image: %v", err)
		}
	}

	if conf.Web.Port != "" {
		web.New(b, b.DB.Stats, b.Start).Listen(conf.Web.Port)
	}

	go b.DB.CleanLookups()

	// connect to discord
	if err := b.Router.ShardManager.Open(context.Background()); err != nil {
		return errors.Wrap(err, "connecting to Discord")
	}

	// Defer this to make sure that things are always cleanly shutdown even in the event of a crash
	defer func() {
		b.DB.Pool.Close()
		log.Info("Closed database connection.")
		b.Router.ShardManager.Close()
		log.Info("Disconnected from Discord.")
	}()

	log.Info("Connected to Discord. Press Ctrl-C or send an interrupt signal to stop.")

	s, _ := b.Router.StateFromGuildID(0)
	botUser, err := s.Me()
	if err != nil {
		return errors.Wrap(err, "fetching bot user")
	}
	log.Infof("User: %v#%v (%v)", botUser.Username, botUser.Discriminator, botUser.ID)
	b.Router.Bot = botUser
	// normally creating a Context would do this, but as we set the user above, that doesn't work
	b.Router.Prefixes = append(b.Router.Prefixes, "<@"+botUser.ID.String()+">", "<@!"+botUser.ID.String()+">")

	// sync slash commands *if needed*
	if !conf.Bot.NoSyncCommands {
		if conf.Bot.CommandsGuildID.IsValid() {
			err = b.Router.SyncCommands(conf.Bot.CommandsGuildID)
		} else {
			err = b.Router.SyncCommands()
		}
		if err != nil {
			log.Errorf("Error syncing slash commands: %v", err)
		} else {
			s := "Synced slash commands"
			if conf.Bot.CommandsGuildID.IsValid() {
				s += " in " + fmt.Sprint(conf.Bot.CommandsGuildID)
			}
			log.Infof(s)
		}
	} else {
		log.Infof("Note: not syncing slash commands. Unset no_sync_commands in the config to sync commands")
	}

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	log.Infof("Interrupt signal received. Shutting down...")
	return nil
}
