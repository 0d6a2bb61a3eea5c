package migrate

import (
	"github.com/urfave/cli/v2"

	"github.com/balt-dev/titanium/bot"
	"github.com/balt-dev/titanium/common"
	"github.com/balt-dev/titanium/db"
)

var Command = &cli.Command{
	Name:   "migrate",
	Usage:  "Run migrations manually",
	Action: run,
	Flags: []cli.Flag{&cli.BoolFlag{
		Name:    "force",
		Aliases: []string{"f"},
		Usage:   "Run migrations whether or not no_auto_migrate is set in the config.",
		Value:   false,
	}},
}

func run(c *cli.Context) error {
	conf, err := bot.ReadConfig(c.String("config"))
	if err != nil {
		common.Log.Fatalf("Reading configuration: %v", err)
	}

	if conf.Auth.Postgres == "" {
		return cli.Exit("No database url set in the config file.", 1)
	}

	if !conf.Bot.NoAutoMigrate && !c.Bool("force") {
		return cli.Exit("Migrations are run automatically, and the --force flag is not set.", 1)
	}

	err = db.RunMigrations(conf.Auth.Postgres)
	if err != nil {
		common.Log.Fatalf("Running migrations: %v", err)
	}

	common.Log.Info("Successfully ran migrations!")
	return nil
}
