package main

import (
	"os"

	"github.com/urfave/cli/v2"

	"github.com/balt-dev/titanium/cmd/titanium/bot"
	"github.com/balt-dev/titanium/cmd/titanium/check"
	"github.com/balt-dev/titanium/cmd/titanium/migrate"
	"github.com/balt-dev/titanium/common"
)

var app = &cli.App{
	Name:    "Titanium",
	Usage:   "Discord bot for the Purriodic Table",
	Version: common.Version,

	Flags: []cli.Flag{&cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to the configuration file.",
		Value:   "config.toml",
	}},

	Commands: []*cli.Command{
		bot.Command,
		check.Command,
		migrate.Command,
	},
}

func main() {
	err := app.Run(os.Args)
	if err != nil {
		common.Log.Fatal(err)
	}
}
