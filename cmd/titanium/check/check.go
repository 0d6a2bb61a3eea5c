package check

import (
	"github.com/urfave/cli/v2"

	"github.com/balt-dev/titanium/common"
	"github.com/balt-dev/titanium/elements"
)

var Command = &cli.Command{
	Name:   "check",
	Usage:  "Validate the element registry file",
	Action: run,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "file",
			Aliases: []string{"f"},
			Usage:   "Path to the registry file.",
			Value:   "elements/elements.toml",
		},
		&cli.BoolFlag{
			Name:    "write",
			Aliases: []string{"w"},
			Usage:   "Rewrite the file in canonical form.",
		},
	},
}

func run(c *cli.Context) error {
	path := c.String("file")

	registry, err := elements.DecodeFile(path)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	common.Log.Infof("%v: %v elements OK.", path, registry.Len())

	if c.Bool("write") {
		if err := registry.EncodeFile(path); err != nil {
			return cli.Exit(err.Error(), 1)
		}
		common.Log.Infof("Rewrote %v in canonical form.", path)
	}

	return nil
}
