package bot

import (
	"os"

	"emperror.dev/errors"
	"github.com/BurntSushi/toml"
	"github.com/diamondburned/arikawa/v3/discord"
)

type Config struct {
	Auth   AuthConfig   `toml:"auth"`
	Bot    BotConfig    `toml:"bot"`
	Tumblr TumblrConfig `toml:"tumblr"`
	Web    WebConfig    `toml:"web"`
	Info   InfoConfig   `toml:"info"`
}

type AuthConfig struct {
	Discord  string `toml:"discord"`
	Postgres string `toml:"postgres"`
	Redis    string `toml:"redis"`
	Sentry   string `toml:"sentry"`

	Tumblr AuthTumblrConfig `toml:"tumblr"`
	Influx AuthInfluxConfig `toml:"influx"`
}

type AuthTumblrConfig struct {
	ConsumerKey    string `toml:"consumer_key"`
	ConsumerSecret string `toml:"consumer_secret"`
	OAuthToken     string `toml:"oauth_token"`
	OAuthSecret    string `toml:"oauth_secret"`
}

type AuthInfluxConfig struct {
	URL          string `toml:"url"`
	Token        string `toml:"token"`
	Organization string `toml:"organization"`
	Database     string `toml:"database"`
}

type BotConfig struct {
	Owner           discord.UserID  `toml:"owner"`
	Prefixes        []string        `toml:"prefixes"`
	Description     string          `toml:"description"`
	CommandsGuildID discord.GuildID `toml:"commands_guild_id"`
	NoSyncCommands  bool            `toml:"no_sync_commands"`

	// ElementsDir holds the icon and table images, ElementsFile the registry.
	ElementsDir  string `toml:"elements_dir"`
	ElementsFile string `toml:"elements_file"`

	// ElementWidth and ElementHeight are the size of one element cell on a
	// table image, without its border.
	ElementWidth  int `toml:"element_width"`
	ElementHeight int `toml:"element_height"`

	// IconScale is the nearest-neighbour factor icons are scaled up by.
	IconScale int `toml:"icon_scale"`

	// NonperiodicPath is the non-periodic table image, relative to ElementsDir.
	NonperiodicPath string `toml:"nonperiodic_path"`

	// NoAutoMigrate specifies if migrations should be done automatically when the bot starts.
	// If this is set to true, migrations must be done manually by running the `./titanium migrate` command.
	NoAutoMigrate bool `toml:"no_auto_migrate"`
}

type TumblrConfig struct {
	Blog   string `toml:"blog"`
	PostID uint64 `toml:"post_id"`
}

type WebConfig struct {
	// Port is the API listen port; empty disables the API.
	Port string `toml:"port"`
}

type InfoConfig struct {
	SupportServer string `toml:"support_server"`
}

func ReadConfig(path string) (c Config, err error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return c, errors.Wrap(err, "read config file")
	}

	err = toml.Unmarshal(b, &c)
	if err != nil {
		return c, errors.Wrap(err, "unmarshal config")
	}

	if len(c.Bot.Prefixes) == 0 {
		c.Bot.Prefixes = []string{"."}
	}
	if c.Bot.ElementsDir == "" {
		c.Bot.ElementsDir = "elements"
	}
	if c.Bot.ElementsFile == "" {
		c.Bot.ElementsFile = "elements.toml"
	}
	if c.Bot.ElementWidth == 0 {
		c.Bot.ElementWidth = 48
	}
	if c.Bot.ElementHeight == 0 {
		c.Bot.ElementHeight = 48
	}
	if c.Bot.IconScale == 0 {
		c.Bot.IconScale = 4
	}
	if c.Bot.NonperiodicPath == "" {
		c.Bot.NonperiodicPath = "nonperiodics.png"
	}
	if c.Tumblr.Blog == "" {
		c.Tumblr.Blog = "elementcattos"
	}

	return c, nil
}
