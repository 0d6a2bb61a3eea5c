package bot

import (
	"context"
	"image"
	"sync"
	"time"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/starshine-sys/bcr"

	"github.com/balt-dev/titanium/db"
	"github.com/balt-dev/titanium/db/stats"
	"github.com/balt-dev/titanium/elements"
	"github.com/balt-dev/titanium/store"
	"github.com/balt-dev/titanium/store/memory"
	"github.com/balt-dev/titanium/store/redis"
	"github.com/balt-dev/titanium/tumblr"
)

const Intents = gateway.IntentGuilds |
	gateway.IntentGuildMessages |
	gateway.IntentDirectMessages

// Bot is the bot's shared state: the command router, database, caches, and
// the element registry.
type Bot struct {
	Router *bcr.Router
	DB     *db.DB

	Config Config
	Tumblr *tumblr.Client

	// Cache holds rendered icons and encoded table images.
	// Renders holds the same but in process memory, checked first.
	Cache   store.Store
	Renders store.Store

	Start time.Time

	mu       sync.RWMutex
	registry *elements.Registry
	icons    map[string]*elements.Icon
	tables   map[string]image.Image
}

// New creates a new Bot. The element registry is not loaded yet; call
// LoadElements before connecting.
func New(c Config) (*Bot, error) {
	r, err := bcr.NewWithIntents(
		c.Auth.Discord,
		[]discord.UserID{c.Bot.Owner},
		c.Bot.Prefixes,
		Intents,
	)
	if err != nil {
		return nil, errors.Wrap(err, "creating router")
	}

	bot := &Bot{
		Router: r,
		Config: c,
		Start:  time.Now().UTC(),
		Tumblr: tumblr.NewClient(c.Tumblr.Blog, c.Auth.Tumblr.ConsumerKey),
		icons:  map[string]*elements.Icon{},
		tables: map[string]image.Image{},
	}

	bot.DB, err = db.New(c.Auth.Postgres, c.Auth.Redis, !c.Bot.NoAutoMigrate)
	if err != nil {
		return nil, errors.Wrap(err, "creating database")
	}

	if c.Auth.Influx.URL != "" {
		bot.DB.Stats = stats.New(c.Auth.Influx.URL, c.Auth.Influx.Token,
			c.Auth.Influx.Organization, c.Auth.Influx.Database)
	}

	bot.Cache = redis.NewWithClient(bot.DB.Redis)
	bot.Renders = memory.New()

	return bot, nil
}

// Registry returns the current element registry. It is nil before the first
// LoadElements.
func (bot *Bot) Registry() *elements.Registry {
	bot.mu.RLock()
	defer bot.mu.RUnlock()
	return bot.registry
}

// Icon returns an element's loaded icon.
func (bot *Bot) Icon(name string) (*elements.Icon, bool) {
	bot.mu.RLock()
	defer bot.mu.RUnlock()
	icon, ok := bot.icons[name]
	return icon, ok
}

// LookupCounts returns the most looked up elements, up to limit.
func (bot *Bot) LookupCounts(ctx context.Context, limit uint64) ([]db.LookupCount, error) {
	return bot.DB.LookupCounts(ctx, limit)
}

// TableImage returns a table's image.
func (bot *Bot) TableImage(name string) (image.Image, bool) {
	bot.mu.RLock()
	defer bot.mu.RUnlock()
	im, ok := bot.tables[name]
	return im, ok
}
