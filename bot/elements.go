package bot

import (
	"bytes"
	"context"
	"image"
	"os"
	"path/filepath"

	"emperror.dev/errors"

	"github.com/balt-dev/titanium/common"
	"github.com/balt-dev/titanium/elements"
	"github.com/balt-dev/titanium/store"
)

// LoadElements reads elements.toml, loads the table images, and slices and
// loads all icons. The previous registry stays in place if anything fails.
func (bot *Bot) LoadElements(ctx context.Context) error {
	common.Log.Info("Loading elements...")

	path := filepath.Join(bot.Config.Bot.ElementsDir, bot.Config.Bot.ElementsFile)
	registry, err := elements.DecodeFile(path)
	if err != nil {
		return errors.Wrap(err, "decoding elements")
	}

	tables := map[string]image.Image{}
	for name, imgPath := range registry.Tables {
		im, err := bot.loadTableImage(ctx, name, imgPath)
		if err != nil {
			// a missing table image isn't fatal, icons fall back to their files
			common.Log.Warnf("Couldn't load table image %q: %v", name, err)
			continue
		}
		tables[name] = im
	}

	icons, err := elements.SliceAndLoadIcons(registry, elements.LoadOptions{
		Dir:         bot.Config.Bot.ElementsDir,
		ElementSize: image.Pt(bot.Config.Bot.ElementWidth, bot.Config.Bot.ElementHeight),
		Tables:      tables,
	})
	if err != nil {
		return errors.Wrap(err, "loading icons")
	}

	bot.mu.Lock()
	bot.registry = registry
	bot.icons = icons
	bot.tables = tables
	bot.mu.Unlock()

	// rendered icons may be stale now
	if err := bot.Renders.Clear(ctx); err != nil {
		common.Log.Errorf("Error clearing render cache: %v", err)
	}
	if err := bot.Cache.Clear(ctx); err != nil {
		common.Log.Errorf("Error clearing redis cache: %v", err)
	}

	if err := bot.DB.SyncElements(ctx, registry); err != nil {
		common.Log.Errorf("Error mirroring elements to the database: %v", err)
	}

	common.Log.Infof("Loaded %v elements!", registry.Len())
	return nil
}

// loadTableImage loads a table image from disk, refreshing the cached copy.
// Disk wins over the cache so reloading after editing the file takes effect
// immediately; the cache only serves files that aren't on disk yet.
func (bot *Bot) loadTableImage(ctx context.Context, name, imgPath string) (image.Image, error) {
	b, err := os.ReadFile(filepath.Join(bot.Config.Bot.ElementsDir, imgPath))
	if err != nil {
		cached, cacheErr := bot.Cache.Table(ctx, name)
		if cacheErr != nil {
			return nil, errors.Wrap(err, "reading table image")
		}

		im, _, decodeErr := image.Decode(bytes.NewReader(cached))
		if decodeErr != nil {
			return nil, errors.Wrap(err, "reading table image")
		}
		common.Log.Warnf("Table image %q missing on disk, using the cached copy", name)
		return im, nil
	}

	im, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, errors.Wrap(err, "decoding table image")
	}

	if err := bot.Cache.SetTable(ctx, name, b); err != nil {
		common.Log.Errorf("Error caching table %q: %v", name, err)
	}

	return im, nil
}

// SyncTable fetches the table image from Tumblr, saves it over the default
// table's file, and reloads the registry so icons are re-sliced from it.
func (bot *Bot) SyncTable(ctx context.Context) error {
	common.Log.Info("Fetching table image...")

	im, raw, err := bot.Tumblr.FetchTable(ctx, bot.Config.Tumblr.PostID)
	if err != nil {
		return errors.Wrap(err, "fetching table")
	}

	imgPath := "table.png"
	if r := bot.Registry(); r != nil {
		if p, ok := r.Tables[elements.DefaultTable]; ok {
			imgPath = p
		}
	}

	err = os.WriteFile(filepath.Join(bot.Config.Bot.ElementsDir, imgPath), raw, 0o644)
	if err != nil {
		return errors.Wrap(err, "saving table image")
	}

	if err := bot.Cache.SetTable(ctx, elements.DefaultTable, raw); err != nil {
		common.Log.Errorf("Error caching table image: %v", err)
	}

	bot.mu.Lock()
	bot.tables[elements.DefaultTable] = im
	bot.mu.Unlock()

	common.Log.Info("Fetched table image!")

	return bot.LoadElements(ctx)
}

// TableBytes returns a table's encoded image, rendering it if needed.
func (bot *Bot) TableBytes(ctx context.Context, name string) ([]byte, error) {
	if b, err := bot.Renders.Table(ctx, name); err == nil {
		return b, nil
	}
	if b, err := bot.Cache.Table(ctx, name); err == nil {
		_ = bot.Renders.SetTable(ctx, name, b)
		return b, nil
	}

	r := bot.Registry()
	if r == nil {
		return nil, store.ErrNotFound
	}
	imgPath, ok := r.Tables[name]
	if !ok {
		return nil, store.ErrNotFound
	}

	b, err := os.ReadFile(filepath.Join(bot.Config.Bot.ElementsDir, imgPath))
	if err != nil {
		return nil, errors.Wrap(err, "reading table image")
	}

	_ = bot.Renders.SetTable(ctx, name, b)
	return b, nil
}

// IconGIF returns an element's rendered icon, using cached renders when
// possible.
func (bot *Bot) IconGIF(ctx context.Context, name string) ([]byte, error) {
	scale := bot.Config.Bot.IconScale

	if b, err := bot.Renders.Icon(ctx, name, scale); err == nil {
		return b, nil
	}
	if b, err := bot.Cache.Icon(ctx, name, scale); err == nil {
		_ = bot.Renders.SetIcon(ctx, name, scale, b)
		return b, nil
	}

	icon, ok := bot.Icon(name)
	if !ok {
		return nil, store.ErrNotFound
	}

	b, err := icon.RenderGIF(scale)
	if err != nil {
		return nil, errors.Wrap(err, "rendering icon")
	}

	if err := bot.Cache.SetIcon(ctx, name, scale, b); err != nil {
		common.Log.Errorf("Error caching icon for %q: %v", name, err)
	}
	_ = bot.Renders.SetIcon(ctx, name, scale, b)

	return b, nil
}
