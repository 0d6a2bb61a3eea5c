// Package memory provides an in-memory store.
package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/ReneKroon/ttlcache/v2"

	"github.com/balt-dev/titanium/store"
)

var _ store.Store = (*Store)(nil)

const cacheTTL = 10 * time.Minute

type Store struct {
	icons  *ttlcache.Cache
	tables *ttlcache.Cache
}

func New() *Store {
	icons := ttlcache.NewCache()
	_ = icons.SetTTL(cacheTTL)

	tables := ttlcache.NewCache()
	_ = tables.SetTTL(cacheTTL)

	return &Store{icons: icons, tables: tables}
}

func iconKey(name string, scale int) string {
	return fmt.Sprintf("%v:%v", name, scale)
}

func (s *Store) Icon(_ context.Context, name string, scale int) ([]byte, error) {
	v, err := s.icons.Get(iconKey(name, scale))
	if err != nil {
		return nil, store.ErrNotFound
	}
	return v.([]byte), nil
}

func (s *Store) SetIcon(_ context.Context, name string, scale int, data []byte) error {
	return s.icons.Set(iconKey(name, scale), data)
}

func (s *Store) Table(_ context.Context, name string) ([]byte, error) {
	v, err := s.tables.Get(name)
	if err != nil {
		return nil, store.ErrNotFound
	}
	return v.([]byte), nil
}

func (s *Store) SetTable(_ context.Context, name string, data []byte) error {
	return s.tables.Set(name, data)
}

func (s *Store) Clear(context.Context) error {
	if err := s.icons.Purge(); err != nil {
		return err
	}
	return s.tables.Purge()
}
