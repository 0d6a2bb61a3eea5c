// Package redis provides a store backed by redis, so cached renders survive
// bot restarts.
package redis

import (
	"context"
	"fmt"
	"strconv"

	"emperror.dev/errors"
	"github.com/mediocregopher/radix/v4"

	"github.com/balt-dev/titanium/store"
)

var _ store.Store = (*Store)(nil)

// expiry of cached renders, in seconds (24 hours)
const expirySeconds = 24 * 60 * 60

type Store struct {
	client radix.Client
}

func New(url string) (*Store, error) {
	client, err := (&radix.PoolConfig{}).New(context.Background(), "tcp", url)
	if err != nil {
		return nil, errors.Wrap(err, "creating radix client")
	}

	return &Store{client: client}, nil
}

// NewWithClient wraps an existing redis client.
func NewWithClient(client radix.Client) *Store {
	return &Store{client: client}
}

func iconKey(name string, scale int) string {
	return fmt.Sprintf("titanium:icons:%v:%v", name, scale)
}

func tableKey(name string) string {
	return "titanium:tables:" + name
}

func (s *Store) get(ctx context.Context, key string) ([]byte, error) {
	mb := radix.Maybe{Rcv: new([]byte)}

	err := s.client.Do(ctx, radix.Cmd(&mb, "GET", key))
	if err != nil {
		return nil, err
	}
	if mb.Null {
		return nil, store.ErrNotFound
	}

	return *mb.Rcv.(*[]byte), nil
}

func (s *Store) set(ctx context.Context, key string, data []byte) error {
	return s.client.Do(ctx, radix.FlatCmd(nil, "SET", key, data, "EX", strconv.Itoa(expirySeconds)))
}

func (s *Store) Icon(ctx context.Context, name string, scale int) ([]byte, error) {
	return s.get(ctx, iconKey(name, scale))
}

func (s *Store) SetIcon(ctx context.Context, name string, scale int, data []byte) error {
	return s.set(ctx, iconKey(name, scale), data)
}

func (s *Store) Table(ctx context.Context, name string) ([]byte, error) {
	return s.get(ctx, tableKey(name))
}

func (s *Store) SetTable(ctx context.Context, name string, data []byte) error {
	return s.set(ctx, tableKey(name), data)
}

// Clear deletes every titanium key.
func (s *Store) Clear(ctx context.Context) error {
	scanner := (radix.ScannerConfig{Pattern: "titanium:*"}).New(s.client)

	var key string
	for scanner.Next(ctx, &key) {
		if err := s.client.Do(ctx, radix.Cmd(nil, "DEL", key)); err != nil {
			return errors.Wrap(err, "deleting key")
		}
	}

	return errors.Wrap(scanner.Close(), "closing scanner")
}
