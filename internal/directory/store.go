package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/michael-freling/file-explorer/internal/config"
)

// Store loads and saves the whole item collection as a single record of a Storage
type Store struct {
	logger  *slog.Logger
	storage Storage
	key     string

	readLatency  time.Duration
	writeLatency time.Duration
	now          func() time.Time
}

type StoreOption func(*Store)

func WithLatency(read time.Duration, write time.Duration) StoreOption {
	return func(store *Store) {
		store.readLatency = read
		store.writeLatency = write
	}
}

func WithClock(now func() time.Time) StoreOption {
	return func(store *Store) {
		store.now = now
	}
}

func NewStore(logger *slog.Logger, storage Storage, key string, options ...StoreOption) *Store {
	store := &Store{
		logger:  logger,
		storage: storage,
		key:     key,
		now:     time.Now,
	}
	for _, option := range options {
		option(store)
	}
	return store
}

func StoreFromConfig(logger *slog.Logger, conf config.Config, storage Storage) *Store {
	return NewStore(logger, storage, conf.Storage.Key,
		WithLatency(conf.Storage.ReadLatency, conf.Storage.WriteLatency),
	)
}

// Load returns the persisted items. The seed items are written and returned if
// nothing has been persisted yet. A corrupt record is treated as an empty collection.
func (store *Store) Load(ctx context.Context) ([]Item, error) {
	if err := simulateLatency(ctx, store.readLatency); err != nil {
		return nil, err
	}
	return store.read(ctx)
}

// Save overwrites the persisted items
func (store *Store) Save(ctx context.Context, items []Item) error {
	if err := simulateLatency(ctx, store.writeLatency); err != nil {
		return err
	}
	return store.write(ctx, items)
}

// Reset overwrites the persisted items with the seed items
func (store *Store) Reset(ctx context.Context) ([]Item, error) {
	items := SeedItems(store.now())
	if err := store.Save(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (store *Store) read(ctx context.Context) ([]Item, error) {
	value, found, err := store.storage.GetItem(ctx, store.key)
	if err != nil {
		return nil, fmt.Errorf("%w: storage.GetItem: %w", ErrStoreUnavailable, err)
	}
	if !found {
		items := SeedItems(store.now())
		if err := store.write(ctx, items); err != nil {
			return nil, err
		}
		store.logger.InfoContext(ctx, "Seeded an item store",
			"key", store.key,
			"count", len(items),
		)
		return items, nil
	}

	var items []Item
	if err := json.Unmarshal([]byte(value), &items); err != nil {
		store.logger.WarnContext(ctx, "Ignoring a corrupt item store",
			"key", store.key,
			"error", err,
		)
		return []Item{}, nil
	}
	if items == nil {
		items = []Item{}
	}
	return items, nil
}

func (store *Store) write(ctx context.Context, items []Item) error {
	if items == nil {
		items = []Item{}
	}
	value, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}
	if err := store.storage.SetItem(ctx, store.key, string(value)); err != nil {
		return fmt.Errorf("%w: storage.SetItem: %w", ErrStoreUnavailable, err)
	}
	return nil
}

// transaction runs f atomically against the storage. Errors which don't come from
// this package, like a failed commit, are reported as ErrStoreUnavailable.
func (store *Store) transaction(ctx context.Context, f func(context.Context) error) error {
	err := store.storage.Transaction(ctx, f)
	if err == nil || isKnownError(err) {
		return err
	}
	return fmt.Errorf("%w: storage.Transaction: %w", ErrStoreUnavailable, err)
}

func simulateLatency(ctx context.Context, latency time.Duration) error {
	if latency <= 0 {
		return nil
	}
	timer := time.NewTimer(latency)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, ctx.Err())
	case <-timer.C:
		return nil
	}
}
