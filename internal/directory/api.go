package directory

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/google/uuid"
)

const maxIDAttempts = 10

// API reads the persisted items, applies one operation and saves them back in a transaction.
// The persisted collection is the source of truth, so every operation validates against it.
type API struct {
	logger *slog.Logger
	store  *Store
	newID  func() string
}

type APIOption func(*API)

func WithIDGenerator(newID func() string) APIOption {
	return func(api *API) {
		api.newID = newID
	}
}

func NewAPI(logger *slog.Logger, store *Store, options ...APIOption) *API {
	api := &API{
		logger: logger,
		store:  store,
		newID:  uuid.NewString,
	}
	for _, option := range options {
		option(api)
	}
	return api
}

func (api *API) GetItems(ctx context.Context) ([]Item, error) {
	items, err := api.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("store.Load: %w", err)
	}
	return items, nil
}

type CreateItemInput struct {
	Name     string
	Kind     Kind
	ParentID *string
}

func (api *API) CreateItem(ctx context.Context, input CreateItemInput) (Item, error) {
	name, err := normalizeName(input.Name)
	if err != nil {
		return Item{}, err
	}
	if err := validateKind(input.Kind); err != nil {
		return Item{}, err
	}

	var created Item
	err = api.store.transaction(ctx, func(ctx context.Context) error {
		items, err := api.store.read(ctx)
		if err != nil {
			return fmt.Errorf("store.read: %w", err)
		}
		if input.ParentID != nil {
			parent, ok := Find(items, *input.ParentID)
			if !ok {
				return fmt.Errorf("%w: parent %s", ErrNotFound, *input.ParentID)
			}
			if !parent.IsFolder() {
				return fmt.Errorf("%w: parent %s is not a folder", ErrInvalidMove, parent.ID)
			}
		}

		id, err := api.freshID(items)
		if err != nil {
			return fmt.Errorf("api.freshID: %w", err)
		}
		now := api.store.now()
		created = Item{
			ID:        id,
			Name:      name,
			Kind:      input.Kind,
			ParentID:  cloneID(input.ParentID),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := api.store.Save(ctx, append(items, created)); err != nil {
			return fmt.Errorf("store.Save: %w", err)
		}
		return nil
	})
	if err != nil {
		return Item{}, err
	}

	api.logger.InfoContext(ctx, "Created an item",
		"id", created.ID,
		"name", created.Name,
		"kind", created.Kind,
		"parentId", displayParentID(created.ParentID),
	)
	return created, nil
}

// UpdateItem renames an item
func (api *API) UpdateItem(ctx context.Context, id string, name string) (Item, error) {
	name, err := normalizeName(name)
	if err != nil {
		return Item{}, err
	}

	var updated Item
	err = api.store.transaction(ctx, func(ctx context.Context) error {
		items, err := api.store.read(ctx)
		if err != nil {
			return fmt.Errorf("store.read: %w", err)
		}
		index := indexOf(items, id)
		if index < 0 {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}

		items[index].Name = name
		items[index].touch(api.store.now())
		updated = items[index]
		if err := api.store.Save(ctx, items); err != nil {
			return fmt.Errorf("store.Save: %w", err)
		}
		return nil
	})
	if err != nil {
		return Item{}, err
	}

	api.logger.InfoContext(ctx, "Renamed an item",
		"id", updated.ID,
		"name", updated.Name,
	)
	return updated, nil
}

// DeleteItem removes an item and all of its descendants, and returns the IDs of removed items.
// The item itself comes first, followed by its descendants in ID order.
func (api *API) DeleteItem(ctx context.Context, id string) ([]string, error) {
	var removedIDs []string
	err := api.store.transaction(ctx, func(ctx context.Context) error {
		items, err := api.store.read(ctx)
		if err != nil {
			return fmt.Errorf("store.read: %w", err)
		}
		if _, ok := Find(items, id); !ok {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}

		descendantIDs := DescendantIDs(items, id)
		removedIDs = append([]string{id}, slices.Sorted(maps.Keys(descendantIDs))...)
		remaining := slices.DeleteFunc(items, func(item Item) bool {
			if item.ID == id {
				return true
			}
			_, ok := descendantIDs[item.ID]
			return ok
		})
		if err := api.store.Save(ctx, remaining); err != nil {
			return fmt.Errorf("store.Save: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	api.logger.InfoContext(ctx, "Deleted an item",
		"id", id,
		"removedIds", removedIDs,
	)
	return removedIDs, nil
}

// MoveItem changes the parent of an item. A nil parentID moves it to the root.
func (api *API) MoveItem(ctx context.Context, id string, parentID *string) (Item, error) {
	var moved Item
	err := api.store.transaction(ctx, func(ctx context.Context) error {
		items, err := api.store.read(ctx)
		if err != nil {
			return fmt.Errorf("store.read: %w", err)
		}
		if err := CheckMove(items, id, parentID); err != nil {
			return err
		}

		index := indexOf(items, id)
		items[index].ParentID = cloneID(parentID)
		items[index].touch(api.store.now())
		moved = items[index]
		if err := api.store.Save(ctx, items); err != nil {
			return fmt.Errorf("store.Save: %w", err)
		}
		return nil
	})
	if err != nil {
		return Item{}, err
	}

	api.logger.InfoContext(ctx, "Moved an item",
		"id", moved.ID,
		"parentId", displayParentID(moved.ParentID),
	)
	return moved, nil
}

func (api *API) freshID(items []Item) (string, error) {
	for range maxIDAttempts {
		id := api.newID()
		if indexOf(items, id) < 0 {
			return id, nil
		}
	}
	return "", fmt.Errorf("no unused id after %d attempts", maxIDAttempts)
}
