package directory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Coordinator holds the state shown by a UI and applies operations of an API to it.
// Only one operation runs at a time. Another call while one is running fails with ErrBusy.
type Coordinator struct {
	logger *slog.Logger
	api    *API

	inFlight *semaphore.Weighted

	mu             sync.RWMutex
	state          State
	listeners      map[int]func(State)
	nextListenerID int
}

func NewCoordinator(logger *slog.Logger, api *API) *Coordinator {
	return &Coordinator{
		logger:   logger,
		api:      api,
		inFlight: semaphore.NewWeighted(1),
		state: State{
			Items: []Item{},
		},
		listeners: make(map[int]func(State)),
	}
}

// Snapshot returns a copy of the current state
func (coordinator *Coordinator) Snapshot() State {
	coordinator.mu.RLock()
	defer coordinator.mu.RUnlock()
	return coordinator.state.clone()
}

// Subscribe registers a listener called with a new state after every change.
// The returned function unregisters it.
func (coordinator *Coordinator) Subscribe(listener func(State)) func() {
	coordinator.mu.Lock()
	defer coordinator.mu.Unlock()

	id := coordinator.nextListenerID
	coordinator.nextListenerID++
	coordinator.listeners[id] = listener
	return func() {
		coordinator.mu.Lock()
		defer coordinator.mu.Unlock()
		delete(coordinator.listeners, id)
	}
}

func (coordinator *Coordinator) dispatch(actions ...action) {
	coordinator.mu.Lock()
	for _, a := range actions {
		coordinator.state = reduce(coordinator.state, a)
	}
	state := coordinator.state.clone()
	listeners := make([]func(State), 0, len(coordinator.listeners))
	for _, listener := range coordinator.listeners {
		listeners = append(listeners, listener)
	}
	coordinator.mu.Unlock()

	for _, listener := range listeners {
		listener(state)
	}
}

// run marks the coordinator busy while f runs. The actions returned by f are applied
// only if f succeeds, so a failed operation leaves the items untouched.
func (coordinator *Coordinator) run(
	ctx context.Context,
	operation string,
	failureMessage string,
	f func(context.Context) ([]action, string, error),
) error {
	if !coordinator.inFlight.TryAcquire(1) {
		return fmt.Errorf("%w: %s", ErrBusy, operation)
	}
	defer coordinator.inFlight.Release(1)

	coordinator.dispatch(setLoadingAction{isLoading: true})
	actions, notice, err := f(ctx)
	if err != nil {
		coordinator.logger.ErrorContext(ctx, "Failed an operation",
			"operation", operation,
			"error", err,
		)
		coordinator.dispatch(
			setErrorAction{message: failureMessage},
			setNoticeAction{},
			setLoadingAction{isLoading: false},
		)
		return err
	}

	actions = append(actions,
		setErrorAction{},
		setNoticeAction{message: notice},
		setLoadingAction{isLoading: false},
	)
	coordinator.dispatch(actions...)
	return nil
}

// Refresh replaces the items with the persisted ones.
// If loading fails, the previous items are kept.
func (coordinator *Coordinator) Refresh(ctx context.Context) error {
	return coordinator.run(ctx, "refresh", "Failed to load directory structure",
		func(ctx context.Context) ([]action, string, error) {
			items, err := coordinator.api.GetItems(ctx)
			if err != nil {
				return nil, "", fmt.Errorf("api.GetItems: %w", err)
			}
			return []action{setItemsAction{items: items}}, "", nil
		},
	)
}

func (coordinator *Coordinator) Create(ctx context.Context, name string, kind Kind, parentID *string) (Item, error) {
	var created Item
	err := coordinator.run(ctx, "create", "Failed to create item",
		func(ctx context.Context) ([]action, string, error) {
			var err error
			created, err = coordinator.api.CreateItem(ctx, CreateItemInput{
				Name:     name,
				Kind:     kind,
				ParentID: parentID,
			})
			if err != nil {
				return nil, "", fmt.Errorf("api.CreateItem: %w", err)
			}

			notice := "File created successfully"
			if created.IsFolder() {
				notice = "Folder created successfully"
			}
			return []action{addItemAction{item: created}}, notice, nil
		},
	)
	if err != nil {
		return Item{}, err
	}
	return created, nil
}

func (coordinator *Coordinator) Rename(ctx context.Context, id string, name string) (Item, error) {
	var renamed Item
	err := coordinator.run(ctx, "rename", "Failed to rename item",
		func(ctx context.Context) ([]action, string, error) {
			var err error
			renamed, err = coordinator.api.UpdateItem(ctx, id, name)
			if err != nil {
				return nil, "", fmt.Errorf("api.UpdateItem: %w", err)
			}
			return []action{updateItemAction{
				id:        renamed.ID,
				name:      renamed.Name,
				updatedAt: renamed.UpdatedAt,
			}}, "Item renamed successfully", nil
		},
	)
	if err != nil {
		return Item{}, err
	}
	return renamed, nil
}

// Delete removes an item with its descendants. The IDs removed from the store are
// removed from the snapshot, and the selection is cleared if it was one of them.
func (coordinator *Coordinator) Delete(ctx context.Context, id string) error {
	return coordinator.run(ctx, "delete", "Failed to delete item",
		func(ctx context.Context) ([]action, string, error) {
			removedIDs, err := coordinator.api.DeleteItem(ctx, id)
			if err != nil {
				return nil, "", fmt.Errorf("api.DeleteItem: %w", err)
			}
			return []action{deleteItemsAction{ids: removedIDs}}, "Item deleted successfully", nil
		},
	)
}

// Move changes the parent of an item. A nil parentID moves it to the root.
func (coordinator *Coordinator) Move(ctx context.Context, id string, parentID *string) (Item, error) {
	var moved Item
	err := coordinator.run(ctx, "move", "Failed to move item",
		func(ctx context.Context) ([]action, string, error) {
			var err error
			moved, err = coordinator.api.MoveItem(ctx, id, parentID)
			if err != nil {
				return nil, "", fmt.Errorf("api.MoveItem: %w", err)
			}
			return []action{moveItemAction{
				id:        moved.ID,
				parentID:  moved.ParentID,
				updatedAt: moved.UpdatedAt,
			}}, "Item moved successfully", nil
		},
	)
	if err != nil {
		return Item{}, err
	}
	return moved, nil
}

// Select changes the selected item. A nil id clears the selection.
func (coordinator *Coordinator) Select(id *string) {
	coordinator.dispatch(selectItemAction{id: id})
}

// CanMove validates a drop against the current snapshot
func (coordinator *Coordinator) CanMove(id string, parentID *string) bool {
	coordinator.mu.RLock()
	defer coordinator.mu.RUnlock()
	return CanMove(coordinator.state.Items, id, parentID)
}

// Children returns the children of a folder in the snapshot, folders first.
// A nil parentID returns root items.
func (coordinator *Coordinator) Children(parentID *string) []Item {
	coordinator.mu.RLock()
	defer coordinator.mu.RUnlock()

	if parentID == nil {
		return SortForDisplay(RootsOf(coordinator.state.Items))
	}
	return SortForDisplay(ChildrenOf(coordinator.state.Items, *parentID))
}

// Tree returns the snapshot as a tree
func (coordinator *Coordinator) Tree() []*Node {
	coordinator.mu.RLock()
	defer coordinator.mu.RUnlock()
	return BuildTree(coordinator.state.Items)
}
