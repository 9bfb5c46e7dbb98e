package frontend

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/michael-freling/file-explorer/internal/directory"
	"github.com/wailsapp/wails/v3/pkg/application"
)

type Item struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	ParentID  string    `json:"parentId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Children  []Item    `json:"children"`
}

type itemConverter struct {
}

func newItemConverter() itemConverter {
	return itemConverter{}
}

func (converter itemConverter) convertItem(item directory.Item) Item {
	parentID := ""
	if item.ParentID != nil {
		parentID = *item.ParentID
	}
	return Item{
		ID:        item.ID,
		Name:      item.Name,
		Type:      string(item.Kind),
		ParentID:  parentID,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

func (converter itemConverter) convertNodes(nodes []*directory.Node) []Item {
	result := make([]Item, 0, len(nodes))
	for _, node := range nodes {
		item := converter.convertItem(node.Item)
		if len(node.Children) > 0 {
			item.Children = converter.convertNodes(node.Children)
		}
		result = append(result, item)
	}
	return result
}

// optionalID converts an ID from a UI, where an empty string means the root or no selection
func optionalID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}

type DirectoryService struct {
	logger      *slog.Logger
	coordinator *directory.Coordinator
}

func NewDirectoryService(logger *slog.Logger, coordinator *directory.Coordinator) *DirectoryService {
	return &DirectoryService{
		logger:      logger,
		coordinator: coordinator,
	}
}

// OnStartup loads the items in the background so that a window is shown without waiting for the store
func (service *DirectoryService) OnStartup(ctx context.Context, options application.ServiceOptions) error {
	go func() {
		if err := service.coordinator.Refresh(ctx); err != nil {
			service.logger.ErrorContext(ctx, "Failed to load items on startup", "error", err)
		}
	}()
	return nil
}

type ReadDirectoryTreeResponse struct {
	Items      []Item `json:"items"`
	SelectedID string `json:"selectedId"`
	IsLoading  bool   `json:"isLoading"`
	Error      string `json:"error"`
	Notice     string `json:"notice"`
}

func (service *DirectoryService) ReadDirectoryTree() ReadDirectoryTreeResponse {
	state := service.coordinator.Snapshot()

	selectedID := ""
	if state.SelectedID != nil {
		selectedID = *state.SelectedID
	}
	return ReadDirectoryTreeResponse{
		Items:      newItemConverter().convertNodes(directory.BuildTree(state.Items)),
		SelectedID: selectedID,
		IsLoading:  state.IsLoading,
		Error:      state.Error,
		Notice:     state.Notice,
	}
}

func (service *DirectoryService) Refresh(ctx context.Context) error {
	if err := service.coordinator.Refresh(ctx); err != nil {
		return fmt.Errorf("coordinator.Refresh: %w", err)
	}
	return nil
}

func (service *DirectoryService) CreateItem(ctx context.Context, name string, itemType string, parentID string) (Item, error) {
	item, err := service.coordinator.Create(ctx, name, directory.Kind(itemType), optionalID(parentID))
	if err != nil {
		return Item{}, fmt.Errorf("coordinator.Create: %w", err)
	}
	return newItemConverter().convertItem(item), nil
}

func (service *DirectoryService) RenameItem(ctx context.Context, id string, name string) (Item, error) {
	item, err := service.coordinator.Rename(ctx, id, name)
	if err != nil {
		return Item{}, fmt.Errorf("coordinator.Rename: %w", err)
	}
	return newItemConverter().convertItem(item), nil
}

func (service *DirectoryService) DeleteItem(ctx context.Context, id string) error {
	if err := service.coordinator.Delete(ctx, id); err != nil {
		return fmt.Errorf("coordinator.Delete: %w", err)
	}
	return nil
}

func (service *DirectoryService) MoveItem(ctx context.Context, id string, parentID string) (Item, error) {
	item, err := service.coordinator.Move(ctx, id, optionalID(parentID))
	if err != nil {
		return Item{}, fmt.Errorf("coordinator.Move: %w", err)
	}
	return newItemConverter().convertItem(item), nil
}

// SelectItem selects an item. An empty id clears the selection.
func (service *DirectoryService) SelectItem(id string) {
	service.coordinator.Select(optionalID(id))
}

// CanDrop reports whether an item can be dropped onto a folder, or onto the root if targetID is empty
func (service *DirectoryService) CanDrop(id string, targetID string) bool {
	return service.coordinator.CanMove(id, optionalID(targetID))
}
