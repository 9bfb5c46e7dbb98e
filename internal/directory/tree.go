package directory

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/michael-freling/file-explorer/internal/xslices"
)

// Find returns an item by ID
func Find(items []Item, id string) (Item, bool) {
	index := indexOf(items, id)
	if index < 0 {
		return Item{}, false
	}
	return items[index], true
}

func indexOf(items []Item, id string) int {
	return slices.IndexFunc(items, func(item Item) bool {
		return item.ID == id
	})
}

// ChildrenOf returns items whose parent is id, in the order of items.
func ChildrenOf(items []Item, id string) []Item {
	return xslices.Filter(items, func(item Item) bool {
		return item.hasParent(id)
	})
}

// RootsOf returns items without a parent
func RootsOf(items []Item) []Item {
	return xslices.Filter(items, Item.IsRoot)
}

// DescendantIDs returns the IDs of all transitive children of id, excluding id itself.
// It terminates even if a parent chain of items has a cycle.
func DescendantIDs(items []Item, id string) map[string]struct{} {
	result := make(map[string]struct{})
	visited := map[string]struct{}{
		id: {},
	}
	worklist := []string{id}
	for len(worklist) > 0 {
		current := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		for _, item := range items {
			if !item.hasParent(current) {
				continue
			}
			if _, ok := visited[item.ID]; ok {
				continue
			}
			visited[item.ID] = struct{}{}
			result[item.ID] = struct{}{}
			worklist = append(worklist, item.ID)
		}
	}
	return result
}

// IsDescendant walks parent pointers upward from startID and reports whether
// candidateAncestorID is in the chain. The walk starts at the parent of startID.
func IsDescendant(items []Item, candidateAncestorID string, startID string) bool {
	current, ok := Find(items, startID)
	if !ok {
		return false
	}

	visited := map[string]struct{}{
		startID: {},
	}
	for current.ParentID != nil {
		parentID := *current.ParentID
		if parentID == candidateAncestorID {
			return true
		}
		if _, ok := visited[parentID]; ok {
			return false
		}
		visited[parentID] = struct{}{}

		current, ok = Find(items, parentID)
		if !ok {
			return false
		}
	}
	return false
}

// CheckMove returns why movingID cannot be moved under targetParentID.
// A nil targetParentID is the root.
func CheckMove(items []Item, movingID string, targetParentID *string) error {
	if _, ok := Find(items, movingID); !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, movingID)
	}
	if targetParentID == nil {
		return nil
	}

	targetID := *targetParentID
	if targetID == movingID {
		return fmt.Errorf("%w: cannot move %s into itself", ErrInvalidMove, movingID)
	}
	target, ok := Find(items, targetID)
	if !ok {
		return fmt.Errorf("%w: target folder %s doesn't exist", ErrInvalidMove, targetID)
	}
	if !target.IsFolder() {
		return fmt.Errorf("%w: target %s is not a folder", ErrInvalidMove, targetID)
	}
	if IsDescendant(items, movingID, targetID) {
		return fmt.Errorf("%w: cannot move %s into its own descendant %s", ErrInvalidMove, movingID, targetID)
	}
	return nil
}

func CanMove(items []Item, movingID string, targetParentID *string) bool {
	return CheckMove(items, movingID, targetParentID) == nil
}

// Ancestors returns the parents of id from a root to the immediate parent
func Ancestors(items []Item, id string) []Item {
	current, ok := Find(items, id)
	if !ok {
		return nil
	}

	result := make([]Item, 0)
	visited := map[string]struct{}{
		id: {},
	}
	for current.ParentID != nil {
		parentID := *current.ParentID
		if _, ok := visited[parentID]; ok {
			break
		}
		visited[parentID] = struct{}{}

		current, ok = Find(items, parentID)
		if !ok {
			break
		}
		result = append(result, current)
	}
	slices.Reverse(result)
	return result
}

func compareForDisplay(a, b Item) int {
	if a.IsFolder() != b.IsFolder() {
		if a.IsFolder() {
			return -1
		}
		return 1
	}
	if c := cmp.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// SortForDisplay returns a copy of items with folders first, then by name
func SortForDisplay(items []Item) []Item {
	result := slices.Clone(items)
	slices.SortFunc(result, compareForDisplay)
	return result
}

type Node struct {
	Item
	Children []*Node `json:"children,omitempty"`
}

// BuildTree nests items under their parents, sorted for display.
// Items whose parent doesn't exist are shown at the root.
// Items that are only reachable through a cycle are left out.
func BuildTree(items []Item) []*Node {
	childrenMap := make(map[string][]Item)
	roots := make([]Item, 0)
	for _, item := range items {
		if item.ParentID == nil {
			roots = append(roots, item)
			continue
		}
		if _, ok := Find(items, *item.ParentID); !ok {
			roots = append(roots, item)
			continue
		}
		childrenMap[*item.ParentID] = append(childrenMap[*item.ParentID], item)
	}

	visited := make(map[string]struct{})
	return createTree(childrenMap, visited, roots)
}

func createTree(childrenMap map[string][]Item, visited map[string]struct{}, items []Item) []*Node {
	items = SortForDisplay(items)
	result := make([]*Node, 0, len(items))
	for _, item := range items {
		if _, ok := visited[item.ID]; ok {
			continue
		}
		visited[item.ID] = struct{}{}

		node := &Node{
			Item: item,
		}
		if children, ok := childrenMap[item.ID]; ok {
			node.Children = createTree(childrenMap, visited, children)
		}
		result = append(result, node)
	}
	return result
}

// Flatten returns the items of a tree in depth-first order
func Flatten(nodes []*Node) []Item {
	result := make([]Item, 0)
	for _, node := range nodes {
		result = append(result, node.Item)
		result = append(result, Flatten(node.Children)...)
	}
	return result
}
