package directory

import (
	"slices"
	"time"
)

// State is what a UI renders: a snapshot of items with a selection and status flags
type State struct {
	Items      []Item
	SelectedID *string
	IsLoading  bool

	// Error is a message of the last failed operation
	Error string
	// Notice is a message of the last succeeded operation
	Notice string
}

func (state State) clone() State {
	state.Items = slices.Clone(state.Items)
	for index := range state.Items {
		state.Items[index].ParentID = cloneID(state.Items[index].ParentID)
	}
	state.SelectedID = cloneID(state.SelectedID)
	return state
}

// action is a closed set of state changes handled by reduce
type action interface {
	isAction()
}

type setItemsAction struct {
	items []Item
}

type addItemAction struct {
	item Item
}

type updateItemAction struct {
	id        string
	name      string
	updatedAt time.Time
}

type deleteItemsAction struct {
	ids []string
}

type moveItemAction struct {
	id        string
	parentID  *string
	updatedAt time.Time
}

type selectItemAction struct {
	id *string
}

type setLoadingAction struct {
	isLoading bool
}

type setErrorAction struct {
	message string
}

type setNoticeAction struct {
	message string
}

func (setItemsAction) isAction()    {}
func (addItemAction) isAction()     {}
func (updateItemAction) isAction()  {}
func (deleteItemsAction) isAction() {}
func (moveItemAction) isAction()    {}
func (selectItemAction) isAction()  {}
func (setLoadingAction) isAction()  {}
func (setErrorAction) isAction()    {}
func (setNoticeAction) isAction()   {}

// reduce returns a new state without modifying the given one
func reduce(state State, a action) State {
	state = state.clone()

	switch a := a.(type) {
	case setItemsAction:
		state.Items = slices.Clone(a.items)
		if state.SelectedID != nil && indexOf(state.Items, *state.SelectedID) < 0 {
			state.SelectedID = nil
		}
	case addItemAction:
		if index := indexOf(state.Items, a.item.ID); index >= 0 {
			state.Items[index] = a.item
		} else {
			state.Items = append(state.Items, a.item)
		}
	case updateItemAction:
		if index := indexOf(state.Items, a.id); index >= 0 {
			state.Items[index].Name = a.name
			state.Items[index].touch(a.updatedAt)
		}
	case deleteItemsAction:
		state.Items = slices.DeleteFunc(state.Items, func(item Item) bool {
			return slices.Contains(a.ids, item.ID)
		})
		if state.SelectedID != nil && slices.Contains(a.ids, *state.SelectedID) {
			state.SelectedID = nil
		}
	case moveItemAction:
		if index := indexOf(state.Items, a.id); index >= 0 {
			state.Items[index].ParentID = cloneID(a.parentID)
			state.Items[index].touch(a.updatedAt)
		}
	case selectItemAction:
		state.SelectedID = cloneID(a.id)
	case setLoadingAction:
		state.IsLoading = a.isLoading
	case setErrorAction:
		state.Error = a.message
	case setNoticeAction:
		state.Notice = a.message
	default:
		panic("unknown action")
	}
	return state
}
