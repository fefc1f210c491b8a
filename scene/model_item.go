package scene

import (
	"fmt"

	"isoedit/diagram"
)

// ModelItemPatch is a partial update of a model item.
type ModelItemPatch struct {
	Name        *string
	Description *string
	Icon        *string
}

// CreateModelItem adds item at the front of the model's items.
func CreateModelItem(s State, item diagram.ModelItem) (State, error) {
	next := s.Clone()
	next.Model.Items = prepend(next.Model.Items, item)
	return commitModel(s, next)
}

// UpdateModelItem merges patch into the model item. Unknown icons are
// rejected.
func UpdateModelItem(s State, id string, patch ModelItemPatch) (State, error) {
	next := s.Clone()
	_, item, err := next.Model.ModelItemByID(id)
	if err != nil {
		return s, err
	}
	set(&item.Name, patch.Name)
	set(&item.Description, patch.Description)
	set(&item.Icon, patch.Icon)
	return commitModel(s, next)
}

// DeleteModelItem removes the model item and its placement in every view,
// with the same cascade as DeleteViewItem.
func DeleteModelItem(s State, id string) (State, error) {
	next := s.Clone()
	i, _, err := next.Model.ModelItemByID(id)
	if err != nil {
		return s, err
	}
	next.Model.Items = removeAt(next.Model.Items, i)
	for v := range next.Model.Views {
		view := &next.Model.Views[v]
		j, _, err := view.ItemByID(id)
		if err != nil {
			continue
		}
		view.Items = removeAt(view.Items, j)
		repairLinks(&next, view, view.ID)
	}
	return next, nil
}

// CreateIcon appends icon to the model's icon set.
func CreateIcon(s State, icon diagram.Icon) (State, error) {
	if s.Model == nil {
		return s, &diagram.NotFoundError{Kind: "Model", ID: icon.ID}
	}
	if s.Model.HasIcon(icon.ID) {
		return s, fmt.Errorf("isoedit: icon %s already exists", icon.ID)
	}
	next := s.Clone()
	next.Model.Icons = append(next.Model.Icons, icon)
	return next, nil
}
