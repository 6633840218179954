package picker

import (
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

var (
	// ErrNoItems is returned when a controller is created without items.
	ErrNoItems = errors.New("no items to collect")
	// ErrDuplicateItem is returned when two items share a name.
	ErrDuplicateItem = errors.New("duplicate item name")
	// ErrInvalidItem is returned for an item without a name or with a non-positive size.
	ErrInvalidItem = errors.New("invalid item")
)

// Item is a pickable object. Position is its current center; Place is the
// point on the ground where it must end up.
type Item struct {
	Name     string
	Size     float64 // diameter
	Position r2.Point
	Place    r2.Point
}

// GripPoint returns the top of the item, where the effector takes hold.
func (it Item) GripPoint() r2.Point {
	return r2.Point{X: it.Position.X, Y: it.Position.Y - it.Size/2}
}

// RestPoint returns the center of the item once it rests on its place.
func (it Item) RestPoint() r2.Point {
	return r2.Point{X: it.Place.X, Y: it.Place.Y - it.Size/2}
}

func validateItems(items []Item) error {
	if len(items) == 0 {
		return ErrNoItems
	}
	seen := make(map[string]bool, len(items))
	for i, it := range items {
		if it.Name == "" {
			return errors.Wrapf(ErrInvalidItem, "item %d has no name", i)
		}
		if it.Size <= 0 {
			return errors.Wrapf(ErrInvalidItem, "item %q has size %v", it.Name, it.Size)
		}
		if seen[it.Name] {
			return errors.Wrapf(ErrDuplicateItem, "%q", it.Name)
		}
		seen[it.Name] = true
	}
	return nil
}
