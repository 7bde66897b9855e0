package model

import (
	"fmt"

	"github.com/pkg/errors"
)

// registry maps the server's item_type discriminator to the constructor of
// the variant representing it. Read-only after init.
var registry = map[string]func() Entity{
	ItemTypeBookmark:          func() Entity { return &Bookmark{} },
	ItemTypeBookmarkFolder:    func() Entity { return &BookmarkFolder{} },
	ItemTypeBookmarkSeparator: func() Entity { return &BookmarkSeparator{} },
	ItemTypeNote:              func() Entity { return &Note{} },
	ItemTypeNoteFolder:        func() Entity { return &NoteFolder{} },
	ItemTypeNoteSeparator:     func() Entity { return &NoteSeparator{} },
	ItemTypeSpeedDial:         func() Entity { return &SpeedDial{} },
	ItemTypeSearchEngine:      func() Entity { return &SearchEngine{} },
}

// UnknownItemTypeError is returned when a response carries an item_type tag
// no variant is registered for. Deserialization fails as a whole rather
// than producing a partial, misordered result.
type UnknownItemTypeError struct {
	ItemType string
}

func (e *UnknownItemTypeError) Error() string {
	return fmt.Sprintf("unknown item type %q", e.ItemType)
}

// NewEntity returns a fresh, unbound entity for an item_type tag.
func NewEntity(itemType string) (Entity, error) {
	ctor, ok := registry[itemType]
	if !ok {
		return nil, errors.WithStack(&UnknownItemTypeError{ItemType: itemType})
	}
	return ctor(), nil
}

// IsUnknownItemType reports whether err came from an unregistered item_type
// tag.
func IsUnknownItemType(err error) bool {
	var unknown *UnknownItemTypeError
	return errors.As(err, &unknown)
}
