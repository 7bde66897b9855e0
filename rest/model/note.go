package model

import (
	"time"

	"github.com/evergreen-ci/utility"
)

const (
	ItemTypeNote          = "note"
	ItemTypeNoteFolder    = "note_folder"
	ItemTypeNoteSeparator = "note_separator"
)

// Note is a free-form text note, optionally associated with the page it was
// taken from.
type Note struct {
	treeEntry

	Content *string    `mapstructure:"content"`
	URI     *string    `mapstructure:"uri"`
	Created *time.Time `mapstructure:"created"`
}

func (*Note) Datatype() string { return NoteDatatype }
func (*Note) ItemType() string { return ItemTypeNote }

func (n *Note) Properties() map[string]string {
	props := map[string]string{}
	putProp(props, "content", n.Content)
	putProp(props, "uri", n.URI)
	putTimeProp(props, "created", n.Created)
	return props
}

// NoteFolder groups note items.
type NoteFolder struct {
	treeEntry

	Title  *string `mapstructure:"title"`
	Type   *string `mapstructure:"type"`
	Target *string `mapstructure:"target"`
}

func (*NoteFolder) Datatype() string { return NoteDatatype }
func (*NoteFolder) ItemType() string { return ItemTypeNoteFolder }
func (*NoteFolder) IsFolder() bool   { return true }

// IsTrash reports whether this is the server's trash folder.
func (f *NoteFolder) IsTrash() bool {
	return utility.FromStringPtr(f.Type) == "trash"
}

func (f *NoteFolder) Properties() map[string]string {
	props := map[string]string{}
	putProp(props, "title", f.Title)
	putProp(props, "type", f.Type)
	putProp(props, "target", f.Target)
	return props
}

// NoteSeparator is a visual divider between notes.
type NoteSeparator struct {
	treeEntry
}

func (*NoteSeparator) Datatype() string { return NoteDatatype }
func (*NoteSeparator) ItemType() string { return ItemTypeNoteSeparator }

func (*NoteSeparator) Properties() map[string]string {
	return map[string]string{}
}
