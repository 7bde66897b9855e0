package model

import (
	"time"

	"github.com/evergreen-ci/utility"
)

const (
	ItemTypeBookmark          = "bookmark"
	ItemTypeBookmarkFolder    = "bookmark_folder"
	ItemTypeBookmarkSeparator = "bookmark_separator"
)

// Bookmark is a single bookmarked page.
type Bookmark struct {
	treeEntry

	Title       *string    `mapstructure:"title"`
	Nickname    *string    `mapstructure:"nickname"`
	Description *string    `mapstructure:"description"`
	URI         *string    `mapstructure:"uri"`
	Icon        *string    `mapstructure:"icon"`
	Created     *time.Time `mapstructure:"created"`
	Visited     *time.Time `mapstructure:"visited"`
}

func (*Bookmark) Datatype() string { return BookmarkDatatype }
func (*Bookmark) ItemType() string { return ItemTypeBookmark }

func (b *Bookmark) Properties() map[string]string {
	props := map[string]string{}
	putProp(props, "title", b.Title)
	putProp(props, "nickname", b.Nickname)
	putProp(props, "description", b.Description)
	putProp(props, "uri", b.URI)
	putProp(props, "icon", b.Icon)
	putTimeProp(props, "created", b.Created)
	putTimeProp(props, "visited", b.Visited)
	return props
}

// BookmarkFolder groups bookmark items. The server-managed trash folder
// identifies itself through the type property.
type BookmarkFolder struct {
	treeEntry

	Title       *string `mapstructure:"title"`
	Nickname    *string `mapstructure:"nickname"`
	Description *string `mapstructure:"description"`
	Type        *string `mapstructure:"type"`
	Target      *string `mapstructure:"target"`
}

func (*BookmarkFolder) Datatype() string { return BookmarkDatatype }
func (*BookmarkFolder) ItemType() string { return ItemTypeBookmarkFolder }
func (*BookmarkFolder) IsFolder() bool   { return true }

// IsTrash reports whether this is the server's trash folder.
func (f *BookmarkFolder) IsTrash() bool {
	return utility.FromStringPtr(f.Type) == "trash"
}

func (f *BookmarkFolder) Properties() map[string]string {
	props := map[string]string{}
	putProp(props, "title", f.Title)
	putProp(props, "nickname", f.Nickname)
	putProp(props, "description", f.Description)
	putProp(props, "type", f.Type)
	putProp(props, "target", f.Target)
	return props
}

// BookmarkSeparator is a visual divider between bookmarks. It carries no
// properties of its own.
type BookmarkSeparator struct {
	treeEntry
}

func (*BookmarkSeparator) Datatype() string { return BookmarkDatatype }
func (*BookmarkSeparator) ItemType() string { return ItemTypeBookmarkSeparator }

func (*BookmarkSeparator) Properties() map[string]string {
	return map[string]string{}
}
