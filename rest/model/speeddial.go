package model

import "strconv"

const ItemTypeSpeedDial = "speeddial"

// SpeedDial is one cell of the speed dial grid. Its slot is not a tree
// position: the server derives it from the numeric item id, so Position is
// kept in sync with the id and is not a wire property.
type SpeedDial struct {
	linkEntry

	Position int `mapstructure:"-"`

	Title     *string `mapstructure:"title"`
	URI       *string `mapstructure:"uri"`
	Icon      *string `mapstructure:"icon"`
	Thumbnail *string `mapstructure:"thumbnail"`
}

func (*SpeedDial) Datatype() string { return SpeedDialDatatype }
func (*SpeedDial) ItemType() string { return ItemTypeSpeedDial }

func (s *SpeedDial) Properties() map[string]string {
	props := map[string]string{}
	putProp(props, "title", s.Title)
	putProp(props, "uri", s.URI)
	putProp(props, "icon", s.Icon)
	putProp(props, "thumbnail", s.Thumbnail)
	return props
}

func (s *SpeedDial) syncFromID() {
	if n, err := strconv.Atoi(s.ID()); err == nil {
		s.Position = n
	}
}

// createParent makes the requested slot the path segment of the create
// call; slot 0 means the server picks one.
func (s *SpeedDial) createParent() string {
	if s.Position > 0 {
		return strconv.Itoa(s.Position)
	}
	return ""
}
