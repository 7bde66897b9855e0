package model

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	operalink "github.com/operasoftware/go-operalink"
	"github.com/pkg/errors"
)

// Item is one element of the JSON envelope every read and most mutating
// responses decode to.
type Item struct {
	ID         string                 `json:"id"`
	ItemType   string                 `json:"item_type"`
	Properties map[string]interface{} `json:"properties"`
}

// Connector is the slice of the resource client that entities dispatch
// their own operations through. rest/client implements it.
type Connector interface {
	ResourceChildren(ctx context.Context, datatype, parentID string, tree bool) ([]Entity, error)
	ChangeResource(ctx context.Context, datatype, apiMethod, itemID string, params map[string]string) ([]Item, error)
}

// Entity is one server-side Link item held in memory. Implementations are
// the variant structs in this package; the registry instantiates them from
// the item_type discriminator.
type Entity interface {
	// Datatype is the REST resource family the item belongs to.
	Datatype() string
	// ItemType is the discriminator distinguishing variants within a
	// datatype.
	ItemType() string
	// ID is the server-assigned identifier, empty until the item has been
	// created or hydrated from a response.
	ID() string
	// Properties renders the item's present fields in wire form. Absent
	// fields are omitted and timestamps are formatted as RFC 3339 UTC.
	Properties() map[string]string

	bind(Connector)
	connector() Connector
	setID(string)
}

// TreeEntity is an Entity that lives in the ordered parent/child hierarchy
// of a tree-structured datatype and therefore supports move and trash.
type TreeEntity interface {
	Entity
	IsFolder() bool
}

// linkEntry is the embedded base of every variant: the server id and the
// client the item was last associated with. The id is written once.
type linkEntry struct {
	conn Connector
	id   string
}

func (e *linkEntry) ID() string           { return e.id }
func (e *linkEntry) bind(conn Connector)  { e.conn = conn }
func (e *linkEntry) connector() Connector { return e.conn }

func (e *linkEntry) setID(id string) {
	if e.id == "" {
		e.id = id
	}
}

// treeEntry is the base of tree-structured variants. Folder variants
// shadow IsFolder.
type treeEntry struct {
	linkEntry
}

func (e *treeEntry) IsFolder() bool { return false }

// Hydrate builds an entity from one envelope element and associates it with
// conn. The id and item_type tags are consumed by the entity itself, never
// stored as fields.
func Hydrate(conn Connector, it Item) (Entity, error) {
	e, err := NewEntity(it.ItemType)
	if err != nil {
		return nil, err
	}
	e.bind(conn)
	e.setID(it.ID)
	if err := decodeProperties(it.Properties, e); err != nil {
		return nil, err
	}
	if p, ok := e.(interface{ syncFromID() }); ok {
		p.syncFromID()
	}
	return e, nil
}

// Create posts e as a new item, under parentID when given, otherwise at the
// end of the datatype root. The server response is authoritative: the
// returned id and the echoed properties overwrite whatever was set locally.
func Create(ctx context.Context, conn Connector, e Entity, parentID string) error {
	e.bind(conn)
	params := e.Properties()
	params["item_type"] = e.ItemType()
	if parentID == "" {
		if p, ok := e.(interface{ createParent() string }); ok {
			parentID = p.createParent()
		}
	}
	items, err := conn.ChangeResource(ctx, e.Datatype(), operalink.MethodCreate, parentID, params)
	if err != nil {
		return errors.Wrapf(err, "creating %s", e.ItemType())
	}
	if len(items) == 0 {
		return errors.Errorf("server returned no payload creating %s", e.ItemType())
	}
	e.setID(items[0].ID)
	if p, ok := e.(interface{ syncFromID() }); ok {
		p.syncFromID()
	}
	return decodeProperties(items[0].Properties, e)
}

// Update sends the item's current fields to the server and overwrites them
// with the canonical snapshot the server responds with.
func Update(ctx context.Context, e Entity) error {
	conn, err := boundConnector(e)
	if err != nil {
		return err
	}
	items, err := conn.ChangeResource(ctx, e.Datatype(), operalink.MethodUpdate, e.ID(), e.Properties())
	if err != nil {
		return errors.Wrapf(err, "updating %s %s", e.Datatype(), e.ID())
	}
	return applySnapshot(items, e)
}

// Delete removes the item from the server. The local value is a stale
// handle afterwards.
func Delete(ctx context.Context, e Entity) error {
	conn, err := boundConnector(e)
	if err != nil {
		return err
	}
	_, err = conn.ChangeResource(ctx, e.Datatype(), operalink.MethodDelete, e.ID(), nil)
	return errors.Wrapf(err, "deleting %s %s", e.Datatype(), e.ID())
}

// Trash moves the item into the server-side trash folder. Unlike Delete the
// item still exists and can be moved back out.
func Trash(ctx context.Context, e TreeEntity) error {
	conn, err := boundConnector(e)
	if err != nil {
		return err
	}
	_, err = conn.ChangeResource(ctx, e.Datatype(), operalink.MethodTrash, e.ID(), nil)
	return errors.Wrapf(err, "trashing %s %s", e.Datatype(), e.ID())
}

// Move relocates the item relative to reference; position is one of before,
// after or into. A nil reference repositions the item at the end of the
// root folder. The server's updated snapshot overwrites local fields.
func Move(ctx context.Context, e TreeEntity, reference TreeEntity, position string) error {
	if !operalink.ValidRelativePosition(position) {
		return errors.Errorf("invalid relative position %q", position)
	}
	conn, err := boundConnector(e)
	if err != nil {
		return err
	}
	referenceID := ""
	if reference != nil {
		referenceID = reference.ID()
	}
	params := map[string]string{
		"reference_item":    referenceID,
		"relative_position": position,
	}
	items, err := conn.ChangeResource(ctx, e.Datatype(), operalink.MethodMove, e.ID(), params)
	if err != nil {
		return errors.Wrapf(err, "moving %s %s", e.Datatype(), e.ID())
	}
	return applySnapshot(items, e)
}

// Children fetches the ordered contents of a folder. Nothing is cached;
// every call is one round trip.
func Children(ctx context.Context, folder TreeEntity) ([]Entity, error) {
	if !folder.IsFolder() {
		return nil, errors.Errorf("%s is not a folder", folder.ItemType())
	}
	conn, err := boundConnector(folder)
	if err != nil {
		return nil, err
	}
	return conn.ResourceChildren(ctx, folder.Datatype(), folder.ID(), true)
}

func boundConnector(e Entity) (Connector, error) {
	if e.connector() == nil {
		return nil, errors.Errorf("%s is not associated with a client", e.ItemType())
	}
	return e.connector(), nil
}

// applySnapshot overwrites local fields from the first envelope element, a
// last-write-wins merge with the server's copy. An empty payload is a valid
// success that leaves the entity as sent.
func applySnapshot(items []Item, e Entity) error {
	if len(items) == 0 {
		return nil
	}
	return decodeProperties(items[0].Properties, e)
}

// decodeProperties merges a properties payload into the entity. Keys that
// do not correspond to a declared field are dropped, not stored.
func decodeProperties(props map[string]interface{}, e Entity) error {
	if len(props) == 0 {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: wireTimeHook,
		Result:     e,
	})
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.Wrapf(dec.Decode(props), "decoding %s properties", e.ItemType())
}

var timePtrType = reflect.TypeOf((*time.Time)(nil))

// wireTimeHook turns wire timestamp strings into *time.Time fields during
// property decoding. Malformed values decode to absent, not an error.
func wireTimeHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String || to != timePtrType {
		return data, nil
	}
	if t := ParseTime(data.(string)); t != nil {
		return t, nil
	}
	return nil, nil
}

// ParseTime parses a wire timestamp, returning nil for anything that is not
// an RFC 3339 UTC second-precision value.
func ParseTime(s string) *time.Time {
	t, err := time.Parse(operalink.TimeFormat, s)
	if err != nil {
		return nil
	}
	return &t
}

// FormatTime renders a timestamp in wire form, empty for nil.
func FormatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(operalink.TimeFormat)
}

// FormatEntity renders an entity and its present fields for logging, one
// line per field in stable order.
func FormatEntity(e Entity) string {
	props := e.Properties()
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	lines := make([]string, 0, len(keys)+1)
	lines = append(lines, fmt.Sprintf("%s[%s]", e.ItemType(), e.ID()))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s: %s", k, props[k]))
	}
	return strings.Join(lines, "\n")
}

func putProp(props map[string]string, key string, value *string) {
	if value != nil {
		props[key] = *value
	}
}

func putTimeProp(props map[string]string, key string, value *time.Time) {
	if value != nil {
		props[key] = FormatTime(value)
	}
}
