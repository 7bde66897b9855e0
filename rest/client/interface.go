package client

import (
	"context"
	"net/http"
	"time"

	"github.com/operasoftware/go-operalink/rest/model"
)

// Communicator is an interface for communicating with the Link API server.
// Every operation is synchronous and performs at most one HTTP round trip;
// concurrency and retry policy belong to the caller.
type Communicator interface {
	// ---------------------------------------------------------------------
	// Setters
	//
	// SetHTTPClient replaces the transport with a caller-owned client,
	// typically the signing client from the auth package.
	SetHTTPClient(*http.Client)
	// SetTimeout caps the duration of each round trip. Zero means no cap
	// beyond what the transport enforces.
	SetTimeout(time.Duration)
	// Close releases the communicator's resources. The communicator may
	// not be used afterwards.
	Close()

	// ---------------------------------------------------------------------
	// Resource primitives. Datatype-parametric; every generated operation
	// funnels into one of these.
	//
	// GetResource fetches a single item.
	GetResource(ctx context.Context, datatype, itemID string) (model.Entity, error)
	// ResourceChildren fetches the ordered contents of a folder, or the
	// datatype root when parentID is empty. The tree flag is structural
	// metadata only; decoding is identical either way.
	ResourceChildren(ctx context.Context, datatype, parentID string, tree bool) ([]model.Entity, error)
	// CreateResource creates an item from wire params, under parentID when
	// given, and returns it hydrated from the server's echo.
	CreateResource(ctx context.Context, datatype, parentID string, params map[string]string) (model.Entity, error)
	// UpdateResource sends changed fields and returns the server's
	// canonical property snapshot, nil when the server sent no payload.
	UpdateResource(ctx context.Context, datatype, itemID string, params map[string]string) (map[string]interface{}, error)
	// DeleteResource permanently removes an item.
	DeleteResource(ctx context.Context, datatype, itemID string) error
	// TrashResource moves a tree item into the server's trash folder.
	TrashResource(ctx context.Context, datatype, itemID string) error
	// MoveResource relocates a tree item relative to referenceID and
	// returns the server's updated property snapshot. An empty referenceID
	// repositions the item at the end of the root folder.
	MoveResource(ctx context.Context, datatype, itemID, position, referenceID string) (map[string]interface{}, error)
	// ChangeResource is the raw mutating primitive the others build on:
	// one POST carrying api_method and params, returning the decoded
	// envelope (nil for an empty-body success).
	ChangeResource(ctx context.Context, datatype, apiMethod, itemID string, params map[string]string) ([]model.Item, error)

	// ---------------------------------------------------------------------
	// Named operations from the generated table (get_bookmark,
	// create_note, move_bookmark, ...).
	Call(ctx context.Context, operation string, args CallArgs) (*CallResult, error)

	// ---------------------------------------------------------------------
	// High-level conveniences. These bind the entity to this communicator
	// and delegate to the entity's own create/move behavior.
	//
	// Add creates a locally built entity at the end of its datatype root.
	Add(ctx context.Context, e model.Entity) error
	// AddToFolder creates a locally built entity at the end of folder.
	AddToFolder(ctx context.Context, e model.Entity, folder model.TreeEntity) error
	// MoveInto appends e to folder; a nil folder means the root folder.
	MoveInto(ctx context.Context, e model.TreeEntity, folder model.TreeEntity) error
	// MoveBefore places e directly before reference.
	MoveBefore(ctx context.Context, e model.TreeEntity, reference model.TreeEntity) error
	// MoveAfter places e directly after reference.
	MoveAfter(ctx context.Context, e model.TreeEntity, reference model.TreeEntity) error
}

var _ model.Connector = Communicator(nil)
