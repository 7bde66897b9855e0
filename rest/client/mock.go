package client

import (
	"context"
	"net/http"
	"sync"
	"time"

	operalink "github.com/operasoftware/go-operalink"
	"github.com/operasoftware/go-operalink/rest/model"
	"github.com/pkg/errors"
)

// Mock mocks the Link Communicator for testing. Responses are canned per
// primitive; every call is recorded.
type Mock struct {
	// mock behavior
	GetResponse      []model.Item
	ChildrenResponse []model.Item
	ChangeResponse   []model.Item
	FailWith         error

	// data collected by mocked methods
	Requests []MockRequest

	mu sync.Mutex
}

// MockRequest is one recorded primitive call.
type MockRequest struct {
	Datatype  string
	APIMethod string
	ItemID    string
	Children  bool
	Params    map[string]string
}

// NewMock returns a Communicator that never touches the network.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) SetHTTPClient(*http.Client) {}
func (m *Mock) SetTimeout(time.Duration)   {}
func (m *Mock) Close()                     {}

func (m *Mock) record(r MockRequest) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests = append(m.Requests, r)
}

func (m *Mock) GetResource(ctx context.Context, datatype, itemID string) (model.Entity, error) {
	m.record(MockRequest{Datatype: datatype, ItemID: itemID})
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	if len(m.GetResponse) != 1 {
		return nil, errors.Errorf("expected one element for %s '%s', server returned %d", datatype, itemID, len(m.GetResponse))
	}
	return model.Hydrate(m, m.GetResponse[0])
}

func (m *Mock) ResourceChildren(ctx context.Context, datatype, parentID string, tree bool) ([]model.Entity, error) {
	m.record(MockRequest{Datatype: datatype, ItemID: parentID, Children: true})
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	children := []model.Entity{}
	for _, it := range m.ChildrenResponse {
		e, err := model.Hydrate(m, it)
		if err != nil {
			return nil, err
		}
		children = append(children, e)
	}
	return children, nil
}

func (m *Mock) ChangeResource(ctx context.Context, datatype, apiMethod, itemID string, params map[string]string) ([]model.Item, error) {
	m.record(MockRequest{Datatype: datatype, APIMethod: apiMethod, ItemID: itemID, Params: params})
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	return m.ChangeResponse, nil
}

func (m *Mock) CreateResource(ctx context.Context, datatype, parentID string, params map[string]string) (model.Entity, error) {
	items, err := m.ChangeResource(ctx, datatype, operalink.MethodCreate, parentID, params)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errors.Errorf("server returned no payload creating %s", datatype)
	}
	return model.Hydrate(m, items[0])
}

func (m *Mock) UpdateResource(ctx context.Context, datatype, itemID string, params map[string]string) (map[string]interface{}, error) {
	items, err := m.ChangeResource(ctx, datatype, operalink.MethodUpdate, itemID, params)
	if err != nil || len(items) == 0 {
		return nil, err
	}
	return items[0].Properties, nil
}

func (m *Mock) DeleteResource(ctx context.Context, datatype, itemID string) error {
	_, err := m.ChangeResource(ctx, datatype, operalink.MethodDelete, itemID, nil)
	return err
}

func (m *Mock) TrashResource(ctx context.Context, datatype, itemID string) error {
	_, err := m.ChangeResource(ctx, datatype, operalink.MethodTrash, itemID, nil)
	return err
}

func (m *Mock) MoveResource(ctx context.Context, datatype, itemID, position, referenceID string) (map[string]interface{}, error) {
	if !operalink.ValidRelativePosition(position) {
		return nil, errors.Errorf("invalid relative position %q", position)
	}
	params := map[string]string{
		"reference_item":    referenceID,
		"relative_position": position,
	}
	items, err := m.ChangeResource(ctx, datatype, operalink.MethodMove, itemID, params)
	if err != nil || len(items) == 0 {
		return nil, err
	}
	return items[0].Properties, nil
}

func (m *Mock) Call(ctx context.Context, operation string, args CallArgs) (*CallResult, error) {
	op, ok := operationTable[operation]
	if !ok {
		return nil, errors.Errorf("unknown operation %q", operation)
	}
	return op(ctx, m, args)
}

func (m *Mock) Add(ctx context.Context, e model.Entity) error {
	return model.Create(ctx, m, e, "")
}

func (m *Mock) AddToFolder(ctx context.Context, e model.Entity, folder model.TreeEntity) error {
	if folder == nil {
		return m.Add(ctx, e)
	}
	return model.Create(ctx, m, e, folder.ID())
}

func (m *Mock) MoveInto(ctx context.Context, e model.TreeEntity, folder model.TreeEntity) error {
	return model.Move(ctx, e, folder, operalink.PositionInto)
}

func (m *Mock) MoveBefore(ctx context.Context, e model.TreeEntity, reference model.TreeEntity) error {
	return model.Move(ctx, e, reference, operalink.PositionBefore)
}

func (m *Mock) MoveAfter(ctx context.Context, e model.TreeEntity, reference model.TreeEntity) error {
	return model.Move(ctx, e, reference, operalink.PositionAfter)
}
