package client

import (
	"context"
	"sort"

	"github.com/operasoftware/go-operalink/rest/model"
	"github.com/pkg/errors"
)

// CallArgs carries the parameters of a named operation. Which fields are
// consulted depends on the verb: gets use ItemID, listings use ParentID,
// creates use ParentID and Params, updates use ItemID and Params, moves use
// ItemID, RelativePosition and ReferenceItem.
type CallArgs struct {
	ItemID           string
	ParentID         string
	Params           map[string]string
	RelativePosition string
	ReferenceItem    string
}

// CallResult carries whichever payload the operation produces: a single
// entity (get, create), an ordered list (get_<type>s), or a property
// snapshot (update, move). Deletes and trashes produce an empty result.
type CallResult struct {
	Entity     model.Entity
	Entities   []model.Entity
	Properties map[string]interface{}
}

type operationFunc func(ctx context.Context, c Communicator, args CallArgs) (*CallResult, error)

// operationTable is generated once from the datatype table and is read-only
// afterwards.
var operationTable = buildOperationTable(model.Datatypes)

// buildOperationTable derives the named operation set from the datatype
// table: get_<type>, get_<type>s, create_<type>, update_<type> and
// delete_<type> for every datatype, plus trash_<type> and move_<type> for
// tree-structured ones. Each entry binds the datatype (and tree mode where
// it matters) over one resource primitive.
func buildOperationTable(datatypes []model.Datatype) map[string]operationFunc {
	table := map[string]operationFunc{}
	for _, dt := range datatypes {
		dt := dt

		table["get_"+dt.Name] = func(ctx context.Context, c Communicator, args CallArgs) (*CallResult, error) {
			e, err := c.GetResource(ctx, dt.Name, args.ItemID)
			if err != nil {
				return nil, err
			}
			return &CallResult{Entity: e}, nil
		}

		table["get_"+dt.Name+"s"] = func(ctx context.Context, c Communicator, args CallArgs) (*CallResult, error) {
			parentID := args.ParentID
			if !dt.Tree {
				// list-structured datatypes are flat; there is no folder
				// to descend into
				parentID = ""
			}
			entities, err := c.ResourceChildren(ctx, dt.Name, parentID, dt.Tree)
			if err != nil {
				return nil, err
			}
			return &CallResult{Entities: entities}, nil
		}

		table["create_"+dt.Name] = func(ctx context.Context, c Communicator, args CallArgs) (*CallResult, error) {
			e, err := c.CreateResource(ctx, dt.Name, args.ParentID, args.Params)
			if err != nil {
				return nil, err
			}
			return &CallResult{Entity: e}, nil
		}

		table["update_"+dt.Name] = func(ctx context.Context, c Communicator, args CallArgs) (*CallResult, error) {
			props, err := c.UpdateResource(ctx, dt.Name, args.ItemID, args.Params)
			if err != nil {
				return nil, err
			}
			return &CallResult{Properties: props}, nil
		}

		table["delete_"+dt.Name] = func(ctx context.Context, c Communicator, args CallArgs) (*CallResult, error) {
			if err := c.DeleteResource(ctx, dt.Name, args.ItemID); err != nil {
				return nil, err
			}
			return &CallResult{}, nil
		}

		if !dt.Tree {
			continue
		}

		table["trash_"+dt.Name] = func(ctx context.Context, c Communicator, args CallArgs) (*CallResult, error) {
			if err := c.TrashResource(ctx, dt.Name, args.ItemID); err != nil {
				return nil, err
			}
			return &CallResult{}, nil
		}

		table["move_"+dt.Name] = func(ctx context.Context, c Communicator, args CallArgs) (*CallResult, error) {
			props, err := c.MoveResource(ctx, dt.Name, args.ItemID, args.RelativePosition, args.ReferenceItem)
			if err != nil {
				return nil, err
			}
			return &CallResult{Properties: props}, nil
		}
	}
	return table
}

// OperationNames lists the generated operations in sorted order.
func OperationNames() []string {
	names := make([]string, 0, len(operationTable))
	for name := range operationTable {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *communicatorImpl) Call(ctx context.Context, operation string, args CallArgs) (*CallResult, error) {
	op, ok := operationTable[operation]
	if !ok {
		return nil, errors.Errorf("unknown operation %q", operation)
	}
	return op(ctx, c, args)
}
