package client

import (
	"context"

	operalink "github.com/operasoftware/go-operalink"
	"github.com/operasoftware/go-operalink/rest/model"
	"github.com/pkg/errors"
)

func (c *communicatorImpl) GetResource(ctx context.Context, datatype, itemID string) (model.Entity, error) {
	items, err := c.get(ctx, requestInfo{datatype: datatype, itemID: itemID})
	if err != nil {
		return nil, errors.Wrapf(err, "getting %s '%s'", datatype, itemID)
	}
	if len(items) != 1 {
		return nil, errors.Errorf("expected one element for %s '%s', server returned %d", datatype, itemID, len(items))
	}
	return model.Hydrate(c, items[0])
}

func (c *communicatorImpl) ResourceChildren(ctx context.Context, datatype, parentID string, tree bool) ([]model.Entity, error) {
	items, err := c.get(ctx, requestInfo{datatype: datatype, itemID: parentID, children: true})
	if err != nil {
		return nil, errors.Wrapf(err, "listing children of %s '%s'", datatype, parentID)
	}

	// server order is the tree order; an unknown item type fails the whole
	// list rather than silently dropping elements from it
	children := []model.Entity{}
	for _, it := range items {
		e, err := model.Hydrate(c, it)
		if err != nil {
			return nil, errors.Wrapf(err, "decoding children of %s '%s'", datatype, parentID)
		}
		children = append(children, e)
	}
	return children, nil
}

func (c *communicatorImpl) ChangeResource(ctx context.Context, datatype, apiMethod, itemID string, params map[string]string) ([]model.Item, error) {
	items, err := c.post(ctx, requestInfo{datatype: datatype, itemID: itemID}, apiMethod, params)
	return items, errors.Wrapf(err, "%s on %s '%s'", apiMethod, datatype, itemID)
}

func (c *communicatorImpl) CreateResource(ctx context.Context, datatype, parentID string, params map[string]string) (model.Entity, error) {
	items, err := c.ChangeResource(ctx, datatype, operalink.MethodCreate, parentID, params)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errors.Errorf("server returned no payload creating %s", datatype)
	}
	return model.Hydrate(c, items[0])
}

func (c *communicatorImpl) UpdateResource(ctx context.Context, datatype, itemID string, params map[string]string) (map[string]interface{}, error) {
	items, err := c.ChangeResource(ctx, datatype, operalink.MethodUpdate, itemID, params)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return items[0].Properties, nil
}

func (c *communicatorImpl) DeleteResource(ctx context.Context, datatype, itemID string) error {
	_, err := c.ChangeResource(ctx, datatype, operalink.MethodDelete, itemID, nil)
	return err
}

func (c *communicatorImpl) TrashResource(ctx context.Context, datatype, itemID string) error {
	_, err := c.ChangeResource(ctx, datatype, operalink.MethodTrash, itemID, nil)
	return err
}

func (c *communicatorImpl) MoveResource(ctx context.Context, datatype, itemID, position, referenceID string) (map[string]interface{}, error) {
	if !operalink.ValidRelativePosition(position) {
		return nil, errors.Errorf("invalid relative position %q", position)
	}
	params := map[string]string{
		"reference_item":    referenceID,
		"relative_position": position,
	}
	items, err := c.ChangeResource(ctx, datatype, operalink.MethodMove, itemID, params)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return items[0].Properties, nil
}

func (c *communicatorImpl) Add(ctx context.Context, e model.Entity) error {
	return model.Create(ctx, c, e, "")
}

func (c *communicatorImpl) AddToFolder(ctx context.Context, e model.Entity, folder model.TreeEntity) error {
	if folder == nil {
		return c.Add(ctx, e)
	}
	if !folder.IsFolder() {
		return errors.Errorf("%s is not a folder", folder.ItemType())
	}
	return model.Create(ctx, c, e, folder.ID())
}

func (c *communicatorImpl) MoveInto(ctx context.Context, e model.TreeEntity, folder model.TreeEntity) error {
	if folder != nil && !folder.IsFolder() {
		return errors.Errorf("%s is not a folder", folder.ItemType())
	}
	return model.Move(ctx, e, folder, operalink.PositionInto)
}

func (c *communicatorImpl) MoveBefore(ctx context.Context, e model.TreeEntity, reference model.TreeEntity) error {
	return model.Move(ctx, e, reference, operalink.PositionBefore)
}

func (c *communicatorImpl) MoveAfter(ctx context.Context, e model.TreeEntity, reference model.TreeEntity) error {
	return model.Move(ctx, e, reference, operalink.PositionAfter)
}
