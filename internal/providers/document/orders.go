package document

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/soft99/storefront-backend/internal/providers"
	"github.com/soft99/storefront-backend/pkg/models"
)

func (p *Provider) ListOrders(ctx context.Context, userID string) ([]models.Order, error) {
	ctx, cancel := p.opContext(ctx)
	defer cancel()
	filter := bson.M{}
	if userID != "" {
		filter["user_id"] = userID
	}
	return findAll(ctx, p.orders, "list orders", filter, OrderToModel)
}

func (p *Provider) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	ctx, cancel := p.opContext(ctx)
	defer cancel()
	return findByID(ctx, p.orders, "get order", id, OrderToModel)
}

func (p *Provider) CreateOrder(ctx context.Context, order models.Order) (*models.Order, error) {
	created, err := providers.PrepareOrder(order, p.now())
	if err != nil {
		return nil, err
	}
	ctx, cancel := p.opContext(ctx)
	defer cancel()
	if err := insert(ctx, p.orders, "create order", OrderFromModel(created)); err != nil {
		return nil, err
	}
	return &created, nil
}

func (p *Provider) UpdateOrder(ctx context.Context, id string, patch models.OrderPatch) (*models.Order, error) {
	ctx, cancel := p.opContext(ctx)
	defer cancel()

	existing, err := findByID(ctx, p.orders, "get order", id, OrderToModel)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, providers.NotFound("order", id)
	}
	next, err := providers.PatchOrder(*existing, patch, p.now())
	if err != nil {
		return nil, err
	}
	if err := replace(ctx, p.orders, "order", id, OrderFromModel(next)); err != nil {
		return nil, err
	}
	return &next, nil
}

func (p *Provider) DeleteOrder(ctx context.Context, id string) (bool, error) {
	ctx, cancel := p.opContext(ctx)
	defer cancel()
	return deleteByID(ctx, p.orders, "delete order", id)
}
