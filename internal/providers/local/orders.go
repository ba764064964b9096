package local

import (
	"context"

	"github.com/samber/lo"

	"github.com/soft99/storefront-backend/internal/providers"
	"github.com/soft99/storefront-backend/pkg/models"
)

func (p *Provider) ListOrders(ctx context.Context, userID string) ([]models.Order, error) {
	all, err := read(ctx, p, &p.orders)
	if err != nil {
		return nil, err
	}
	if userID == "" {
		return all, nil
	}
	return lo.Filter(all, func(o models.Order, _ int) bool { return o.UserID == userID }), nil
}

func (p *Provider) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	all, err := read(ctx, p, &p.orders)
	if err != nil {
		return nil, err
	}
	if i := indexOf(all, func(o models.Order) bool { return o.ID == id }); i >= 0 {
		return &all[i], nil
	}
	return nil, nil
}

func (p *Provider) CreateOrder(ctx context.Context, order models.Order) (*models.Order, error) {
	created, err := providers.PrepareOrder(order, p.now())
	if err != nil {
		return nil, err
	}
	err = mutate(ctx, p, &p.orders, func(items []models.Order) ([]models.Order, error) {
		return append(items, created), nil
	})
	if err != nil {
		return nil, err
	}
	out := created.Clone()
	return &out, nil
}

func (p *Provider) UpdateOrder(ctx context.Context, id string, patch models.OrderPatch) (*models.Order, error) {
	var updated models.Order
	err := mutate(ctx, p, &p.orders, func(items []models.Order) ([]models.Order, error) {
		i := indexOf(items, func(o models.Order) bool { return o.ID == id })
		if i < 0 {
			return nil, providers.NotFound("order", id)
		}
		next, err := providers.PatchOrder(items[i], patch, p.now())
		if err != nil {
			return nil, err
		}
		items[i] = next
		updated = next.Clone()
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (p *Provider) DeleteOrder(ctx context.Context, id string) (bool, error) {
	removed := false
	err := mutate(ctx, p, &p.orders, func(items []models.Order) ([]models.Order, error) {
		i := indexOf(items, func(o models.Order) bool { return o.ID == id })
		if i < 0 {
			return nil, errUnchanged
		}
		removed = true
		return append(items[:i], items[i+1:]...), nil
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}
