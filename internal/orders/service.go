package orders

import (
	"context"
	"fmt"
	"strings"

	"github.com/soft99/storefront-backend/internal/cart"
	"github.com/soft99/storefront-backend/internal/providers"
	"github.com/soft99/storefront-backend/pkg/enums"
	pkgerrors "github.com/soft99/storefront-backend/pkg/errors"
	"github.com/soft99/storefront-backend/pkg/logger"
	"github.com/soft99/storefront-backend/pkg/models"
)

// CheckoutInput carries the customer details collected at checkout.
type CheckoutInput struct {
	UserID        string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Notes         string
}

// Receipt is the recorded order plus the currency its amounts are in.
type Receipt struct {
	Order    models.Order `json:"order"`
	Currency string       `json:"currency"`
}

type Service interface {
	Checkout(ctx context.Context, sessionID string, input CheckoutInput) (*Receipt, error)
	UpdateStatus(ctx context.Context, id string, status enums.OrderStatus) (*models.Order, error)
	Update(ctx context.Context, id string, patch models.OrderPatch) (*models.Order, error)
	List(ctx context.Context, userID string) ([]models.Order, error)
	Get(ctx context.Context, id string) (*models.Order, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type service struct {
	carts     cart.Service
	providers providers.Getter
	pricing   Pricing
	logg      *logger.Logger
}

func NewService(carts cart.Service, getter providers.Getter, pricing Pricing, logg *logger.Logger) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart service required")
	}
	if getter == nil {
		return nil, fmt.Errorf("provider getter required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{carts: carts, providers: getter, pricing: pricing, logg: logg}, nil
}

// Checkout records the session cart as a pending order and empties the cart.
// Lines are re-priced against the active provider so stale cart prices never
// reach the order. The cart stays locked from read to clear, so a concurrent
// add lands either in this order or in the emptied cart.
func (s *service) Checkout(ctx context.Context, sessionID string, input CheckoutInput) (*Receipt, error) {
	const op = "orders.Checkout"
	ctx = s.logg.WithCartSession(ctx, sessionID)

	var created *models.Order
	err := s.carts.Checkout(ctx, sessionID, func(current *cart.Cart) error {
		if len(current.Items) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
		}

		provider := s.providers.Get()
		priced := &cart.Cart{}
		var unavailable []string
		for _, item := range current.Items {
			product, err := provider.GetProduct(ctx, item.Product.ID)
			if err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
			if product == nil || !product.IsPublished() {
				unavailable = append(unavailable, item.Product.ID)
				continue
			}
			priced.Add(*product, item.Quantity)
		}
		if len(unavailable) > 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "cart contains unavailable products").
				WithDetails(map[string]any{"product_ids": unavailable})
		}

		order := models.Order{
			UserID:        strings.TrimSpace(input.UserID),
			CustomerName:  strings.TrimSpace(input.CustomerName),
			CustomerEmail: strings.TrimSpace(input.CustomerEmail),
			CustomerPhone: strings.TrimSpace(input.CustomerPhone),
			Notes:         strings.TrimSpace(input.Notes),
		}
		s.pricing.Price(priced).Apply(&order)

		var err error
		created, err = provider.CreateOrder(ctx, order)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"order_id": created.ID,
		"total":    created.Total,
		"items":    len(created.Items),
	}), "checkout.order_created")

	return &Receipt{Order: *created, Currency: s.pricing.Currency}, nil
}

func (s *service) UpdateStatus(ctx context.Context, id string, status enums.OrderStatus) (*models.Order, error) {
	if !status.IsValid() {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "invalid order status %q", status)
	}
	return s.Update(ctx, id, models.OrderPatch{Status: &status})
}

func (s *service) Update(ctx context.Context, id string, patch models.OrderPatch) (*models.Order, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	return s.providers.Get().UpdateOrder(ctx, id, patch)
}

func (s *service) List(ctx context.Context, userID string) ([]models.Order, error) {
	return s.providers.Get().ListOrders(ctx, strings.TrimSpace(userID))
}

func (s *service) Get(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.providers.Get().GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, providers.NotFound("order", id)
	}
	return order, nil
}

func (s *service) Delete(ctx context.Context, id string) (bool, error) {
	return s.providers.Get().DeleteOrder(ctx, id)
}
