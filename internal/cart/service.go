package cart

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/soft99/storefront-backend/internal/providers"
	pkgerrors "github.com/soft99/storefront-backend/pkg/errors"
	"github.com/soft99/storefront-backend/pkg/logger"
	"github.com/soft99/storefront-backend/pkg/metrics"
)

// View is the cart as returned to clients.
type View struct {
	SessionID  string  `json:"session_id"`
	Items      []Item  `json:"items"`
	TotalItems int     `json:"total_items"`
	TotalPrice float64 `json:"total_price"`
}

type Service interface {
	Get(ctx context.Context, sessionID string) (View, error)
	AddProduct(ctx context.Context, sessionID, productID string, qty int) (View, error)
	UpdateQuantity(ctx context.Context, sessionID, productID string, qty int) (View, error)
	Remove(ctx context.Context, sessionID, productID string) (View, error)
	Clear(ctx context.Context, sessionID string) (View, error)
	// Snapshot returns a copy of the session cart for checkout.
	Snapshot(ctx context.Context, sessionID string) (*Cart, error)
	// Checkout hands a copy of the cart to fn and empties the cart when fn
	// succeeds, all under the session lock.
	Checkout(ctx context.Context, sessionID string, fn func(*Cart) error) error
}

// sessionLock serializes work on one session inside this process. Entries are
// dropped once no caller holds or waits on them.
type sessionLock struct {
	mu   sync.Mutex
	refs int
}

type service struct {
	store     Store
	providers providers.Getter
	logg      *logger.Logger
	metrics   *metrics.StorefrontMetrics

	mu    sync.Mutex
	locks map[string]*sessionLock
	// fallback holds carts whose last save failed; a successful save drops them.
	fallback map[string]*Cart
}

func NewService(store Store, getter providers.Getter, logg *logger.Logger, m *metrics.StorefrontMetrics) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if getter == nil {
		return nil, fmt.Errorf("provider getter required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		store:     store,
		providers: getter,
		logg:      logg,
		metrics:   m,
		locks:     map[string]*sessionLock{},
		fallback:  map[string]*Cart{},
	}, nil
}

func (s *service) Get(ctx context.Context, sessionID string) (View, error) {
	return s.withCart(ctx, sessionID, false, func(*Cart) error { return nil })
}

func (s *service) AddProduct(ctx context.Context, sessionID, productID string, qty int) (View, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return View{}, pkgerrors.New(pkgerrors.CodeValidation, "product_id is required")
	}
	if qty <= 0 {
		return s.Get(ctx, sessionID)
	}
	provider := s.providers.Get()
	product, err := provider.GetProduct(ctx, productID)
	if err != nil {
		return View{}, err
	}
	if product == nil || !product.IsPublished() {
		return View{}, providers.NotFound("product", productID)
	}
	return s.withCart(ctx, sessionID, true, func(c *Cart) error {
		c.Add(*product, qty)
		return nil
	})
}

func (s *service) UpdateQuantity(ctx context.Context, sessionID, productID string, qty int) (View, error) {
	return s.withCart(ctx, sessionID, true, func(c *Cart) error {
		c.UpdateQuantity(productID, qty)
		return nil
	})
}

func (s *service) Remove(ctx context.Context, sessionID, productID string) (View, error) {
	return s.withCart(ctx, sessionID, true, func(c *Cart) error {
		c.Remove(productID)
		return nil
	})
}

func (s *service) Clear(ctx context.Context, sessionID string) (View, error) {
	return s.withCart(ctx, sessionID, true, func(c *Cart) error {
		c.Clear()
		return nil
	})
}

func (s *service) Snapshot(ctx context.Context, sessionID string) (*Cart, error) {
	var out *Cart
	_, err := s.withCart(ctx, sessionID, false, func(c *Cart) error {
		out = c.Clone()
		return nil
	})
	return out, err
}

func (s *service) Checkout(ctx context.Context, sessionID string, fn func(*Cart) error) error {
	_, err := s.withCart(ctx, sessionID, true, func(c *Cart) error {
		if err := fn(c.Clone()); err != nil {
			return err
		}
		c.Clear()
		return nil
	})
	return err
}

// withCart loads the session cart from the store, runs fn on it under the
// session lock and writes it back when persist is set. Store failures only
// degrade persistence.
func (s *service) withCart(ctx context.Context, sessionID string, persist bool, fn func(*Cart) error) (View, error) {
	if strings.TrimSpace(sessionID) == "" {
		return View{}, pkgerrors.New(pkgerrors.CodeValidation, "cart session is required")
	}
	ctx = s.logg.WithCartSession(ctx, sessionID)

	unlock := s.lock(sessionID)
	defer unlock()

	c := s.load(ctx, sessionID)
	if err := fn(c); err != nil {
		return View{}, err
	}
	if persist {
		s.save(ctx, sessionID, c)
	}
	return newView(sessionID, c), nil
}

func (s *service) lock(sessionID string) func() {
	s.mu.Lock()
	l, ok := s.locks[sessionID]
	if !ok {
		l = &sessionLock{}
		s.locks[sessionID] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, sessionID)
		}
		s.mu.Unlock()
	}
}

// load must be called with the session lock held.
func (s *service) load(ctx context.Context, sessionID string) *Cart {
	s.mu.Lock()
	pending := s.fallback[sessionID]
	s.mu.Unlock()

	stored, found, err := s.store.Load(ctx, sessionID)
	switch {
	case pending != nil:
		if err != nil {
			s.logg.WarnErr(ctx, "cart.load_failed", err)
			s.metrics.IncCartPersistFailure("load")
		}
		return pending.Clone()
	case err != nil:
		s.logg.WarnErr(ctx, "cart.load_failed", err)
		s.metrics.IncCartPersistFailure("load")
		return &Cart{}
	case !found || stored == nil:
		return &Cart{}
	default:
		return stored
	}
}

func (s *service) save(ctx context.Context, sessionID string, c *Cart) {
	err := s.store.Save(ctx, sessionID, c)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.logg.WarnErr(ctx, "cart.save_failed", err)
		s.metrics.IncCartPersistFailure("save")
		s.fallback[sessionID] = c.Clone()
		return
	}
	delete(s.fallback, sessionID)
}

func newView(sessionID string, c *Cart) View {
	snapshot := c.Clone()
	items := snapshot.Items
	if items == nil {
		items = []Item{}
	}
	return View{
		SessionID:  sessionID,
		Items:      items,
		TotalItems: c.TotalItems(),
		TotalPrice: c.TotalPrice(),
	}
}
