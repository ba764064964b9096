package providers

import (
	"time"

	"github.com/google/uuid"

	"github.com/soft99/storefront-backend/pkg/enums"
	pkgerrors "github.com/soft99/storefront-backend/pkg/errors"
	"github.com/soft99/storefront-backend/pkg/models"
)

// Clock lets tests pin timestamps.
type Clock func() time.Time

func SystemClock() time.Time {
	return time.Now().UTC()
}

// NewID returns a fresh entity id.
func NewID() string {
	return uuid.NewString()
}

func rejectPresetID(kind, id string) error {
	if id == "" {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeValidation, kind+" id is assigned by the store").
		WithDetails(map[string]string{"id": "must be empty on create"})
}

// PrepareProduct readies a new product for persistence.
func PrepareProduct(p models.Product, now time.Time) (models.Product, error) {
	if err := rejectPresetID("product", p.ID); err != nil {
		return models.Product{}, err
	}
	p = p.Clone()
	models.NormalizeProduct(&p, "", nil)
	if err := models.ValidateProduct(p); err != nil {
		return models.Product{}, err
	}
	p.ID = NewID()
	p.CreatedAt = now
	p.UpdatedAt = now
	return p, nil
}

// PatchProduct merges patch into a copy of existing, keeping identity fields.
func PatchProduct(existing models.Product, patch models.ProductPatch, now time.Time) (models.Product, error) {
	next := existing.Clone()
	patch.Apply(&next)
	next.ID = existing.ID
	next.CreatedAt = existing.CreatedAt
	if err := models.ValidateProduct(next); err != nil {
		return models.Product{}, err
	}
	next.UpdatedAt = now
	return next, nil
}

func PrepareCategory(c models.Category, now time.Time) (models.Category, error) {
	if err := rejectPresetID("category", c.ID); err != nil {
		return models.Category{}, err
	}
	if err := models.ValidateCategory(c); err != nil {
		return models.Category{}, err
	}
	c.ID = NewID()
	c.CreatedAt = now
	return c, nil
}

// PatchCategory leaves created_at alone; categories carry no updated_at.
func PatchCategory(existing models.Category, patch models.CategoryPatch) (models.Category, error) {
	next := existing
	patch.Apply(&next)
	next.ID = existing.ID
	next.CreatedAt = existing.CreatedAt
	if err := models.ValidateCategory(next); err != nil {
		return models.Category{}, err
	}
	return next, nil
}

func PrepareBrand(b models.Brand, now time.Time) (models.Brand, error) {
	if err := rejectPresetID("brand", b.ID); err != nil {
		return models.Brand{}, err
	}
	if err := models.ValidateBrand(b); err != nil {
		return models.Brand{}, err
	}
	b.ID = NewID()
	b.CreatedAt = now
	return b, nil
}

func PatchBrand(existing models.Brand, patch models.BrandPatch) (models.Brand, error) {
	next := existing
	patch.Apply(&next)
	next.ID = existing.ID
	next.CreatedAt = existing.CreatedAt
	if err := models.ValidateBrand(next); err != nil {
		return models.Brand{}, err
	}
	return next, nil
}

// PrepareOrder always records a new order as pending.
func PrepareOrder(o models.Order, now time.Time) (models.Order, error) {
	if err := rejectPresetID("order", o.ID); err != nil {
		return models.Order{}, err
	}
	o = o.Clone()
	o.Status = enums.OrderStatusPending
	if err := models.ValidateOrder(o); err != nil {
		return models.Order{}, err
	}
	o.ID = NewID()
	o.CreatedAt = now
	o.UpdatedAt = now
	return o, nil
}

// PatchOrder enforces the order state machine on status changes.
func PatchOrder(existing models.Order, patch models.OrderPatch, now time.Time) (models.Order, error) {
	if patch.Status != nil && !existing.Status.CanTransitionTo(*patch.Status) {
		return models.Order{}, pkgerrors.New(pkgerrors.CodeStateConflict, "order status transition not allowed").
			WithDetails(map[string]string{"from": existing.Status.String(), "to": patch.Status.String()})
	}
	next := existing.Clone()
	patch.Apply(&next)
	next.ID = existing.ID
	next.CreatedAt = existing.CreatedAt
	if err := models.ValidateOrder(next); err != nil {
		return models.Order{}, err
	}
	next.UpdatedAt = now
	return next, nil
}

// NotFound builds the error returned when an update targets a missing record.
func NotFound(kind, id string) error {
	return pkgerrors.New(pkgerrors.CodeNotFound, kind+" not found").WithDetails(map[string]string{"id": id})
}

// BackendError wraps a store failure so its text never reaches clients.
func BackendError(op string, err error) error {
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, op+" failed")
}
