package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
)

// Kind names one persisted collection.
type Kind string

const (
	KindProducts   Kind = "products"
	KindCategories Kind = "categories"
	KindBrands     Kind = "brands"
	KindOrders     Kind = "orders"
)

func (k Kind) String() string {
	return string(k)
}

// Store persists whole collections. Load reports found=false when the kind
// was never saved.
type Store interface {
	Load(ctx context.Context, kind Kind) (payload []byte, found bool, err error)
	Save(ctx context.Context, kind Kind, payload []byte) error
	Name() string
}

// LoadJSON decodes the snapshot for kind into a slice of T.
func LoadJSON[T any](ctx context.Context, s Store, kind Kind) ([]T, bool, error) {
	payload, found, err := s.Load(ctx, kind)
	if err != nil || !found {
		return nil, found, err
	}
	var items []T
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, true, fmt.Errorf("decode %s snapshot: %w", kind, err)
	}
	return items, true, nil
}

// SaveJSON encodes items and saves them under kind.
func SaveJSON[T any](ctx context.Context, s Store, kind Kind, items []T) error {
	if items == nil {
		items = []T{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s snapshot: %w", kind, err)
	}
	return s.Save(ctx, kind, payload)
}
