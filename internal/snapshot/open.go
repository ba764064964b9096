package snapshot

import (
	"context"
	"fmt"

	"github.com/soft99/storefront-backend/pkg/config"
	"github.com/soft99/storefront-backend/pkg/db"
	"github.com/soft99/storefront-backend/pkg/enums"
	"github.com/soft99/storefront-backend/pkg/redis"
)

// Deps carries the shared clients a store may sit on. Nil clients mean the
// backend is not configured.
type Deps struct {
	Redis *redis.Client
	DB    *db.Client
}

// Open builds the store selected by cfg.Driver.
func Open(_ context.Context, cfg config.SnapshotConfig, deps Deps) (Store, error) {
	driver, err := enums.ParseSnapshotDriver(cfg.Driver)
	if err != nil {
		return nil, err
	}
	switch driver {
	case enums.SnapshotDriverMemory:
		return NewMemory(), nil
	case enums.SnapshotDriverFile:
		return NewFile(cfg.Dir)
	case enums.SnapshotDriverRedis:
		if deps.Redis == nil {
			return nil, fmt.Errorf("snapshot driver %s requires redis", driver)
		}
		return NewRedis(deps.Redis, cfg.KeyTTL)
	default:
		if deps.DB == nil {
			return nil, fmt.Errorf("snapshot driver %s requires a database", driver)
		}
		return NewSQL(deps.DB)
	}
}
