package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/soft99/storefront-backend/pkg/db"
)

// Record is one row of the snapshots table.
type Record struct {
	Kind      string    `gorm:"column:kind;primaryKey"`
	Payload   string    `gorm:"column:payload;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (Record) TableName() string { return "snapshots" }

// SQL keeps snapshots in a relational table. Postgres schemas come from the
// goose migrations; sqlite databases are auto-migrated on open.
type SQL struct {
	conn *gorm.DB
	now  func() time.Time
}

func NewSQL(client *db.Client) (*SQL, error) {
	if client == nil {
		return nil, fmt.Errorf("db client required")
	}
	if !client.IsPostgres() {
		if err := client.DB().AutoMigrate(&Record{}); err != nil {
			return nil, fmt.Errorf("migrate snapshots table: %w", err)
		}
	}
	return &SQL{conn: client.DB(), now: func() time.Time { return time.Now().UTC() }}, nil
}

func (s *SQL) Name() string { return "sql" }

func (s *SQL) Load(ctx context.Context, kind Kind) ([]byte, bool, error) {
	var rec Record
	err := s.conn.WithContext(ctx).Where("kind = ?", kind.String()).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("select %s snapshot: %w", kind, err)
	}
	return []byte(rec.Payload), true, nil
}

func (s *SQL) Save(ctx context.Context, kind Kind, payload []byte) error {
	rec := Record{Kind: kind.String(), Payload: string(payload), UpdatedAt: s.now()}
	err := s.conn.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "kind"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("upsert %s snapshot: %w", kind, err)
	}
	return nil
}
