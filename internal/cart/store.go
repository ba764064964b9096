package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/soft99/storefront-backend/pkg/db"
	"github.com/soft99/storefront-backend/pkg/redis"
)

// Store persists carts by session id. Load reports found=false for unknown
// sessions.
type Store interface {
	Load(ctx context.Context, sessionID string) (*Cart, bool, error)
	Save(ctx context.Context, sessionID string, c *Cart) error
	Delete(ctx context.Context, sessionID string) error
}

type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: map[string][]byte{}}
}

func (m *MemoryStore) Load(_ context.Context, sessionID string) (*Cart, bool, error) {
	m.mu.RLock()
	raw, ok := m.carts[sessionID]
	m.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	c, err := decode(raw)
	return c, err == nil, err
}

func (m *MemoryStore) Save(_ context.Context, sessionID string, c *Cart) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.carts[sessionID] = raw
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, sessionID)
	return nil
}

type kvClient interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartKey(sessionID string) string
}

// RedisStore keeps each cart as JSON under s99:cart:<session> with a TTL
// refreshed on every save.
type RedisStore struct {
	client kvClient
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) (*RedisStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	return &RedisStore{client: client, ttl: ttl}, nil
}

func (r *RedisStore) Load(ctx context.Context, sessionID string) (*Cart, bool, error) {
	raw, err := r.client.Get(ctx, r.client.CartKey(sessionID))
	if redis.IsNil(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get cart: %w", err)
	}
	c, err := decode([]byte(raw))
	return c, err == nil, err
}

func (r *RedisStore) Save(ctx context.Context, sessionID string, c *Cart) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.client.CartKey(sessionID), string(raw), r.ttl); err != nil {
		return fmt.Errorf("redis set cart: %w", err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, r.client.CartKey(sessionID)); err != nil {
		return fmt.Errorf("redis del cart: %w", err)
	}
	return nil
}

// Record is one row of the carts table.
type Record struct {
	SessionID string     `gorm:"column:session_id;primaryKey"`
	Payload   string     `gorm:"column:payload;not null"`
	ExpiresAt *time.Time `gorm:"column:expires_at;index:idx_carts_expires_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at;not null"`
}

func (Record) TableName() string { return "carts" }

// SQLStore keeps carts in the relational database; expired rows read as
// missing.
type SQLStore struct {
	conn *gorm.DB
	ttl  time.Duration
	now  func() time.Time
}

func NewSQLStore(client *db.Client, ttl time.Duration) (*SQLStore, error) {
	if client == nil {
		return nil, fmt.Errorf("db client required")
	}
	if !client.IsPostgres() {
		if err := client.DB().AutoMigrate(&Record{}); err != nil {
			return nil, fmt.Errorf("migrate carts table: %w", err)
		}
	}
	return &SQLStore{conn: client.DB(), ttl: ttl, now: func() time.Time { return time.Now().UTC() }}, nil
}

func (s *SQLStore) Load(ctx context.Context, sessionID string) (*Cart, bool, error) {
	var rec Record
	err := s.conn.WithContext(ctx).Where("session_id = ?", sessionID).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("select cart: %w", err)
	}
	if rec.ExpiresAt != nil && !rec.ExpiresAt.After(s.now()) {
		return nil, false, nil
	}
	c, err := decode([]byte(rec.Payload))
	return c, err == nil, err
}

func (s *SQLStore) Save(ctx context.Context, sessionID string, c *Cart) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	now := s.now()
	rec := Record{SessionID: sessionID, Payload: string(raw), UpdatedAt: now}
	if s.ttl > 0 {
		expires := now.Add(s.ttl)
		rec.ExpiresAt = &expires
	}
	err = s.conn.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "expires_at", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("upsert cart: %w", err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.conn.WithContext(ctx).Where("session_id = ?", sessionID).Delete(&Record{}).Error; err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}

func decode(raw []byte) (*Cart, error) {
	var c Cart
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return &c, nil
}
