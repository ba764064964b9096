// Package document serves the catalog from MongoDB.
package document

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/soft99/storefront-backend/internal/images"
	"github.com/soft99/storefront-backend/internal/providers"
	"github.com/soft99/storefront-backend/pkg/logger"
	"github.com/soft99/storefront-backend/pkg/metrics"
	pkgmongo "github.com/soft99/storefront-backend/pkg/mongo"
)

const (
	Name = "document"

	productsCollection   = "products"
	categoriesCollection = "categories"
	brandsCollection     = "brands"
	ordersCollection     = "orders"
)

type Options struct {
	Client   *pkgmongo.Client
	Releaser images.Releaser
	Logger   *logger.Logger
	Metrics  *metrics.StorefrontMetrics
	Clock    providers.Clock
}

type Provider struct {
	products   *mongo.Collection
	categories *mongo.Collection
	brands     *mongo.Collection
	orders     *mongo.Collection

	opTimeout time.Duration
	releaser  images.Releaser
	logg      *logger.Logger
	metrics   *metrics.StorefrontMetrics
	now       providers.Clock
}

func New(opts Options) (*Provider, error) {
	if opts.Client == nil {
		return nil, fmt.Errorf("mongo client required")
	}
	if opts.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if opts.Releaser == nil {
		opts.Releaser = images.Noop{}
	}
	if opts.Clock == nil {
		opts.Clock = providers.SystemClock
	}
	return &Provider{
		products:   opts.Client.Collection(productsCollection),
		categories: opts.Client.Collection(categoriesCollection),
		brands:     opts.Client.Collection(brandsCollection),
		orders:     opts.Client.Collection(ordersCollection),
		opTimeout:  opts.Client.OpTimeout(),
		releaser:   opts.Releaser,
		logg:       opts.Logger,
		metrics:    opts.Metrics,
		now:        opts.Clock,
	}, nil
}

var _ providers.Provider = (*Provider)(nil)

func (p *Provider) Name() string { return Name }

// EnsureIndexes creates the product lookup indexes.
func (p *Provider) EnsureIndexes(ctx context.Context) error {
	const op = "document.EnsureIndexes"
	ctx, cancel := p.opContext(ctx)
	defer cancel()

	_, err := p.products.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "category_id", Value: 1}}},
		{Keys: bson.D{{Key: "brand_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "is_featured", Value: 1}}},
		{Keys: bson.D{{Key: "is_new", Value: 1}}},
	}, options.CreateIndexes())
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	_, err = p.orders.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "user_id", Value: 1}}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (p *Provider) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, p.opTimeout)
}

// findAll decodes every document matching filter into E and converts it.
func findAll[E any, M any](ctx context.Context, coll *mongo.Collection, op string, filter any, convert func(*E) *M) ([]M, error) {
	cur, err := coll.Find(ctx, filter)
	if err != nil {
		return nil, providers.BackendError(op, err)
	}
	defer cur.Close(ctx)

	out := make([]M, 0)
	for cur.Next(ctx) {
		var ent E
		if err := cur.Decode(&ent); err != nil {
			return nil, providers.BackendError(op, fmt.Errorf("decode: %w", err))
		}
		out = append(out, *convert(&ent))
	}
	if err := cur.Err(); err != nil {
		return nil, providers.BackendError(op, fmt.Errorf("cursor: %w", err))
	}
	return out, nil
}

// findByID returns (nil, nil) when no document has the id.
func findByID[E any, M any](ctx context.Context, coll *mongo.Collection, op, id string, convert func(*E) *M) (*M, error) {
	var ent E
	err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(&ent)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, providers.BackendError(op, err)
	}
	return convert(&ent), nil
}

func insert(ctx context.Context, coll *mongo.Collection, op string, doc any) error {
	if _, err := coll.InsertOne(ctx, doc); err != nil {
		return providers.BackendError(op, err)
	}
	return nil
}

// replace overwrites the stored document; concurrent updates are last write
// wins.
func replace(ctx context.Context, coll *mongo.Collection, kind, id string, doc any) error {
	res, err := coll.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		return providers.BackendError("update "+kind, err)
	}
	if res.MatchedCount == 0 {
		return providers.NotFound(kind, id)
	}
	return nil
}

func deleteByID(ctx context.Context, coll *mongo.Collection, op, id string) (bool, error) {
	res, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, providers.BackendError(op, err)
	}
	return res.DeletedCount > 0, nil
}

// upsertMany writes one unordered batch of replace-upserts.
func upsertMany[T any](ctx context.Context, coll *mongo.Collection, op string, batch []T, id func(T) string, toDoc func(T) any) error {
	if len(batch) == 0 {
		return nil
	}
	writes := make([]mongo.WriteModel, 0, len(batch))
	for _, rec := range batch {
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": id(rec)}).
			SetReplacement(toDoc(rec)).
			SetUpsert(true))
	}
	if _, err := coll.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false)); err != nil {
		return providers.BackendError(op, err)
	}
	return nil
}
