package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/soft99/storefront-backend/internal/migration"
	"github.com/soft99/storefront-backend/internal/providers/document"
	"github.com/soft99/storefront-backend/internal/providers/local"
	"github.com/soft99/storefront-backend/internal/seed"
	"github.com/soft99/storefront-backend/internal/snapshot"
	"github.com/soft99/storefront-backend/pkg/config"
	"github.com/soft99/storefront-backend/pkg/db"
	"github.com/soft99/storefront-backend/pkg/enums"
	"github.com/soft99/storefront-backend/pkg/logger"
	"github.com/soft99/storefront-backend/pkg/metrics"
	pkgmongo "github.com/soft99/storefront-backend/pkg/mongo"
	"github.com/soft99/storefront-backend/pkg/redis"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed-migrate"})

	_ = godotenv.Load()

	target := flag.String("target", "document", "destination: document|local")
	dryRun := flag.Bool("dry-run", false, "report what would be written without writing")
	batchSize := flag.Int("batch-size", 0, "records per batch (default from SOFT99_MIGRATION_BATCH_SIZE)")
	seedDir := flag.String("seed", "", "directory holding products.json, categories.json and brands.json (default: bundled seed)")
	metricsFile := flag.String("metrics-file", "", "write job metrics in prometheus textfile format")
	flag.Parse()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "seed-migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})
	if *batchSize == 0 {
		*batchSize = cfg.Migration.BatchSize
	}
	if *seedDir == "" {
		*seedDir = cfg.Provider.SeedPath
	}
	ctx = logg.WithFields(ctx, map[string]any{
		"env":        cfg.App.Env,
		"target":     *target,
		"dry_run":    *dryRun,
		"batch_size": *batchSize,
	})

	dataset, err := seed.Load(*seedDir)
	requireResource(ctx, logg, "seed dataset", err)

	sink, closeSink := openSink(ctx, cfg, logg, *target, *seedDir)
	defer closeSink()

	migrator, err := migration.New(sink, migration.Options{BatchSize: *batchSize, DryRun: *dryRun}, logg)
	requireResource(ctx, logg, "migrator", err)

	reg := prometheus.NewRegistry()
	jobMetrics := metrics.NewJobMetrics(reg)
	started := time.Now()

	report, err := migrator.Run(ctx, dataset)
	printReport(report)
	recordJob(jobMetrics, report, time.Since(started), err)
	if *metricsFile != "" {
		if werr := prometheus.WriteToTextfile(*metricsFile, reg); werr != nil {
			logg.WarnErr(ctx, "writing metrics file failed", werr)
		}
	}
	if err != nil {
		var chunkErr *migration.ChunkError
		if errors.As(err, &chunkErr) {
			ctx = logg.WithFields(ctx, map[string]any{
				"kind":      chunkErr.Kind,
				"chunk":     chunkErr.Chunk,
				"committed": chunkErr.Committed,
			})
		}
		logg.Error(ctx, "seed migration failed", err)
		os.Exit(1)
	}
}

func openSink(ctx context.Context, cfg *config.Config, logg *logger.Logger, target, seedDir string) (migration.Sink, func()) {
	switch target {
	case "document":
		client, err := pkgmongo.New(ctx, cfg.Mongo, logg)
		requireResource(ctx, logg, "mongo", err)
		provider, err := document.New(document.Options{Client: client, Logger: logg})
		requireResource(ctx, logg, "document provider", err)
		requireResource(ctx, logg, "mongo indexes", provider.EnsureIndexes(ctx))
		return provider, func() {
			if err := client.Close(context.Background()); err != nil {
				logg.Error(ctx, "error closing mongo", err)
			}
		}

	case "local":
		var deps snapshot.Deps
		var closers []func() error
		if cfg.Redis.Enabled() {
			client, err := redis.New(ctx, cfg.Redis, logg)
			requireResource(ctx, logg, "redis", err)
			deps.Redis = client
			closers = append(closers, client.Close)
		}
		if driver, err := enums.ParseSnapshotDriver(cfg.Snapshot.Driver); err == nil && driver.IsSQL() {
			client, err := db.New(ctx, cfg.DB, logg)
			requireResource(ctx, logg, "database", err)
			deps.DB = client
			closers = append(closers, client.Close)
		}
		store, err := snapshot.Open(ctx, cfg.Snapshot, deps)
		requireResource(ctx, logg, "snapshot store", err)
		provider, err := local.New(local.Options{Store: store, SeedDir: seedDir, Logger: logg})
		requireResource(ctx, logg, "local provider", err)
		return provider, func() {
			for _, closeFn := range closers {
				if err := closeFn(); err != nil {
					logg.Error(ctx, "error closing client", err)
				}
			}
		}

	default:
		requireResource(ctx, logg, "target", fmt.Errorf("unknown target %q", target))
		return nil, func() {}
	}
}

func recordJob(m *metrics.JobMetrics, report *migration.Report, elapsed time.Duration, err error) {
	const job = "seed-migrate"
	m.ObserveDuration(job, elapsed)
	if report != nil {
		for _, k := range report.Kinds {
			m.AddRecords(job, k.Kind, k.Records)
		}
	}
	if err != nil {
		m.IncFailure(job)
		return
	}
	m.IncSuccess(job)
}

func printReport(report *migration.Report) {
	if report == nil {
		return
	}
	encoded, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return
	}
	fmt.Println(string(encoded))
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
