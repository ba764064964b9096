package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/lo"

	"github.com/soft99/storefront-backend/internal/imagefetch"
	"github.com/soft99/storefront-backend/pkg/config"
	"github.com/soft99/storefront-backend/pkg/logger"
	"github.com/soft99/storefront-backend/pkg/metrics"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "imagefetch"})

	_ = godotenv.Load()

	input := flag.String("in", "products.csv", "input CSV with a header row")
	output := flag.String("out", "image_urls.json", "output JSON file")
	logLevel := flag.String("log-level", "info", "log level")
	metricsFile := flag.String("metrics-file", "", "write job metrics in prometheus textfile format")
	flag.Parse()
	if args := flag.Args(); len(args) > 0 {
		*input = args[0]
		if len(args) > 1 {
			*output = args[1]
		}
	}

	cfg, err := config.LoadImageFetch()
	requireResource(context.Background(), logg, "config", err)

	logg = logger.New(logger.Options{ServiceName: "imagefetch", Level: logger.ParseLevel(*logLevel)})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"input":  *input,
		"output": *output,
		"limit":  cfg.Limit,
	})

	in, err := os.Open(*input)
	requireResource(ctx, logg, "input csv", err)
	rows, err := imagefetch.ReadCSV(in)
	_ = in.Close()
	requireResource(ctx, logg, "input csv", err)
	logg.Info(logg.WithField(ctx, "rows", len(rows)), "imagefetch.loaded")

	searchers := imagefetch.BuildSearchers(ctx, *cfg, logg, &http.Client{Timeout: cfg.Timeout})
	fetcher, err := imagefetch.NewFetcher(searchers, cfg.Limit, cfg.Concurrency, logg)
	requireResource(ctx, logg, "fetcher", err)

	reg := prometheus.NewRegistry()
	jobMetrics := metrics.NewJobMetrics(reg)
	started := time.Now()

	results, err := fetcher.Run(ctx, rows)
	jobMetrics.ObserveDuration("imagefetch", time.Since(started))
	if err != nil {
		jobMetrics.IncFailure("imagefetch")
	} else {
		jobMetrics.IncSuccess("imagefetch")
		jobMetrics.AddRecords("imagefetch", "rows", len(results))
		jobMetrics.AddRecords("imagefetch", "images", lo.SumBy(results, func(r imagefetch.Result) int { return len(r.Images) }))
	}
	if *metricsFile != "" {
		if werr := prometheus.WriteToTextfile(*metricsFile, reg); werr != nil {
			logg.WarnErr(ctx, "writing metrics file failed", werr)
		}
	}
	requireResource(ctx, logg, "image search", err)

	out, err := os.Create(*output)
	requireResource(ctx, logg, "output file", err)
	if err := imagefetch.WriteJSON(out, results); err != nil {
		_ = out.Close()
		requireResource(ctx, logg, "output file", err)
	}
	requireResource(ctx, logg, "output file", out.Close())

	logg.Info(ctx, "imagefetch.saved")
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
