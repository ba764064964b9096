package controllers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/soft99/storefront-backend/api/responses"
	"github.com/soft99/storefront-backend/pkg/config"
	"github.com/soft99/storefront-backend/pkg/logger"
)

const readinessTimeout = 3 * time.Second

// Pinger is satisfied by every backing client that can report health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ReadinessCheck names one dependency probed by /health/ready.
type ReadinessCheck struct {
	Name   string
	Pinger Pinger
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Soft99-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every configured dependency concurrently and answers 503
// when any of them fails.
func HealthReady(cfg *config.Config, logg *logger.Logger, checks ...ReadinessCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Soft99-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		var (
			mu      sync.Mutex
			results = make(map[string]string, len(checks))
			healthy = true
		)
		var g errgroup.Group
		for _, check := range checks {
			if check.Pinger == nil {
				continue
			}
			g.Go(func() error {
				err := check.Pinger.Ping(ctx)
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					healthy = false
					results[check.Name] = "error"
					if logg != nil {
						logg.WarnErr(logg.WithField(ctx, "dependency", check.Name), "health.dependency_failed", err)
					}
					return nil
				}
				results[check.Name] = "ok"
				return nil
			})
		}
		_ = g.Wait()

		if !healthy {
			responses.WriteSuccessStatus(w, http.StatusServiceUnavailable, map[string]any{"status": "unavailable", "checks": results})
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": results})
	}
}
