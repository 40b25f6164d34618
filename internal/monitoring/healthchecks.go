package monitoring

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

type HealthChecker interface {
	HealthCheck(ctx context.Context) bool
}

// MonitorEmotionAPIHealth probes checker immediately and then every interval
// until ctx is done, storing the latest outcome in healthy.
func MonitorEmotionAPIHealth(ctx context.Context, checker HealthChecker, interval time.Duration, healthy *atomic.Bool) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	probe(ctx, checker, healthy)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			probe(ctx, checker, healthy)
		}
	}
}

func probe(ctx context.Context, checker HealthChecker, healthy *atomic.Bool) {
	isHealthy := checker.HealthCheck(ctx)
	was := healthy.Swap(isHealthy)
	switch {
	case !isHealthy && was:
		slog.Warn("[HealthCheck] Emotion API is unhealthy")
	case isHealthy && !was:
		slog.Info("[HealthCheck] Emotion API is healthy")
	}
}
