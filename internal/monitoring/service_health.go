package monitoring

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

const HEALTHCHECK_TIMER = 15 * time.Second

// HealthChecker is anything that can probe the Processing Service.
type HealthChecker interface {
	HealthCheck(ctx context.Context) bool
}

// MonitorServiceHealth probes the service every interval until ctx ends,
// storing the latest answer in healthy. onChange, when set, is called with
// the first answer and then each time the answer flips.
func MonitorServiceHealth(ctx context.Context, checker HealthChecker, interval time.Duration, healthy *atomic.Bool, onChange func(bool)) {
	if interval <= 0 {
		interval = HEALTHCHECK_TIMER
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	first := true
	probe := func() {
		isHealthy := checker.HealthCheck(ctx)
		changed := healthy.Swap(isHealthy) != isHealthy
		if (changed || first) && onChange != nil {
			onChange(isHealthy)
		}
		first = false
		if !isHealthy {
			slog.Warn("[HealthCheck] Processing service is unhealthy")
		}
	}

	probe()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			probe()
		}
	}
}
