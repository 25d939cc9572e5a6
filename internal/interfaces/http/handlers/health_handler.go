package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// checkTimeout bounds each dependency probe during readiness.
const checkTimeout = 5 * time.Second

// HealthChecker reports the health of one infrastructure component.
type HealthChecker interface {
	Name() string
	Check(ctx context.Context) error
}

// CheckerFunc adapts a function to the HealthChecker interface.
type CheckerFunc struct {
	ComponentName string
	Fn            func(ctx context.Context) error
}

func (c CheckerFunc) Name() string                    { return c.ComponentName }
func (c CheckerFunc) Check(ctx context.Context) error { return c.Fn(ctx) }

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	checkers []HealthChecker
	version  string
	startAt  time.Time
}

func NewHealthHandler(version string, checkers ...HealthChecker) *HealthHandler {
	return &HealthHandler{
		checkers: checkers,
		version:  version,
		startAt:  time.Now(),
	}
}

// Liveness handles GET /healthz.  Always 200: it asserts only that the
// process is serving, never the dependencies.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"version":        h.version,
		"uptime_seconds": int64(time.Since(h.startAt).Seconds()),
	})
}

// componentStatus is one dependency's probe result.
type componentStatus struct {
	Name      string `json:"name"`
	Status    string `json:"status"`
	LatencyMs int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

// Readiness handles GET /readyz.  All dependency probes run concurrently;
// any failure answers 503 with the per-component breakdown.
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
	defer cancel()

	statuses := make([]componentStatus, len(h.checkers))
	var wg sync.WaitGroup
	for i, checker := range h.checkers {
		wg.Add(1)
		go func(i int, checker HealthChecker) {
			defer wg.Done()
			start := time.Now()
			err := checker.Check(ctx)
			statuses[i] = componentStatus{
				Name:      checker.Name(),
				Status:    "up",
				LatencyMs: time.Since(start).Milliseconds(),
			}
			if err != nil {
				statuses[i].Status = "down"
				statuses[i].Error = err.Error()
			}
		}(i, checker)
	}
	wg.Wait()

	status := http.StatusOK
	overall := "ready"
	for _, s := range statuses {
		if s.Status != "up" {
			status = http.StatusServiceUnavailable
			overall = "not_ready"
			break
		}
	}

	c.JSON(status, gin.H{"status": overall, "components": statuses})
}

//Personal.AI order the ending
