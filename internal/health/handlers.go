package health

import (
	"net/http"
	"sync/atomic"

	"github.com/noah-isme/discount-function/internal/common"
)

var ready atomic.Bool

func init() {
	ready.Store(true)
}

// SetReady toggles the readiness reported by Ready. It is cleared during shutdown.
func SetReady(v bool) {
	ready.Store(v)
}

// Handler exposes HTTP handlers for health endpoints. Evaluation has no
// external dependencies, so readiness only reflects the shutdown flag.
type Handler struct{}

// Live reports liveness status.
func (Handler) Live(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Ready reports 503 once shutdown has begun so load balancers drain the instance.
func (Handler) Ready(w http.ResponseWriter, _ *http.Request) {
	if !ready.Load() {
		common.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "shutting_down"})
		return
	}
	common.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
