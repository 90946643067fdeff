// Package health serves liveness and readiness probes. Liveness answers as
// long as the process runs; readiness runs named checks (database pings and
// the like) in parallel under a shared deadline and degrades to 503 when any
// of them fail.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// checkBudget bounds a whole readiness probe, not each check individually.
const checkBudget = 5 * time.Second

// CheckFunc probes one dependency. A nil error means ready.
type CheckFunc func(ctx context.Context) error

// Checks maps probe names to their check functions.
type Checks map[string]CheckFunc

type report struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// LivenessHandler answers 200 unconditionally.
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusOK, report{Status: "ok"})
	}
}

// ReadinessHandler runs every check concurrently and reports per-check
// results. Any failure turns the probe into a 503.
func ReadinessHandler(checks Checks) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), checkBudget)
		defer cancel()

		rep := report{Status: "ok"}
		if len(checks) > 0 {
			rep.Checks = make(map[string]string, len(checks))
		}

		var mu sync.Mutex
		var wg sync.WaitGroup
		for name, check := range checks {
			name, check := name, check
			wg.Add(1)
			go func() {
				defer wg.Done()

				err := check(ctx)

				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					rep.Checks[name] = err.Error()
					rep.Status = "unavailable"
					return
				}
				rep.Checks[name] = "ok"
			}()
		}
		wg.Wait()

		status := http.StatusOK
		if rep.Status != "ok" {
			status = http.StatusServiceUnavailable
		}
		respond(w, status, rep)
	}
}

func respond(w http.ResponseWriter, status int, rep report) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(rep)
}
