package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

const dependencyCheckTimeout = 5 * time.Second

// HealthHandler serves liveness and readiness probes. Liveness only
// confirms the process is up; readiness verifies the record store and the
// room-list cache are reachable.
type HealthHandler struct {
	db          *sql.DB
	redisClient *redis.Client
	startTime   time.Time
	version     string
}

func NewHealthHandler(db *sql.DB, redisClient *redis.Client) *HealthHandler {
	version := os.Getenv("APP_VERSION")
	if version == "" {
		version = "unknown"
	}
	return &HealthHandler{
		db:          db,
		redisClient: redisClient,
		startTime:   time.Now(),
		version:     version,
	}
}

type HealthResponse struct {
	Status    string           `json:"status"`
	Timestamp string           `json:"timestamp,omitempty"`
	Uptime    string           `json:"uptime,omitempty"`
	Version   string           `json:"version,omitempty"`
	Checks    map[string]Check `json:"checks"`
}

type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Health confirms the process is running. It never touches dependencies,
// so a degraded database cannot get the pod restarted.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.writeResponse(w, http.StatusOK, HealthResponse{
		Status:    "UP",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   h.version,
		Checks:    map[string]Check{"process": {Status: "UP"}},
	})
}

// Live is an alias for Health.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	h.Health(w, r)
}

// Ready reports whether the service can serve traffic. Postgres down means
// no capacity checks; Redis down only degrades the listing cache, but it
// still flags the pod so the degradation is visible.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	checks := map[string]Check{
		"database": h.checkDatabase(),
		"redis":    h.checkRedis(),
	}

	status := "UP"
	httpStatus := http.StatusOK
	for _, check := range checks {
		if check.Status != "UP" {
			status = "DOWN"
			httpStatus = http.StatusServiceUnavailable
		}
	}

	h.writeResponse(w, httpStatus, HealthResponse{
		Status: status,
		Checks: checks,
	})
}

func (h *HealthHandler) writeResponse(w http.ResponseWriter, status int, body HealthResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func (h *HealthHandler) checkDatabase() Check {
	if h.db == nil {
		return Check{Status: "DOWN", Message: "database connection is not initialized"}
	}

	ctx, cancel := context.WithTimeout(context.Background(), dependencyCheckTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		return Check{Status: "DOWN", Message: "cannot reach database"}
	}
	return Check{Status: "UP"}
}

func (h *HealthHandler) checkRedis() Check {
	if h.redisClient == nil {
		return Check{Status: "DOWN", Message: "redis client is not initialized"}
	}

	ctx, cancel := context.WithTimeout(context.Background(), dependencyCheckTimeout)
	defer cancel()

	if err := h.redisClient.Ping(ctx).Err(); err != nil {
		return Check{Status: "DOWN", Message: "cannot reach redis"}
	}
	return Check{Status: "UP"}
}
