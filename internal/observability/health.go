package observability

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// HealthStatus represents the health status of a component the SDK
// depends on.
type HealthStatus string

const (
	HealthStatusOK        HealthStatus = "ok"
	HealthStatusDegraded  HealthStatus = "degraded"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// ComponentHealth represents the health of a single dependency.
type ComponentHealth struct {
	Status    HealthStatus `json:"status"`
	Message   string       `json:"message,omitempty"`
	LatencyMS int64        `json:"latency_ms,omitempty"`
}

// HealthCheckResponse is the result of running every registered check.
type HealthCheckResponse struct {
	Status    HealthStatus               `json:"status"`
	Version   string                     `json:"version"`
	Timestamp string                     `json:"timestamp"`
	Checks    map[string]ComponentHealth `json:"checks"`
}

// HealthChecker runs self-checks against the SDK's dependencies: the
// configured Submitter and anything else a Client wants to verify before
// accepting work. Unlike a server, the SDK has nothing to expose this
// over HTTP for, so a host process that wants an HTTP health endpoint
// wraps Check itself; this type only owns the check registry and result
// shape.
type HealthChecker struct {
	version string
	checks  map[string]HealthCheckFunc
}

// HealthCheckFunc checks one dependency's health.
type HealthCheckFunc func(ctx context.Context) ComponentHealth

// NewHealthChecker creates a health checker reporting the given version.
func NewHealthChecker(version string) *HealthChecker {
	return &HealthChecker{
		version: version,
		checks:  make(map[string]HealthCheckFunc),
	}
}

// RegisterCheck registers a health check under name.
func (hc *HealthChecker) RegisterCheck(name string, checkFunc HealthCheckFunc) {
	hc.checks[name] = checkFunc
}

// Check runs every registered check and rolls the result up.
func (hc *HealthChecker) Check(ctx context.Context) HealthCheckResponse {
	response := HealthCheckResponse{
		Status:    HealthStatusOK,
		Version:   hc.version,
		Timestamp: time.Now().Format(time.RFC3339),
		Checks:    make(map[string]ComponentHealth),
	}

	for name, checkFunc := range hc.checks {
		health := checkFunc(ctx)
		response.Checks[name] = health

		if health.Status == HealthStatusUnhealthy {
			response.Status = HealthStatusUnhealthy
		} else if health.Status == HealthStatusDegraded && response.Status != HealthStatusUnhealthy {
			response.Status = HealthStatusDegraded
		}
	}

	return response
}

// JSON renders the response for a host process's own health endpoint.
func (r HealthCheckResponse) JSON() ([]byte, error) {
	return json.Marshal(r)
}

// SubmitterBlockCheck builds a check that queries the submitter's current
// block number, treating the submitter as unhealthy if the query fails.
func SubmitterBlockCheck(queryCurrentBlock func(ctx context.Context) (uint64, error)) HealthCheckFunc {
	return func(ctx context.Context) ComponentHealth {
		start := time.Now()
		block, err := queryCurrentBlock(ctx)
		latency := time.Since(start).Milliseconds()
		if err != nil {
			return ComponentHealth{
				Status:    HealthStatusUnhealthy,
				Message:   fmt.Sprintf("submitter block query failed: %v", err),
				LatencyMS: latency,
			}
		}
		return ComponentHealth{
			Status:    HealthStatusOK,
			Message:   fmt.Sprintf("current block %d", block),
			LatencyMS: latency,
		}
	}
}
