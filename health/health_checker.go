// Package health provides health checking functionality for the CE assist API.
package health

import (
	"net/http"
	"time"

	"github.com/giygas/ceassist-api/interfaces"
)

// sessionLoadDegraded is the share of session capacity above which the
// service reports itself degraded
const sessionLoadDegraded = 0.9

// Compile-time check to ensure HealthCheckerImpl implements HealthChecker
var _ interfaces.HealthChecker = (*HealthCheckerImpl)(nil)

// HealthCheckerImpl implements the interfaces.HealthChecker interface
type HealthCheckerImpl struct {
	dataStore   interfaces.DataStore
	sessions    interfaces.SessionStore
	maxSessions int
}

// NewHealthChecker creates a new health checker with injected dependencies.
// maxSessions of 0 means the session store is unbounded.
func NewHealthChecker(dataStore interfaces.DataStore, sessions interfaces.SessionStore, maxSessions int) *HealthCheckerImpl {
	return &HealthCheckerImpl{
		dataStore:   dataStore,
		sessions:    sessions,
		maxSessions: maxSessions,
	}
}

// HealthCheck returns HTTP-specific health data.
// An empty catalog makes the service unhealthy; a session store close to
// capacity makes it degraded, since new sessions may soon be refused.
func (h *HealthCheckerImpl) HealthCheck() (status string, data map[string]any, httpStatus int) {
	products := h.dataStore.GetProducts()
	devices := h.dataStore.GetDevices()
	reimbursement := h.dataStore.GetReimbursement()
	lastUpdate := h.dataStore.GetLastUpdated()
	activeSessions := h.sessions.Count()

	switch {
	case len(products) == 0 || len(devices) == 0:
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable

	case h.maxSessions > 0 && float64(activeSessions) >= sessionLoadDegraded*float64(h.maxSessions):
		status = "degraded"
		httpStatus = http.StatusOK

	default:
		status = "healthy"
		httpStatus = http.StatusOK
	}

	data = map[string]any{
		"last_update":     lastUpdate.Format(time.RFC3339),
		"products":        len(products),
		"devices":         len(devices),
		"reimbursement":   len(reimbursement),
		"sessions_active": activeSessions,
		"sessions_max":    h.maxSessions,
	}

	return status, data, httpStatus
}
