package health

import (
	"net/http"
	"testing"
	"time"

	"github.com/giygas/ceassist-api/catalog/entities"
	"github.com/giygas/ceassist-api/data"
	"github.com/giygas/ceassist-api/logging"
	"github.com/giygas/ceassist-api/session"
)

func populatedStore() *data.DataContainer {
	dc := data.NewDataContainer()
	dc.UpdateData(&entities.Catalog{
		Products: []entities.ProductSeries{{ID: "toray-nv-s"}},
		Devices:  []entities.ApheresisDevice{{ID: "pmx", Category: entities.CategoryDHP}},
		Reimbursement: []entities.ReimbursementRecord{
			{Category: entities.CategoryDHP},
		},
	})
	return dc
}

func TestHealthCheck(t *testing.T) {
	logging.InitLogger("")

	testCases := []struct {
		name        string
		store       *data.DataContainer
		maxSessions int
		open        int
		wantStatus  string
		wantHTTP    int
	}{
		{"empty catalog", data.NewDataContainer(), 0, 0, "unhealthy", http.StatusServiceUnavailable},
		{"healthy unbounded", populatedStore(), 0, 5, "healthy", http.StatusOK},
		{"healthy below threshold", populatedStore(), 10, 8, "healthy", http.StatusOK},
		{"degraded near capacity", populatedStore(), 10, 9, "degraded", http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sessions := session.NewStore(tc.maxSessions)
			for range tc.open {
				if _, _, err := sessions.Create(); err != nil {
					t.Fatalf("Failed to create session: %v", err)
				}
			}

			checker := NewHealthChecker(tc.store, sessions, tc.maxSessions)
			status, details, httpStatus := checker.HealthCheck()

			if status != tc.wantStatus {
				t.Errorf("Expected status %s, got %s", tc.wantStatus, status)
			}
			if httpStatus != tc.wantHTTP {
				t.Errorf("Expected HTTP %d, got %d", tc.wantHTTP, httpStatus)
			}
			if details["sessions_active"] != tc.open {
				t.Errorf("Expected %d active sessions, got %v", tc.open, details["sessions_active"])
			}
		})
	}
}

func TestHealthCheckDetails(t *testing.T) {
	store := populatedStore()
	checker := NewHealthChecker(store, session.NewStore(0), 0)

	_, details, _ := checker.HealthCheck()

	if details["products"] != 1 || details["devices"] != 1 || details["reimbursement"] != 1 {
		t.Errorf("Unexpected catalog counts: %v", details)
	}
	if details["last_update"] != store.GetLastUpdated().Format(time.RFC3339) {
		t.Errorf("Expected last_update %s, got %v", store.GetLastUpdated().Format(time.RFC3339), details["last_update"])
	}
}
