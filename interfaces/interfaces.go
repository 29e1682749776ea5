// Package interfaces defines the contracts between the packages of the
// CE assist API so each one can be tested against a fake of the others.
package interfaces

import (
	"net/http"
	"time"

	"github.com/giygas/ceassist-api/catalog/entities"
	"github.com/giygas/ceassist-api/navigation"
)

// DataQualityReport summarizes catalog issues that do not block start-up
type DataQualityReport struct {
	ProductsWithoutB2MG            int                 `json:"products_without_b2mg"`
	ProductsWithoutB2MGIDs         []string            `json:"products_without_b2mg_ids"`
	DevicesWithoutItems            int                 `json:"devices_without_items"`
	CategoriesWithoutDevices       []entities.Category `json:"categories_without_devices"`
	CategoriesWithoutReimbursement []entities.Category `json:"categories_without_reimbursement"`
	MakersWithSingleProduct        []string            `json:"makers_with_single_product"`
}

// DataStore defines the contract for catalog storage.
// The snapshot is replaced atomically and never mutated in place.
type DataStore interface {
	GetProducts() []entities.ProductSeries
	GetProductsMap() map[string]entities.ProductSeries
	GetDevices() []entities.ApheresisDevice
	GetDevicesMap() map[string]entities.ApheresisDevice
	GetReimbursement() []entities.ReimbursementRecord
	GetReimbursementMap() map[entities.Category]entities.ReimbursementRecord
	GetCartGuide() entities.CartGuide
	GetLastUpdated() time.Time
	GetServerStartTime() time.Time

	UpdateData(catalog *entities.Catalog)
}

// CatalogLoader reads the catalog definitions
type CatalogLoader interface {
	Load() (*entities.Catalog, error)
}

// SessionStore keeps one navigation state per client session
type SessionStore interface {
	Create() (id string, state navigation.State, err error)
	Get(id string) (navigation.State, error)
	// Apply runs the action against the session's state under the store
	// lock and reports whether it applied.
	Apply(id string, action navigation.Action) (navigation.State, bool, error)
	Delete(id string) error
	// Sweep evicts sessions idle since before the cutoff and returns how many
	Sweep(cutoff time.Time) int
	Count() int
}

// Scheduler defines the contract for background jobs
type Scheduler interface {
	Start() error
	Stop()
}

// HTTPHandler defines the contract for HTTP request handlers
type HTTPHandler interface {
	ListProducts(w http.ResponseWriter, r *http.Request)
	GetProduct(w http.ResponseWriter, r *http.Request)
	GetProductSizes(w http.ResponseWriter, r *http.Request)
	ListDevices(w http.ResponseWriter, r *http.Request)
	GetDevice(w http.ResponseWriter, r *http.Request)
	GetOptions(w http.ResponseWriter, r *http.Request)
	ListReimbursement(w http.ResponseWriter, r *http.Request)
	GetReimbursement(w http.ResponseWriter, r *http.Request)
	GetCartGuide(w http.ResponseWriter, r *http.Request)

	Compare(w http.ResponseWriter, r *http.Request)
	CalculatePlasmaExchange(w http.ResponseWriter, r *http.Request)
	CalculateClearanceIndex(w http.ResponseWriter, r *http.Request)

	CreateSession(w http.ResponseWriter, r *http.Request)
	GetSession(w http.ResponseWriter, r *http.Request)
	ApplyAction(w http.ResponseWriter, r *http.Request)
	DeleteSession(w http.ResponseWriter, r *http.Request)

	HealthCheck(w http.ResponseWriter, r *http.Request)
}

// HealthChecker defines the contract for health check functionality
type HealthChecker interface {
	// HealthCheck returns the status, its details and the HTTP code to serve
	HealthCheck() (status string, details map[string]any, httpStatus int)
}

// DataValidator defines the contract for catalog and input validation
type DataValidator interface {
	// ValidateCatalog rejects a catalog that would break lookups or filters
	ValidateCatalog(catalog *entities.Catalog) error

	// ReportDataQuality lists non-fatal catalog gaps
	ReportDataQuality(catalog *entities.Catalog) *DataQualityReport

	// ValidateInput validates free-text filter values
	ValidateInput(input string) error

	// ValidateID validates catalog and session identifiers
	ValidateID(input string) error
}
