package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/giygas/ceassist-api/catalog/entities"
	"github.com/giygas/ceassist-api/clinical"
	"github.com/giygas/ceassist-api/compare"
	"github.com/giygas/ceassist-api/filter"
	"github.com/giygas/ceassist-api/logging"
)

// productDetail is a series with its sizes in ascending order
type productDetail struct {
	entities.ProductSeries
	Sizes       []entities.SizedSpec `json:"sizes"`
	DefaultSize string               `json:"defaultSize"`
}

func newProductDetail(p entities.ProductSeries) productDetail {
	return productDetail{
		ProductSeries: p,
		Sizes:         p.SizedSpecs(),
		DefaultSize:   compare.DefaultSizeFor(p),
	}
}

// optionsResponse is every selector's choices in one payload
type optionsResponse struct {
	filter.Options
	PlasmaExchange clinical.PlasmaOptions `json:"plasmaExchange"`
	DefaultSize    string                 `json:"defaultSize"`
}

// validQueryParams reads the named query parameters and validates each
// non-empty one. It writes the 400 itself and returns false on failure.
func (h *HTTPHandlerImpl) validQueryParams(w http.ResponseWriter, r *http.Request, names ...string) (map[string]string, bool) {
	query := r.URL.Query()
	params := make(map[string]string, len(names))
	for _, name := range names {
		value := query.Get(name)
		if value == "" {
			continue
		}
		if err := h.validator.ValidateInput(value); err != nil {
			logging.Warn("Unusual user input", "param", name, "value", value)
			h.RespondWithError(w, http.StatusBadRequest, "Invalid "+name+": "+err.Error())
			return nil, false
		}
		params[name] = value
	}
	return params, true
}

// ListProducts returns the product series matching the query filters
func (h *HTTPHandlerImpl) ListProducts(w http.ResponseWriter, r *http.Request) {
	params, ok := h.validQueryParams(w, r, "maker", "maker_match", "classification", "material", "type", "hdf_class")
	if !ok {
		return
	}

	q := filter.ProductQuery{
		Maker:          params["maker"],
		MakerMatch:     filter.MatchContains,
		Classification: entities.JSDTClass(params["classification"]),
		Material:       params["material"],
		ProductType:    entities.ProductType(params["type"]),
		HDFClass:       entities.HDFClass(params["hdf_class"]),
	}

	switch params["maker_match"] {
	case "", string(filter.MatchContains):
	case string(filter.MatchExact):
		q.MakerMatch = filter.MatchExact
	default:
		h.RespondWithError(w, http.StatusBadRequest, "maker_match must be contains or exact")
		return
	}
	if q.Classification != "" && !q.Classification.Valid() {
		h.RespondWithError(w, http.StatusBadRequest, "Unknown classification")
		return
	}
	if q.ProductType != "" && !q.ProductType.Valid() {
		h.RespondWithError(w, http.StatusBadRequest, "type must be dialyzer or hemodiafilter")
		return
	}
	if q.HDFClass != "" && !q.HDFClass.Valid() {
		h.RespondWithError(w, http.StatusBadRequest, "Unknown hdf_class")
		return
	}

	h.RespondWithJSON(w, http.StatusOK, filter.Products(h.dataStore.GetProducts(), q))
}

// lookupProduct resolves the {id} URL parameter, writing 400/404 on failure
func (h *HTTPHandlerImpl) lookupProduct(w http.ResponseWriter, r *http.Request) (entities.ProductSeries, bool) {
	id := chi.URLParam(r, "id")
	if err := h.validator.ValidateID(id); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, "Invalid product id: "+err.Error())
		return entities.ProductSeries{}, false
	}

	p, ok := h.dataStore.GetProductsMap()[id]
	if !ok {
		h.RespondWithError(w, http.StatusNotFound, "Product not found")
		return entities.ProductSeries{}, false
	}
	return p, true
}

// GetProduct returns one series with its sizes
func (h *HTTPHandlerImpl) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, ok := h.lookupProduct(w, r)
	if !ok {
		return
	}
	h.RespondWithJSON(w, http.StatusOK, newProductDetail(p))
}

// GetProductSizes returns a series' sizes and the size preselected for it
func (h *HTTPHandlerImpl) GetProductSizes(w http.ResponseWriter, r *http.Request) {
	p, ok := h.lookupProduct(w, r)
	if !ok {
		return
	}

	sizes := make([]string, 0, len(p.Specs))
	for _, s := range p.Sizes() {
		sizes = append(sizes, entities.FormatSize(s))
	}

	h.RespondWithJSON(w, http.StatusOK, map[string]any{
		"id":          p.ID,
		"sizes":       sizes,
		"defaultSize": compare.DefaultSizeFor(p),
	})
}

// ListDevices returns the apheresis devices matching category and disease
func (h *HTTPHandlerImpl) ListDevices(w http.ResponseWriter, r *http.Request) {
	params, ok := h.validQueryParams(w, r, "category", "disease")
	if !ok {
		return
	}

	q := filter.DeviceQuery{
		Category: entities.Category(params["category"]),
		Disease:  params["disease"],
	}
	if q.Category != "" && !q.Category.Valid() {
		h.RespondWithError(w, http.StatusBadRequest, "Unknown category")
		return
	}

	h.RespondWithJSON(w, http.StatusOK, filter.Devices(h.dataStore.GetDevices(), q))
}

// GetDevice returns one apheresis device or column
func (h *HTTPHandlerImpl) GetDevice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.validator.ValidateID(id); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, "Invalid device id: "+err.Error())
		return
	}

	d, ok := h.dataStore.GetDevicesMap()[id]
	if !ok {
		h.RespondWithError(w, http.StatusNotFound, "Device not found")
		return
	}
	h.RespondWithJSON(w, http.StatusOK, d)
}

// GetOptions returns the selector choices derived from the catalog
func (h *HTTPHandlerImpl) GetOptions(w http.ResponseWriter, r *http.Request) {
	h.RespondWithJSON(w, http.StatusOK, optionsResponse{
		Options:        filter.BuildOptions(h.dataStore.GetProducts(), h.dataStore.GetDevices()),
		PlasmaExchange: clinical.Options(),
		DefaultSize:    compare.DefaultSize,
	})
}

// ListReimbursement returns every reimbursement record
func (h *HTTPHandlerImpl) ListReimbursement(w http.ResponseWriter, r *http.Request) {
	h.RespondWithJSON(w, http.StatusOK, h.dataStore.GetReimbursement())
}

// GetReimbursement returns the record of one therapy category
func (h *HTTPHandlerImpl) GetReimbursement(w http.ResponseWriter, r *http.Request) {
	category := entities.Category(chi.URLParam(r, "category"))
	if !category.Valid() {
		h.RespondWithError(w, http.StatusBadRequest, "Unknown category")
		return
	}

	rec, ok := h.dataStore.GetReimbursementMap()[category]
	if !ok {
		h.RespondWithError(w, http.StatusNotFound, "No reimbursement record for category")
		return
	}
	h.RespondWithJSON(w, http.StatusOK, rec)
}

// GetCartGuide returns the CART procedure guide
func (h *HTTPHandlerImpl) GetCartGuide(w http.ResponseWriter, r *http.Request) {
	h.RespondWithJSON(w, http.StatusOK, h.dataStore.GetCartGuide())
}
