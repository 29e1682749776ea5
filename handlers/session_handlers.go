package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/giygas/ceassist-api/catalog/entities"
	"github.com/giygas/ceassist-api/clinical"
	"github.com/giygas/ceassist-api/filter"
	"github.com/giygas/ceassist-api/logging"
	"github.com/giygas/ceassist-api/metrics"
	"github.com/giygas/ceassist-api/navigation"
	"github.com/giygas/ceassist-api/session"
)

// ViewModel is everything a client needs to render a session: the state,
// the listing of the current view, and the payload of an open overlay.
type ViewModel struct {
	SessionID string                                    `json:"sessionId"`
	State     navigation.State                          `json:"state"`
	Applied   *bool                                     `json:"applied,omitempty"`
	Products  *filter.Listing[entities.ProductSeries]   `json:"products,omitempty"`
	Devices   *filter.Listing[entities.ApheresisDevice] `json:"devices,omitempty"`
	Detail    any                                       `json:"detail,omitempty"`
	Modal     any                                       `json:"modal,omitempty"`
}

// freeTextActions carry user-typed values that go through input validation
var freeTextActions = map[navigation.ActionType]bool{
	navigation.ActionSelectMaker:    true,
	navigation.ActionSelectMaterial: true,
	navigation.ActionSelectDisease:  true,
}

func (h *HTTPHandlerImpl) buildViewModel(id string, s navigation.State) ViewModel {
	vm := ViewModel{SessionID: id, State: s}

	switch s.View {
	case navigation.HemodialysisMenu, navigation.ManufacturerBrowser,
		navigation.ClassificationBrowser, navigation.TreatmentBrowser:
		listing := filter.ProductListing(h.dataStore.GetProducts(), s)
		vm.Products = &listing
	case navigation.ApheresisList, navigation.ColumnList, navigation.DiseaseBrowser:
		listing := filter.DeviceListing(h.dataStore.GetDevices(), s)
		vm.Devices = &listing
	}

	switch s.Selection.Kind {
	case navigation.SelectionProduct:
		if p, ok := h.dataStore.GetProductsMap()[s.Selection.ID]; ok {
			vm.Detail = newProductDetail(p)
		}
	case navigation.SelectionDevice:
		if d, ok := h.dataStore.GetDevicesMap()[s.Selection.ID]; ok {
			vm.Detail = d
		}
	}

	switch s.Modal {
	case navigation.ModalReimbursement:
		if rec, ok := h.dataStore.GetReimbursementMap()[s.Filters.Category]; ok {
			vm.Modal = rec
		}
	case navigation.ModalPlasmaSimulation:
		vm.Modal = clinical.Options()
	case navigation.ModalCartGuide:
		vm.Modal = h.dataStore.GetCartGuide()
	}

	return vm
}

// respondSessionError maps store errors to HTTP statuses
func (h *HTTPHandlerImpl) respondSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		h.RespondWithError(w, http.StatusNotFound, "Session not found")
	case errors.Is(err, session.ErrCapacity):
		h.RespondWithError(w, http.StatusServiceUnavailable, "Too many active sessions, try again later")
	default:
		logging.Error("Session store failure", "error", err)
		h.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func (h *HTTPHandlerImpl) sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if err := h.validator.ValidateID(id); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, "Invalid session id: "+err.Error())
		return "", false
	}
	return id, true
}

// CreateSession starts a session at the top menu
func (h *HTTPHandlerImpl) CreateSession(w http.ResponseWriter, r *http.Request) {
	id, state, err := h.sessions.Create()
	if err != nil {
		h.respondSessionError(w, err)
		return
	}
	metrics.SessionsActive.Set(float64(h.sessions.Count()))

	h.RespondWithJSON(w, http.StatusCreated, h.buildViewModel(id, state))
}

// GetSession returns the session's current view model
func (h *HTTPHandlerImpl) GetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	state, err := h.sessions.Get(id)
	if err != nil {
		h.respondSessionError(w, err)
		return
	}
	h.RespondWithJSON(w, http.StatusOK, h.buildViewModel(id, state))
}

// ApplyAction runs one navigation action. An action that does not apply
// is not an error: the state comes back unchanged with applied false.
func (h *HTTPHandlerImpl) ApplyAction(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var action navigation.Action
	if !h.decodeBody(w, r, &action) {
		return
	}
	if action.Type == "" {
		h.RespondWithError(w, http.StatusBadRequest, "Missing action type")
		return
	}
	if freeTextActions[action.Type] && action.Value != "" {
		if err := h.validator.ValidateInput(action.Value); err != nil {
			logging.Warn("Unusual user input", "action", action.Type, "value", action.Value)
			h.RespondWithError(w, http.StatusBadRequest, "Invalid value: "+err.Error())
			return
		}
	}

	var (
		state   navigation.State
		applied bool
		err     error
	)
	if action.Type == navigation.ActionOpenDetail && !h.entityExists(action) {
		state, err = h.sessions.Get(id)
	} else {
		state, applied, err = h.sessions.Apply(id, action)
	}
	if err != nil {
		h.respondSessionError(w, err)
		return
	}

	label := string(action.Type)
	if !action.Type.Valid() {
		label = "unknown"
	}
	metrics.RecordNavigation(label, applied)

	vm := h.buildViewModel(id, state)
	vm.Applied = &applied
	h.RespondWithJSON(w, http.StatusOK, vm)
}

// entityExists reports whether an open_detail action names a catalog entry
func (h *HTTPHandlerImpl) entityExists(action navigation.Action) bool {
	switch navigation.SelectionKind(action.Kind) {
	case navigation.SelectionProduct:
		_, ok := h.dataStore.GetProductsMap()[action.ID]
		return ok
	case navigation.SelectionDevice:
		_, ok := h.dataStore.GetDevicesMap()[action.ID]
		return ok
	}
	return false
}

// DeleteSession ends a session
func (h *HTTPHandlerImpl) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	if err := h.sessions.Delete(id); err != nil {
		h.respondSessionError(w, err)
		return
	}
	metrics.SessionsActive.Set(float64(h.sessions.Count()))

	w.WriteHeader(http.StatusNoContent)
}
