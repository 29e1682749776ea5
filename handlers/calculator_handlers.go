package handlers

import (
	"net/http"

	"github.com/giygas/ceassist-api/clinical"
	"github.com/giygas/ceassist-api/compare"
	"github.com/giygas/ceassist-api/metrics"
)

// Compare resolves both sides and returns the comparison table. A side
// that does not resolve to a size is not an error: the result is simply
// not ready.
func (h *HTTPHandlerImpl) Compare(w http.ResponseWriter, r *http.Request) {
	var req compare.Request
	if !h.decodeBody(w, r, &req) {
		return
	}

	for _, side := range []compare.Side{req.Source, req.Target} {
		if side.Maker != "" {
			if err := h.validator.ValidateInput(side.Maker); err != nil {
				h.RespondWithError(w, http.StatusBadRequest, "Invalid maker: "+err.Error())
				return
			}
		}
		if side.Product != "" {
			if err := h.validator.ValidateID(side.Product); err != nil {
				h.RespondWithError(w, http.StatusBadRequest, "Invalid product: "+err.Error())
				return
			}
		}
		if side.Size != "" {
			if err := h.validator.ValidateInput(side.Size); err != nil {
				h.RespondWithError(w, http.StatusBadRequest, "Invalid size: "+err.Error())
				return
			}
		}
	}

	res := compare.Compare(h.dataStore.GetProducts(), req)

	status := clinical.StatusIncomplete
	if res.Ready {
		status = clinical.StatusOK
	}
	metrics.RecordCalculatorRun("compare", string(status))

	h.RespondWithJSON(w, http.StatusOK, res)
}

// CalculatePlasmaExchange sizes a plasma exchange. Invalid numbers yield an
// incomplete result with status 200, never an error response.
func (h *HTTPHandlerImpl) CalculatePlasmaExchange(w http.ResponseWriter, r *http.Request) {
	var in clinical.PlasmaExchangeInput
	if !h.decodeBody(w, r, &in) {
		return
	}

	res := clinical.CalculatePlasmaExchange(in)
	metrics.RecordCalculatorRun("plasma_exchange", string(res.Status))

	h.RespondWithJSON(w, http.StatusOK, res)
}

// CalculateClearanceIndex computes the clearance index
func (h *HTTPHandlerImpl) CalculateClearanceIndex(w http.ResponseWriter, r *http.Request) {
	var in clinical.ClearanceInput
	if !h.decodeBody(w, r, &in) {
		return
	}

	res := clinical.CalculateClearance(in)
	metrics.RecordCalculatorRun("clearance_index", string(res.Status))

	h.RespondWithJSON(w, http.StatusOK, res)
}
