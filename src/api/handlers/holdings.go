package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"ledger/src/schemas"
	"ledger/src/utils"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetHoldings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r, 15*time.Second)
	defer cancel()

	priced := r.URL.Query().Get("priced") == "true"
	holdings, err := h.Controller.GetHoldings(ctx, chi.URLParam(r, "id"), priced)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, holdings, http.StatusOK)
}

func (h *Handler) RecategorizeHolding(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r, 10*time.Second)
	defer cancel()

	rowID, err := strconv.Atoi(chi.URLParam(r, "rowID"))
	if err != nil {
		h.HandleErrors(w, utils.NewHTTPError(http.StatusBadRequest, "malformed row id"))
		return
	}
	var req schemas.RecategorizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.HandleErrors(w, utils.NewHTTPError(http.StatusBadRequest, err.Error()))
		return
	}

	if err := h.Controller.RecategorizeHolding(ctx, rowID, req.Category); err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, map[string]string{"status": "updated"}, http.StatusOK)
}
