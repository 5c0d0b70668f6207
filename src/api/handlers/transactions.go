package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"ledger/src/repositories"
	"ledger/src/schemas"
	"ledger/src/utils"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r, 10*time.Second)
	defer cancel()

	filters := repositories.TransactionFilters{
		Month:       r.URL.Query().Get("month"),
		Category:    r.URL.Query().Get("category"),
		Subcategory: r.URL.Query().Get("subcategory"),
		Institution: r.URL.Query().Get("institution"),
	}
	transactions, err := h.Controller.GetTransactions(ctx, chi.URLParam(r, "id"), filters)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, transactions, http.StatusOK)
}

func (h *Handler) RecategorizeTransaction(w http.ResponseWriter, r *http.Request) {
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

	if err := h.Controller.RecategorizeTransaction(ctx, rowID, req.Category, req.Subcategory); err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, map[string]string{"status": "updated"}, http.StatusOK)
}
