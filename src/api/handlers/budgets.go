package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"ledger/src/models"
	"ledger/src/utils"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetBudgets(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r, 10*time.Second)
	defer cancel()

	budgets, err := h.Controller.GetBudgets(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, budgets, http.StatusOK)
}

// UpsertBudget creates or replaces the budget of one category and month.
func (h *Handler) UpsertBudget(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r, 10*time.Second)
	defer cancel()

	var budget models.Budget
	if err := json.NewDecoder(r.Body).Decode(&budget); err != nil {
		h.HandleErrors(w, utils.NewHTTPError(http.StatusBadRequest, err.Error()))
		return
	}
	budget.PortfolioID = chi.URLParam(r, "id")
	if budget.Category == "" || budget.Month == "" {
		h.HandleErrors(w, utils.NewHTTPError(http.StatusBadRequest, "category and month are required"))
		return
	}
	if _, err := utils.ParseMonth(budget.Month); err != nil {
		h.HandleErrors(w, utils.NewHTTPError(http.StatusUnprocessableEntity, "month must be YYYY-MM"))
		return
	}

	if err := h.Controller.UpsertBudget(ctx, &budget); err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, budget, http.StatusOK)
}

func (h *Handler) DeleteBudget(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r, 10*time.Second)
	defer cancel()

	budgetID, err := strconv.Atoi(chi.URLParam(r, "budgetID"))
	if err != nil {
		h.HandleErrors(w, utils.NewHTTPError(http.StatusBadRequest, "malformed budget id"))
		return
	}
	if err := h.Controller.DeleteBudget(ctx, budgetID); err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, map[string]string{"status": "deleted"}, http.StatusOK)
}

func (h *Handler) GetBudgetStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r, 10*time.Second)
	defer cancel()

	month := r.URL.Query().Get("month")
	if month == "" {
		h.HandleErrors(w, utils.NewHTTPError(http.StatusBadRequest, "month query parameter is required"))
		return
	}
	if _, err := utils.ParseMonth(month); err != nil {
		h.HandleErrors(w, utils.NewHTTPError(http.StatusUnprocessableEntity, "month must be YYYY-MM"))
		return
	}

	statuses, err := h.Controller.GetBudgetStatus(ctx, chi.URLParam(r, "id"), month)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, statuses, http.StatusOK)
}
