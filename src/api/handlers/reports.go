package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetMonthlyNet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r, 10*time.Second)
	defer cancel()

	rows, err := h.Controller.GetMonthlyNet(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, rows, http.StatusOK)
}

func (h *Handler) GetCategoryTotals(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r, 10*time.Second)
	defer cancel()

	rows, err := h.Controller.GetCategoryTotals(ctx, chi.URLParam(r, "id"), r.URL.Query().Get("month"))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, rows, http.StatusOK)
}

// ExportReport streams the portfolio's derived views as an XLSX workbook.
func (h *Handler) ExportReport(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r, 30*time.Second)
	defer cancel()

	portfolioID := chi.URLParam(r, "id")
	file, err := h.Controller.GenerateExport(ctx, portfolioID)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="ledger_%s.xlsx"`, portfolioID))
	if err := file.Write(w); err != nil {
		h.HandleErrors(w, err)
	}
}
