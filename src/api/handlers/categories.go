package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"ledger/src/utils"

	"github.com/go-chi/chi/v5"
)

type categoryRequest struct {
	Label string `json:"label"`
}

func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r, 10*time.Second)
	defer cancel()

	categories, err := h.Controller.GetCategories(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, categories, http.StatusOK)
}

func (h *Handler) AddCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r, 10*time.Second)
	defer cancel()

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.HandleErrors(w, utils.NewHTTPError(http.StatusBadRequest, err.Error()))
		return
	}
	if strings.TrimSpace(req.Label) == "" {
		h.HandleErrors(w, utils.NewHTTPError(http.StatusBadRequest, "empty category label"))
		return
	}

	if err := h.Controller.AddCategory(ctx, chi.URLParam(r, "id"), req.Label); err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, map[string]string{"status": "created"}, http.StatusCreated)
}

func (h *Handler) RemoveCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r, 10*time.Second)
	defer cancel()

	label := chi.URLParam(r, "label")
	cascade := r.URL.Query().Get("cascade") == "true"

	if err := h.Controller.RemoveCategory(ctx, chi.URLParam(r, "id"), label, cascade); err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, map[string]string{"status": "deleted"}, http.StatusOK)
}
