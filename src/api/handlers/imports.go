package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"ledger/src/adapters"
	"ledger/src/schemas"
	"ledger/src/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const maxUploadBytes = 32 << 20

// PreviewImport accepts either a multipart upload of statement files or a
// JSON body with pasted text, and returns editable drafts. Nothing is
// persisted.
func (h *Handler) PreviewImport(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r, 30*time.Second)
	defer cancel()

	portfolioID := chi.URLParam(r, "id")
	if portfolioID == "" {
		h.HandleErrors(w, utils.NewHTTPError(http.StatusBadRequest, "missing portfolio id"))
		return
	}

	var payloads []adapters.Payload
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req schemas.PreviewTextRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.HandleErrors(w, utils.NewHTTPError(http.StatusBadRequest, err.Error()))
			return
		}
		if strings.TrimSpace(req.Text) == "" {
			h.HandleErrors(w, utils.NewHTTPError(http.StatusBadRequest, "empty text"))
			return
		}
		payloads = append(payloads, adapters.Payload{
			Filename:    "pasted.txt",
			Institution: req.Institution,
			Content:     []byte(req.Text),
		})
	} else {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			h.HandleErrors(w, utils.NewHTTPError(http.StatusBadRequest, err.Error()))
			return
		}
		institution := r.FormValue("institution")
		files := r.MultipartForm.File["files"]
		if len(files) == 0 {
			h.HandleErrors(w, utils.NewHTTPError(http.StatusBadRequest, "no files submitted"))
			return
		}
		for _, header := range files {
			file, err := header.Open()
			if err != nil {
				h.HandleErrors(w, err)
				return
			}
			content, err := io.ReadAll(file)
			file.Close()
			if err != nil {
				h.HandleErrors(w, err)
				return
			}
			payloads = append(payloads, adapters.Payload{
				Filename:    header.Filename,
				Institution: institution,
				Content:     content,
			})
		}
	}

	response, err := h.Controller.PreviewFiles(ctx, payloads, portfolioID)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, response, http.StatusOK)
}

// CommitImport persists an edited draft as one atomic import.
func (h *Handler) CommitImport(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r, 30*time.Second)
	defer cancel()

	portfolioID := chi.URLParam(r, "id")
	var draft schemas.PreviewDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		h.HandleErrors(w, utils.NewHTTPError(http.StatusBadRequest, err.Error()))
		return
	}

	record, err := h.Controller.CommitDraft(ctx, &draft, portfolioID)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, record, http.StatusCreated)
}

func (h *Handler) GetImports(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r, 10*time.Second)
	defer cancel()

	summaries, err := h.Controller.GetImports(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, summaries, http.StatusOK)
}

func (h *Handler) DeleteImport(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r, 10*time.Second)
	defer cancel()

	importID, err := uuid.Parse(chi.URLParam(r, "importID"))
	if err != nil {
		h.HandleErrors(w, utils.NewHTTPError(http.StatusBadRequest, "malformed import id"))
		return
	}
	if err := h.Controller.DeleteImport(ctx, importID); err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, map[string]string{"status": "deleted"}, http.StatusOK)
}
