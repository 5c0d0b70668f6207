package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"ledger/src/adapters"
	"ledger/src/api/controllers"
	"ledger/src/clients/pricing"
	"ledger/src/config"
	"ledger/src/database"
	"ledger/src/repositories"
	"ledger/src/services"
	"ledger/src/utils"
	redis_utils "ledger/src/utils/redis"
)

type Handler struct {
	Controller controllers.IController
}

func NewHandler(cfg *config.Config) (*Handler, error) {
	db, err := database.SetupDB(cfg)
	if err != nil {
		return nil, err
	}

	var cacheHandler pricing.CacheHandlerI
	if cfg.Databases.Redis.Host != "" {
		redisHandler, err := redis_utils.NewRedisHandler(cfg)
		if err != nil {
			return nil, err
		}
		cacheHandler = redisHandler
	}
	pricingClient, err := pricing.NewClient(cfg, cacheHandler)
	if err != nil {
		return nil, err
	}

	importRepo := repositories.NewImportRepository(db)
	transactionRepo := repositories.NewTransactionRepository(db)
	holdingRepo := repositories.NewHoldingRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	budgetRepo := repositories.NewBudgetRepository(db)

	mappingService := services.NewMappingService()
	importService := services.NewImportService(adapters.NewRegistry(), mappingService, importRepo, categoryRepo)
	taxonomyService := services.NewTaxonomyService(categoryRepo, transactionRepo, holdingRepo)
	aggregationService := services.NewAggregationService(transactionRepo, budgetRepo, importRepo)
	exportService := services.NewExportService(aggregationService)

	controller := controllers.NewController(
		importService,
		taxonomyService,
		aggregationService,
		exportService,
		pricingClient,
		transactionRepo,
		holdingRepo,
		budgetRepo,
		importRepo,
	)
	return &Handler{Controller: controller}, nil
}

func contextWithTimeout(r *http.Request, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), d)
}

func (h *Handler) respond(w http.ResponseWriter, _ *http.Request, data interface{}, status int) {
	res, err := json.Marshal(data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(res)
}

// HandleErrors maps domain errors onto HTTP status codes. Validation and
// degenerate-batch failures come back 422 so the caller can edit the draft
// and retry; ledger write failures come back 503 for the same reason.
func (h *Handler) HandleErrors(w http.ResponseWriter, err error) {
	var httpErr *utils.HTTPError
	var extractionErr *adapters.ExtractionError
	var mappingErr *services.IncompleteMappingError
	var noRowsErr *services.NoValidRowsError
	var conflictErr *services.TaxonomyConflictError
	var writeErr *services.LedgerWriteError

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		h.respond(w, nil, map[string]string{"error": "Request timed out"}, http.StatusGatewayTimeout)
	case errors.As(err, &httpErr):
		h.respond(w, nil, map[string]string{"error": httpErr.Message}, httpErr.Code)
	case errors.As(err, &extractionErr):
		h.respond(w, nil, map[string]string{"error": extractionErr.Error()}, http.StatusBadRequest)
	case errors.As(err, &mappingErr):
		h.respond(w, nil, map[string]string{"error": mappingErr.Error()}, http.StatusUnprocessableEntity)
	case errors.As(err, &noRowsErr):
		h.respond(w, nil, map[string]string{"error": noRowsErr.Error()}, http.StatusUnprocessableEntity)
	case errors.As(err, &conflictErr):
		h.respond(w, nil, map[string]string{"error": conflictErr.Error()}, http.StatusConflict)
	case errors.As(err, &writeErr):
		h.respond(w, nil, map[string]string{"error": writeErr.Error()}, http.StatusServiceUnavailable)
	case errors.Is(err, repositories.ErrNotFound):
		h.respond(w, nil, map[string]string{"error": err.Error()}, http.StatusNotFound)
	case err != nil:
		h.respond(w, nil, map[string]string{"error": err.Error()}, http.StatusInternalServerError)
	default:
		h.respond(w, nil, map[string]string{"error": "Unhandled error"}, http.StatusInternalServerError)
	}
}

func Healthcheck(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		fmt.Fprintf(w, "Im alive!")
	} else {
		fmt.Fprintf(w, "Method not available: %s", r.Method)
	}
}
