package api

import (
	"net/http"
	"time"

	"ledger/src/api/handlers"
	"ledger/src/config"
	"ledger/src/utils"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type Server struct {
	Router  *chi.Mux
	Handler handlers.Handler
	Logger  *logrus.Logger
}

func NewServer(cfg *config.Config, logger *logrus.Logger) (*Server, error) {
	handler, err := handlers.NewHandler(cfg)
	if err != nil {
		return nil, err
	}
	server := &Server{
		Router:  chi.NewRouter(),
		Handler: *handler,
		Logger:  logger,
	}
	server.InitRoutes()
	return server, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

// loggerMiddleware carries the service logger on every request context.
func (s *Server) loggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(utils.WithLogger(r.Context(), s.Logger)))
	})
}

func (s *Server) InitRoutes() {
	s.Router.Use(s.loggerMiddleware)

	s.Router.Get("/alive", handlers.Healthcheck)

	s.Router.Route("/api/portfolios/{id}", func(r chi.Router) {
		r.Route("/imports", func(r chi.Router) {
			r.Post("/preview", s.Handler.PreviewImport)
			r.Post("/commit", s.Handler.CommitImport)
			r.Get("/", s.Handler.GetImports)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", s.Handler.GetTransactions)
		})

		r.Route("/holdings", func(r chi.Router) {
			r.Get("/", s.Handler.GetHoldings)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", s.Handler.GetCategories)
			r.Post("/", s.Handler.AddCategory)
			r.Delete("/{label}", s.Handler.RemoveCategory)
		})

		r.Route("/budgets", func(r chi.Router) {
			r.Get("/", s.Handler.GetBudgets)
			r.Post("/", s.Handler.UpsertBudget)
			r.Get("/status", s.Handler.GetBudgetStatus)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/monthly-net", s.Handler.GetMonthlyNet)
			r.Get("/category-totals", s.Handler.GetCategoryTotals)
			r.Get("/export", s.Handler.ExportReport)
		})
	})

	s.Router.Delete("/api/imports/{importID}", s.Handler.DeleteImport)
	s.Router.Delete("/api/budgets/{budgetID}", s.Handler.DeleteBudget)
	s.Router.Put("/api/transactions/{rowID}/category", s.Handler.RecategorizeTransaction)
	s.Router.Put("/api/holdings/{rowID}/category", s.Handler.RecategorizeHolding)
}

func NewHTTPServer(server *Server, cfg *config.Config) *http.Server {
	return &http.Server{
		Addr:         ":" + cfg.Service.Port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		Handler:      server,
	}
}
