package main

import (
	"errors"
	"log"
	"net/http"
	"os"

	"ledger/src/api"
	"ledger/src/config"
	"ledger/src/utils"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("./settings", os.Getenv("ENV"))
	if err != nil {
		log.Println(err, "Error while loading config")
		return
	}

	errC, err := run(cfg)
	if err != nil {
		log.Println(err, "Couldn't run")
		return
	}

	if err := <-errC; err != nil {
		log.Println(err, "Error while running")
	}
}

func run(cfg *config.Config) (<-chan error, error) {
	errC := make(chan error, 1)

	logger := utils.NewLogger(utils.ParseLevel(cfg.Logging.Level), cfg.Logging.LogToFile, cfg.Logging.FilePath)

	server, err := api.NewServer(cfg, logger)
	if err != nil {
		return nil, err
	}
	httpServer := api.NewHTTPServer(server, cfg)

	go func() {
		logger.Infof("starting server on port %s", cfg.Service.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("an error raised while serving: %v", err)
			errC <- err
		}
	}()
	return errC, nil
}
