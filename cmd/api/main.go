package main

import (
	"net/http"
	"os"

	"pet-adoption-market/internal/adapters/auth/odin"
	"pet-adoption-market/internal/platform/config"
	"pet-adoption-market/internal/platform/logger"
	"pet-adoption-market/internal/ports/auth"
	"pet-adoption-market/internal/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config error: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    "pet-adoption-market",
	})

	// Sin Odin configurado, sin verifier: modo dev (X-Debug-User-ID).
	var verifier auth.AuthVerifier
	if cfg.Odin.BaseURL != "" {
		client, err := odin.NewClient(odin.Config{
			BaseURL: cfg.Odin.BaseURL,
			APIKey:  cfg.Odin.APIKey,
		})
		if err != nil {
			log.Error("odin client init failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		verifier = odin.NewVerifier(client)
	}

	r := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		DSN:          cfg.Database.DSN,
		Log:          log,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	log.Info("starting server", map[string]any{"addr": cfg.Server.Addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
