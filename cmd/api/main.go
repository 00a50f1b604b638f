package main

import (
	"net/http"
	"os"
	"time"

	_ "animint/docs"
	jwtauth "animint/internal/adapters/auth/jwt"
	"animint/internal/platform/logger"
	"animint/internal/platform/metrics"
	"animint/internal/ports/auth"
	"animint/internal/router"
)

func main() {
	log := logger.NewFromEnv()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	// sin JWT_SECRET queda en modo dev (X-Debug-Identity)
	var verifier auth.AuthVerifier
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		verifier = jwtauth.NewVerifier([]byte(secret))
	}

	r := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		Metrics:      metrics.New(),
	})

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": addr, "dev_auth": verifier == nil})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"err": err.Error()})
		os.Exit(1)
	}
}
