package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"finiquitos/internal/db"
	"finiquitos/internal/domain/audit"
	"finiquitos/internal/domain/auth"
	"finiquitos/internal/domain/settlement"
	"finiquitos/internal/platform/config"
	cryptoutil "finiquitos/internal/platform/crypto"
	authhandler "finiquitos/internal/transport/http/handlers/auth"
	settlementhandler "finiquitos/internal/transport/http/handlers/settlement"
	"finiquitos/internal/transport/http/middleware"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config invalid: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}

	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	cryptoSvc, err := cryptoutil.New(cfg.DataEncryptionKey)
	if err != nil {
		log.Fatalf("encryption key invalid: %v", err)
	}

	authStore := auth.NewStore(pool)
	settlementStore := settlement.NewStore(pool)
	settlementSvc := settlement.NewService(settlementStore, cryptoSvc, settlement.Caps{
		MinimumWage:                 cfg.MinimumWage,
		MinimumWageBorder:           cfg.MinimumWageBorder,
		SeniorityPremiumCapMultiple: cfg.SeniorityPremiumCap,
	}, settlement.Defaults{
		AguinaldoDays:          cfg.AguinaldoDays,
		VacationDays:           cfg.VacationDays,
		VacationPremiumPercent: cfg.VacationPremiumPercent,
		DaysPerMonth:           cfg.DaysPerMonth,
	}, cfg.StatementDir)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authHandler := authhandler.NewHandler(authStore, cfg.JWTSecret)
		r.Post("/auth/login", authHandler.HandleLogin)
		r.Post("/auth/logout", authHandler.HandleLogout)
		r.Post("/auth/refresh", authHandler.HandleRefresh)

		settlementHandler := settlementhandler.NewHandler(settlementSvc, audit.New(pool), authStore)
		settlementHandler.RegisterRoutes(r)
	})

	log.Printf("finiquitos server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
