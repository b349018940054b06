package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mondaymerch/ecommerce-api/app/api"
	"github.com/mondaymerch/ecommerce-api/app/auth"
	"github.com/mondaymerch/ecommerce-api/app/catalog"
	"github.com/mondaymerch/ecommerce-api/app/categories"
	"github.com/mondaymerch/ecommerce-api/app/health"
	"github.com/mondaymerch/ecommerce-api/app/orders"
	"github.com/mondaymerch/ecommerce-api/config"
	"github.com/mondaymerch/ecommerce-api/database"
	"github.com/mondaymerch/ecommerce-api/logger"
	"github.com/mondaymerch/ecommerce-api/models"
	"github.com/mondaymerch/ecommerce-api/seed"
)

func main() {
	cfg := config.Load()

	log := logger.New(logger.Config{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		Output:     cfg.LogOutput,
		FilePath:   cfg.LogFile,
		MaxSize:    100,
		MaxBackups: 10,
		MaxAge:     30,
	})

	log.Info("starting", "app", cfg.AppName, "addr", cfg.HTTPAddr)

	db, err := database.Open(database.Config{
		DSN:             cfg.DatabaseDSN,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
		LogQueries:      cfg.Debug,
	}, log)
	if err != nil {
		log.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Error("database close failed", "error", err)
		}
	}()

	// Schema creation and seeding are best-effort: log and continue rather
	// than crash the process.
	if err := database.Migrate(db); err != nil {
		log.Warn("schema migration failed, database may be incomplete", "error", err)
	}
	if cfg.SeedOnStartup {
		if err := seed.IfEmpty(context.Background(), db, log); err != nil {
			log.Warn("seeding failed, seed data may be missing", "error", err)
		}
	}

	usersRepo := models.NewUsersRepository(db)
	productsRepo := models.NewProductsRepository(db)
	categoriesRepo := models.NewCategoriesRepository(db)
	ordersRepo := models.NewOrdersRepository(db)

	tokens := auth.NewTokenIssuer(cfg.SecretKey, cfg.TokenTTL)
	authHandler := auth.NewAuthHandler(usersRepo, tokens, log)
	catalogHandler := catalog.NewCatalogHandler(productsRepo, log)
	categoryHandler := categories.NewCategoryHandler(categoriesRepo, log)
	ordersHandler := orders.NewOrdersHandler(ordersRepo, log)
	healthHandler := health.NewHealthHandler(database.NewHealth(db), log)

	requireAuth := authHandler.Middleware

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", healthHandler.HandleRoot)
	mux.HandleFunc("GET /health", healthHandler.HandleGet)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.HandleLogin)
	mux.Handle("GET /api/v1/products", requireAuth(http.HandlerFunc(catalogHandler.HandleGet)))
	mux.Handle("GET /api/v1/categories", requireAuth(http.HandlerFunc(categoryHandler.HandleGetAll)))
	mux.Handle("POST /api/v1/categories", requireAuth(http.HandlerFunc(categoryHandler.HandleCreate)))
	mux.Handle("POST /api/v1/orders", requireAuth(http.HandlerFunc(ordersHandler.HandleCreate)))
	mux.Handle("GET /api/v1/orders", requireAuth(http.HandlerFunc(ordersHandler.HandleList)))

	handler := api.RequestID(api.AccessLog(log, api.Recover(log, mux)))

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		log.Info("http server listening", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "error", err)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http server shutdown failed", "error", err)
	}
	log.Info("stopped")
}
