package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"expodesk_backend/internal/crm"
	"expodesk_backend/internal/customers"
	"expodesk_backend/internal/erp"
	"expodesk_backend/internal/flow"
	apphttp "expodesk_backend/internal/http"
	"expodesk_backend/internal/http/router"
	"expodesk_backend/internal/quotations"
	"expodesk_backend/internal/vies"
	"expodesk_backend/platform/config"
	"expodesk_backend/platform/logger"
	"expodesk_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	val := validator.New()

	// ========================================================================
	// External collaborators
	// ========================================================================

	erpClient, err := erp.NewClient(cfg, log)
	if err != nil {
		panic("failed to initialize ERP client: " + err.Error())
	}
	if _, err := erpClient.Authenticate(ctx); err != nil {
		log.Error("ERP authentication failed", "error", err)
		panic("ERP authentication failed: " + err.Error())
	}
	log.Info("ERP session established", "database", cfg.ERPDatabase)

	viesClient := vies.NewClient(cfg, log)
	crmModule := crm.NewModule(cfg, log)
	tokens := flow.NewManager(cfg.FlowTokenSecret, cfg.FlowTokenTTL)

	// ========================================================================
	// Domain modules
	// ========================================================================

	customersModule := customers.NewModule(erpClient, viesClient, tokens, cfg, val, log)
	quotationsModule := quotations.NewModule(erpClient, viesClient, crmModule.Reconciler(), tokens, cfg, val, log)

	// ========================================================================
	// HTTP layer
	// ========================================================================

	app := &apphttp.App{
		Config: cfg,
		Logger: log,
		Modules: []apphttp.Module{
			customersModule,
			quotationsModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = shutdownCtx
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}
