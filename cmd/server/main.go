package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"

	"unirenta/internal/config"
	httpGateway "unirenta/internal/gateways/http"
	"unirenta/internal/notify"
	billingRepository "unirenta/internal/repository/billing/postgres"
	usecaseInternal "unirenta/internal/usecase"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg := config.LoadConfig()
	pgCfg := cfg.Pg
	log := setupLogger(cfg.Env)

	log.Info("starting unirenta billing", slog.String("env", cfg.Env))
	log.Debug("debug messages are enabled")

	databaseUrl := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s",
		pgCfg.User,
		pgCfg.Password,
		pgCfg.Host,
		pgCfg.Port,
		pgCfg.Db)

	pool, err := pgxpool.New(ctx, databaseUrl)
	if err != nil {
		log.Error("failed to init storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	log.Debug("init database")

	br := billingRepository.NewBillingRepository(pool)
	sender := notify.NewEmailSender(notify.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		User:     cfg.SMTP.User,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		AppName:  cfg.SMTP.AppName,
	})

	engine := usecaseInternal.NewSubscription(br, sender)
	useCases := httpGateway.UseCases{
		Sub:     engine,
		Pricing: usecaseInternal.NewPricing(engine),
		Catalog: usecaseInternal.NewCatalog(br, cfg.Cache.TTL, cfg.Cache.Purge),
	}

	server := httpGateway.New(useCases,
		*cfg,
		log,
		httpGateway.WithHost(cfg.Server.Host),
		httpGateway.WithPort(uint16(cfg.Server.Port)),
		httpGateway.WithLogger(log),
		httpGateway.WithTimeout(cfg.Server.Timeout),
	)

	log.Info("starting server", slog.String("address", cfg.Server.Host+":"+strconv.Itoa(cfg.Server.Port)))
	if err := server.Run(ctx); err != nil {
		log.Error(err.Error())
		return
	}
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger
	switch strings.ToLower(env) {
	case envLocal:
		log = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return log
}
