package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"DrillReportBot/internal/config"
	"DrillReportBot/internal/export"
	"DrillReportBot/internal/flow"
	"DrillReportBot/internal/graceful"
	"DrillReportBot/internal/telegram"
	"DrillReportBot/internal/utils/logger/handlers/slogpretty"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

var Version = "0.1"

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info(
		"starting drilling report bot",
		slog.String("env", cfg.Env),
		slog.String("version", Version),
	)

	engine := flow.NewEngine(log)
	exporter := export.NewPDF(log, cfg.ExportConfig.FontPath, cfg.ExportConfig.TemplatePath)
	tgBot := telegram.New(log, cfg, engine, exporter)
	if tgBot == nil {
		log.Error("failed to create telegram bot")
		os.Exit(1)
	}

	maxSecond := 15 * time.Second
	waitShutdown := graceful.GracefulShutdown(
		context.Background(),
		maxSecond,
		map[string]graceful.Operation{
			"Telegram bot": func(ctx context.Context) error {
				return tgBot.Shutdown(ctx)
			},
		},
		log,
	)

	go tgBot.Start(30)

	<-waitShutdown
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog(slog.LevelDebug)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = setupPrettySlog(slog.LevelInfo)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}

func setupPrettySlog(level slog.Level) *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: level,
		},
	}
	handler := opts.NewPrettyHandler(os.Stdout)
	return slog.New(handler)
}
