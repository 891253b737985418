package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/cruisyconcierge/cruisy-ambassador/internal/buildinfo"
	"github.com/cruisyconcierge/cruisy-ambassador/internal/logging"
	"github.com/cruisyconcierge/cruisy-ambassador/internal/portal/cli"
	"github.com/cruisyconcierge/cruisy-ambassador/internal/portal/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	// Optional .env for local development; absence is not an error.
	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(cfg.LogLevel),
	})))

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)
}

func parseLevel(name string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return level
}
