package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/SidddhantJain/QuietQuill/internal/buildinfo"
	"github.com/SidddhantJain/QuietQuill/internal/cli"
	"github.com/SidddhantJain/QuietQuill/internal/config"
	"github.com/SidddhantJain/QuietQuill/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
