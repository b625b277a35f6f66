package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/Efrem-Yohanis/playwright-playground/internal/cli"
	"github.com/Efrem-Yohanis/playwright-playground/internal/config"
	"github.com/Efrem-Yohanis/playwright-playground/internal/logging"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
