package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/versus/internal/services"
	"github.com/desertthunder/versus/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)

	if err := shared.LoadEnv(); err != nil {
		logger.Warn("ignoring .env", "error", err)
	}

	runner := NewRunner(RunnerOpts{Logger: logger})
	app := newApp(runner)

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrAPIRequest) {
			logger.Fatal(services.Message(err, err.Error()))
		}
		logger.Fatalf("application error: %v", err)
	}
}
