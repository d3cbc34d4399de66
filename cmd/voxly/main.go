package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/johnquangdev/voxly/internal/app"
	"github.com/johnquangdev/voxly/internal/cli"
	"github.com/johnquangdev/voxly/internal/output"
	"github.com/johnquangdev/voxly/pkg/config"
)

func main() {
	if err := run(); err != nil {
		formatter := output.NewFormatter(os.Stderr)
		formatter.Error(err.Error())
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := zap.NewNop()
	if os.Getenv("VOXLY_DEBUG") != "" {
		if logger, err = zap.NewDevelopment(); err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		defer logger.Sync()
	}

	application, err := app.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("initializing app: %w", err)
	}
	defer application.Close()

	deps := &cli.Dependencies{
		App:    application,
		Config: cfg,
	}

	return cli.NewRootCmd(deps).Execute()
}
