package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/presence/internal/gate"
	"github.com/dmitrymomot/presence/pkg/config"
	"github.com/dmitrymomot/presence/pkg/logger"
	"github.com/dmitrymomot/presence/pkg/requestid"
)

const usage = `usage: presence [command]

commands:
  serve    run the HTTP server (default)
  reset    mark every username as free and exit
  export   write all usernames as YAML to stdout (or -o file) and exit
`

var errUnknownCommand = errors.New("unknown command")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "presence: %v\n", err)
		if errors.Is(err, errUnknownCommand) {
			fmt.Fprint(os.Stderr, usage)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return err
	}
	log := newLogger(cfg)

	cmd := "serve"
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}

	switch cmd {
	case "serve":
		return serve(ctx, cfg, log)
	case "reset":
		return reset(ctx, cfg, log)
	case "export":
		return export(ctx, cfg, log, args, stdout)
	case "help", "-h", "--help":
		_, err := fmt.Fprint(stdout, usage)
		return err
	default:
		return fmt.Errorf("%w: %q", errUnknownCommand, cmd)
	}
}

func newLogger(cfg Config) *slog.Logger {
	log := logger.New(
		logger.WithEnvironment(cfg.AppEnv, "presence"),
		logger.WithLevelName(cfg.LogLevel),
		logger.WithOutput(os.Stderr),
		logger.WithContextExtractors(requestid.LogExtractor(), gate.LogExtractor()),
	)
	logger.SetAsDefault(log)
	return log
}
