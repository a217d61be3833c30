// Package logger builds *slog.Logger instances for the presence server.
//
// New assembles a text or JSON slog.Handler from functional options and wraps it
// in a decorator that runs ContextExtractor callbacks on every record, which is
// how request-scoped values such as the request id or the bound username end up
// in log lines without being passed around explicitly.
//
// Attribute helpers in attr.go (Error, Username, Component, ...) keep key names
// consistent across packages.
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.AppEnv, "presence"),
//		logger.WithLevelName(cfg.LogLevel),
//		logger.WithContextExtractors(requestid.LogExtractor()),
//	)
//	log.InfoContext(ctx, "presence claimed", logger.Username("alice"))
package logger
