// Package logger builds slog loggers and provides attribute helpers for
// consistent structured logging across the module.
//
//	log := logger.New(
//		logger.WithDevelopment("linkroute"),
//		logger.WithLevel(slog.LevelDebug),
//	)
//
//	log.Debug("address resolved",
//		logger.Component("router"),
//		logger.URL("app://item/42"),
//		logger.Pattern("app://item/:id"),
//	)
//
// WithProduction switches to JSON at info level. WithOutput, WithFormat and
// WithAttr refine either preset. SetAsDefault also installs the logger as the
// slog default.
//
// Attribute helpers return an empty slog.Attr for nil or empty values, which
// slog drops, so optional context can be passed unconditionally:
//
//	log.Warn("registration rejected", logger.Pattern(raw), logger.Error(err))
package logger
