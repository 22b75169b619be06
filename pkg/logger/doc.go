// Package logger provides a context-aware wrapper around Go's slog package
// with functional options for configuration, helper attribute constructors,
// and transparent injection of values stored in context.Context.
//
// The package standardises structured logging across the notification engine
// by exposing a single factory, New, that creates a *slog.Logger configured
// by a set of Option functions:
//
//	log := logger.New(
//	    logger.WithProduction("notifier"),
//	    logger.WithContextValue("request_id", ctxKeyRequestID),
//	)
//	logger.SetAsDefault(log)
//
// Helper constructors such as RecipientID, NotificationID, Category and
// Outcome live in attr.go and keep attribute naming consistent across the
// codebase, most importantly for the factory's gate decision records:
//
//	log.LogAttrs(ctx, slog.LevelInfo, "notification suppressed",
//	    logger.RecipientID(userID),
//	    logger.Outcome("suppressed"),
//	    logger.Reason("quiet_hours"),
//	)
package logger
