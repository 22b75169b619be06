package logger

import (
	"log/slog"
	"strconv"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// RecipientID records the notification recipient under the key "recipient_id".
// If id is nil, it returns an empty Attr.
func RecipientID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("recipient_id", id)
}

// NotificationID records the notification identifier under the key "notification_id".
// If id is nil, it returns an empty Attr.
func NotificationID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("notification_id", id)
}

// Category records the notification category under the key "category".
func Category(category string) slog.Attr {
	return slog.String("category", category)
}

// Priority records the notification priority under the key "priority".
func Priority(priority string) slog.Attr {
	return slog.String("priority", priority)
}

// NotificationType records the notification type under the key "notification_type".
func NotificationType(t string) slog.Attr {
	return slog.String("notification_type", t)
}

// TemplateName records a template name under the key "template".
func TemplateName(name string) slog.Attr {
	return slog.String("template", name)
}

// Role records a role name under the key "role".
// If role is nil, it returns an empty Attr.
func Role(role any) slog.Attr {
	if role == nil {
		return slog.Attr{}
	}
	return slog.Any("role", role)
}

// Outcome records a gate decision outcome under the key "outcome".
func Outcome(outcome string) slog.Attr {
	return slog.String("outcome", outcome)
}

// Reason records a gate decision reason under the key "reason".
func Reason(reason string) slog.Attr {
	return slog.String("reason", reason)
}

// EntityID records the originating entity identifier under the key "entity_id".
// If id is nil, it returns an empty Attr.
func EntityID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("entity_id", id)
}

// RecipientCount records a fan-out size under the key "recipient_count".
func RecipientCount(count int) slog.Attr {
	return slog.Int("recipient_count", count)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// RequestID records the request identifier under the key "request_id".
// If id is nil, it returns an empty Attr.
func RequestID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("request_id", id)
}
