package notifier

import (
	"errors"
	"net/http"

	"github.com/deskops/notifykit/core"
	"github.com/deskops/notifykit/pkg/notifications"
)

type broadcastRequest struct {
	TargetRole       string `json:"targetRole"`
	Title            string `json:"title"`
	Message          string `json:"message"`
	NotificationType string `json:"notificationType"`
	Priority         string `json:"priority"`
	Category         string `json:"category"`
	EntityID         string `json:"entityId"`
}

// broadcast fans a notification out to a role or to everyone. The response
// reports how many recipients actually got a row; gate suppression lowers
// the count without failing the call.
func (m *Module) broadcast(w http.ResponseWriter, r *http.Request) {
	var req broadcastRequest
	if err := decodeJSON(r, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	result, err := m.dispatcher.Broadcast(r.Context(), notifications.BroadcastInput{
		Target:   req.TargetRole,
		Title:    req.Title,
		Message:  req.Message,
		Type:     notifications.Type(req.NotificationType),
		Priority: notifications.Priority(req.Priority),
		Category: notifications.Category(req.Category),
		EntityID: req.EntityID,
	})
	if err != nil {
		switch {
		case errors.Is(err, notifications.ErrUnknownRole):
			core.JSONError(w, core.NewHTTPError(http.StatusBadRequest, "unknown_role"))
		case errors.Is(err, notifications.ErrMissingField):
			valErr := core.NewValidationError()
			valErr.Add("targetRole", err.Error())
			core.JSONError(w, valErr)
		default:
			core.JSONError(w, err)
		}
		return
	}
	core.JSON(w, http.StatusOK, result)
}

type directCreateRequest struct {
	RecipientID string `json:"recipientId"`
	Title       string `json:"title"`
	Message     string `json:"message"`
	Type        string `json:"type"`
	Priority    string `json:"priority"`
	Category    string `json:"category"`
	EntityID    string `json:"entityId"`
}

// directCreate persists a notification for one recipient without gate
// evaluation. Operator tooling only; regular event flow goes through the
// factory.
func (m *Module) directCreate(w http.ResponseWriter, r *http.Request) {
	var req directCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	notif, err := m.feed.AdminCreate(r.Context(), notifications.CreateInput{
		RecipientID: req.RecipientID,
		Title:       req.Title,
		Message:     req.Message,
		Type:        notifications.Type(req.Type),
		Priority:    notifications.Priority(req.Priority),
		Category:    notifications.Category(req.Category),
		EntityID:    req.EntityID,
	})
	if err != nil {
		if errors.Is(err, notifications.ErrMissingField) {
			valErr := core.NewValidationError()
			valErr.Add("request", err.Error())
			core.JSONError(w, valErr)
			return
		}
		core.JSONError(w, err)
		return
	}
	core.JSON(w, http.StatusCreated, notif)
}
