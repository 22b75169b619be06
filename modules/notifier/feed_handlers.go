package notifier

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/deskops/notifykit/core"
	"github.com/deskops/notifykit/pkg/livefeed"
	"github.com/deskops/notifykit/pkg/notifications"
)

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return core.ErrBadRequest
	}
	return nil
}

// listFeed serves GET / with limit, offset, unreadOnly and since query
// parameters. The page size is clamped inside the feed service.
func (m *Module) listFeed(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFromContext(r.Context())

	q := notifications.ListQuery{}
	query := r.URL.Query()
	if v := query.Get("limit"); v != "" {
		q.Limit, _ = strconv.Atoi(v)
	}
	if v := query.Get("offset"); v != "" {
		q.Offset, _ = strconv.Atoi(v)
	}
	q.OnlyUnread = query.Get("unreadOnly") == "true"
	if v := query.Get("since"); v != "" {
		since, err := time.Parse(time.RFC3339, v)
		if err != nil {
			valErr := core.NewValidationError()
			valErr.Add("since", "must be an RFC 3339 timestamp")
			core.JSONError(w, valErr)
			return
		}
		q.Since = &since
	}

	listed, err := m.feed.List(r.Context(), caller.ID, q)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.JSONWithMeta(w, http.StatusOK, listed, map[string]any{
		"count":  len(listed),
		"offset": q.Offset,
	})
}

func (m *Module) unreadCount(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFromContext(r.Context())

	count, err := m.feed.CountUnread(r.Context(), caller.ID)
	if err != nil {
		core.JSONError(w, err)
		return
	}
	core.JSON(w, http.StatusOK, map[string]int{"unread": count})
}

type markReadRequest struct {
	NotificationIDs []string `json:"notificationIds"`
}

func (m *Module) markRead(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFromContext(r.Context())

	var req markReadRequest
	if err := decodeJSON(r, &req); err != nil {
		core.JSONError(w, err)
		return
	}
	if len(req.NotificationIDs) == 0 {
		valErr := core.NewValidationError()
		valErr.Add("notificationIds", "at least one notification id is required")
		core.JSONError(w, valErr)
		return
	}

	if err := m.feed.MarkRead(r.Context(), caller.ID, req.NotificationIDs...); err != nil {
		core.JSONError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (m *Module) markAllRead(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFromContext(r.Context())

	if err := m.feed.MarkAllRead(r.Context(), caller.ID); err != nil {
		core.JSONError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (m *Module) snooze(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFromContext(r.Context())

	var req notifications.SnoozeRequest
	if err := decodeJSON(r, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	err := m.feed.Snooze(r.Context(), caller.ID, chi.URLParam(r, "id"), req)
	if err != nil {
		if errors.Is(err, notifications.ErrSnoozeUnspecified) {
			valErr := core.NewValidationError()
			valErr.Add("snoozeUntil", "either snoozeUntil or minutes is required")
			core.JSONError(w, valErr)
			return
		}
		core.JSONError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (m *Module) dismiss(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFromContext(r.Context())

	if err := m.feed.Dismiss(r.Context(), caller.ID, chi.URLParam(r, "id")); err != nil {
		core.JSONError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (m *Module) clearAll(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFromContext(r.Context())

	if err := m.feed.ClearAll(r.Context(), caller.ID); err != nil {
		core.JSONError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// displayRequest carries the caller's current domain snapshot and the keys
// it has dismissed locally. Dismissal state lives with the client, so a new
// session naturally starts clean.
type displayRequest struct {
	Snapshot      livefeed.Snapshot `json:"snapshot"`
	DismissedKeys []string          `json:"dismissedKeys"`
}

// display merges the persisted feed with items synthesized from the posted
// snapshot and returns the combined list in display order.
func (m *Module) display(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFromContext(r.Context())

	var req displayRequest
	if err := decodeJSON(r, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	persisted, err := m.feed.List(r.Context(), caller.ID, notifications.ListQuery{})
	if err != nil {
		core.JSONError(w, err)
		return
	}

	session := livefeed.NewSession()
	for _, key := range req.DismissedKeys {
		session.Dismiss(key)
	}

	items := session.Filter(livefeed.Merge(persisted, m.synthesizer.Synthesize(req.Snapshot)))
	core.JSON(w, http.StatusOK, items)
}

// stream serves the recipient's live notifications as server-sent events
// until the client disconnects or the hub shuts down.
func (m *Module) stream(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFromContext(r.Context())

	flusher, ok := w.(http.Flusher)
	if !ok {
		core.JSONError(w, core.ErrInternalServerError)
		return
	}

	updates, err := m.hub.Subscribe(r.Context(), caller.ID)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	// The server's write timeout would sever long-lived streams; lift the
	// deadline for this response only. Not every ResponseWriter supports
	// it, so a failure here is ignored.
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	enc := json.NewEncoder(w)
	for notif := range updates {
		if _, err := w.Write([]byte("data: ")); err != nil {
			return
		}
		if err := enc.Encode(notif); err != nil {
			return
		}
		if _, err := w.Write([]byte("\n")); err != nil {
			return
		}
		flusher.Flush()
	}
}
