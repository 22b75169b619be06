package notifier

import (
	"errors"
	"net/http"

	"github.com/deskops/notifykit/core"
	"github.com/deskops/notifykit/pkg/preferences"
)

// getPreferences returns the caller's effective settings: stored values when
// they exist, the fail-open defaults otherwise.
func (m *Module) getPreferences(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFromContext(r.Context())

	pref, err := m.preferences.Resolve(r.Context(), caller.ID)
	if err != nil {
		core.JSONError(w, err)
		return
	}
	core.JSON(w, http.StatusOK, pref)
}

func (m *Module) updatePreferences(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFromContext(r.Context())

	var pref preferences.Preference
	if err := decodeJSON(r, &pref); err != nil {
		core.JSONError(w, err)
		return
	}
	// The caller can only edit their own settings.
	pref.UserID = caller.ID

	if err := m.preferences.Update(r.Context(), pref); err != nil {
		if errors.Is(err, preferences.ErrInvalidClock) {
			valErr := core.NewValidationError()
			valErr.Add("dndStart", "clock times must use the HH:MM 24-hour format")
			core.JSONError(w, valErr)
			return
		}
		core.JSONError(w, err)
		return
	}
	core.JSON(w, http.StatusOK, pref)
}

func (m *Module) resetPreferences(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFromContext(r.Context())

	if err := m.preferences.Reset(r.Context(), caller.ID); err != nil {
		core.JSONError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
