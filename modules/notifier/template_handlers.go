package notifier

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/deskops/notifykit/core"
	"github.com/deskops/notifykit/pkg/templates"
)

func templateError(err error) error {
	switch {
	case errors.Is(err, templates.ErrTemplateNotFound):
		return core.ErrNotFound
	case errors.Is(err, templates.ErrDuplicateName):
		return core.ErrConflict
	case errors.Is(err, templates.ErrMissingField):
		valErr := core.NewValidationError()
		valErr.Add("template", err.Error())
		return valErr
	default:
		return err
	}
}

func (m *Module) listTemplates(w http.ResponseWriter, r *http.Request) {
	includeInactive := r.URL.Query().Get("includeInactive") == "true"

	listed, err := m.registry.List(r.Context(), includeInactive)
	if err != nil {
		core.JSONError(w, err)
		return
	}
	core.JSON(w, http.StatusOK, listed)
}

func (m *Module) createTemplate(w http.ResponseWriter, r *http.Request) {
	var tpl templates.Template
	if err := decodeJSON(r, &tpl); err != nil {
		core.JSONError(w, err)
		return
	}

	created, err := m.registry.Create(r.Context(), tpl)
	if err != nil {
		core.JSONError(w, templateError(err))
		return
	}
	core.JSON(w, http.StatusCreated, created)
}

func (m *Module) getTemplate(w http.ResponseWriter, r *http.Request) {
	tpl, err := m.registry.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		core.JSONError(w, templateError(err))
		return
	}
	core.JSON(w, http.StatusOK, tpl)
}

func (m *Module) updateTemplate(w http.ResponseWriter, r *http.Request) {
	var tpl templates.Template
	if err := decodeJSON(r, &tpl); err != nil {
		core.JSONError(w, err)
		return
	}
	tpl.ID = chi.URLParam(r, "id")

	updated, err := m.registry.Update(r.Context(), tpl)
	if err != nil {
		core.JSONError(w, templateError(err))
		return
	}
	core.JSON(w, http.StatusOK, updated)
}

// deactivateTemplate soft-deletes: the template stops serving new
// notifications but stays listed for audit with includeInactive.
func (m *Module) deactivateTemplate(w http.ResponseWriter, r *http.Request) {
	if err := m.registry.Deactivate(r.Context(), chi.URLParam(r, "id")); err != nil {
		core.JSONError(w, templateError(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type previewRequest struct {
	Variables map[string]string `json:"variables"`
}

func (m *Module) previewTemplate(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := decodeJSON(r, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	preview, err := m.registry.Preview(r.Context(), chi.URLParam(r, "id"), req.Variables)
	if err != nil {
		core.JSONError(w, templateError(err))
		return
	}
	core.JSON(w, http.StatusOK, preview)
}
