package templates

import (
	"strings"
	"time"
)

// Template is a named, reusable notification message with {{variable}}
// placeholders. Templates keep broadcast and event wording consistent;
// ad hoc notifications may bypass the registry entirely.
type Template struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Type     string `json:"type"`
	Priority string `json:"priority"`

	TitleTemplate   string   `json:"titleTemplate"`
	MessageTemplate string   `json:"messageTemplate"`
	Variables       []string `json:"variables,omitempty"`

	// Active is a soft flag. Deactivated templates are excluded from
	// default listings but stay addressable by id so historical
	// notifications keep their provenance.
	Active bool `json:"active"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Preview is the result of rendering a template against a variable map.
type Preview struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Render substitutes every {{key}} occurrence from vars into the title and
// message templates. Placeholders without a matching key are left verbatim.
// Render is pure: it never mutates the template or touches storage.
func (t Template) Render(vars map[string]string) Preview {
	return Preview{
		Title:   substitute(t.TitleTemplate, vars),
		Message: substitute(t.MessageTemplate, vars),
	}
}

func substitute(text string, vars map[string]string) string {
	for key, value := range vars {
		text = strings.ReplaceAll(text, "{{"+key+"}}", value)
	}
	return text
}
