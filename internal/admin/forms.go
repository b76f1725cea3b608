package admin

import (
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/kanban-board-api/internal/models"
	"github.com/yukikurage/kanban-board-api/internal/services"
	"github.com/yukikurage/kanban-board-api/internal/validation"
)

// editor loads, saves and deletes one model for the detail page
type editor interface {
	load(id uint64) (*formPage, error)
	save(id uint64, form url.Values) error
	remove(id uint64) error
}

const (
	kindText     = "text"
	kindTextarea = "textarea"
	kindNumber   = "number"
	kindSelect   = "select"
	kindChecks   = "checkboxes"
)

type option struct {
	Value    string
	Label    string
	Selected bool
}

type formField struct {
	Name    string
	Label   string
	Kind    string
	Value   string
	Help    string
	Options []option
	Errors  []string
}

type inline struct {
	Title   string
	Headers []string
	Rows    []row
}

type formPage struct {
	Title   string
	User    *models.User
	Model   string
	ID      uint64
	Fields  []formField
	Errors  []string
	Preview template.HTML
	Inlines []inline
	Saved   bool
}

// overlay puts submitted values and their errors back into the form
func (p *formPage) overlay(form url.Values, fields map[string][]string) {
	for i := range p.Fields {
		f := &p.Fields[i]
		f.Errors = fields[f.Name]
		if f.Kind == kindChecks {
			chosen := map[string]bool{}
			for _, v := range form[f.Name] {
				chosen[v] = true
			}
			for j := range f.Options {
				f.Options[j].Selected = chosen[f.Options[j].Value]
			}
			continue
		}
		f.Value = form.Get(f.Name)
	}
	p.Errors = fields[validation.NonFieldErrors]
}

func (a *Admin) editorFor(c *gin.Context) (*modelAdmin, uint64, bool) {
	m, ok := a.byName[c.Param("model")]
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if !ok || m.editor == nil || err != nil {
		a.render(c, http.StatusNotFound, "error.html", errorPage{Title: "Not found", User: currentUser(c), Message: "Not found."})
		return nil, 0, false
	}
	return m, id, true
}

func (a *Admin) edit(c *gin.Context) {
	m, id, ok := a.editorFor(c)
	if !ok {
		return
	}

	page, err := m.editor.load(id)
	if err != nil {
		a.fail(c, err)
		return
	}
	page.User = currentUser(c)
	page.Model = m.name
	page.Saved = c.Query("saved") == "1"
	a.render(c, http.StatusOK, "form.html", page)
}

func (a *Admin) save(c *gin.Context) {
	m, id, ok := a.editorFor(c)
	if !ok {
		return
	}
	if err := c.Request.ParseForm(); err != nil {
		a.render(c, http.StatusBadRequest, "error.html", errorPage{Title: "Bad request", User: currentUser(c), Message: "Invalid form submission."})
		return
	}

	err := m.editor.save(id, c.Request.PostForm)
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		page, loadErr := m.editor.load(id)
		if loadErr != nil {
			a.fail(c, loadErr)
			return
		}
		page.User = currentUser(c)
		page.Model = m.name
		page.overlay(c.Request.PostForm, verr.Fields)
		a.render(c, http.StatusBadRequest, "form.html", page)
		return
	}
	if err != nil {
		a.fail(c, err)
		return
	}

	a.log.Info().Str("model", m.name).Uint64("id", id).Msg("saved")
	c.Redirect(http.StatusFound, link(m.name, id)+"?saved=1")
}

func (a *Admin) remove(c *gin.Context) {
	m, id, ok := a.editorFor(c)
	if !ok {
		return
	}

	if err := m.editor.remove(id); err != nil {
		a.fail(c, err)
		return
	}

	a.log.Info().Str("model", m.name).Uint64("id", id).Msg("deleted")
	c.Redirect(http.StatusFound, "/admin/"+m.name+"/")
}

// Form value parsing. Errors are collected on errs with the same messages
// the API uses.

func formText(form url.Values, name string) string {
	return strings.TrimSpace(form.Get(name))
}

func formUint(errs *services.ValidationError, form url.Values, name string, required bool) *uint64 {
	raw := strings.TrimSpace(form.Get(name))
	if raw == "" {
		if required {
			errs.Add(name, "This field is required.")
		}
		return nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		errs.Add(name, "A valid integer is required.")
		return nil
	}
	return &v
}

func formInt(errs *services.ValidationError, form url.Values, name string) *int {
	raw := strings.TrimSpace(form.Get(name))
	if raw == "" {
		errs.Add(name, "This field is required.")
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		errs.Add(name, "A valid integer is required.")
		return nil
	}
	return &v
}

// formIDs reads ids from repeated values or a comma separated list
func formIDs(errs *services.ValidationError, form url.Values, name string) []uint64 {
	ids := []uint64{}
	for _, value := range form[name] {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseUint(part, 10, 64)
			if err != nil {
				errs.Add(name, "Incorrect type. Expected pk value, received str.")
				return nil
			}
			ids = append(ids, id)
		}
	}
	return ids
}

func uintValue(v *uint64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatUint(*v, 10)
}

func joinIDs(ids []uint64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(id, 10)
	}
	return strings.Join(parts, ", ")
}
