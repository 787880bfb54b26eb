package scaffold

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"text/template"

	"goa.design/clue/log"

	"github.com/darwinjs/darwin/internal/inflect"
)

//go:embed templates
var templatesFS embed.FS

const (
	tmplControllerNamespace = "templates/controllers/namespace.coffee.tmpl"
	tmplController          = "templates/controllers/controller.coffee.tmpl"
	tmplViewNamespace       = "templates/views/namespace.coffee.tmpl"
	tmplView                = "templates/views/view.coffee.tmpl"
)

// Layout holds where generated files go and the identifiers they reference.
// ControllersBase and ViewsBase are filesystem directories; the rest end up
// inside the generated source.
type Layout struct {
	ControllersBase      string
	ViewsBase            string
	Extension            string // without the leading dot, e.g. "coffee"
	ControllersNamespace string // e.g. "App.Controllers"
	ViewsNamespace       string // e.g. "App.Views"
	BaseController       string // e.g. "Darwin.Controller"
	BaseView             string // e.g. "Darwin.View"
}

// DefaultLayout returns the conventional Rails asset layout, relative to the
// project root.
func DefaultLayout() Layout {
	return Layout{
		ControllersBase:      filepath.Join("app", "assets", "javascripts", "controllers"),
		ViewsBase:            filepath.Join("app", "assets", "javascripts", "views"),
		Extension:            "coffee",
		ControllersNamespace: "App.Controllers",
		ViewsNamespace:       "App.Views",
		BaseController:       "Darwin.Controller",
		BaseView:             "Darwin.View",
	}
}

// Role distinguishes namespace stubs from leaf controller/view files.
type Role int

const (
	RoleNamespace Role = iota
	RoleController
	RoleView
)

func (r Role) String() string {
	switch r {
	case RoleNamespace:
		return "namespace"
	case RoleController:
		return "controller"
	case RoleView:
		return "view"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// FilePlan is a file awaiting creation.
type FilePlan struct {
	Path    string
	Content []byte
	Role    Role
}

// Checker reports whether a target file already exists.
type Checker interface {
	Exists(path string) (bool, error)
}

// TemplateData holds all variables available to the stub templates.
type TemplateData struct {
	Namespace            string // dotted namespace prefix, namespace stubs only
	JSPath               string // dotted action path, leaf stubs only
	ControllersNamespace string
	ViewsNamespace       string
	BaseController       string
	BaseView             string
}

// Planner turns names into FilePlans for a fixed Layout.
type Planner struct {
	layout    Layout
	inflector inflect.Inflector
	templates map[string]*template.Template
}

// NewPlanner parses the embedded templates and returns a Planner.
func NewPlanner(layout Layout, inflector inflect.Inflector) (*Planner, error) {
	if layout.Extension == "" {
		return nil, fmt.Errorf("layout extension must not be empty")
	}
	p := &Planner{
		layout:    layout,
		inflector: inflector,
		templates: make(map[string]*template.Template),
	}
	for _, name := range []string{tmplControllerNamespace, tmplController, tmplViewNamespace, tmplView} {
		tmpl, err := template.ParseFS(templatesFS, name)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		p.templates[name] = tmpl
	}
	return p, nil
}

// Dotted joins the camelized segments with ".": "admin/widgets/index"
// becomes "Admin.Widgets.Index".
func (p *Planner) Dotted(segments []string) string {
	parts := make([]string, len(segments))
	for i, seg := range segments {
		parts[i] = p.inflector.Camelize(seg)
	}
	return strings.Join(parts, ".")
}

// NamespacePlans returns the namespace stubs for every prefix of the
// ActionPath's namespace chain, outermost first. A stub whose target already
// exists according to chk is left out; controller and view stubs are
// checked independently.
func (p *Planner) NamespacePlans(ctx context.Context, a ActionPath, chk Checker) ([]FilePlan, error) {
	chain := a.NamespaceChain()
	var plans []FilePlan
	for i := 1; i <= len(chain); i++ {
		prefix := chain[:i]
		rel := path.Join(prefix...) + "." + p.layout.Extension
		data := p.data()
		data.Namespace = p.Dotted(prefix)

		for _, target := range []struct {
			base string
			tmpl string
		}{
			{p.layout.ControllersBase, tmplControllerNamespace},
			{p.layout.ViewsBase, tmplViewNamespace},
		} {
			dst := filepath.Join(target.base, filepath.FromSlash(rel))
			exists, err := chk.Exists(dst)
			if err != nil {
				return nil, err
			}
			if exists {
				log.Debug(ctx, log.KV{K: "msg", V: "namespace exists"}, log.KV{K: "path", V: dst})
				continue
			}
			content, err := p.render(target.tmpl, data)
			if err != nil {
				return nil, err
			}
			plans = append(plans, FilePlan{Path: dst, Content: content, Role: RoleNamespace})
		}
	}
	return plans, nil
}

// LeafPlans returns the controller and view stubs for the ActionPath. They
// are always planned, whether or not the targets exist.
func (p *Planner) LeafPlans(a ActionPath) ([]FilePlan, error) {
	rel := filepath.FromSlash(string(a)) + "." + p.layout.Extension
	data := p.data()
	data.JSPath = p.Dotted(a.Segments())

	controller, err := p.render(tmplController, data)
	if err != nil {
		return nil, err
	}
	view, err := p.render(tmplView, data)
	if err != nil {
		return nil, err
	}
	return []FilePlan{
		{Path: filepath.Join(p.layout.ControllersBase, rel), Content: controller, Role: RoleController},
		{Path: filepath.Join(p.layout.ViewsBase, rel), Content: view, Role: RoleView},
	}, nil
}

func (p *Planner) data() TemplateData {
	return TemplateData{
		ControllersNamespace: p.layout.ControllersNamespace,
		ViewsNamespace:       p.layout.ViewsNamespace,
		BaseController:       p.layout.BaseController,
		BaseView:             p.layout.BaseView,
	}
}

func (p *Planner) render(name string, data TemplateData) ([]byte, error) {
	var buf bytes.Buffer
	if err := p.templates[name].Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
