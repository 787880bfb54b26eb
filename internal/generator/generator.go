package generator

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"goa.design/clue/log"

	"github.com/darwinjs/darwin/internal/scaffold"
	"github.com/darwinjs/darwin/internal/writer"
)

// FileWriter is the filesystem capability the generator needs.
type FileWriter interface {
	Exists(path string) (bool, error)
	Write(path string, content []byte) (writer.Event, error)
	Remove(path string) (writer.Event, error)
}

// Result holds the outcome of a run.
type Result struct {
	Name        string
	Kind        scaffold.Kind
	ActionPaths []scaffold.ActionPath
	Events      []writer.Event
}

// Generator is the scaffold orchestrator.
type Generator struct {
	planner *scaffold.Planner
	files   FileWriter
}

// New returns a Generator writing the planner's files through files.
func New(planner *scaffold.Planner, files FileWriter) *Generator {
	return &Generator{planner: planner, files: files}
}

// Generate creates the files for name. Namespace stubs that already exist
// are left alone; controller and view stubs are always written.
func (g *Generator) Generate(ctx context.Context, name string) (*Result, error) {
	res, err := g.classify(ctx, name)
	if err != nil {
		return nil, err
	}

	for _, a := range res.ActionPaths {
		log.Debug(ctx, log.KV{K: "msg", V: "generating"}, log.KV{K: "action_path", V: string(a)})

		plans, err := g.planner.NamespacePlans(ctx, a, g.files)
		if err != nil {
			return res, fmt.Errorf("planning namespaces for %s: %w", a, err)
		}
		leaves, err := g.planner.LeafPlans(a)
		if err != nil {
			return res, fmt.Errorf("planning %s: %w", a, err)
		}
		plans = append(plans, leaves...)

		for _, plan := range plans {
			ev, err := g.files.Write(plan.Path, plan.Content)
			if err != nil {
				return res, err
			}
			res.Events = append(res.Events, ev)
		}
	}
	return res, nil
}

// Destroy removes the controller and view stubs for name. Namespace stubs
// may be shared with other actions and are never removed.
func (g *Generator) Destroy(ctx context.Context, name string) (*Result, error) {
	res, err := g.classify(ctx, name)
	if err != nil {
		return nil, err
	}

	for _, a := range res.ActionPaths {
		leaves, err := g.planner.LeafPlans(a)
		if err != nil {
			return res, fmt.Errorf("planning %s: %w", a, err)
		}
		for _, plan := range leaves {
			ev, err := g.files.Remove(plan.Path)
			if err != nil {
				return res, err
			}
			res.Events = append(res.Events, ev)
		}
	}
	return res, nil
}

// Plan returns every file Generate would write for name on an empty tree,
// without consulting the filesystem.
func (g *Generator) Plan(ctx context.Context, name string) ([]scaffold.FilePlan, error) {
	res, err := g.classify(ctx, name)
	if err != nil {
		return nil, err
	}

	seen := make(plannedSet)
	var all []scaffold.FilePlan
	for _, a := range res.ActionPaths {
		plans, err := g.planner.NamespacePlans(ctx, a, seen)
		if err != nil {
			return nil, err
		}
		leaves, err := g.planner.LeafPlans(a)
		if err != nil {
			return nil, err
		}
		for _, plan := range append(plans, leaves...) {
			seen[plan.Path] = true
			all = append(all, plan)
		}
	}
	if err := validatePlans(all); err != nil {
		return nil, err
	}
	return all, nil
}

func (g *Generator) classify(ctx context.Context, name string) (*Result, error) {
	kind, paths, err := g.planner.Classify(name)
	if err != nil {
		return nil, err
	}
	log.Debug(ctx, log.KV{K: "msg", V: "classified"}, log.KV{K: "name", V: name},
		log.KV{K: "kind", V: kind.String()}, log.KV{K: "action_paths", V: len(paths)})
	return &Result{Name: name, Kind: kind, ActionPaths: paths}, nil
}

// plannedSet is a Checker that only knows about files planned so far.
type plannedSet map[string]bool

func (s plannedSet) Exists(path string) (bool, error) { return s[path], nil }

// validatePlans reports every target path planned more than once.
func validatePlans(plans []scaffold.FilePlan) error {
	var result *multierror.Error
	seen := make(map[string]bool, len(plans))
	for _, plan := range plans {
		if seen[plan.Path] {
			result = multierror.Append(result, fmt.Errorf("%s planned more than once", plan.Path))
		}
		seen[plan.Path] = true
	}
	return result.ErrorOrNil()
}
