package scaffold

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// ResourceActions is the ordered action set a resource name expands into.
var ResourceActions = []string{"index", "edit", "show", "new", "form"}

// Kind tells whether a name denotes a single action or a resource.
type Kind int

const (
	KindAction Kind = iota
	KindResource
)

func (k Kind) String() string {
	switch k {
	case KindAction:
		return "action"
	case KindResource:
		return "resource"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ActionPath is a snake_cased, slash-delimited path identifying one
// controller/view pair, e.g. "admin/widgets/index".
type ActionPath string

// Segments splits the path on "/".
func (a ActionPath) Segments() []string {
	return strings.Split(string(a), "/")
}

// NamespaceChain returns every segment but the last. Each prefix of the
// chain is one namespace module.
func (a ActionPath) NamespaceChain() []string {
	segs := a.Segments()
	return segs[:len(segs)-1]
}

// InvalidNameError reports a name that cannot be split into path segments.
// Err holds every problem found, not just the first.
type InvalidNameError struct {
	Name string
	Err  error
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid name %q: %v", e.Name, e.Err)
}

func (e *InvalidNameError) Unwrap() error { return e.Err }

// ValidateName checks that name splits into non-empty, relative path
// segments. It returns nil or an *InvalidNameError.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return &InvalidNameError{Name: name, Err: errors.New("name is empty")}
	}

	var result *multierror.Error
	if strings.HasPrefix(name, "/") {
		result = multierror.Append(result, errors.New("name must be relative, not start with /"))
	}
	for i, seg := range strings.Split(strings.TrimPrefix(name, "/"), "/") {
		switch seg {
		case "":
			result = multierror.Append(result, fmt.Errorf("segment %d is empty", i+1))
		case ".", "..":
			result = multierror.Append(result, fmt.Errorf("segment %d is %q", i+1, seg))
		}
	}
	if result.ErrorOrNil() != nil {
		result.ErrorFormat = joinErrors
		return &InvalidNameError{Name: name, Err: result}
	}
	return nil
}

func joinErrors(errs []error) string {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Classify decides whether name is an action or a resource and returns the
// ActionPaths to generate for it.
//
// A name that is already snake_case is an action and yields itself. Any
// other name, including a plain capitalized word like "Thing", is a
// resource: its last segment is pluralized and one ActionPath is produced
// per entry of ResourceActions, in order.
func (p *Planner) Classify(name string) (Kind, []ActionPath, error) {
	if err := ValidateName(name); err != nil {
		return KindAction, nil, err
	}

	segs := strings.Split(name, "/")
	snake := make([]string, len(segs))
	for i, seg := range segs {
		snake[i] = p.inflector.Underscore(seg)
	}
	if strings.Join(snake, "/") == name {
		return KindAction, []ActionPath{ActionPath(name)}, nil
	}

	last := segs[len(segs)-1]
	base := append(snake[:len(snake)-1:len(snake)-1], p.inflector.Underscore(p.inflector.Pluralize(last)))
	prefix := strings.Join(base, "/")

	paths := make([]ActionPath, len(ResourceActions))
	for i, action := range ResourceActions {
		paths[i] = ActionPath(prefix + "/" + action)
	}
	return KindResource, paths, nil
}
