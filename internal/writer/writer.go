package writer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
)

// Status describes what happened to a single file.
type Status string

const (
	StatusCreate    Status = "create"
	StatusIdentical Status = "identical"
	StatusForce     Status = "force"
	StatusRemove    Status = "remove"
	StatusMissing   Status = "missing"
)

// Event is the outcome of one write or remove.
type Event struct {
	Status Status
	Path   string
	// Diff is set for StatusForce when diffs are enabled.
	Diff string
}

// WriteFailure reports a filesystem error while creating or removing a file.
type WriteFailure struct {
	Op   string // "stat", "read", "mkdir", "write" or "remove"
	Path string
	Err  error
}

func (e *WriteFailure) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *WriteFailure) Unwrap() error { return e.Err }

// Writer creates files idempotently and reports what it did.
type Writer struct {
	fs      afero.Fs
	out     io.Writer
	root    string
	pretend bool
	diff    bool

	// pretended holds contents "written" in pretend mode.
	pretended map[string][]byte
}

// Option configures a Writer.
type Option func(*Writer)

// WithOutput sets where status lines go. Defaults to io.Discard.
func WithOutput(out io.Writer) Option {
	return func(w *Writer) { w.out = out }
}

// WithRoot makes reported paths relative to root.
func WithRoot(root string) Option {
	return func(w *Writer) { w.root = root }
}

// WithPretend enables dry-run mode.
func WithPretend(enabled bool) Option {
	return func(w *Writer) { w.pretend = enabled }
}

// WithDiff prints a diff under every "force" status line.
func WithDiff(enabled bool) Option {
	return func(w *Writer) { w.diff = enabled }
}

// New returns a Writer on top of fsys.
func New(fsys afero.Fs, opts ...Option) *Writer {
	w := &Writer{
		fs:        fsys,
		out:       io.Discard,
		pretended: make(map[string][]byte),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Exists reports whether path exists, counting files pretended earlier in
// this run.
func (w *Writer) Exists(path string) (bool, error) {
	if _, ok := w.pretended[path]; ok {
		return true, nil
	}
	ok, err := afero.Exists(w.fs, path)
	if err != nil {
		return false, &WriteFailure{Op: "stat", Path: path, Err: err}
	}
	return ok, nil
}

// Write creates path with content, creating parent directories as needed.
// An existing file is overwritten.
func (w *Writer) Write(path string, content []byte) (Event, error) {
	prev, existed, err := w.current(path)
	if err != nil {
		return Event{}, err
	}

	ev := Event{Status: StatusCreate, Path: path}
	if existed {
		if bytes.Equal(prev, content) {
			ev.Status = StatusIdentical
		} else {
			ev.Status = StatusForce
			if w.diff {
				ev.Diff = cmp.Diff(string(prev), string(content))
			}
		}
	}

	if w.pretend {
		w.pretended[path] = content
	} else {
		if err := w.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return Event{}, &WriteFailure{Op: "mkdir", Path: filepath.Dir(path), Err: err}
		}
		if err := afero.WriteFile(w.fs, path, content, 0644); err != nil {
			return Event{}, &WriteFailure{Op: "write", Path: path, Err: err}
		}
	}

	w.report(ev)
	return ev, nil
}

// Remove deletes path. A path that does not exist is reported as missing,
// not as an error.
func (w *Writer) Remove(path string) (Event, error) {
	exists, err := w.Exists(path)
	if err != nil {
		return Event{}, err
	}
	ev := Event{Status: StatusRemove, Path: path}
	if !exists {
		ev.Status = StatusMissing
		w.report(ev)
		return ev, nil
	}

	if w.pretend {
		delete(w.pretended, path)
	} else if err := w.fs.Remove(path); err != nil {
		return Event{}, &WriteFailure{Op: "remove", Path: path, Err: err}
	}
	w.report(ev)
	return ev, nil
}

// current returns the content path holds right now, as seen by this run.
func (w *Writer) current(path string) ([]byte, bool, error) {
	if b, ok := w.pretended[path]; ok {
		return b, true, nil
	}
	b, err := afero.ReadFile(w.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, &WriteFailure{Op: "read", Path: path, Err: err}
	}
	return b, true, nil
}

func (w *Writer) report(ev Event) {
	fmt.Fprintf(w.out, "%12s  %s\n", ev.Status, w.display(ev.Path))
	if ev.Diff != "" {
		fmt.Fprintln(w.out, ev.Diff)
	}
}

func (w *Writer) display(path string) string {
	if w.root == "" {
		return path
	}
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return path
	}
	return rel
}
