package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/darwinjs/darwin/internal/config"
	"github.com/darwinjs/darwin/internal/scaffold"
)

// run executes the command tree in-process and returns its stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func controllersDir(root string) string {
	return filepath.Join(root, "app", "assets", "javascripts", "controllers")
}

func viewsDir(root string) string {
	return filepath.Join(root, "app", "assets", "javascripts", "views")
}

func TestGenerateResourceCommand(t *testing.T) {
	root := t.TempDir()

	out, err := run(t, "generate", "Widget", "--root", root)
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}

	for _, action := range scaffold.ResourceActions {
		assertContains(t, out, "create  "+filepath.Join("app", "assets", "javascripts", "controllers", "widgets", action+".coffee"))
		content := readFile(t, filepath.Join(controllersDir(root), "widgets", action+".coffee"))
		assertContains(t, content, "extends Darwin.Controller")
	}
	content := readFile(t, filepath.Join(controllersDir(root), "widgets", "index.coffee"))
	assertContains(t, content, "class App.Controllers.Widgets.Index extends Darwin.Controller")
	assertContains(t, content, "View: App.Views.Widgets.Index")
}

func TestGenerateTwiceCommand(t *testing.T) {
	root := t.TempDir()

	if _, err := run(t, "g", "admin/widget_thing", "--root", root); err != nil {
		t.Fatalf("first generate error: %v", err)
	}
	out, err := run(t, "g", "admin/widget_thing", "--root", root)
	if err != nil {
		t.Fatalf("second generate error: %v", err)
	}

	assertNotContains(t, out, "admin.coffee")
	assertContains(t, out, "identical  "+filepath.Join("app", "assets", "javascripts", "controllers", "admin", "widget_thing.coffee"))
	assertContains(t, readFile(t, filepath.Join(viewsDir(root), "admin.coffee")), "App.Views.Admin = {}")
}

func TestGeneratePretendCommand(t *testing.T) {
	root := t.TempDir()

	out, err := run(t, "generate", "admin/widget_thing", "--pretend", "--root", root)
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}
	assertContains(t, out, "create  "+filepath.Join("app", "assets", "javascripts", "views", "admin.coffee"))
	if _, err := os.Stat(filepath.Join(root, "app")); !os.IsNotExist(err) {
		t.Error("pretend run created files")
	}
}

func TestGenerateListCommand(t *testing.T) {
	root := t.TempDir()

	out, err := run(t, "generate", "admin/Widget", "--list", "--root", root)
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 14 {
		t.Errorf("listed %d files, want 14:\n%s", len(lines), out)
	}
	if want := "namespace   " + filepath.Join("app", "assets", "javascripts", "controllers", "admin.coffee"); lines[0] != want {
		t.Errorf("first line = %q, want %q", lines[0], want)
	}
	if want := "controller  " + filepath.Join("app", "assets", "javascripts", "controllers", "admin", "widgets", "index.coffee"); lines[4] != want {
		t.Errorf("fifth line = %q, want %q", lines[4], want)
	}
	if !strings.HasPrefix(lines[13], "view        ") {
		t.Errorf("last line = %q, want a view entry", lines[13])
	}
	if _, err := os.Stat(filepath.Join(root, "app")); !os.IsNotExist(err) {
		t.Error("--list created files")
	}
}

func TestGenerateQuiet(t *testing.T) {
	root := t.TempDir()
	out, err := run(t, "generate", "widget", "--quiet", "--root", root)
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}
	if out != "" {
		t.Errorf("expected no output, got %q", out)
	}
	readFile(t, filepath.Join(viewsDir(root), "widget.coffee"))
}

func TestGenerateUsesConfig(t *testing.T) {
	root := t.TempDir()
	cfg := "controllers_base: js/controllers\nviews_base: js/views\nextension: js.coffee\ncontrollers_namespace: Shop.Controllers\n"
	if err := os.WriteFile(config.FilePath(root), []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := run(t, "generate", "cart", "--root", root); err != nil {
		t.Fatalf("generate error: %v", err)
	}
	content := readFile(t, filepath.Join(root, "js", "controllers", "cart.js.coffee"))
	assertContains(t, content, "class Shop.Controllers.Cart extends Darwin.Controller")
	readFile(t, filepath.Join(root, "js", "views", "cart.js.coffee"))
}

func TestGenerateRootFromEnv(t *testing.T) {
	root := t.TempDir()
	t.Setenv("DARWIN_ROOT", root)

	if _, err := run(t, "generate", "widget"); err != nil {
		t.Fatalf("generate error: %v", err)
	}
	readFile(t, filepath.Join(controllersDir(root), "widget.coffee"))
}

func TestGenerateErrors(t *testing.T) {
	root := t.TempDir()

	t.Run("invalid name", func(t *testing.T) {
		_, err := run(t, "generate", "admin//x", "--root", root)
		var inv *scaffold.InvalidNameError
		if !errors.As(err, &inv) {
			t.Fatalf("error = %v, want *InvalidNameError", err)
		}
	})

	t.Run("missing argument", func(t *testing.T) {
		if _, err := run(t, "generate", "--root", root); err == nil {
			t.Fatal("expected error without a name")
		}
	})

	t.Run("unwritable target", func(t *testing.T) {
		blocked := t.TempDir()
		// A regular file where the asset directory should be.
		if err := os.WriteFile(filepath.Join(blocked, "app"), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := run(t, "generate", "widget", "--root", blocked); err == nil {
			t.Fatal("expected write failure")
		}
	})

	t.Run("required version", func(t *testing.T) {
		pinned := t.TempDir()
		if err := os.WriteFile(config.FilePath(pinned), []byte("required_version: \">= 99.0.0\"\n"), 0644); err != nil {
			t.Fatal(err)
		}
		old := buildVersion
		buildVersion = "1.0.0"
		t.Cleanup(func() { buildVersion = old })

		var mismatch *config.VersionMismatchError
		if _, err := run(t, "generate", "widget", "--root", pinned); !errors.As(err, &mismatch) {
			t.Fatalf("error = %v, want *VersionMismatchError", err)
		}
	})
}

func TestDestroyCommand(t *testing.T) {
	root := t.TempDir()
	if _, err := run(t, "generate", "admin/widget_thing", "--root", root); err != nil {
		t.Fatalf("generate error: %v", err)
	}

	out, err := run(t, "destroy", "admin/widget_thing", "--root", root)
	if err != nil {
		t.Fatalf("destroy error: %v", err)
	}
	assertContains(t, out, "remove  "+filepath.Join("app", "assets", "javascripts", "controllers", "admin", "widget_thing.coffee"))
	if _, err := os.Stat(filepath.Join(controllersDir(root), "admin", "widget_thing.coffee")); !os.IsNotExist(err) {
		t.Error("controller stub still exists")
	}
	readFile(t, filepath.Join(controllersDir(root), "admin.coffee"))
}

func TestConfigCommands(t *testing.T) {
	root := t.TempDir()

	out, err := run(t, "config", "validate", "--root", root)
	if err != nil {
		t.Fatalf("config validate error: %v", err)
	}
	assertContains(t, out, "defaults apply")

	if _, err := run(t, "config", "set", "extension", "js", "--root", root); err != nil {
		t.Fatalf("config set error: %v", err)
	}
	out, err = run(t, "config", "get", "extension", "--root", root)
	if err != nil {
		t.Fatalf("config get error: %v", err)
	}
	if strings.TrimSpace(out) != "js" {
		t.Errorf("config get = %q, want js", out)
	}

	out, err = run(t, "config", "show", "--root", root)
	if err != nil {
		t.Fatalf("config show error: %v", err)
	}
	assertContains(t, out, "extension: js")
	assertContains(t, out, "views_namespace: App.Views")

	out, err = run(t, "config", "validate", "--root", root)
	if err != nil {
		t.Fatalf("config validate error: %v", err)
	}
	assertContains(t, out, "is valid")

	if err := os.WriteFile(config.FilePath(root), []byte("colour: blue\n"), 0644); err != nil {
		t.Fatal(err)
	}
	out, err = run(t, "config", "validate", "--root", root)
	if err == nil {
		t.Fatal("expected validation failure")
	}
	assertContains(t, out, "colour")
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version", "--short")
	if err != nil {
		t.Fatalf("version error: %v", err)
	}
	if strings.TrimSpace(out) != buildVersion {
		t.Errorf("version --short = %q, want %q", out, buildVersion)
	}

	out, err = run(t, "version", "--json")
	if err != nil {
		t.Fatalf("version error: %v", err)
	}
	assertContains(t, out, `"commit"`)
	assertContains(t, out, `"module": "github.com/darwinjs/darwin"`)
}

// ─── Helpers ───────────────────────────────────────────────────────

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func assertContains(t *testing.T, content, substr string) {
	t.Helper()
	if !strings.Contains(content, substr) {
		t.Errorf("expected output to contain %q, got:\n%s", substr, content)
	}
}

func assertNotContains(t *testing.T, content, substr string) {
	t.Helper()
	if strings.Contains(content, substr) {
		t.Errorf("expected output NOT to contain %q, got:\n%s", substr, content)
	}
}
