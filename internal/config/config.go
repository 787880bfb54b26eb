package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/darwinjs/darwin/internal/branding"
	"github.com/darwinjs/darwin/internal/scaffold"
)

const fileType = "yaml"

// Keys settable with "config set". Plural overrides use "plurals.<word>".
var Keys = []string{
	"controllers_base",
	"views_base",
	"extension",
	"controllers_namespace",
	"views_namespace",
	"base_controller",
	"base_view",
	"required_version",
}

// Config is the effective generator configuration for one project.
type Config struct {
	Root                 string            `mapstructure:"-" yaml:"root"`
	ControllersBase      string            `mapstructure:"controllers_base" yaml:"controllers_base"`
	ViewsBase            string            `mapstructure:"views_base" yaml:"views_base"`
	Extension            string            `mapstructure:"extension" yaml:"extension"`
	ControllersNamespace string            `mapstructure:"controllers_namespace" yaml:"controllers_namespace"`
	ViewsNamespace       string            `mapstructure:"views_namespace" yaml:"views_namespace"`
	BaseController       string            `mapstructure:"base_controller" yaml:"base_controller"`
	BaseView             string            `mapstructure:"base_view" yaml:"base_view"`
	Plurals              map[string]string `mapstructure:"plurals" yaml:"plurals,omitempty"`
	RequiredVersion      string            `mapstructure:"required_version" yaml:"required_version,omitempty"`
}

// InvalidConfigError reports a config file that does not match the schema.
type InvalidConfigError struct {
	Path   string
	Issues []ValidationIssue
}

func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		msgs[i] = issue.String()
	}
	return fmt.Sprintf("invalid config %s: %s", e.Path, strings.Join(msgs, "; "))
}

// FilePath returns the config file path for a project root.
func FilePath(root string) string {
	return filepath.Join(root, branding.ConfigFile())
}

// Load reads the configuration for the project at root. A missing config
// file is not an error; an invalid one is.
func Load(root string) (*Config, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving project root %s: %w", root, err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.AutomaticEnv()

	path := FilePath(abs)
	if _, err := os.Stat(path); err == nil {
		result, err := ValidateFile(path)
		if err != nil {
			return nil, fmt.Errorf("validating %s: %w", path, err)
		}
		if !result.Valid {
			return nil, &InvalidConfigError{Path: path, Issues: result.Issues}
		}
		v.SetConfigFile(path)
		v.SetConfigType(fileType)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("checking config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Root = abs
	return &cfg, nil
}

// Layout returns the scaffold layout, with relative base directories
// resolved against the project root.
func (c *Config) Layout() scaffold.Layout {
	return scaffold.Layout{
		ControllersBase:      c.resolve(c.ControllersBase),
		ViewsBase:            c.resolve(c.ViewsBase),
		Extension:            strings.TrimPrefix(c.Extension, "."),
		ControllersNamespace: c.ControllersNamespace,
		ViewsNamespace:       c.ViewsNamespace,
		BaseController:       c.BaseController,
		BaseView:             c.BaseView,
	}
}

func (c *Config) resolve(dir string) string {
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(c.Root, filepath.FromSlash(dir))
}

// Get returns a single value from the effective configuration.
func Get(root, key string) (string, error) {
	key = normalizeKey(key)
	if err := checkKey(key); err != nil {
		return "", err
	}
	cfg, err := Load(root)
	if err != nil {
		return "", err
	}
	if word, ok := strings.CutPrefix(key, "plurals."); ok {
		return cfg.Plurals[word], nil
	}
	return cfg.value(key), nil
}

// Set writes a key to the project's config file, creating it if needed.
// Only values present in the file are written back; defaults and
// environment overrides are not.
func Set(root, key, value string) error {
	key = normalizeKey(key)
	if err := checkKey(key); err != nil {
		return err
	}
	path := FilePath(root)

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType(fileType)
	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", path, err)
		}
	}
	v.Set(key, value)

	data, err := yaml.Marshal(v.AllSettings())
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	result, err := Validate(data)
	if err != nil {
		return err
	}
	if !result.Valid {
		return &InvalidConfigError{Path: path, Issues: result.Issues}
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	d := scaffold.DefaultLayout()
	v.SetDefault("controllers_base", filepath.ToSlash(d.ControllersBase))
	v.SetDefault("views_base", filepath.ToSlash(d.ViewsBase))
	v.SetDefault("extension", d.Extension)
	v.SetDefault("controllers_namespace", d.ControllersNamespace)
	v.SetDefault("views_namespace", d.ViewsNamespace)
	v.SetDefault("base_controller", d.BaseController)
	v.SetDefault("base_view", d.BaseView)
	v.SetDefault("required_version", "")
}

func (c *Config) value(key string) string {
	switch key {
	case "controllers_base":
		return c.ControllersBase
	case "views_base":
		return c.ViewsBase
	case "extension":
		return c.Extension
	case "controllers_namespace":
		return c.ControllersNamespace
	case "views_namespace":
		return c.ViewsNamespace
	case "base_controller":
		return c.BaseController
	case "base_view":
		return c.BaseView
	case "required_version":
		return c.RequiredVersion
	}
	return ""
}

// normalizeKey accepts camelCase and kebab-case spellings of a key, so
// "viewsNamespace" and "views-namespace" both name "views_namespace". The
// word after "plurals." is kept as given.
func normalizeKey(key string) string {
	if word, ok := strings.CutPrefix(key, "plurals."); ok {
		return "plurals." + word
	}
	return strcase.ToSnake(key)
}

func checkKey(key string) error {
	if word, ok := strings.CutPrefix(key, "plurals."); ok && word != "" {
		return nil
	}
	for _, k := range Keys {
		if k == key {
			return nil
		}
	}
	known := append([]string(nil), Keys...)
	sort.Strings(known)
	return fmt.Errorf("unknown config key %q (known keys: %s, plurals.<word>)", key, strings.Join(known, ", "))
}
