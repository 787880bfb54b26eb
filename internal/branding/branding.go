// Package branding provides compile-time identity values for the CLI.
//
// Values live in branding.yaml next to this file and are baked into the
// binary with //go:embed, so a fork can rename the tool without touching
// Go code.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName     string `yaml:"cli_name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	EnvPrefix   string `yaml:"env_prefix"`
	ConfigFile  string `yaml:"config_file"`
	GoModule    string `yaml:"go_module"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing or empty.
		defaults = brand{
			CLIName:     "darwin",
			DisplayName: "Darwin",
			Description: "Scaffold Darwin.js controllers and views",
			EnvPrefix:   "DARWIN",
			ConfigFile:  ".darwin.yaml",
			GoModule:    "github.com/darwinjs/darwin",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "darwin").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// EnvPrefix returns the environment variable prefix (e.g., "DARWIN").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// ConfigFile returns the project config file name looked up in the
// project root (e.g., ".darwin.yaml").
func ConfigFile() string { load(); return defaults.ConfigFile }

// GoModule returns the Go module path reported by "version --json".
func GoModule() string { load(); return defaults.GoModule }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("root") → "DARWIN_ROOT".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
