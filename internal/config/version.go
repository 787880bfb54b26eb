package config

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// VersionMismatchError reports a build that does not satisfy the project's
// required_version constraint.
type VersionMismatchError struct {
	Required string
	Version  string
}

func (e *VersionMismatchError) Error() string {
	return fmt.Sprintf("project requires version %s, this is %s", e.Required, e.Version)
}

// CheckVersion verifies version against the project's required_version.
// Development builds ("dev" or empty) always pass.
func (c *Config) CheckVersion(version string) error {
	return CheckVersion(c.RequiredVersion, version)
}

// CheckVersion reports whether version satisfies the semver constraint.
// A leading "v" on version is tolerated.
func CheckVersion(constraint, version string) error {
	if constraint == "" {
		return nil
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("parsing required_version %q: %w", constraint, err)
	}
	if version == "" || version == "dev" {
		return nil
	}
	v, err := semver.NewVersion(strings.TrimPrefix(version, "v"))
	if err != nil {
		return fmt.Errorf("parsing version %q: %w", version, err)
	}
	if !c.Check(v) {
		return &VersionMismatchError{Required: constraint, Version: version}
	}
	return nil
}
