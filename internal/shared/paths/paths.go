package paths

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DefaultBase is used when no resources path is configured.
const DefaultBase = "."

// Resources identifies the state files of one application.
type Resources struct {
	Base string
	App  string
}

// New validates the app name and returns its resource location. An empty
// base falls back to DefaultBase.
func New(base, appName string) (Resources, error) {
	if err := ValidateAppName(appName); err != nil {
		return Resources{}, err
	}
	if base == "" {
		base = DefaultBase
	}
	return Resources{Base: filepath.Clean(base), App: appName}, nil
}

// FileName returns the conventional file name for a format
func FileName(appName, format string) string {
	return appName + "." + format
}

// Default returns the default file path for a format
func (r Resources) Default(format string) string {
	return filepath.Join(r.Base, FileName(r.App, format))
}

// Resolve maps a user supplied filename to a path. Empty means the default
// for the format; relative names are taken relative to the base path.
func (r Resources) Resolve(filename, format string) string {
	if filename == "" {
		return r.Default(format)
	}
	if filepath.IsAbs(filename) {
		return filepath.Clean(filename)
	}
	return filepath.Join(r.Base, filename)
}

// ValidateAppName checks if an app name is usable as a file name stem
func ValidateAppName(name string) error {
	if name == "" {
		return fmt.Errorf("app name cannot be empty")
	}
	if strings.TrimSpace(name) != name {
		return fmt.Errorf("app name cannot have leading or trailing whitespace")
	}
	if filepath.IsAbs(name) {
		return fmt.Errorf("app name cannot be an absolute path")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("app name contains invalid path components")
	}
	return nil
}
