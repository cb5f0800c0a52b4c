// Package paths resolves configuration and data directory locations.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// appDirName is the per-application directory created under platform
// base directories.
const appDirName = "manifold"

// CWD-relative directory names.
const (
	DefaultConfigDirName = ".manifold"
	DefaultDataDirName   = ".manifold-db"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "MANIFOLD_CONFIG_DIR"
	EnvDataDir   = "MANIFOLD_DATA_DIR"
)

// DefaultConfigDir returns the platform-specific default configuration
// directory.
//
// Linux:   $XDG_CONFIG_HOME/manifold (fallback ~/.config/manifold)
// macOS:   ~/Library/Application Support/manifold
// Windows: %APPDATA%/manifold
func DefaultConfigDir() (string, error) {
	return platformDefault("XDG_CONFIG_HOME", ".config")
}

// DefaultDataDir returns the platform-specific default data directory.
//
// Linux:   $XDG_DATA_HOME/manifold (fallback ~/.local/share/manifold)
// macOS:   ~/Library/Application Support/manifold
// Windows: %APPDATA%/manifold
func DefaultDataDir() (string, error) {
	return platformDefault("XDG_DATA_HOME", ".local", "share")
}

// platformDefault resolves the manifold directory under the XDG base
// named by xdgEnv on Linux, falling back to homeRelative under $HOME
// when the variable is unset. Other platforms ignore both and use
// os.UserConfigDir, which maps to ~/Library/Application Support on
// macOS and %APPDATA% on Windows.
func platformDefault(xdgEnv string, homeRelative ...string) (string, error) {
	if runtime.GOOS != "linux" {
		base, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(base, appDirName), nil
	}

	if xdg := os.Getenv(xdgEnv); xdg != "" {
		return filepath.Join(xdg, appDirName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	elems := append([]string{home}, homeRelative...)
	return filepath.Join(append(elems, appDirName)...), nil
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > MANIFOLD_CONFIG_DIR env > DefaultConfigDir().
// Explicit overrides are made absolute.
func ResolveConfigDir(flag string) (string, error) {
	if dir := firstNonEmpty(flag, os.Getenv(EnvConfigDir)); dir != "" {
		return filepath.Abs(dir)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the data directory following the precedence
// chain: flag > configYAMLValue > MANIFOLD_DATA_DIR env > the
// CWD-relative default $(CWD)/.manifold-db. The CWD-relative default
// keeps database files next to the project being worked on.
func ResolveDataDir(flag, configYAMLValue string) (string, error) {
	if dir := firstNonEmpty(flag, configYAMLValue, os.Getenv(EnvDataDir)); dir != "" {
		return filepath.Abs(dir)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}

// firstNonEmpty returns the first non-empty value, or "".
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
