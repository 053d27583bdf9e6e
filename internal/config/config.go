// Package config loads the layered CLI configuration and the alias table.
//
// A config file in the current directory shadows fields of the one in the
// user's home directory; environment variables fill in api key and team
// when neither file supplies them. The result is an immutable Config built
// once at startup and passed into every component that needs it.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileName is the config file name looked up locally and in $HOME.
const FileName = ".linrc"

// Environment fallbacks for the credential fields only. Aliases and the
// default project/milestone pointers have no environment equivalent.
const (
	EnvAPIKey  = "LINEAR_API_KEY"
	EnvTeamKey = "LINEAR_TEAM_KEY"
)

// ErrNoConfigFile is returned by alias mutations when no config file
// exists yet; login/setup is a prerequisite.
var ErrNoConfigFile = errors.New("no config file found; run `lin login` first")

// AliasNotFoundError is returned when removing an alias code that does
// not exist in the active config file.
type AliasNotFoundError struct {
	Code string
}

func (e *AliasNotFoundError) Error() string {
	return fmt.Sprintf("alias %q not found", e.Code)
}

// Config is the resolved configuration for one command invocation.
type Config struct {
	APIKey           string
	Team             string
	DefaultProject   string
	DefaultMilestone string

	// Aliases maps uppercase short codes to target names. Entries from
	// the local file shadow same-code entries from the global file.
	Aliases map[string]string

	// activePath is the file alias mutations write to: the local file
	// when it exists, else the global one.
	activePath string
}

// Paths returns the local and global config file paths.
func Paths() (local, global string, err error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", "", fmt.Errorf("resolving working directory: %w", err)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(cwd, FileName), filepath.Join(home, FileName), nil
}

// Load builds the configuration from the default file locations and the
// environment.
func Load() (*Config, error) {
	local, global, err := Paths()
	if err != nil {
		return nil, err
	}
	return LoadFrom(local, global)
}

// LoadFrom builds the configuration from explicit file paths. For every
// scalar field: local value if present, else global, else environment,
// else absent. Alias tables merge with local winning per code.
func LoadFrom(localPath, globalPath string) (*Config, error) {
	cfg := &Config{Aliases: map[string]string{}}

	globalFile, err := parseFile(globalPath)
	if err != nil {
		return nil, err
	}
	localFile, err := parseFile(localPath)
	if err != nil {
		return nil, err
	}

	for _, f := range []*file{globalFile, localFile} {
		if f == nil {
			continue
		}
		overlayScalar(&cfg.APIKey, f.scalar("api_key"))
		overlayScalar(&cfg.Team, f.scalar("team"))
		overlayScalar(&cfg.DefaultProject, f.scalar("default_project"))
		overlayScalar(&cfg.DefaultMilestone, f.scalar("default_milestone"))
		for _, a := range f.aliases {
			cfg.Aliases[a.code] = a.name
		}
	}

	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv(EnvAPIKey)
	}
	if cfg.Team == "" {
		cfg.Team = os.Getenv(EnvTeamKey)
	}

	switch {
	case localFile != nil:
		cfg.activePath = localPath
	case globalFile != nil:
		cfg.activePath = globalPath
	}

	return cfg, nil
}

func overlayScalar(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// ActivePath returns the config file alias mutations target, or empty
// when no file exists.
func (c *Config) ActivePath() string { return c.activePath }

// RequireCredentials fails when the api key or team is still unset after
// layering; nothing should hit the network without them.
func (c *Config) RequireCredentials() error {
	if c.APIKey == "" {
		return fmt.Errorf("no API key configured; run `lin login` or set %s", EnvAPIKey)
	}
	if c.Team == "" {
		return fmt.Errorf("no team configured; run `lin login` or set %s", EnvTeamKey)
	}
	return nil
}

// Resolve substitutes an alias code with its target name. The match is a
// case-insensitive exact match on the code; anything else passes through
// unchanged. This runs before every name-based project/milestone lookup.
func (c *Config) Resolve(nameOrCode string) string {
	if name, ok := c.Aliases[strings.ToUpper(nameOrCode)]; ok {
		return name
	}
	return nameOrCode
}

// AliasFor finds the best alias for a resolved entity name: among all
// aliases whose target is a case-insensitive prefix of name, the one with
// the longest target wins. Returns false when none qualifies.
func (c *Config) AliasFor(name string) (string, bool) {
	lower := strings.ToLower(name)
	bestCode, bestLen := "", -1
	for code, target := range c.Aliases {
		t := strings.ToLower(target)
		if strings.HasPrefix(lower, t) && len(t) > bestLen {
			bestCode, bestLen = code, len(t)
		}
	}
	return bestCode, bestLen >= 0
}

// SetScalar upserts key=value among the scalar lines of the file at
// path, creating the file when absent. Login uses this to write
// credentials without disturbing anything else in the file.
func SetScalar(path, key, value string) error {
	return setScalarInFile(path, key, value)
}

// RemoveScalar deletes key from the file at path. A missing file or key
// is a no-op.
func RemoveScalar(path, key string) error {
	return removeScalarFromFile(path, key)
}

// SetAlias upserts code=name into the [aliases] section of the active
// config file. Fails with ErrNoConfigFile when no file exists.
func (c *Config) SetAlias(code, name string) error {
	if c.activePath == "" {
		return ErrNoConfigFile
	}
	return setAliasInFile(c.activePath, strings.ToUpper(code), name)
}

// RemoveAlias deletes code from the active config file. Fails with
// AliasNotFoundError when the code is absent.
func (c *Config) RemoveAlias(code string) error {
	if c.activePath == "" {
		return ErrNoConfigFile
	}
	return removeAliasFromFile(c.activePath, strings.ToUpper(code))
}
