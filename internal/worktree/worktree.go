// Package worktree turns a selected issue into an isolated working
// directory: a dedicated branch checked out as a git worktree, with
// ignored local files copied over and dependencies installed.
package worktree

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// branchSlugMax caps the slugified title portion of a branch name.
const branchSlugMax = 50

// Slug lowercases the title, collapses every run of non-alphanumeric
// characters into a single hyphen, trims boundary hyphens and truncates
// to branchSlugMax characters.
func Slug(title string) string {
	var b strings.Builder
	lastHyphen := false
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	s := strings.Trim(b.String(), "-")
	if len(s) > branchSlugMax {
		s = strings.TrimRight(s[:branchSlugMax], "-")
	}
	return s
}

// BranchName derives the work branch for an issue, e.g.
// "ENG-42-fix-login-timeout".
func BranchName(identifier, title string) string {
	slug := Slug(title)
	if slug == "" {
		return identifier
	}
	return identifier + "-" + slug
}

// Options is the optional per-repository tool configuration, read from
// .lin/worktree.toml at the repo root.
type Options struct {
	// Root overrides where worktrees are created. Relative paths are
	// resolved against the repo root.
	Root string `toml:"root"`
	// Install overrides the dependency install command, split on spaces.
	Install string `toml:"install"`
	// Manifest overrides the include-manifest path.
	Manifest string `toml:"manifest"`
}

const (
	optionsFile     = ".lin/worktree.toml"
	defaultManifest = ".lin/worktree-include"
)

// LoadOptions reads the tool config from the repo, returning zero
// options when the file does not exist.
func LoadOptions(repoRoot string) (Options, error) {
	var opts Options
	path := filepath.Join(repoRoot, optionsFile)
	if _, err := toml.DecodeFile(path, &opts); err != nil {
		if os.IsNotExist(err) {
			return Options{}, nil
		}
		return Options{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return opts, nil
}

// RootDir returns the directory new worktrees are placed under: the
// configured root, or a "<repo>-worktrees" sibling of the repository.
func (o Options) RootDir(repoRoot string) string {
	if o.Root != "" {
		if filepath.IsAbs(o.Root) {
			return o.Root
		}
		return filepath.Join(repoRoot, o.Root)
	}
	parent := filepath.Dir(repoRoot)
	return filepath.Join(parent, filepath.Base(repoRoot)+"-worktrees")
}

// ManifestPath returns the include-manifest location inside the repo.
func (o Options) ManifestPath(repoRoot string) string {
	if o.Manifest != "" {
		return filepath.Join(repoRoot, o.Manifest)
	}
	return filepath.Join(repoRoot, defaultManifest)
}
