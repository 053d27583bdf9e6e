package worktree

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Warn is called for non-fatal problems during setup (install failures,
// uncopyable include paths). Commands override it to style the output.
var Warn = func(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
}

// Start creates the branch+worktree sandbox for an issue and returns the
// worktree path. The branch may already exist from an earlier session;
// in that case the worktree attaches to it instead of creating it.
func Start(ctx context.Context, repoRoot, identifier, title string) (string, error) {
	opts, err := LoadOptions(repoRoot)
	if err != nil {
		return "", err
	}

	branch := BranchName(identifier, title)
	path := filepath.Join(opts.RootDir(repoRoot), branch)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating worktree root: %w", err)
	}

	// New branch first; if it already exists, attach instead.
	if _, err := git(ctx, repoRoot, "worktree", "add", "-b", branch, path); err != nil {
		if _, err := git(ctx, repoRoot, "worktree", "add", path, branch); err != nil {
			return "", fmt.Errorf("creating worktree for %s: %w", branch, err)
		}
	}

	copyIncluded(ctx, repoRoot, path, opts)
	runInstall(ctx, path, opts)

	return path, nil
}

// copyIncluded copies manifest-listed paths into the worktree, but only
// when git ignores them in the source tree; tracked files travel with
// the branch already. Missing manifest or paths are skipped silently.
func copyIncluded(ctx context.Context, repoRoot, worktree string, opts Options) {
	paths, err := ReadManifest(opts.ManifestPath(repoRoot))
	if err != nil {
		return
	}
	for _, rel := range paths {
		src := filepath.Join(repoRoot, rel)
		if _, err := os.Stat(src); err != nil {
			continue
		}
		if _, err := git(ctx, repoRoot, "check-ignore", "-q", rel); err != nil {
			continue // tracked or unignored
		}
		if err := copyPath(src, filepath.Join(worktree, rel)); err != nil {
			Warn("could not copy %s: %v", rel, err)
		}
	}
}

// ReadManifest parses the include manifest: newline-separated relative
// paths, `#` comments and blank lines ignored.
func ReadManifest(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		paths = append(paths, line)
	}
	return paths, nil
}

func copyPath(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if info.IsDir() {
		entries, err := os.ReadDir(src)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dst, info.Mode().Perm()); err != nil {
			return err
		}
		for _, e := range entries {
			if err := copyPath(filepath.Join(src, e.Name()), filepath.Join(dst, e.Name())); err != nil {
				return err
			}
		}
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.Copy(out, in)
	return err
}

// installers pairs lockfiles with their install commands, in detection
// priority order.
var installers = []struct {
	lockfile string
	command  []string
}{
	{"pnpm-lock.yaml", []string{"pnpm", "install"}},
	{"yarn.lock", []string{"yarn", "install"}},
	{"bun.lockb", []string{"bun", "install"}},
	{"package-lock.json", []string{"npm", "install"}},
}

// DetectInstaller returns the install command for the first lockfile
// present in dir, or nil when none is found.
func DetectInstaller(dir string) []string {
	for _, in := range installers {
		if _, err := os.Stat(filepath.Join(dir, in.lockfile)); err == nil {
			return in.command
		}
	}
	return nil
}

// runInstall runs the detected (or configured) dependency install in the
// worktree. Failure is a warning, never fatal.
func runInstall(ctx context.Context, worktree string, opts Options) {
	var argv []string
	if opts.Install != "" {
		argv = strings.Fields(opts.Install)
	} else {
		argv = DetectInstaller(worktree)
	}
	if len(argv) == 0 {
		return
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = worktree
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		Warn("dependency install (%s) failed: %v", strings.Join(argv, " "), err)
	}
}

// git runs one git command in dir and returns its trimmed stdout.
func git(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return strings.TrimSpace(string(out)), nil
}
