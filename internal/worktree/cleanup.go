package worktree

import (
	"context"
	"path/filepath"
	"strings"
)

// Session describes the worktree the process is currently inside.
type Session struct {
	WorktreePath string // the worktree checkout
	MainRepo     string // the primary repository path
	Branch       string // the branch checked out in the worktree
}

// Detect reports whether dir is inside a linked git worktree, by
// inspecting the git-internal directory path for a worktrees segment.
func Detect(ctx context.Context, dir string) (*Session, bool) {
	gitDir, err := git(ctx, dir, "rev-parse", "--git-dir")
	if err != nil {
		return nil, false
	}
	main, ok := MainRepoFromGitDir(gitDir)
	if !ok {
		return nil, false
	}
	top, err := git(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return nil, false
	}
	branch, err := git(ctx, dir, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		branch = ""
	}
	return &Session{WorktreePath: top, MainRepo: main, Branch: branch}, true
}

// MainRepoFromGitDir derives the primary repository path from a linked
// worktree's git dir, which has the shape
// "<repo>/.git/worktrees/<name>". Returns false for a primary checkout.
func MainRepoFromGitDir(gitDir string) (string, bool) {
	norm := filepath.ToSlash(gitDir)
	idx := strings.Index(norm, "/.git/worktrees/")
	if idx < 0 {
		return "", false
	}
	return gitDir[:idx], true
}

// RemovalCommands returns the shell commands that tear the session down.
// They are printed for the user to run, never executed here: a child
// process cannot change the parent shell's working directory, and the
// first step is leaving the worktree.
func (s *Session) RemovalCommands(deleteBranch bool) []string {
	cmds := []string{
		"cd " + s.MainRepo,
		"git worktree remove " + s.WorktreePath,
	}
	if deleteBranch && s.Branch != "" {
		cmds = append(cmds, "git branch -d "+s.Branch)
	}
	return cmds
}
