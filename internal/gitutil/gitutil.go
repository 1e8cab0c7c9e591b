// Package gitutil wraps the git CLI for the plain clone/checkout operations
// ProjectBuild needs: obtaining a project's source tree at a specific
// revision and reporting what revision ended up checked out. Unlike the
// teacher's gitutil (worktree-per-run checkpointing of an experiment's own
// history), wildebeest only ever clones third-party project sources once per
// build, so there is no worktree/branch/commit machinery here.
package gitutil

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

type CommandError struct {
	Args   []string
	Stdout string
	Stderr string
	Err    error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("git %s: %v", strings.Join(e.Args, " "), e.Err)
	if e.Stderr != "" {
		msg += ": " + strings.TrimSpace(e.Stderr)
	}
	return msg
}

func runGit(dir string, args ...string) (string, string, error) {
	base := []string{"-c", "maintenance.auto=0", "-c", "gc.auto=0"}
	if dir != "" {
		base = append([]string{"-C", dir}, base...)
	}
	cmd := exec.Command("git", append(base, args...)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	outStr, errStr := stdout.String(), stderr.String()
	if err != nil {
		return outStr, errStr, &CommandError{Args: args, Stdout: outStr, Stderr: errStr, Err: err}
	}
	return outStr, errStr, nil
}

// Clone clones remote into destDir. If head is non-empty, the clone is then
// checked out to that revision (branch, tag, or SHA); otherwise the remote's
// default branch is left checked out.
func Clone(remote, destDir, head string) error {
	if _, _, err := runGit("", "clone", remote, destDir); err != nil {
		return err
	}
	if head == "" {
		return nil
	}
	if _, _, err := runGit(destDir, "checkout", head); err != nil {
		return err
	}
	return nil
}

// HeadSHA returns the full SHA of the currently checked out commit in dir.
func HeadSHA(dir string) (string, error) {
	out, _, err := runGit(dir, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// IsRepo reports whether dir is inside a git working tree.
func IsRepo(dir string) bool {
	out, _, err := runGit(dir, "rev-parse", "--is-inside-work-tree")
	if err != nil {
		return false
	}
	return strings.TrimSpace(out) == "true"
}

// IsClean reports whether dir's working tree has no uncommitted changes.
func IsClean(dir string) (bool, error) {
	out, _, err := runGit(dir, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) == "", nil
}
