// Package dockerutil wraps the docker CLI for the handful of operations
// wildebeest's docker-phase steps and JobRunner need: launching a
// long-lived container for a Run, execing the engine binary inside it, and
// tearing it down.
package dockerutil

import (
	"fmt"
	"os/exec"
	"strings"
)

// RunDetached starts a long-lived container named name from image, with
// extra args (volume mounts, env, etc.) inserted before the image. The
// container runs indefinitely (tail -f /dev/null) so later Exec calls can
// reuse it across a Run's phases.
func RunDetached(name, image string, extraArgs ...string) error {
	args := append([]string{"run", "-td", "--name", name}, extraArgs...)
	args = append(args, image, "tail", "-f", "/dev/null")
	cmd := exec.Command("docker", args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("docker run %s: %w: %s", name, err, out)
	}
	return nil
}

// Exec starts `docker exec <container> <command...>` and returns the
// *exec.Cmd unstarted so the caller can wire stdout/stderr and Start it
// itself (matching how JobRunner launches non-docker jobs too).
func Exec(container string, command ...string) *exec.Cmd {
	args := append([]string{"exec", container}, command...)
	return exec.Command("docker", args...)
}

// RemoveForce stops and removes a container, tolerating it not existing.
func RemoveForce(name string) error {
	cmd := exec.Command("docker", "rm", "-f", name)
	out, err := cmd.CombinedOutput()
	if err != nil && !strings.Contains(string(out), "No such container") {
		return fmt.Errorf("docker rm -f %s: %w: %s", name, err, out)
	}
	return nil
}

// Exists reports whether a container named name exists (running or not).
func Exists(name string) bool {
	cmd := exec.Command("docker", "inspect", name)
	return cmd.Run() == nil
}
