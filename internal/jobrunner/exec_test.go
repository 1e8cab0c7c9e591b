package jobrunner

import (
	"strings"
	"testing"
)

func TestRunArgsOmitsFromToWhenEmpty(t *testing.T) {
	args := runArgs(3, "", "")
	want := []string{"run", "--job", "3"}
	if strings.Join(args, " ") != strings.Join(want, " ") {
		t.Fatalf("runArgs = %v, want %v", args, want)
	}
}

func TestRunArgsIncludesFromAndTo(t *testing.T) {
	args := runArgs(3, "configure", "build")
	want := []string{"run", "--job", "3", "--from", "configure", "--to", "build"}
	if strings.Join(args, " ") != strings.Join(want, " ") {
		t.Fatalf("runArgs = %v, want %v", args, want)
	}
}

func TestSubprocessCmdUsesGivenWdbCommand(t *testing.T) {
	cmd := subprocessCmd("wdb", 7, "configure", "")
	if cmd.Args[0] != "wdb" {
		t.Fatalf("cmd.Args[0] = %q, want wdb", cmd.Args[0])
	}
	want := []string{"wdb", "run", "--job", "7", "--from", "configure"}
	if strings.Join(cmd.Args, " ") != strings.Join(want, " ") {
		t.Fatalf("cmd.Args = %v, want %v", cmd.Args, want)
	}
}

func TestDockerExecCmdWrapsRunArgs(t *testing.T) {
	cmd := dockerExecCmd("wdb-abc123", "wdb", 7, "", "build")
	joined := strings.Join(cmd.Args, " ")
	if !strings.Contains(joined, "exec") || !strings.Contains(joined, "wdb-abc123") {
		t.Fatalf("cmd.Args = %v, expected a docker exec against the given container", cmd.Args)
	}
	if !strings.Contains(joined, "--to build") {
		t.Fatalf("cmd.Args = %v, expected the wrapped run args to be present", cmd.Args)
	}
}
