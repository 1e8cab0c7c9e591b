package jobrunner

import (
	"os/exec"
	"strconv"

	"github.com/lasserre/wildebeest/internal/dockerutil"
)

// subprocessCmd builds the re-invocation command line JobRunner uses to
// hand a phase off to a fresh engine process: `<wdbCommand> run --job <id>
// --from <from> --to <to>`. This bootstrapping trick (re-exec the CLI
// rather than fork the supervisor's own process) is what lets docker and
// non-docker phases share one code path and lets a crashed supervisor's
// children keep running to completion.
func subprocessCmd(wdbCommand string, jobID int, fromStep, toStep string) *exec.Cmd {
	return exec.Command(wdbCommand, runArgs(jobID, fromStep, toStep)...)
}

// dockerExecCmd wraps the same command in `docker exec <container> ...`.
func dockerExecCmd(container, wdbCommand string, jobID int, fromStep, toStep string) *exec.Cmd {
	args := append([]string{wdbCommand}, runArgs(jobID, fromStep, toStep)...)
	return dockerutil.Exec(container, args...)
}

func runArgs(jobID int, fromStep, toStep string) []string {
	args := []string{"run", "--job", strconv.Itoa(jobID)}
	if fromStep != "" {
		args = append(args, "--from", fromStep)
	}
	if toStep != "" {
		args = append(args, "--to", toStep)
	}
	return args
}
