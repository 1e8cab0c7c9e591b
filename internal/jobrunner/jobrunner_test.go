package jobrunner

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/lasserre/wildebeest/internal/algorithm"
	"github.com/lasserre/wildebeest/internal/run"
	"github.com/lasserre/wildebeest/internal/stepio"
)

func newWorkloadName(t *testing.T) string {
	t.Helper()
	name := fmt.Sprintf("wdbtest-%s", t.Name())
	t.Cleanup(func() { os.RemoveAll(workloadFolder(name)) })
	return name
}

func TestJobRunnerRunFinishesAllTasksDebugInProcess(t *testing.T) {
	expFolder := t.TempDir()
	algo := newAlgo("configure", "build")

	r1 := run.New("hello-debug", 1, expFolder, nil, nil)
	r2 := run.New("hello-release", 2, expFolder, nil, nil)
	if err := r1.Save(); err != nil {
		t.Fatalf("Save r1: %v", err)
	}
	if err := r2.Save(); err != nil {
		t.Fatalf("Save r2: %v", err)
	}

	workload := []*RunTask{
		NewRunTask(r1, algo, nil, ""),
		NewRunTask(r2, algo, nil, ""),
	}

	runner, err := New(newWorkloadName(t), workload, 2, expFolder, true)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer runner.Close()

	failed, err := runner.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(failed) != 0 {
		t.Fatalf("expected no failed tasks, got %d", len(failed))
	}
	if r1.Status != run.StatusFinished || r2.Status != run.StatusFinished {
		t.Fatalf("expected both runs finished: r1=%q r2=%q", r1.Status, r2.Status)
	}
}

func TestJobRunnerRunReportsFailedTask(t *testing.T) {
	expFolder := t.TempDir()
	boom := errors.New("boom")
	algo := algorithm.New([]algorithm.RunStep{
		{Name: "configure", Process: func(rv algorithm.RunView, p stepio.Params, o stepio.Outputs) (stepio.StepOutput, error) {
			return stepio.StepOutput{}, boom
		}},
	}, nil, nil)

	r := run.New("hello-debug", 1, expFolder, nil, nil)
	if err := r.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	workload := []*RunTask{NewRunTask(r, algo, nil, "")}

	runner, err := New(newWorkloadName(t), workload, 1, expFolder, true)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer runner.Close()

	failed, err := runner.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(failed) != 1 {
		t.Fatalf("expected exactly one failed task, got %d", len(failed))
	}
}

func TestNewForcesSingleJobWhenDebugInProcess(t *testing.T) {
	runner, err := New(newWorkloadName(t), nil, 8, t.TempDir(), true)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer runner.Close()
	if runner.NumJobs != 1 {
		t.Fatalf("NumJobs = %d, want 1", runner.NumJobs)
	}
}

func TestCloseKillsRunningJobsAndIsIdempotent(t *testing.T) {
	runner, err := New(newWorkloadName(t), nil, 1, t.TempDir(), false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	runner.runningJobs = []*Job{{PID: 0}}
	if err := runner.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if len(runner.runningJobs) != 0 {
		t.Fatalf("expected runningJobs cleared after Close")
	}
	if err := runner.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}
