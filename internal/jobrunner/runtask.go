package jobrunner

import (
	"fmt"
	"time"

	"github.com/lasserre/wildebeest/internal/algorithm"
	"github.com/lasserre/wildebeest/internal/run"
	"github.com/lasserre/wildebeest/internal/stepexec"
	"github.com/lasserre/wildebeest/internal/stepio"
)

// RunTask binds one Run to the Algorithm and experiment-level params that
// drive it, plus an optional resume point. It is JobRunner's unit of work,
// matching original_source/wildebeest/jobrunner.py's RunTask.
type RunTask struct {
	Run         *run.Run
	Algorithm   *algorithm.Algorithm
	ExpParams   stepio.Params
	RunFromStep string

	JobID      int
	Name       string
	StartTime  time.Time
	FinishTime time.Time
}

func NewRunTask(r *run.Run, algo *algorithm.Algorithm, expParams stepio.Params, runFromStep string) *RunTask {
	return &RunTask{
		Run:         r,
		Algorithm:   algo,
		ExpParams:   expParams,
		RunFromStep: runFromStep,
		JobID:       r.Number,
		Name:        fmt.Sprintf("Run %d (%s)", r.Number, r.Name),
	}
}

// RunFromStepIdx is the index RunFromStep names, or 0 if unset.
func (t *RunTask) RunFromStepIdx() int {
	if t.RunFromStep == "" {
		return 0
	}
	return t.Algorithm.IndexOf(t.RunFromStep)
}

// Runtime is this task's duration rounded down to the second, matching the
// original's timedelta(days=rt.days, seconds=rt.seconds) truncation.
func (t *RunTask) Runtime() time.Duration {
	return t.FinishTime.Sub(t.StartTime).Truncate(time.Second)
}

// Execute runs the task's Run through [fromStep, toStep] (or RunFromStep to
// the end, if both are empty), recording start/finish times on both the
// task and the Run. fromStep passed in by job control (a phase boundary)
// overrides RunFromStep, since RunFromStep only matters for the very first
// phase of a resumed run.
func (t *RunTask) Execute(fromStep, toStep string) error {
	t.FinishTime = time.Time{}
	t.onStart()

	firstStep := t.Algorithm.Steps[0].Name
	lastStep := t.Algorithm.Steps[len(t.Algorithm.Steps)-1].Name
	if fromStep != "" {
		firstStep = fromStep
	} else if t.RunFromStep != "" {
		firstStep = t.RunFromStep
	}
	if toStep != "" {
		lastStep = toStep
	}

	executor := stepexec.New(t.Algorithm, t.ExpParams)
	err := executor.ExecuteFrom(t.Run, firstStep, lastStep)
	t.FinishTime = time.Now()
	if err != nil {
		return err
	}
	t.onFinished()
	return nil
}

func (t *RunTask) onStart() {
	t.StartTime = time.Now()
	t.Run.StartTime = t.StartTime
}

func (t *RunTask) onFinished() {
	t.Run.Runtime = t.Runtime()
}

// OnFailed reloads the Run from disk (in case it was updated by a now-dead
// child) and marks it Failed, covering the case of an externally killed job
// that never got to self-report.
func (t *RunTask) OnFailed(expRoot string) error {
	reloaded, err := run.Load(t.Run.RunstateFile(), expRoot)
	if err != nil {
		return err
	}
	t.Run = reloaded
	t.Run.Runtime = t.Runtime()
	t.Run.Status = run.StatusFailed
	if t.Run.ErrorMsg == "" {
		t.Run.ErrorMsg = "RunTask failed without an error message (possibly killed?)"
	}
	return t.Run.Save()
}
