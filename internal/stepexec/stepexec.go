// Package stepexec implements in-process sequential execution of a Run's
// core step sequence, per spec section 4.4. It is the direct counterpart of
// ExperimentAlgorithm.execute_from/execute in
// original_source/wildebeest/experimentalgorithm.py, split out of the
// algorithm package so algorithm stays a pure description of steps and
// stepexec owns the mutate-and-persist execution loop against a concrete
// *run.Run.
package stepexec

import (
	"fmt"
	"time"

	"github.com/lasserre/wildebeest/internal/algorithm"
	"github.com/lasserre/wildebeest/internal/run"
	"github.com/lasserre/wildebeest/internal/stepio"
)

// StepExecutor drives one Run through a slice of an Algorithm's core steps.
type StepExecutor struct {
	Algorithm *algorithm.Algorithm
	ExpParams stepio.Params
}

func New(algo *algorithm.Algorithm, expParams stepio.Params) *StepExecutor {
	return &StepExecutor{Algorithm: algo, ExpParams: expParams}
}

// ValidateExecuteFrom reports whether r can resume execution at fromStep:
// the step must exist, and if it isn't the first step, the run's
// last-completed step must be the one immediately before it or any later
// step.
func (e *StepExecutor) ValidateExecuteFrom(r *run.Run, fromStep string) error {
	if !e.Algorithm.HasStep(fromStep) {
		return fmt.Errorf("no step named %q", fromStep)
	}
	fromIdx := e.Algorithm.IndexOf(fromStep)
	if fromIdx == 0 {
		return nil
	}
	if r.LastCompletedStep == "" {
		return fmt.Errorf("can't execute from step %d %q when step 0 %q hasn't been completed",
			fromIdx, fromStep, e.Algorithm.Steps[0].Name)
	}
	lastIdx := e.Algorithm.IndexOf(r.LastCompletedStep)
	if lastIdx < fromIdx-1 {
		return fmt.Errorf("can't execute from step %d %q when last completed step is step %d %q",
			fromIdx, fromStep, lastIdx, r.LastCompletedStep)
	}
	return nil
}

// ExecuteFrom [re-]executes the algorithm's core steps beginning at
// fromStep, stopping after toStep (inclusive) if given, else running to the
// end of the sequence. The preceding steps must already be completed for r.
func (e *StepExecutor) ExecuteFrom(r *run.Run, fromStep, toStep string) error {
	if err := e.Algorithm.Validate(); err != nil {
		return err
	}
	if err := e.ValidateExecuteFrom(r, fromStep); err != nil {
		return err
	}

	fromIdx := e.Algorithm.IndexOf(fromStep)
	toIdx := len(e.Algorithm.Steps) - 1
	if toStep != "" {
		if !e.Algorithm.HasStep(toStep) {
			return fmt.Errorf("no step named %q", toStep)
		}
		toIdx = e.Algorithm.IndexOf(toStep)
		if toIdx < fromIdx {
			return fmt.Errorf("to step %q precedes from step %q", toStep, fromStep)
		}
	}

	if fromIdx == 0 {
		r.Outputs = stepio.Outputs{}
		r.LastCompletedStep = ""
	}
	r.FailedStep = ""
	r.ErrorMsg = ""
	r.Status = run.StatusRunning
	if err := r.Save(); err != nil {
		return err
	}

	for _, step := range e.Algorithm.Steps[fromIdx : toIdx+1] {
		r.CurrentStep = step.Name
		if r.StepStartTimes == nil {
			r.StepStartTimes = map[string]time.Time{}
		}
		start := time.Now()
		r.StepStartTimes[step.Name] = start
		if err := r.Save(); err != nil {
			return err
		}

		merged := stepio.Merge(e.ExpParams, step.Params)
		out, err := step.Process(r, merged, r.Outputs)

		if r.StepRuntimes == nil {
			r.StepRuntimes = map[string]time.Duration{}
		}
		r.StepRuntimes[step.Name] = time.Since(start)

		if err != nil {
			r.Status = run.StatusFailed
			r.FailedStep = step.Name
			r.ErrorMsg = err.Error()
			_ = r.Save()
			return &StepError{RunName: r.Name, StepName: step.Name, Err: err}
		}

		r.Outputs[step.Name] = out
		r.LastCompletedStep = step.Name
		if err := r.Save(); err != nil {
			return err
		}
	}

	if r.LastCompletedStep == e.Algorithm.Steps[len(e.Algorithm.Steps)-1].Name {
		r.Status = run.StatusFinished
	}
	return r.Save()
}

// Execute resets r's running state and executes the full algorithm from its
// first step.
func (e *StepExecutor) Execute(r *run.Run) error {
	r.InitRunningState()
	if err := r.Save(); err != nil {
		return err
	}
	return e.ExecuteFrom(r, e.Algorithm.Steps[0].Name, "")
}

// StepError reports which run and step failed, wrapping the step's own
// error so callers (JobRunner, the CLI) can log the offending step.
type StepError struct {
	RunName  string
	StepName string
	Err      error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("run %q failed during the %q step: %v", e.RunName, e.StepName, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
