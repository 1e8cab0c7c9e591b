// Package algorithm defines the ordered step sequences that drive a Run
// (RunStep) and an Experiment (ExpStep), and the phase-segmentation
// primitive JobRunner uses to alternate between host and container
// execution without Run/Job needing to model phases explicitly.
package algorithm

import (
	"fmt"

	"github.com/lasserre/wildebeest/internal/stepio"
)

// ExperimentView is the subset of Experiment an ExpStep's process function
// needs. Algorithm depends on this interface instead of the concrete
// experiment.Experiment type so that experiment (which owns an Algorithm)
// does not create an import cycle with algorithm.
type ExperimentView interface {
	Params() stepio.Params
}

// RunView is the subset of Run a RunStep's process function needs.
type RunView interface {
	AllOutputs() stepio.Outputs
}

// ExpProcess is the callable contract of an ExpStep: given the experiment,
// this step's merged params, and the outputs of prior pre/postprocess steps
// in this phase, it returns this step's output or an error.
type ExpProcess func(exp ExperimentView, params stepio.Params, outputs stepio.Outputs) (stepio.StepOutput, error)

// RunProcess is the callable contract of a RunStep.
type RunProcess func(run RunView, params stepio.Params, outputs stepio.Outputs) (stepio.StepOutput, error)

// ExpStep is a single Experiment-scope processing step, run once before any
// Run has started (preprocess) or after all Runs have finished
// (postprocess).
type ExpStep struct {
	Name    string
	Process ExpProcess
	Params  stepio.Params
}

// RunStep is a single Run-scope processing step. RunInDocker selects which
// side of the host/container boundary JobRunner executes it on;
// DoNotParallelize is reserved for future fan-out support and unused by the
// current engine.
type RunStep struct {
	Name              string
	Process           RunProcess
	Params            stepio.Params
	DoNotParallelize  bool
	RunInDocker       bool
}

// Algorithm is the three ordered step sequences that define one experiment
// design: preprocess (experiment-scope), the core per-run steps, and
// postprocess (experiment-scope).
type Algorithm struct {
	Steps             []RunStep
	PreprocessSteps   []ExpStep
	PostprocessSteps  []ExpStep
}

func New(steps []RunStep, pre, post []ExpStep) *Algorithm {
	return &Algorithm{Steps: steps, PreprocessSteps: pre, PostprocessSteps: post}
}

// HasStep reports whether the core step sequence contains a step named name.
func (a *Algorithm) HasStep(name string) bool {
	_, ok := a.indexOf(name)
	return ok
}

// IndexOf returns the index of the step named name within the core step
// sequence, or len(a.Steps) if not found (matching the original's
// next(..., default=len(steps)) behavior, which validate_execute_from relies
// on to detect "not found" without a separate ok bool).
func (a *Algorithm) IndexOf(name string) int {
	if i, ok := a.indexOf(name); ok {
		return i
	}
	return len(a.Steps)
}

func (a *Algorithm) indexOf(name string) (int, bool) {
	for i, s := range a.Steps {
		if s.Name == name {
			return i, true
		}
	}
	return 0, false
}

// InsertBefore inserts step immediately before the step named name.
func (a *Algorithm) InsertBefore(name string, step RunStep) {
	a.insertAt(a.IndexOf(name), step)
}

// InsertAfter inserts step immediately after the step named name.
func (a *Algorithm) InsertAfter(name string, step RunStep) {
	a.insertAt(a.IndexOf(name)+1, step)
}

func (a *Algorithm) insertAt(idx int, step RunStep) {
	if idx >= len(a.Steps) {
		a.Steps = append(a.Steps, step)
		return
	}
	a.Steps = append(a.Steps[:idx+1], a.Steps[idx:]...)
	a.Steps[idx] = step
}

// HasUniqueStepNames reports whether every step in steps has a distinct
// name. It's checked against all three sequences before any execution.
func HasUniqueStepNames[T interface{ StepName() string }](steps []T) bool {
	seen := make(map[string]struct{}, len(steps))
	for _, s := range steps {
		if _, dup := seen[s.StepName()]; dup {
			return false
		}
		seen[s.StepName()] = struct{}{}
	}
	return true
}

func (s RunStep) StepName() string { return s.Name }
func (s ExpStep) StepName() string { return s.Name }

// Validate reports whether every step sequence has unique names within
// itself, matching is_valid_experiment.
func (a *Algorithm) Validate() error {
	if !HasUniqueStepNames(a.PreprocessSteps) {
		return fmt.Errorf("algorithm: preprocess steps do not have unique names")
	}
	if !HasUniqueStepNames(a.Steps) {
		return fmt.Errorf("algorithm: processing steps do not have unique names")
	}
	if !HasUniqueStepNames(a.PostprocessSteps) {
		return fmt.Errorf("algorithm: postprocessing steps do not have unique names")
	}
	return nil
}

// PhaseEnd returns the index of the last step in the maximal contiguous run
// of steps sharing the same RunInDocker polarity as Steps[startIdx]. This is
// the phase-segmentation primitive JobRunner uses to alternate between host
// and container execution: a job runs Steps[startIdx:PhaseEnd+1] on one side
// of the boundary, then hands off at PhaseEnd+1.
func (a *Algorithm) PhaseEnd(startIdx int) int {
	if startIdx >= len(a.Steps) {
		return startIdx
	}
	wantDocker := a.Steps[startIdx].RunInDocker
	end := startIdx
	for i := startIdx + 1; i < len(a.Steps); i++ {
		if a.Steps[i].RunInDocker != wantDocker {
			break
		}
		end = i
	}
	return end
}
