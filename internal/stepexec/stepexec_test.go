package stepexec

import (
	"errors"
	"testing"

	"github.com/lasserre/wildebeest/internal/algorithm"
	"github.com/lasserre/wildebeest/internal/run"
	"github.com/lasserre/wildebeest/internal/stepio"
)

func newTestRun(t *testing.T) *run.Run {
	t.Helper()
	return run.New("hello-debug", 1, t.TempDir(), nil, nil)
}

func echoStep(name string) algorithm.RunStep {
	return algorithm.RunStep{
		Name: name,
		Process: func(r algorithm.RunView, params stepio.Params, outputs stepio.Outputs) (stepio.StepOutput, error) {
			return stepio.StepOutput{Text: name}, nil
		},
	}
}

func failingStep(name string, err error) algorithm.RunStep {
	return algorithm.RunStep{
		Name: name,
		Process: func(r algorithm.RunView, params stepio.Params, outputs stepio.Outputs) (stepio.StepOutput, error) {
			return stepio.StepOutput{}, err
		},
	}
}

func TestExecuteRunsEveryStepInOrder(t *testing.T) {
	var order []string
	algo := algorithm.New([]algorithm.RunStep{
		{Name: "configure", Process: func(r algorithm.RunView, p stepio.Params, o stepio.Outputs) (stepio.StepOutput, error) {
			order = append(order, "configure")
			return stepio.StepOutput{}, nil
		}},
		{Name: "build", Process: func(r algorithm.RunView, p stepio.Params, o stepio.Outputs) (stepio.StepOutput, error) {
			order = append(order, "build")
			return stepio.StepOutput{}, nil
		}},
	}, nil, nil)

	e := New(algo, nil)
	r := newTestRun(t)
	if err := e.Execute(r); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(order) != 2 || order[0] != "configure" || order[1] != "build" {
		t.Fatalf("order = %v", order)
	}
	if r.Status != run.StatusFinished {
		t.Fatalf("Status = %q, want %q", r.Status, run.StatusFinished)
	}
	if r.LastCompletedStep != "build" {
		t.Fatalf("LastCompletedStep = %q, want build", r.LastCompletedStep)
	}
}

func TestExecuteFromResumesAfterLastCompletedStep(t *testing.T) {
	algo := algorithm.New([]algorithm.RunStep{
		echoStep("configure"),
		echoStep("build"),
		echoStep("test"),
	}, nil, nil)
	e := New(algo, nil)
	r := newTestRun(t)

	if err := e.ExecuteFrom(r, "configure", "build"); err != nil {
		t.Fatalf("ExecuteFrom configure..build: %v", err)
	}
	if r.LastCompletedStep != "build" {
		t.Fatalf("LastCompletedStep = %q, want build", r.LastCompletedStep)
	}
	if r.Status != run.StatusRunning {
		t.Fatalf("Status = %q, want %q (not all steps ran yet)", r.Status, run.StatusRunning)
	}

	if err := e.ExecuteFrom(r, "test", ""); err != nil {
		t.Fatalf("ExecuteFrom test: %v", err)
	}
	if r.Status != run.StatusFinished {
		t.Fatalf("Status = %q, want %q", r.Status, run.StatusFinished)
	}
	if _, ok := r.Outputs["configure"]; !ok {
		t.Fatalf("expected prior step output to survive resumption: %v", r.Outputs)
	}
}

func TestValidateExecuteFromRejectsUnknownStep(t *testing.T) {
	algo := algorithm.New([]algorithm.RunStep{echoStep("configure")}, nil, nil)
	e := New(algo, nil)
	r := newTestRun(t)
	if err := e.ValidateExecuteFrom(r, "nope"); err == nil {
		t.Fatalf("expected an error for an unknown step")
	}
}

func TestValidateExecuteFromRejectsSkippingAheadOfLastCompleted(t *testing.T) {
	algo := algorithm.New([]algorithm.RunStep{
		echoStep("configure"), echoStep("build"), echoStep("test"),
	}, nil, nil)
	e := New(algo, nil)
	r := newTestRun(t)
	if err := e.ValidateExecuteFrom(r, "test"); err == nil {
		t.Fatalf("expected an error resuming at 'test' with no steps completed yet")
	}
}

func TestExecuteFromStopsAndWrapsStepError(t *testing.T) {
	boom := errors.New("boom")
	algo := algorithm.New([]algorithm.RunStep{
		echoStep("configure"),
		failingStep("build", boom),
		echoStep("test"),
	}, nil, nil)
	e := New(algo, nil)
	r := newTestRun(t)

	err := e.Execute(r)
	if err == nil {
		t.Fatalf("expected an error")
	}
	var stepErr *StepError
	if !errors.As(err, &stepErr) {
		t.Fatalf("expected a *StepError, got %T: %v", err, err)
	}
	if stepErr.StepName != "build" {
		t.Fatalf("StepName = %q, want build", stepErr.StepName)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected Unwrap to expose the underlying error")
	}
	if r.Status != run.StatusFailed {
		t.Fatalf("Status = %q, want %q", r.Status, run.StatusFailed)
	}
	if r.FailedStep != "build" {
		t.Fatalf("FailedStep = %q, want build", r.FailedStep)
	}
	if _, ok := r.Outputs["test"]; ok {
		t.Fatalf("expected the step after the failure to not have run")
	}
}

func TestExecuteFromRejectsToStepBeforeFromStep(t *testing.T) {
	algo := algorithm.New([]algorithm.RunStep{
		echoStep("configure"), echoStep("build"),
	}, nil, nil)
	e := New(algo, nil)
	r := newTestRun(t)
	if err := e.ExecuteFrom(r, "build", "configure"); err == nil {
		t.Fatalf("expected an error when toStep precedes fromStep")
	}
}
