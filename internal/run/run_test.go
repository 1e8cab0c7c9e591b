package run

import (
	"path/filepath"
	"testing"

	"github.com/lasserre/wildebeest/internal/recipe"
	"github.com/lasserre/wildebeest/internal/stepio"
)

func TestNewProducesReadyRunWithEmptyOutputs(t *testing.T) {
	r := New("hello-debug", 3, "/exp", nil, nil)
	if r.Status != StatusReady {
		t.Fatalf("Status = %q, want %q", r.Status, StatusReady)
	}
	if r.Number != 3 {
		t.Fatalf("Number = %d, want 3", r.Number)
	}
	if r.Outputs == nil {
		t.Fatalf("expected a non-nil Outputs map")
	}
}

func TestAllOutputsReturnsUnderlyingMap(t *testing.T) {
	r := New("hello-debug", 1, "/exp", nil, nil)
	r.Outputs["k"] = stepio.StepOutput{}
	if _, ok := r.AllOutputs()["k"]; !ok {
		t.Fatalf("expected AllOutputs to reflect stored outputs")
	}
}

func TestRunstateFileAndDataFolderPaths(t *testing.T) {
	r := New("hello-debug", 7, "/exp", nil, nil)
	wantState := filepath.Join("/exp", ExpRelPaths.Runstates, "run7.run.yaml")
	if r.RunstateFile() != wantState {
		t.Fatalf("RunstateFile = %q, want %q", r.RunstateFile(), wantState)
	}
	wantData := filepath.Join("/exp", ExpRelPaths.Rundata, "run7")
	if r.DataFolder() != wantData {
		t.Fatalf("DataFolder = %q, want %q", r.DataFolder(), wantData)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	expRoot := t.TempDir()
	rc := recipe.NewRunConfig("debug")
	rec := &recipe.ProjectRecipe{Name: "hello"}
	build := recipe.NewProjectBuild(expRoot, rec)

	r := New("hello-debug", 1, expRoot, build, rc)
	if err := r.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(r.RunstateFile(), expRoot)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Name != "hello-debug" || loaded.Number != 1 {
		t.Fatalf("loaded run mismatch: %+v", loaded)
	}
	if loaded.ExpRoot != expRoot {
		t.Fatalf("ExpRoot = %q, want %q", loaded.ExpRoot, expRoot)
	}
}

func TestRebaseUpdatesExpRootAndBuild(t *testing.T) {
	rec := &recipe.ProjectRecipe{Name: "hello"}
	build := recipe.NewProjectBuild(t.TempDir(), rec)
	r := New("hello-debug", 1, build.ExpRoot, build, recipe.NewRunConfig("debug"))
	if err := r.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	newRoot := t.TempDir()
	oldRoot := r.ExpRoot
	if err := r.Rebase(oldRoot, newRoot); err != nil {
		t.Fatalf("Rebase: %v", err)
	}
	if r.ExpRoot != newRoot {
		t.Fatalf("ExpRoot = %q, want %q", r.ExpRoot, newRoot)
	}
	if r.Build.ExpRoot != newRoot {
		t.Fatalf("Build.ExpRoot = %q, want %q", r.Build.ExpRoot, newRoot)
	}
}

func TestRebaseNoopWhenRootsMatch(t *testing.T) {
	r := New("hello-debug", 1, "/exp", nil, nil)
	if err := r.Rebase("/exp", "/exp"); err != nil {
		t.Fatalf("Rebase: %v", err)
	}
}

func TestInitRunningStateResetsTransientFields(t *testing.T) {
	r := New("hello-debug", 1, "/exp", nil, nil)
	r.CurrentStep = "configure"
	r.FailedStep = "build"
	r.ErrorMsg = "boom"
	r.Outputs["k"] = stepio.StepOutput{}

	r.InitRunningState()

	if r.Status != StatusRunning {
		t.Fatalf("Status = %q, want %q", r.Status, StatusRunning)
	}
	if r.CurrentStep != "" || r.FailedStep != "" || r.ErrorMsg != "" {
		t.Fatalf("expected transient fields cleared: %+v", r)
	}
	if len(r.Outputs) != 0 {
		t.Fatalf("expected Outputs cleared, got %v", r.Outputs)
	}
	if r.StartTime.IsZero() {
		t.Fatalf("expected StartTime to be set")
	}
}

func TestMergedParamsOverridesOnCollision(t *testing.T) {
	exp := stepio.Params{"a": 1, "b": 2}
	step := stepio.Params{"b": 3}
	got := MergedParams(exp, step)
	if got["a"] != 1 || got["b"] != 3 {
		t.Fatalf("MergedParams = %v", got)
	}
}

func TestUniqueNameJoinsRecipeAndConfig(t *testing.T) {
	if got := UniqueName("hello", "debug"); got != "hello-debug" {
		t.Fatalf("UniqueName = %q, want %q", got, "hello-debug")
	}
}
