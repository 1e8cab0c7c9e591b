package experiment

import (
	"path/filepath"
	"testing"

	"github.com/lasserre/wildebeest/internal/recipe"
)

func TestFolderHelpersAreRootedUnderExpFolder(t *testing.T) {
	e := New("hello", nil, nil, nil, "/exp", nil)
	cases := map[string]string{
		e.SourceFolder():     filepath.Join("/exp", "source"),
		e.BuildFolder():      filepath.Join("/exp", "build"),
		e.RundataFolder():    filepath.Join("/exp", "rundata"),
		e.ExpdataFolder():    filepath.Join("/exp", "expdata"),
		e.RunstatesFolder():  filepath.Join("/exp", ".wildebeest", "runstates"),
	}
	for got, want := range cases {
		if got != want {
			t.Fatalf("got %q, want %q", got, want)
		}
	}
}

func TestProjectSourceFolderDisambiguatesByGitHead(t *testing.T) {
	e := New("hello", nil, nil, nil, "/exp", nil)
	plain := &recipe.ProjectRecipe{Name: "hello"}
	pinned := &recipe.ProjectRecipe{Name: "hello", GitHead: "abc123"}

	if got, want := e.ProjectSourceFolder(plain), filepath.Join("/exp", "source", "hello"); got != want {
		t.Fatalf("ProjectSourceFolder(plain) = %q, want %q", got, want)
	}
	if got, want := e.ProjectSourceFolder(pinned), filepath.Join("/exp", "source", "hello@abc123"); got != want {
		t.Fatalf("ProjectSourceFolder(pinned) = %q, want %q", got, want)
	}
}

func TestBuildFolderForRun(t *testing.T) {
	e := New("hello", nil, nil, nil, "/exp", nil)
	got := e.BuildFolderForRun("hello", 3)
	want := filepath.Join("/exp", "build", "hello", "run3")
	if got != want {
		t.Fatalf("BuildFolderForRun = %q, want %q", got, want)
	}
}

func TestNewDefaultsExpFolderUnderHome(t *testing.T) {
	e := New("hello", nil, nil, nil, "", nil)
	if e.ExpFolder == "" {
		t.Fatalf("expected a non-empty default ExpFolder")
	}
	if filepath.Base(e.ExpFolder) != "hello.exp" {
		t.Fatalf("ExpFolder = %q, want a hello.exp suffix", e.ExpFolder)
	}
}

func TestParamsImplementsExperimentView(t *testing.T) {
	e := New("hello", nil, nil, nil, "/exp", map[string]any{"k": "v"})
	if e.Params()["k"] != "v" {
		t.Fatalf("Params() = %v", e.Params())
	}
}
