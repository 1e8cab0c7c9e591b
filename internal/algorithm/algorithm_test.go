package algorithm

import "testing"

func step(name string, docker bool) RunStep {
	return RunStep{Name: name, RunInDocker: docker}
}

func TestHasStepAndIndexOf(t *testing.T) {
	a := New([]RunStep{step("init", false), step("configure", false), step("build", true)}, nil, nil)

	if !a.HasStep("configure") {
		t.Fatalf("expected HasStep(configure) to be true")
	}
	if a.HasStep("missing") {
		t.Fatalf("expected HasStep(missing) to be false")
	}
	if idx := a.IndexOf("build"); idx != 2 {
		t.Fatalf("IndexOf(build) = %d, want 2", idx)
	}
	if idx := a.IndexOf("missing"); idx != len(a.Steps) {
		t.Fatalf("IndexOf(missing) = %d, want %d", idx, len(a.Steps))
	}
}

func TestInsertBeforeAndAfter(t *testing.T) {
	a := New([]RunStep{step("init", false), step("build", false)}, nil, nil)

	a.InsertAfter("init", step("configure", false))
	names := stepNames(a.Steps)
	if got, want := names, []string{"init", "configure", "build"}; !equal(got, want) {
		t.Fatalf("after InsertAfter: got %v, want %v", got, want)
	}

	a.InsertBefore("build", step("link", false))
	names = stepNames(a.Steps)
	if got, want := names, []string{"init", "configure", "link", "build"}; !equal(got, want) {
		t.Fatalf("after InsertBefore: got %v, want %v", got, want)
	}
}

func TestInsertAfterLastStepAppends(t *testing.T) {
	a := New([]RunStep{step("init", false)}, nil, nil)
	a.InsertAfter("init", step("build", false))
	if got, want := stepNames(a.Steps), []string{"init", "build"}; !equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestValidateRejectsDuplicateStepNames(t *testing.T) {
	a := New([]RunStep{step("init", false), step("init", false)}, nil, nil)
	if err := a.Validate(); err == nil {
		t.Fatalf("expected Validate to reject duplicate step names")
	}
}

func TestValidateAcceptsUniqueNamesAcrossAllThreeSequences(t *testing.T) {
	a := New(
		[]RunStep{step("build", false)},
		[]ExpStep{{Name: "pre"}},
		[]ExpStep{{Name: "post"}},
	)
	if err := a.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestPhaseEndGroupsContiguousSameSideSteps(t *testing.T) {
	a := New([]RunStep{
		step("init", false),
		step("configure", false),
		step("build", true),
		step("test", true),
		step("collect", false),
	}, nil, nil)

	if end := a.PhaseEnd(0); end != 1 {
		t.Fatalf("PhaseEnd(0) = %d, want 1 (host phase ends at configure)", end)
	}
	if end := a.PhaseEnd(2); end != 3 {
		t.Fatalf("PhaseEnd(2) = %d, want 3 (docker phase ends at test)", end)
	}
	if end := a.PhaseEnd(4); end != 4 {
		t.Fatalf("PhaseEnd(4) = %d, want 4 (final host step is its own phase)", end)
	}
}

func TestPhaseEndAtOrPastEndReturnsStartIdx(t *testing.T) {
	a := New([]RunStep{step("init", false)}, nil, nil)
	if end := a.PhaseEnd(5); end != 5 {
		t.Fatalf("PhaseEnd(5) = %d, want 5", end)
	}
}

func stepNames(steps []RunStep) []string {
	names := make([]string, len(steps))
	for i, s := range steps {
		names[i] = s.Name
	}
	return names
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
