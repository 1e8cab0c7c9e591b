package noop

import "testing"

func TestNoopDriverDoesNothingAndNeverErrors(t *testing.T) {
	d := New()
	if d.Name() != "noop" {
		t.Fatalf("Name = %q, want noop", d.Name())
	}
	if err := d.DoConfigure(nil, nil); err != nil {
		t.Fatalf("DoConfigure: %v", err)
	}
	if err := d.DoBuild(nil, nil, 1); err != nil {
		t.Fatalf("DoBuild: %v", err)
	}
	if err := d.DoClean(nil, nil); err != nil {
		t.Fatalf("DoClean: %v", err)
	}
}
