package recipe

import "testing"

func TestNewRunConfigDefaults(t *testing.T) {
	rc := NewRunConfig("")
	if rc.Name != "default" {
		t.Fatalf("Name = %q, want %q", rc.Name, "default")
	}
	if rc.NumBuildJobs != 1 {
		t.Fatalf("NumBuildJobs = %d, want 1", rc.NumBuildJobs)
	}
	if _, ok := rc.CompileOptions[LangC]; !ok {
		t.Fatalf("expected a C compile-options slot to be present")
	}
	if _, ok := rc.CompileOptions[LangCPP]; !ok {
		t.Fatalf("expected a C++ compile-options slot to be present")
	}
}

func TestEnvSetsCompilerAndFlags(t *testing.T) {
	rc := NewRunConfig("test")
	rc.CompileOptions[LangC] = CompilationSettings{
		CompilerPath:  "/usr/bin/clang",
		CompilerFlags: []string{"-O2"},
	}
	rc.LinkerFlags = []string{"-static"}

	env := rc.Env(nil, nil, nil)
	if env["CC"] != "/usr/bin/clang" {
		t.Fatalf("CC = %q, want /usr/bin/clang", env["CC"])
	}
	if env["CFLAGS"] != "-O2" {
		t.Fatalf("CFLAGS = %q, want -O2", env["CFLAGS"])
	}
	if env["LDFLAGS"] != "-static" {
		t.Fatalf("LDFLAGS = %q, want -static", env["LDFLAGS"])
	}
	if _, ok := env["CXX"]; ok {
		t.Fatalf("expected no CXX entry when unset, got %q", env["CXX"])
	}
}

func TestEnvAppendsRecipeFlagsAfterRunConfigFlags(t *testing.T) {
	rc := NewRunConfig("test")
	rc.CompileOptions[LangC] = CompilationSettings{CompilerFlags: []string{"-Wall"}}

	env := rc.Env([]string{"-DRECIPE"}, nil, nil)
	if env["CFLAGS"] != "-Wall -DRECIPE" {
		t.Fatalf("CFLAGS = %q, want %q", env["CFLAGS"], "-Wall -DRECIPE")
	}
}

func TestEnvAppendCompilerFlagsPrependsExistingEnv(t *testing.T) {
	t.Setenv("CFLAGS", "-existing")
	rc := NewRunConfig("test")
	rc.CompileOptions[LangC] = CompilationSettings{
		CompilerFlags:       []string{"-new"},
		AppendCompilerFlags: true,
	}

	env := rc.Env(nil, nil, nil)
	if env["CFLAGS"] != "-existing -new" {
		t.Fatalf("CFLAGS = %q, want %q", env["CFLAGS"], "-existing -new")
	}
}

func TestEnvWithoutAppendIgnoresExistingEnv(t *testing.T) {
	t.Setenv("CFLAGS", "-existing")
	rc := NewRunConfig("test")
	rc.CompileOptions[LangC] = CompilationSettings{CompilerFlags: []string{"-new"}}

	env := rc.Env(nil, nil, nil)
	if env["CFLAGS"] != "-new" {
		t.Fatalf("CFLAGS = %q, want %q", env["CFLAGS"], "-new")
	}
}

func TestEnvOmitsEmptyFlagSlots(t *testing.T) {
	rc := NewRunConfig("test")
	env := rc.Env(nil, nil, nil)
	if len(env) != 0 {
		t.Fatalf("expected an empty env map for an unconfigured RunConfig, got %v", env)
	}
}
