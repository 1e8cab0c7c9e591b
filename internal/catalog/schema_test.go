package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempYAML(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestValidateRunConfigFileAcceptsWellFormedDoc(t *testing.T) {
	path := writeTempYAML(t, `
name: debug
num_build_jobs: 4
compile_options:
  c:
    compiler_path: /usr/bin/clang
    compiler_flags: ["-O0", "-g"]
`)
	if err := ValidateRunConfigFile(path); err != nil {
		t.Fatalf("ValidateRunConfigFile: %v", err)
	}
}

func TestValidateRunConfigFileRejectsMissingRequiredField(t *testing.T) {
	path := writeTempYAML(t, `
num_build_jobs: 4
`)
	if err := ValidateRunConfigFile(path); err == nil {
		t.Fatalf("expected an error for a RunConfig doc missing 'name'")
	}
}

func TestValidateRunConfigFileRejectsWrongType(t *testing.T) {
	path := writeTempYAML(t, `
name: debug
num_build_jobs: "four"
`)
	if err := ValidateRunConfigFile(path); err == nil {
		t.Fatalf("expected an error for a non-integer num_build_jobs")
	}
}

func TestValidateProjectRecipeFileAcceptsWellFormedDoc(t *testing.T) {
	path := writeTempYAML(t, `
name: hello
build_system: cmake
git_remote: https://example.com/hello.git
source_languages: ["c", "c++"]
`)
	if err := ValidateProjectRecipeFile(path); err != nil {
		t.Fatalf("ValidateProjectRecipeFile: %v", err)
	}
}

func TestValidateProjectRecipeFileRejectsUnknownLanguage(t *testing.T) {
	path := writeTempYAML(t, `
name: hello
build_system: cmake
git_remote: https://example.com/hello.git
source_languages: ["rust"]
`)
	if err := ValidateProjectRecipeFile(path); err == nil {
		t.Fatalf("expected an error for an unrecognized source language")
	}
}

func TestValidateProjectRecipeFileRejectsMissingGitRemote(t *testing.T) {
	path := writeTempYAML(t, `
name: hello
build_system: cmake
source_languages: ["c"]
`)
	if err := ValidateProjectRecipeFile(path); err == nil {
		t.Fatalf("expected an error for a ProjectRecipe doc missing git_remote")
	}
}
