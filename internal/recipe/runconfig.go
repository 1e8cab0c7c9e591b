package recipe

import (
	"os"
	"strings"
)

// CompilationSettings customizes compilation for one source language. Any
// option left at its zero value is left unconstrained when invoking the
// build driver (an empty CompilerPath means "use whatever the build system
// finds by default").
type CompilationSettings struct {
	CompilerPath        string   `yaml:"compiler_path,omitempty" json:"compiler_path,omitempty"`
	CompilerFlags       []string `yaml:"compiler_flags,omitempty" json:"compiler_flags,omitempty"`
	AppendCompilerFlags bool     `yaml:"append_compiler_flags,omitempty" json:"append_compiler_flags,omitempty"`
}

func (c CompilationSettings) envVars(env map[string]string, recipeFlags []string, lang Language) {
	compilerVar, flagsVar := "CC", "CFLAGS"
	if lang == LangCPP {
		compilerVar, flagsVar = "CXX", "CXXFLAGS"
	}

	if c.CompilerPath != "" {
		env[compilerVar] = c.CompilerPath
	}
	if len(c.CompilerFlags) > 0 || len(recipeFlags) > 0 {
		var existing []string
		if c.AppendCompilerFlags {
			if v := os.Getenv(flagsVar); v != "" {
				existing = strings.Fields(v)
			}
		}
		all := append(append(existing, c.CompilerFlags...), recipeFlags...)
		env[flagsVar] = strings.Join(all, " ")
	}
}

// RunConfig describes the per-run compiler/build parameters applied to one
// cell of the experiment matrix. It is immutable after matrix generation for
// that run, except that the engine may copy-modify NumBuildJobs on an
// explicit --buildjobs override.
type RunConfig struct {
	Name              string                          `yaml:"name" json:"name"`
	CompileOptions    map[Language]CompilationSettings `yaml:"compile_options" json:"compile_options"`
	LinkerFlags       []string                        `yaml:"linker_flags,omitempty" json:"linker_flags,omitempty"`
	AppendLinkerFlags bool                            `yaml:"append_linker_flags,omitempty" json:"append_linker_flags,omitempty"`
	NumBuildJobs      int                             `yaml:"num_build_jobs" json:"num_build_jobs"`
	Architecture      string                          `yaml:"architecture,omitempty" json:"architecture,omitempty"`
}

// NewRunConfig returns a RunConfig with the C and C++ compile-option slots
// populated (always present, even if empty) and a sane default build
// parallelism of 1.
func NewRunConfig(name string) *RunConfig {
	if name == "" {
		name = "default"
	}
	return &RunConfig{
		Name: name,
		CompileOptions: map[Language]CompilationSettings{
			LangC:   {},
			LangCPP: {},
		},
		NumBuildJobs: 1,
	}
}

// COptions returns the C compile options, or zero settings if absent (the
// map is not modified).
func (rc *RunConfig) COptions() CompilationSettings { return rc.CompileOptions[LangC] }

// CPPOptions returns the C++ compile options, or zero settings if absent
// (the map is not modified).
func (rc *RunConfig) CPPOptions() CompilationSettings { return rc.CompileOptions[LangCPP] }

// Env computes the CC/CFLAGS, CXX/CXXFLAGS and LDFLAGS environment variables
// this RunConfig contributes, combined with per-recipe extra flags. Recipe
// flags are always appended after the RunConfig's own flags.
func (rc *RunConfig) Env(recipeCFlags, recipeCXXFlags, recipeLDFlags []string) map[string]string {
	env := map[string]string{}
	rc.COptions().envVars(env, recipeCFlags, LangC)
	rc.CPPOptions().envVars(env, recipeCXXFlags, LangCPP)

	if len(rc.LinkerFlags) > 0 || len(recipeLDFlags) > 0 {
		var existing []string
		if rc.AppendLinkerFlags {
			if v := os.Getenv("LDFLAGS"); v != "" {
				existing = strings.Fields(v)
			}
		}
		all := append(append(existing, rc.LinkerFlags...), recipeLDFlags...)
		env["LDFLAGS"] = strings.Join(all, " ")
	}
	return env
}
