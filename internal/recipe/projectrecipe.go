package recipe

// ProjectRecipe is a reusable, declarative description of how to obtain and
// build one project. Recipes are meant to be shared across experiments, so
// they should only constrain what is required for the project to build
// successfully (not experiment-specific choices like optimization level,
// which belong in RunConfig).
type ProjectRecipe struct {
	Name               string            `yaml:"name" json:"name"`
	BuildSystem        string            `yaml:"build_system" json:"build_system"`
	GitRemote          string            `yaml:"git_remote" json:"git_remote"`
	GitHead            string            `yaml:"git_head,omitempty" json:"git_head,omitempty"`
	SupportsOutOfTree  bool              `yaml:"supports_out_of_tree" json:"supports_out_of_tree"`
	SourceLanguages    []Language        `yaml:"source_languages" json:"source_languages"`
	AptDeps            []string          `yaml:"apt_deps,omitempty" json:"apt_deps,omitempty"`
	NoCCWrapper        bool              `yaml:"no_cc_wrapper,omitempty" json:"no_cc_wrapper,omitempty"`
	ExtraCFlags        []string          `yaml:"extra_cflags,omitempty" json:"extra_cflags,omitempty"`
	ExtraCXXFlags      []string          `yaml:"extra_cxxflags,omitempty" json:"extra_cxxflags,omitempty"`
	ExtraLinkerFlags   []string          `yaml:"extra_linker_flags,omitempty" json:"extra_linker_flags,omitempty"`

	ConfigureOptions BuildStepOptions `yaml:"-" json:"-"`
	BuildOptions     BuildStepOptions `yaml:"-" json:"-"`
	CleanOptions     BuildStepOptions `yaml:"-" json:"-"`
}

// PrimaryLanguage is the first entry of SourceLanguages, which recipes are
// expected to list as the project's dominant language.
func (r *ProjectRecipe) PrimaryLanguage() Language {
	if len(r.SourceLanguages) == 0 {
		return ""
	}
	return r.SourceLanguages[0]
}
