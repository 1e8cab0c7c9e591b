// Package experiment is the lifecycle controller described in spec section
// 4.5: it owns the experiment folder, materializes the Run matrix from a
// project list x run-config cross product, and drives pre-processing,
// parallel run execution (via jobrunner.JobRunner), and post-processing.
// Grounded on original_source/wildebeest/experiment.py.
package experiment

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/lasserre/wildebeest/internal/algorithm"
	"github.com/lasserre/wildebeest/internal/recipe"
	"github.com/lasserre/wildebeest/internal/run"
	"github.com/lasserre/wildebeest/internal/stepio"
	"github.com/lasserre/wildebeest/internal/store"
)

type State string

const (
	StateReady       State = "Ready"
	StatePreprocess  State = "Preprocess"
	StateRunning     State = "Running"
	StatePostProcess State = "PostProcess"
	StateFinished    State = "Finished"
	StateFailed      State = "Failed"
)

// Experiment is the root entity: an algorithm applied across a project list
// and a set of run configs, anchored at ExpFolder.
type Experiment struct {
	Name       string              `yaml:"name" json:"name"`
	Algorithm  *algorithm.Algorithm `yaml:"-" json:"-"`
	RunConfigs []*recipe.RunConfig `yaml:"-" json:"-"`
	Recipes    []*recipe.ProjectRecipe `yaml:"-" json:"-"`
	ExpFolder  string              `yaml:"exp_folder" json:"exp_folder"`
	ExpParams  stepio.Params       `yaml:"params,omitempty" json:"params,omitempty"`

	State             State         `yaml:"state" json:"state"`
	FailedStep        string        `yaml:"failed_step,omitempty" json:"failed_step,omitempty"`
	PreprocessOutputs stepio.Outputs `yaml:"preprocess_outputs,omitempty" json:"preprocess_outputs,omitempty"`
	PostprocessOutputs stepio.Outputs `yaml:"postprocess_outputs,omitempty" json:"postprocess_outputs,omitempty"`
	WorkloadFolder    string        `yaml:"workload_folder,omitempty" json:"workload_folder,omitempty"`
}

// New constructs a fresh Experiment. algo/runConfigs/recipes are not
// serialized (they come from registered factories, not YAML) so they must
// be re-supplied by the caller when loading an existing experiment back
// from disk — see Load.
func New(name string, algo *algorithm.Algorithm, runConfigs []*recipe.RunConfig, recipes []*recipe.ProjectRecipe, expFolder string, params stepio.Params) *Experiment {
	if expFolder == "" {
		expFolder = defaultExpFolder(name)
	}
	return &Experiment{
		Name:       name,
		Algorithm:  algo,
		RunConfigs: runConfigs,
		Recipes:    recipes,
		ExpFolder:  expFolder,
		ExpParams:  params,
		State:      StateReady,
	}
}

func defaultExpFolder(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".wildebeest", "experiments", name+".exp")
}

// Params implements algorithm.ExperimentView.
func (e *Experiment) Params() stepio.Params { return e.ExpParams }

// IsExpFolder reports whether expFolder names a valid experiment folder.
func IsExpFolder(expFolder string) bool {
	return store.Exists(filepath.Join(expFolder, run.ExpRelPaths.ExpYaml))
}

func (e *Experiment) expYamlFile() string {
	return filepath.Join(e.ExpFolder, run.ExpRelPaths.ExpYaml)
}

// Save persists the Experiment's own yaml file. It only saves the fields
// that survive serialization (Algorithm/RunConfigs/Recipes are re-attached
// by the caller on Load).
func (e *Experiment) Save() error {
	return store.Save(e, e.expYamlFile())
}

func (e *Experiment) SourceFolder() string  { return filepath.Join(e.ExpFolder, run.ExpRelPaths.Source) }
func (e *Experiment) BuildFolder() string   { return filepath.Join(e.ExpFolder, run.ExpRelPaths.Build) }
func (e *Experiment) RundataFolder() string { return filepath.Join(e.ExpFolder, run.ExpRelPaths.Rundata) }
func (e *Experiment) ExpdataFolder() string { return filepath.Join(e.ExpFolder, run.ExpRelPaths.Expdata) }
func (e *Experiment) RunstatesFolder() string {
	return filepath.Join(e.ExpFolder, run.ExpRelPaths.Runstates)
}

// ProjectSourceFolder is where a recipe's cloned source lives under this
// experiment, disambiguated by git_head when set so that two runs of the
// same recipe pinned to different revisions don't collide.
func (e *Experiment) ProjectSourceFolder(r *recipe.ProjectRecipe) string {
	name := r.Name
	if r.GitHead != "" {
		name = r.Name + "@" + r.GitHead
	}
	return filepath.Join(e.SourceFolder(), name)
}

// BuildFolderForRun is where run number n of recipe projectName builds.
func (e *Experiment) BuildFolderForRun(projectName string, n int) string {
	return filepath.Join(e.BuildFolder(), projectName, "run"+strconv.Itoa(n))
}
