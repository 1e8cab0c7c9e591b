// Package run defines Run, the persisted record of one execution of a
// RunConfig x ProjectRecipe cell in the experiment matrix. Run owns the
// state that must survive a crash (current step, outputs, timings); the
// algorithm that advances that state lives in stepexec, not here, so that
// run has no dependency on algorithm and the two can both depend on stepio
// without an import cycle.
package run

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/lasserre/wildebeest/internal/recipe"
	"github.com/lasserre/wildebeest/internal/stepio"
	"github.com/lasserre/wildebeest/internal/store"
)

type Status string

const (
	StatusReady    Status = "Ready"
	StatusRunning  Status = "Running"
	StatusFailed   Status = "Failed"
	StatusFinished Status = "Finished"
)

// Run is one execution of a particular cell of the experiment matrix. It
// encapsulates the state of the run, not the algorithm that drives it — the
// algorithm.Algorithm (via stepexec.StepExecutor) is what knows how to
// advance a Run from one step to the next.
type Run struct {
	ExpRoot string `yaml:"exp_root" json:"exp_root"`
	Name    string `yaml:"name" json:"name"`
	Number  int    `yaml:"number" json:"number"`

	Build  *recipe.ProjectBuild `yaml:"build" json:"build"`
	Config *recipe.RunConfig    `yaml:"config" json:"config"`

	Status            Status          `yaml:"status" json:"status"`
	CurrentStep       string          `yaml:"current_step,omitempty" json:"current_step,omitempty"`
	LastCompletedStep string          `yaml:"last_completed_step,omitempty" json:"last_completed_step,omitempty"`
	FailedStep        string          `yaml:"failed_step,omitempty" json:"failed_step,omitempty"`
	ErrorMsg          string          `yaml:"error_msg,omitempty" json:"error_msg,omitempty"`
	Outputs           stepio.Outputs  `yaml:"outputs,omitempty" json:"outputs,omitempty"`

	StartTime      time.Time            `yaml:"starttime,omitempty" json:"starttime,omitempty"`
	Runtime        time.Duration        `yaml:"runtime,omitempty" json:"runtime,omitempty"`
	StepStartTimes map[string]time.Time `yaml:"step_starttimes,omitempty" json:"step_starttimes,omitempty"`
	StepRuntimes   map[string]time.Duration `yaml:"step_runtimes,omitempty" json:"step_runtimes,omitempty"`

	// WorkloadID and ContainerName are set by JobRunner, not by the run
	// itself; they are persisted here so status tooling can read them off
	// the runstate file without consulting the (transient) Job record.
	WorkloadID    string `yaml:"workload_id,omitempty" json:"workload_id,omitempty"`
	ContainerName string `yaml:"container_name,omitempty" json:"container_name,omitempty"`
}

// New constructs a fresh Run in Ready status.
func New(name string, number int, expRoot string, build *recipe.ProjectBuild, config *recipe.RunConfig) *Run {
	return &Run{
		ExpRoot: expRoot,
		Name:    name,
		Number:  number,
		Build:   build,
		Config:  config,
		Status:  StatusReady,
		Outputs: stepio.Outputs{},
	}
}

// AllOutputs implements algorithm.RunView.
func (r *Run) AllOutputs() stepio.Outputs { return r.Outputs }

// RunstateFile returns the path to this run's runstate file.
func (r *Run) RunstateFile() string {
	return filepath.Join(r.ExpRoot, ExpRelPaths.Runstates, fmt.Sprintf("run%d.run.yaml", r.Number))
}

// DataFolder returns the path to this run's rundata folder.
func (r *Run) DataFolder() string {
	return filepath.Join(r.ExpRoot, ExpRelPaths.Rundata, fmt.Sprintf("run%d", r.Number))
}

// Save persists this Run to its runstate file.
func (r *Run) Save() error {
	return store.Save(r, r.RunstateFile())
}

// Load reads a Run back from its runstate file and rebases it onto expRoot.
func Load(path, expRoot string) (*Run, error) {
	r, err := store.Load[Run](path)
	if err != nil {
		return nil, err
	}
	if err := (&r).Rebase(r.ExpRoot, expRoot); err != nil {
		return nil, err
	}
	return &r, nil
}

// Rebase fixes up any absolute paths stored in this Run (and its
// ProjectBuild) when the enclosing experiment folder has moved from oldRoot
// to newRoot, then persists the result. It implements store.Rebaser.
func (r *Run) Rebase(oldRoot, newRoot string) error {
	if oldRoot == newRoot {
		return nil
	}
	r.ExpRoot = newRoot
	if r.Build != nil {
		if err := r.Build.Rebase(oldRoot, newRoot); err != nil {
			return fmt.Errorf("rebase run %d build: %w", r.Number, err)
		}
	}
	return r.Save()
}

// InitRunningState resets the transient execution state this Run tracks and
// marks it Running. Called by StepExecutor before advancing from step 0.
func (r *Run) InitRunningState() {
	r.Outputs = stepio.Outputs{}
	r.CurrentStep = ""
	r.LastCompletedStep = ""
	r.FailedStep = ""
	r.ErrorMsg = ""
	r.StepStartTimes = map[string]time.Time{}
	r.StepRuntimes = map[string]time.Duration{}
	r.Status = StatusRunning
	r.StartTime = time.Now()
}

// MergedParams combines experiment-level params with this run's step's own
// params, with the step's own params winning on collision.
func MergedParams(expParams, stepParams stepio.Params) stepio.Params {
	return stepio.Merge(expParams, stepParams)
}

// UniqueName joins a recipe name and a config name as "<recipe>-<config>".
func UniqueName(recipeName, configName string) string {
	return strings.Join([]string{recipeName, configName}, "-")
}
