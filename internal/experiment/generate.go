package experiment

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/lasserre/wildebeest/internal/recipe"
	"github.com/lasserre/wildebeest/internal/run"
)

// generateRunlist materializes the recipes x runconfigs cross product in
// row-major order (recipes outer), matching _generate_runlist.
func (e *Experiment) generateRunlist() ([]*run.Run, error) {
	if len(e.Recipes) == 0 {
		return nil, fmt.Errorf("can't generate runs with an empty project list")
	}
	if len(e.RunConfigs) == 0 {
		return nil, fmt.Errorf("can't generate runs with no run configs")
	}

	var runs []*run.Run
	number := 1
	for _, r := range e.Recipes {
		for _, rc := range e.RunConfigs {
			runName := r.Name
			if len(e.RunConfigs) > 1 {
				runName = fmt.Sprintf("%s - %s", r.Name, rc.Name)
			}
			buildFolder := e.BuildFolderForRun(r.Name, number)
			sourceFolder := e.ProjectSourceFolder(r)
			build := &recipe.ProjectBuild{
				ExpRoot:     e.ExpFolder,
				ProjectRoot: sourceFolder,
				BuildFolder: buildFolder,
				Recipe:      r,
			}
			runs = append(runs, run.New(runName, number, e.ExpFolder, build, rc))
			number++
		}
	}
	return runs, nil
}

// GenerateRuns materializes the runlist, resets first-time experiment
// state, persists every Run's runstate file, and returns the list. It
// refuses to clobber existing runstates in which a step has completed
// unless force is set.
func (e *Experiment) GenerateRuns(force bool) ([]*run.Run, error) {
	existing, err := e.LoadRuns()
	if err != nil {
		return nil, err
	}
	if !force {
		for _, r := range existing {
			if r.LastCompletedStep != "" {
				return nil, fmt.Errorf("generate_runs called with existing runs that have completed steps")
			}
		}
	}

	e.PreprocessOutputs = nil
	e.PostprocessOutputs = nil
	e.WorkloadFolder = ""
	if err := e.Save(); err != nil {
		return nil, err
	}

	runs, err := e.generateRunlist()
	if err != nil {
		return nil, err
	}
	for _, r := range runs {
		if err := r.Save(); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

// LoadRuns loads every serialized Run from the runstates folder, rebasing
// each onto e.ExpFolder.
func (e *Experiment) LoadRuns() ([]*run.Run, error) {
	entries, err := os.ReadDir(e.RunstatesFolder())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".yaml" {
			files = append(files, filepath.Join(e.RunstatesFolder(), entry.Name()))
		}
	}
	sort.Strings(files)

	runs := make([]*run.Run, 0, len(files))
	for _, f := range files {
		r, err := run.Load(f, e.ExpFolder)
		if err != nil {
			return nil, fmt.Errorf("load run %s: %w", f, err)
		}
		runs = append(runs, r)
	}
	return runs, nil
}

// WorkloadID is a unique id that is deterministic for a given experiment
// folder: rerunning the same experiment in place reuses the same workload
// folder, but a copy of the experiment elsewhere gets its own.
func (e *Experiment) WorkloadID() string {
	sum := sha1.Sum([]byte(e.ExpFolder))
	return hex.EncodeToString(sum[:])[:8]
}
