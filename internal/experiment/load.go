package experiment

import (
	"fmt"

	"github.com/lasserre/wildebeest/internal/algorithm"
	"github.com/lasserre/wildebeest/internal/recipe"
	"github.com/lasserre/wildebeest/internal/store"
)

// Load reads an Experiment back from expFolder/.wildebeest/exp.yaml and
// reattaches the non-serialized algorithm/runconfigs/recipes the caller
// already has in hand (they come from a registered factory, not YAML).
// If the experiment's stored folder differs from expFolder (the folder was
// copied or moved), every Run is rebased too.
func Load(expFolder string, algo *algorithm.Algorithm, runConfigs []*recipe.RunConfig, recipes []*recipe.ProjectRecipe) (*Experiment, error) {
	e, err := store.Load[Experiment](expYamlPath(expFolder))
	if err != nil {
		return nil, fmt.Errorf("load experiment %s: %w", expFolder, err)
	}
	e.Algorithm = algo
	e.RunConfigs = runConfigs
	e.Recipes = recipes

	origFolder := e.ExpFolder
	if origFolder != expFolder {
		if err := e.rebase(origFolder, expFolder); err != nil {
			return nil, err
		}
	}
	return &e, nil
}

func expYamlPath(expFolder string) string {
	e := &Experiment{ExpFolder: expFolder}
	return e.expYamlFile()
}

// rebase updates ExpFolder and rewrites every Run's stored paths, matching
// Experiment._rebase. Post-processing outputs are left untouched but a
// caller should treat them as stale since they may reference the old paths.
func (e *Experiment) rebase(origFolder, newFolder string) error {
	e.ExpFolder = newFolder
	if _, err := e.LoadRuns(); err != nil { // LoadRuns rebases each Run via run.Load
		return err
	}
	return e.Save()
}
