package main

import (
	"fmt"

	"github.com/lasserre/wildebeest/internal/algorithm"
	"github.com/lasserre/wildebeest/internal/catalog"
	"github.com/lasserre/wildebeest/internal/driver"
	"github.com/lasserre/wildebeest/internal/driver/noop"
	"github.com/lasserre/wildebeest/internal/experiment"
	"github.com/lasserre/wildebeest/internal/recipe"
	"github.com/lasserre/wildebeest/internal/run"
	"github.com/lasserre/wildebeest/internal/stepio"
)

// newCatalog wires up the reference driver, an example recipe/project list,
// and a minimal build algorithm, matching what a real deployment would
// instead register for its own build systems and projects (spec.md's
// Non-goals explicitly exclude concrete drivers/recipes beyond one
// reference/example). Grounded on
// original_source/wildebeest/experiments/docker_test.py's pattern of a
// small self-contained Experiment subclass used to exercise the engine.
func newCatalog() *catalog.Catalog {
	cat := catalog.New()

	cat.Drivers.Register("noop", noop.New())

	cat.Recipes.Register("hello", func() *recipe.ProjectRecipe {
		return &recipe.ProjectRecipe{
			Name:            "hello",
			BuildSystem:     "noop",
			GitRemote:       "https://github.com/lasserre/wildebeest.git",
			SourceLanguages: []recipe.Language{recipe.LangC},
		}
	})
	cat.ProjectLists.Register("hello_list", func() []string {
		return []string{"hello"}
	})

	experiment.RegisterFactory(cat, "demo", func(cat *catalog.Catalog) experiment.Design {
		recipes, err := cat.ProjectList("hello_list")
		if err != nil {
			panic(err) // setup-time wiring error, not a runtime fault
		}
		return experiment.Design{
			Algorithm:  demoAlgorithm(cat),
			RunConfigs: []*recipe.RunConfig{recipe.NewRunConfig("default")},
			Recipes:    recipes,
		}
	})

	return cat
}

// demoAlgorithm is a minimal configure/build sequence grounded on
// defaultbuildalgorithm.py's DefaultBuildAlgorithm. Unlike the original,
// which stashes a live driver object in Outputs during an "init" step, each
// step here resolves the driver fresh by the run's recipe.BuildSystem name:
// Outputs is YAML-serialized after every step (stepexec.ExecuteFrom calls
// r.Save()), and an interface value wouldn't survive that round trip.
func demoAlgorithm(cat *catalog.Catalog) *algorithm.Algorithm {
	asRun := func(rv algorithm.RunView) (*run.Run, error) {
		r, ok := rv.(*run.Run)
		if !ok {
			return nil, fmt.Errorf("expected a concrete *run.Run")
		}
		return r, nil
	}

	steps := []algorithm.RunStep{
		{
			Name: "init",
			Process: func(rv algorithm.RunView, params stepio.Params, outputs stepio.Outputs) (stepio.StepOutput, error) {
				r, err := asRun(rv)
				if err != nil {
					return stepio.StepOutput{}, err
				}
				if err := r.Build.Init(); err != nil {
					return stepio.StepOutput{}, err
				}
				if _, err := cat.Drivers.Get(r.Build.Recipe.BuildSystem); err != nil {
					return stepio.StepOutput{}, err
				}
				return stepio.StepOutput{Text: "initialized"}, nil
			},
		},
		{
			Name: "configure",
			Process: func(rv algorithm.RunView, params stepio.Params, outputs stepio.Outputs) (stepio.StepOutput, error) {
				r, err := asRun(rv)
				if err != nil {
					return stepio.StepOutput{}, err
				}
				d, err := cat.Drivers.Get(r.Build.Recipe.BuildSystem)
				if err != nil {
					return stepio.StepOutput{}, err
				}
				if err := driver.Configure(d, r.Config, r.Build); err != nil {
					return stepio.StepOutput{}, err
				}
				return stepio.StepOutput{Text: "configured"}, nil
			},
		},
		{
			Name: "build",
			Process: func(rv algorithm.RunView, params stepio.Params, outputs stepio.Outputs) (stepio.StepOutput, error) {
				r, err := asRun(rv)
				if err != nil {
					return stepio.StepOutput{}, err
				}
				d, err := cat.Drivers.Get(r.Build.Recipe.BuildSystem)
				if err != nil {
					return stepio.StepOutput{}, err
				}
				if err := driver.Build(d, r.Config, r.Build); err != nil {
					return stepio.StepOutput{}, err
				}
				return stepio.StepOutput{Text: "built"}, nil
			},
		},
	}

	return algorithm.New(steps, nil, nil)
}
