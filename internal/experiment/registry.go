package experiment

import (
	"fmt"

	"github.com/lasserre/wildebeest/internal/algorithm"
	"github.com/lasserre/wildebeest/internal/catalog"
	"github.com/lasserre/wildebeest/internal/recipe"
	"github.com/lasserre/wildebeest/internal/store"
)

// Design is what a registered experiment type contributes: the algorithm
// and the default run-config/recipe set a fresh instance starts with.
// Matching the original's convention where an Experiment subclass's name is
// both its registry key and the value stored in Experiment.Name on disk, a
// Factory is looked up by that same Name field so `create`/`run`/etc. can
// rehydrate an experiment's non-serialized fields from just its folder.
type Design struct {
	Algorithm  *algorithm.Algorithm
	RunConfigs []*recipe.RunConfig
	Recipes    []*recipe.ProjectRecipe
}

// Factory builds the Design for a registered experiment type. Registered
// under Catalog.Experiments (kept as registry.Registry[any] to avoid the
// catalog<->experiment import cycle described in catalog.go); callers
// type-assert back to Factory via LookupFactory.
type Factory func(cat *catalog.Catalog) Design

// RegisterFactory is a small convenience wrapper so engine setup code can
// write experiment.RegisterFactory(cat, "name", factory) instead of reaching
// into cat.Experiments directly.
func RegisterFactory(cat *catalog.Catalog, name string, f Factory) {
	cat.Experiments.Register(name, any(f))
}

// LookupFactory resolves name back to a Factory, type-asserting the
// otherwise-erased registry value.
func LookupFactory(cat *catalog.Catalog, name string) (Factory, error) {
	v, err := cat.Experiments.Get(name)
	if err != nil {
		return nil, err
	}
	f, ok := v.(Factory)
	if !ok {
		return nil, fmt.Errorf("experiment %q is registered but is not an experiment.Factory", name)
	}
	return f, nil
}

// PeekName reads just the name field out of expFolder's exp.yaml, without
// needing the Algorithm/RunConfigs/Recipes a full Load requires. The CLI
// uses this to discover which registered Factory to rehydrate an existing
// experiment folder with.
type nameStub struct {
	Name string `yaml:"name"`
}

func PeekName(expFolder string) (string, error) {
	stub, err := store.Load[nameStub](expYamlPath(expFolder))
	if err != nil {
		return "", err
	}
	return stub.Name, nil
}
