// Package catalog composes wildebeest's four explicit plugin registries
// (recipes, project lists, experiments, build-system drivers) on top of the
// generic registry.Registry. Composing them here, rather than inside
// registry itself, keeps registry free of any domain import so neither it
// nor experiment (which depends on catalog for driver lookups) can form an
// import cycle.
//
// This replaces the original's importlib.metadata entry-point discovery
// (reciperepository.py/experimentrepository.py/projectlistrepository.py):
// an engine's setup code calls Catalog.Recipes.Register(...) etc. explicitly
// at startup instead of recipes self-registering via a packaging entry
// point, per spec.md section 9's guidance that plugin discovery via
// reflection/entry-points should become explicit registration in a
// statically typed rewrite.
package catalog

import (
	"fmt"

	"github.com/lasserre/wildebeest/internal/driver"
	"github.com/lasserre/wildebeest/internal/recipe"
	"github.com/lasserre/wildebeest/internal/registry"
)

// RecipeFactory constructs a fresh ProjectRecipe instance. Recipes are
// registered as factories (not shared values) since BuildStepOptions may
// carry closures a caller expects to rebind per use.
type RecipeFactory func() *recipe.ProjectRecipe

// ProjectListFunc returns the recipe names belonging to a named project
// list, matching ProjectList.create_list.
type ProjectListFunc func() []string

// Catalog is the set of registries an engine composes at startup. The
// Experiments registry is intentionally left untyped here (registry.Registry[any])
// and type-asserted by callers, because ExperimentFactory's natural type
// depends on the experiment package, which itself depends on Catalog for
// driver lookups; typing it concretely here would create an import cycle.
type Catalog struct {
	Recipes      *registry.Registry[RecipeFactory]
	ProjectLists *registry.Registry[ProjectListFunc]
	Drivers      *registry.Registry[driver.BuildSystemDriver]
	Experiments  *registry.Registry[any]
}

func New() *Catalog {
	return &Catalog{
		Recipes:      registry.New[RecipeFactory]("recipe"),
		ProjectLists: registry.New[ProjectListFunc]("project list"),
		Drivers:      registry.New[driver.BuildSystemDriver]("build system driver"),
		Experiments:  registry.New[any]("experiment"),
	}
}

// Recipe constructs a fresh instance of the recipe registered under name.
func (c *Catalog) Recipe(name string) (*recipe.ProjectRecipe, error) {
	f, err := c.Recipes.Get(name)
	if err != nil {
		return nil, err
	}
	return f(), nil
}

// ProjectList resolves a project list's recipe names into ProjectRecipe
// instances via the Recipes registry.
func (c *Catalog) ProjectList(name string) ([]*recipe.ProjectRecipe, error) {
	f, err := c.ProjectLists.Get(name)
	if err != nil {
		return nil, err
	}
	names := f()
	recipes := make([]*recipe.ProjectRecipe, 0, len(names))
	for _, n := range names {
		r, err := c.Recipe(n)
		if err != nil {
			return nil, fmt.Errorf("project list %q: %w", name, err)
		}
		recipes = append(recipes, r)
	}
	return recipes, nil
}
