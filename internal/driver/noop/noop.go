// Package noop provides a BuildSystemDriver that performs no real build
// actions, useful for algorithm/engine tests and as a minimal reference for
// implementing a new build-system driver.
package noop

import "github.com/lasserre/wildebeest/internal/recipe"

type Driver struct{}

func New() *Driver { return &Driver{} }

func (d *Driver) Name() string { return "noop" }

func (d *Driver) DoConfigure(rc *recipe.RunConfig, build *recipe.ProjectBuild) error { return nil }
func (d *Driver) DoBuild(rc *recipe.RunConfig, build *recipe.ProjectBuild, numJobs int) error {
	return nil
}
func (d *Driver) DoClean(rc *recipe.RunConfig, build *recipe.ProjectBuild) error { return nil }
