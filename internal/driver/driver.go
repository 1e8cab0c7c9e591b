// Package driver defines the BuildSystemDriver contract: the
// configure/build/clean operations a ProjectRecipe's build_system key
// resolves to. A driver only implements the build-system-specific defaults;
// a recipe's BuildStepOptions (preprocess/override/postprocess) brackets
// whichever default the driver provides, per recipe.BuildStepOptions.Run.
package driver

import "github.com/lasserre/wildebeest/internal/recipe"

// BuildSystemDriver is implemented once per build system (cmake, make,
// autotools, ...) and registered under Name() in registry.Registry so
// ProjectRecipe.BuildSystem can look it up.
type BuildSystemDriver interface {
	Name() string

	// DoConfigure, DoBuild, DoClean perform the build-system-specific default
	// behavior for each step. They run with the current working directory
	// set to build.BuildFolder. DoBuild additionally receives the number of
	// parallel build jobs the driver should use (e.g. make -jN).
	DoConfigure(rc *recipe.RunConfig, build *recipe.ProjectBuild) error
	DoBuild(rc *recipe.RunConfig, build *recipe.ProjectBuild, numJobs int) error
	DoClean(rc *recipe.RunConfig, build *recipe.ProjectBuild) error
}

// Configure runs build.Recipe.ConfigureOptions wrapping d's default
// configure step, matching BuildSystemDriver._do_build_step. The CC/CXX/LD
// environment computed from rc plus the recipe's extra flags and this step's
// CmdlineOptions is exported for the duration of the step.
func Configure(d BuildSystemDriver, rc *recipe.RunConfig, build *recipe.ProjectBuild) error {
	return withBuildFolder(build, func() error {
		env := buildEnv(rc, build, build.Recipe.ConfigureOptions.CmdlineOptions)
		return withBuildEnv(env, func() error {
			return build.Recipe.ConfigureOptions.Run(rc, build, d.DoConfigure)
		})
	})
}

// Build runs build.Recipe.BuildOptions wrapping d's default build step,
// passing rc.NumBuildJobs through to the driver and exporting the same
// scoped CC/CXX/LD environment as Configure.
func Build(d BuildSystemDriver, rc *recipe.RunConfig, build *recipe.ProjectBuild) error {
	return withBuildFolder(build, func() error {
		env := buildEnv(rc, build, build.Recipe.BuildOptions.CmdlineOptions)
		return withBuildEnv(env, func() error {
			doBuild := func(rc *recipe.RunConfig, build *recipe.ProjectBuild) error {
				return d.DoBuild(rc, build, rc.NumBuildJobs)
			}
			return build.Recipe.BuildOptions.Run(rc, build, doBuild)
		})
	})
}

// Clean runs build.Recipe.CleanOptions wrapping d's default clean step.
func Clean(d BuildSystemDriver, rc *recipe.RunConfig, build *recipe.ProjectBuild) error {
	return withBuildFolder(build, func() error {
		env := buildEnv(rc, build, build.Recipe.CleanOptions.CmdlineOptions)
		return withBuildEnv(env, func() error {
			return build.Recipe.CleanOptions.Run(rc, build, d.DoClean)
		})
	})
}
