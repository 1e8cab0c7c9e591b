package driver

import (
	"os"

	"github.com/lasserre/wildebeest/internal/recipe"
)

// withBuildFolder runs fn with the process's working directory set to
// build.BuildFolder, restoring the previous working directory afterward
// regardless of outcome. Mirrors the original's `with cd(build.build_folder)`
// context manager.
func withBuildFolder(build *recipe.ProjectBuild, fn func() error) error {
	prev, err := os.Getwd()
	if err != nil {
		return err
	}
	if err := os.Chdir(build.BuildFolder); err != nil {
		return err
	}
	defer os.Chdir(prev)
	return fn()
}
