package driver

import (
	"os"
	"strings"

	"github.com/lasserre/wildebeest/internal/recipe"
)

// buildEnv computes the CC/CFLAGS/CXX/CXXFLAGS/LDFLAGS environment variables
// for one build step, combining rc with build.Recipe's extra flags (spec's
// "engine computes C/CXX/LD environment variables from RunConfig plus recipe
// extras and exports them for the driver"). cmdlineOptions (a build step's
// own BuildStepOptions.CmdlineOptions) are exported the same way, since the
// BuildSystemDriver contract has no separate parameter for them.
func buildEnv(rc *recipe.RunConfig, build *recipe.ProjectBuild, cmdlineOptions []string) map[string]string {
	env := rc.Env(build.Recipe.ExtraCFlags, build.Recipe.ExtraCXXFlags, build.Recipe.ExtraLinkerFlags)
	if len(cmdlineOptions) > 0 {
		env["WDB_CMDLINE_OPTIONS"] = strings.Join(cmdlineOptions, " ")
	}
	return env
}

// withBuildEnv sets env for the duration of fn, restoring whatever was
// there before (including unsetting anything that wasn't previously set)
// afterward, regardless of outcome. Mirrors withBuildFolder's
// save/chdir/defer-restore pattern for os.Chdir, scoped to the process
// environment instead of the working directory.
func withBuildEnv(env map[string]string, fn func() error) error {
	type saved struct {
		val string
		set bool
	}
	prev := make(map[string]saved, len(env))
	for k := range env {
		v, ok := os.LookupEnv(k)
		prev[k] = saved{val: v, set: ok}
	}
	defer func() {
		for k, s := range prev {
			if s.set {
				os.Setenv(k, s.val)
			} else {
				os.Unsetenv(k)
			}
		}
	}()

	for k, v := range env {
		if err := os.Setenv(k, v); err != nil {
			return err
		}
	}
	return fn()
}
