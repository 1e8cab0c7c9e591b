package main

import (
	"fmt"
	"os"

	"github.com/lasserre/wildebeest/internal/catalog"
	"github.com/lasserre/wildebeest/internal/experiment"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cat := newCatalog()

	switch os.Args[1] {
	case "create":
		cmdCreate(cat, os.Args[2:])
	case "run":
		cmdRun(cat, os.Args[2:])
	case "ls":
		cmdLs(cat, os.Args[2:])
	case "info":
		cmdInfo(cat, os.Args[2:])
	case "status":
		cmdStatus(cat, os.Args[2:])
	case "runtimes":
		cmdRuntimes(cat, os.Args[2:])
	case "dashboard":
		cmdDashboard(cat, os.Args[2:])
	case "kill":
		cmdKill(cat, os.Args[2:])
	case "log":
		cmdLog(cat, os.Args[2:])
	case "rm":
		cmdRm(cat, os.Args[2:])
	case "docker_shell":
		cmdDockerShell(cat, os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage:")
	fmt.Fprintln(os.Stderr, "  wdb create <exp-name> [folder] [-l list] [-r recipe] [-p k=v ...]")
	fmt.Fprintln(os.Stderr, "  wdb run [runs] [-j N] [-b buildjobs] [-f] [--job K] [--from step] [--to step] [--no-pre] [--no-post] [--debug]")
	fmt.Fprintln(os.Stderr, "  wdb ls {lists,recipes,exps,alg} [-l list] [-a]")
	fmt.Fprintln(os.Stderr, "  wdb info")
	fmt.Fprintln(os.Stderr, "  wdb status")
	fmt.Fprintln(os.Stderr, "  wdb runtimes")
	fmt.Fprintln(os.Stderr, "  wdb dashboard <parent-folder>")
	fmt.Fprintln(os.Stderr, "  wdb kill [--job K] [-f]")
	fmt.Fprintln(os.Stderr, "  wdb log <run-number>")
	fmt.Fprintln(os.Stderr, "  wdb rm build [-f]")
	fmt.Fprintln(os.Stderr, "  wdb docker_shell <run-number>")
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

// loadExp rehydrates the experiment rooted at expFolder (defaulting to the
// current directory), looking up its registered Factory by the name stored
// in exp.yaml. Every CLI command but `create` operates on an existing
// experiment folder this way.
func loadExp(cat *catalog.Catalog, expFolder string) *experiment.Experiment {
	if expFolder == "" {
		wd, err := os.Getwd()
		if err != nil {
			fail("%v", err)
		}
		expFolder = wd
	}
	if !experiment.IsExpFolder(expFolder) {
		fail("%s is not a wildebeest experiment folder", expFolder)
	}
	name, err := experiment.PeekName(expFolder)
	if err != nil {
		fail("%v", err)
	}
	factory, err := experiment.LookupFactory(cat, name)
	if err != nil {
		fail("%v", err)
	}
	design := factory(cat)
	e, err := experiment.Load(expFolder, design.Algorithm, design.RunConfigs, design.Recipes)
	if err != nil {
		fail("%v", err)
	}
	return e
}
