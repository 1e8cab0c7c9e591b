package main

import (
	"fmt"
	"os"

	"github.com/lasserre/wildebeest/internal/catalog"
	"github.com/lasserre/wildebeest/internal/dockerutil"
	"github.com/lasserre/wildebeest/internal/jobrunner"
	"github.com/lasserre/wildebeest/internal/run"
)

// referenceShellImage is the base image docker_shell starts when a Run has
// no container yet. Concrete per-recipe images are out of scope (spec.md's
// Non-goals exclude concrete build-system drivers/recipes beyond the
// reference one); a real deployment would derive this from the recipe.
const referenceShellImage = "ubuntu:22.04"

func cmdDockerShell(cat *catalog.Catalog, args []string) {
	if len(args) < 1 {
		usage()
		os.Exit(1)
	}
	runNumber := mustAtoi(args, 0)

	e := loadExp(cat, "")
	runs, err := e.LoadRuns()
	if err != nil {
		fail("%v", err)
	}
	var r *run.Run
	for _, candidate := range runs {
		if candidate.Number == runNumber {
			r = candidate
			break
		}
	}
	if r == nil {
		fail("no run numbered %d", runNumber)
	}

	if r.ContainerName == "" {
		if e.WorkloadFolder == "" || r.WorkloadID == "" {
			fail("run %d has never been assigned a container; run the experiment first", runNumber)
		}
		r.ContainerName = jobrunner.ContainerName(r.WorkloadID, r.Number, r.Build.Recipe.Name, r.Config.Name)
		if err := r.Save(); err != nil {
			fail("%v", err)
		}
	}

	if !dockerutil.Exists(r.ContainerName) {
		if err := dockerutil.RunDetached(r.ContainerName, referenceShellImage); err != nil {
			fail("%v", err)
		}
	}

	cmd := dockerutil.Exec(r.ContainerName, "/bin/sh")
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "shell exited: %v\n", err)
	}

	if err := dockerutil.RemoveForce(r.ContainerName); err != nil {
		fmt.Fprintf(os.Stderr, "cleanup: %v\n", err)
	}
}
