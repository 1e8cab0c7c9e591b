package main

import (
	"fmt"

	"github.com/lasserre/wildebeest/internal/catalog"
)

func cmdInfo(cat *catalog.Catalog, args []string) {
	e := loadExp(cat, "")
	runs, err := e.LoadRuns()
	if err != nil {
		fail("%v", err)
	}

	fmt.Printf("Experiment: %s\n", e.Name)
	fmt.Printf("Folder:     %s\n", e.ExpFolder)
	fmt.Printf("State:      %s\n", e.State)
	fmt.Printf("Algorithm steps:\n")
	for i, s := range e.Algorithm.Steps {
		side := "host"
		if s.RunInDocker {
			side = "docker"
		}
		fmt.Printf("  %2d  %-20s  %s\n", i, s.Name, side)
	}
	fmt.Printf("Run configs:\n")
	for _, rc := range e.RunConfigs {
		fmt.Printf("  %s\n", rc.Name)
	}
	fmt.Printf("Project list:\n")
	for _, r := range e.Recipes {
		fmt.Printf("  %s (%s)\n", r.Name, r.BuildSystem)
	}
	fmt.Printf("Runs: %d\n", len(runs))
}
