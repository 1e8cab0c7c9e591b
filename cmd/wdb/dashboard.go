package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lasserre/wildebeest/internal/catalog"
	"github.com/lasserre/wildebeest/internal/experiment"
	"github.com/lasserre/wildebeest/internal/run"
)

func cmdDashboard(cat *catalog.Catalog, args []string) {
	if len(args) < 1 {
		usage()
		os.Exit(1)
	}
	parent := args[0]

	entries, err := os.ReadDir(parent)
	if err != nil {
		fail("%v", err)
	}

	fmt.Printf("%-30s %-10s %-20s %s\n", "EXPERIMENT", "STATE", "RUNS", "FOLDER")
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		expFolder := filepath.Join(parent, entry.Name())
		if !experiment.IsExpFolder(expFolder) {
			continue
		}
		e := loadExp(cat, expFolder)
		runs, err := e.LoadRuns()
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", expFolder, err)
			continue
		}
		fmt.Printf("%-30s %-10s %-20s %s\n", e.Name, e.State, runSummary(runs), expFolder)
	}
}

func runSummary(runs []*run.Run) string {
	counts := map[string]int{}
	for _, r := range runs {
		counts[string(r.Status)]++
	}
	return fmt.Sprintf("ready=%d running=%d finished=%d failed=%d",
		counts["Ready"], counts["Running"], counts["Finished"], counts["Failed"])
}
