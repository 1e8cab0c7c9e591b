package main

import (
	"fmt"
	"sort"

	"github.com/lasserre/wildebeest/internal/catalog"
)

func cmdRuntimes(cat *catalog.Catalog, args []string) {
	e := loadExp(cat, "")
	runs, err := e.LoadRuns()
	if err != nil {
		fail("%v", err)
	}

	for _, r := range runs {
		fmt.Printf("Run %d (%s) — total %s\n", r.Number, r.Name, r.Runtime)
		type stepRuntime struct {
			name string
			dur  string
		}
		steps := make([]stepRuntime, 0, len(r.StepRuntimes))
		for name, dur := range r.StepRuntimes {
			steps = append(steps, stepRuntime{name, dur.String()})
		}
		sort.Slice(steps, func(i, j int) bool { return steps[i].name < steps[j].name })
		for _, s := range steps {
			fmt.Printf("  %-20s %s\n", s.name, s.dur)
		}
	}
}
