package main

import (
	"fmt"

	"github.com/lasserre/wildebeest/internal/catalog"
)

func cmdStatus(cat *catalog.Catalog, args []string) {
	e := loadExp(cat, "")
	runs, err := e.LoadRuns()
	if err != nil {
		fail("%v", err)
	}

	fmt.Printf("%-4s %-24s %-10s %-20s %s\n", "RUN", "NAME", "STATUS", "STEP", "ERROR")
	for _, r := range runs {
		step := r.CurrentStep
		if r.Status == "Finished" {
			step = r.LastCompletedStep
		}
		fmt.Printf("%-4d %-24s %-10s %-20s %s\n", r.Number, r.Name, r.Status, step, r.ErrorMsg)
	}
}
