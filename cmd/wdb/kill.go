package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lasserre/wildebeest/internal/catalog"
	"github.com/lasserre/wildebeest/internal/jobrunner"
)

func cmdKill(cat *catalog.Catalog, args []string) {
	var jobID = -1
	var all bool
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--job":
			i++
			jobID = mustAtoi(args, i)
		case "-f":
			all = true
		default:
			fail("unknown arg: %s", args[i])
		}
	}
	if jobID < 0 && !all {
		usage()
		os.Exit(1)
	}

	e := loadExp(cat, "")
	if e.WorkloadFolder == "" {
		fail("experiment has no active workload folder")
	}

	if jobID >= 0 {
		killJob(e.WorkloadFolder, jobID)
		return
	}

	jobsDir := filepath.Join(e.WorkloadFolder, jobrunner.JobRelPaths.Jobs)
	entries, err := os.ReadDir(jobsDir)
	if err != nil {
		fail("%v", err)
	}
	for _, entry := range entries {
		name := strings.TrimSuffix(entry.Name(), ".yaml")
		id, err := strconv.Atoi(strings.TrimPrefix(name, "job"))
		if err != nil {
			continue
		}
		killJob(e.WorkloadFolder, id)
	}
}

func killJob(workloadFolder string, jobID int) {
	j, err := jobrunner.LoadJob(jobrunner.JobYAMLFile(workloadFolder, jobID))
	if err != nil {
		fmt.Fprintf(os.Stderr, "job %d: %v\n", jobID, err)
		return
	}
	j.Kill()
	fmt.Printf("Killed job %d (run %d)\n", jobID, j.RunNumber)
}
