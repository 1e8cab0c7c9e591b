package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lasserre/wildebeest/internal/catalog"
	"github.com/lasserre/wildebeest/internal/jobrunner"
)

func cmdLog(cat *catalog.Catalog, args []string) {
	if len(args) < 1 {
		usage()
		os.Exit(1)
	}
	runNumber := mustAtoi(args, 0)

	e := loadExp(cat, "")
	if e.WorkloadFolder == "" {
		fail("experiment has no active workload folder")
	}

	// Job IDs are stamped from the Run's number (see lifecycle.go's
	// jobrunner.NewRunTask call), so the Run's own logfile is job<N>.log.
	logFile := filepath.Join(e.WorkloadFolder, jobrunner.JobRelPaths.Logs, fmt.Sprintf("job%d.log", runNumber))
	f, err := os.Open(logFile)
	if err != nil {
		fail("%v", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.Contains(strings.ToLower(line), "error") || strings.Contains(strings.ToLower(line), "traceback") {
			fmt.Printf("!! %s\n", line)
		} else {
			fmt.Println(line)
		}
	}
}
