package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/lasserre/wildebeest/internal/catalog"
	"github.com/lasserre/wildebeest/internal/experiment"
	"github.com/lasserre/wildebeest/internal/jobrunner"
	"github.com/lasserre/wildebeest/internal/run"
)

func cmdRun(cat *catalog.Catalog, args []string) {
	var numJobs = 1
	var buildJobs int
	var force bool
	var jobID = -1
	var fromStep, toStep string
	var noPre, noPost, debug bool
	var runsSpec string

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-j":
			i++
			numJobs = mustAtoi(args, i)
		case "-b":
			i++
			buildJobs = mustAtoi(args, i)
		case "-f":
			force = true
		case "--job":
			i++
			jobID = mustAtoi(args, i)
		case "--from":
			i++
			fromStep = mustArg(args, i)
		case "--to":
			i++
			toStep = mustArg(args, i)
		case "--no-pre":
			noPre = true
		case "--no-post":
			noPost = true
		case "--debug":
			debug = true
		default:
			runsSpec = args[i]
		}
	}

	// --job K is the child bootstrap entry point: re-exec'd by
	// Job.StartInSubprocess/StartInDocker, it never re-enters the
	// Experiment lifecycle, only runs one job's phase in-process.
	if jobID >= 0 {
		runBootstrappedJob(cat, jobID, fromStep, toStep)
		return
	}

	e := loadExp(cat, "")

	var runList []*run.Run
	if numbers, ok, err := parseRunSpec(runsSpec); err != nil {
		fail("%v", err)
	} else if ok {
		all, err := e.LoadRuns()
		if err != nil {
			fail("%v", err)
		}
		wanted := map[int]struct{}{}
		for _, n := range numbers {
			wanted[n] = struct{}{}
		}
		for _, r := range all {
			if _, ok := wanted[r.Number]; ok {
				runList = append(runList, r)
			}
		}
		if len(runList) != len(numbers) {
			fail("one or more requested run numbers do not exist")
		}
	}

	err := e.Run(experiment.RunOptions{
		Force:          force,
		NumJobs:        numJobs,
		RunList:        runList,
		RunFromStep:    fromStep,
		NoPre:          noPre,
		NoPost:         noPost,
		BuildJobs:      buildJobs,
		DebugInProcess: debug,
	})
	if err != nil {
		if failed, ok := err.(*experiment.RunFailedError); ok {
			fmt.Printf("%d/%d runs failed; see `wdb log <run-number>`\n", failed.FailedCount, failed.TotalCount)
			os.Exit(1)
		}
		fail("%v", err)
	}
	fmt.Println("Finished.")
}

// runBootstrappedJob is what `wdb run --job K [--from X] [--to Y]` does: it
// runs in a fresh process (possibly inside a docker exec), reconstructs the
// RunTask a Job can't itself serialize, and executes just that job's phase.
func runBootstrappedJob(cat *catalog.Catalog, jobID int, fromStep, toStep string) {
	e := loadExp(cat, "")
	if e.WorkloadFolder == "" {
		fail("experiment has no active workload folder")
	}

	j, err := jobrunner.LoadJob(jobrunner.JobYAMLFile(e.WorkloadFolder, jobID))
	if err != nil {
		fail("%v", err)
	}

	runs, err := e.LoadRuns()
	if err != nil {
		fail("%v", err)
	}
	var r *run.Run
	for _, candidate := range runs {
		if candidate.Number == j.RunNumber {
			r = candidate
			break
		}
	}
	if r == nil {
		fail("job %d: no run numbered %d", jobID, j.RunNumber)
	}

	task := jobrunner.NewRunTask(r, e.Algorithm, e.ExpParams, j.RunFromStep)
	task.JobID = jobID
	j.AttachTask(task)

	os.Exit(j.RunChild(fromStep, toStep))
}

func mustAtoi(args []string, i int) int {
	if i >= len(args) {
		fail("missing value for flag")
	}
	n, err := strconv.Atoi(args[i])
	if err != nil {
		fail("expected a number, got %q", args[i])
	}
	return n
}

func mustArg(args []string, i int) string {
	if i >= len(args) {
		fail("missing value for flag")
	}
	return args[i]
}
