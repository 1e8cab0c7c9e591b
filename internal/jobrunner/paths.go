package jobrunner

import (
	"os"
	"path/filepath"
	"strconv"
)

// WorkloadsRoot is where every workload's transient folder lives, matching
// JobPaths.Workloads (~/.wildebeest/workloads).
func WorkloadsRoot() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".wildebeest", "workloads")
}

// JobRelPaths collects workload-folder-relative paths, mirroring
// original_source/wildebeest/jobrunner.py's JobRelPaths.
var JobRelPaths = struct {
	Jobs string
	Logs string
}{
	Jobs: "jobs",
	Logs: "logs",
}

func workloadFolder(name string) string {
	return filepath.Join(WorkloadsRoot(), name+".workload")
}

func jobName(jobID int) string {
	return "job" + strconv.Itoa(jobID)
}

func jobYAMLFile(workloadFolder string, jobID int) string {
	return filepath.Join(workloadFolder, JobRelPaths.Jobs, jobName(jobID)+".yaml")
}

func jobLogFile(workloadFolder string, jobID int) string {
	return filepath.Join(workloadFolder, JobRelPaths.Logs, jobName(jobID)+".log")
}
