// Package jobrunner is the parallel supervisor described in spec section
// 4.6: it dispatches each Run's algorithm as a sequence of phase-scoped
// Jobs, alternating host subprocesses and docker execs at the host/docker
// boundary phase_end identifies, polling for completion rather than using
// goroutines/channels for the actual work — a runaway build can be killed
// hard without touching the supervisor's own state. Grounded on
// original_source/wildebeest/jobrunner.py.
package jobrunner

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/lasserre/wildebeest/internal/run"
)

const pollInterval = 250 * time.Millisecond

// WdbCommand is the engine binary name JobRunner re-invokes for each phase.
// Overridable in tests.
var WdbCommand = "wdb"

// JobRunner runs a set of RunTasks using up to NumJobs parallel Jobs. It
// implements io.Closer as a scoped resource: defer runner.Close() kills any
// Jobs still running on the way out, covering both clean returns and panics
// (the original's `with JobRunner(...) as runner:` context manager).
type JobRunner struct {
	Name           string
	Workload       []*RunTask
	NumJobs        int
	ExpFolder      string
	DebugInProcess bool
	WorkloadFolder string

	logger *log.Logger

	readyJobs    []*Job
	runningJobs  []*Job
	failedJobs   []*Job
	finishedJobs []*Job
}

// New constructs a JobRunner and resets its (transient) workload folder.
// Callers should `defer runner.Close()` immediately to guarantee stray
// children are killed on any exit path.
func New(name string, workload []*RunTask, numJobs int, expFolder string, debugInProcess bool) (*JobRunner, error) {
	if debugInProcess && numJobs != 1 {
		numJobs = 1
	}
	r := &JobRunner{
		Name:           name,
		Workload:       workload,
		NumJobs:        numJobs,
		ExpFolder:      expFolder,
		DebugInProcess: debugInProcess,
		WorkloadFolder: workloadFolder(name),
		logger:         log.New(os.Stderr, "[wdb-jobrunner] ", log.LstdFlags),
	}
	if err := resetFolder(r.WorkloadFolder, true); err != nil {
		return nil, err
	}
	if err := resetFolder(filepath.Join(r.WorkloadFolder, JobRelPaths.Logs), false); err != nil {
		return nil, err
	}
	if err := resetFolder(filepath.Join(r.WorkloadFolder, JobRelPaths.Jobs), false); err != nil {
		return nil, err
	}
	return r, nil
}

func resetFolder(folder string, deleteExisting bool) error {
	if deleteExisting {
		if err := os.RemoveAll(folder); err != nil {
			return err
		}
	}
	return os.MkdirAll(folder, 0o755)
}

// Close kills every still-running Job. Safe to call multiple times.
func (r *JobRunner) Close() error {
	for _, j := range r.runningJobs {
		j.Kill()
	}
	r.runningJobs = nil
	return nil
}

func (r *JobRunner) markRunning(j *Job) {
	if j.Status != StatusReady {
		r.logger.Printf("warning: trying to move a %s job (%s) to Running", j.Status, j.Task.Name)
		return
	}
	if err := j.setStatus(StatusRunning); err != nil {
		r.logger.Printf("error persisting job %d: %v", j.JobID, err)
	}
}

func (r *JobRunner) markFinished(j *Job, failed bool) {
	if j.Status != StatusRunning {
		target := StatusFinished
		if failed {
			target = StatusFailed
		}
		r.logger.Printf("warning: trying to move a %s job (%s) to %s", j.Status, j.Task.Name, target)
		return
	}
	status := StatusFinished
	if failed {
		status = StatusFailed
	}
	j.Status = status
	j.FinishTime = j.Task.FinishTime
	_ = j.save()
}

// startNextJob pops the next ready job, stamps the Run's WorkloadID (useful
// for deriving a deterministic container name), and starts its first phase.
func (r *JobRunner) startNextJob() {
	next := r.readyJobs[0]
	r.readyJobs = r.readyJobs[1:]
	next.Task.Run.WorkloadID = r.Name
	r.startNextPhase(next, next.Task.RunFromStepIdx())
}

// startNextPhase detects the next host/docker phase starting at
// firstStepIdx (via Algorithm.PhaseEnd) and dispatches it.
func (r *JobRunner) startNextPhase(j *Job, firstStepIdx int) {
	algo := j.Task.Algorithm
	startIdx := firstStepIdx
	stopIdx := algo.PhaseEnd(startIdx)
	dockerPhase := algo.Steps[startIdx].RunInDocker

	fromStep := algo.Steps[startIdx].Name
	toStep := algo.Steps[stopIdx].Name

	r.markRunning(j)

	switch {
	case r.DebugInProcess:
		r.logger.Printf("[Started %s (job %d, IN PROCESS)]", j.Task.Name, j.JobID)
		rc := j.RunChild(fromStep, toStep)
		j.debugFinished = true
		j.debugFailed = rc != 0
	case dockerPhase:
		j.RunningInDocker = true
		_ = j.save()
		run := j.Task.Run
		if run.ContainerName == "" {
			run.ContainerName = ContainerName(run.WorkloadID, run.Number, run.Build.Recipe.Name, run.Config.Name)
			_ = run.Save()
		}
		pid, err := j.StartInDocker(run.ContainerName, fromStep, toStep, WdbCommand)
		if err != nil {
			r.logger.Printf("error starting job %d in docker: %v", j.JobID, err)
		}
		r.logger.Printf("[Started %s in docker (job %d, pid = %d)]", j.Task.Name, j.JobID, pid)
	default:
		j.RunningInDocker = false
		_ = j.save()
		pid, err := j.StartInSubprocess(fromStep, toStep, WdbCommand)
		if err != nil {
			r.logger.Printf("error starting job %d: %v", j.JobID, err)
		}
		r.logger.Printf("[Started %s (job %d, pid = %d)]", j.Task.Name, j.JobID, pid)
	}
	r.runningJobs = append(r.runningJobs, j)
}

// handleFinishedJob reads back the job's post-exit state, routes it to
// failed/finished, or advances it to its next phase.
func (r *JobRunner) handleFinishedJob(j *Job) {
	failed := j.Failed()
	r.removeRunning(j)

	if reloaded, err := LoadJob(j.YAMLFile); err == nil {
		reloaded.Task = j.Task
		reloaded.cmd = j.cmd
		reloaded.wait = j.wait
		reloaded.debugFailed = j.debugFailed
		reloaded.debugFinished = j.debugFinished
		j = reloaded
	}

	if failed {
		r.markFinished(j, true)
		r.failedJobs = append(r.failedJobs, j)
		j.Task.FinishTime = time.Now()
		j.FinishTime = j.Task.FinishTime
		if err := j.Task.OnFailed(r.ExpFolder); err != nil {
			r.logger.Printf("error marking run %d failed: %v", j.Task.Run.Number, err)
		}
		r.logger.Printf("[%s FAILED in %s]: %s", j.Task.Name, j.Task.Runtime(), j.ErrorMsg)
		return
	}

	if !r.DebugInProcess {
		// The child process advanced the Run on disk, not in this process.
		reloadedRun, err := run.Load(j.Task.Run.RunstateFile(), r.ExpFolder)
		if err != nil {
			r.logger.Printf("error reloading run %d: %v", j.Task.Run.Number, err)
		} else {
			reloadedRun.WorkloadID = j.Task.Run.WorkloadID
			j.Task.Run = reloadedRun
		}
	}

	lastStep := j.Task.Algorithm.Steps[len(j.Task.Algorithm.Steps)-1].Name
	completedRun := j.Task.Run.LastCompletedStep == lastStep
	if completedRun {
		r.markFinished(j, false)
		r.finishedJobs = append(r.finishedJobs, j)
		r.logger.Printf("[%s finished in %s]", j.Task.Name, j.Task.Runtime())
		return
	}

	lastIdx := j.Task.Algorithm.IndexOf(j.Task.Run.LastCompletedStep)
	r.startNextPhase(j, lastIdx+1)
}

func (r *JobRunner) removeRunning(target *Job) {
	out := r.runningJobs[:0]
	for _, j := range r.runningJobs {
		if j != target {
			out = append(out, j)
		}
	}
	r.runningJobs = out
}

// waitForFinishedJob blocks, polling every pollInterval, until at least one
// running job finishes, then handles it and returns.
func (r *JobRunner) waitForFinishedJob() {
	for {
		for _, j := range r.runningJobs {
			if j.Finished() {
				r.handleFinishedJob(j)
				return
			}
		}
		time.Sleep(pollInterval)
	}
}

func (r *JobRunner) startParallelJobs(maxJobs int) {
	for len(r.readyJobs) > 0 && len(r.runningJobs) < maxJobs {
		r.startNextJob()
	}
}

// Run executes the whole workload and returns the RunTasks that failed (nil
// if none did). It does not return until every job has reached Failed or
// Finished.
func (r *JobRunner) Run() ([]*RunTask, error) {
	r.readyJobs = make([]*Job, 0, len(r.Workload))
	for _, task := range r.Workload {
		j, err := NewJob(task, r.WorkloadFolder, r.ExpFolder, r.DebugInProcess)
		if err != nil {
			return nil, err
		}
		r.readyJobs = append(r.readyJobs, j)
	}
	r.failedJobs = nil
	r.finishedJobs = nil

	maxJobs := r.NumJobs
	if len(r.readyJobs) < maxJobs {
		maxJobs = len(r.readyJobs)
	}

	r.logger.Printf("Running %d tasks using up to %d parallel jobs", len(r.readyJobs), maxJobs)
	if maxJobs < r.NumJobs {
		r.logger.Printf("(%d specified, but only %d jobs to run)", r.NumJobs, len(r.readyJobs))
	}

	for len(r.readyJobs) > 0 {
		r.startParallelJobs(maxJobs)
		r.waitForFinishedJob()
	}
	for len(r.runningJobs) > 0 {
		r.waitForFinishedJob()
	}

	r.logger.Printf("Finished running %s", r.Name)

	failed := make([]*RunTask, 0, len(r.failedJobs))
	for _, j := range r.failedJobs {
		failed = append(failed, j.Task)
	}
	return failed, nil
}

// JobYAMLFile returns the path a job's record lives at under
// workloadFolder, for the `wdb run --job N` bootstrap path: the CLI loads
// this file via LoadJob, reconstructs a RunTask from the job's ExpFolder
// (experiment + algorithm lookup via catalog, Run.Load by RunNumber), calls
// j.AttachTask(task), then j.RunChild(fromStep, toStep).
func JobYAMLFile(workloadFolder string, jobID int) string {
	return jobYAMLFile(workloadFolder, jobID)
}
