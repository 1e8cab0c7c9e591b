package jobrunner

import (
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/lasserre/wildebeest/internal/procutil"
	"github.com/lasserre/wildebeest/internal/store"
)

type Status string

const (
	StatusReady    Status = "Ready"
	StatusRunning  Status = "Running"
	StatusFailed   Status = "Failed"
	StatusFinished Status = "Finished"
)

// Job is one phase's worth of work dispatched for a Run: either a child OS
// process (non-docker phase) or a `docker exec` into the Run's container
// (docker phase). Job's own YAML file records only what a freshly-started
// child process needs to rediscover its work (RunNumber, ExpFolder,
// RunFromStep) plus status fields a supervisor or dashboard polls; the Task
// field is never serialized, since Algorithm carries func values.
//
// Invariant (single writer): only the supervising process mutates a Job's
// YAML during state transitions, and the child itself only at start (to
// record StartTime) and at exit (to record FinishTime/ErrorMsg) — never
// while the parent is also writing. Outputs flow through the Run's runstate
// file, never through the Job record.
type Job struct {
	Task *RunTask `yaml:"-" json:"-"`

	JobID         int    `yaml:"jobid" json:"jobid"`
	RunNumber     int    `yaml:"run_number" json:"run_number"`
	ExpFolder     string `yaml:"exp_folder" json:"exp_folder"`
	RunFromStep   string `yaml:"run_from_step,omitempty" json:"run_from_step,omitempty"`
	YAMLFile      string `yaml:"-" json:"-"`
	LogFile       string `yaml:"logfile" json:"logfile"`
	DebugInProcess bool  `yaml:"-" json:"-"`

	Status          Status    `yaml:"status" json:"status"`
	RunningInDocker bool      `yaml:"running_in_docker" json:"running_in_docker"`
	PID             int       `yaml:"pid,omitempty" json:"pid,omitempty"`
	StartTime       time.Time `yaml:"starttime,omitempty" json:"starttime,omitempty"`
	FinishTime      time.Time `yaml:"finishtime,omitempty" json:"finishtime,omitempty"`
	ErrorMsg        string    `yaml:"error_msg,omitempty" json:"error_msg,omitempty"`

	cmd           *exec.Cmd
	debugFailed   bool
	debugFinished bool

	// wait is allocated alongside cmd in startCmd and recorded by its
	// goroutine once cmd.Wait() returns. Finished/Failed consult it instead
	// of racing on cmd.ProcessState, which os/exec only guarantees is safe to
	// read after Wait has returned. A pointer (rather than an embedded
	// sync.Mutex) so a Job loaded by value through store.Load isn't copying a
	// lock.
	wait *jobWait
}

type jobWait struct {
	mu   sync.Mutex
	done bool
	err  error
}

// NewJob constructs a Job for task, writing its initial YAML record. This
// is the one and only point (besides the child's own start/exit writes)
// where a Job is saved outside the supervisor's state-transition helpers,
// matching the original's "save in __init__, for convenience" comment.
func NewJob(task *RunTask, workloadFolder, expFolder string, debugInProcess bool) (*Job, error) {
	j := &Job{
		Task:           task,
		JobID:          task.JobID,
		RunNumber:      task.Run.Number,
		ExpFolder:      expFolder,
		RunFromStep:    task.RunFromStep,
		YAMLFile:       jobYAMLFile(workloadFolder, task.JobID),
		LogFile:        jobLogFile(workloadFolder, task.JobID),
		DebugInProcess: debugInProcess,
		Status:         StatusReady,
	}
	if err := j.save(); err != nil {
		return nil, err
	}
	return j, nil
}

func (j *Job) save() error {
	return store.Save(j, j.YAMLFile)
}

// LoadJob reads a Job record back from its YAML file. The Task field is not
// restored (the caller, a freshly re-exec'd child, reconstructs it from
// ExpFolder/RunNumber/RunFromStep via the catalog and run.Load).
func LoadJob(yamlFile string) (*Job, error) {
	j, err := store.Load[Job](yamlFile)
	if err != nil {
		return nil, err
	}
	j.YAMLFile = yamlFile
	return &j, nil
}

// AttachTask wires a reconstructed RunTask onto a Job loaded via LoadJob.
// The bootstrapped child process calls this before RunChild, since Task is
// never itself serialized (its Algorithm carries func values).
func (j *Job) AttachTask(task *RunTask) { j.Task = task }

func (j *Job) setStatus(s Status) error {
	j.Status = s
	return j.save()
}

// RunChild executes this job's task in the current process: records start
// time, delegates to RunTask.Execute, records finish time and any error.
// This is what `wdb run --job N --from X --to Y` calls after reconstructing
// Task from disk — the bootstrapping trick that decouples child lifetime
// from supervisor memory state.
func (j *Job) RunChild(fromStep, toStep string) int {
	j.Task.StartTime = time.Now()
	j.StartTime = j.Task.StartTime
	_ = j.save() // persist starttime in case we get killed

	err := j.Task.Execute(fromStep, toStep)
	j.FinishTime = time.Now()
	if err != nil {
		j.ErrorMsg = err.Error()
		_ = j.save()
		return 1
	}
	_ = j.save()
	return 0
}

// StartInDocker execs the engine inside this job's container, logging to
// LogFile, and records the resulting PID.
func (j *Job) StartInDocker(container, fromStep, toStep, wdbCommand string) (int, error) {
	return j.startCmd(dockerExecCmd(container, wdbCommand, j.JobID, fromStep, toStep))
}

// StartInSubprocess execs the engine directly (non-docker phase).
func (j *Job) StartInSubprocess(fromStep, toStep, wdbCommand string) (int, error) {
	return j.startCmd(subprocessCmd(wdbCommand, j.JobID, fromStep, toStep))
}

func (j *Job) startCmd(cmd *exec.Cmd) (int, error) {
	cmd.Dir = j.ExpFolder
	log, err := os.Create(j.LogFile)
	if err != nil {
		return 0, err
	}
	cmd.Stdout = log
	cmd.Stderr = log
	if err := cmd.Start(); err != nil {
		log.Close()
		return 0, err
	}
	j.cmd = cmd
	j.PID = cmd.Process.Pid
	w := &jobWait{}
	j.wait = w
	if err := j.save(); err != nil {
		return j.PID, err
	}
	go func() {
		err := cmd.Wait()
		log.Close()
		w.mu.Lock()
		w.done = true
		w.err = err
		w.mu.Unlock()
	}()
	return j.PID, nil
}

// Kill kills this job's whole process tree, tolerating a PID that is
// already gone.
func (j *Job) Kill() {
	if j.PID <= 0 {
		return
	}
	_ = procutil.KillTree(j.PID)
}

// Finished reports whether the job's process has exited (poll-only, never
// blocks). When this Job started the process itself (j.cmd != nil), this
// reflects the startCmd goroutine's cmd.Wait() having returned rather than
// racing on cmd.ProcessState directly, which is the only state os/exec
// guarantees is safe to read once Wait has returned. Otherwise (a Job
// reattached from disk in a different process, with only a PID to go on) it
// falls back to /proc-based zombie detection.
func (j *Job) Finished() bool {
	if j.DebugInProcess {
		return j.debugFinished
	}
	if j.cmd != nil && j.wait != nil {
		j.wait.mu.Lock()
		done := j.wait.done
		j.wait.mu.Unlock()
		return done
	}
	if j.PID > 0 {
		return !procutil.PIDAlive(j.PID)
	}
	return false
}

// Failed reports whether a finished job exited with a non-zero status. For a
// Job this process started, this only ever consults the wait result recorded
// by startCmd's goroutine (guarded by wait.mu), never cmd.ProcessState
// directly, closing the window where Finished() could observe a zombie
// process before cmd.Wait() had recorded its exit status.
func (j *Job) Failed() bool {
	if j.DebugInProcess {
		return j.debugFailed
	}
	if j.cmd != nil && j.wait != nil {
		j.wait.mu.Lock()
		done, err := j.wait.done, j.wait.err
		j.wait.mu.Unlock()
		return done && err != nil
	}
	return false
}
