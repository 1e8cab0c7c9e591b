package experiment

import (
	"fmt"
	"os"

	"github.com/lasserre/wildebeest/internal/catalog"
	"github.com/lasserre/wildebeest/internal/driver"
	"github.com/lasserre/wildebeest/internal/jobrunner"
	"github.com/lasserre/wildebeest/internal/run"
)

func ensureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}

// RunOptions configures one invocation of Experiment.Run, matching the
// original's run(force, numjobs, run_list, run_from_step, no_pre, no_post,
// buildjobs, debug_in_process) keyword arguments.
type RunOptions struct {
	Force          bool
	NumJobs        int
	RunList        []*run.Run
	RunFromStep    string
	NoPre          bool
	NoPost         bool
	BuildJobs      int // 0 means "unset"
	DebugInProcess bool
}

// validateBeforeRun mirrors validate_exp_before_run.
func (e *Experiment) validateBeforeRun(opts RunOptions) error {
	if opts.RunFromStep != "" && !e.Algorithm.HasStep(opts.RunFromStep) {
		return fmt.Errorf("no step named %q", opts.RunFromStep)
	}
	if opts.RunFromStep == "" && !opts.Force {
		existing, err := e.LoadRuns()
		if err != nil {
			return err
		}
		for _, r := range existing {
			if r.LastCompletedStep != "" {
				return fmt.Errorf("found existing runs; either supply force=true or use a run_from_step")
			}
		}
	}
	seen := map[string]struct{}{}
	for _, rc := range e.RunConfigs {
		if _, dup := seen[rc.Name]; dup {
			return fmt.Errorf("experiment run configs are not uniquely named")
		}
		seen[rc.Name] = struct{}{}
	}
	return nil
}

// Run executes the full experiment lifecycle: optional preprocessing, the
// parallel run matrix via jobrunner.JobRunner, and optional postprocessing.
// Matches Experiment.run in original_source/wildebeest/experiment.py.
func (e *Experiment) Run(opts RunOptions) error {
	if err := e.validateBeforeRun(opts); err != nil {
		return err
	}

	e.FailedStep = ""
	if err := e.Save(); err != nil {
		return err
	}

	runList := opts.RunList
	if len(runList) == 0 {
		if opts.RunFromStep != "" {
			existing, err := e.LoadRuns()
			if err != nil {
				return err
			}
			if len(existing) == 0 {
				return fmt.Errorf("no existing runs to rerun in experiment %s", e.ExpFolder)
			}
			runList = existing
		} else {
			generated, err := e.GenerateRuns(opts.Force)
			if err != nil {
				return err
			}
			runList = generated
		}
	}

	if opts.BuildJobs > 0 {
		for _, r := range runList {
			if r.Config.NumBuildJobs != opts.BuildJobs {
				r.Config.NumBuildJobs = opts.BuildJobs
				if err := r.Save(); err != nil {
					return err
				}
			}
		}
	}

	if !opts.NoPre {
		e.State = StatePreprocess
		if err := e.Save(); err != nil {
			return err
		}
		outputs, err := e.Algorithm.Preprocess(e)
		e.PreprocessOutputs = outputs
		if err != nil {
			e.State = StateFailed
			e.FailedStep = "preprocessing"
			_ = e.Save()
			return err
		}
		if err := e.Save(); err != nil {
			return err
		}
	}

	e.State = StateRunning
	if err := e.Save(); err != nil {
		return err
	}

	workload := make([]*jobrunner.RunTask, 0, len(runList))
	for _, r := range runList {
		workload = append(workload, jobrunner.NewRunTask(r, e.Algorithm, e.ExpParams, opts.RunFromStep))
	}
	workloadName := fmt.Sprintf("%s-%s", e.Name, e.WorkloadID())

	runner, err := jobrunner.New(workloadName, workload, opts.NumJobs, e.ExpFolder, opts.DebugInProcess)
	if err != nil {
		return err
	}
	defer runner.Close()

	e.WorkloadFolder = runner.WorkloadFolder
	if err := e.Save(); err != nil {
		return err
	}

	failedTasks, err := runner.Run()
	if err != nil {
		return err
	}

	if len(failedTasks) > 0 {
		e.State = StateFailed
		e.FailedStep = "run"
		_ = e.Save()
		return &RunFailedError{FailedCount: len(failedTasks), TotalCount: len(runList), Tasks: failedTasks}
	}

	if !opts.NoPost {
		e.State = StatePostProcess
		if err := e.Save(); err != nil {
			return err
		}
		if err := ensureDir(e.ExpdataFolder()); err != nil {
			return err
		}
		outputs, err := e.Algorithm.Postprocess(e)
		e.PostprocessOutputs = outputs
		if err != nil {
			e.State = StateFailed
			e.FailedStep = "postprocess"
			_ = e.Save()
			return err
		}
		if err := e.Save(); err != nil {
			return err
		}
	}

	e.State = StateFinished
	return e.Save()
}

// RunFailedError reports that one or more Runs failed during Experiment.Run.
type RunFailedError struct {
	FailedCount int
	TotalCount  int
	Tasks       []*jobrunner.RunTask
}

func (err *RunFailedError) Error() string {
	return fmt.Sprintf("%d/%d runs failed", err.FailedCount, err.TotalCount)
}

// Clean performs a build-system clean on every run's build folder, looking
// up each run's driver by its recipe's build_system name. Destructive, so
// unlike preprocess/postprocess it is never part of the algorithm itself —
// an experiment owner calls it explicitly. Matches Experiment.clean.
func (e *Experiment) Clean(cat *catalog.Catalog) error {
	runs, err := e.LoadRuns()
	if err != nil {
		return err
	}
	for _, r := range runs {
		d, err := cat.Drivers.Get(r.Build.Recipe.BuildSystem)
		if err != nil {
			return fmt.Errorf("run %d: %w", r.Number, err)
		}
		if err := driver.Clean(d, r.Config, r.Build); err != nil {
			return fmt.Errorf("run %d: clean: %w", r.Number, err)
		}
	}
	return nil
}
