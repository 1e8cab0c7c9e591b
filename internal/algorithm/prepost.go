package algorithm

import "github.com/lasserre/wildebeest/internal/stepio"

// Preprocess runs this algorithm's preprocess steps against exp in order,
// threading outputs through exactly as RunStep execution does. It returns
// the accumulated outputs; the caller (experiment.Experiment) is responsible
// for storing them and deciding what a failure means for its own state.
func (a *Algorithm) Preprocess(exp ExperimentView) (stepio.Outputs, error) {
	return a.runExpSteps(exp, a.PreprocessSteps)
}

// Postprocess runs this algorithm's postprocess steps against exp in order.
func (a *Algorithm) Postprocess(exp ExperimentView) (stepio.Outputs, error) {
	return a.runExpSteps(exp, a.PostprocessSteps)
}

func (a *Algorithm) runExpSteps(exp ExperimentView, steps []ExpStep) (stepio.Outputs, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	outputs := stepio.Outputs{}
	for _, s := range steps {
		merged := stepio.Merge(exp.Params(), s.Params)
		out, err := s.Process(exp, merged, outputs)
		if err != nil {
			return outputs, &StepError{StepName: s.Name, Err: err}
		}
		outputs[s.Name] = out
	}
	return outputs, nil
}

// StepError wraps the error returned by a failed step with the step's name,
// matching the original's "{process_type}processing step {name} failed" /
// "Run failed during the {name} step" logging.
type StepError struct {
	StepName string
	Err      error
}

func (e *StepError) Error() string {
	return "step " + e.StepName + " failed: " + e.Err.Error()
}

func (e *StepError) Unwrap() error { return e.Err }
