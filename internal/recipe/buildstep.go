package recipe

// StepBody is a callback invoked around a build-system driver method
// (configure/build/clean). It receives the run config and the build it
// applies to. Implementations shell out to the build driver, a linker, etc.
type StepBody func(rc *RunConfig, build *ProjectBuild) error

// OverrideKind selects how a BuildStepOptions customizes the build driver's
// default behavior for one step. spec.md §9 calls out that callable fields
// inside recipes (preprocess/override_step/postprocess) should be modeled as
// a polymorphic step variant in statically-typed targets rather than bare
// nilable closures, since Go has no clean "maybe a closure" idiom as
// ergonomic as Python's default-None-callable pattern.
type OverrideKind int

const (
	// UseDefault runs the build driver's default implementation, optionally
	// wrapped by Preprocess/Postprocess.
	UseDefault OverrideKind = iota
	// Override replaces the build driver's default implementation entirely.
	Override
	// Decorated is equivalent to UseDefault but documents that Preprocess
	// and/or Postprocess carry real pre/post behavior (as opposed to
	// UseDefault with both nil, which is the common case).
	Decorated
)

// BuildStepOptions customizes one build-driver step (configure, build, or
// clean) for a specific ProjectRecipe. CmdlineOptions are passed to the
// build driver as-is; Preprocess/Postprocess bracket whichever body runs.
type BuildStepOptions struct {
	CmdlineOptions []string
	Kind           OverrideKind
	OverrideStep   StepBody
	Preprocess     StepBody
	Postprocess    StepBody
}

// Run executes defaultStep (the build driver's own implementation) wrapped
// by this BuildStepOptions' preprocess/override/postprocess sequence. This
// mirrors the original Python's BuildSystemDriver._do_build_step.
func (o BuildStepOptions) Run(rc *RunConfig, build *ProjectBuild, defaultStep StepBody) error {
	if o.Preprocess != nil {
		if err := o.Preprocess(rc, build); err != nil {
			return err
		}
	}

	step := defaultStep
	if o.Kind == Override && o.OverrideStep != nil {
		step = o.OverrideStep
	}
	if step != nil {
		if err := step(rc, build); err != nil {
			return err
		}
	}

	if o.Postprocess != nil {
		if err := o.Postprocess(rc, build); err != nil {
			return err
		}
	}
	return nil
}
