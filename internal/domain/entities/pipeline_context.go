package entities

// PipelineContext is the append-only record threaded through every pipeline
// step. Each With method returns a copy with one more field populated; a
// step never removes or mutates an existing field, so any step can be
// replayed or logged from the context snapshot at its invocation.
type PipelineContext struct {
	Settings *Settings

	FromFiles VersionFileSet
	ToFiles   VersionFileSet

	ChangesPatchPath  string
	FixPatchPath      string
	FixAppliedPath    string
	HumanReadableText string
	SummaryPath       string
}

// NewPipelineContext creates the initial context for one run.
func NewPipelineContext(settings *Settings) PipelineContext {
	return PipelineContext{Settings: settings}
}

// WithFiles records the located snapshot files for both versions.
func (c PipelineContext) WithFiles(from, to VersionFileSet) PipelineContext {
	c.FromFiles = from
	c.ToFiles = to
	return c
}

// WithChangesPatch records the path of the changes patch artifact.
func (c PipelineContext) WithChangesPatch(path string) PipelineContext {
	c.ChangesPatchPath = path
	return c
}

// WithFixPatch records the path of the fix patch artifact.
func (c PipelineContext) WithFixPatch(path string) PipelineContext {
	c.FixPatchPath = path
	return c
}

// WithFixApplied records the path of the corrected target snapshot.
func (c PipelineContext) WithFixApplied(path string) PipelineContext {
	c.FixAppliedPath = path
	return c
}

// WithSummary records the generated human-readable text and, when written,
// the path of the summary file.
func (c PipelineContext) WithSummary(text, path string) PipelineContext {
	c.HumanReadableText = text
	c.SummaryPath = path
	return c
}
