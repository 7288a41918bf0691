package entities

import "fmt"

// MissingArtifactError indicates that no regular snapshot file could be
// located for a required version. This is fatal to the pipeline.
type MissingArtifactError struct {
	Version string
}

func (e *MissingArtifactError) Error() string {
	return fmt.Sprintf("no snapshot file found for version %q", e.Version)
}

// EngineInvocationError indicates that the external diff/patch binary could
// not be located or started. This is fatal to the pipeline, unlike a
// non-zero exit from a binary that did start.
type EngineInvocationError struct {
	Bin string
	Err error
}

func (e *EngineInvocationError) Error() string {
	return fmt.Sprintf("failed to invoke diff engine %q: %v", e.Bin, e.Err)
}

func (e *EngineInvocationError) Unwrap() error {
	return e.Err
}
