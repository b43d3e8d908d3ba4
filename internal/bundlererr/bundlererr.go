// Package bundlererr defines the error taxonomy a build can fail with
// (spec.md §7) so callers can recover the module key and phase for the
// single formatted stderr line without re-parsing an error string.
package bundlererr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Phase identifies which stage of a build produced an error.
type Phase string

const (
	PhaseLocate  Phase = "locating module"
	PhaseRead    Phase = "reading module"
	PhaseParse   Phase = "parsing module"
	PhaseRewrite Phase = "rewriting module"
	PhaseJSON    Phase = "parsing json module"
	PhaseEmit    Phase = "generating bundle"
	PhaseWrite   Phase = "writing bundle"
)

// Kind is the taxonomy entry from spec.md §7.
type Kind string

const (
	ModuleNotFound Kind = "ModuleNotFound"
	ParseFailure   Kind = "ParseFailure"
	RewriteFailure Kind = "RewriteFailure"
	JsonFailure    Kind = "JsonFailure"
	IOFailure      Kind = "IOFailure"
)

// BuildError is a fatal, module-attributed build failure.
type BuildError struct {
	Kind   Kind
	Phase  Phase
	Module string
	Cause  error
}

func (e *BuildError) Error() string {
	if e.Module != "" {
		return fmt.Sprintf("%s: '%s': %s", e.Phase, e.Module, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Phase, e.Cause)
}

func (e *BuildError) Unwrap() error { return e.Cause }

// New wraps cause into a BuildError, attaching module and phase context the
// way internal/bundlererr callers expect to recover it later via errors.As.
func New(kind Kind, phase Phase, module string, cause error) *BuildError {
	return &BuildError{Kind: kind, Phase: phase, Module: module, Cause: errors.WithStack(cause)}
}

// NotFound builds a ModuleNotFound error for a module key that none of the
// locator's probes matched.
func NotFound(module string, cause error) *BuildError {
	return New(ModuleNotFound, PhaseLocate, module, cause)
}

// AsBuildError recovers the BuildError from any wrapping, if present.
func AsBuildError(err error) (*BuildError, bool) {
	var be *BuildError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}
