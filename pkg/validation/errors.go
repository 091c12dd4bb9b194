// Package validation checks control groups and real-time control models for
// structural and semantic defects and reports them as a tree of issues.
package validation

import (
	"errors"

	"github.com/dukex/rtcontrol/pkg/graph"
)

// Programmer errors. Defects in the data itself are reported as issues, never as errors.
var (
	ErrNilModel        = errors.New("real-time control model cannot be nil")
	ErrNilControlGroup = graph.ErrNilControlGroup
	ErrUnknownSeverity = errors.New("unknown severity")
)
