package validation

import (
	"encoding/json"
	"fmt"

	"github.com/dukex/rtcontrol/pkg/models"
	"go.uber.org/multierr"
)

// Severity indicates how serious an issue is.
type Severity int

const (
	// Warning marks a likely authoring mistake that does not block a simulation.
	Warning Severity = iota
	// Error marks a defect the solver cannot run with.
	Error
)

func (s Severity) String() string {
	switch s {
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Severity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "warning":
		*s = Warning
	case "error":
		*s = Error
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSeverity, text)
	}

	return nil
}

// Issue is a single finding of a validation run.
type Issue struct {
	Severity Severity
	Message  string
	Subject  models.Node // Offending node
	Related  models.Node // Optional second node involved
}

type nodeJSON struct {
	Kind models.NodeKind `json:"kind"`
	ID   models.ID       `json:"id"`
	Name string          `json:"name"`
}

func toNodeJSON(n models.Node) *nodeJSON {
	if n == nil {
		return nil
	}

	return &nodeJSON{Kind: n.NodeKind(), ID: n.NodeID(), Name: n.NodeName()}
}

func (i Issue) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Severity Severity  `json:"severity"`
		Message  string    `json:"message"`
		Subject  *nodeJSON `json:"subject,omitempty"`
		Related  *nodeJSON `json:"related,omitempty"`
	}{
		Severity: i.Severity,
		Message:  i.Message,
		Subject:  toNodeJSON(i.Subject),
		Related:  toNodeJSON(i.Related),
	})
}

func (i Issue) String() string {
	return fmt.Sprintf("[%s] %s", i.Severity, i.Message)
}

// IssueError exposes an Error issue as an error value.
type IssueError struct {
	Issue Issue
}

func (e *IssueError) Error() string {
	return e.Issue.Message
}

// Report is a named node of the validation tree.
type Report struct {
	Name    string    `json:"name"`
	Issues  []Issue   `json:"issues"`
	Reports []*Report `json:"reports,omitempty"`
}

// NewReport creates an empty report.
func NewReport(name string) *Report {
	return &Report{Name: name, Issues: make([]Issue, 0)}
}

// AddError records an Error about subject.
func (r *Report) AddError(subject models.Node, format string, args ...any) {
	r.add(Error, subject, nil, format, args...)
}

// AddWarning records a Warning about subject.
func (r *Report) AddWarning(subject models.Node, format string, args ...any) {
	r.add(Warning, subject, nil, format, args...)
}

// AddRelatedError records an Error involving two nodes.
func (r *Report) AddRelatedError(subject, related models.Node, format string, args ...any) {
	r.add(Error, subject, related, format, args...)
}

// AddRelatedWarning records a Warning involving two nodes.
func (r *Report) AddRelatedWarning(subject, related models.Node, format string, args ...any) {
	r.add(Warning, subject, related, format, args...)
}

func (r *Report) add(severity Severity, subject, related models.Node, format string, args ...any) {
	r.Issues = append(r.Issues, Issue{
		Severity: severity,
		Message:  fmt.Sprintf(format, args...),
		Subject:  subject,
		Related:  related,
	})
}

// AddReport appends a child report.
func (r *Report) AddReport(child *Report) {
	r.Reports = append(r.Reports, child)
}

// Walk visits the report and its children depth first. Depth is 0 for the receiver.
func (r *Report) Walk(fn func(report *Report, depth int)) {
	var walk func(report *Report, depth int)
	walk = func(report *Report, depth int) {
		fn(report, depth)

		for _, child := range report.Reports {
			walk(child, depth+1)
		}
	}

	walk(r, 0)
}

// AllIssues returns the issues of the whole tree, depth first.
func (r *Report) AllIssues() []Issue {
	var issues []Issue

	r.Walk(func(report *Report, _ int) {
		issues = append(issues, report.Issues...)
	})

	return issues
}

func (r *Report) count(severity Severity) int {
	n := 0

	for _, issue := range r.AllIssues() {
		if issue.Severity == severity {
			n++
		}
	}

	return n
}

// ErrorCount returns the number of Error issues in the tree.
func (r *Report) ErrorCount() int {
	return r.count(Error)
}

// WarningCount returns the number of Warning issues in the tree.
func (r *Report) WarningCount() int {
	return r.count(Warning)
}

// IsValid reports whether the tree holds no Error issues.
func (r *Report) IsValid() bool {
	return r.ErrorCount() == 0
}

// Child returns the direct child report with the given name.
func (r *Report) Child(name string) (*Report, bool) {
	for _, child := range r.Reports {
		if child.Name == name {
			return child, true
		}
	}

	return nil, false
}

// Err folds every Error issue of the tree into a single error, or nil.
func (r *Report) Err() error {
	var err error

	for _, issue := range r.AllIssues() {
		if issue.Severity == Error {
			err = multierr.Append(err, &IssueError{Issue: issue})
		}
	}

	return err
}
