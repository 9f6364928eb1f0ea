package diag

// Severity classifies how serious a diagnostic is. The external interpreter
// only distinguishes warnings from fatal compilation errors, so the model
// does too.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// IsValid reports whether s is one of the recognized severity values.
func (s Severity) IsValid() bool {
	return s == SeverityWarning || s == SeverityError
}

// Diagnostic is a single issue found in a target file. Values are built once
// by a backend and never mutated afterwards.
type Diagnostic struct {
	Severity Severity `json:"type"`
	Message  string   `json:"message"`
	Line     int      `json:"line"`
	Origin   string   `json:"from"`
}

// Fragment is the partial diagnostic a line predicate returns: the backend
// fills in the line number and origin.
type Fragment struct {
	Severity Severity
	Message  string
}
