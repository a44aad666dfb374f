package types

// CheckResult is the outcome of a check run (configuration check or setup check).
// AllOK is true exactly when Errors is empty; use the Record methods to keep it so.
type CheckResult struct {
	// AllOK reports whether the run found no problems
	AllOK bool `json:"all_ok"`
	// Successes lists the checks that passed
	Successes []string `json:"successes"`
	// Errors lists every problem found, formatted for display
	Errors []string `json:"errors"`
	// Output is optional additional output
	Output *string `json:"output,omitempty"`

	// Violations keeps the structured form of every schema violation recorded
	Violations []Violation `json:"violations,omitempty"`
	// RunID identifies the run in logs
	RunID string `json:"run_id,omitempty"`
}

// NewAllOK creates an empty CheckResult with AllOK set.
func NewAllOK() *CheckResult {
	return &CheckResult{
		AllOK:     true,
		Successes: []string{},
		Errors:    []string{},
	}
}

// NewNotOK creates an empty CheckResult with AllOK cleared. It is used when a
// precondition fails before any document is validated; callers record the failure next.
func NewNotOK() *CheckResult {
	return &CheckResult{
		AllOK:     false,
		Successes: []string{},
		Errors:    []string{},
	}
}

// RecordDocumentViolations appends the violations of the document at index in the order
// given. Each entry reads "<message> (document <index+1>, loc <instance> - schema <schema>)".
func (r *CheckResult) RecordDocumentViolations(index int, violations []Violation) {
	for _, v := range violations {
		v.Document = index
		r.Errors = append(r.Errors, v.String())
		r.Violations = append(r.Violations, v)
	}
	if len(violations) > 0 {
		r.AllOK = false
	}
}

// RecordStructuralFailure appends a failure that does not belong to a single document.
func (r *CheckResult) RecordStructuralFailure(message string) {
	r.Errors = append(r.Errors, message)
	r.AllOK = false
}

// RecordSuccess appends a passed check.
func (r *CheckResult) RecordSuccess(message string) {
	r.Successes = append(r.Successes, message)
}

// SetOutput stores additional free-form output.
func (r *CheckResult) SetOutput(output string) {
	r.Output = &output
}

// Consistent reports whether AllOK agrees with the recorded errors.
func (r *CheckResult) Consistent() bool {
	return r.AllOK == (len(r.Errors) == 0)
}
