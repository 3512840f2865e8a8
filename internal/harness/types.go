package harness

// CaseResult is the outcome of one compile case.
type CaseResult struct {
	Name    string `json:"name"`
	Dialect string `json:"dialect"`

	// SQL is the compiled text; empty when compilation failed.
	SQL string `json:"sql,omitempty"`

	// Error is the compilation error message, if any.
	Error string `json:"error,omitempty"`

	// ErrorKind classifies Error (see ErrorKind).
	ErrorKind string `json:"error_kind,omitempty"`

	Pass bool `json:"pass"`
}

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true when every case met its expectation.
	Pass bool `json:"pass"`

	Cases []CaseResult `json:"cases"`

	// Errors contains one message per failed expectation.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Cases:  []CaseResult{},
		Errors: []string{},
	}
}

// AddError adds a failed expectation and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Outcome renders a case result as a single line, used for scenario
// fingerprints and summaries.
func (c CaseResult) Outcome() string {
	if c.Error != "" {
		return c.Name + " [" + c.Dialect + "] error " + c.ErrorKind
	}
	return c.Name + " [" + c.Dialect + "] " + c.SQL
}
