package layoutcopy

import "fmt"

// Outcome classifies the result of a single best-effort copy step.
// Copies of page-setup fields, border sides and header/footer slots never
// abort their enclosing loop; each one lands in a Report instead.
type Outcome int

const (
	OutcomeApplied Outcome = iota
	OutcomeSkipped
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// FieldOutcome is the recorded result of one field, side or slot copy
type FieldOutcome struct {
	Name    string
	Outcome Outcome
	Err     error
}

// Report collects field outcomes for one copy operation
type Report struct {
	outcomes []FieldOutcome
}

func NewReport() *Report {
	return &Report{}
}

func (r *Report) Applied(name string) {
	r.outcomes = append(r.outcomes, FieldOutcome{Name: name, Outcome: OutcomeApplied})
}

func (r *Report) Skipped(name string) {
	r.outcomes = append(r.outcomes, FieldOutcome{Name: name, Outcome: OutcomeSkipped})
}

func (r *Report) Failed(name string, err error) {
	r.outcomes = append(r.outcomes, FieldOutcome{Name: name, Outcome: OutcomeFailed, Err: err})
}

// Merge appends all outcomes from other
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.outcomes = append(r.outcomes, other.outcomes...)
}

// Outcomes returns the recorded outcomes in order
func (r *Report) Outcomes() []FieldOutcome {
	return r.outcomes
}

// AppliedCount returns how many outcomes were applied
func (r *Report) AppliedCount() int {
	return r.count(OutcomeApplied)
}

// SkippedCount returns how many outcomes were skipped
func (r *Report) SkippedCount() int {
	return r.count(OutcomeSkipped)
}

// FailedCount returns how many outcomes failed
func (r *Report) FailedCount() int {
	return r.count(OutcomeFailed)
}

// Failures returns only the failed outcomes
func (r *Report) Failures() []FieldOutcome {
	var failed []FieldOutcome
	for _, o := range r.outcomes {
		if o.Outcome == OutcomeFailed {
			failed = append(failed, o)
		}
	}
	return failed
}

func (r *Report) count(outcome Outcome) int {
	n := 0
	for _, o := range r.outcomes {
		if o.Outcome == outcome {
			n++
		}
	}
	return n
}

func (r *Report) String() string {
	return fmt.Sprintf("%d applied, %d skipped, %d failed",
		r.AppliedCount(), r.SkippedCount(), r.FailedCount())
}
