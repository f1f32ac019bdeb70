package layoutcopy

import (
	"errors"
	"testing"
)

func TestReportCounts(t *testing.T) {
	r := NewReport()
	r.Applied("topMargin")
	r.Applied("bottomMargin")
	r.Skipped("mirrorMargins")
	r.Failed("gutter", errors.New("unsupported unit"))

	if got := r.AppliedCount(); got != 2 {
		t.Errorf("AppliedCount() = %d, want 2", got)
	}
	if got := r.SkippedCount(); got != 1 {
		t.Errorf("SkippedCount() = %d, want 1", got)
	}
	if got := r.FailedCount(); got != 1 {
		t.Errorf("FailedCount() = %d, want 1", got)
	}

	failures := r.Failures()
	if len(failures) != 1 || failures[0].Name != "gutter" {
		t.Errorf("Failures() = %v, want single gutter failure", failures)
	}

	if got, want := r.String(), "2 applied, 1 skipped, 1 failed"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestReportMerge(t *testing.T) {
	a := NewReport()
	a.Applied("enabled")
	b := NewReport()
	b.Failed("artStyle", errors.New("no art styles"))

	a.Merge(b)
	a.Merge(nil)

	if got := len(a.Outcomes()); got != 2 {
		t.Errorf("merged outcome count = %d, want 2", got)
	}
	if got := a.FailedCount(); got != 1 {
		t.Errorf("merged FailedCount() = %d, want 1", got)
	}
}

func TestOutcomeString(t *testing.T) {
	tests := []struct {
		outcome Outcome
		want    string
	}{
		{OutcomeApplied, "applied"},
		{OutcomeSkipped, "skipped"},
		{OutcomeFailed, "failed"},
		{Outcome(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.outcome.String(); got != tt.want {
			t.Errorf("Outcome(%d).String() = %q, want %q", int(tt.outcome), got, tt.want)
		}
	}
}
