package planner

import (
	"context"
	"errors"
	"testing"

	"github.com/agenda/agenda/internal/platform/apperr"
)

type stubFormatter struct {
	summary string
	err     error
	calls   int
}

func (f *stubFormatter) Format(ctx context.Context, patterns []SchedulePattern) (string, error) {
	f.calls++
	return f.summary, f.err
}

func TestPlan_FormatterSuccess(t *testing.T) {
	g, _ := newTestGenerator(fono("Ana"))
	fm := &stubFormatter{summary: "uma sugestão por semana"}
	svc := NewService(g, fm)

	res, err := svc.Plan(context.Background(), []TherapyNeed{{Specialty: "Fono", WeeklyFrequency: 1}}, Preference{}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Summary != fm.summary {
		t.Errorf("summary = %q, want %q", res.Summary, fm.summary)
	}
	if len(res.Patterns) == 0 {
		t.Error("expected patterns alongside summary")
	}
}

func TestPlan_FormatterFailureKeepsPatterns(t *testing.T) {
	g, _ := newTestGenerator(fono("Ana"))
	fm := &stubFormatter{err: apperr.Upstream("formatter unavailable", errors.New("connection refused"))}
	svc := NewService(g, fm)

	res, err := svc.Plan(context.Background(), []TherapyNeed{{Specialty: "Fono", WeeklyFrequency: 1}}, Preference{}, true)
	if err != nil {
		t.Fatalf("formatter failure must not fail the plan: %v", err)
	}
	if res.Summary != "" {
		t.Errorf("expected empty summary, got %q", res.Summary)
	}
	if len(res.Patterns) == 0 {
		t.Error("expected patterns despite formatter failure")
	}
}

func TestPlan_NoFormatRequested(t *testing.T) {
	g, _ := newTestGenerator(fono("Ana"))
	fm := &stubFormatter{summary: "ignored"}
	svc := NewService(g, fm)

	res, err := svc.Plan(context.Background(), []TherapyNeed{{Specialty: "Fono", WeeklyFrequency: 1}}, Preference{}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fm.calls != 0 {
		t.Errorf("formatter called %d times, want 0", fm.calls)
	}
	if res.Summary != "" {
		t.Errorf("unexpected summary %q", res.Summary)
	}
}
