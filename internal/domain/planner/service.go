package planner

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Service runs pattern generation and, when asked, the external prose
// formatting step.
type Service struct {
	generator *Generator
	formatter Formatter
}

func NewService(generator *Generator, formatter Formatter) *Service {
	return &Service{generator: generator, formatter: formatter}
}

// Result carries the generated patterns plus the optional prose summary.
type Result struct {
	Patterns []SchedulePattern `json:"patterns"`
	Summary  string            `json:"summary,omitempty"`
}

// Plan generates patterns and optionally formats them. A formatter failure
// is logged and swallowed: the patterns are still the answer.
func (s *Service) Plan(ctx context.Context, needs []TherapyNeed, prefs Preference, format bool) (*Result, error) {
	patterns, err := s.generator.Generate(ctx, needs, prefs)
	if err != nil {
		return nil, err
	}

	res := &Result{Patterns: patterns}
	if format && s.formatter != nil && len(patterns) > 0 {
		summary, err := s.formatter.Format(ctx, patterns)
		if err != nil {
			log.Warn().Err(err).Msg("pattern formatting failed, returning raw patterns")
		} else {
			res.Summary = summary
		}
	}
	return res, nil
}
