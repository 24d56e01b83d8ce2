package discount

import (
	"context"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/noah-isme/discount-function/internal/obs"
)

// Run outcomes recorded in metrics and logs.
const (
	OutcomeApplied       = "applied"
	OutcomeEmpty         = "empty"
	OutcomeNotApplicable = "not_applicable"
)

// Service runs the generator and records logs, metrics and a trace span around it.
type Service struct {
	Generator Generator
	Logger    zerolog.Logger
}

// NewService constructs a service for the given exclusion policy.
func NewService(policy ExclusionPolicy, logger zerolog.Logger) *Service {
	return &Service{Generator: Generator{Policy: policy}, Logger: logger}
}

// Run evaluates input. It never fails: input has already been decoded.
func (s *Service) Run(ctx context.Context, input Input) Result {
	_, span := otel.Tracer("discount").Start(ctx, "discount.run")
	defer span.End()

	result, resolution := s.Generator.run(input)

	outcome := OutcomeApplied
	switch {
	case resolution == nil:
		outcome = OutcomeNotApplicable
	case len(result.Operations) == 0:
		outcome = OutcomeEmpty
	}
	candidates := result.CandidateCount()
	source := ""
	if resolution != nil {
		source = string(resolution.Source)
	}

	obs.RecordDiscountRun(outcome, candidates, source)
	span.SetAttributes(
		attribute.String("discount.outcome", outcome),
		attribute.Int("discount.lines", len(input.Cart.Lines)),
		attribute.Int("discount.candidates", candidates),
		attribute.String("discount.config_source", source),
		attribute.String("discount.policy", string(s.policy())),
	)
	id := obs.InvocationIDFromContext(ctx)
	if id != "" {
		span.SetAttributes(attribute.String("discount.invocation_id", id))
	}
	s.Logger.Debug().
		Str("invocation_id", id).
		Str("outcome", outcome).
		Int("lines", len(input.Cart.Lines)).
		Int("candidates", candidates).
		Str("config_source", source).
		Msg("discount_run")
	return result
}

// PreviewConfiguration resolves a raw configuration payload the same way Run does.
func (s *Service) PreviewConfiguration(value *string) Resolution {
	var metafield *Metafield
	if value != nil {
		metafield = &Metafield{Value: *value}
	}
	return ResolveConfiguration(metafield)
}

func (s *Service) policy() ExclusionPolicy {
	if s.Generator.Policy == "" {
		return ExclusionPolicyTag
	}
	return s.Generator.Policy
}
