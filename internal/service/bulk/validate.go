package bulk

import (
	"context"

	"github.com/freeup86/trainingpulse-sub004/internal/domain"
	"github.com/freeup86/trainingpulse-sub004/pkg/ctxutil"
)

// Validate checks a criteria and action pair without touching storage.
func (s *Service) Validate(ctx context.Context, input BulkInput) (ValidationResult, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return ValidationResult{}, domain.ErrUnauthorized
	}

	cr, action, err := input.Validate()
	if err != nil {
		return ValidationResult{}, err
	}
	return ValidationResult{Criteria: cr, Action: action}, nil
}
