package bulk

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/freeup86/trainingpulse-sub004/internal/domain"
	"github.com/freeup86/trainingpulse-sub004/pkg/ctxutil"
)

// CreateTemplate stores a named criteria and action pair.
func (s *Service) CreateTemplate(ctx context.Context, input CreateTemplateInput) (domain.BulkTemplate, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.BulkTemplate{}, domain.ErrUnauthorized
	}

	cr, action, err := input.Validate()
	if err != nil {
		return domain.BulkTemplate{}, err
	}

	now := s.now()
	tpl := domain.BulkTemplate{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(input.Name),
		Description: trimOrNil(input.Description),
		Criteria:    cr,
		Action:      action,
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	var created domain.BulkTemplate
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var createErr error
		created, createErr = s.templates.Create(txCtx, tpl)
		if createErr != nil {
			return fmt.Errorf("create template: %w", createErr)
		}

		if err := s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeBulkTemplate,
			EntityID:   &created.ID,
			Action:     domain.AuditActionCreate,
			Changes: map[string]any{
				"name": map[string]any{"new": created.Name},
			},
		}); err != nil {
			return fmt.Errorf("audit log: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.BulkTemplate{}, err
	}

	s.log.InfoContext(ctx, "bulk template created",
		slog.String("user_id", userID.String()),
		slog.String("template_id", created.ID.String()),
		slog.String("name", created.Name),
	)

	return created, nil
}

// GetTemplate returns a template by ID.
func (s *Service) GetTemplate(ctx context.Context, id uuid.UUID) (*domain.BulkTemplate, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}
	tpl, err := s.templates.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get template: %w", err)
	}
	return tpl, nil
}

// ListTemplates returns all templates ordered by name.
func (s *Service) ListTemplates(ctx context.Context) ([]domain.BulkTemplate, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}
	tpls, err := s.templates.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return tpls, nil
}

// UpdateTemplate changes the provided fields of a template owned by the
// caller. Admins may update any template.
func (s *Service) UpdateTemplate(ctx context.Context, input UpdateTemplateInput) (domain.BulkTemplate, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.BulkTemplate{}, domain.ErrUnauthorized
	}

	params, err := input.Validate()
	if err != nil {
		return domain.BulkTemplate{}, err
	}

	var updated domain.BulkTemplate
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		old, err := s.templates.GetByID(txCtx, input.TemplateID)
		if err != nil {
			return fmt.Errorf("get template: %w", err)
		}
		if old.CreatedBy != userID && !ctxutil.IsAdminCtx(ctx) {
			return domain.ErrForbidden
		}

		updated, err = s.templates.Update(txCtx, input.TemplateID, params, s.now())
		if err != nil {
			return fmt.Errorf("update template: %w", err)
		}

		if changes := buildTemplateChanges(old, &updated); len(changes) > 0 {
			if err := s.audit.Log(txCtx, domain.AuditRecord{
				UserID:     userID,
				EntityType: domain.EntityTypeBulkTemplate,
				EntityID:   &updated.ID,
				Action:     domain.AuditActionUpdate,
				Changes:    changes,
			}); err != nil {
				return fmt.Errorf("audit log: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return domain.BulkTemplate{}, err
	}

	s.log.InfoContext(ctx, "bulk template updated",
		slog.String("user_id", userID.String()),
		slog.String("template_id", updated.ID.String()),
	)

	return updated, nil
}

// DeleteTemplate removes a template owned by the caller. Admins may delete
// any template.
func (s *Service) DeleteTemplate(ctx context.Context, id uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		tpl, err := s.templates.GetByID(txCtx, id)
		if err != nil {
			return fmt.Errorf("get template: %w", err)
		}
		if tpl.CreatedBy != userID && !ctxutil.IsAdminCtx(ctx) {
			return domain.ErrForbidden
		}

		if err := s.templates.Delete(txCtx, id); err != nil {
			return fmt.Errorf("delete template: %w", err)
		}

		if err := s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeBulkTemplate,
			EntityID:   &id,
			Action:     domain.AuditActionDelete,
			Changes: map[string]any{
				"name": map[string]any{"old": tpl.Name},
			},
		}); err != nil {
			return fmt.Errorf("audit log: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "bulk template deleted",
		slog.String("user_id", userID.String()),
		slog.String("template_id", id.String()),
	)
	return nil
}

// ApplyTemplate previews the template's stored criteria and action. The
// resulting preview records the template it came from.
func (s *Service) ApplyTemplate(ctx context.Context, id uuid.UUID) (PreviewResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return PreviewResult{}, domain.ErrUnauthorized
	}

	tpl, err := s.templates.GetByID(ctx, id)
	if err != nil {
		return PreviewResult{}, fmt.Errorf("get template: %w", err)
	}
	if tpl.Criteria.IsEmpty() {
		return PreviewResult{}, domain.NewValidationError("criteria", "at least one predicate is required")
	}

	templateID := tpl.ID
	return s.preview(ctx, userID, tpl.Criteria, tpl.Action, &templateID)
}

func buildTemplateChanges(old, updated *domain.BulkTemplate) map[string]any {
	changes := make(map[string]any)
	if old.Name != updated.Name {
		changes["name"] = map[string]any{"old": old.Name, "new": updated.Name}
	}
	if derefString(old.Description) != derefString(updated.Description) {
		changes["description"] = map[string]any{"old": old.Description, "new": updated.Description}
	}
	if !equalCriteria(old.Criteria, updated.Criteria) {
		changes["criteria"] = map[string]any{"old": old.Criteria, "new": updated.Criteria}
	}
	if old.Action.Field != updated.Action.Field || derefString(old.Action.Value) != derefString(updated.Action.Value) ||
		(old.Action.Value == nil) != (updated.Action.Value == nil) {
		changes["action"] = map[string]any{"old": old.Action, "new": updated.Action}
	}
	return changes
}

func equalCriteria(a, b domain.Criteria) bool {
	if (a.Status == nil) != (b.Status == nil) || (a.Status != nil && *a.Status != *b.Status) {
		return false
	}
	if (a.Priority == nil) != (b.Priority == nil) || (a.Priority != nil && *a.Priority != *b.Priority) {
		return false
	}
	if (a.OwnerID == nil) != (b.OwnerID == nil) || (a.OwnerID != nil && *a.OwnerID != *b.OwnerID) {
		return false
	}
	if len(a.IDs) != len(b.IDs) {
		return false
	}
	for i := range a.IDs {
		if a.IDs[i] != b.IDs[i] {
			return false
		}
	}
	if (a.DateRange == nil) != (b.DateRange == nil) {
		return false
	}
	if a.DateRange != nil {
		if a.DateRange.Field != b.DateRange.Field ||
			!equalTime(a.DateRange.From, b.DateRange.From) || !equalTime(a.DateRange.To, b.DateRange.To) {
			return false
		}
	}
	return true
}

func equalTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// trimOrNil trims whitespace. Returns nil if result is empty.
func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
