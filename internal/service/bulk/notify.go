package bulk

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/freeup86/trainingpulse-sub004/internal/domain"
)

// NotificationKind tags notifications produced by bulk executions.
const NotificationKind = "bulk.course_updated"

// buildNotifications produces one notification per interested user per
// changed course. The course owner is always told; for assignee changes the
// new and previous assignees are told too. The actor is never notified.
func buildNotifications(
	actor uuid.UUID,
	historyID uuid.UUID,
	action domain.Action,
	changes []domain.CourseChange,
	at time.Time,
) []domain.Notification {
	var out []domain.Notification
	for _, ch := range changes {
		recipients := []uuid.UUID{ch.OwnerID}
		if action.Field == domain.BulkFieldAssignee {
			recipients = appendUserID(recipients, ch.NewValue)
			recipients = appendUserID(recipients, ch.OldValue)
		}

		seen := make(map[uuid.UUID]struct{}, len(recipients))
		for _, uid := range recipients {
			if uid == uuid.Nil || uid == actor {
				continue
			}
			if _, dup := seen[uid]; dup {
				continue
			}
			seen[uid] = struct{}{}

			out = append(out, domain.Notification{
				ID:     uuid.New(),
				UserID: uid,
				Kind:   NotificationKind,
				Title:  fmt.Sprintf("Course %s changed by a bulk update", ch.Field),
				Payload: map[string]any{
					"courseId":  ch.CourseID.String(),
					"field":     string(ch.Field),
					"from":      ch.OldValue,
					"to":        ch.NewValue,
					"historyId": historyID.String(),
				},
				CreatedAt: at,
			})
		}
	}
	return out
}

func appendUserID(ids []uuid.UUID, raw *string) []uuid.UUID {
	if raw == nil {
		return ids
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return ids
	}
	return append(ids, id)
}
