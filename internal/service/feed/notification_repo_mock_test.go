package feed

import (
	"context"
	"github.com/freeup86/trainingpulse-sub004/internal/domain"
	"github.com/google/uuid"
	"sync"
)

var _ notificationRepo = &notificationRepoMock{}

type notificationRepoMock struct {
	ListUnreadFunc func(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error)

	calls struct {
		ListUnread []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Limit  int
		}
	}
	lockListUnread sync.RWMutex
}

func (mock *notificationRepoMock) ListUnread(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error) {
	if mock.ListUnreadFunc == nil {
		panic("notificationRepoMock.ListUnreadFunc: method is nil but notificationRepo.ListUnread was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		Limit  int
	}{Ctx: ctx, UserID: userID, Limit: limit}
	mock.lockListUnread.Lock()
	mock.calls.ListUnread = append(mock.calls.ListUnread, callInfo)
	mock.lockListUnread.Unlock()
	return mock.ListUnreadFunc(ctx, userID, limit)
}

func (mock *notificationRepoMock) ListUnreadCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Limit  int
} {
	mock.lockListUnread.RLock()
	calls := mock.calls.ListUnread
	mock.lockListUnread.RUnlock()
	return calls
}
