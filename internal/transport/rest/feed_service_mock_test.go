package rest

import (
	"context"
	"github.com/freeup86/trainingpulse-sub004/internal/domain"
	"sync"
)

var _ feedService = &feedServiceMock{}

type feedServiceMock struct {
	ActivityFunc      func(ctx context.Context, limit int, offset int) ([]domain.AuditRecord, error)
	NotificationsFunc func(ctx context.Context, limit int) ([]domain.Notification, error)

	calls struct {
		Activity []struct {
			Ctx    context.Context
			Limit  int
			Offset int
		}
		Notifications []struct {
			Ctx   context.Context
			Limit int
		}
	}
	lockActivity      sync.RWMutex
	lockNotifications sync.RWMutex
}

func (mock *feedServiceMock) Activity(ctx context.Context, limit int, offset int) ([]domain.AuditRecord, error) {
	if mock.ActivityFunc == nil {
		panic("feedServiceMock.ActivityFunc: method is nil but feedService.Activity was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Limit  int
		Offset int
	}{Ctx: ctx, Limit: limit, Offset: offset}
	mock.lockActivity.Lock()
	mock.calls.Activity = append(mock.calls.Activity, callInfo)
	mock.lockActivity.Unlock()
	return mock.ActivityFunc(ctx, limit, offset)
}

func (mock *feedServiceMock) ActivityCalls() []struct {
	Ctx    context.Context
	Limit  int
	Offset int
} {
	mock.lockActivity.RLock()
	calls := mock.calls.Activity
	mock.lockActivity.RUnlock()
	return calls
}

func (mock *feedServiceMock) Notifications(ctx context.Context, limit int) ([]domain.Notification, error) {
	if mock.NotificationsFunc == nil {
		panic("feedServiceMock.NotificationsFunc: method is nil but feedService.Notifications was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Limit int
	}{Ctx: ctx, Limit: limit}
	mock.lockNotifications.Lock()
	mock.calls.Notifications = append(mock.calls.Notifications, callInfo)
	mock.lockNotifications.Unlock()
	return mock.NotificationsFunc(ctx, limit)
}

func (mock *feedServiceMock) NotificationsCalls() []struct {
	Ctx   context.Context
	Limit int
} {
	mock.lockNotifications.RLock()
	calls := mock.calls.Notifications
	mock.lockNotifications.RUnlock()
	return calls
}
