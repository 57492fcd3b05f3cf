package feed

import (
	"context"
	"github.com/freeup86/trainingpulse-sub004/internal/domain"
	"github.com/google/uuid"
	"sync"
)

var _ activityRepo = &activityRepoMock{}

type activityRepoMock struct {
	GetByUserFunc func(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]domain.AuditRecord, error)

	calls struct {
		GetByUser []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Limit  int
			Offset int
		}
	}
	lockGetByUser sync.RWMutex
}

func (mock *activityRepoMock) GetByUser(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]domain.AuditRecord, error) {
	if mock.GetByUserFunc == nil {
		panic("activityRepoMock.GetByUserFunc: method is nil but activityRepo.GetByUser was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		Limit  int
		Offset int
	}{Ctx: ctx, UserID: userID, Limit: limit, Offset: offset}
	mock.lockGetByUser.Lock()
	mock.calls.GetByUser = append(mock.calls.GetByUser, callInfo)
	mock.lockGetByUser.Unlock()
	return mock.GetByUserFunc(ctx, userID, limit, offset)
}

func (mock *activityRepoMock) GetByUserCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Limit  int
	Offset int
} {
	mock.lockGetByUser.RLock()
	calls := mock.calls.GetByUser
	mock.lockGetByUser.RUnlock()
	return calls
}
