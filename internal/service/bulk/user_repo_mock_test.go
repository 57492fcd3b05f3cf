package bulk

import (
	"context"
	"github.com/google/uuid"
	"sync"
)

var _ userRepo = &userRepoMock{}

type userRepoMock struct {
	ExistsByIDFunc func(ctx context.Context, id uuid.UUID) (bool, error)

	calls struct {
		ExistsByID []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
	}
	lockExistsByID sync.RWMutex
}

func (mock *userRepoMock) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	if mock.ExistsByIDFunc == nil {
		panic("userRepoMock.ExistsByIDFunc: method is nil but userRepo.ExistsByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{Ctx: ctx, Id: id}
	mock.lockExistsByID.Lock()
	mock.calls.ExistsByID = append(mock.calls.ExistsByID, callInfo)
	mock.lockExistsByID.Unlock()
	return mock.ExistsByIDFunc(ctx, id)
}

func (mock *userRepoMock) ExistsByIDCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockExistsByID.RLock()
	calls := mock.calls.ExistsByID
	mock.lockExistsByID.RUnlock()
	return calls
}
