package bulk

import (
	"context"
	"github.com/freeup86/trainingpulse-sub004/internal/domain"
	"github.com/google/uuid"
	"sync"
)

var _ historyRepo = &historyRepoMock{}

type historyRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.HistoryRecord, error)
	ListFunc    func(ctx context.Context, filter domain.HistoryFilter) ([]domain.HistoryRecord, int, error)
	RecordFunc  func(ctx context.Context, rec domain.HistoryRecord) error

	calls struct {
		GetByID []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		List []struct {
			Ctx    context.Context
			Filter domain.HistoryFilter
		}
		Record []struct {
			Ctx context.Context
			Rec domain.HistoryRecord
		}
	}
	lockGetByID sync.RWMutex
	lockList    sync.RWMutex
	lockRecord  sync.RWMutex
}

func (mock *historyRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.HistoryRecord, error) {
	if mock.GetByIDFunc == nil {
		panic("historyRepoMock.GetByIDFunc: method is nil but historyRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{Ctx: ctx, Id: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *historyRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *historyRepoMock) List(ctx context.Context, filter domain.HistoryFilter) ([]domain.HistoryRecord, int, error) {
	if mock.ListFunc == nil {
		panic("historyRepoMock.ListFunc: method is nil but historyRepo.List was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Filter domain.HistoryFilter
	}{Ctx: ctx, Filter: filter}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, filter)
}

func (mock *historyRepoMock) ListCalls() []struct {
	Ctx    context.Context
	Filter domain.HistoryFilter
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *historyRepoMock) Record(ctx context.Context, rec domain.HistoryRecord) error {
	if mock.RecordFunc == nil {
		panic("historyRepoMock.RecordFunc: method is nil but historyRepo.Record was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Rec domain.HistoryRecord
	}{Ctx: ctx, Rec: rec}
	mock.lockRecord.Lock()
	mock.calls.Record = append(mock.calls.Record, callInfo)
	mock.lockRecord.Unlock()
	return mock.RecordFunc(ctx, rec)
}

func (mock *historyRepoMock) RecordCalls() []struct {
	Ctx context.Context
	Rec domain.HistoryRecord
} {
	mock.lockRecord.RLock()
	calls := mock.calls.Record
	mock.lockRecord.RUnlock()
	return calls
}
