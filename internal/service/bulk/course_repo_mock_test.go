package bulk

import (
	"context"
	"github.com/freeup86/trainingpulse-sub004/internal/domain"
	"github.com/google/uuid"
	"sync"
	"time"
)

var _ courseRepo = &courseRepoMock{}

type courseRepoMock struct {
	ApplyChangeFunc func(ctx context.Context, ids []uuid.UUID, action domain.Action, at time.Time) ([]domain.CourseChange, error)
	GetByIDsFunc    func(ctx context.Context, ids []uuid.UUID) ([]domain.Course, error)
	ListFunc        func(ctx context.Context, filter domain.CourseListFilter) ([]domain.Course, int, error)
	MatchIDsFunc    func(ctx context.Context, cr domain.Criteria, opts domain.MatchOptions) ([]uuid.UUID, error)

	calls struct {
		ApplyChange []struct {
			Ctx    context.Context
			Ids    []uuid.UUID
			Action domain.Action
			At     time.Time
		}
		GetByIDs []struct {
			Ctx context.Context
			Ids []uuid.UUID
		}
		List []struct {
			Ctx    context.Context
			Filter domain.CourseListFilter
		}
		MatchIDs []struct {
			Ctx  context.Context
			Cr   domain.Criteria
			Opts domain.MatchOptions
		}
	}
	lockApplyChange sync.RWMutex
	lockGetByIDs    sync.RWMutex
	lockList        sync.RWMutex
	lockMatchIDs    sync.RWMutex
}

func (mock *courseRepoMock) ApplyChange(ctx context.Context, ids []uuid.UUID, action domain.Action, at time.Time) ([]domain.CourseChange, error) {
	if mock.ApplyChangeFunc == nil {
		panic("courseRepoMock.ApplyChangeFunc: method is nil but courseRepo.ApplyChange was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Ids    []uuid.UUID
		Action domain.Action
		At     time.Time
	}{Ctx: ctx, Ids: ids, Action: action, At: at}
	mock.lockApplyChange.Lock()
	mock.calls.ApplyChange = append(mock.calls.ApplyChange, callInfo)
	mock.lockApplyChange.Unlock()
	return mock.ApplyChangeFunc(ctx, ids, action, at)
}

func (mock *courseRepoMock) ApplyChangeCalls() []struct {
	Ctx    context.Context
	Ids    []uuid.UUID
	Action domain.Action
	At     time.Time
} {
	mock.lockApplyChange.RLock()
	calls := mock.calls.ApplyChange
	mock.lockApplyChange.RUnlock()
	return calls
}

func (mock *courseRepoMock) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Course, error) {
	if mock.GetByIDsFunc == nil {
		panic("courseRepoMock.GetByIDsFunc: method is nil but courseRepo.GetByIDs was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Ids []uuid.UUID
	}{Ctx: ctx, Ids: ids}
	mock.lockGetByIDs.Lock()
	mock.calls.GetByIDs = append(mock.calls.GetByIDs, callInfo)
	mock.lockGetByIDs.Unlock()
	return mock.GetByIDsFunc(ctx, ids)
}

func (mock *courseRepoMock) GetByIDsCalls() []struct {
	Ctx context.Context
	Ids []uuid.UUID
} {
	mock.lockGetByIDs.RLock()
	calls := mock.calls.GetByIDs
	mock.lockGetByIDs.RUnlock()
	return calls
}

func (mock *courseRepoMock) List(ctx context.Context, filter domain.CourseListFilter) ([]domain.Course, int, error) {
	if mock.ListFunc == nil {
		panic("courseRepoMock.ListFunc: method is nil but courseRepo.List was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Filter domain.CourseListFilter
	}{Ctx: ctx, Filter: filter}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, filter)
}

func (mock *courseRepoMock) ListCalls() []struct {
	Ctx    context.Context
	Filter domain.CourseListFilter
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *courseRepoMock) MatchIDs(ctx context.Context, cr domain.Criteria, opts domain.MatchOptions) ([]uuid.UUID, error) {
	if mock.MatchIDsFunc == nil {
		panic("courseRepoMock.MatchIDsFunc: method is nil but courseRepo.MatchIDs was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Cr   domain.Criteria
		Opts domain.MatchOptions
	}{Ctx: ctx, Cr: cr, Opts: opts}
	mock.lockMatchIDs.Lock()
	mock.calls.MatchIDs = append(mock.calls.MatchIDs, callInfo)
	mock.lockMatchIDs.Unlock()
	return mock.MatchIDsFunc(ctx, cr, opts)
}

func (mock *courseRepoMock) MatchIDsCalls() []struct {
	Ctx  context.Context
	Cr   domain.Criteria
	Opts domain.MatchOptions
} {
	mock.lockMatchIDs.RLock()
	calls := mock.calls.MatchIDs
	mock.lockMatchIDs.RUnlock()
	return calls
}
