package bulk

import (
	"context"
	"github.com/freeup86/trainingpulse-sub004/internal/domain"
	"github.com/google/uuid"
	"sync"
	"time"
)

var _ templateRepo = &templateRepoMock{}

type templateRepoMock struct {
	CreateFunc  func(ctx context.Context, tpl domain.BulkTemplate) (domain.BulkTemplate, error)
	DeleteFunc  func(ctx context.Context, id uuid.UUID) error
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.BulkTemplate, error)
	ListFunc    func(ctx context.Context) ([]domain.BulkTemplate, error)
	UpdateFunc  func(ctx context.Context, id uuid.UUID, params domain.BulkTemplateUpdateParams, at time.Time) (domain.BulkTemplate, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			Tpl domain.BulkTemplate
		}
		Delete []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		GetByID []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		List []struct {
			Ctx context.Context
		}
		Update []struct {
			Ctx    context.Context
			Id     uuid.UUID
			Params domain.BulkTemplateUpdateParams
			At     time.Time
		}
	}
	lockCreate  sync.RWMutex
	lockDelete  sync.RWMutex
	lockGetByID sync.RWMutex
	lockList    sync.RWMutex
	lockUpdate  sync.RWMutex
}

func (mock *templateRepoMock) Create(ctx context.Context, tpl domain.BulkTemplate) (domain.BulkTemplate, error) {
	if mock.CreateFunc == nil {
		panic("templateRepoMock.CreateFunc: method is nil but templateRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Tpl domain.BulkTemplate
	}{Ctx: ctx, Tpl: tpl}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, tpl)
}

func (mock *templateRepoMock) CreateCalls() []struct {
	Ctx context.Context
	Tpl domain.BulkTemplate
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *templateRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("templateRepoMock.DeleteFunc: method is nil but templateRepo.Delete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{Ctx: ctx, Id: id}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *templateRepoMock) DeleteCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *templateRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.BulkTemplate, error) {
	if mock.GetByIDFunc == nil {
		panic("templateRepoMock.GetByIDFunc: method is nil but templateRepo.GetByID was just called")
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

func (mock *templateRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *templateRepoMock) List(ctx context.Context) ([]domain.BulkTemplate, error) {
	if mock.ListFunc == nil {
		panic("templateRepoMock.ListFunc: method is nil but templateRepo.List was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx)
}

func (mock *templateRepoMock) ListCalls() []struct {
	Ctx context.Context
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *templateRepoMock) Update(ctx context.Context, id uuid.UUID, params domain.BulkTemplateUpdateParams, at time.Time) (domain.BulkTemplate, error) {
	if mock.UpdateFunc == nil {
		panic("templateRepoMock.UpdateFunc: method is nil but templateRepo.Update was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Id     uuid.UUID
		Params domain.BulkTemplateUpdateParams
		At     time.Time
	}{Ctx: ctx, Id: id, Params: params, At: at}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, id, params, at)
}

func (mock *templateRepoMock) UpdateCalls() []struct {
	Ctx    context.Context
	Id     uuid.UUID
	Params domain.BulkTemplateUpdateParams
	At     time.Time
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}
