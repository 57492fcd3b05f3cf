package bulk

import (
	"context"
	"github.com/freeup86/trainingpulse-sub004/internal/domain"
	"sync"
	"time"
)

var _ previewStore = &previewStoreMock{}

type previewStoreMock struct {
	CreateFunc       func(ctx context.Context, rec *domain.PreviewRecord) error
	ExpireBeforeFunc func(ctx context.Context, now time.Time) (int, error)
	GetFunc          func(ctx context.Context, token string) (*domain.PreviewRecord, error)
	PurgeBeforeFunc  func(ctx context.Context, cutoff time.Time) (int, error)
	TransitionFunc   func(ctx context.Context, token string, from domain.PreviewState, to domain.PreviewState, at time.Time) error

	calls struct {
		Create []struct {
			Ctx context.Context
			Rec *domain.PreviewRecord
		}
		ExpireBefore []struct {
			Ctx context.Context
			Now time.Time
		}
		Get []struct {
			Ctx   context.Context
			Token string
		}
		PurgeBefore []struct {
			Ctx    context.Context
			Cutoff time.Time
		}
		Transition []struct {
			Ctx   context.Context
			Token string
			From  domain.PreviewState
			To    domain.PreviewState
			At    time.Time
		}
	}
	lockCreate       sync.RWMutex
	lockExpireBefore sync.RWMutex
	lockGet          sync.RWMutex
	lockPurgeBefore  sync.RWMutex
	lockTransition   sync.RWMutex
}

func (mock *previewStoreMock) Create(ctx context.Context, rec *domain.PreviewRecord) error {
	if mock.CreateFunc == nil {
		panic("previewStoreMock.CreateFunc: method is nil but previewStore.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Rec *domain.PreviewRecord
	}{Ctx: ctx, Rec: rec}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, rec)
}

func (mock *previewStoreMock) CreateCalls() []struct {
	Ctx context.Context
	Rec *domain.PreviewRecord
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *previewStoreMock) ExpireBefore(ctx context.Context, now time.Time) (int, error) {
	if mock.ExpireBeforeFunc == nil {
		panic("previewStoreMock.ExpireBeforeFunc: method is nil but previewStore.ExpireBefore was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Now time.Time
	}{Ctx: ctx, Now: now}
	mock.lockExpireBefore.Lock()
	mock.calls.ExpireBefore = append(mock.calls.ExpireBefore, callInfo)
	mock.lockExpireBefore.Unlock()
	return mock.ExpireBeforeFunc(ctx, now)
}

func (mock *previewStoreMock) ExpireBeforeCalls() []struct {
	Ctx context.Context
	Now time.Time
} {
	mock.lockExpireBefore.RLock()
	calls := mock.calls.ExpireBefore
	mock.lockExpireBefore.RUnlock()
	return calls
}

func (mock *previewStoreMock) Get(ctx context.Context, token string) (*domain.PreviewRecord, error) {
	if mock.GetFunc == nil {
		panic("previewStoreMock.GetFunc: method is nil but previewStore.Get was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Token string
	}{Ctx: ctx, Token: token}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, token)
}

func (mock *previewStoreMock) GetCalls() []struct {
	Ctx   context.Context
	Token string
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *previewStoreMock) PurgeBefore(ctx context.Context, cutoff time.Time) (int, error) {
	if mock.PurgeBeforeFunc == nil {
		panic("previewStoreMock.PurgeBeforeFunc: method is nil but previewStore.PurgeBefore was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Cutoff time.Time
	}{Ctx: ctx, Cutoff: cutoff}
	mock.lockPurgeBefore.Lock()
	mock.calls.PurgeBefore = append(mock.calls.PurgeBefore, callInfo)
	mock.lockPurgeBefore.Unlock()
	return mock.PurgeBeforeFunc(ctx, cutoff)
}

func (mock *previewStoreMock) PurgeBeforeCalls() []struct {
	Ctx    context.Context
	Cutoff time.Time
} {
	mock.lockPurgeBefore.RLock()
	calls := mock.calls.PurgeBefore
	mock.lockPurgeBefore.RUnlock()
	return calls
}

func (mock *previewStoreMock) Transition(ctx context.Context, token string, from domain.PreviewState, to domain.PreviewState, at time.Time) error {
	if mock.TransitionFunc == nil {
		panic("previewStoreMock.TransitionFunc: method is nil but previewStore.Transition was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Token string
		From  domain.PreviewState
		To    domain.PreviewState
		At    time.Time
	}{Ctx: ctx, Token: token, From: from, To: to, At: at}
	mock.lockTransition.Lock()
	mock.calls.Transition = append(mock.calls.Transition, callInfo)
	mock.lockTransition.Unlock()
	return mock.TransitionFunc(ctx, token, from, to, at)
}

func (mock *previewStoreMock) TransitionCalls() []struct {
	Ctx   context.Context
	Token string
	From  domain.PreviewState
	To    domain.PreviewState
	At    time.Time
} {
	mock.lockTransition.RLock()
	calls := mock.calls.Transition
	mock.lockTransition.RUnlock()
	return calls
}
