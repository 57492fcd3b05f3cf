package rest

import (
	"context"
	"github.com/freeup86/trainingpulse-sub004/internal/domain"
	"github.com/freeup86/trainingpulse-sub004/internal/service/bulk"
	"github.com/google/uuid"
	"sync"
)

var _ bulkService = &bulkServiceMock{}

type bulkServiceMock struct {
	ApplyTemplateFunc  func(ctx context.Context, id uuid.UUID) (bulk.PreviewResult, error)
	CancelFunc         func(ctx context.Context, token string) (bulk.CancelResult, error)
	CreateTemplateFunc func(ctx context.Context, input bulk.CreateTemplateInput) (domain.BulkTemplate, error)
	DeleteTemplateFunc func(ctx context.Context, id uuid.UUID) error
	ExecuteFunc        func(ctx context.Context, token string) (bulk.ExecutionResult, error)
	GetHistoryFunc     func(ctx context.Context, id uuid.UUID) (domain.HistoryRecord, error)
	GetPreviewFunc     func(ctx context.Context, token string) (bulk.PreviewStatus, error)
	GetTemplateFunc    func(ctx context.Context, id uuid.UUID) (*domain.BulkTemplate, error)
	ListHistoryFunc    func(ctx context.Context, input bulk.HistoryInput) (bulk.HistoryPage, error)
	ListTemplatesFunc  func(ctx context.Context) ([]domain.BulkTemplate, error)
	PreviewFunc        func(ctx context.Context, input bulk.BulkInput) (bulk.PreviewResult, error)
	UpdateTemplateFunc func(ctx context.Context, input bulk.UpdateTemplateInput) (domain.BulkTemplate, error)
	ValidateFunc       func(ctx context.Context, input bulk.BulkInput) (bulk.ValidationResult, error)

	calls struct {
		ApplyTemplate []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		Cancel []struct {
			Ctx   context.Context
			Token string
		}
		CreateTemplate []struct {
			Ctx   context.Context
			Input bulk.CreateTemplateInput
		}
		DeleteTemplate []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		Execute []struct {
			Ctx   context.Context
			Token string
		}
		GetHistory []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		GetPreview []struct {
			Ctx   context.Context
			Token string
		}
		GetTemplate []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		ListHistory []struct {
			Ctx   context.Context
			Input bulk.HistoryInput
		}
		ListTemplates []struct {
			Ctx context.Context
		}
		Preview []struct {
			Ctx   context.Context
			Input bulk.BulkInput
		}
		UpdateTemplate []struct {
			Ctx   context.Context
			Input bulk.UpdateTemplateInput
		}
		Validate []struct {
			Ctx   context.Context
			Input bulk.BulkInput
		}
	}
	lockApplyTemplate  sync.RWMutex
	lockCancel         sync.RWMutex
	lockCreateTemplate sync.RWMutex
	lockDeleteTemplate sync.RWMutex
	lockExecute        sync.RWMutex
	lockGetHistory     sync.RWMutex
	lockGetPreview     sync.RWMutex
	lockGetTemplate    sync.RWMutex
	lockListHistory    sync.RWMutex
	lockListTemplates  sync.RWMutex
	lockPreview        sync.RWMutex
	lockUpdateTemplate sync.RWMutex
	lockValidate       sync.RWMutex
}

func (mock *bulkServiceMock) ApplyTemplate(ctx context.Context, id uuid.UUID) (bulk.PreviewResult, error) {
	if mock.ApplyTemplateFunc == nil {
		panic("bulkServiceMock.ApplyTemplateFunc: method is nil but bulkService.ApplyTemplate was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{Ctx: ctx, Id: id}
	mock.lockApplyTemplate.Lock()
	mock.calls.ApplyTemplate = append(mock.calls.ApplyTemplate, callInfo)
	mock.lockApplyTemplate.Unlock()
	return mock.ApplyTemplateFunc(ctx, id)
}

func (mock *bulkServiceMock) ApplyTemplateCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockApplyTemplate.RLock()
	calls := mock.calls.ApplyTemplate
	mock.lockApplyTemplate.RUnlock()
	return calls
}

func (mock *bulkServiceMock) Cancel(ctx context.Context, token string) (bulk.CancelResult, error) {
	if mock.CancelFunc == nil {
		panic("bulkServiceMock.CancelFunc: method is nil but bulkService.Cancel was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Token string
	}{Ctx: ctx, Token: token}
	mock.lockCancel.Lock()
	mock.calls.Cancel = append(mock.calls.Cancel, callInfo)
	mock.lockCancel.Unlock()
	return mock.CancelFunc(ctx, token)
}

func (mock *bulkServiceMock) CancelCalls() []struct {
	Ctx   context.Context
	Token string
} {
	mock.lockCancel.RLock()
	calls := mock.calls.Cancel
	mock.lockCancel.RUnlock()
	return calls
}

func (mock *bulkServiceMock) CreateTemplate(ctx context.Context, input bulk.CreateTemplateInput) (domain.BulkTemplate, error) {
	if mock.CreateTemplateFunc == nil {
		panic("bulkServiceMock.CreateTemplateFunc: method is nil but bulkService.CreateTemplate was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input bulk.CreateTemplateInput
	}{Ctx: ctx, Input: input}
	mock.lockCreateTemplate.Lock()
	mock.calls.CreateTemplate = append(mock.calls.CreateTemplate, callInfo)
	mock.lockCreateTemplate.Unlock()
	return mock.CreateTemplateFunc(ctx, input)
}

func (mock *bulkServiceMock) CreateTemplateCalls() []struct {
	Ctx   context.Context
	Input bulk.CreateTemplateInput
} {
	mock.lockCreateTemplate.RLock()
	calls := mock.calls.CreateTemplate
	mock.lockCreateTemplate.RUnlock()
	return calls
}

func (mock *bulkServiceMock) DeleteTemplate(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteTemplateFunc == nil {
		panic("bulkServiceMock.DeleteTemplateFunc: method is nil but bulkService.DeleteTemplate was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{Ctx: ctx, Id: id}
	mock.lockDeleteTemplate.Lock()
	mock.calls.DeleteTemplate = append(mock.calls.DeleteTemplate, callInfo)
	mock.lockDeleteTemplate.Unlock()
	return mock.DeleteTemplateFunc(ctx, id)
}

func (mock *bulkServiceMock) DeleteTemplateCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockDeleteTemplate.RLock()
	calls := mock.calls.DeleteTemplate
	mock.lockDeleteTemplate.RUnlock()
	return calls
}

func (mock *bulkServiceMock) Execute(ctx context.Context, token string) (bulk.ExecutionResult, error) {
	if mock.ExecuteFunc == nil {
		panic("bulkServiceMock.ExecuteFunc: method is nil but bulkService.Execute was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Token string
	}{Ctx: ctx, Token: token}
	mock.lockExecute.Lock()
	mock.calls.Execute = append(mock.calls.Execute, callInfo)
	mock.lockExecute.Unlock()
	return mock.ExecuteFunc(ctx, token)
}

func (mock *bulkServiceMock) ExecuteCalls() []struct {
	Ctx   context.Context
	Token string
} {
	mock.lockExecute.RLock()
	calls := mock.calls.Execute
	mock.lockExecute.RUnlock()
	return calls
}

func (mock *bulkServiceMock) GetHistory(ctx context.Context, id uuid.UUID) (domain.HistoryRecord, error) {
	if mock.GetHistoryFunc == nil {
		panic("bulkServiceMock.GetHistoryFunc: method is nil but bulkService.GetHistory was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{Ctx: ctx, Id: id}
	mock.lockGetHistory.Lock()
	mock.calls.GetHistory = append(mock.calls.GetHistory, callInfo)
	mock.lockGetHistory.Unlock()
	return mock.GetHistoryFunc(ctx, id)
}

func (mock *bulkServiceMock) GetHistoryCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockGetHistory.RLock()
	calls := mock.calls.GetHistory
	mock.lockGetHistory.RUnlock()
	return calls
}

func (mock *bulkServiceMock) GetPreview(ctx context.Context, token string) (bulk.PreviewStatus, error) {
	if mock.GetPreviewFunc == nil {
		panic("bulkServiceMock.GetPreviewFunc: method is nil but bulkService.GetPreview was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Token string
	}{Ctx: ctx, Token: token}
	mock.lockGetPreview.Lock()
	mock.calls.GetPreview = append(mock.calls.GetPreview, callInfo)
	mock.lockGetPreview.Unlock()
	return mock.GetPreviewFunc(ctx, token)
}

func (mock *bulkServiceMock) GetPreviewCalls() []struct {
	Ctx   context.Context
	Token string
} {
	mock.lockGetPreview.RLock()
	calls := mock.calls.GetPreview
	mock.lockGetPreview.RUnlock()
	return calls
}

func (mock *bulkServiceMock) GetTemplate(ctx context.Context, id uuid.UUID) (*domain.BulkTemplate, error) {
	if mock.GetTemplateFunc == nil {
		panic("bulkServiceMock.GetTemplateFunc: method is nil but bulkService.GetTemplate was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{Ctx: ctx, Id: id}
	mock.lockGetTemplate.Lock()
	mock.calls.GetTemplate = append(mock.calls.GetTemplate, callInfo)
	mock.lockGetTemplate.Unlock()
	return mock.GetTemplateFunc(ctx, id)
}

func (mock *bulkServiceMock) GetTemplateCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockGetTemplate.RLock()
	calls := mock.calls.GetTemplate
	mock.lockGetTemplate.RUnlock()
	return calls
}

func (mock *bulkServiceMock) ListHistory(ctx context.Context, input bulk.HistoryInput) (bulk.HistoryPage, error) {
	if mock.ListHistoryFunc == nil {
		panic("bulkServiceMock.ListHistoryFunc: method is nil but bulkService.ListHistory was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input bulk.HistoryInput
	}{Ctx: ctx, Input: input}
	mock.lockListHistory.Lock()
	mock.calls.ListHistory = append(mock.calls.ListHistory, callInfo)
	mock.lockListHistory.Unlock()
	return mock.ListHistoryFunc(ctx, input)
}

func (mock *bulkServiceMock) ListHistoryCalls() []struct {
	Ctx   context.Context
	Input bulk.HistoryInput
} {
	mock.lockListHistory.RLock()
	calls := mock.calls.ListHistory
	mock.lockListHistory.RUnlock()
	return calls
}

func (mock *bulkServiceMock) ListTemplates(ctx context.Context) ([]domain.BulkTemplate, error) {
	if mock.ListTemplatesFunc == nil {
		panic("bulkServiceMock.ListTemplatesFunc: method is nil but bulkService.ListTemplates was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockListTemplates.Lock()
	mock.calls.ListTemplates = append(mock.calls.ListTemplates, callInfo)
	mock.lockListTemplates.Unlock()
	return mock.ListTemplatesFunc(ctx)
}

func (mock *bulkServiceMock) ListTemplatesCalls() []struct {
	Ctx context.Context
} {
	mock.lockListTemplates.RLock()
	calls := mock.calls.ListTemplates
	mock.lockListTemplates.RUnlock()
	return calls
}

func (mock *bulkServiceMock) Preview(ctx context.Context, input bulk.BulkInput) (bulk.PreviewResult, error) {
	if mock.PreviewFunc == nil {
		panic("bulkServiceMock.PreviewFunc: method is nil but bulkService.Preview was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input bulk.BulkInput
	}{Ctx: ctx, Input: input}
	mock.lockPreview.Lock()
	mock.calls.Preview = append(mock.calls.Preview, callInfo)
	mock.lockPreview.Unlock()
	return mock.PreviewFunc(ctx, input)
}

func (mock *bulkServiceMock) PreviewCalls() []struct {
	Ctx   context.Context
	Input bulk.BulkInput
} {
	mock.lockPreview.RLock()
	calls := mock.calls.Preview
	mock.lockPreview.RUnlock()
	return calls
}

func (mock *bulkServiceMock) UpdateTemplate(ctx context.Context, input bulk.UpdateTemplateInput) (domain.BulkTemplate, error) {
	if mock.UpdateTemplateFunc == nil {
		panic("bulkServiceMock.UpdateTemplateFunc: method is nil but bulkService.UpdateTemplate was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input bulk.UpdateTemplateInput
	}{Ctx: ctx, Input: input}
	mock.lockUpdateTemplate.Lock()
	mock.calls.UpdateTemplate = append(mock.calls.UpdateTemplate, callInfo)
	mock.lockUpdateTemplate.Unlock()
	return mock.UpdateTemplateFunc(ctx, input)
}

func (mock *bulkServiceMock) UpdateTemplateCalls() []struct {
	Ctx   context.Context
	Input bulk.UpdateTemplateInput
} {
	mock.lockUpdateTemplate.RLock()
	calls := mock.calls.UpdateTemplate
	mock.lockUpdateTemplate.RUnlock()
	return calls
}

func (mock *bulkServiceMock) Validate(ctx context.Context, input bulk.BulkInput) (bulk.ValidationResult, error) {
	if mock.ValidateFunc == nil {
		panic("bulkServiceMock.ValidateFunc: method is nil but bulkService.Validate was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input bulk.BulkInput
	}{Ctx: ctx, Input: input}
	mock.lockValidate.Lock()
	mock.calls.Validate = append(mock.calls.Validate, callInfo)
	mock.lockValidate.Unlock()
	return mock.ValidateFunc(ctx, input)
}

func (mock *bulkServiceMock) ValidateCalls() []struct {
	Ctx   context.Context
	Input bulk.BulkInput
} {
	mock.lockValidate.RLock()
	calls := mock.calls.Validate
	mock.lockValidate.RUnlock()
	return calls
}
