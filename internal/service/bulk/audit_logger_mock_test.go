package bulk

import (
	"context"
	"github.com/freeup86/trainingpulse-sub004/internal/domain"
	"github.com/google/uuid"
	"sync"
)

var _ auditLogger = &auditLoggerMock{}

type auditLoggerMock struct {
	GetByEntityFunc func(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID, limit int) ([]domain.AuditRecord, error)
	LogFunc         func(ctx context.Context, record domain.AuditRecord) error
	LogBatchFunc    func(ctx context.Context, records []domain.AuditRecord) error

	calls struct {
		GetByEntity []struct {
			Ctx        context.Context
			EntityType domain.EntityType
			EntityID   uuid.UUID
			Limit      int
		}
		Log []struct {
			Ctx    context.Context
			Record domain.AuditRecord
		}
		LogBatch []struct {
			Ctx     context.Context
			Records []domain.AuditRecord
		}
	}
	lockGetByEntity sync.RWMutex
	lockLog         sync.RWMutex
	lockLogBatch    sync.RWMutex
}

func (mock *auditLoggerMock) GetByEntity(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID, limit int) ([]domain.AuditRecord, error) {
	if mock.GetByEntityFunc == nil {
		panic("auditLoggerMock.GetByEntityFunc: method is nil but auditLogger.GetByEntity was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		EntityType domain.EntityType
		EntityID   uuid.UUID
		Limit      int
	}{Ctx: ctx, EntityType: entityType, EntityID: entityID, Limit: limit}
	mock.lockGetByEntity.Lock()
	mock.calls.GetByEntity = append(mock.calls.GetByEntity, callInfo)
	mock.lockGetByEntity.Unlock()
	return mock.GetByEntityFunc(ctx, entityType, entityID, limit)
}

func (mock *auditLoggerMock) GetByEntityCalls() []struct {
	Ctx        context.Context
	EntityType domain.EntityType
	EntityID   uuid.UUID
	Limit      int
} {
	mock.lockGetByEntity.RLock()
	calls := mock.calls.GetByEntity
	mock.lockGetByEntity.RUnlock()
	return calls
}

func (mock *auditLoggerMock) Log(ctx context.Context, record domain.AuditRecord) error {
	if mock.LogFunc == nil {
		panic("auditLoggerMock.LogFunc: method is nil but auditLogger.Log was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Record domain.AuditRecord
	}{Ctx: ctx, Record: record}
	mock.lockLog.Lock()
	mock.calls.Log = append(mock.calls.Log, callInfo)
	mock.lockLog.Unlock()
	return mock.LogFunc(ctx, record)
}

func (mock *auditLoggerMock) LogCalls() []struct {
	Ctx    context.Context
	Record domain.AuditRecord
} {
	mock.lockLog.RLock()
	calls := mock.calls.Log
	mock.lockLog.RUnlock()
	return calls
}

func (mock *auditLoggerMock) LogBatch(ctx context.Context, records []domain.AuditRecord) error {
	if mock.LogBatchFunc == nil {
		panic("auditLoggerMock.LogBatchFunc: method is nil but auditLogger.LogBatch was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		Records []domain.AuditRecord
	}{Ctx: ctx, Records: records}
	mock.lockLogBatch.Lock()
	mock.calls.LogBatch = append(mock.calls.LogBatch, callInfo)
	mock.lockLogBatch.Unlock()
	return mock.LogBatchFunc(ctx, records)
}

func (mock *auditLoggerMock) LogBatchCalls() []struct {
	Ctx     context.Context
	Records []domain.AuditRecord
} {
	mock.lockLogBatch.RLock()
	calls := mock.calls.LogBatch
	mock.lockLogBatch.RUnlock()
	return calls
}
