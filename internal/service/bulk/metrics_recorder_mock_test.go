package bulk

import (
	"github.com/freeup86/trainingpulse-sub004/internal/domain"
	"sync"
	"time"
)

var _ metricsRecorder = &metricsRecorderMock{}

type metricsRecorderMock struct {
	CancellationFunc      func(result string)
	ExecutionFinishedFunc func(outcome domain.BulkOutcome, affected int, elapsed time.Duration)
	PreviewCreatedFunc    func()
	PreviewsExpiredFunc   func(n int)

	calls struct {
		Cancellation []struct {
			Result string
		}
		ExecutionFinished []struct {
			Outcome  domain.BulkOutcome
			Affected int
			Elapsed  time.Duration
		}
		PreviewCreated  []struct{}
		PreviewsExpired []struct {
			N int
		}
	}
	lockCancellation      sync.RWMutex
	lockExecutionFinished sync.RWMutex
	lockPreviewCreated    sync.RWMutex
	lockPreviewsExpired   sync.RWMutex
}

func (mock *metricsRecorderMock) Cancellation(result string) {
	if mock.CancellationFunc == nil {
		panic("metricsRecorderMock.CancellationFunc: method is nil but metricsRecorder.Cancellation was just called")
	}
	callInfo := struct {
		Result string
	}{Result: result}
	mock.lockCancellation.Lock()
	mock.calls.Cancellation = append(mock.calls.Cancellation, callInfo)
	mock.lockCancellation.Unlock()
	mock.CancellationFunc(result)
}

func (mock *metricsRecorderMock) CancellationCalls() []struct {
	Result string
} {
	mock.lockCancellation.RLock()
	calls := mock.calls.Cancellation
	mock.lockCancellation.RUnlock()
	return calls
}

func (mock *metricsRecorderMock) ExecutionFinished(outcome domain.BulkOutcome, affected int, elapsed time.Duration) {
	if mock.ExecutionFinishedFunc == nil {
		panic("metricsRecorderMock.ExecutionFinishedFunc: method is nil but metricsRecorder.ExecutionFinished was just called")
	}
	callInfo := struct {
		Outcome  domain.BulkOutcome
		Affected int
		Elapsed  time.Duration
	}{Outcome: outcome, Affected: affected, Elapsed: elapsed}
	mock.lockExecutionFinished.Lock()
	mock.calls.ExecutionFinished = append(mock.calls.ExecutionFinished, callInfo)
	mock.lockExecutionFinished.Unlock()
	mock.ExecutionFinishedFunc(outcome, affected, elapsed)
}

func (mock *metricsRecorderMock) ExecutionFinishedCalls() []struct {
	Outcome  domain.BulkOutcome
	Affected int
	Elapsed  time.Duration
} {
	mock.lockExecutionFinished.RLock()
	calls := mock.calls.ExecutionFinished
	mock.lockExecutionFinished.RUnlock()
	return calls
}

func (mock *metricsRecorderMock) PreviewCreated() {
	if mock.PreviewCreatedFunc == nil {
		panic("metricsRecorderMock.PreviewCreatedFunc: method is nil but metricsRecorder.PreviewCreated was just called")
	}
	mock.lockPreviewCreated.Lock()
	mock.calls.PreviewCreated = append(mock.calls.PreviewCreated, struct{}{})
	mock.lockPreviewCreated.Unlock()
	mock.PreviewCreatedFunc()
}

func (mock *metricsRecorderMock) PreviewCreatedCalls() []struct{} {
	mock.lockPreviewCreated.RLock()
	calls := mock.calls.PreviewCreated
	mock.lockPreviewCreated.RUnlock()
	return calls
}

func (mock *metricsRecorderMock) PreviewsExpired(n int) {
	if mock.PreviewsExpiredFunc == nil {
		panic("metricsRecorderMock.PreviewsExpiredFunc: method is nil but metricsRecorder.PreviewsExpired was just called")
	}
	callInfo := struct {
		N int
	}{N: n}
	mock.lockPreviewsExpired.Lock()
	mock.calls.PreviewsExpired = append(mock.calls.PreviewsExpired, callInfo)
	mock.lockPreviewsExpired.Unlock()
	mock.PreviewsExpiredFunc(n)
}

func (mock *metricsRecorderMock) PreviewsExpiredCalls() []struct {
	N int
} {
	mock.lockPreviewsExpired.RLock()
	calls := mock.calls.PreviewsExpired
	mock.lockPreviewsExpired.RUnlock()
	return calls
}
