package rest

import (
	"context"
	"github.com/freeup86/trainingpulse-sub004/internal/domain"
	"github.com/freeup86/trainingpulse-sub004/internal/service/bulk"
	"github.com/google/uuid"
	"sync"
)

var _ courseLister = &courseListerMock{}

type courseListerMock struct {
	CourseActivityFunc func(ctx context.Context, courseID uuid.UUID, limit int) ([]domain.AuditRecord, error)
	ListCoursesFunc    func(ctx context.Context, input bulk.CourseListInput) (bulk.CoursePage, error)

	calls struct {
		CourseActivity []struct {
			Ctx      context.Context
			CourseID uuid.UUID
			Limit    int
		}
		ListCourses []struct {
			Ctx   context.Context
			Input bulk.CourseListInput
		}
	}
	lockCourseActivity sync.RWMutex
	lockListCourses    sync.RWMutex
}

func (mock *courseListerMock) CourseActivity(ctx context.Context, courseID uuid.UUID, limit int) ([]domain.AuditRecord, error) {
	if mock.CourseActivityFunc == nil {
		panic("courseListerMock.CourseActivityFunc: method is nil but courseLister.CourseActivity was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		CourseID uuid.UUID
		Limit    int
	}{Ctx: ctx, CourseID: courseID, Limit: limit}
	mock.lockCourseActivity.Lock()
	mock.calls.CourseActivity = append(mock.calls.CourseActivity, callInfo)
	mock.lockCourseActivity.Unlock()
	return mock.CourseActivityFunc(ctx, courseID, limit)
}

func (mock *courseListerMock) CourseActivityCalls() []struct {
	Ctx      context.Context
	CourseID uuid.UUID
	Limit    int
} {
	mock.lockCourseActivity.RLock()
	calls := mock.calls.CourseActivity
	mock.lockCourseActivity.RUnlock()
	return calls
}

func (mock *courseListerMock) ListCourses(ctx context.Context, input bulk.CourseListInput) (bulk.CoursePage, error) {
	if mock.ListCoursesFunc == nil {
		panic("courseListerMock.ListCoursesFunc: method is nil but courseLister.ListCourses was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input bulk.CourseListInput
	}{Ctx: ctx, Input: input}
	mock.lockListCourses.Lock()
	mock.calls.ListCourses = append(mock.calls.ListCourses, callInfo)
	mock.lockListCourses.Unlock()
	return mock.ListCoursesFunc(ctx, input)
}

func (mock *courseListerMock) ListCoursesCalls() []struct {
	Ctx   context.Context
	Input bulk.CourseListInput
} {
	mock.lockListCourses.RLock()
	calls := mock.calls.ListCourses
	mock.lockListCourses.RUnlock()
	return calls
}
