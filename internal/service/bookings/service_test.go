package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TutorBookingService/internal/domain"
	bookingRepo "github.com/m04kA/TutorBookingService/internal/infra/storage/booking"
	studentRepo "github.com/m04kA/TutorBookingService/internal/infra/storage/student"
	tutorRepo "github.com/m04kA/TutorBookingService/internal/infra/storage/tutor"
	"github.com/m04kA/TutorBookingService/internal/service/bookings/models"
	"github.com/m04kA/TutorBookingService/pkg/ptr"
)

// Пользователи: 10 - репетитор (профиль 1), 20 - студент (профиль 2), 30 - другой студент (профиль 3)
var (
	tutorCaller        = models.Caller{UserID: 10, Role: domain.RoleTutor}
	studentCaller      = models.Caller{UserID: 20, Role: domain.RoleStudent}
	otherStudentCaller = models.Caller{UserID: 30, Role: domain.RoleStudent}
)

type memStore struct {
	bookings   map[int64]*domain.Booking
	lastFilter domain.BookingsFilter
	updateErr  error
}

func newMemStore() *memStore {
	start := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	return &memStore{
		bookings: map[int64]*domain.Booking{
			100: {ID: 100, TutorID: 1, StudentID: 2, StartTime: start, EndTime: start.Add(time.Hour), Status: domain.StatusPending},
		},
	}
}

func (m *memStore) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := m.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *memStore) List(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	m.lastFilter = filter
	result := make([]*domain.Booking, 0)
	for _, b := range m.bookings {
		if filter.TutorID != nil && b.TutorID != *filter.TutorID {
			continue
		}
		if filter.StudentID != nil && b.StudentID != *filter.StudentID {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (m *memStore) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	b, ok := m.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	if status == domain.StatusCancelled {
		now := time.Now()
		b.CancelledAt = &now
	}
	return nil
}

type profiles struct{}

func (profiles) GetByID(_ context.Context, id int64) (*domain.TutorProfile, error) {
	if id == 1 {
		return &domain.TutorProfile{ID: 1, UserID: 10}, nil
	}
	return nil, tutorRepo.ErrTutorNotFound
}

func (profiles) GetByUserID(_ context.Context, userID int64) (*domain.TutorProfile, error) {
	if userID == 10 {
		return &domain.TutorProfile{ID: 1, UserID: 10}, nil
	}
	return nil, tutorRepo.ErrTutorNotFound
}

type students struct{}

func (students) GetByID(_ context.Context, id int64) (*domain.StudentProfile, error) {
	switch id {
	case 2:
		return &domain.StudentProfile{ID: 2, UserID: 20}, nil
	case 3:
		return &domain.StudentProfile{ID: 3, UserID: 30}, nil
	}
	return nil, studentRepo.ErrStudentNotFound
}

func (students) GetByUserID(_ context.Context, userID int64) (*domain.StudentProfile, error) {
	switch userID {
	case 20:
		return &domain.StudentProfile{ID: 2, UserID: 20}, nil
	case 30:
		return &domain.StudentProfile{ID: 3, UserID: 30}, nil
	}
	return nil, studentRepo.ErrStudentNotFound
}

type fakeTx struct{ calls int }

func (f *fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type sent struct {
	userID int64
	kind   string
}

type fakeNotifier struct {
	sent []sent
	err  error
}

func (f *fakeNotifier) Notify(_ context.Context, userID int64, kind, _, _ string) error {
	f.sent = append(f.sent, sent{userID: userID, kind: kind})
	return f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService() (*Service, *memStore, *fakeNotifier) {
	store := newMemStore()
	notifier := &fakeNotifier{}
	return NewService(store, profiles{}, students{}, &fakeTx{}, notifier, nopLogger{}), store, notifier
}

func TestService_GetByID_Access(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	resp, err := svc.GetByID(ctx, 100, studentCaller)
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)

	_, err = svc.GetByID(ctx, 100, tutorCaller)
	require.NoError(t, err)

	_, err = svc.GetByID(ctx, 100, otherStudentCaller)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(ctx, 100, models.Caller{UserID: 20, Role: domain.RoleTutor})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(ctx, 999, studentCaller)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_List_ByRole(t *testing.T) {
	svc, store, _ := newTestService()
	ctx := context.Background()

	resp, err := svc.List(ctx, &models.ListRequest{Caller: tutorCaller})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)
	require.NotNil(t, store.lastFilter.TutorID)
	assert.Equal(t, int64(1), *store.lastFilter.TutorID)
	assert.Nil(t, store.lastFilter.StudentID)

	resp, err = svc.List(ctx, &models.ListRequest{Caller: otherStudentCaller})
	require.NoError(t, err)
	assert.Empty(t, resp.Bookings)
	assert.Equal(t, int64(3), *store.lastFilter.StudentID)

	resp, err = svc.List(ctx, &models.ListRequest{Caller: studentCaller, Status: ptr.Ptr("cancelled")})
	require.NoError(t, err)
	assert.Empty(t, resp.Bookings)
	assert.Equal(t, domain.StatusCancelled, *store.lastFilter.Status)
}

func TestService_List_Errors(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.List(ctx, &models.ListRequest{Caller: studentCaller, Status: ptr.Ptr("unknown")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.List(ctx, &models.ListRequest{Caller: models.Caller{UserID: 99, Role: domain.RoleStudent}})
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestService_UpdateStatus_TutorFlow(t *testing.T) {
	svc, store, notifier := newTestService()
	ctx := context.Background()

	resp, err := svc.UpdateStatus(ctx, 100, &models.UpdateStatusRequest{Caller: tutorCaller, Status: "confirmed"})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)

	resp, err = svc.UpdateStatus(ctx, 100, &models.UpdateStatusRequest{Caller: tutorCaller, Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)
	assert.Equal(t, domain.StatusCompleted, store.bookings[100].Status)

	// студент получает уведомление о каждой смене статуса
	require.Len(t, notifier.sent, 2)
	assert.Equal(t, int64(20), notifier.sent[0].userID)
	assert.Equal(t, domain.NotificationBookingStatusChanged, notifier.sent[0].kind)

	_, err = svc.UpdateStatus(ctx, 100, &models.UpdateStatusRequest{Caller: tutorCaller, Status: "cancelled"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestService_UpdateStatus_StudentCancel(t *testing.T) {
	svc, store, notifier := newTestService()

	resp, err := svc.UpdateStatus(context.Background(), 100, &models.UpdateStatusRequest{Caller: studentCaller, Status: "cancelled"})

	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
	assert.NotNil(t, resp.CancelledAt)
	assert.False(t, store.bookings[100].IsActive())
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, int64(10), notifier.sent[0].userID)
}

func TestService_UpdateStatus_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		id      int64
		caller  models.Caller
		status  string
		wantErr error
	}{
		{name: "student cannot confirm", id: 100, caller: studentCaller, status: "confirmed", wantErr: ErrAccessDenied},
		{name: "student cannot complete", id: 100, caller: studentCaller, status: "completed", wantErr: ErrAccessDenied},
		{name: "foreign student", id: 100, caller: otherStudentCaller, status: "cancelled", wantErr: ErrAccessDenied},
		{name: "pending is not settable", id: 100, caller: tutorCaller, status: "pending", wantErr: ErrInvalidInput},
		{name: "unknown status", id: 100, caller: tutorCaller, status: "done", wantErr: ErrInvalidInput},
		{name: "pending cannot complete", id: 100, caller: tutorCaller, status: "completed", wantErr: ErrInvalidTransition},
		{name: "not found", id: 999, caller: tutorCaller, status: "confirmed", wantErr: ErrBookingNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, notifier := newTestService()

			_, err := svc.UpdateStatus(context.Background(), tt.id, &models.UpdateStatusRequest{Caller: tt.caller, Status: tt.status})

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, domain.StatusPending, store.bookings[100].Status)
			assert.Empty(t, notifier.sent)
		})
	}
}

func TestService_UpdateStatus_NotifyFailureIgnored(t *testing.T) {
	svc, _, notifier := newTestService()
	notifier.err = errors.New("notifications down")

	resp, err := svc.UpdateStatus(context.Background(), 100, &models.UpdateStatusRequest{Caller: tutorCaller, Status: "confirmed"})

	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
}

func TestService_UpdateStatus_RepositoryError(t *testing.T) {
	svc, store, _ := newTestService()
	store.updateErr = errors.New("db down")

	_, err := svc.UpdateStatus(context.Background(), 100, &models.UpdateStatusRequest{Caller: tutorCaller, Status: "confirmed"})

	assert.ErrorIs(t, err, ErrInternal)
}
