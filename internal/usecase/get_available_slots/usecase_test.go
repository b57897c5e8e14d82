package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TutorBookingService/internal/domain"
	tutorRepo "github.com/m04kA/TutorBookingService/internal/infra/storage/tutor"
	"github.com/m04kA/TutorBookingService/pkg/types"
)

type stubTutors struct {
	slots []domain.AvailabilitySlot
	err   error
}

func (s *stubTutors) GetByID(_ context.Context, id int64) (*domain.TutorProfile, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.TutorProfile{ID: id}, nil
}

func (s *stubTutors) GetAvailability(context.Context, int64) ([]domain.AvailabilitySlot, error) {
	return s.slots, nil
}

type stubBookings struct {
	bookings []*domain.Booking
	from, to time.Time
}

func (s *stubBookings) FindOverlapping(_ context.Context, _ int64, from, to time.Time, _ []domain.BookingStatus) ([]*domain.Booking, error) {
	s.from, s.to = from, to
	return s.bookings, nil
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// 2025-03-10 понедельник
func monday(hour, minute int) time.Time {
	return time.Date(2025, 3, 10, hour, minute, 0, 0, time.UTC)
}

func newUseCase(tutors *stubTutors, bookings *stubBookings, now time.Time) *UseCase {
	uc := NewUseCase(bookings, tutors, time.UTC, 30, nopLogger{})
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func starts(slots []Slot) []types.TimeString {
	result := make([]types.TimeString, len(slots))
	for i, s := range slots {
		result[i] = s.Start
	}
	return result
}

func TestExecute_GeneratesFreeSlots(t *testing.T) {
	tutors := &stubTutors{slots: []domain.AvailabilitySlot{
		{DayOfWeek: 1, StartTime: "14:00", EndTime: "16:00"},
		{DayOfWeek: 2, StartTime: "09:00", EndTime: "12:00"},
	}}
	bookings := &stubBookings{bookings: []*domain.Booking{
		{TutorID: 1, StartTime: monday(14, 0), EndTime: monday(15, 0), Status: domain.StatusConfirmed},
		{TutorID: 1, StartTime: monday(15, 0), EndTime: monday(16, 0), Status: domain.StatusCancelled},
	}}
	uc := newUseCase(tutors, bookings, monday(8, 0))

	resp, err := uc.Execute(context.Background(), &Request{TutorID: 1, Date: monday(0, 0), DurationMinutes: 60})

	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"15:00"}, starts(resp.Slots))
	assert.True(t, resp.Slots[0].EndTime.Equal(monday(16, 0)))
	assert.True(t, bookings.from.Equal(monday(0, 0)))
	assert.True(t, bookings.to.Equal(monday(0, 0).AddDate(0, 0, 1)))
}

func TestExecute_DefaultDurationAndStep(t *testing.T) {
	tutors := &stubTutors{slots: []domain.AvailabilitySlot{{DayOfWeek: 1, StartTime: "14:00", EndTime: "16:00"}}}
	uc := newUseCase(tutors, &stubBookings{}, monday(8, 0))

	resp, err := uc.Execute(context.Background(), &Request{TutorID: 1, Date: monday(0, 0)})

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSessionMinutes, resp.DurationMinutes)
	assert.Equal(t, []types.TimeString{"14:00", "14:30", "15:00"}, starts(resp.Slots))
}

func TestExecute_DropsPastStartsToday(t *testing.T) {
	tutors := &stubTutors{slots: []domain.AvailabilitySlot{{DayOfWeek: 1, StartTime: "14:00", EndTime: "16:00"}}}
	uc := newUseCase(tutors, &stubBookings{}, monday(14, 10))

	resp, err := uc.Execute(context.Background(), &Request{TutorID: 1, Date: monday(0, 0), DurationMinutes: 30})

	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"14:30", "15:00", "15:30"}, starts(resp.Slots))
}

func TestExecute_OverlappingWindowsNotDuplicated(t *testing.T) {
	tutors := &stubTutors{slots: []domain.AvailabilitySlot{
		{DayOfWeek: 1, StartTime: "14:00", EndTime: "15:30"},
		{DayOfWeek: 1, StartTime: "14:30", EndTime: "16:00"},
	}}
	uc := newUseCase(tutors, &stubBookings{}, monday(8, 0))

	resp, err := uc.Execute(context.Background(), &Request{TutorID: 1, Date: monday(0, 0), DurationMinutes: 60})

	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"14:00", "14:30", "15:00"}, starts(resp.Slots))
}

// Ограничения на дальность даты нет, как и при создании бронирования
func TestExecute_FarFutureDate(t *testing.T) {
	tutors := &stubTutors{slots: []domain.AvailabilitySlot{{DayOfWeek: 1, StartTime: "14:00", EndTime: "15:00"}}}
	uc := newUseCase(tutors, &stubBookings{}, monday(8, 0))

	// через 29 недель, тоже понедельник
	resp, err := uc.Execute(context.Background(), &Request{TutorID: 1, Date: monday(0, 0).AddDate(0, 0, 203), DurationMinutes: 60})

	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"14:00"}, starts(resp.Slots))
}

func TestExecute_NoWindowsThatDay(t *testing.T) {
	tutors := &stubTutors{slots: []domain.AvailabilitySlot{{DayOfWeek: 3, StartTime: "14:00", EndTime: "16:00"}}}
	uc := newUseCase(tutors, &stubBookings{}, monday(8, 0))

	resp, err := uc.Execute(context.Background(), &Request{TutorID: 1, Date: monday(0, 0)})

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		tutors  *stubTutors
		req     *Request
		wantErr error
	}{
		{name: "bad tutor id", tutors: &stubTutors{}, req: &Request{Date: monday(0, 0)}, wantErr: ErrInvalidInput},
		{name: "missing date", tutors: &stubTutors{}, req: &Request{TutorID: 1}, wantErr: ErrInvalidInput},
		{name: "duration too long", tutors: &stubTutors{}, req: &Request{TutorID: 1, Date: monday(0, 0), DurationMinutes: 600}, wantErr: ErrInvalidInput},
		{name: "past date", tutors: &stubTutors{}, req: &Request{TutorID: 1, Date: monday(0, 0).AddDate(0, 0, -1)}, wantErr: ErrInvalidDate},
		{name: "unknown tutor", tutors: &stubTutors{err: tutorRepo.ErrTutorNotFound}, req: &Request{TutorID: 1, Date: monday(0, 0)}, wantErr: ErrTutorNotFound},
		{name: "storage failure", tutors: &stubTutors{err: errors.New("db down")}, req: &Request{TutorID: 1, Date: monday(0, 0)}, wantErr: ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newUseCase(tt.tutors, &stubBookings{}, monday(8, 0))
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
