package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, 3, 10, hour, minute, 0, 0, time.UTC)
}

func booking(tutorID int64, status BookingStatus, startH, startM, endH, endM int) *Booking {
	return &Booking{
		TutorID:   tutorID,
		StartTime: at(startH, startM),
		EndTime:   at(endH, endM),
		Status:    status,
	}
}

func TestHasConflict(t *testing.T) {
	existing := []*Booking{
		booking(1, StatusConfirmed, 10, 0, 11, 0),
		booking(1, StatusPending, 13, 0, 14, 0),
		booking(1, StatusCancelled, 15, 0, 16, 0),
		booking(1, StatusCompleted, 17, 0, 18, 0),
		booking(2, StatusConfirmed, 8, 0, 9, 0),
	}

	tests := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{name: "inside confirmed", start: at(10, 15), end: at(10, 45), want: true},
		{name: "covers pending", start: at(12, 30), end: at(14, 30), want: true},
		{name: "partial overlap at start", start: at(9, 30), end: at(10, 1), want: true},
		{name: "touching end is free", start: at(11, 0), end: at(12, 0), want: false},
		{name: "touching start is free", start: at(9, 0), end: at(10, 0), want: false},
		{name: "cancelled never conflicts", start: at(15, 0), end: at(16, 0), want: false},
		{name: "completed never conflicts", start: at(17, 0), end: at(18, 0), want: false},
		{name: "other tutor ignored", start: at(8, 0), end: at(9, 0), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasConflict(existing, 1, tt.start, tt.end))
		})
	}
}

func TestHasConflict_SkipsNil(t *testing.T) {
	assert.False(t, HasConflict([]*Booking{nil}, 1, at(10, 0), at(11, 0)))
}

func TestBooking_CanTransitionTo(t *testing.T) {
	pending := &Booking{Status: StatusPending}
	assert.True(t, pending.CanTransitionTo(StatusConfirmed))
	assert.True(t, pending.CanTransitionTo(StatusCancelled))
	assert.False(t, pending.CanTransitionTo(StatusCompleted))

	confirmed := &Booking{Status: StatusConfirmed}
	assert.True(t, confirmed.CanTransitionTo(StatusCompleted))
	assert.True(t, confirmed.CanTransitionTo(StatusCancelled))
	assert.False(t, confirmed.CanTransitionTo(StatusPending))

	for _, terminal := range []BookingStatus{StatusCancelled, StatusCompleted} {
		b := &Booking{Status: terminal}
		assert.True(t, b.IsTerminal())
		for _, next := range AllStatuses {
			assert.False(t, b.CanTransitionTo(next))
		}
	}
}

func TestBookingStatus_IsValid(t *testing.T) {
	for _, s := range AllStatuses {
		assert.True(t, s.IsValid())
	}
	assert.False(t, BookingStatus("no_show").IsValid())
}
