package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/TutorBookingService/pkg/types"
)

// ErrInvalidInterval is returned for empty, reversed, sub-minute or multi-day intervals
var ErrInvalidInterval = errors.New("domain: invalid booking interval")

// AdmissionDecision is the outcome of checking a booking request
type AdmissionDecision string

const (
	AdmissionAccepted             AdmissionDecision = "accepted"
	AdmissionRejectedNotAvailable AdmissionDecision = "rejected_not_available"
	AdmissionRejectedConflict     AdmissionDecision = "rejected_conflict"
)

// DayInterval is a requested [Start, End) projected onto one calendar day of a location
type DayInterval struct {
	Start time.Time
	End   time.Time

	DayOfWeek  int
	StartOfDay types.TimeString
	EndOfDay   types.TimeString

	// DayStart/DayEnd bound the calendar day, used to fetch candidate bookings
	DayStart time.Time
	DayEnd   time.Time
}

// ProjectInterval converts absolute timestamps into a same-day interval in loc.
// Both ends must fall on the same calendar day; an end of exactly midnight belongs
// to the next day and is rejected.
func ProjectInterval(start, end time.Time, loc *time.Location) (DayInterval, error) {
	if loc == nil {
		loc = time.UTC
	}

	if start.IsZero() || end.IsZero() {
		return DayInterval{}, fmt.Errorf("%w: start and end are required", ErrInvalidInterval)
	}
	if !end.After(start) {
		return DayInterval{}, fmt.Errorf("%w: end must be after start", ErrInvalidInterval)
	}
	if !start.Truncate(time.Minute).Equal(start) || !end.Truncate(time.Minute).Equal(end) {
		return DayInterval{}, fmt.Errorf("%w: start and end must be whole minutes", ErrInvalidInterval)
	}

	localStart := start.In(loc)
	localEnd := end.In(loc)

	sy, sm, sd := localStart.Date()
	ey, em, ed := localEnd.Date()
	if sy != ey || sm != em || sd != ed {
		return DayInterval{}, fmt.Errorf("%w: booking must start and end on the same day", ErrInvalidInterval)
	}

	dayStart := time.Date(sy, sm, sd, 0, 0, 0, 0, loc)

	return DayInterval{
		Start:      start,
		End:        end,
		DayOfWeek:  int(localStart.Weekday()),
		StartOfDay: types.NewTimeString(localStart),
		EndOfDay:   types.NewTimeString(localEnd),
		DayStart:   dayStart,
		DayEnd:     dayStart.AddDate(0, 0, 1),
	}, nil
}

// DecideAdmission checks the interval against the tutor's slots and existing bookings.
// It has no side effects: the same inputs always yield the same decision.
func DecideAdmission(slots []AvailabilitySlot, existing []*Booking, tutorID int64, iv DayInterval) AdmissionDecision {
	if !IsWithinAvailability(slots, iv.DayOfWeek, iv.StartOfDay, iv.EndOfDay) {
		return AdmissionRejectedNotAvailable
	}
	if HasConflict(existing, tutorID, iv.Start, iv.End) {
		return AdmissionRejectedConflict
	}
	return AdmissionAccepted
}
