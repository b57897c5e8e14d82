package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// Booking represents a tutoring session booked by a student.
// Bookings are never deleted; cancelled ones stay for history.
type Booking struct {
	ID        int64
	TutorID   int64 // tutor_profiles.id
	StudentID int64 // student_profiles.id
	StartTime time.Time
	EndTime   time.Time
	Status    BookingStatus
	Subject   string

	// Denormalized for listings, filled by read queries only
	TutorName   string
	StudentName string

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive returns true if the booking still occupies the tutor's time
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsTerminal returns true if no further status change is allowed
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCancelled || b.Status == StatusCompleted
}

// Overlaps reports whether [b.StartTime, b.EndTime) intersects [start, end)
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartTime.Before(end) && start.Before(b.EndTime)
}

// CanTransitionTo reports whether the booking may move to next.
// pending -> confirmed | cancelled; confirmed -> completed | cancelled.
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	switch b.Status {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusCancelled
	default:
		return false
	}
}

// IsValid returns true for a known status
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// HasConflict returns true if any active booking of tutorID overlaps [start, end).
// Bookings of other tutors and cancelled/completed bookings are ignored.
func HasConflict(existing []*Booking, tutorID int64, start, end time.Time) bool {
	for _, b := range existing {
		if b == nil || b.TutorID != tutorID || !b.IsActive() {
			continue
		}
		if b.Overlaps(start, end) {
			return true
		}
	}
	return false
}

// BookingsFilter filters booking listings
type BookingsFilter struct {
	TutorID   *int64
	StudentID *int64
	Status    *BookingStatus
}
