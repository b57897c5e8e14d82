package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	DefaultSessionMinutes  = 60
	MinSessionMinutes      = 15  // bounds the slot listing duration only
	MaxSessionMinutes      = 480 // 8 hours
	MaxAvailabilitySlots   = 100
	MaxSubjects            = 20
	MaxBioLength           = 2000
	MaxHourlyRate          = 10000
	MinPasswordLength      = 8
	NotificationsListLimit = 10
	DefaultBookingSubject  = "General"
)

// MaxBookingSubjectLength matches bookings.subject VARCHAR(255) and the
// max=255 validate tag on the booking request
const MaxBookingSubjectLength = 255

// ActiveStatuses статусы, занимающие время репетитора
// Только они участвуют в проверке пересечений
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// AllStatuses все допустимые статусы бронирования
var AllStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCancelled,
	StatusCompleted,
}
