package create_booking

import "errors"

var (
	// ErrTutorNotFound возвращается, когда репетитор не найден
	ErrTutorNotFound = errors.New("create_booking: tutor not found")

	// ErrStudentProfileNotFound возвращается, когда у пользователя нет профиля студента
	ErrStudentProfileNotFound = errors.New("create_booking: student profile not found")

	// ErrNotAvailable возвращается, когда интервал вне расписания репетитора
	ErrNotAvailable = errors.New("create_booking: tutor is not available at this time")

	// ErrConflict возвращается, когда интервал пересекается с активной бронью
	ErrConflict = errors.New("create_booking: time slot is already booked")

	// ErrInvalidInterval возвращается для пустого, перевёрнутого или многодневного интервала
	ErrInvalidInterval = errors.New("create_booking: invalid booking interval")

	// ErrStartInPast возвращается, когда занятие начинается в прошлом
	ErrStartInPast = errors.New("create_booking: booking must start in the future")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
