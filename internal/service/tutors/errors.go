package tutors

import "errors"

var (
	// ErrTutorNotFound возвращается, когда репетитор не найден
	ErrTutorNotFound = errors.New("tutors: tutor not found")

	// ErrInvalidSlot возвращается при некорректном слоте расписания
	ErrInvalidSlot = errors.New("tutors: invalid availability slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("tutors: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("tutors: internal error")
)
