package tutor

import "errors"

var (
	// ErrTutorNotFound возвращается, когда профиль репетитора не найден
	ErrTutorNotFound = errors.New("tutor.repository: tutor not found")

	ErrBuildQuery = errors.New("tutor.repository: failed to build query")
	ErrExecQuery  = errors.New("tutor.repository: failed to execute query")
	ErrScanRow    = errors.New("tutor.repository: failed to scan row")
)
