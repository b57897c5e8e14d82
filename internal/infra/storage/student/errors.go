package student

import "errors"

var (
	// ErrStudentNotFound возвращается, когда профиль студента не найден
	ErrStudentNotFound = errors.New("student.repository: student profile not found")

	ErrBuildQuery = errors.New("student.repository: failed to build query")
	ErrExecQuery  = errors.New("student.repository: failed to execute query")
	ErrScanRow    = errors.New("student.repository: failed to scan row")
)
