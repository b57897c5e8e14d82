package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/TutorBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.TutorID <= 0 {
		return fmt.Errorf("%w: tutorId must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.DurationMinutes < 0 {
		return fmt.Errorf("%w: duration must not be negative", ErrInvalidInput)
	}

	if req.DurationMinutes != 0 &&
		(req.DurationMinutes < domain.MinSessionMinutes || req.DurationMinutes > domain.MaxSessionMinutes) {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinSessionMinutes, domain.MaxSessionMinutes)
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом
// Верхней границы нет: бронирование на любую будущую дату тоже допустимо
func validateDate(day, now time.Time) error {
	today := startOfDay(now.In(day.Location()))

	if day.Before(today) {
		return ErrInvalidDate
	}

	return nil
}

// startOfDay обнуляет время, оставляя дату и часовой пояс
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
