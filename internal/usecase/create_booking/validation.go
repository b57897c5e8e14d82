package create_booking

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/TutorBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.TutorID <= 0 {
		return fmt.Errorf("%w: tutorId must be positive", ErrInvalidInput)
	}

	if req.Subject != nil && utf8.RuneCountInString(strings.TrimSpace(*req.Subject)) > domain.MaxBookingSubjectLength {
		return fmt.Errorf("%w: subject is too long", ErrInvalidInput)
	}

	return nil
}

// projectInterval переводит запрос в интервал одного календарного дня
// Длительность не ограничивается: достаточно попадания в слот расписания
func projectInterval(req *Request, loc *time.Location) (domain.DayInterval, error) {
	iv, err := domain.ProjectInterval(req.StartTime, req.EndTime, loc)
	if err != nil {
		return domain.DayInterval{}, fmt.Errorf("%w: %v", ErrInvalidInterval, err)
	}
	return iv, nil
}

// validateNotInPast проверяет, что занятие ещё не началось
func validateNotInPast(iv domain.DayInterval, now time.Time) error {
	if !iv.Start.After(now) {
		return ErrStartInPast
	}
	return nil
}

// subjectOrDefault возвращает предмет занятия или значение по умолчанию
func subjectOrDefault(subject *string) string {
	if subject == nil || strings.TrimSpace(*subject) == "" {
		return domain.DefaultBookingSubject
	}
	return strings.TrimSpace(*subject)
}
