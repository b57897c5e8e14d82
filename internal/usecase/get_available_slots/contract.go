package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/TutorBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	FindOverlapping(ctx context.Context, tutorID int64, from, to time.Time, statuses []domain.BookingStatus) ([]*domain.Booking, error)
}

// TutorRepository интерфейс репозитория репетиторов
type TutorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.TutorProfile, error)
	GetAvailability(ctx context.Context, tutorID int64) ([]domain.AvailabilitySlot, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
