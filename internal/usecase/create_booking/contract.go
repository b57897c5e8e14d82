package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/TutorBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	FindOverlapping(ctx context.Context, tutorID int64, from, to time.Time, statuses []domain.BookingStatus) ([]*domain.Booking, error)
}

// TutorRepository интерфейс репозитория репетиторов
type TutorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.TutorProfile, error)
	LockByID(ctx context.Context, id int64) error
	GetAvailability(ctx context.Context, tutorID int64) ([]domain.AvailabilitySlot, error)
}

// StudentRepository интерфейс репозитория студентов
type StudentRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.StudentProfile, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TutorLocker сериализует приём бронирований одного репетитора внутри процесса
type TutorLocker interface {
	Acquire(ctx context.Context, key int64) (release func(), err error)
}

// Notifier отправляет уведомление пользователю
type Notifier interface {
	Notify(ctx context.Context, userID int64, notificationType, title, message string) error
}

// MetricsRecorder фиксирует исходы приёма бронирований
type MetricsRecorder interface {
	RecordBookingAdmission(outcome string)
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
