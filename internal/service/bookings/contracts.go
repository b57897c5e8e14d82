package bookings

import (
	"context"

	"github.com/m04kA/TutorBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
}

// TutorRepository интерфейс репозитория репетиторов
type TutorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.TutorProfile, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.TutorProfile, error)
}

// StudentRepository интерфейс репозитория студентов
type StudentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.StudentProfile, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.StudentProfile, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier отправляет уведомления участникам бронирования
type Notifier interface {
	Notify(ctx context.Context, userID int64, notificationType, title, message string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
