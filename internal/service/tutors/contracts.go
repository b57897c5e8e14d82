package tutors

import (
	"context"

	"github.com/m04kA/TutorBookingService/internal/domain"
)

// TutorRepository интерфейс репозитория репетиторов
type TutorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.TutorProfile, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.TutorProfile, error)
	Search(ctx context.Context, filter domain.TutorSearchFilter) ([]*domain.TutorProfile, error)
	UpdateProfile(ctx context.Context, profile *domain.TutorProfile) error
	GetAvailability(ctx context.Context, tutorID int64) ([]domain.AvailabilitySlot, error)
	ReplaceAvailability(ctx context.Context, tutorID int64, slots []domain.AvailabilitySlot) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
