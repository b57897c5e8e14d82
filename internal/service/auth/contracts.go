package auth

import (
	"context"
	"time"

	"github.com/m04kA/TutorBookingService/internal/domain"
)

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// TutorRepository создает профиль репетитора при регистрации
type TutorRepository interface {
	CreateProfile(ctx context.Context, userID int64) (*domain.TutorProfile, error)
}

// StudentRepository создает профиль студента при регистрации
type StudentRepository interface {
	Create(ctx context.Context, userID int64) (*domain.StudentProfile, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TokenIssuer выпускает JWT токены
type TokenIssuer interface {
	Issue(userID int64, email, role string) (string, time.Time, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
