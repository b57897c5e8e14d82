package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/TutorBookingService/internal/domain"
	userRepo "github.com/m04kA/TutorBookingService/internal/infra/storage/user"
	"github.com/m04kA/TutorBookingService/internal/service/auth/models"
)

// Service сервис регистрации и аутентификации
type Service struct {
	userRepo    UserRepository
	tutorRepo   TutorRepository
	studentRepo StudentRepository
	txManager   TransactionManager
	tokens      TokenIssuer
	bcryptCost  int
	logger      Logger
}

// NewService создает новый экземпляр сервиса аутентификации
func NewService(
	userRepo UserRepository,
	tutorRepo TutorRepository,
	studentRepo StudentRepository,
	txManager TransactionManager,
	tokens TokenIssuer,
	bcryptCost int,
	logger Logger,
) *Service {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		userRepo:    userRepo,
		tutorRepo:   tutorRepo,
		studentRepo: studentRepo,
		txManager:   txManager,
		tokens:      tokens,
		bcryptCost:  bcryptCost,
		logger:      logger,
	}
}

// Register создает пользователя и профиль, соответствующий роли
// Пользователь и профиль создаются в одной транзакции
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	s.logger.Info("Register: registering user email=%s role=%s", email, req.Role)

	role := domain.Role(req.Role)
	if !role.IsValid() {
		s.logger.Warn("Register: invalid role=%s", req.Role)
		return nil, fmt.Errorf("%w: role must be STUDENT or TUTOR", ErrInvalidInput)
	}
	if email == "" || strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: email and name are required", ErrInvalidInput)
	}
	if len(req.Password) < domain.MinPasswordLength {
		s.logger.Warn("Register: password too short for email=%s", email)
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, domain.MinPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		// bcrypt отклоняет пароли длиннее 72 байт
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: password is too long", ErrInvalidInput)
		}
		s.logger.Error("Register: failed to hash password: %v", err)
		return nil, fmt.Errorf("%w: Register - hash password: %v", ErrInternal, err)
	}

	var created *domain.User
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		user, err := s.userRepo.Create(ctx, &domain.User{
			Email:        email,
			PasswordHash: string(hash),
			Name:         strings.TrimSpace(req.Name),
			Role:         role,
		})
		if err != nil {
			return err
		}

		switch role {
		case domain.RoleTutor:
			_, err = s.tutorRepo.CreateProfile(ctx, user.ID)
		case domain.RoleStudent:
			_, err = s.studentRepo.Create(ctx, user.ID)
		}
		if err != nil {
			return err
		}

		created = user
		return nil
	})
	if err != nil {
		if errors.Is(err, userRepo.ErrEmailTaken) {
			s.logger.Warn("Register: email=%s already registered", email)
			return nil, ErrEmailTaken
		}
		s.logger.Error("Register: failed to create user email=%s: %v", email, err)
		return nil, fmt.Errorf("%w: Register - create user: %v", ErrInternal, err)
	}

	s.logger.Info("Register: user id=%d registered with role=%s", created.ID, created.Role)
	return s.issue(created)
}

// Login проверяет email и пароль и выпускает токен
// Неизвестный email и неверный пароль неразличимы для клиента
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	s.logger.Info("Login: attempt for email=%s", email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("Login: unknown email=%s", email)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: repository error for email=%s: %v", email, err)
		return nil, fmt.Errorf("%w: Login - repository error: %v", ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Login: wrong password for user id=%d", user.ID)
		return nil, ErrInvalidCredentials
	}

	s.logger.Info("Login: user id=%d logged in", user.ID)
	return s.issue(user)
}

// Me возвращает данные текущего пользователя
func (s *Service) Me(ctx context.Context, userID int64) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("Me: user id=%d not found", userID)
			return nil, ErrUserNotFound
		}
		s.logger.Error("Me: repository error for user id=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: Me - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainUser(user)
	return &resp, nil
}

func (s *Service) issue(user *domain.User) (*models.AuthResponse, error) {
	token, expiresAt, err := s.tokens.Issue(user.ID, user.Email, string(user.Role))
	if err != nil {
		s.logger.Error("issue: failed to sign token for user id=%d: %v", user.ID, err)
		return nil, fmt.Errorf("%w: issue token: %v", ErrInternal, err)
	}

	return &models.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      models.FromDomainUser(user),
	}, nil
}
