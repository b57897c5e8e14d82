package notifications

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/TutorBookingService/internal/domain"
	notificationRepo "github.com/m04kA/TutorBookingService/internal/infra/storage/notification"
	"github.com/m04kA/TutorBookingService/internal/service/notifications/models"
)

// Service сервис уведомлений
type Service struct {
	notificationRepo NotificationRepository
	logger           Logger
}

// NewService создает новый экземпляр сервиса уведомлений
func NewService(notificationRepo NotificationRepository, logger Logger) *Service {
	return &Service{
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// List возвращает последние уведомления пользователя
func (s *Service) List(ctx context.Context, userID int64) (*models.NotificationListResponse, error) {
	s.logger.Info("List: fetching notifications for user=%d", userID)

	list, err := s.notificationRepo.ListByUser(ctx, userID, domain.NotificationsListLimit)
	if err != nil {
		s.logger.Error("List: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainNotificationList(list), nil
}

// Create создает уведомление для пользователя
func (s *Service) Create(ctx context.Context, req *models.CreateNotificationRequest) (*models.NotificationResponse, error) {
	s.logger.Info("Create: creating notification type=%s for user=%d", req.Type, req.UserID)

	if req.UserID <= 0 || strings.TrimSpace(req.Type) == "" || strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Message) == "" {
		s.logger.Warn("Create: missing required fields for user=%d", req.UserID)
		return nil, fmt.Errorf("%w: type, title and message are required", ErrInvalidInput)
	}

	created, err := s.notificationRepo.Create(ctx, &domain.Notification{
		UserID:  req.UserID,
		Type:    req.Type,
		Title:   req.Title,
		Message: req.Message,
	})
	if err != nil {
		s.logger.Error("Create: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainNotification(created), nil
}

// Notify создает системное уведомление, используется другими сервисами
func (s *Service) Notify(ctx context.Context, userID int64, notificationType, title, message string) error {
	_, err := s.Create(ctx, &models.CreateNotificationRequest{
		UserID:  userID,
		Type:    notificationType,
		Title:   title,
		Message: message,
	})
	return err
}

// MarkRead помечает уведомление прочитанным
// Пользователь может изменять только свои уведомления
func (s *Service) MarkRead(ctx context.Context, userID, notificationID int64) error {
	s.logger.Info("MarkRead: notification id=%d by user=%d", notificationID, userID)

	if notificationID <= 0 {
		return fmt.Errorf("%w: notificationId must be positive", ErrInvalidInput)
	}

	n, err := s.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, notificationRepo.ErrNotificationNotFound) {
			s.logger.Warn("MarkRead: notification id=%d not found", notificationID)
			return ErrNotificationNotFound
		}
		s.logger.Error("MarkRead: repository error for notification id=%d: %v", notificationID, err)
		return fmt.Errorf("%w: MarkRead - repository error: %v", ErrInternal, err)
	}

	if n.UserID != userID {
		s.logger.Warn("MarkRead: access denied for user=%d to notification id=%d", userID, notificationID)
		return ErrAccessDenied
	}

	if n.Read {
		return nil
	}

	if err := s.notificationRepo.MarkRead(ctx, notificationID); err != nil {
		if errors.Is(err, notificationRepo.ErrNotificationNotFound) {
			return ErrNotificationNotFound
		}
		s.logger.Error("MarkRead: repository error for notification id=%d: %v", notificationID, err)
		return fmt.Errorf("%w: MarkRead - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("MarkRead: notification id=%d marked as read", notificationID)
	return nil
}
