package models

import (
	"time"

	"github.com/m04kA/TutorBookingService/internal/domain"
)

// CreateNotificationRequest запрос на создание уведомления для текущего пользователя
type CreateNotificationRequest struct {
	UserID  int64  `json:"-"`
	Type    string `json:"type" validate:"required,max=64"`
	Title   string `json:"title" validate:"required,max=255"`
	Message string `json:"message" validate:"required"`
}

// MarkReadRequest запрос на пометку уведомления прочитанным
type MarkReadRequest struct {
	NotificationID int64 `json:"notificationId" validate:"required,gt=0"`
}

// NotificationResponse уведомление
type NotificationResponse struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// NotificationListResponse список уведомлений
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int                    `json:"unreadCount"`
}

// FromDomainNotification конвертирует domain модель в DTO
func FromDomainNotification(n *domain.Notification) *NotificationResponse {
	if n == nil {
		return nil
	}
	return &NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

// FromDomainNotificationList конвертирует список domain моделей в DTO
func FromDomainNotificationList(list []*domain.Notification) *NotificationListResponse {
	resp := &NotificationListResponse{
		Notifications: make([]NotificationResponse, 0, len(list)),
	}
	for _, n := range list {
		if n == nil {
			continue
		}
		resp.Notifications = append(resp.Notifications, *FromDomainNotification(n))
		if !n.Read {
			resp.UnreadCount++
		}
	}
	return resp
}
