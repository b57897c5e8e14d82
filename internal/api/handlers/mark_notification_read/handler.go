package mark_notification_read

import (
	"errors"
	"net/http"

	"github.com/m04kA/TutorBookingService/internal/api/handlers"
	"github.com/m04kA/TutorBookingService/internal/api/middleware"
	"github.com/m04kA/TutorBookingService/internal/service/notifications"
	"github.com/m04kA/TutorBookingService/internal/service/notifications/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "уведомление не найдено"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	service NotificationService
	logger  Logger
}

func NewHandler(service NotificationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/notifications/mark-read
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.MarkReadRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /notifications/mark-read - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(req); err != nil {
		handlers.RespondBadRequest(w, handlers.ValidationMessage(err))
		return
	}

	err := h.service.MarkRead(r.Context(), userID, req.NotificationID)
	if err != nil {
		switch {
		case errors.Is(err, notifications.ErrNotificationNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, notifications.ErrAccessDenied):
			h.logger.Warn("POST /notifications/mark-read - Access denied: notification_id=%d, user_id=%d",
				req.NotificationID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /notifications/mark-read - Failed to mark notification: id=%d, error=%v",
				req.NotificationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
