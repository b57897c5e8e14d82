package create_notification

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

// Handle POST /api/v1/notifications
// Уведомление создается для текущего пользователя
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.CreateNotificationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /notifications - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(req); err != nil {
		handlers.RespondBadRequest(w, handlers.ValidationMessage(err))
		return
	}
	req.UserID = userID

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, notifications.ErrInvalidInput) {
			handlers.RespondBadRequest(w, handlers.ValidationMessage(err))
			return
		}
		h.logger.Error("POST /notifications - Failed to create notification: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /notifications - Notification created: id=%d, user_id=%d", result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
