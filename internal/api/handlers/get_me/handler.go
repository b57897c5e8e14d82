package get_me

import (
	"errors"
	"net/http"

	"github.com/m04kA/TutorBookingService/internal/api/handlers"
	"github.com/m04kA/TutorBookingService/internal/api/middleware"
	"github.com/m04kA/TutorBookingService/internal/service/auth"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgUserNotFound  = "пользователь не найден"
)

type Handler struct {
	service AuthService
	logger  Logger
}

func NewHandler(service AuthService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/auth/me
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	user, err := h.service.Me(r.Context(), userID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			handlers.RespondNotFound(w, msgUserNotFound)
			return
		}
		h.logger.Error("GET /auth/me - Failed to get user: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, user)
}
