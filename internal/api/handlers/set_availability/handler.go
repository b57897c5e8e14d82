package set_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/TutorBookingService/internal/api/handlers"
	"github.com/m04kA/TutorBookingService/internal/api/middleware"
	"github.com/m04kA/TutorBookingService/internal/service/tutors"
	"github.com/m04kA/TutorBookingService/internal/service/tutors/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgProfileNotFound    = "профиль репетитора не найден"
	msgInvalidSlot        = "некорректный слот: день 0-6, время HH:MM, начало раньше конца"
)

type Handler struct {
	service TutorService
	logger  Logger
}

func NewHandler(service TutorService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/tutors/me/availability
// Расписание заменяется целиком
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.SetAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /tutors/me/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(req); err != nil {
		h.logger.Warn("PUT /tutors/me/availability - Validation failed: user_id=%d, %v", userID, err)
		handlers.RespondBadRequest(w, handlers.ValidationMessage(err))
		return
	}

	result, err := h.service.SetAvailability(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, tutors.ErrInvalidSlot):
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, tutors.ErrInvalidInput):
			handlers.RespondBadRequest(w, handlers.ValidationMessage(err))

		case errors.Is(err, tutors.ErrTutorNotFound):
			handlers.RespondNotFound(w, msgProfileNotFound)

		default:
			h.logger.Error("PUT /tutors/me/availability - Failed to set availability: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /tutors/me/availability - Availability replaced: tutor_id=%d, slots=%d", result.TutorID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, result)
}
