package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/TutorBookingService/internal/api/handlers"
	"github.com/m04kA/TutorBookingService/internal/api/middleware"
	createBooking "github.com/m04kA/TutorBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidInterval    = "некорректный интервал: начало и конец должны быть в один день, конец позже начала"
	msgStartInPast        = "занятие должно начинаться в будущем"
	msgNotAvailable       = "репетитор недоступен в выбранное время"
	msgConflict           = "выбранное время уже забронировано"
	msgTutorNotFound      = "репетитор не найден"
	msgStudentNotFound    = "профиль студента не найден"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := handlers.Validate(req); err != nil {
		h.logger.Warn("POST /bookings - Validation failed: user_id=%d, %v", userID, err)
		handlers.RespondBadRequest(w, handlers.ValidationMessage(err))
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrConflict):
			h.logger.Warn("POST /bookings - Conflict: user_id=%d, tutor_id=%d", userID, req.TutorID)
			handlers.RespondConflict(w, msgConflict)

		case errors.Is(err, createBooking.ErrNotAvailable):
			h.logger.Warn("POST /bookings - Not available: user_id=%d, tutor_id=%d", userID, req.TutorID)
			handlers.RespondBadRequest(w, msgNotAvailable)

		case errors.Is(err, createBooking.ErrInvalidInterval):
			h.logger.Warn("POST /bookings - Invalid interval: user_id=%d, %v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, createBooking.ErrStartInPast):
			h.logger.Warn("POST /bookings - Start in past: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgStartInPast)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, %v", userID, err)
			handlers.RespondBadRequest(w, handlers.ValidationMessage(err))

		case errors.Is(err, createBooking.ErrTutorNotFound):
			h.logger.Warn("POST /bookings - Tutor not found: tutor_id=%d", req.TutorID)
			handlers.RespondNotFound(w, msgTutorNotFound)

		case errors.Is(err, createBooking.ErrStudentProfileNotFound):
			h.logger.Warn("POST /bookings - Student profile not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgStudentNotFound)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, tutor_id=%d, error=%v",
				userID, req.TutorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, tutor_id=%d",
		result.ID, userID, req.TutorID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
