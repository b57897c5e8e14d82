package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/TutorBookingService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/TutorBookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidTutorID = "некорректный ID репетитора"
	msgMissingDate    = "дата обязательна"
	msgInvalidQuery   = "некорректные параметры: date в формате YYYY-MM-DD, duration в минутах"
	msgTutorNotFound  = "репетитор не найден"
	msgDateInPast     = "дата в прошлом"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/tutors/{tutorId}/available-slots
// Query params: date (required, YYYY-MM-DD), duration (optional, minutes)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tutorID, err := strconv.ParseInt(mux.Vars(r)["tutorId"], 10, 64)
	if err != nil || tutorID <= 0 {
		h.logger.Warn("GET /tutors/{id}/available-slots - Invalid tutor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTutorID)
		return
	}

	query := r.URL.Query()
	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /tutors/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(tutorID, dateStr, query.Get("duration"))
	if err != nil {
		h.logger.Warn("GET /tutors/{id}/available-slots - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrTutorNotFound):
			h.logger.Warn("GET /tutors/{id}/available-slots - Tutor not found: tutor_id=%d", tutorID)
			handlers.RespondNotFound(w, msgTutorNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /tutors/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, handlers.ValidationMessage(err))

		default:
			h.logger.Error("GET /tutors/{id}/available-slots - Failed to get slots: tutor_id=%d, error=%v", tutorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /tutors/{id}/available-slots - Slots retrieved successfully: tutor_id=%d, slots_count=%d",
		tutorID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
