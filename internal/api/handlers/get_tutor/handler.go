package get_tutor

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/TutorBookingService/internal/api/handlers"
	"github.com/m04kA/TutorBookingService/internal/service/tutors"
)

const (
	msgInvalidTutorID = "некорректный ID репетитора"
	msgTutorNotFound  = "репетитор не найден"
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

// Handle GET /api/v1/tutors/{tutorId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tutorID, err := strconv.ParseInt(mux.Vars(r)["tutorId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /tutors/{id} - Invalid tutor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTutorID)
		return
	}

	tutor, err := h.service.GetByID(r.Context(), tutorID)
	if err != nil {
		if errors.Is(err, tutors.ErrTutorNotFound) {
			h.logger.Warn("GET /tutors/{id} - Tutor not found: tutor_id=%d", tutorID)
			handlers.RespondNotFound(w, msgTutorNotFound)
			return
		}
		h.logger.Error("GET /tutors/{id} - Failed to get tutor: tutor_id=%d, error=%v", tutorID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, tutor)
}
