package search_tutors

import (
	"net/http"

	"github.com/m04kA/TutorBookingService/internal/api/handlers"
)

const msgInvalidQuery = "некорректные параметры поиска"

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

// Handle GET /api/v1/tutors
// Query params: subject, maxRate, minRating, search (все опциональны)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := ToServiceRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /tutors - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery+": "+err.Error())
		return
	}

	result, err := h.service.Search(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /tutors - Failed to search tutors: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /tutors - Tutors retrieved successfully: count=%d", len(result.Tutors))
	handlers.RespondJSON(w, http.StatusOK, result)
}
