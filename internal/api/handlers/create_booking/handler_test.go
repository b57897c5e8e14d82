package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TutorBookingService/internal/api/middleware"
	"github.com/m04kA/TutorBookingService/internal/domain"
	createBooking "github.com/m04kA/TutorBookingService/internal/usecase/create_booking"
)

type stubUseCase struct {
	got *createBooking.Request
	err error
}

func (s *stubUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &createBooking.Response{
		ID:        5,
		TutorID:   req.TutorID,
		StudentID: 9,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Status:    "pending",
		Subject:   "General",
	}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const validBody = `{"tutorId":1,"startTime":"2025-03-10T14:00:00Z","endTime":"2025-03-10T15:00:00Z"}`

func serve(uc *stubUseCase, body string, authenticated bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if authenticated {
		req = req.WithContext(middleware.WithUser(req.Context(), 42, domain.RoleStudent))
	}
	rec := httptest.NewRecorder()
	NewHandler(uc, nopLogger{}).Handle(rec, req)
	return rec
}

func TestHandler_Created(t *testing.T) {
	uc := &stubUseCase{}

	rec := serve(uc, validBody, true)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, int64(42), uc.got.UserID)
	assert.True(t, uc.got.StartTime.Equal(time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)))

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(5), resp.ID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "2025-03-10T15:00:00Z", resp.EndTime)
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: createBooking.ErrConflict, want: http.StatusConflict},
		{err: createBooking.ErrNotAvailable, want: http.StatusBadRequest},
		{err: fmt.Errorf("%w: spans midnight", createBooking.ErrInvalidInterval), want: http.StatusBadRequest},
		{err: createBooking.ErrStartInPast, want: http.StatusBadRequest},
		{err: createBooking.ErrTutorNotFound, want: http.StatusNotFound},
		{err: createBooking.ErrStudentProfileNotFound, want: http.StatusNotFound},
		{err: createBooking.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := serve(&stubUseCase{err: tt.err}, validBody, true)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestHandler_BadRequests(t *testing.T) {
	uc := &stubUseCase{}

	assert.Equal(t, http.StatusBadRequest, serve(uc, `{"tutorId":1}`, true).Code)
	assert.Equal(t, http.StatusBadRequest, serve(uc, `{"tutorId":0,"startTime":"2025-03-10T14:00:00Z","endTime":"2025-03-10T15:00:00Z"}`, true).Code)
	assert.Equal(t, http.StatusBadRequest, serve(uc, `{"tutorId":1,"startTime":"14:00"}`, true).Code)
	assert.Equal(t, http.StatusBadRequest, serve(uc, `not json`, true).Code)
	assert.Nil(t, uc.got)

	assert.Equal(t, http.StatusUnauthorized, serve(uc, validBody, false).Code)
}

func TestHandler_SubjectLimitMatchesUseCase(t *testing.T) {
	withSubject := func(n int) string {
		return fmt.Sprintf(`{"tutorId":1,"startTime":"2025-03-10T14:00:00Z","endTime":"2025-03-10T15:00:00Z","subject":%q}`,
			strings.Repeat("a", n))
	}

	uc := &stubUseCase{}
	assert.Equal(t, http.StatusCreated, serve(uc, withSubject(domain.MaxBookingSubjectLength), true).Code)
	require.NotNil(t, uc.got)
	assert.Len(t, *uc.got.Subject, domain.MaxBookingSubjectLength)

	uc = &stubUseCase{}
	assert.Equal(t, http.StatusBadRequest, serve(uc, withSubject(domain.MaxBookingSubjectLength+1), true).Code)
	assert.Nil(t, uc.got)
}
