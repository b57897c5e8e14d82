package mark_notification_read

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/TutorBookingService/internal/api/middleware"
	"github.com/m04kA/TutorBookingService/internal/domain"
	"github.com/m04kA/TutorBookingService/internal/service/notifications"
)

type stubService struct {
	gotUser, gotID int64
	err            error
}

func (s *stubService) MarkRead(_ context.Context, userID, notificationID int64) error {
	s.gotUser, s.gotID = userID, notificationID
	return s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc *stubService, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/notifications/mark-read", strings.NewReader(body))
	req = req.WithContext(middleware.WithUser(req.Context(), 4, domain.RoleStudent))
	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, req)
	return rec
}

func TestHandler(t *testing.T) {
	svc := &stubService{}
	rec := serve(svc, `{"notificationId":12}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, int64(4), svc.gotUser)
	assert.Equal(t, int64(12), svc.gotID)

	assert.Equal(t, http.StatusBadRequest, serve(&stubService{}, `{"notificationId":0}`).Code)
	assert.Equal(t, http.StatusNotFound, serve(&stubService{err: notifications.ErrNotificationNotFound}, `{"notificationId":12}`).Code)
	assert.Equal(t, http.StatusForbidden, serve(&stubService{err: notifications.ErrAccessDenied}, `{"notificationId":12}`).Code)
}
