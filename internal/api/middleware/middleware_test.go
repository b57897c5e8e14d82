package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TutorBookingService/internal/domain"
	"github.com/m04kA/TutorBookingService/pkg/authtoken"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func whoami(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserID(r.Context())
		require.True(t, ok)
		role, ok := GetRole(r.Context())
		require.True(t, ok)
		w.Header().Set("X-User", string(role))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte{byte('0' + userID)})
	}
}

func TestAuth(t *testing.T) {
	issuer := authtoken.NewIssuer("secret", time.Hour)
	token, _, err := issuer.Issue(7, "anna@example.com", "TUTOR")
	require.NoError(t, err)

	handler := Auth(issuer)(whoami(t))

	tests := []struct {
		name     string
		setup    func(r *http.Request)
		wantCode int
	}{
		{name: "bearer header", setup: func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }, wantCode: http.StatusOK},
		{name: "cookie", setup: func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "token", Value: token}) }, wantCode: http.StatusOK},
		{name: "missing", setup: func(r *http.Request) {}, wantCode: http.StatusUnauthorized},
		{name: "wrong scheme", setup: func(r *http.Request) { r.Header.Set("Authorization", "Basic "+token) }, wantCode: http.StatusUnauthorized},
		{name: "garbage", setup: func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, wantCode: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.setup(req)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode == http.StatusOK {
				assert.Equal(t, "TUTOR", rec.Header().Get("X-User"))
				assert.Equal(t, "7", rec.Body.String())
			}
		})
	}
}

func TestAuth_ForeignSecret(t *testing.T) {
	token, _, err := authtoken.NewIssuer("other", time.Hour).Issue(7, "a@b.c", "TUTOR")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	Auth(authtoken.NewIssuer("secret", time.Hour))(whoami(t)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	handler := RequireRole(domain.RoleTutor)(ok)

	req := httptest.NewRequest(http.MethodPut, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req.WithContext(WithUser(req.Context(), 1, domain.RoleStudent)))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req.WithContext(WithUser(req.Context(), 1, domain.RoleTutor)))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

type observed struct {
	method, path, status string
}

type fakeMetrics struct{ calls []observed }

func (f *fakeMetrics) ObserveHTTPRequest(method, path, status string, _ float64) {
	f.calls = append(f.calls, observed{method: method, path: path, status: status})
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := &fakeMetrics{}
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/bookings/{bookingId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/bookings/42", nil))

	require.Len(t, m.calls, 1)
	assert.Equal(t, observed{method: "GET", path: "/bookings/{bookingId}", status: "404"}, m.calls[0])
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID(nopLogger{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))

	const given = "6f1c7a52-2f3c-4a1e-9a57-0c2d1b9f6d11"
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", given)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, given, seen)
}

func TestCORS_Preflight(t *testing.T) {
	handler := CORS([]string{"https://app.example.com"}).Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/bookings", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}
