package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/TutorBookingService/internal/domain"
	userRepo "github.com/m04kA/TutorBookingService/internal/infra/storage/user"
	"github.com/m04kA/TutorBookingService/internal/service/auth/models"
	"github.com/m04kA/TutorBookingService/pkg/authtoken"
)

type memUsers struct {
	byEmail map[string]*domain.User
	nextID  int64
}

func (m *memUsers) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	if _, ok := m.byEmail[u.Email]; ok {
		return nil, fmt.Errorf("%w: Create - duplicate", userRepo.ErrEmailTaken)
	}
	m.nextID++
	u.ID = m.nextID
	u.CreatedAt = time.Now()
	m.byEmail[u.Email] = u
	return u, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return u, nil
}

func (m *memUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, userRepo.ErrUserNotFound
}

type profiles struct {
	tutors   []int64
	students []int64
	err      error
}

func (p *profiles) CreateProfile(_ context.Context, userID int64) (*domain.TutorProfile, error) {
	if p.err != nil {
		return nil, p.err
	}
	p.tutors = append(p.tutors, userID)
	return &domain.TutorProfile{UserID: userID}, nil
}

type studentProfiles struct{ p *profiles }

func (s studentProfiles) Create(_ context.Context, userID int64) (*domain.StudentProfile, error) {
	if s.p.err != nil {
		return nil, s.p.err
	}
	s.p.students = append(s.p.students, userID)
	return &domain.StudentProfile{UserID: userID}, nil
}

type fakeTx struct{ calls int }

func (f *fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService() (*Service, *memUsers, *profiles, *fakeTx, *authtoken.Issuer) {
	users := &memUsers{byEmail: make(map[string]*domain.User)}
	p := &profiles{}
	tx := &fakeTx{}
	issuer := authtoken.NewIssuer("test-secret", time.Hour)
	return NewService(users, p, studentProfiles{p}, tx, issuer, bcrypt.MinCost, nopLogger{}), users, p, tx, issuer
}

func TestService_Register(t *testing.T) {
	svc, users, p, tx, issuer := newTestService()

	resp, err := svc.Register(context.Background(), &models.RegisterRequest{
		Email: "Anna@Example.com", Password: "password1", Name: "Anna", Role: "TUTOR",
	})

	require.NoError(t, err)
	assert.Equal(t, "anna@example.com", resp.User.Email)
	assert.Equal(t, "TUTOR", resp.User.Role)
	assert.Equal(t, []int64{resp.User.ID}, p.tutors)
	assert.Empty(t, p.students)
	assert.Equal(t, 1, tx.calls)

	stored := users.byEmail["anna@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "password1", stored.PasswordHash)

	claims, err := issuer.Parse(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "TUTOR", claims.Role)
}

func TestService_Register_Student(t *testing.T) {
	svc, _, p, _, _ := newTestService()

	resp, err := svc.Register(context.Background(), &models.RegisterRequest{
		Email: "bob@example.com", Password: "password1", Name: "Bob", Role: "STUDENT",
	})

	require.NoError(t, err)
	assert.Equal(t, []int64{resp.User.ID}, p.students)
	assert.Empty(t, p.tutors)
}

func TestService_Register_Errors(t *testing.T) {
	svc, _, p, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, &models.RegisterRequest{Email: "a@b.c", Password: "password1", Name: "A", Role: "ADMIN"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Register(ctx, &models.RegisterRequest{Email: "a@b.c", Password: "short", Name: "A", Role: "STUDENT"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Register(ctx, &models.RegisterRequest{Email: "a@b.c", Password: "password1", Name: "A", Role: "STUDENT"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, &models.RegisterRequest{Email: "A@B.C", Password: "password1", Name: "A", Role: "STUDENT"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	p.err = errors.New("db down")
	_, err = svc.Register(ctx, &models.RegisterRequest{Email: "x@b.c", Password: "password1", Name: "X", Role: "TUTOR"})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_Login(t *testing.T) {
	svc, _, _, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, &models.RegisterRequest{Email: "anna@example.com", Password: "password1", Name: "Anna", Role: "STUDENT"})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, &models.LoginRequest{Email: " ANNA@example.com", Password: "password1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "Anna", resp.User.Name)

	_, err = svc.Login(ctx, &models.LoginRequest{Email: "anna@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, &models.LoginRequest{Email: "nobody@example.com", Password: "password1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Me(t *testing.T) {
	svc, _, _, _, _ := newTestService()
	ctx := context.Background()

	reg, err := svc.Register(ctx, &models.RegisterRequest{Email: "anna@example.com", Password: "password1", Name: "Anna", Role: "STUDENT"})
	require.NoError(t, err)

	me, err := svc.Me(ctx, reg.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "anna@example.com", me.Email)

	_, err = svc.Me(ctx, 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
