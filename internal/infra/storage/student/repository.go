package student

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/TutorBookingService/internal/domain"
	"github.com/m04kA/TutorBookingService/pkg/dbmetrics"
	"github.com/m04kA/TutorBookingService/pkg/psqlbuilder"
)

// Repository репозиторий профилей студентов
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает пустой профиль для пользователя с ролью STUDENT
func (r *Repository) Create(ctx context.Context, userID int64) (*domain.StudentProfile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("student_profiles").
		Columns("user_id").
		Values(userID).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	profile := &domain.StudentProfile{UserID: userID, Subjects: []string{}}
	err = executor.QueryRowContext(ctx, query, args...).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return profile, nil
}

// GetByID получает профиль студента по ID профиля
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.StudentProfile, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByUserID получает профиль студента по ID пользователя
func (r *Repository) GetByUserID(ctx context.Context, userID int64) (*domain.StudentProfile, error) {
	return r.getOne(ctx, "GetByUserID", squirrel.Eq{"user_id": userID})
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Sqlizer) (*domain.StudentProfile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "user_id", "grade", "subjects", "created_at", "updated_at").
		From("student_profiles").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var profile domain.StudentProfile
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Grade,
		pq.Array(&profile.Subjects),
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStudentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan profile: %w", ErrScanRow, op, err)
	}

	return &profile, nil
}
