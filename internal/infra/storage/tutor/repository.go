package tutor

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/TutorBookingService/internal/domain"
	"github.com/m04kA/TutorBookingService/pkg/dbmetrics"
	"github.com/m04kA/TutorBookingService/pkg/psqlbuilder"
)

var profileColumns = []string{
	"tp.id",
	"tp.user_id",
	"u.name",
	"tp.subjects",
	"tp.hourly_rate",
	"tp.bio",
	"tp.rating",
	"tp.created_at",
	"tp.updated_at",
}

// Repository репозиторий профилей репетиторов и их расписания
type Repository struct {
	db DBExecutor
}

// likeEscaper экранирует спецсимволы LIKE; в Postgres escape-символ по умолчанию - обратный слеш
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// escapeLike превращает пользовательский ввод в литерал для ILIKE
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// NewRepository создает новый экземпляр репозитория репетиторов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateProfile создает пустой профиль для пользователя с ролью TUTOR
func (r *Repository) CreateProfile(ctx context.Context, userID int64) (*domain.TutorProfile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("tutor_profiles").
		Columns("user_id").
		Values(userID).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateProfile - build insert query: %v", ErrBuildQuery, err)
	}

	profile := &domain.TutorProfile{UserID: userID, Subjects: []string{}}
	err = executor.QueryRowContext(ctx, query, args...).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateProfile - execute insert: %w", ErrExecQuery, err)
	}

	return profile, nil
}

// GetByID получает профиль по ID (без расписания)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.TutorProfile, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"tp.id": id})
}

// GetByUserID получает профиль по ID пользователя
func (r *Repository) GetByUserID(ctx context.Context, userID int64) (*domain.TutorProfile, error) {
	return r.getOne(ctx, "GetByUserID", squirrel.Eq{"tp.user_id": userID})
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Sqlizer) (*domain.TutorProfile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(profileColumns...).
		From("tutor_profiles tp").
		Join("users u ON u.id = tp.user_id").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	profile, err := scanProfile(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTutorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan profile: %w", ErrScanRow, op, err)
	}

	return profile, nil
}

// LockByID блокирует строку профиля до конца текущей транзакции
// Используется для сериализации приёма бронирований одного репетитора между инстансами
func (r *Repository) LockByID(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id").
		From("tutor_profiles").
		Where(squirrel.Eq{"id": id}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: LockByID - build select query: %v", ErrBuildQuery, err)
	}

	var lockedID int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&lockedID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrTutorNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: LockByID - execute select: %w", ErrExecQuery, err)
	}

	return nil
}

// Search ищет репетиторов по фильтру, сначала с наибольшим рейтингом
func (r *Repository) Search(ctx context.Context, filter domain.TutorSearchFilter) ([]*domain.TutorProfile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(profileColumns...).
		From("tutor_profiles tp").
		Join("users u ON u.id = tp.user_id").
		OrderBy("tp.rating DESC", "tp.id ASC")

	if filter.Subject != nil {
		selectBuilder = selectBuilder.Where(squirrel.Expr("tp.subjects @> ?", pq.Array([]string{*filter.Subject})))
	}
	if filter.MaxRate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"tp.hourly_rate": *filter.MaxRate})
	}
	if filter.MinRating != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"tp.rating": *filter.MinRating})
	}
	if filter.Search != nil {
		pattern := "%" + escapeLike(*filter.Search) + "%"
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.ILike{"u.name": pattern},
			squirrel.ILike{"tp.bio": pattern},
		})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Search - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Search - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	tutors := make([]*domain.TutorProfile, 0)
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: Search - scan row: %w", ErrScanRow, err)
		}
		tutors = append(tutors, profile)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: Search - rows error: %w", ErrScanRow, err)
	}

	return tutors, nil
}

// UpdateProfile обновляет предметы, ставку и описание
func (r *Repository) UpdateProfile(ctx context.Context, profile *domain.TutorProfile) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("tutor_profiles").
		Set("subjects", pq.Array(profile.Subjects)).
		Set("hourly_rate", profile.HourlyRate).
		Set("bio", profile.Bio).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": profile.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateProfile - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateProfile - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateProfile - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrTutorNotFound
	}

	return nil
}

// GetAvailability возвращает недельное расписание репетитора
func (r *Repository) GetAvailability(ctx context.Context, tutorID int64) ([]domain.AvailabilitySlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "tutor_id", "day_of_week", "start_time", "end_time").
		From("tutor_availability_slots").
		Where(squirrel.Eq{"tutor_id": tutorID}).
		OrderBy("day_of_week ASC", "start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAvailability - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAvailability - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]domain.AvailabilitySlot, 0)
	for rows.Next() {
		var slot domain.AvailabilitySlot
		if err := rows.Scan(&slot.ID, &slot.TutorID, &slot.DayOfWeek, &slot.StartTime, &slot.EndTime); err != nil {
			return nil, fmt.Errorf("%w: GetAvailability - scan row: %w", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAvailability - rows error: %w", ErrScanRow, err)
	}

	return slots, nil
}

// ReplaceAvailability заменяет расписание целиком
// Вызывать внутри транзакции, иначе между DELETE и INSERT расписание будет пустым
func (r *Repository) ReplaceAvailability(ctx context.Context, tutorID int64, slots []domain.AvailabilitySlot) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("tutor_availability_slots").
		Where(squirrel.Eq{"tutor_id": tutorID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceAvailability - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceAvailability - execute delete: %w", ErrExecQuery, err)
	}

	if len(slots) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("tutor_availability_slots").
		Columns("tutor_id", "day_of_week", "start_time", "end_time")
	for _, slot := range slots {
		insertBuilder = insertBuilder.Values(tutorID, slot.DayOfWeek, slot.StartTime, slot.EndTime)
	}

	query, args, err = insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceAvailability - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceAvailability - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProfile(row rowScanner) (*domain.TutorProfile, error) {
	var profile domain.TutorProfile
	err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Name,
		pq.Array(&profile.Subjects),
		&profile.HourlyRate,
		&profile.Bio,
		&profile.Rating,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if profile.Subjects == nil {
		profile.Subjects = []string{}
	}
	return &profile, nil
}
