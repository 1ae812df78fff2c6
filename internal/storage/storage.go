// Package storage реализует хранилище данных на основе PostgreSQL
// для пользователей, журнала тикетов, состояний лимитов генерации
// и записей тренировок. Все запросы к тренировкам и журналу строго
// ограничены идентификатором пользователя-владельца.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/fitforge/workout-api/internal/models"
)

// Storage инкапсулирует соединение с базой данных PostgreSQL.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// ===== USER METHODS =====

// CreateUser вставляет нового анонимного пользователя и возвращает его.
func (s *Storage) CreateUser(ctx context.Context) (*models.User, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	user := models.User{UID: uuid.NewString()}
	query := `INSERT INTO users (uid) VALUES ($1) RETURNING created_at`
	if err := s.DB.QueryRowContext(ctx, query, user.UID).Scan(&user.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &user, nil
}

// ReadUser возвращает пользователя по идентификатору.
// Если пользователя нет, возвращает models.ErrUserNotFound.
func (s *Storage) ReadUser(ctx context.Context, uid string) (*models.User, error) {
	const op = "storage.ReadUser"

	var user models.User
	query := `SELECT uid, created_at FROM users WHERE uid = $1`
	err := s.DB.QueryRowContext(ctx, query, uid).Scan(&user.UID, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &user, nil
}

// ===== LEDGER METHODS =====

// CreateLedgerEntry вставляет новую запись журнала тикетов и возвращает её ID.
// Записи журнала никогда не обновляются и не удаляются.
func (s *Storage) CreateLedgerEntry(ctx context.Context, entry models.LedgerEntry) (string, error) {
	const op = "storage.CreateLedgerEntry"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	id := uuid.NewString()
	query := `INSERT INTO ticket_ledger (id, user_uid, kind, amount, description, reference_id)
			  VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := s.DB.ExecContext(ctx, query,
		id, entry.UserUID, entry.Kind, entry.Amount, entry.Description, entry.ReferenceID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// SumLedgerEntries возвращает баланс тикетов пользователя: сумму полей
// amount всех его записей. Для пользователя без записей возвращает 0.
func (s *Storage) SumLedgerEntries(ctx context.Context, userUID string) (int, error) {
	const op = "storage.SumLedgerEntries"

	var sum int
	query := `SELECT COALESCE(SUM(amount), 0) FROM ticket_ledger WHERE user_uid = $1`
	if err := s.DB.QueryRowContext(ctx, query, userUID).Scan(&sum); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return sum, nil
}

// ListLedgerEntries возвращает последние записи журнала пользователя,
// от новых к старым.
func (s *Storage) ListLedgerEntries(ctx context.Context, userUID string, limit int) ([]*models.LedgerEntry, error) {
	const op = "storage.ListLedgerEntries"

	query := `SELECT id, user_uid, kind, amount, description, reference_id, created_at
			  FROM ticket_ledger
			  WHERE user_uid = $1
			  ORDER BY created_at DESC
			  LIMIT $2`
	rows, err := s.DB.QueryContext(ctx, query, userUID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var entries []*models.LedgerEntry
	for rows.Next() {
		var entry models.LedgerEntry
		if err := rows.Scan(&entry.ID, &entry.UserUID, &entry.Kind, &entry.Amount,
			&entry.Description, &entry.ReferenceID, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return entries, nil
}

// ===== RATE LIMIT METHODS =====

// EnsureRateLimit лениво создаёт состояние лимита при первом обращении
// и возвращает актуальное состояние.
func (s *Storage) EnsureRateLimit(ctx context.Context, userUID string) (*models.RateLimitState, error) {
	const op = "storage.EnsureRateLimit"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	insert := `INSERT INTO rate_limits (user_uid) VALUES ($1)
			   ON CONFLICT (user_uid) DO NOTHING`
	if _, err := s.DB.ExecContext(ctx, insert, userUID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var state models.RateLimitState
	query := `SELECT user_uid, daily_gen_count, last_reset_at, last_gen_at
			  FROM rate_limits WHERE user_uid = $1`
	err := s.DB.QueryRowContext(ctx, query, userUID).Scan(
		&state.UserUID, &state.DailyGenCount, &state.LastResetAt, &state.LastGenAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &state, nil
}

// ResetRateLimit обнуляет дневной счётчик и продвигает момент сброса.
func (s *Storage) ResetRateLimit(ctx context.Context, userUID string, now time.Time) error {
	const op = "storage.ResetRateLimit"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE rate_limits SET daily_gen_count = 0, last_reset_at = $2 WHERE user_uid = $1`
	if _, err := s.DB.ExecContext(ctx, query, userUID, now); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// IncrementRateLimit увеличивает дневной счётчик на единицу и запоминает
// момент последней генерации.
func (s *Storage) IncrementRateLimit(ctx context.Context, userUID string, now time.Time) error {
	const op = "storage.IncrementRateLimit"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE rate_limits
			  SET daily_gen_count = daily_gen_count + 1, last_gen_at = $2
			  WHERE user_uid = $1`
	if _, err := s.DB.ExecContext(ctx, query, userUID, now); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ===== WORKOUT METHODS =====

// CreateWorkout вставляет новую запись тренировки и возвращает её ID.
func (s *Storage) CreateWorkout(ctx context.Context, rec models.WorkoutRecord) (string, error) {
	const op = "storage.CreateWorkout"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	id := uuid.NewString()
	var params *string
	if rec.Params != nil {
		p := string(rec.Params)
		params = &p
	}
	query := `INSERT INTO workouts (id, user_uid, kind, template_id, title, content, params)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := s.DB.ExecContext(ctx, query,
		id, rec.UserUID, rec.Kind, rec.TemplateID, rec.Title, string(rec.Content), params)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// ListWorkouts возвращает страницу списка тренировок пользователя,
// от новых к старым, без содержимого. kind — необязательный фильтр.
func (s *Storage) ListWorkouts(ctx context.Context, userUID string, kind *models.WorkoutKind, limit, offset int) ([]*models.WorkoutListItem, error) {
	const op = "storage.ListWorkouts"

	query := `SELECT id, kind, template_id, title, created_at, updated_at
			  FROM workouts
			  WHERE user_uid = $1 AND ($2::text IS NULL OR kind = $2)
			  ORDER BY created_at DESC
			  LIMIT $3 OFFSET $4`
	rows, err := s.DB.QueryContext(ctx, query, userUID, kind, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var items []*models.WorkoutListItem
	for rows.Next() {
		var item models.WorkoutListItem
		if err := rows.Scan(&item.ID, &item.Kind, &item.TemplateID, &item.Title,
			&item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return items, nil
}

// CountWorkouts возвращает общее число тренировок пользователя по фильтру.
func (s *Storage) CountWorkouts(ctx context.Context, userUID string, kind *models.WorkoutKind) (int, error) {
	const op = "storage.CountWorkouts"

	var total int
	query := `SELECT COUNT(*) FROM workouts
			  WHERE user_uid = $1 AND ($2::text IS NULL OR kind = $2)`
	if err := s.DB.QueryRowContext(ctx, query, userUID, kind).Scan(&total); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}

// ReadWorkout возвращает запись тренировки по ID в границах владельца.
// Чужая либо несуществующая запись дают одинаковый models.ErrWorkoutNotFound.
func (s *Storage) ReadWorkout(ctx context.Context, userUID, id string) (*models.WorkoutRecord, error) {
	const op = "storage.ReadWorkout"

	var (
		rec     models.WorkoutRecord
		content string
		params  *string
	)
	query := `SELECT id, user_uid, kind, template_id, title, content, params, created_at, updated_at
			  FROM workouts
			  WHERE id = $1 AND user_uid = $2`
	err := s.DB.QueryRowContext(ctx, query, id, userUID).Scan(
		&rec.ID, &rec.UserUID, &rec.Kind, &rec.TemplateID, &rec.Title,
		&content, &params, &rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrWorkoutNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	rec.Content = []byte(content)
	if params != nil {
		rec.Params = []byte(*params)
	}
	return &rec, nil
}

// RemoveWorkout удаляет запись тренировки в границах владельца и возвращает
// количество удалённых строк.
func (s *Storage) RemoveWorkout(ctx context.Context, userUID, id string) (int, error) {
	const op = "storage.RemoveWorkout"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM workouts WHERE id = $1 AND user_uid = $2`
	result, err := s.DB.ExecContext(ctx, query, id, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
