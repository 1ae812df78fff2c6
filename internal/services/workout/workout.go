// Package workout содержит бизнес-логику записей тренировок, включая
// кеширование одиночных чтений. Все операции выполняются строго в границах
// пользователя-владельца.
package workout

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/fitforge/workout-api/internal/lib/sl"
	"github.com/fitforge/workout-api/internal/models"
)

// Repository определяет методы для работы с тренировками в хранилище.
type Repository interface {
	// CreateWorkout добавляет запись тренировки и возвращает её ID.
	CreateWorkout(ctx context.Context, rec models.WorkoutRecord) (string, error)
	// ListWorkouts возвращает страницу списка без содержимого.
	ListWorkouts(ctx context.Context, userUID string, kind *models.WorkoutKind, limit, offset int) ([]*models.WorkoutListItem, error)
	// CountWorkouts возвращает общее число записей по фильтру.
	CountWorkouts(ctx context.Context, userUID string, kind *models.WorkoutKind) (int, error)
	// ReadWorkout возвращает запись по ID в границах владельца.
	ReadWorkout(ctx context.Context, userUID, id string) (*models.WorkoutRecord, error)
	// RemoveWorkout удаляет запись в границах владельца.
	RemoveWorkout(ctx context.Context, userUID, id string) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service реализует бизнес-логику записей тренировок.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// New создает новый Service.
func New(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Ключ кеша включает владельца: чужая запись не достанется из кеша
// даже при совпадении ID.
func cacheKey(userUID, id string) string {
	return fmt.Sprintf("workout:%s:%s", userUID, id)
}

// Create сохраняет запись тренировки и возвращает её ID. Используется
// оркестратором генерации для kind=generated.
func (s *Service) Create(ctx context.Context, rec models.WorkoutRecord) (string, error) {
	id, err := s.repo.CreateWorkout(ctx, rec)
	if err != nil {
		return "", err
	}
	s.log.Info("workout record created",
		sl.UID(rec.UserUID), slog.String("id", id), slog.String("kind", string(rec.Kind)))
	return id, nil
}

// SaveTemplate сохраняет выбранный пользователем статический шаблон как
// запись тренировки. Content записывается как есть, байт в байт.
func (s *Service) SaveTemplate(ctx context.Context, userUID string, req models.SaveTemplateRequest) (*models.WorkoutRecord, error) {
	if !json.Valid(req.Content) {
		return nil, fmt.Errorf("template content is not valid JSON")
	}

	templateID := req.TemplateID
	rec := models.WorkoutRecord{
		UserUID:    userUID,
		Kind:       models.WorkoutTemplate,
		TemplateID: &templateID,
		Title:      req.Title,
		Content:    req.Content,
	}
	id, err := s.Create(ctx, rec)
	if err != nil {
		return nil, err
	}
	return s.repo.ReadWorkout(ctx, userUID, id)
}

// List возвращает страницу списка тренировок пользователя и общее число
// записей. kind — необязательный фильтр "generated"/"template".
func (s *Service) List(ctx context.Context, userUID string, kind *models.WorkoutKind, limit, offset int) ([]*models.WorkoutListItem, int, error) {
	items, err := s.repo.ListWorkouts(ctx, userUID, kind, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountWorkouts(ctx, userUID, kind)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Read возвращает запись тренировки по ID, используя кеш или репозиторий.
// Содержимое проверяется на корректность JSON при каждом чтении.
func (s *Service) Read(ctx context.Context, userUID, id string) (*models.WorkoutRecord, error) {
	var result *models.WorkoutRecord
	key := cacheKey(userUID, id)
	found, err := s.cache.Get(key, &result)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", key), sl.Err(err))
	}
	if !found || result == nil {
		result, err = s.repo.ReadWorkout(ctx, userUID, id)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(key, result, time.Hour); err != nil {
			s.log.Warn("failed to add to cache", slog.String("key", key), sl.Err(err))
		}
	}

	if !json.Valid(result.Content) {
		return nil, fmt.Errorf("workout %s: stored content is not valid JSON", id)
	}
	return result, nil
}

// Remove удаляет запись тренировки в границах владельца и инвалидирует кеш.
// Несуществующая либо чужая запись дают models.ErrWorkoutNotFound.
func (s *Service) Remove(ctx context.Context, userUID, id string) error {
	key := cacheKey(userUID, id)
	if err := s.cache.Invalidate(key); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", key), sl.Err(err))
	}

	count, err := s.repo.RemoveWorkout(ctx, userUID, id)
	if err != nil {
		return err
	}
	if count == 0 {
		return models.ErrWorkoutNotFound
	}
	return nil
}
