// Package provider определяет провайдера генерации тренировок и две его
// реализации: детерминированную встроенную и сетевую. Реализация выбирается
// один раз при старте процесса по конфигу и передаётся по ссылке.
package provider

import (
	"context"
	"fmt"

	"github.com/fitforge/workout-api/internal/config"
	"github.com/fitforge/workout-api/internal/models"
)

// Provider порождает меню тренировки из проверенных параметров.
// Вызов может завершиться ошибкой; оркестратор не делает повторов.
type Provider interface {
	Generate(ctx context.Context, params models.GenerateParams) (*models.Menu, error)
}

// New возвращает провайдера, выбранного конфигурацией.
func New(cfg config.Generation) (Provider, error) {
	switch cfg.Provider {
	case "builtin", "":
		return NewBuiltin(), nil
	case "remote":
		return NewRemote(cfg.RemoteAPIURL, cfg.RemoteAPIKey, cfg.RemoteTimeout), nil
	default:
		return nil, fmt.Errorf("unknown generation provider: %q", cfg.Provider)
	}
}
