package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/fitforge/workout-api/internal/models"
)

// Remote — сетевой провайдер генерации с тем же контрактом, что и Builtin.
// Оркестратор таймаутов не навязывает, поэтому клиент несёт собственный.
type Remote struct {
	apiURL     string
	apiKey     string
	httpClient *http.Client
}

// NewRemote создаёт клиента внешнего API генерации.
func NewRemote(apiURL, apiKey string, timeout time.Duration) *Remote {
	return &Remote{
		apiURL:     apiURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Generate отправляет параметры внешнему API и разбирает меню из ответа.
func (r *Remote) Generate(ctx context.Context, params models.GenerateParams) (*models.Menu, error) {
	const op = "provider.Remote.Generate"

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(params); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.apiURL+"/v1/workouts", &buf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("%s: unexpected status: %s", op, resp.Status)
	}

	var menu models.Menu
	if err := json.NewDecoder(resp.Body).Decode(&menu); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if menu.SchemaVersion == 0 {
		menu.SchemaVersion = models.MenuSchemaVersion
	}
	return &menu, nil
}
