package provider_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitforge/workout-api/internal/config"
	"github.com/fitforge/workout-api/internal/models"
	"github.com/fitforge/workout-api/internal/provider"
)

func TestRemoteGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/workouts", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var params models.GenerateParams
		require.NoError(t, json.NewDecoder(r.Body).Decode(&params))
		assert.Equal(t, "strength", params.Goal)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.Menu{
			SchemaVersion: models.MenuSchemaVersion,
			Title:         "リモートメニュー",
			TotalTime:     30,
		})
	}))
	defer srv.Close()

	p := provider.NewRemote(srv.URL, "test-key", 5*time.Second)
	menu, err := p.Generate(context.Background(), baseParams())

	require.NoError(t, err)
	assert.Equal(t, "リモートメニュー", menu.Title)
}

func TestRemoteGenerate_FillsSchemaVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"title":"旧フォーマット"}`))
	}))
	defer srv.Close()

	p := provider.NewRemote(srv.URL, "test-key", 5*time.Second)
	menu, err := p.Generate(context.Background(), baseParams())

	require.NoError(t, err)
	assert.Equal(t, models.MenuSchemaVersion, menu.SchemaVersion)
}

func TestRemoteGenerate_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := provider.NewRemote(srv.URL, "test-key", 5*time.Second)
	_, err := p.Generate(context.Background(), baseParams())

	assert.ErrorContains(t, err, "unexpected status")
}

func TestRemoteGenerate_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json at all`))
	}))
	defer srv.Close()

	p := provider.NewRemote(srv.URL, "test-key", 5*time.Second)
	_, err := p.Generate(context.Background(), baseParams())

	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	p, err := provider.New(config.Generation{Provider: "builtin"})
	require.NoError(t, err)
	assert.IsType(t, &provider.Builtin{}, p)

	p, err = provider.New(config.Generation{Provider: "remote", RemoteAPIURL: "http://api"})
	require.NoError(t, err)
	assert.IsType(t, &provider.Remote{}, p)

	_, err = provider.New(config.Generation{Provider: "magic"})
	assert.Error(t, err)
}
