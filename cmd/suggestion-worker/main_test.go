package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"trip-suggestions/internal/common/config"
	"trip-suggestions/internal/common/logger"
	css "trip-suggestions/internal/workers/suggestions/clear-suggestion-cache"
	gss "trip-suggestions/internal/workers/suggestions/get-smart-suggestions"
	ld "trip-suggestions/internal/workers/suggestions/like-destination"
	sup "trip-suggestions/internal/workers/suggestions/save-user-preference"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryCoversEveryWorker(t *testing.T) {
	reg := loadRegistry(filepath.Join("..", "..", "configs", "activity-registry.json"), logger.NewTestLogger(t))
	require.NotNil(t, reg)

	for _, taskType := range []string{gss.TaskType, ld.TaskType, sup.TaskType, css.TaskType} {
		_, ok := reg.Find(taskType)
		assert.True(t, ok, taskType)
	}
}

func TestLoadRegistry_MissingFileIsTolerated(t *testing.T) {
	assert.Nil(t, loadRegistry(filepath.Join(t.TempDir(), "none.json"), logger.NewTestLogger(t)))
}

func TestWorkerConfig(t *testing.T) {
	cfg := &config.Config{Workers: map[string]config.WorkerConfig{
		gss.TaskType: {Enabled: true, MaxJobsActive: 7, Timeout: 1500},
	}}

	wc := workerConfig(cfg, gss.TaskType)
	assert.True(t, wc.Enabled)
	assert.Equal(t, 7, wc.MaxJobsActive)
	assert.Equal(t, int64(1500), wc.Timeout.Milliseconds())

	fallback := workerConfig(cfg, css.TaskType)
	assert.True(t, fallback.Enabled)
	assert.Equal(t, 5, fallback.MaxJobsActive)
}

func TestHealthEndpoint(t *testing.T) {
	mux := healthMux(nil, nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}
