// internal/workers/suggestions/clear-suggestion-cache/handler.go
package clearsuggestioncache

import (
	"context"
	"time"

	"trip-suggestions/internal/common/camunda"
	"trip-suggestions/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "clear-suggestion-cache"
)

type Clearer interface {
	ClearCache(ctx context.Context)
}

type Handler struct {
	config  *Config
	clearer Clearer
	logger  logger.Logger
	now     func() time.Time
}

func NewHandler(config *Config, clearer Clearer, log logger.Logger) *Handler {
	return &Handler{
		config:  config,
		clearer: clearer,
		logger:  log.WithFields(map[string]interface{}{"taskType": TaskType}),
		now:     time.Now,
	}
}

// Handle ignores the job variables; the task takes no input.
func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	_ = camunda.CompleteJob(client, job, h.execute(ctx), h.logger)
}

func (h *Handler) execute(ctx context.Context) *Output {
	h.clearer.ClearCache(ctx)
	h.logger.Info("suggestion caches cleared", nil)
	return &Output{Cleared: true, ClearedAt: h.now().UTC()}
}

func (h *Handler) Execute(ctx context.Context) *Output {
	return h.execute(ctx)
}
