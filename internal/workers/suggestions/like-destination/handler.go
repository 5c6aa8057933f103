// internal/workers/suggestions/like-destination/handler.go
package likedestination

import (
	"context"
	"encoding/json"

	"trip-suggestions/internal/common/camunda"
	apperrors "trip-suggestions/internal/common/errors"
	"trip-suggestions/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "like-destination"
)

// Liker records a like. It swallows its own failures.
type Liker interface {
	LikeDestination(ctx context.Context, userID, destinationID string)
}

type Handler struct {
	config *Config
	liker  Liker
	logger logger.Logger
}

func NewHandler(config *Config, liker Liker, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		liker:  liker,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	input, err := h.parse(job.Variables)
	if err != nil {
		stdErr := apperrors.Normalize(err)
		camunda.ThrowError(client, job, string(stdErr.Code), stdErr.Message+": "+stdErr.Details, h.logger)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output := h.execute(ctx, input)
	_ = camunda.CompleteJob(client, job, output, h.logger)
}

func (h *Handler) parse(variables string) (*Input, error) {
	result, err := inputValidator.ValidateJSON(variables)
	if err != nil {
		return nil, apperrors.NewParseError(err)
	}
	if !result.Valid {
		return nil, apperrors.NewInvalidInputError(result.Error())
	}

	var input Input
	if err := json.Unmarshal([]byte(variables), &input); err != nil {
		return nil, apperrors.NewParseError(err)
	}
	return &input, nil
}

// execute always accepts: a like that cannot be stored is logged by the
// service and must not stall the process.
func (h *Handler) execute(ctx context.Context, input *Input) *Output {
	h.liker.LikeDestination(ctx, input.UserID, input.DestinationID)
	return &Output{Accepted: true}
}

func (h *Handler) Execute(ctx context.Context, input *Input) *Output {
	return h.execute(ctx, input)
}

func (h *Handler) Parse(variables string) (*Input, error) {
	return h.parse(variables)
}
