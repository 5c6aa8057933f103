// internal/workers/suggestions/save-user-preference/handler.go
package saveuserpreference

import (
	"context"
	"encoding/json"

	"trip-suggestions/internal/common/camunda"
	apperrors "trip-suggestions/internal/common/errors"
	"trip-suggestions/internal/common/logger"
	"trip-suggestions/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "save-user-preference"
)

type Saver interface {
	SaveUserPreference(ctx context.Context, pref models.DestinationPreference)
}

type Handler struct {
	config *Config
	saver  Saver
	logger logger.Logger
}

func NewHandler(config *Config, saver Saver, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		saver:  saver,
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
		h.throw(client, job, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, input)
	if err != nil {
		h.throw(client, job, err)
		return
	}

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

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	pref, err := input.toPreference()
	if err != nil {
		return nil, apperrors.NewInvalidInputError(err.Error())
	}

	h.saver.SaveUserPreference(ctx, pref)
	return &Output{Accepted: true}, nil
}

func (h *Handler) throw(client worker.JobClient, job entities.Job, err error) {
	stdErr := apperrors.Normalize(err)
	camunda.ThrowError(client, job, string(stdErr.Code), stdErr.Message+": "+stdErr.Details, h.logger)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

func (h *Handler) Parse(variables string) (*Input, error) {
	return h.parse(variables)
}
