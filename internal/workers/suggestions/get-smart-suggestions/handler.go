// internal/workers/suggestions/get-smart-suggestions/handler.go
package getsmartsuggestions

import (
	"context"
	"encoding/json"
	"fmt"

	"trip-suggestions/internal/common/camunda"
	apperrors "trip-suggestions/internal/common/errors"
	"trip-suggestions/internal/common/logger"
	"trip-suggestions/internal/models"
	"trip-suggestions/internal/suggestions"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "get-smart-suggestions"
)

type Suggester interface {
	GetSmartSuggestions(ctx context.Context, userID string, filters models.Filters) suggestions.Result
}

type Handler struct {
	config    *Config
	suggester Suggester
	errors    *apperrors.ErrorHandler
	logger    logger.Logger
}

func NewHandler(config *Config, suggester Suggester, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		suggester: suggester,
		errors:    apperrors.NewErrorHandler(log),
		logger:    log,
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

	output, err := h.execute(ctx, input)
	if err != nil {
		h.errors.HandleJobError(ctx, client, job, err)
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
		return nil, apperrors.NewParseError(fmt.Errorf("parse input: %w", err))
	}
	return &input, nil
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	filters, err := input.Filters.Normalize()
	if err != nil {
		return nil, apperrors.NewInvalidInputError(err.Error())
	}

	result := h.suggester.GetSmartSuggestions(ctx, input.UserID, filters)
	if result.Suggestions == nil {
		result.Suggestions = []models.ScoredSuggestion{}
	}

	h.logger.Info("suggestions computed", map[string]interface{}{
		"userId":         input.UserID,
		"count":          len(result.Suggestions),
		"degraded":       result.Degraded,
		"degradedReason": result.DegradedReason,
	})

	return &Output{
		Suggestions:    result.Suggestions,
		Degraded:       result.Degraded,
		DegradedReason: result.DegradedReason,
		Count:          len(result.Suggestions),
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

// Parse validates raw job variables the way Handle does.
func (h *Handler) Parse(variables string) (*Input, error) {
	return h.parse(variables)
}
