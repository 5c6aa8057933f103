// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"time"

	"trip-suggestions/internal/common/logger"
	"trip-suggestions/internal/common/metrics"
	"trip-suggestions/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// commandTimeout bounds the complete/throw round trip to the gateway.
const commandTimeout = 10 * time.Second

type WorkerConfig struct {
	Enabled       bool
	MaxJobsActive int
	Timeout       time.Duration
}

// StartWorker opens a job worker for taskType. It returns nil when the worker
// is disabled.
func StartWorker(client zbc.Client, taskType string, cfg WorkerConfig, handler worker.JobHandler, obs *observability.Observability, log logger.Logger) worker.JobWorker {
	log = log.WithFields(map[string]interface{}{"taskType": taskType})
	if !cfg.Enabled {
		log.Info("worker disabled", nil)
		return nil
	}

	w := client.NewJobWorker().
		JobType(taskType).
		Handler(Instrument(taskType, handler, obs)).
		MaxJobsActive(cfg.MaxJobsActive).
		Timeout(cfg.Timeout).
		Open()

	log.Info("worker started", map[string]interface{}{
		"maxJobsActive": cfg.MaxJobsActive,
		"timeout_ms":    cfg.Timeout.Milliseconds(),
	})
	return w
}

// Instrument wraps a handler with the active gauge and duration metrics.
func Instrument(taskType string, handler worker.JobHandler, obs *observability.Observability) worker.JobHandler {
	return func(client worker.JobClient, job entities.Job) {
		start := time.Now()
		metrics.WorkerJobsActive.WithLabelValues(taskType).Inc()
		defer func() {
			metrics.WorkerJobsActive.WithLabelValues(taskType).Dec()
			d := time.Since(start)
			metrics.WorkerJobDuration.WithLabelValues(taskType).Observe(d.Seconds())
			obs.RecordJobDuration(context.Background(), taskType, d, "handled")
		}()
		handler(client, job)
	}
}

// CompleteJob sends the output as the job's result variables.
func CompleteJob(client worker.JobClient, job entities.Job, output interface{}, log logger.Logger) error {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		log.Error("failed to create complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()
	if _, err := cmd.Send(ctx); err != nil {
		log.Error("failed to send complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		return err
	}

	metrics.WorkerJobsCompleted.WithLabelValues(job.Type).Inc()
	return nil
}

// ThrowError raises a BPMN error on the job so the process can route on the code.
func ThrowError(client worker.JobClient, job entities.Job, errorCode, errorMessage string, log logger.Logger) {
	log.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})
	metrics.WorkerJobsFailed.WithLabelValues(job.Type, errorCode).Inc()

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()
	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(ctx)
	if err != nil {
		log.Error("failed to throw error", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
	}
}
