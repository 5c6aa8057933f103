// internal/common/camunda/client.go
package camunda

import (
	"context"
	"fmt"
	"strings"
	"time"

	"trip-suggestions/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// ClientConfig holds configuration for the Camunda/Zeebe client.
type ClientConfig struct {
	GatewayAddress         string
	UsePlaintextConnection bool
	ConnectionTimeout      time.Duration
	RetryConfig            *RetryConfig
}

// RetryConfig defines retry behavior for transient failures.
type RetryConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

var DefaultRetryConfig = &RetryConfig{
	MaxRetries: 10,
	BaseDelay:  2 * time.Second,
	MaxDelay:   30 * time.Second,
}

// Connect creates a Zeebe client and waits until the gateway answers a
// topology request, retrying transient failures with exponential backoff.
func Connect(ctx context.Context, cfg ClientConfig, log logger.Logger) (zbc.Client, error) {
	if cfg.RetryConfig == nil {
		cfg.RetryConfig = DefaultRetryConfig
	}
	if cfg.ConnectionTimeout <= 0 {
		cfg.ConnectionTimeout = 10 * time.Second
	}

	var client zbc.Client
	err := Retry(ctx, *cfg.RetryConfig, log, "Zeebe client initialization", func() error {
		c, err := zbc.NewClient(&zbc.ClientConfig{
			GatewayAddress:         cfg.GatewayAddress,
			UsePlaintextConnection: cfg.UsePlaintextConnection,
		})
		if err != nil {
			return fmt.Errorf("failed to create Zeebe client: %w", err)
		}
		if err := HealthCheck(ctx, c, cfg.ConnectionTimeout); err != nil {
			_ = c.Close()
			return fmt.Errorf("failed to connect to Zeebe broker at %s: %w", cfg.GatewayAddress, err)
		}
		client = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

// HealthCheck performs a topology request against the gateway.
func HealthCheck(ctx context.Context, client zbc.Client, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if _, err := client.NewTopologyCommand().Send(ctx); err != nil {
		return fmt.Errorf("zeebe health check failed: %w", err)
	}
	return nil
}

// Retry runs operation until it succeeds, the attempts are exhausted, or ctx
// is done. Errors that don't look transient stop the loop early.
func Retry(ctx context.Context, cfg RetryConfig, log logger.Logger, operationName string, operation func() error) error {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 1
	}
	var err error
	delay := cfg.BaseDelay

	for attempt := 1; attempt <= cfg.MaxRetries; attempt++ {
		err = operation()
		if err == nil {
			return nil
		}
		if !IsRetryable(err) || attempt == cfg.MaxRetries {
			break
		}

		log.Warn(fmt.Sprintf("%s failed, retrying...", operationName), map[string]interface{}{
			"error":       err.Error(),
			"attempt":     attempt,
			"maxRetries":  cfg.MaxRetries,
			"nextRetryIn": delay.String(),
		})

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return fmt.Errorf("%s cancelled after %d attempts: %w", operationName, attempt, ctx.Err())
		}

		delay *= 2
		if cfg.MaxDelay > 0 && delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
	}

	return fmt.Errorf("%s failed: %w", operationName, err)
}

// IsRetryable reports whether err looks like a transient connectivity failure.
func IsRetryable(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, phrase := range []string{
		"connection refused",
		"connection reset",
		"timeout",
		"deadline exceeded",
		"unavailable",
		"unreachable",
		"broken pipe",
		"no such host",
		"i/o timeout",
	} {
		if strings.Contains(msg, phrase) {
			return true
		}
	}
	return false
}
