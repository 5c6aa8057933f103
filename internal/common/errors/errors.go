// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	ErrCodeParseError   ErrorCode = "PARSE_ERROR"

	// Source-unavailable: absorbed by the catalog and preference store.
	ErrCodeSourceUnavailable  ErrorCode = "SOURCE_UNAVAILABLE"
	ErrCodeSourceTimeout      ErrorCode = "SOURCE_TIMEOUT"
	ErrCodeCatalogUnavailable ErrorCode = "CATALOG_UNAVAILABLE"

	// Pipeline-failure: converted into the static fallback ranking.
	ErrCodePipelineFailed ErrorCode = "PIPELINE_FAILED"

	// Side-effect failures: logged and swallowed.
	ErrCodePreferenceSaveFailed   ErrorCode = "PREFERENCE_SAVE_FAILED"
	ErrCodeEngagementSignalFailed ErrorCode = "ENGAGEMENT_SIGNAL_FAILED"

	ErrCodeDatabaseConnectionFailed      ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed          ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeElasticsearchConnectionFailed ErrorCode = "ELASTICSEARCH_CONNECTION_FAILED"
	ErrCodeSearchQueryFailed             ErrorCode = "SEARCH_QUERY_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

func NewInvalidInputError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidInput,
		Message:   "Invalid job input",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewParseError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeParseError,
		Message:   "Job variables could not be parsed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewSourceUnavailableError(source string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSourceUnavailable,
		Message:   fmt.Sprintf("Source '%s' unavailable", source),
		Details:   err.Error(),
		Retryable: false,
		Metadata:  map[string]interface{}{"source": source},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewSourceTimeoutError(source string, timeout time.Duration) *StandardError {
	return &StandardError{
		Code:      ErrCodeSourceTimeout,
		Message:   fmt.Sprintf("Source '%s' timeout", source),
		Details:   fmt.Sprintf("fetch exceeded %s", timeout),
		Retryable: false,
		Metadata:  map[string]interface{}{"source": source},
		Timestamp: time.Now().UTC(),
	}
}

func NewCatalogUnavailableError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogUnavailable,
		Message:   "No candidate source could be reached",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewPipelineFailedError(stage string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodePipelineFailed,
		Message:   fmt.Sprintf("Suggestion pipeline failed at %s", stage),
		Details:   err.Error(),
		Retryable: false,
		Metadata:  map[string]interface{}{"stage": stage},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewPreferenceSaveFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodePreferenceSaveFailed,
		Message:   "Preference could not be saved",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewEngagementSignalFailedError(signal string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeEngagementSignalFailed,
		Message:   fmt.Sprintf("Engagement signal '%s' failed", signal),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewQueryExecutionFailedError(queryType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "Database query execution error",
		Details:   fmt.Sprintf("queryType: %s, error: %s", queryType, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewSearchQueryFailedError(index string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchQueryFailed,
		Message:   "Elasticsearch query error",
		Details:   fmt.Sprintf("index: %s, error: %s", index, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// ==========================
// 4. Mapping helpers
// ==========================

var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeInvalidInput:                  "INVALID_INPUT",
	ErrCodeParseError:                    "PARSE_ERROR",
	ErrCodeSourceUnavailable:             "SOURCE_UNAVAILABLE",
	ErrCodeSourceTimeout:                 "SOURCE_TIMEOUT",
	ErrCodeCatalogUnavailable:            "CATALOG_UNAVAILABLE",
	ErrCodePipelineFailed:                "PIPELINE_FAILED",
	ErrCodePreferenceSaveFailed:          "PREFERENCE_SAVE_FAILED",
	ErrCodeEngagementSignalFailed:        "ENGAGEMENT_SIGNAL_FAILED",
	ErrCodeDatabaseConnectionFailed:      "DATABASE_CONNECTION_FAILED",
	ErrCodeQueryExecutionFailed:          "QUERY_EXECUTION_FAILED",
	ErrCodeElasticsearchConnectionFailed: "ELASTICSEARCH_CONNECTION_FAILED",
	ErrCodeSearchQueryFailed:             "SEARCH_QUERY_FAILED",
}

// GetRetryCount is zero for everything the suggestion pipeline absorbs on its own.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseConnectionFailed,
		ErrCodeQueryExecutionFailed,
		ErrCodeElasticsearchConnectionFailed,
		ErrCodeSearchQueryFailed:
		return 3
	case ErrCodePreferenceSaveFailed,
		ErrCodeEngagementSignalFailed:
		return 1
	default:
		return 0
	}
}

func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "SOURCE") || strings.Contains(codeStr, "CATALOG"):
		return "SOURCE"
	case strings.Contains(codeStr, "PIPELINE"):
		return "PIPELINE"
	case strings.Contains(codeStr, "PREFERENCE") || strings.Contains(codeStr, "ENGAGEMENT"):
		return "SIDE_EFFECT"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY"):
		return "DATABASE"
	case strings.Contains(codeStr, "ELASTICSEARCH") || strings.Contains(codeStr, "SEARCH"):
		return "SEARCH"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "PARSE"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
