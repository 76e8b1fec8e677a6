// Package errors provides standardized error handling for the campus assistant.
package errors

import (
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Configuration errors. All of these are fatal at startup: the process
	// must not serve requests with a broken configuration.
	ErrCodeConfigInvalid  ErrorCode = "CONFIG_INVALID"
	ErrCodeIntentsInvalid ErrorCode = "INTENTS_INVALID"
	ErrCodeFeesInvalid    ErrorCode = "FEES_INVALID"

	// Training errors.
	ErrCodeTrainingDataInvalid ErrorCode = "TRAINING_DATA_INVALID"
	ErrCodeTrainingFailed      ErrorCode = "TRAINING_FAILED"

	// Model bundle errors.
	ErrCodeBundleReadFailed         ErrorCode = "BUNDLE_READ_FAILED"
	ErrCodeBundleWriteFailed        ErrorCode = "BUNDLE_WRITE_FAILED"
	ErrCodeBundleVersionMismatch    ErrorCode = "BUNDLE_VERSION_MISMATCH"
	ErrCodeTokenizerVersionMismatch ErrorCode = "TOKENIZER_VERSION_MISMATCH"
	ErrCodeBundleCorrupt            ErrorCode = "BUNDLE_CORRUPT"

	// Runtime errors. The classifier predicting a tag that does not exist in
	// the intent corpus means the loaded bundle and corpus do not match.
	ErrCodeBundleCorpusMismatch ErrorCode = "BUNDLE_CORPUS_MISMATCH"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// CodeOf extracts the ErrorCode from an error, or empty string for plain errors.
func CodeOf(err error) ErrorCode {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr.Code
	}
	return ""
}

// ==========================
// 2. Error Constructors
// ==========================

// NewConfigInvalidError creates a fatal configuration error.
func NewConfigInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfigInvalid,
		Message:   "Invalid application configuration",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewIntentsInvalidError creates a fatal intents configuration error.
func NewIntentsInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeIntentsInvalid,
		Message:   "Invalid intents configuration",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewFeesInvalidError creates a fatal fee configuration error.
func NewFeesInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeFeesInvalid,
		Message:   "Invalid fee configuration",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewTrainingDataInvalidError signals a corpus that cannot be trained on
// (empty corpus, fewer than two tags, or an intent without patterns).
func NewTrainingDataInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeTrainingDataInvalid,
		Message:   "Intent corpus is not trainable",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewTrainingFailedError signals that the optimizer did not produce a model.
func NewTrainingFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTrainingFailed,
		Message:   "Classifier training failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewBundleReadFailedError creates an error for an unreadable model bundle.
func NewBundleReadFailedError(path string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeBundleReadFailed,
		Message:   "Failed to read model bundle",
		Details:   fmt.Sprintf("path: %s: %v", path, err),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewBundleWriteFailedError creates an error for a bundle that could not be persisted.
func NewBundleWriteFailedError(path string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeBundleWriteFailed,
		Message:   "Failed to write model bundle",
		Details:   fmt.Sprintf("path: %s: %v", path, err),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewBundleVersionMismatchError creates an error for an unsupported bundle schema.
func NewBundleVersionMismatchError(got, want int) *StandardError {
	return &StandardError{
		Code:      ErrCodeBundleVersionMismatch,
		Message:   "Unsupported model bundle version",
		Details:   fmt.Sprintf("bundle version %d, supported version %d", got, want),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewTokenizerVersionMismatchError signals a bundle trained with a different
// tokenization rule than this binary uses at inference time.
func NewTokenizerVersionMismatchError(got, want int) *StandardError {
	return &StandardError{
		Code:      ErrCodeTokenizerVersionMismatch,
		Message:   "Model bundle was trained with an incompatible tokenizer",
		Details:   fmt.Sprintf("bundle tokenizer version %d, runtime tokenizer version %d", got, want),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewBundleCorruptError signals internally inconsistent bundle contents.
func NewBundleCorruptError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeBundleCorrupt,
		Message:   "Model bundle contents are inconsistent",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewBundleCorpusMismatchError signals a predicted tag that has no intent in
// the loaded corpus. This must surface to the caller, never be papered over
// with a default reply, since it indicates a mismatched model/corpus pair.
func NewBundleCorpusMismatchError(tag string) *StandardError {
	return &StandardError{
		Code:      ErrCodeBundleCorpusMismatch,
		Message:   "Classifier predicted a tag not present in the intent corpus",
		Details:   fmt.Sprintf("tag: %s", tag),
		Retryable: false,
		Metadata:  map[string]interface{}{"tag": tag},
		Timestamp: time.Now().UTC(),
	}
}
