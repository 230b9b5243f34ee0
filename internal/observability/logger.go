package observability

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog for structured logging of a store pipeline run.
type Logger struct {
	logger zerolog.Logger
}

// NewLogger creates a new structured logger.
func NewLogger(service, version string, output io.Writer) *Logger {
	if output == nil {
		output = os.Stdout
	}

	zerolog.TimeFieldFormat = time.RFC3339

	logger := zerolog.New(output).With().
		Timestamp().
		Str("service", service).
		Str("version", version).
		Str("host", getHostname()).
		Logger()

	return &Logger{
		logger: logger,
	}
}

// WithOperation adds operation_id context to the logger.
func (l *Logger) WithOperation(operationID string) *Logger {
	return &Logger{
		logger: l.logger.With().Str("operation_id", operationID).Logger(),
	}
}

// WithPayload adds the payload's size and hash algorithm to the logger.
func (l *Logger) WithPayload(size int64, alg string) *Logger {
	return &Logger{
		logger: l.logger.With().
			Int64("payload_size", size).
			Str("hash_algorithm", alg).
			Logger(),
	}
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string) {
	l.logger.Debug().Msg(msg)
}

// Info logs an info message.
func (l *Logger) Info(msg string) {
	l.logger.Info().Msg(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.logger.Warn().Msg(msg)
}

// Error logs an error message.
func (l *Logger) Error(err error, msg string) {
	l.logger.Error().Err(err).Msg(msg)
}

// Fatal logs a fatal message and exits.
func (l *Logger) Fatal(err error, msg string) {
	l.logger.Fatal().Err(err).Msg(msg)
}

// StoreStarted logs the start of a store operation.
func (l *Logger) StoreStarted(operationID string, payloadSize int64, totalChunks int) {
	l.logger.Info().
		Str("operation_id", operationID).
		Int64("payload_size", payloadSize).
		Int("total_chunks", totalChunks).
		Msg("store operation started")
}

// ChunkStarted logs a chunk submission starting.
func (l *Logger) ChunkStarted(operationID string, chunkIndex, total int, chunkSize int) {
	l.logger.Debug().
		Str("operation_id", operationID).
		Int("chunk_index", chunkIndex).
		Int("total_chunks", total).
		Int("chunk_size", chunkSize).
		Msg("submitting chunk")
}

// ChunkCompleted logs a chunk submission reaching its lifecycle milestone.
func (l *Logger) ChunkCompleted(operationID string, chunkIndex int, cidStr string, blockNumber uint64) {
	l.logger.Debug().
		Str("operation_id", operationID).
		Int("chunk_index", chunkIndex).
		Str("cid", cidStr).
		Uint64("block_number", blockNumber).
		Msg("chunk submission confirmed")
}

// ChunkFailed logs a chunk submission failure.
func (l *Logger) ChunkFailed(operationID string, chunkIndex int, err error) {
	l.logger.Error().
		Str("operation_id", operationID).
		Int("chunk_index", chunkIndex).
		Err(err).
		Msg("chunk submission failed")
}

// ManifestCreated logs a manifest being built and submitted.
func (l *Logger) ManifestCreated(operationID string, cidStr string, linkCount int, manifestSize int) {
	l.logger.Info().
		Str("operation_id", operationID).
		Str("cid", cidStr).
		Int("link_count", linkCount).
		Int("manifest_size", manifestSize).
		Msg("manifest built and submitted")
}

// StoreCompleted logs a successful store operation.
func (l *Logger) StoreCompleted(operationID string, rootCID string, totalChunks int, duration time.Duration) {
	l.logger.Info().
		Str("operation_id", operationID).
		Str("root_cid", rootCID).
		Int("total_chunks", totalChunks).
		Float64("duration_seconds", duration.Seconds()).
		Msg("store operation completed")
}

// PreflightRejected logs the pre-flight guard refusing a store before any
// submission was attempted.
func (l *Logger) PreflightRejected(operationID string, reason string, err error) {
	l.logger.Warn().
		Str("operation_id", operationID).
		Str("reason", reason).
		Err(err).
		Msg("store rejected at pre-flight")
}

func getHostname() string {
	hostname, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return hostname
}
