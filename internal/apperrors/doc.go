// Package apperrors maps any error produced by the pipeline onto a single
// go-errors shape with a stable text code, and provides a Handler that logs
// and contains failures for callers that must not crash.
package apperrors
