// Package validate guards write requests against malformed field values
// coming from the caller. Failures are never surfaced as errors: values are
// corrected to a safe default and logged, favoring availability over strict
// correctness.
package validate

import (
	"math"
	"strconv"

	"github.com/rs/zerolog"
)

// AppointmentStatus is the set of statuses the backend persists.
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Status validates a desired appointment status. Anything outside the
// persisted set, including the vestigial "scheduled", falls back to pending.
func Status(raw string, logger zerolog.Logger) AppointmentStatus {
	switch AppointmentStatus(raw) {
	case StatusPending, StatusCompleted, StatusCancelled:
		return AppointmentStatus(raw)
	}
	logger.Warn().Str("status", raw).Msg("unknown appointment status, defaulting to pending")
	return StatusPending
}

// PositiveInt coerces an arbitrary numeric-ish value to a positive integer.
// NaN, infinities, and unparseable values yield fallback; values below 1 are
// clamped to 1. Numeric strings are accepted because upstream form layers
// routinely produce them.
func PositiveInt(value any, fallback int64, logger zerolog.Logger) int64 {
	n, ok := toInt64(value)
	if !ok {
		logger.Warn().Interface("value", value).Int64("fallback", fallback).
			Msg("non-numeric value, using fallback")
		return fallback
	}
	if n < 1 {
		logger.Warn().Int64("value", n).Msg("non-positive value, clamping to 1")
		return 1
	}
	return n
}

// Amount coerces a payment amount to a finite non-negative float. NaN,
// infinities of either sign, and negative values yield fallback.
func Amount(value float64, fallback float64, logger zerolog.Logger) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		logger.Warn().Float64("amount", value).Float64("fallback", fallback).
			Msg("invalid payment amount, using fallback")
		return fallback
	}
	return value
}

func toInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case float32:
		return fromFloat(float64(v))
	case float64:
		return fromFloat(v)
	case string:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n, true
		}
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return fromFloat(f)
		}
		return 0, false
	default:
		return 0, false
	}
}

func fromFloat(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int64(f), true
}
