package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidRunID    = errors.New("invalid run id")
	ErrInvalidTimeline = errors.New("invalid record timeline")
	ErrInvalidDistance = errors.New("invalid record distance")
	ErrInvalidDuration = errors.New("invalid record duration")
	ErrEmptyTrack      = errors.New("track cannot be empty")
	ErrInvalidSteps    = errors.New("invalid step data")
	ErrInvalidCadence  = errors.New("invalid cadence summary")
)
