package validators

import (
	"context"
	"fmt"

	"github.com/lzuhelper/joyrun/models"
)

// Field name constants used to specify which fields should be validated.
// These constants are passed to Validate to restrict validation to a subset
// of fields (field-level scoping).
const (
	// FieldRunID targets the record identifier.
	FieldRunID = "runid"

	// FieldTimeline targets the start/end timestamp consistency.
	FieldTimeline = "timeline"

	// FieldDistance targets the covered distance.
	FieldDistance = "distance"

	// FieldDuration targets the total run time and sample interval.
	FieldDuration = "duration"

	// FieldTrack targets the GPS/elevation/heart-rate sample series.
	FieldTrack = "track"

	// FieldSteps targets the step buckets and total step count.
	FieldSteps = "steps"

	// FieldCadence targets the cadence summary metadata.
	FieldCadence = "cadence"
)

// RunRecordValidator implements the Validator interface for run records
// before they are mapped onto the upload payload. A record that fails here
// would be rejected or, worse, silently accepted with broken data remotely.
type RunRecordValidator struct {
}

// NewRunRecordValidator constructs a new RunRecordValidator
// and returns it as the Validator interface.
func NewRunRecordValidator() Validator {
	return &RunRecordValidator{}
}

// Validate dispatches validation based on the dynamic type of obj. Both
// value and pointer forms of models.RunRecord are accepted.
//
// Returns ErrUnsupportedType if obj is not a run record. Optional fields
// restrict validation to the named subset; when omitted, all fields are
// validated.
func (v *RunRecordValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RunRecord:
		return v.validateRunRecord(ctx, value, fields...)
	case *models.RunRecord:
		return v.validateRunRecord(ctx, *value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *RunRecordValidator) validateRunRecord(_ context.Context, rec models.RunRecord, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldRunID, FieldTimeline, FieldDistance, FieldDuration, FieldTrack, FieldSteps, FieldCadence}
	}

	for _, f := range fields {
		switch f {
		case FieldRunID:
			if rec.RunID == "" {
				return ErrInvalidRunID
			}
		case FieldTimeline:
			if rec.StartTime <= 0 || rec.Dateline < rec.StartTime {
				return ErrInvalidTimeline
			}
		case FieldDistance:
			if rec.TotalMeters <= 0 {
				return ErrInvalidDistance
			}
		case FieldDuration:
			if rec.DurationSeconds <= 0 || rec.SampleIntervalSeconds <= 0 {
				return ErrInvalidDuration
			}
		case FieldTrack:
			if len(rec.Track) == 0 {
				return ErrEmptyTrack
			}
			for i, s := range rec.Track {
				if s.Latitude == 0 || s.Longitude == 0 {
					return fmt.Errorf("%w: zero coordinate at sample %d", ErrEmptyTrack, i)
				}
				if s.HeartRate < 0 {
					return fmt.Errorf("%w: negative heart rate at sample %d", ErrEmptyTrack, i)
				}
			}
		case FieldSteps:
			if rec.TotalSteps <= 0 || len(rec.StepBuckets) == 0 {
				return ErrInvalidSteps
			}
			for i, b := range rec.StepBuckets {
				for _, d := range b {
					if d.Steps < 0 || d.Seconds <= 0 {
						return fmt.Errorf("%w: bucket %d", ErrInvalidSteps, i)
					}
				}
			}
		case FieldCadence:
			if rec.StrideFrequency <= 0 || rec.Remark.AverageFrequency <= 0 {
				return ErrInvalidCadence
			}
			if rec.Remark.MaxFrequency < rec.Remark.AverageFrequency {
				return ErrInvalidCadence
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
