package models

// TrackSample is one sampled point of the recorded track. Samples are
// strictly chronological; their order is part of the wire contract.
type TrackSample struct {
	// Latitude and Longitude are WGS-84 coordinates.
	Latitude  float64
	Longitude float64

	// Elevation is the altitude in meters at this sample.
	Elevation float64

	// HeartRate is the heart rate in bpm at this sample.
	HeartRate int
}

// StepDetail is a single cadence measurement inside a step bucket.
type StepDetail struct {
	Steps    int     `json:"steps"`
	Distance float64 `json:"distance"`
	Seconds  int     `json:"seconds"`
}

// StepBucket groups the step details recorded within one sampling window.
// Buckets are strictly chronological.
type StepBucket []StepDetail

// NodeTime is a per-kilometer split marker.
type NodeTime struct {
	Node    int `json:"node"`
	Seconds int `json:"time"`
}

// StepRemark is the cadence summary metadata attached to a record.
type StepRemark struct {
	AverageFrequency int `json:"avgfreq"`
	MaxFrequency     int `json:"maxfreq"`
}

// RunRecord is a complete synthetic running record matching the remote
// schema. The upload pipeline treats it as an opaque value object: every
// field must survive serialization without precision loss or reordering.
type RunRecord struct {
	// RunID uniquely identifies the record on the remote side.
	RunID string

	// StartTime is the Unix timestamp of the first sample; Dateline the
	// timestamp the record is reported at (end of the run).
	StartTime int64
	Dateline  int64

	// DurationSeconds is the total run time, TotalMeters the covered
	// distance, TotalSteps the step count, StrideFrequency the average
	// cadence in steps per minute.
	DurationSeconds int
	TotalMeters     int
	TotalSteps      int
	StrideFrequency int

	// SampleIntervalSeconds is the spacing of Track samples.
	SampleIntervalSeconds int

	// Track holds the chronological GPS/elevation/heart-rate samples.
	Track []TrackSample

	// StepBuckets holds the chronological per-interval step detail groups.
	StepBuckets []StepBucket

	// NodeTimes holds the per-kilometer splits.
	NodeTimes []NodeTime

	// Remark carries the cadence summary metadata.
	Remark StepRemark
}

// EndTime returns the Unix timestamp of the last sample.
func (r *RunRecord) EndTime() int64 {
	return r.StartTime + int64(r.DurationSeconds)
}
