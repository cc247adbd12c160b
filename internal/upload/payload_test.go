package upload

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lzuhelper/joyrun/internal/record"
	"github.com/lzuhelper/joyrun/models"
)

func testRecord(t *testing.T) (*models.RunRecord, record.Venue) {
	t.Helper()

	rec, venue, err := record.NewSeededGenerator(1).Generate(record.Options{Venue: record.VenueXiCao})
	require.NoError(t, err)
	return rec, venue
}

func TestBuildPayload_FieldSet(t *testing.T) {
	rec, venue := testRecord(t)

	payload, err := BuildPayload(rec, venue)
	require.NoError(t, err)

	// The remote schema is a fixed set of exactly these field names.
	wantFields := []string{
		"altitude", "private", "dateline", "city", "starttime", "type",
		"content", "second", "stepcontent", "province", "stepremark",
		"runid", "sampleinterval", "wgs", "nomoment", "meter", "heartrate",
		"totalsteps", "nodetime", "lasttime", "pausetime", "timeDistance",
	}
	require.Len(t, payload, len(wantFields))
	for _, f := range wantFields {
		_, ok := payload[f]
		assert.True(t, ok, "missing field %q", f)
	}
}

func TestBuildPayload_FixedValues(t *testing.T) {
	rec, venue := testRecord(t)

	payload, err := BuildPayload(rec, venue)
	require.NoError(t, err)

	assert.Equal(t, "0", payload["private"])
	assert.Equal(t, "1", payload["type"])
	assert.Equal(t, "1", payload["wgs"])
	assert.Equal(t, "1", payload["nomoment"])
	assert.Equal(t, "0", payload["lasttime"])
	assert.Equal(t, "", payload["pausetime"])
}

func TestBuildPayload_RecordValues(t *testing.T) {
	rec, venue := testRecord(t)

	payload, err := BuildPayload(rec, venue)
	require.NoError(t, err)

	assert.Equal(t, rec.RunID, payload["runid"])
	assert.Equal(t, strconv.FormatInt(rec.StartTime, 10), payload["starttime"])
	assert.Equal(t, strconv.FormatInt(rec.Dateline, 10), payload["dateline"])
	assert.Equal(t, strconv.Itoa(rec.TotalMeters), payload["meter"])
	assert.Equal(t, strconv.Itoa(rec.DurationSeconds), payload["second"])
	assert.Equal(t, strconv.Itoa(rec.TotalSteps), payload["totalsteps"])
	assert.Equal(t, strconv.Itoa(rec.SampleIntervalSeconds), payload["sampleinterval"])
	assert.Equal(t, venue.City, payload["city"])
	assert.Equal(t, venue.Province, payload["province"])
}

func TestBuildPayload_EncodedFieldsRoundTrip(t *testing.T) {
	rec, venue := testRecord(t)

	payload, err := BuildPayload(rec, venue)
	require.NoError(t, err)

	buckets, err := models.DecodeStepContent(payload["stepcontent"])
	require.NoError(t, err)
	assert.Equal(t, rec.StepBuckets, buckets)

	altitude, err := models.DecodeAltitude(payload["altitude"])
	require.NoError(t, err)
	assert.Len(t, altitude, len(rec.Track))

	heartrate, err := models.DecodeHeartRate(payload["heartrate"])
	require.NoError(t, err)
	assert.Len(t, heartrate, len(rec.Track))

	remark, err := models.DecodeStepRemark(payload["stepremark"])
	require.NoError(t, err)
	assert.Equal(t, rec.Remark, remark)

	points, err := models.DecodeContent(payload["content"])
	require.NoError(t, err)
	assert.Len(t, points, len(rec.Track))
}

func TestEncodeTimeDistance_CumulativePairs(t *testing.T) {
	rec := &models.RunRecord{
		TotalMeters:           600,
		DurationSeconds:       180,
		SampleIntervalSeconds: 5,
		Track:                 make([]models.TrackSample, 3),
	}

	encoded, err := encodeTimeDistance(rec)
	require.NoError(t, err)
	// speed ~3.33 m/s: [0,0], [5,16], [10,33]
	assert.Equal(t, "[[0,0],[5,16],[10,33]]", encoded)
}

func TestEncodeTimeDistance_EmptyTrack(t *testing.T) {
	encoded, err := encodeTimeDistance(&models.RunRecord{})
	require.NoError(t, err)
	assert.Equal(t, "[]", encoded)
}
