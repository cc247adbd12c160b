package record

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_Defaults(t *testing.T) {
	g := NewSeededGenerator(1)

	rec, venue, err := g.Generate(Options{})
	require.NoError(t, err)

	assert.Equal(t, 4800, rec.TotalMeters)
	assert.Equal(t, 176, rec.StrideFrequency)
	assert.Equal(t, 5, rec.SampleIntervalSeconds)
	assert.Contains(t, []string{VenueXiCao, VenueDongCao}, venue.Name)
	assert.NotEmpty(t, rec.RunID)
	assert.Len(t, rec.RunID, 16)
}

func TestGenerator_DurationTracksPace(t *testing.T) {
	g := NewSeededGenerator(7)

	rec, _, err := g.Generate(Options{DistanceKm: 5, PaceMinPerKm: 4.55})
	require.NoError(t, err)

	// 4'55" per km over 5 km = 1475 s, within the jitter band.
	assert.InDelta(t, 1475, rec.DurationSeconds, 1475*0.03)
}

func TestGenerator_TimelineConsistency(t *testing.T) {
	g := NewSeededGenerator(3)

	before := time.Now().Unix()
	rec, _, err := g.Generate(Options{})
	require.NoError(t, err)

	assert.Equal(t, rec.StartTime+int64(rec.DurationSeconds), rec.Dateline)
	assert.GreaterOrEqual(t, rec.Dateline, before)
	assert.Equal(t, rec.Dateline, rec.EndTime())
}

func TestGenerator_TrackShape(t *testing.T) {
	g := NewSeededGenerator(11)

	rec, venue, err := g.Generate(Options{Venue: VenueXiCao})
	require.NoError(t, err)

	require.NotEmpty(t, rec.Track)
	assert.Equal(t, rec.DurationSeconds/rec.SampleIntervalSeconds, len(rec.Track))

	// Every sample stays on the venue loop: within a few hundred meters of
	// the center.
	for _, s := range rec.Track {
		assert.InDelta(t, venue.CenterLat, s.Latitude, 0.01)
		assert.InDelta(t, venue.CenterLng, s.Longitude, 0.01)
		assert.InDelta(t, venue.Elevation, s.Elevation, 2)
		assert.Positive(t, s.HeartRate)
		assert.Less(t, s.HeartRate, 200)
	}
}

func TestGenerator_HeartRateRampsUp(t *testing.T) {
	g := NewSeededGenerator(13)

	rec, _, err := g.Generate(Options{})
	require.NoError(t, err)
	require.Greater(t, len(rec.Track), 20)

	early := rec.Track[0].HeartRate
	late := rec.Track[len(rec.Track)-1].HeartRate
	assert.Greater(t, late, early)
}

func TestGenerator_StepBucketsSumToTotal(t *testing.T) {
	g := NewSeededGenerator(17)

	rec, _, err := g.Generate(Options{})
	require.NoError(t, err)
	require.NotEmpty(t, rec.StepBuckets)

	sum := 0
	for _, b := range rec.StepBuckets {
		for _, d := range b {
			sum += d.Steps
			assert.Equal(t, 5, d.Seconds)
		}
	}
	assert.Equal(t, rec.TotalSteps, sum)
}

func TestGenerator_NodeTimesPerKilometer(t *testing.T) {
	g := NewSeededGenerator(19)

	rec, _, err := g.Generate(Options{DistanceKm: 4.8})
	require.NoError(t, err)
	require.Len(t, rec.NodeTimes, 4)

	perKm := float64(rec.DurationSeconds) / 4.8
	for i, n := range rec.NodeTimes {
		assert.Equal(t, i+1, n.Node)
		assert.InDelta(t, perKm*float64(i+1), float64(n.Seconds), math.Max(5, perKm*0.02))
	}
}

func TestGenerator_CadenceSummary(t *testing.T) {
	g := NewSeededGenerator(23)

	rec, _, err := g.Generate(Options{StrideFrequency: 180})
	require.NoError(t, err)

	assert.Equal(t, 180, rec.Remark.AverageFrequency)
	assert.Greater(t, rec.Remark.MaxFrequency, rec.Remark.AverageFrequency)
}

func TestGenerator_RunIDsDiffer(t *testing.T) {
	g := NewSeededGenerator(29)

	a, _, err := g.Generate(Options{})
	require.NoError(t, err)
	b, _, err := g.Generate(Options{})
	require.NoError(t, err)

	assert.NotEqual(t, a.RunID, b.RunID)
}

// ── Venue and variant selection ──────────────────────────────────────────────

func TestGenerator_VenueSelection(t *testing.T) {
	g := NewSeededGenerator(31)

	_, venue, err := g.Generate(Options{Venue: VenueDongCao})
	require.NoError(t, err)
	assert.Equal(t, VenueDongCao, venue.Name)
	assert.Equal(t, "兰州", venue.City)
	assert.Equal(t, "甘肃省", venue.Province)
}

func TestGenerator_UnknownVenue(t *testing.T) {
	g := NewSeededGenerator(37)

	_, _, err := g.Generate(Options{Venue: "swimming-pool"})
	assert.ErrorIs(t, err, ErrRecordType)
}

func TestGenerator_VariantSelection(t *testing.T) {
	g := NewSeededGenerator(41)

	for number := 0; number <= len(xiCao.Variants); number++ {
		_, _, err := g.Generate(Options{Venue: VenueXiCao, Variant: number})
		assert.NoError(t, err, "variant %d", number)
	}
}

func TestGenerator_VariantOutOfRange(t *testing.T) {
	g := NewSeededGenerator(43)

	_, _, err := g.Generate(Options{Venue: VenueXiCao, Variant: len(xiCao.Variants) + 1})
	assert.ErrorIs(t, err, ErrRecordNumber)

	_, _, err = g.Generate(Options{Venue: VenueXiCao, Variant: -1})
	assert.ErrorIs(t, err, ErrRecordNumber)
}
