// Package record synthesizes running records matching the remote schema:
// a GPS loop track with altitude and heart-rate samples, per-interval step
// buckets, and per-kilometer splits, parameterized by distance, pace, and
// stride frequency.
package record

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lzuhelper/joyrun/internal/sign"
	"github.com/lzuhelper/joyrun/models"
)

// Generation errors surfaced before any record is produced.
var (
	// ErrRecordType indicates an unknown venue preset name.
	ErrRecordType = errors.New("unsupported record type")
	// ErrRecordNumber indicates a variant selection outside the venue's
	// list.
	ErrRecordNumber = errors.New("invalid record number")
)

// sampleIntervalSeconds is the fixed spacing of track samples the mobile
// client reports with.
const sampleIntervalSeconds = 5

// Options parameterize one generated record.
type Options struct {
	// Venue is "xicao", "dongcao" or "random".
	Venue string

	// Variant selects a fixed track variant within the venue (1-based);
	// 0 picks one at random.
	Variant int

	// DistanceKm, PaceMinPerKm (e.g. 4.55 = 4'55" per km) and
	// StrideFrequency shape the run. Zero values fall back to the usual
	// campus-run defaults.
	DistanceKm      float64
	PaceMinPerKm    float64
	StrideFrequency int
}

func (o *Options) applyDefaults() {
	if o.Venue == "" {
		o.Venue = VenueRandom
	}
	if o.DistanceKm == 0 {
		o.DistanceKm = 4.8
	}
	if o.PaceMinPerKm == 0 {
		o.PaceMinPerKm = 4.55
	}
	if o.StrideFrequency == 0 {
		o.StrideFrequency = 176
	}
}

// Generator produces synthetic run records. Each generator owns its own
// rand source so concurrent per-account generators never contend.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a time-seeded Generator.
func NewGenerator() *Generator {
	return &Generator{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSeededGenerator returns a deterministic Generator for tests.
func NewSeededGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Generate produces a record ending now, along with the venue preset it was
// drawn on (the upload payload reports the venue's city and province). The
// duration, heart rate, cadence and per-km splits carry small jitter so
// repeated runs differ.
func (g *Generator) Generate(opts Options) (*models.RunRecord, Venue, error) {
	opts.applyDefaults()

	venue, err := g.pickVenue(opts.Venue)
	if err != nil {
		return nil, Venue{}, err
	}
	startOffset, err := g.pickVariant(venue, opts.Variant)
	if err != nil {
		return nil, Venue{}, err
	}

	totalMeters := int(opts.DistanceKm * 1000)
	duration := g.jitterDuration(opts.DistanceKm, opts.PaceMinPerKm)
	now := time.Now().Unix()
	startTime := now - int64(duration)

	track := g.buildTrack(venue, startOffset, totalMeters, duration)
	buckets := g.buildStepBuckets(opts.StrideFrequency, totalMeters, duration)
	totalSteps := countSteps(buckets)

	return &models.RunRecord{
		RunID:                 newRunID(),
		StartTime:             startTime,
		Dateline:              now,
		DurationSeconds:       duration,
		TotalMeters:           totalMeters,
		TotalSteps:            totalSteps,
		StrideFrequency:       opts.StrideFrequency,
		SampleIntervalSeconds: sampleIntervalSeconds,
		Track:                 track,
		StepBuckets:           buckets,
		NodeTimes:             g.buildNodeTimes(opts.DistanceKm, duration),
		Remark: models.StepRemark{
			AverageFrequency: opts.StrideFrequency,
			MaxFrequency:     opts.StrideFrequency + 2 + g.rng.Intn(6),
		},
	}, venue, nil
}

func (g *Generator) pickVenue(name string) (Venue, error) {
	switch strings.ToLower(name) {
	case VenueXiCao:
		return xiCao, nil
	case VenueDongCao:
		return dongCao, nil
	case VenueRandom:
		if g.rng.Intn(2) == 0 {
			return xiCao, nil
		}
		return dongCao, nil
	default:
		return Venue{}, fmt.Errorf("%w: %q (valid: xicao, dongcao, random)", ErrRecordType, name)
	}
}

func (g *Generator) pickVariant(venue Venue, number int) (float64, error) {
	if number == 0 {
		return venue.Variants[g.rng.Intn(len(venue.Variants))], nil
	}
	if number < 0 || number > len(venue.Variants) {
		return 0, fmt.Errorf("%w: %d (valid range 0-%d)", ErrRecordNumber, number, len(venue.Variants))
	}
	return venue.Variants[number-1], nil
}

// jitterDuration converts pace notation (4.55 = 4'55") into a total
// duration with ±2%% noise.
func (g *Generator) jitterDuration(distanceKm, pace float64) int {
	minutes := math.Floor(pace)
	seconds := math.Round((pace - minutes) * 100)
	perKm := minutes*60 + seconds

	base := perKm * distanceKm
	jitter := 1 + (g.rng.Float64()-0.5)*0.04
	return int(math.Round(base * jitter))
}

// buildTrack walks the venue loop at constant speed, sampling position,
// altitude and heart rate every sampleIntervalSeconds. The heart rate ramps
// up over the opening stretch and then plateaus with noise.
func (g *Generator) buildTrack(venue Venue, startOffset float64, totalMeters, duration int) []models.TrackSample {
	n := duration / sampleIntervalSeconds
	if n < 2 {
		n = 2
	}

	speed := float64(totalMeters) / float64(duration)
	warmup := n / 10
	if warmup < 1 {
		warmup = 1
	}
	restingHR := 96 + g.rng.Intn(10)
	targetHR := 148 + g.rng.Intn(14)

	// Rough meters-per-degree conversion around the venue latitude.
	latScale := 1.0 / 111320.0
	lngScale := 1.0 / (111320.0 * math.Cos(venue.CenterLat*math.Pi/180))
	radius := venue.LoopMeters / (2 * math.Pi)

	track := make([]models.TrackSample, 0, n)
	for i := 0; i < n; i++ {
		along := startOffset + speed*float64(i*sampleIntervalSeconds)
		theta := (along / venue.LoopMeters) * 2 * math.Pi

		hr := targetHR
		if i < warmup {
			hr = restingHR + (targetHR-restingHR)*i/warmup
		}
		hr += g.rng.Intn(7) - 3

		track = append(track, models.TrackSample{
			Latitude:  venue.CenterLat + radius*math.Cos(theta)*latScale,
			Longitude: venue.CenterLng + radius*math.Sin(theta)*lngScale,
			Elevation: venue.Elevation + (g.rng.Float64()-0.5)*2,
			HeartRate: hr,
		})
	}
	return track
}

// buildStepBuckets groups one StepDetail per sample interval into
// minute-sized buckets, preserving chronological order.
func (g *Generator) buildStepBuckets(strideFrequency, totalMeters, duration int) []models.StepBucket {
	samples := duration / sampleIntervalSeconds
	if samples < 1 {
		samples = 1
	}
	perBucket := 60 / sampleIntervalSeconds
	speed := float64(totalMeters) / float64(duration)

	var buckets []models.StepBucket
	var current models.StepBucket
	for i := 0; i < samples; i++ {
		steps := strideFrequency*sampleIntervalSeconds/60 + g.rng.Intn(3) - 1
		current = append(current, models.StepDetail{
			Steps:    steps,
			Distance: math.Round(speed*sampleIntervalSeconds*100) / 100,
			Seconds:  sampleIntervalSeconds,
		})
		if len(current) == perBucket || i == samples-1 {
			buckets = append(buckets, current)
			current = nil
		}
	}
	return buckets
}

func (g *Generator) buildNodeTimes(distanceKm float64, duration int) []models.NodeTime {
	kms := int(distanceKm)
	if kms < 1 {
		return nil
	}

	perKm := float64(duration) / distanceKm
	nodes := make([]models.NodeTime, 0, kms)
	for i := 1; i <= kms; i++ {
		jitter := g.rng.Intn(9) - 4
		nodes = append(nodes, models.NodeTime{
			Node:    i,
			Seconds: int(perKm*float64(i)) + jitter,
		})
	}
	return nodes
}

func countSteps(buckets []models.StepBucket) int {
	total := 0
	for _, b := range buckets {
		for _, d := range b {
			total += d.Steps
		}
	}
	return total
}

// newRunID derives a fresh upload identifier the way the mobile client
// does: a digest of a one-off value, truncated.
func newRunID() string {
	return strings.ToLower(sign.MD5Upper(uuid.NewString()))[:16]
}
