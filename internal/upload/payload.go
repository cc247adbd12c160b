package upload

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/lzuhelper/joyrun/internal/record"
	"github.com/lzuhelper/joyrun/models"
)

// BuildPayload maps a run record onto the fixed po.aspx form schema. Field
// names and their encodings are part of the remote contract and must not be
// renamed or re-encoded; the record itself is treated as opaque data.
func BuildPayload(rec *models.RunRecord, venue record.Venue) (map[string]string, error) {
	altitude, err := models.EncodeAltitude(rec.Track)
	if err != nil {
		return nil, err
	}
	heartrate, err := models.EncodeHeartRate(rec.Track)
	if err != nil {
		return nil, err
	}
	stepcontent, err := models.EncodeStepContent(rec.StepBuckets)
	if err != nil {
		return nil, err
	}
	stepremark, err := models.EncodeStepRemark(rec.Remark)
	if err != nil {
		return nil, err
	}
	nodetime, err := models.EncodeNodeTimes(rec.NodeTimes)
	if err != nil {
		return nil, err
	}
	timeDistance, err := encodeTimeDistance(rec)
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"altitude":       altitude,
		"private":        "0",
		"dateline":       strconv.FormatInt(rec.Dateline, 10),
		"city":           venue.City,
		"starttime":      strconv.FormatInt(rec.StartTime, 10),
		"type":           "1",
		"content":        models.EncodeContent(rec.Track),
		"second":         strconv.Itoa(rec.DurationSeconds),
		"stepcontent":    stepcontent,
		"province":       venue.Province,
		"stepremark":     stepremark,
		"runid":          rec.RunID,
		"sampleinterval": strconv.Itoa(rec.SampleIntervalSeconds),
		"wgs":            "1",
		"nomoment":       "1",
		"meter":          strconv.Itoa(rec.TotalMeters),
		"heartrate":      heartrate,
		"totalsteps":     strconv.Itoa(rec.TotalSteps),
		"nodetime":       nodetime,
		"lasttime":       "0",
		"pausetime":      "",
		"timeDistance":   timeDistance,
	}, nil
}

// encodeTimeDistance serializes cumulative [seconds, meters] pairs, one per
// track sample, as a JSON array string.
func encodeTimeDistance(rec *models.RunRecord) (string, error) {
	if len(rec.Track) == 0 {
		return "[]", nil
	}

	speed := float64(rec.TotalMeters) / float64(rec.DurationSeconds)
	pairs := make([][2]int, 0, len(rec.Track))
	for i := range rec.Track {
		elapsed := i * rec.SampleIntervalSeconds
		pairs = append(pairs, [2]int{elapsed, int(speed * float64(elapsed))})
	}

	b, err := json.Marshal(pairs)
	if err != nil {
		return "", fmt.Errorf("encode timeDistance: %w", err)
	}
	return string(b), nil
}
