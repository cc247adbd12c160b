package api

import (
	"fmt"

	"github.com/lzuhelper/joyrun/models"
)

// RunSummary is one row of the record listing.
type RunSummary struct {
	FID       models.FlexInt64 `json:"fid"`
	RunID     string           `json:"runid"`
	Meter     models.FlexInt64 `json:"meter"`
	Second    models.FlexInt64 `json:"second"`
	StartTime models.FlexInt64 `json:"starttime"`
	Dateline  models.FlexInt64 `json:"lasttime"`
}

// runDetailWire is the raw GetInfo payload; the track fields arrive in their
// double-encoded string forms.
type runDetailWire struct {
	RunID       string           `json:"runid"`
	Meter       models.FlexInt64 `json:"meter"`
	Second      models.FlexInt64 `json:"second"`
	StartTime   models.FlexInt64 `json:"starttime"`
	Content     string           `json:"content"`
	Altitude    string           `json:"altitude"`
	HeartRate   string           `json:"heartrate"`
	StepContent string           `json:"stepcontent"`
	StepRemark  string           `json:"stepremark"`
}

// RunDetail is a fully decoded record.
type RunDetail struct {
	RunID     string
	Meter     int
	Second    int
	StartTime int64

	Points      [][2]float64
	Altitude    []float64
	HeartRate   []int
	StepBuckets []models.StepBucket
	Remark      models.StepRemark
}

func (w *runDetailWire) detail() (*RunDetail, error) {
	d := &RunDetail{
		RunID:     w.RunID,
		Meter:     int(w.Meter),
		Second:    int(w.Second),
		StartTime: int64(w.StartTime),
	}

	var err error
	if d.Points, err = models.DecodeContent(w.Content); err != nil {
		return nil, fmt.Errorf("record %s content: %w", w.RunID, err)
	}
	if w.Altitude != "" {
		if d.Altitude, err = models.DecodeAltitude(w.Altitude); err != nil {
			return nil, fmt.Errorf("record %s altitude: %w", w.RunID, err)
		}
	}
	if w.HeartRate != "" {
		if d.HeartRate, err = models.DecodeHeartRate(w.HeartRate); err != nil {
			return nil, fmt.Errorf("record %s heartrate: %w", w.RunID, err)
		}
	}
	if w.StepContent != "" {
		if d.StepBuckets, err = models.DecodeStepContent(w.StepContent); err != nil {
			return nil, fmt.Errorf("record %s stepcontent: %w", w.RunID, err)
		}
	}
	if w.StepRemark != "" {
		if d.Remark, err = models.DecodeStepRemark(w.StepRemark); err != nil {
			return nil, fmt.Errorf("record %s stepremark: %w", w.RunID, err)
		}
	}
	return d, nil
}

// UserInfo is the profile payload of /user.aspx.
type UserInfo struct {
	UID      models.FlexInt64 `json:"uid"`
	Nick     string           `json:"nick"`
	Gender   models.FlexInt64 `json:"gender"`
	FaceURL  string           `json:"faceurl"`
	Province string           `json:"province"`
	City     string           `json:"city"`
	AllMeter models.FlexInt64 `json:"allmeter"`
	AllPo    models.FlexInt64 `json:"allpo"`
}

// Binding is one third-party account link.
type Binding struct {
	Type    string `json:"type"`
	Account string `json:"account"`
	Nick    string `json:"nick"`
}

// FeedMessage is one entry of the feed or data message lists.
type FeedMessage struct {
	ID       models.FlexInt64 `json:"id"`
	UID      models.FlexInt64 `json:"uid"`
	Type     models.FlexInt64 `json:"type"`
	Content  string           `json:"content"`
	Dateline models.FlexInt64 `json:"dateline"`
}

// BestRecord holds the personal bests payload of /run/best.
type BestRecord struct {
	BestMeter  models.FlexInt64 `json:"bestmeter"`
	BestSecond models.FlexInt64 `json:"bestsecond"`
	Best5K     models.FlexInt64 `json:"best5ktime"`
	Best10K    models.FlexInt64 `json:"best10ktime"`
	BestHalf   models.FlexInt64 `json:"besthalftime"`
	BestFull   models.FlexInt64 `json:"bestfulltime"`
}
