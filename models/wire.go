package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Wire codec for the record fields the Joyrun API transports as JSON encoded
// into strings. altitude/heartrate are JSON arrays serialized into a string
// field; stepcontent is double-encoded: a JSON array of arrays whose inner
// elements are themselves JSON-encoded strings. The double encoding is part
// of the remote contract, not incidental.

// EncodeNestedJSON serializes groups into the double-encoded stepcontent
// form: every element is JSON-encoded into a string, and the resulting
// [][]string is JSON-encoded again.
func EncodeNestedJSON[T any](groups [][]T) (string, error) {
	outer := make([][]string, 0, len(groups))
	for _, group := range groups {
		inner := make([]string, 0, len(group))
		for _, el := range group {
			b, err := json.Marshal(el)
			if err != nil {
				return "", fmt.Errorf("encode nested element: %w", err)
			}
			inner = append(inner, string(b))
		}
		outer = append(outer, inner)
	}

	b, err := json.Marshal(outer)
	if err != nil {
		return "", fmt.Errorf("encode nested groups: %w", err)
	}
	return string(b), nil
}

// DecodeNestedJSON reverses EncodeNestedJSON, preserving group order.
func DecodeNestedJSON[T any](s string) ([][]T, error) {
	var outer [][]string
	if err := json.Unmarshal([]byte(s), &outer); err != nil {
		return nil, fmt.Errorf("decode nested groups: %w", err)
	}

	groups := make([][]T, 0, len(outer))
	for _, inner := range outer {
		group := make([]T, 0, len(inner))
		for _, raw := range inner {
			var el T
			if err := json.Unmarshal([]byte(raw), &el); err != nil {
				return nil, fmt.Errorf("decode nested element: %w", err)
			}
			group = append(group, el)
		}
		groups = append(groups, group)
	}
	return groups, nil
}

// EncodeStepContent serializes the record's step buckets into the
// double-encoded stepcontent wire field.
func EncodeStepContent(buckets []StepBucket) (string, error) {
	groups := make([][]StepDetail, len(buckets))
	for i, b := range buckets {
		groups[i] = b
	}
	return EncodeNestedJSON(groups)
}

// DecodeStepContent reverses EncodeStepContent.
func DecodeStepContent(s string) ([]StepBucket, error) {
	groups, err := DecodeNestedJSON[StepDetail](s)
	if err != nil {
		return nil, err
	}
	buckets := make([]StepBucket, len(groups))
	for i, g := range groups {
		buckets[i] = g
	}
	return buckets, nil
}

// EncodeAltitude serializes the elevation series into its string-wrapped
// JSON array wire form.
func EncodeAltitude(track []TrackSample) (string, error) {
	vals := make([]float64, len(track))
	for i, s := range track {
		vals[i] = s.Elevation
	}
	b, err := json.Marshal(vals)
	if err != nil {
		return "", fmt.Errorf("encode altitude: %w", err)
	}
	return string(b), nil
}

// DecodeAltitude reverses EncodeAltitude.
func DecodeAltitude(s string) ([]float64, error) {
	var vals []float64
	if err := json.Unmarshal([]byte(s), &vals); err != nil {
		return nil, fmt.Errorf("decode altitude: %w", err)
	}
	return vals, nil
}

// EncodeHeartRate serializes the heart-rate series into its string-wrapped
// JSON array wire form.
func EncodeHeartRate(track []TrackSample) (string, error) {
	vals := make([]int, len(track))
	for i, s := range track {
		vals[i] = s.HeartRate
	}
	b, err := json.Marshal(vals)
	if err != nil {
		return "", fmt.Errorf("encode heartrate: %w", err)
	}
	return string(b), nil
}

// DecodeHeartRate reverses EncodeHeartRate.
func DecodeHeartRate(s string) ([]int, error) {
	var vals []int
	if err := json.Unmarshal([]byte(s), &vals); err != nil {
		return nil, fmt.Errorf("decode heartrate: %w", err)
	}
	return vals, nil
}

// EncodeContent serializes the GPS track into the dash-joined point list the
// content field carries: each point is a JSON [lat,lng] pair, points are
// joined with "-". Coordinates on this API are always positive, so the dash
// never collides with a sign.
func EncodeContent(track []TrackSample) string {
	points := make([]string, len(track))
	for i, s := range track {
		points[i] = "[" + formatCoord(s.Latitude) + "," + formatCoord(s.Longitude) + "]"
	}
	return strings.Join(points, "-")
}

// DecodeContent reverses EncodeContent into [lat,lng] pairs.
func DecodeContent(s string) ([][2]float64, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, "-")
	points := make([][2]float64, 0, len(parts))
	for _, p := range parts {
		var pair [2]float64
		if err := json.Unmarshal([]byte(p), &pair); err != nil {
			return nil, fmt.Errorf("decode content point %q: %w", p, err)
		}
		points = append(points, pair)
	}
	return points, nil
}

// EncodeStepRemark serializes the cadence summary into its string-wrapped
// JSON wire form.
func EncodeStepRemark(r StepRemark) (string, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("encode stepremark: %w", err)
	}
	return string(b), nil
}

// DecodeStepRemark reverses EncodeStepRemark.
func DecodeStepRemark(s string) (StepRemark, error) {
	var r StepRemark
	if err := json.Unmarshal([]byte(s), &r); err != nil {
		return StepRemark{}, fmt.Errorf("decode stepremark: %w", err)
	}
	return r, nil
}

// EncodeNodeTimes serializes the per-kilometer splits into a JSON array
// string, preserving node order.
func EncodeNodeTimes(nodes []NodeTime) (string, error) {
	b, err := json.Marshal(nodes)
	if err != nil {
		return "", fmt.Errorf("encode nodetime: %w", err)
	}
	return string(b), nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
