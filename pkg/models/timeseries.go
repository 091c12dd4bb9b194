package models

import "time"

// TimeValue is a single timestamped value of a time series.
type TimeValue struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
}

// TimeSeries is an ordered list of timestamped values.
type TimeSeries []TimeValue

// Len returns the number of entries.
func (ts TimeSeries) Len() int {
	return len(ts)
}

// First returns the earliest entry, assuming the series is ordered.
func (ts TimeSeries) First() (TimeValue, bool) {
	if len(ts) == 0 {
		return TimeValue{}, false
	}

	return ts[0], true
}

// Last returns the latest entry, assuming the series is ordered.
func (ts TimeSeries) Last() (TimeValue, bool) {
	if len(ts) == 0 {
		return TimeValue{}, false
	}

	return ts[len(ts)-1], true
}

// Times returns the timestamps of the series.
func (ts TimeSeries) Times() []time.Time {
	times := make([]time.Time, len(ts))
	for i, tv := range ts {
		times[i] = tv.Time
	}

	return times
}

// Interpolation defines how values between two entries are obtained.
type Interpolation string

const (
	InterpolationConstant Interpolation = "constant"
	InterpolationLinear   Interpolation = "linear"
)

// Extrapolation defines how values outside the defined range are obtained.
type Extrapolation string

const (
	ExtrapolationConstant Extrapolation = "constant"
	ExtrapolationLinear   Extrapolation = "linear"
	ExtrapolationPeriodic Extrapolation = "periodic"
)

// TablePoint is one row of a lookup table.
type TablePoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}
