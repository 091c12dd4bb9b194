// Package timeseries builds time series aligned with a model's time step.
package timeseries

import (
	"errors"
	"fmt"
	"time"

	"github.com/dukex/rtcontrol/pkg/models"
	"github.com/robfig/cron/v3"
)

var (
	ErrInvalidStep     = errors.New("time step must be positive")
	ErrInvalidPeriod   = errors.New("stop time must not be before start time")
	ErrInvalidSchedule = errors.New("invalid cron schedule")
)

// Regular returns value at start and every step after it up to and including stop.
func Regular(start, stop time.Time, step time.Duration, value float64) (models.TimeSeries, error) {
	if err := checkPeriod(start, stop, step); err != nil {
		return nil, err
	}

	series := make(models.TimeSeries, 0, int(stop.Sub(start)/step)+1)
	for t := start; !t.After(stop); t = t.Add(step) {
		series = append(series, models.TimeValue{Time: t, Value: value})
	}

	return series, nil
}

// FromSchedule samples a 5-field cron expression on the step grid from start to
// stop. An entry is on when the schedule fires within its step and off otherwise.
func FromSchedule(expr string, start, stop time.Time, step time.Duration, on, off float64) (models.TimeSeries, error) {
	if err := checkPeriod(start, stop, step); err != nil {
		return nil, err
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

	schedule, err := parser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidSchedule, expr, err)
	}

	series, err := Regular(start, stop, step, off)
	if err != nil {
		return nil, err
	}

	for i, tv := range series {
		// Next is strictly after its argument at second resolution.
		if schedule.Next(tv.Time.Add(-time.Second)).Before(tv.Time.Add(step)) {
			series[i].Value = on
		}
	}

	return series, nil
}

func checkPeriod(start, stop time.Time, step time.Duration) error {
	if step <= 0 {
		return ErrInvalidStep
	}

	if stop.Before(start) {
		return ErrInvalidPeriod
	}

	return nil
}
