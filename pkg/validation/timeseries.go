package validation

import (
	"math/big"
	"time"

	"github.com/dukex/rtcontrol/pkg/models"
)

const timeLayout = "2006-01-02 15:04:05"

// checkTimeSeries verifies that every time series driving a rule or condition
// lines up with the model's time step and covers the simulation period.
func checkTimeSeries(model *models.RealTimeControlModel, group *models.ControlGroup, report *Report) {
	for _, rule := range group.Rules {
		if series, ok := ruleTimeSeries(rule); ok {
			checkSeries(model, rule, series, report)
		}
	}

	for _, condition := range group.Conditions {
		if tc, ok := condition.(*models.TimeCondition); ok {
			checkSeries(model, condition, tc.TimeSeries, report)
		}
	}
}

// ruleTimeSeries returns the series a rule is driven by, if it has one.
func ruleTimeSeries(rule models.Rule) (models.TimeSeries, bool) {
	switch r := rule.(type) {
	case *models.PIDRule:
		if r.SetpointType == models.SetpointTimeSeries {
			return r.TimeSeries, true
		}
	case *models.TimeRule:
		return r.TimeSeries, true
	case *models.IntervalRule:
		return r.TimeSeries, true
	}

	return nil, false
}

func checkSeries(model *models.RealTimeControlModel, subject models.Node, series models.TimeSeries, report *Report) {
	if series.Len() == 0 {
		return
	}

	if model.TimeStep == 0 {
		report.AddError(subject, "Time series of '%s' cannot be checked against a time step of zero.", subject.NodeName())
	} else if misaligned, first := misalignedEntries(series, model.StartTime, model.TimeStep); misaligned > 0 {
		report.AddError(subject,
			"Time series of '%s' has %d time(s) that are not a multiple of the time step %s from the start time, the first at %s.",
			subject.NodeName(), misaligned, model.TimeStep, first.Format(timeLayout))
	}

	if first, _ := series.First(); first.Time.After(model.StartTime) {
		report.AddWarning(subject,
			"Time series of '%s' starts at %s, after the model start time %s.",
			subject.NodeName(), first.Time.Format(timeLayout), model.StartTime.Format(timeLayout))
	}

	if last, _ := series.Last(); last.Time.Before(model.StopTime) {
		report.AddWarning(subject,
			"Time series of '%s' ends at %s, before the model stop time %s.",
			subject.NodeName(), last.Time.Format(timeLayout), model.StopTime.Format(timeLayout))
	}
}

// misalignedEntries counts timestamps whose offset from start is not a whole
// number of steps. The remainder is taken on integer nanoseconds.
func misalignedEntries(series models.TimeSeries, start time.Time, step time.Duration) (int, time.Time) {
	var (
		count int
		first time.Time
	)

	for _, tv := range series {
		if aligned(tv.Time, start, step) {
			continue
		}

		if count == 0 {
			first = tv.Time
		}

		count++
	}

	return count, first
}

// aligned reports whether t lies a whole number of steps from start.
// time.Time.Sub saturates past roughly 292 years, so the offset is built
// from whole seconds and nanoseconds instead.
func aligned(t, start time.Time, step time.Duration) bool {
	offset := new(big.Int).Mul(big.NewInt(t.Unix()-start.Unix()), big.NewInt(int64(time.Second)))
	offset.Add(offset, big.NewInt(int64(t.Nanosecond()-start.Nanosecond())))

	return offset.Rem(offset, big.NewInt(int64(step))).Sign() == 0
}
