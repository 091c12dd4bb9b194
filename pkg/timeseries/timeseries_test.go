package timeseries

import (
	"testing"
	"time"

	"github.com/dukex/rtcontrol/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

func values(series models.TimeSeries) []float64 {
	vs := make([]float64, len(series))
	for i, tv := range series {
		vs[i] = tv.Value
	}

	return vs
}

func TestRegular(t *testing.T) {
	series, err := Regular(start, start.Add(3*time.Hour), time.Hour, 2.5)
	require.NoError(t, err)

	assert.Equal(t, []time.Time{start, start.Add(time.Hour), start.Add(2 * time.Hour), start.Add(3 * time.Hour)}, series.Times())
	assert.Equal(t, []float64{2.5, 2.5, 2.5, 2.5}, values(series))

	series, err = Regular(start, start.Add(90*time.Minute), time.Hour, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, series.Len())

	series, err = Regular(start, start, time.Hour, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, series.Len())
}

func TestRegular_Errors(t *testing.T) {
	_, err := Regular(start, start.Add(time.Hour), 0, 1)
	require.ErrorIs(t, err, ErrInvalidStep)

	_, err = Regular(start, start.Add(-time.Hour), time.Hour, 1)
	require.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestFromSchedule(t *testing.T) {
	tests := []struct {
		name string
		expr string
		step time.Duration
		want []float64
	}{
		{
			name: "daily at six",
			expr: "0 6 * * *",
			step: 6 * time.Hour,
			want: []float64{0, 1, 0, 0, 0},
		},
		{
			name: "within the step",
			expr: "30 13 * * *",
			step: 6 * time.Hour,
			want: []float64{0, 0, 1, 0, 0},
		},
		{
			name: "every minute",
			expr: "* * * * *",
			step: 12 * time.Hour,
			want: []float64{1, 1, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series, err := FromSchedule(tt.expr, start, start.Add(24*time.Hour), tt.step, 1, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, values(series))
		})
	}
}

func TestFromSchedule_InvalidExpression(t *testing.T) {
	_, err := FromSchedule("every day", start, start.Add(time.Hour), time.Hour, 1, 0)
	require.ErrorIs(t, err, ErrInvalidSchedule)

	_, err = FromSchedule("* * * * *", start, start.Add(time.Hour), -time.Hour, 1, 0)
	require.ErrorIs(t, err, ErrInvalidStep)
}
