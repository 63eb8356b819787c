package survey

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSurveyCSV = `Interval,Layer,Sv_mean,Frequency,Date_M,Time_S,Time_E,Lat_M,Lon_M
1,1,-72.4,38,2024-06-12,08:00:00,08:05:00,62.4701,6.1502
2,1,-999.0,38,2024-06-12,08:05:00,08:10:00,62.4712,6.1533
3,1,-70.1,38,2024-06-12,08:10:00,08:15:00,62.4720,999.0
4,2,-65.0,38,2024-06-12,08:00:00,08:05:00,62.4701,6.1502
5,1,-69.2,38,2024-06-12,bad-time,08:20:00,62.4731,6.1570
`

func TestReadRecordsFrom(t *testing.T) {
	records, stats, err := ReadRecordsFrom(strings.NewReader(sampleSurveyCSV))
	require.NoError(t, err)

	assert.Equal(t, 5, stats.Rows)
	assert.Equal(t, 1, stats.NoFix, "Lon_M == 999.0 row must be discarded")
	assert.Equal(t, 1, stats.Malformed)
	require.Len(t, records, 3)

	for _, rec := range records {
		assert.NotEqual(t, 3, rec.Interval, "no-fix interval leaked through ingestion")
	}

	first := records[0]
	assert.Equal(t, 1, first.Interval)
	require.NotNil(t, first.SvMean)
	assert.InDelta(t, -72.4, *first.SvMean, 1e-9)
	assert.Equal(t, time.Date(2024, 6, 12, 8, 0, 0, 0, time.UTC), first.Start)
	assert.Equal(t, time.Date(2024, 6, 12, 8, 5, 0, 0, time.UTC), first.End)
}

func TestReadRecordsScrubsMissingSentinel(t *testing.T) {
	records, _, err := ReadRecordsFrom(strings.NewReader(sampleSurveyCSV))
	require.NoError(t, err)

	var second *Record
	for i := range records {
		if records[i].Interval == 2 {
			second = &records[i]
		}
	}
	require.NotNil(t, second)
	assert.Nil(t, second.SvMean, "−999.0 must become a nil value, never a measurement")
	require.NotNil(t, second.Frequency)
}

func TestReadRecordsSortedByStart(t *testing.T) {
	// Rows deliberately out of time order.
	csv := `Interval,Layer,Sv_mean,Frequency,Date_M,Time_S,Time_E,Lat_M,Lon_M
2,1,-70.0,38,2024-06-12,08:05:00,08:10:00,62.47,6.15
1,1,-71.0,38,2024-06-12,08:00:00,08:05:00,62.47,6.15
`
	records, _, err := ReadRecordsFrom(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 1, records[0].Interval)
	assert.Equal(t, 2, records[1].Interval)
}

func TestReadRecordsMidnightStraddle(t *testing.T) {
	csv := `Interval,Layer,Sv_mean,Frequency,Date_M,Time_S,Time_E,Lat_M,Lon_M
9,1,-70.0,38,2024-06-12,23:58:00,00:03:00,62.47,6.15
`
	records, _, err := ReadRecordsFrom(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].End.After(records[0].Start), "interval across midnight must end on the next day")
}

func TestReadRecordsEmptyInput(t *testing.T) {
	csv := "Interval,Layer,Sv_mean,Frequency,Date_M,Time_S,Time_E,Lat_M,Lon_M\n"
	_, _, err := ReadRecordsFrom(strings.NewReader(csv))
	assert.ErrorIs(t, err, ErrNoRecords)
}

func TestReadRecordsMissingColumn(t *testing.T) {
	csv := `Interval,Layer,Sv_mean,Frequency,Date_M,Time_S,Time_E,Lat_M
1,1,-72.4,38,2024-06-12,08:00:00,08:05:00,62.4701
`
	_, _, err := ReadRecordsFrom(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Lon_M")
}

func TestFilterLayer(t *testing.T) {
	records, _, err := ReadRecordsFrom(strings.NewReader(sampleSurveyCSV))
	require.NoError(t, err)

	layer1 := FilterLayer(records, DefaultLayer)
	require.Len(t, layer1, 2)
	for _, rec := range layer1 {
		assert.Equal(t, DefaultLayer, rec.Layer)
	}
}
