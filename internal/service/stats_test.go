package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/yourname/sleepdiary/internal"
)

func mustParse(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(requestTimeLayout, value)
	assert.NoError(t, err)
	return parsed
}

func TestTimeInBedMinutes(t *testing.T) {
	bed := mustParse(t, "2025-05-05T22:30:00")
	wake := mustParse(t, "2025-05-06T06:45:00")
	assert.Equal(t, int64(495), TimeInBedMinutes(bed, wake))
}

func TestTimeInBedMinutesTruncates(t *testing.T) {
	bed := mustParse(t, "2025-05-05T22:30:00")
	wake := mustParse(t, "2025-05-05T23:00:59")
	assert.Equal(t, int64(30), TimeInBedMinutes(bed, wake))
}

func TestTimeInBedMinutesNegativePassThrough(t *testing.T) {
	bed := mustParse(t, "2025-05-06T08:00:00")
	wake := mustParse(t, "2025-05-05T22:00:00")
	assert.Equal(t, int64(-600), TimeInBedMinutes(bed, wake))
}

func TestCalculateAveragesEmptyWindow(t *testing.T) {
	start := mustParse(t, "2025-04-07T00:00:00")
	end := mustParse(t, "2025-05-06T00:00:00")

	resp := CalculateAverages(nil, start, end)

	assert.Equal(t, "2025-04-07", resp.StartDate)
	assert.Equal(t, "2025-05-06", resp.EndDate)
	assert.Equal(t, 0.0, resp.AverageTimeInBedMinutes)
	assert.Equal(t, "00:00", resp.AverageBedTime)
	assert.Equal(t, "00:00", resp.AverageWakeTime)
	assert.Equal(t, map[string]int{"BAD": 0, "OK": 0, "GOOD": 0}, resp.MorningFeelingFrequencies)
}

func TestCalculateAveragesAggregation(t *testing.T) {
	type night struct {
		bed, wake string
		feeling   internal.MorningFeeling
	}
	nights := []night{
		{"2025-05-01T22:30:00", "2025-05-02T06:45:00", internal.FeelingGood},
		{"2025-05-02T23:00:00", "2025-05-03T07:00:00", internal.FeelingOK},
		{"2025-05-03T22:45:00", "2025-05-04T06:30:00", internal.FeelingGood},
		{"2025-05-04T23:15:00", "2025-05-05T07:15:00", internal.FeelingBad},
		{"2025-05-05T22:00:00", "2025-05-06T06:00:00", internal.FeelingGood},
	}

	logs := make([]internal.SleepLog, len(nights))
	for i, n := range nights {
		bed := mustParse(t, n.bed)
		wake := mustParse(t, n.wake)
		logs[i] = internal.SleepLog{
			BedTime:          bed,
			WakeTime:         wake,
			TimeInBedMinutes: TimeInBedMinutes(bed, wake),
			MorningFeeling:   n.feeling,
		}
	}

	start := mustParse(t, "2025-04-07T00:00:00")
	end := mustParse(t, "2025-05-06T00:00:00")
	resp := CalculateAverages(logs, start, end)

	assert.Equal(t, 480.0, resp.AverageTimeInBedMinutes)
	assert.Equal(t, "22:42", resp.AverageBedTime)
	assert.Equal(t, "06:42", resp.AverageWakeTime)
	assert.Equal(t, map[string]int{"GOOD": 3, "OK": 1, "BAD": 1}, resp.MorningFeelingFrequencies)
}

// The clock-time mean is a plain linear mean of seconds-since-midnight.
// Two bed times around midnight average toward midday; that behavior is
// contractual, not a bug.
func TestCalculateAveragesDoesNotWrapMidnight(t *testing.T) {
	logs := []internal.SleepLog{
		{BedTime: mustParse(t, "2025-05-01T23:50:00"), WakeTime: mustParse(t, "2025-05-02T06:00:00"), MorningFeeling: internal.FeelingOK},
		{BedTime: mustParse(t, "2025-05-03T00:10:00"), WakeTime: mustParse(t, "2025-05-03T06:00:00"), MorningFeeling: internal.FeelingOK},
	}

	resp := CalculateAverages(logs, mustParse(t, "2025-04-07T00:00:00"), mustParse(t, "2025-05-06T00:00:00"))

	assert.Equal(t, "12:00", resp.AverageBedTime)
}
