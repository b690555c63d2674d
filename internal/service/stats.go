package service

import (
	"fmt"
	"time"

	"github.com/yourname/sleepdiary/internal"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
	// Request bodies carry naive ISO-8601 timestamps, no zone designator.
	requestTimeLayout = "2006-01-02T15:04:05"
)

type SleepAveragesResponse struct {
	StartDate                 string         `json:"startDate"`
	EndDate                   string         `json:"endDate"`
	AverageTimeInBedMinutes   float64        `json:"averageTimeInBedMinutes"`
	AverageBedTime            string         `json:"averageBedTime"`
	AverageWakeTime           string         `json:"averageWakeTime"`
	MorningFeelingFrequencies map[string]int `json:"morningFeelingFrequencies"`
}

// TimeInBedMinutes is the whole-minute span from bedTime to wakeTime,
// truncated toward zero. A wakeTime before bedTime yields a negative
// value that is stored as-is, never clamped.
func TimeInBedMinutes(bedTime, wakeTime time.Time) int64 {
	return int64(wakeTime.Sub(bedTime) / time.Minute)
}

// CalculateAverages aggregates the given logs over the [start, end]
// window. An empty set yields the zero-value response with the window
// bounds still filled in.
func CalculateAverages(logs []internal.SleepLog, start, end time.Time) SleepAveragesResponse {
	resp := SleepAveragesResponse{
		StartDate:       start.Format(dateLayout),
		EndDate:         end.Format(dateLayout),
		AverageBedTime:  "00:00",
		AverageWakeTime: "00:00",
		MorningFeelingFrequencies: map[string]int{
			string(internal.FeelingBad):  0,
			string(internal.FeelingOK):   0,
			string(internal.FeelingGood): 0,
		},
	}
	if len(logs) == 0 {
		return resp
	}

	var totalMinutes int64
	bedTimes := make([]time.Time, len(logs))
	wakeTimes := make([]time.Time, len(logs))
	for i, l := range logs {
		totalMinutes += l.TimeInBedMinutes
		bedTimes[i] = l.BedTime
		wakeTimes[i] = l.WakeTime
		resp.MorningFeelingFrequencies[string(l.MorningFeeling)]++
	}

	resp.AverageTimeInBedMinutes = float64(totalMinutes) / float64(len(logs))
	resp.AverageBedTime = averageClockTime(bedTimes)
	resp.AverageWakeTime = averageClockTime(wakeTimes)
	return resp
}

// averageClockTime takes the linear mean of seconds-since-midnight and
// renders it as HH:MM. Deliberately does not wrap around midnight, so
// populations straddling midnight average toward midday; callers rely on
// that exact behavior.
func averageClockTime(times []time.Time) string {
	if len(times) == 0 {
		return "00:00"
	}
	var total int64
	for _, t := range times {
		total += int64(t.Hour()*3600 + t.Minute()*60 + t.Second())
	}
	mean := total / int64(len(times))
	return fmt.Sprintf("%02d:%02d", mean/3600, (mean%3600)/60)
}
