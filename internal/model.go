package internal

import (
	"fmt"
	"time"
)

// MorningFeeling is the subjective wake-up quality reported with a log.
type MorningFeeling string

const (
	FeelingBad  MorningFeeling = "BAD"
	FeelingOK   MorningFeeling = "OK"
	FeelingGood MorningFeeling = "GOOD"
)

// ParseMorningFeeling accepts only the exact literals BAD, OK and GOOD.
func ParseMorningFeeling(s string) (MorningFeeling, error) {
	switch MorningFeeling(s) {
	case FeelingBad, FeelingOK, FeelingGood:
		return MorningFeeling(s), nil
	}
	return "", fmt.Errorf("unknown morning feeling %q, must be one of BAD, OK, GOOD", s)
}

type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// SleepLog is one night's record. Date is the calendar day the log was
// filed on (server clock at creation), not derived from BedTime/WakeTime.
// BedTime and WakeTime are naive local timestamps. TimeInBedMinutes is
// computed once at creation and may be negative.
type SleepLog struct {
	ID               string         `json:"id"`
	UserID           string         `json:"user_id"`
	Date             time.Time      `json:"date"`
	BedTime          time.Time      `json:"bed_time"`
	WakeTime         time.Time      `json:"wake_time"`
	TimeInBedMinutes int64          `json:"time_in_bed_minutes"`
	MorningFeeling   MorningFeeling `json:"morning_feeling"`
	CreatedAt        time.Time      `json:"created_at"`
}
