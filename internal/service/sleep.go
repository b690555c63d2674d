package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yourname/sleepdiary/internal"
	"github.com/yourname/sleepdiary/internal/storage"
)

type CreateSleepLogRequest struct {
	BedTime        string `json:"bedTime" validate:"required"`
	WakeTime       string `json:"wakeTime" validate:"required"`
	MorningFeeling string `json:"morningFeeling" validate:"required"`
	UserID         string `json:"userId" validate:"required"`
}

type SleepLogResponse struct {
	ID               string                  `json:"id"`
	Date             string                  `json:"date"`
	BedTime          string                  `json:"bedTime"`
	WakeTime         string                  `json:"wakeTime"`
	TimeInBedMinutes int64                   `json:"timeInBedMinutes"`
	MorningFeeling   internal.MorningFeeling `json:"morningFeeling"`
	UserID           string                  `json:"userId"`
}

func ValidateCreateSleepLogRequest(req *CreateSleepLogRequest) error {
	return validate.Struct(req)
}

func parseRequestTime(field, value string) (time.Time, error) {
	t, err := time.Parse(requestTimeLayout, value)
	if err != nil {
		return time.Time{}, internal.NewInvalidArgument(fmt.Sprintf(
			"Invalid %s format. Please use ISO-8601 format (e.g. '2025-05-06T03:30:00')", field))
	}
	return t, nil
}

// CreateSleepLog files a log under today's server date. The referenced
// user must exist; a missing user is reported as invalid input (400),
// matching the behavior clients already depend on.
func CreateSleepLog(ctx context.Context, sleepRepo storage.SleepLogRepository, userRepo storage.UserRepository, req *CreateSleepLogRequest) (*SleepLogResponse, error) {
	bedTime, err := parseRequestTime("bedTime", req.BedTime)
	if err != nil {
		return nil, err
	}
	wakeTime, err := parseRequestTime("wakeTime", req.WakeTime)
	if err != nil {
		return nil, err
	}
	feeling, err := internal.ParseMorningFeeling(req.MorningFeeling)
	if err != nil {
		return nil, internal.NewInvalidArgument(err.Error())
	}

	user, err := userRepo.GetUserByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, internal.NewInvalidArgument(fmt.Sprintf("User not found with ID: %s", req.UserID))
	}

	now := time.Now()
	log := &internal.SleepLog{
		ID:               uuid.NewString(),
		UserID:           user.ID,
		Date:             time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),
		BedTime:          bedTime,
		WakeTime:         wakeTime,
		TimeInBedMinutes: TimeInBedMinutes(bedTime, wakeTime),
		MorningFeeling:   feeling,
		CreatedAt:        now,
	}
	if err := sleepRepo.SaveSleepLog(ctx, log); err != nil {
		return nil, err
	}

	return toSleepLogResponse(log), nil
}

// GetLastNightSleepByUserID returns (nil, nil) when the user has no
// logs. An unknown user id looks the same as a user with no logs here.
func GetLastNightSleepByUserID(ctx context.Context, sleepRepo storage.SleepLogRepository, userID string) (*SleepLogResponse, error) {
	log, err := sleepRepo.GetLastSleepLog(ctx, userID)
	if err != nil || log == nil {
		return nil, err
	}
	return toSleepLogResponse(log), nil
}

func GetAllSleepLogsByUserID(ctx context.Context, sleepRepo storage.SleepLogRepository, userID string) ([]SleepLogResponse, error) {
	logs, err := sleepRepo.ListSleepLogsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	responses := make([]SleepLogResponse, len(logs))
	for i := range logs {
		responses[i] = *toSleepLogResponse(&logs[i])
	}
	return responses, nil
}

// GetLast30DayAverages aggregates the user's logs dated within the last
// 30 calendar days including today. The window is re-anchored on the
// server date every call.
func GetLast30DayAverages(ctx context.Context, sleepRepo storage.SleepLogRepository, userID string) (*SleepAveragesResponse, error) {
	now := time.Now()
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	start := end.AddDate(0, 0, -29)

	logs, err := sleepRepo.ListSleepLogsInRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	averages := CalculateAverages(logs, start, end)
	return &averages, nil
}

func toSleepLogResponse(l *internal.SleepLog) *SleepLogResponse {
	return &SleepLogResponse{
		ID:               l.ID,
		Date:             l.Date.Format(dateLayout),
		BedTime:          l.BedTime.Format(dateTimeLayout),
		WakeTime:         l.WakeTime.Format(dateTimeLayout),
		TimeInBedMinutes: l.TimeInBedMinutes,
		MorningFeeling:   l.MorningFeeling,
		UserID:           l.UserID,
	}
}
