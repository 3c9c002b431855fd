package request

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidTimeOfDay = errors.New("invalid time of day")

// TimeOfDay is a wall-clock time with minute precision, stored as minutes
// since midnight.
type TimeOfDay struct {
	minutes int
}

func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, ErrInvalidTimeOfDay
	}
	return TimeOfDay{minutes: hour*60 + minute}, nil
}

// ParseTimeOfDay parses "15:04" formatted strings.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return TimeOfDay{}, ErrInvalidTimeOfDay
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return TimeOfDay{}, ErrInvalidTimeOfDay
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return TimeOfDay{}, ErrInvalidTimeOfDay
	}
	return NewTimeOfDay(hour, minute)
}

func TimeOfDayFromMinutes(minutes int) (TimeOfDay, error) {
	if minutes < 0 || minutes >= 24*60 {
		return TimeOfDay{}, ErrInvalidTimeOfDay
	}
	return TimeOfDay{minutes: minutes}, nil
}

func (t TimeOfDay) Minutes() int { return t.minutes }
func (t TimeOfDay) Hour() int    { return t.minutes / 60 }
func (t TimeOfDay) Minute() int  { return t.minutes % 60 }

func (t TimeOfDay) Before(other TimeOfDay) bool { return t.minutes < other.minutes }
func (t TimeOfDay) After(other TimeOfDay) bool  { return t.minutes > other.minutes }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

type FieldViolation struct {
	Field   string
	Message string
}

// Violations collects every failed rule for one input; callers report all of
// them at once instead of stopping at the first.
type Violations []FieldViolation

func (v Violations) IsEmpty() bool {
	return len(v) == 0
}

func (v Violations) Error() string {
	msgs := make([]string, 0, len(v))
	for _, fv := range v {
		msgs = append(msgs, fv.Field+": "+fv.Message)
	}
	return strings.Join(msgs, "; ")
}

const (
	TitleMaxLen       = 200
	DescriptionMaxLen = 500
	ReasonMaxLen      = 500
)

type DraftInput struct {
	BranchID    uuid.UUID
	Title       string
	Description *string
	Date        time.Time
	StartTime   TimeOfDay
	EndTime     TimeOfDay
}

// ValidateDraftInput checks every field rule and returns the full violation
// list. today is compared at date precision.
func ValidateDraftInput(in DraftInput, today time.Time) Violations {
	var violations Violations

	title := strings.TrimSpace(in.Title)
	if title == "" {
		violations = append(violations, FieldViolation{Field: "title", Message: "title is required"})
	} else if len([]rune(title)) > TitleMaxLen {
		violations = append(violations, FieldViolation{Field: "title", Message: fmt.Sprintf("title must be at most %d characters", TitleMaxLen)})
	}

	if in.Description != nil && len([]rune(*in.Description)) > DescriptionMaxLen {
		violations = append(violations, FieldViolation{Field: "description", Message: fmt.Sprintf("description must be at most %d characters", DescriptionMaxLen)})
	}

	if truncateToDate(in.Date).Before(truncateToDate(today)) {
		violations = append(violations, FieldViolation{Field: "request_date", Message: "request date must not be in the past"})
	}

	if !in.StartTime.Before(in.EndTime) {
		violations = append(violations, FieldViolation{Field: "start_time", Message: "start time must be before end time"})
	}
	if !IsHalfHourIncrement(in.StartTime) {
		violations = append(violations, FieldViolation{Field: "start_time", Message: "start time must be on a half-hour boundary"})
	}
	if !IsHalfHourIncrement(in.EndTime) {
		violations = append(violations, FieldViolation{Field: "end_time", Message: "end time must be on a half-hour boundary"})
	}
	if in.StartTime.Before(in.EndTime) && !IntervalWithinWorkingHours(in.StartTime, in.EndTime) {
		violations = append(violations, FieldViolation{Field: "start_time", Message: "requested interval must fall within working hours"})
	}

	return violations
}

// ValidateReason checks a decision reason; required toggles the empty check.
func ValidateReason(reason string, required bool) Violations {
	var violations Violations

	trimmed := strings.TrimSpace(reason)
	if required && trimmed == "" {
		violations = append(violations, FieldViolation{Field: "reason", Message: "reason is required"})
	}
	if len([]rune(reason)) > ReasonMaxLen {
		violations = append(violations, FieldViolation{Field: "reason", Message: fmt.Sprintf("reason must be at most %d characters", ReasonMaxLen)})
	}

	return violations
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
