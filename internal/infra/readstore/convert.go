package readstore

import (
	"branch-requests/internal/domain/request"
)

func domainStatus(s string) (request.Status, error) {
	return request.NewStatus(s)
}

func domainTime(minutes int) (request.TimeOfDay, error) {
	return request.TimeOfDayFromMinutes(minutes)
}
