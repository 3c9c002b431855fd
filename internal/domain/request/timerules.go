package request

// Working hours: [09:00, 13:00] and [14:00, 18:00], boundaries inclusive.
// 13:00-14:00 is the lunch break; no interval may span it.
const (
	morningStartMin   = 9 * 60
	morningEndMin     = 13 * 60
	afternoonStartMin = 14 * 60
	afternoonEndMin   = 18 * 60
)

func IsHalfHourIncrement(t TimeOfDay) bool {
	return t.Minute()%30 == 0
}

func IsWithinWorkingHours(t TimeOfDay) bool {
	m := t.Minutes()
	return (m >= morningStartMin && m <= morningEndMin) ||
		(m >= afternoonStartMin && m <= afternoonEndMin)
}

// IntervalWithinWorkingHours reports whether both endpoints are within working
// hours and the interval does not span the lunch break.
func IntervalWithinWorkingHours(start, end TimeOfDay) bool {
	if !IsWithinWorkingHours(start) || !IsWithinWorkingHours(end) {
		return false
	}
	if start.Minutes() < morningEndMin && end.Minutes() > morningEndMin {
		return false
	}
	return true
}
