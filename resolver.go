package timespeak

import "time"

// pmDayparts are time-of-day tokens that imply the afternoon half of the
// clock when the stated hour is below 12.
var pmDayparts = map[string]struct{}{
	TokenPM:     {},
	"afternoon": {},
	"evening":   {},
	"night":     {},
	"tonight":   {},
}

// resolveTime turns a time-classified TimerInfo into an absolute timestamp
// relative to now, handling meridiem correction, special hours, day-of-week
// rollover and the ambiguous past-time heuristics.
//
// Field values are taken as given: implausible input (hour 26) resolves to
// an implausible but well-formed timestamp rather than an error.
func resolveTime(info TimerInfo, now time.Time, loc *time.Location) ResolvedTime {
	if loc == nil {
		loc = now.Location()
	}
	now = now.In(loc)

	hours, minutes, seconds := info.Hours, info.Minutes, info.Seconds

	if hours < 12 && (info.Meridiem == TokenPM || impliesPM(info.TimeOfDay)) {
		hours += 12
	}

	switch info.SpecialHour {
	case TokenNoon:
		hours, minutes, seconds = 12, 0, 0
	case TokenMidnight:
		hours, minutes, seconds = 0, 0, 0
	}

	at := time.Date(now.Year(), now.Month(), now.Day(), hours, minutes, seconds, 0, loc)

	switch {
	case info.DayOfWeek == TokenTomorrow:
		at = at.AddDate(0, 0, 1)
	case info.DayOfWeek == TokenToday, info.DayOfWeek == "":
		// handled below
	default:
		at = at.AddDate(0, 0, daysUntilWeekday(info.DayOfWeek, now, at))
	}

	if info.DayOfWeek == "" && !at.After(now) {
		if info.Meridiem != "" || info.TimeOfDay != "" || info.SpecialHour != "" {
			// An explicit half of the day was stated, so the next
			// occurrence is a full day ahead.
			at = at.AddDate(0, 0, 1)
		} else {
			// No am/pm stated: assume the complementary half of the
			// 12 hour cycle.
			for !at.After(now) {
				at = at.Add(12 * time.Hour)
			}
		}
	}

	return ResolvedTime{
		At:        at,
		DayOfWeek: info.DayOfWeek,
		Meridiem:  echoMeridiem(info),
	}
}

// daysUntilWeekday counts forward from now to the next occurrence of the
// canonical weekday. Zero days is only allowed when the computed time is
// still ahead today; otherwise the same weekday next week is meant.
func daysUntilWeekday(day string, now, at time.Time) int {
	target := -1
	for i, name := range weekdays {
		if name == day {
			target = i
			break
		}
	}
	if target < 0 {
		return 0
	}

	// time.Weekday counts from Sunday; the canonical list from Monday.
	today := (int(now.Weekday()) + 6) % 7
	ahead := (target - today + 7) % 7
	if ahead == 0 && !at.After(now) {
		ahead = 7
	}
	return ahead
}

// resolveDuration maps an interval-classified TimerInfo onto the offset
// value returned to the caller. No calendar arithmetic is involved.
func resolveDuration(info TimerInfo) ResolvedDuration {
	return ResolvedDuration{
		Days:    info.Days,
		Hours:   info.Hours,
		Minutes: info.Minutes,
		Seconds: info.Seconds,
	}
}

func impliesPM(timeOfDay string) bool {
	_, ok := pmDayparts[timeOfDay]
	return ok
}

// echoMeridiem reports the meridiem to hand back for display, preferring the
// dedicated field over an am/pm captured as time-of-day.
func echoMeridiem(info TimerInfo) string {
	if info.Meridiem != "" {
		return info.Meridiem
	}
	if info.TimeOfDay == TokenAM || info.TimeOfDay == TokenPM {
		return info.TimeOfDay
	}
	return ""
}
