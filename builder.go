package timespeak

import (
	"strconv"
	"strings"
)

// fractionMultipliers resolves canonical fraction tokens to their share of
// the next lower unit.
var fractionMultipliers = map[string]float64{
	FractionHalf:         0.5,
	FractionQuarter:      0.25,
	FractionThreeQuarter: 0.75,
}

// timerBuilder accumulates decoded fields before constructing the immutable
// TimerInfo value. It never escapes buildTimerInfo.
type timerBuilder struct {
	days    int
	hours   int
	minutes int
	seconds int

	dayOfWeek   string
	meridiem    string
	timeOfDay   string
	specialHour string
}

// buildTimerInfo converts a matched field map into a TimerInfo, applying
// decimal carry-down, fraction arithmetic, operator inversion and the
// time/interval classification.
func buildTimerInfo(fields map[string]string, sentence, pattern string, hint TypeHint) TimerInfo {
	b := timerBuilder{
		dayOfWeek:   fields["day"],
		meridiem:    fields["meridiem"],
		timeOfDay:   fields["time_of_day"],
		specialHour: fields["special_hour"],
	}

	var partDay, partHour, partMinute float64
	b.days, partDay = splitNumber(fields["days"])
	b.hours, partHour = splitNumber(fields["hours"])
	b.minutes, partMinute = splitNumber(fields["minutes"])
	b.seconds, _ = splitNumber(fields["seconds"])

	// Fractional values carry down one unit level.
	if partDay > 0 {
		b.hours += int(partDay * 24)
	}
	if partHour > 0 {
		b.minutes += int(partHour * 60)
	}
	if partMinute > 0 {
		b.seconds += int(partMinute * 60)
	}

	b.applyFraction(fields["fractions"], fields["unit"])
	b.applyOperator(fields["operator"])

	info := TimerInfo{
		Days:        b.days,
		Hours:       b.hours,
		Minutes:     b.minutes,
		Seconds:     b.seconds,
		DayOfWeek:   b.dayOfWeek,
		Meridiem:    b.meridiem,
		TimeOfDay:   b.timeOfDay,
		SpecialHour: b.specialHour,
		Sentence:    sentence,
		Pattern:     pattern,
	}
	info.IsTime = classify(info, hint)
	return info
}

// applyFraction resolves a fraction word against whichever unit is present,
// mirroring how "half" shifts meaning between "an hour and a half" and
// "half an hour". With no numeric unit at all, a bare unit word from the
// match decides the level, defaulting to minutes.
func (b *timerBuilder) applyFraction(fraction, unit string) {
	multiplier, ok := fractionMultipliers[fraction]
	if !ok {
		return
	}

	switch {
	case b.minutes > 0:
		b.seconds += int(60 * multiplier)
	case b.hours > 0:
		b.minutes += int(60 * multiplier)
	case b.days > 0:
		b.hours += int(24 * multiplier)
	case unit == "day":
		b.hours += int(24 * multiplier)
	default:
		b.minutes += int(60 * multiplier)
	}
}

// applyOperator inverts the lower unit for subtractive phrasings such as
// "twenty to five" (4:40) or "2 hours before midnight".
func (b *timerBuilder) applyOperator(operator string) {
	if operator != OperatorBefore && operator != OperatorMinus {
		return
	}

	if b.minutes > 0 {
		b.minutes = 60 - b.minutes
		b.hours--
	} else if b.hours > 0 {
		b.hours = 24 - b.hours
		b.days--
	}
}

// classify decides whether the record is a clock time or an interval. Time
// markers dominate; otherwise a day count or seconds value signals an
// interval; the caller's hint breaks the remaining tie, defaulting to time.
func classify(info TimerInfo, hint TypeHint) bool {
	if info.DayOfWeek != "" || info.Meridiem != "" || info.SpecialHour != "" || info.TimeOfDay != "" {
		return true
	}
	if info.Days != 0 || info.Seconds != 0 {
		return false
	}
	if hint != HintNone {
		return hint == HintTime
	}
	return true
}

// splitNumber parses a decimal string into its whole part and fraction.
// Empty or malformed input yields zeros.
func splitNumber(value string) (int, float64) {
	if value == "" {
		return 0, 0
	}

	whole, frac, found := strings.Cut(value, ".")
	n, err := strconv.Atoi(whole)
	if err != nil {
		return 0, 0
	}
	if !found || frac == "" {
		return n, 0
	}

	part, err := strconv.ParseFloat("0."+frac, 64)
	if err != nil {
		return n, 0
	}
	return n, part
}
