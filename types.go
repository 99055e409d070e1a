package timespeak

import (
	"fmt"
	"strings"
	"time"
)

// TypeHint breaks the time/interval classification tie for sentences that
// carry no day, meridiem or daypart marker ("at 5" vs "for 5 minutes").
type TypeHint string

const (
	HintNone     TypeHint = ""
	HintTime     TypeHint = "time"
	HintInterval TypeHint = "interval"
)

// Canonical tokens every locale pack normalizes its surface words to.
const (
	TokenAM       = "am"
	TokenPM       = "pm"
	TokenNoon     = "noon"
	TokenMidnight = "midnight"
	TokenToday    = "today"
	TokenTomorrow = "tomorrow"

	FractionHalf         = "half"
	FractionQuarter      = "quarter"
	FractionThreeQuarter = "threequarter"

	OperatorAnd    = "and"
	OperatorMinus  = "minus"
	OperatorAfter  = "after"
	OperatorBefore = "before"
)

// weekdays in canonical order. Index 0 is monday to match the rollover
// arithmetic in the resolver.
var weekdays = []string{
	"monday",
	"tuesday",
	"wednesday",
	"thursday",
	"friday",
	"saturday",
	"sunday",
}

// TimerInfo is the typed intermediate record produced by the builder after a
// pattern match, before time resolution. Values are final once constructed.
type TimerInfo struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int

	DayOfWeek   string // canonical day token or empty
	Meridiem    string // "am", "pm" or empty
	TimeOfDay   string // daypart token or empty
	SpecialHour string // "noon", "midnight" or empty

	IsTime bool

	// Sentence is the original input, Pattern the template that matched.
	// Both are diagnostic only.
	Sentence string
	Pattern  string
}

// ResolvedTime is an absolute point in time plus the matched day-of-week and
// meridiem echoed back for display.
type ResolvedTime struct {
	At        time.Time
	DayOfWeek string
	Meridiem  string
}

// ResolvedDuration is an offset relative to "now".
type ResolvedDuration struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

// Duration converts the resolved offset into a time.Duration.
func (d ResolvedDuration) Duration() time.Duration {
	return time.Duration(d.Days)*24*time.Hour +
		time.Duration(d.Hours)*time.Hour +
		time.Duration(d.Minutes)*time.Minute +
		time.Duration(d.Seconds)*time.Second
}

// String renders the compact form used in logs and timer lists, e.g. "2h 30m".
func (d ResolvedDuration) String() string {
	var parts []string
	if d.Days != 0 {
		parts = append(parts, fmt.Sprintf("%dd", d.Days))
	}
	if d.Hours != 0 {
		parts = append(parts, fmt.Sprintf("%dh", d.Hours))
	}
	if d.Minutes != 0 {
		parts = append(parts, fmt.Sprintf("%dm", d.Minutes))
	}
	if d.Seconds != 0 {
		parts = append(parts, fmt.Sprintf("%ds", d.Seconds))
	}
	if len(parts) == 0 {
		return "0s"
	}
	return strings.Join(parts, " ")
}

// Result is the decoded output handed back to the caller. Exactly one of
// Time or Interval is set, selected by IsTime.
type Result struct {
	Input      string
	Normalized string
	Locale     string
	Pattern    string

	Info   TimerInfo
	IsTime bool

	Time     *ResolvedTime
	Interval *ResolvedDuration
}
