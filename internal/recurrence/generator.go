package recurrence

import "time"

// stepFunc advances one raw occurrence date by a single rule step. Step
// functions are pure and always move strictly forward in time.
type stepFunc func(r Rule, cur time.Time) time.Time

// steps is the pattern dispatch registry. Adding a pattern means adding an
// entry here; nothing else branches on Pattern. A pattern without an entry is
// treated as terminal by the bounding loop. "custom" rules carry no
// machine-readable cadence of their own, so they are registered as an
// explicit alias of the monthly step.
var steps = map[Pattern]stepFunc{
	PatternDaily:      stepDays(1),
	PatternWeekly:     stepWeeks(1),
	PatternBiweekly:   stepWeeks(2),
	PatternMonthly:    stepMonths(1),
	PatternBimonthly:  stepMonths(2),
	PatternQuarterly:  stepMonths(3),
	PatternSemiannual: stepMonths(6),
	PatternYearly:     stepMonths(12),
	PatternCustom:     stepMonths(1),
}

// nextOccurrence computes the next raw (unadjusted) occurrence after cur.
// The second return value is false when the pattern has no registered step.
func nextOccurrence(r Rule, cur time.Time) (time.Time, bool) {
	step, ok := steps[r.Pattern]
	if !ok {
		return time.Time{}, false
	}
	return step(r, cur), true
}

func stepDays(days int) stepFunc {
	return func(r Rule, cur time.Time) time.Time {
		return cur.AddDate(0, 0, days*r.Interval)
	}
}

func stepWeeks(weeks int) stepFunc {
	return func(r Rule, cur time.Time) time.Time {
		next := cur.AddDate(0, 0, 7*weeks*r.Interval)
		return alignWeekday(next, r.DayOfWeek)
	}
}

func stepMonths(months int) stepFunc {
	return func(r Rule, cur time.Time) time.Time {
		return addMonthsClamped(cur, months*r.Interval, preferredDay(r))
	}
}

// alignWeekday moves d forward to the target weekday. The delta is
// (target - current + 7) mod 7, which only ever moves forward; that keeps
// weekly progress monotonic even when the anchor is misaligned.
func alignWeekday(d time.Time, target *time.Weekday) time.Time {
	if target == nil {
		return d
	}
	delta := (int(*target) - int(d.Weekday()) + 7) % 7
	return d.AddDate(0, 0, delta)
}

// preferredDay is the day-of-month a monthly-family rule aims for: the
// explicit dayOfMonth when configured, otherwise the anchor's day. Keeping the
// preference on the rule (not the current date) is what lets a day-31 rule
// recover to the 31st after passing through February.
func preferredDay(r Rule) int {
	if r.DayOfMonth != nil {
		return *r.DayOfMonth
	}
	return DateOnly(r.StartDate).Day()
}

// addMonthsClamped adds months to t and clamps the day to
// min(day, days_in_target_month). time.AddDate is unsuitable here: it
// normalizes Jan 31 + 1 month to Mar 2/3 instead of Feb 28/29.
func addMonthsClamped(t time.Time, months, day int) time.Time {
	total := int(t.Month()) - 1 + months
	year := t.Year() + total/12
	month := time.Month(total%12 + 1)
	if day > daysInMonth(year, month) {
		day = daysInMonth(year, month)
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// firstOnOrAfter computes the rule's first raw occurrence on or after the
// given date in closed form. The anchor is never clamped to the window and
// never walked forward one step at a time, so the day-of-month / day-of-week
// phase of long-lived rules is preserved no matter how far back they start.
func firstOnOrAfter(r Rule, from time.Time) (time.Time, bool) {
	anchor := DateOnly(r.StartDate)
	from = DateOnly(from)
	if !anchor.Before(from) {
		return anchor, true
	}

	switch r.Pattern {
	case PatternDaily:
		step := r.Interval
		k := ceilDiv(daysBetween(anchor, from), step)
		return anchor.AddDate(0, 0, k*step), true

	case PatternWeekly, PatternBiweekly:
		step := 7 * r.Interval
		if r.Pattern == PatternBiweekly {
			step = 14 * r.Interval
		}
		// Occurrence n (n >= 1) lands delta days after anchor+n*step, where
		// delta is the constant weekday realignment of the anchor.
		delta := alignWeekday(anchor, r.DayOfWeek).Sub(anchor)
		deltaDays := int(delta.Hours() / 24)
		k := ceilDiv(daysBetween(anchor, from)-deltaDays, step)
		if k < 1 {
			k = 1
		}
		return anchor.AddDate(0, 0, k*step+deltaDays), true

	case PatternMonthly, PatternBimonthly, PatternQuarterly,
		PatternSemiannual, PatternYearly, PatternCustom:
		step := monthsPerStep(r.Pattern) * r.Interval
		months := (from.Year()-anchor.Year())*12 + int(from.Month()) - int(anchor.Month())
		k := ceilDiv(months, step)
		if k < 1 {
			k = 1
		}
		candidate := addMonthsClamped(anchor, k*step, preferredDay(r))
		if candidate.Before(from) {
			candidate = addMonthsClamped(anchor, (k+1)*step, preferredDay(r))
		}
		return candidate, true
	}
	return time.Time{}, false
}

func monthsPerStep(p Pattern) int {
	switch p {
	case PatternBimonthly:
		return 2
	case PatternQuarterly:
		return 3
	case PatternSemiannual:
		return 6
	case PatternYearly:
		return 12
	default:
		return 1
	}
}

func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
