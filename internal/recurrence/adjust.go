package recurrence

import "time"

// adjuster transforms raw occurrence dates into policy-adjusted dates for one
// rule. Adjustment is total: it always returns a concrete date and never
// errors; with nothing configured it is the identity.
type adjuster struct {
	rule     Rule
	holidays HolidaySource
}

func newAdjuster(rule Rule, holidays HolidaySource) *adjuster {
	if holidays == nil {
		holidays = NoHolidays()
	}
	return &adjuster{rule: rule, holidays: holidays}
}

// Adjust applies the payment-day policy and then the boolean flags in fixed
// order, each flag re-testing the already-adjusted date: paymentDay →
// skipWeekends → skipHolidays → moveToNextBusinessDay.
func (a *adjuster) Adjust(raw time.Time) time.Time {
	d := a.applyPaymentDay(DateOnly(raw))

	if a.rule.SkipWeekends && isWeekend(d) {
		d = a.nextBusinessDay(d)
	}
	if a.rule.SkipHolidays && a.holidays.IsHoliday(d) {
		d = a.nextBusinessDay(d)
	}
	if a.rule.MoveToNextBusinessDay && !a.isBusinessDay(d) {
		d = a.nextBusinessDay(d)
	}
	return d
}

func (a *adjuster) applyPaymentDay(d time.Time) time.Time {
	switch a.rule.PaymentDay {
	case PaymentDayBusinessDay:
		if !a.isBusinessDay(d) {
			return a.nextBusinessDay(d)
		}
		return d

	case PaymentDayFirstBusinessDay:
		first := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
		if !a.isBusinessDay(first) {
			return a.nextBusinessDay(first)
		}
		return first

	case PaymentDayLastBusinessDay:
		last := lastDayOfMonth(d)
		if !a.isBusinessDay(last) {
			return a.prevBusinessDay(last)
		}
		return last

	case PaymentDayFixedDay:
		day := d.Day()
		if a.rule.DayOfMonth != nil {
			day = *a.rule.DayOfMonth
		}
		if limit := daysInMonth(d.Year(), d.Month()); day > limit {
			day = limit
		}
		// Fixed days are never rolled, even onto weekends or holidays.
		return time.Date(d.Year(), d.Month(), day, 0, 0, 0, 0, time.UTC)

	case PaymentDayLastDayOfMonth:
		// Always the last calendar day, never rolled.
		return lastDayOfMonth(d)

	case PaymentDayClosestBusinessDay:
		return a.closestBusinessDay(d)
	}
	return d
}

// closestBusinessDay keeps d when it already is a business day; otherwise it
// picks whichever of the nearest preceding and following business days is
// closer, breaking ties toward the following day.
func (a *adjuster) closestBusinessDay(d time.Time) time.Time {
	if a.isBusinessDay(d) {
		return d
	}
	prev := a.prevBusinessDay(d)
	next := a.nextBusinessDay(d)
	if daysBetween(prev, d) < daysBetween(d, next) {
		return prev
	}
	return next
}

// isBusinessDay reports whether d is a weekday that is not a holiday.
// Holidays only count when the rule opts into the Brazilian calendar.
func (a *adjuster) isBusinessDay(d time.Time) bool {
	if isWeekend(d) {
		return false
	}
	if a.rule.ConsiderBrazilianHolidays && a.holidays.IsHoliday(d) {
		return false
	}
	return true
}

func (a *adjuster) nextBusinessDay(d time.Time) time.Time {
	for {
		d = d.AddDate(0, 0, 1)
		if a.isBusinessDay(d) {
			return d
		}
	}
}

func (a *adjuster) prevBusinessDay(d time.Time) time.Time {
	for {
		d = d.AddDate(0, 0, -1)
		if a.isBusinessDay(d) {
			return d
		}
	}
}

func isWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func lastDayOfMonth(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), daysInMonth(d.Year(), d.Month()), 0, 0, 0, 0, time.UTC)
}
