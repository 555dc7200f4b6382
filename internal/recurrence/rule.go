// Package recurrence expands recurring financial obligation rules into
// concrete, policy-adjusted calendar dates. The package is pure: no I/O, no
// clock reads, no persistence. Identical inputs always produce identical
// output, which is what makes delete-and-regenerate safe for callers.
package recurrence

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Pattern identifies the cadence of a recurrence rule.
type Pattern string

const (
	PatternDaily      Pattern = "daily"
	PatternWeekly     Pattern = "weekly"
	PatternBiweekly   Pattern = "biweekly"
	PatternMonthly    Pattern = "monthly"
	PatternBimonthly  Pattern = "bimonthly"
	PatternQuarterly  Pattern = "quarterly"
	PatternSemiannual Pattern = "semiannual"
	PatternYearly     Pattern = "yearly"
	PatternCustom     Pattern = "custom"
)

// PaymentDay selects the Brazilian payment-day adjustment policy applied to
// each raw occurrence date before the boolean flags run.
type PaymentDay string

const (
	PaymentDayNone               PaymentDay = ""
	PaymentDayBusinessDay        PaymentDay = "business-day"
	PaymentDayFirstBusinessDay   PaymentDay = "first-business-day"
	PaymentDayLastBusinessDay    PaymentDay = "last-business-day"
	PaymentDayFixedDay           PaymentDay = "fixed-day"
	PaymentDayLastDayOfMonth     PaymentDay = "last-day-of-month"
	PaymentDayClosestBusinessDay PaymentDay = "closest-business-day"
)

// Priority is the urgency carried on materialized events.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// ErrInvalidRule is wrapped by all rule validation failures.
var ErrInvalidRule = errors.New("invalid recurrence rule")

// Rule describes how often and under what calendar-adjustment policy an
// obligation repeats. A Rule is treated as immutable for the duration of a
// generation run; editing a stored rule only affects future runs.
type Rule struct {
	Pattern  Pattern
	Interval int

	// DayOfWeek realigns weekly/biweekly occurrences (Sunday = 0).
	DayOfWeek *time.Weekday
	// DayOfMonth anchors monthly-family occurrences, clamped to month length.
	DayOfMonth *int
	// WeekOfMonth is accepted and validated for compatibility with stored
	// rules but no modeled pattern consumes it.
	WeekOfMonth *int

	PaymentDay PaymentDay

	StartDate      time.Time
	EndDate        *time.Time
	MaxOccurrences *int

	SkipWeekends              bool
	SkipHolidays              bool
	ConsiderBrazilianHolidays bool
	MoveToNextBusinessDay     bool
}

// Validate checks rule field ranges before any generation begins. It does not
// reject unregistered patterns: an unknown pattern terminates generation with
// a partial result instead (see Engine.Occurrences).
func (r Rule) Validate() error {
	if r.Interval < 1 {
		return fmt.Errorf("%w: interval must be a positive integer, got %d", ErrInvalidRule, r.Interval)
	}
	if r.DayOfWeek != nil && (*r.DayOfWeek < time.Sunday || *r.DayOfWeek > time.Saturday) {
		return fmt.Errorf("%w: dayOfWeek must be between 0 and 6, got %d", ErrInvalidRule, int(*r.DayOfWeek))
	}
	if r.DayOfMonth != nil && (*r.DayOfMonth < 1 || *r.DayOfMonth > 31) {
		return fmt.Errorf("%w: dayOfMonth must be between 1 and 31, got %d", ErrInvalidRule, *r.DayOfMonth)
	}
	if r.WeekOfMonth != nil && (*r.WeekOfMonth < 1 || *r.WeekOfMonth > 5) {
		return fmt.Errorf("%w: weekOfMonth must be between 1 and 5, got %d", ErrInvalidRule, *r.WeekOfMonth)
	}
	if r.StartDate.IsZero() {
		return fmt.Errorf("%w: startDate is required", ErrInvalidRule)
	}
	if r.EndDate != nil && r.EndDate.Before(r.StartDate) {
		return fmt.Errorf("%w: endDate precedes startDate", ErrInvalidRule)
	}
	if r.MaxOccurrences != nil && *r.MaxOccurrences < 1 {
		return fmt.Errorf("%w: maxOccurrences must be at least 1, got %d", ErrInvalidRule, *r.MaxOccurrences)
	}
	switch r.PaymentDay {
	case PaymentDayNone, PaymentDayBusinessDay, PaymentDayFirstBusinessDay,
		PaymentDayLastBusinessDay, PaymentDayFixedDay, PaymentDayLastDayOfMonth,
		PaymentDayClosestBusinessDay:
	default:
		return fmt.Errorf("%w: unknown paymentDay policy %q", ErrInvalidRule, r.PaymentDay)
	}
	return nil
}

// Template carries the financial metadata copied onto every event
// materialized for one recurring obligation.
type Template struct {
	UserID             string
	RecurrenceParentID string

	Title       string
	Description string
	Amount      *decimal.Decimal
	EventTypeID string
	CategoryID  *string
	AccountID   *string
	Priority    Priority
	Tags        []string
}

// Event is one materialized occurrence, ready for a persistence collaborator
// to store. Events are never mutated after materialization.
type Event struct {
	UserID             string
	RecurrenceParentID string

	Title       string
	Description string
	Amount      *decimal.Decimal
	EventTypeID string
	CategoryID  *string
	AccountID   *string
	EventDate   time.Time
	DueDate     *time.Time
	Priority    Priority
	Tags        []string
}

// Window is the inclusive [Start, End] date range occurrences are requested
// for.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow builds a window normalized to date-only (midnight UTC) bounds.
func NewWindow(start, end time.Time) Window {
	return Window{Start: DateOnly(start), End: DateOnly(end)}
}

// DateOnly truncates a timestamp to midnight UTC. All dates inside this
// package are date-only; normalizing at the boundary keeps comparisons exact.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
