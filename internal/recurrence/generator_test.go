package recurrence

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func weekdayPtr(d time.Weekday) *time.Weekday { return &d }

func TestMonthlyClampingLaw(t *testing.T) {
	// Pattern=monthly, dayOfMonth=31: every emitted day equals
	// min(31, days_in_month) across a full year.
	rule := Rule{
		Pattern:    PatternMonthly,
		Interval:   1,
		DayOfMonth: intPtr(31),
		StartDate:  date(2024, time.January, 31),
	}

	engine := NewEngine()
	got, err := engine.Occurrences(rule, NewWindow(date(2024, time.January, 1), date(2024, time.December, 31)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 12 {
		t.Fatalf("expected 12 occurrences, got %d", len(got))
	}

	for i, d := range got {
		month := time.Month(i + 1)
		want := daysInMonth(2024, month)
		if d.Month() != month || d.Day() != want {
			t.Errorf("occurrence %d: expected %v %d, got %v", i, month, want, d)
		}
	}
}

func TestWeeklyMondayScenario(t *testing.T) {
	// Weekly on Mondays from 2024-01-01 (a Monday) across January 2024.
	rule := Rule{
		Pattern:   PatternWeekly,
		Interval:  1,
		DayOfWeek: weekdayPtr(time.Monday),
		StartDate: date(2024, time.January, 1),
	}

	engine := NewEngine()
	got, err := engine.Occurrences(rule, NewWindow(date(2024, time.January, 1), date(2024, time.January, 31)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []time.Time{
		date(2024, time.January, 1),
		date(2024, time.January, 8),
		date(2024, time.January, 15),
		date(2024, time.January, 22),
		date(2024, time.January, 29),
	}
	assertDates(t, want, got)
}

func TestLeapYearClampScenario(t *testing.T) {
	// Monthly on the 31st from 2024-01-31: February clamps to the leap day.
	rule := Rule{
		Pattern:    PatternMonthly,
		Interval:   1,
		DayOfMonth: intPtr(31),
		StartDate:  date(2024, time.January, 31),
	}

	engine := NewEngine()
	got, err := engine.Occurrences(rule, NewWindow(date(2024, time.January, 1), date(2024, time.April, 30)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []time.Time{
		date(2024, time.January, 31),
		date(2024, time.February, 29),
		date(2024, time.March, 31),
		date(2024, time.April, 30),
	}
	assertDates(t, want, got)
}

func TestWeeklyRealignsMisalignedAnchor(t *testing.T) {
	// Anchor on a Wednesday with dayOfWeek=Friday: the anchor itself is
	// emitted raw, then every later occurrence lands on Friday.
	rule := Rule{
		Pattern:   PatternWeekly,
		Interval:  1,
		DayOfWeek: weekdayPtr(time.Friday),
		StartDate: date(2024, time.January, 3), // Wednesday
	}

	engine := NewEngine()
	got, err := engine.Occurrences(rule, NewWindow(date(2024, time.January, 1), date(2024, time.January, 31)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) == 0 {
		t.Fatal("expected occurrences")
	}
	if !got[0].Equal(date(2024, time.January, 3)) {
		t.Errorf("expected anchor emitted first, got %v", got[0])
	}
	for _, d := range got[1:] {
		if d.Weekday() != time.Friday {
			t.Errorf("expected Friday, got %v on %v", d.Weekday(), d)
		}
	}
}

func TestDailyWithInterval(t *testing.T) {
	rule := Rule{
		Pattern:   PatternDaily,
		Interval:  3,
		StartDate: date(2024, time.June, 1),
	}

	engine := NewEngine()
	got, err := engine.Occurrences(rule, NewWindow(date(2024, time.June, 1), date(2024, time.June, 10)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []time.Time{
		date(2024, time.June, 1),
		date(2024, time.June, 4),
		date(2024, time.June, 7),
		date(2024, time.June, 10),
	}
	assertDates(t, want, got)
}

func TestCustomPatternUsesMonthlyCadence(t *testing.T) {
	rule := Rule{
		Pattern:   PatternCustom,
		Interval:  1,
		StartDate: date(2024, time.January, 15),
	}

	engine := NewEngine()
	got, err := engine.Occurrences(rule, NewWindow(date(2024, time.January, 1), date(2024, time.March, 31)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []time.Time{
		date(2024, time.January, 15),
		date(2024, time.February, 15),
		date(2024, time.March, 15),
	}
	assertDates(t, want, got)
}

func TestUnknownPatternReturnsPartialResult(t *testing.T) {
	rule := Rule{
		Pattern:   Pattern("lunar"),
		Interval:  1,
		StartDate: date(2024, time.January, 1),
	}

	engine := NewEngine()
	got, err := engine.Occurrences(rule, NewWindow(date(2024, time.January, 1), date(2024, time.December, 31)))
	if err != nil {
		t.Fatalf("unknown pattern must not error, got: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no occurrences for unknown pattern, got %d", len(got))
	}
}

func TestInvalidRuleFieldsRejected(t *testing.T) {
	cases := []struct {
		name string
		rule Rule
	}{
		{"zero_interval", Rule{Pattern: PatternDaily, Interval: 0, StartDate: date(2024, time.January, 1)}},
		{"day_of_month_too_large", Rule{Pattern: PatternMonthly, Interval: 1, DayOfMonth: intPtr(42), StartDate: date(2024, time.January, 1)}},
		{"day_of_week_out_of_range", Rule{Pattern: PatternWeekly, Interval: 1, DayOfWeek: weekdayPtr(time.Weekday(9)), StartDate: date(2024, time.January, 1)}},
		{"missing_start_date", Rule{Pattern: PatternDaily, Interval: 1}},
		{"end_before_start", Rule{Pattern: PatternDaily, Interval: 1, StartDate: date(2024, time.June, 1), EndDate: timePtr(date(2024, time.May, 1))}},
		{"bad_payment_day", Rule{Pattern: PatternMonthly, Interval: 1, StartDate: date(2024, time.January, 1), PaymentDay: PaymentDay("whenever")}},
	}

	engine := NewEngine()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := engine.Occurrences(tc.rule, NewWindow(date(2024, time.January, 1), date(2024, time.December, 31)))
			if !errors.Is(err, ErrInvalidRule) {
				t.Fatalf("expected ErrInvalidRule, got %v", err)
			}
			if got != nil {
				t.Errorf("expected no partial output on validation failure, got %d occurrences", len(got))
			}
		})
	}
}

func TestFirstOnOrAfterPreservesPhase(t *testing.T) {
	t.Run("monthly_day_of_month", func(t *testing.T) {
		// A rule anchored years before the window keeps its day-of-month
		// phase instead of inheriting the window start.
		rule := Rule{
			Pattern:    PatternMonthly,
			Interval:   1,
			DayOfMonth: intPtr(31),
			StartDate:  date(2020, time.January, 31),
		}

		engine := NewEngine()
		got, err := engine.Occurrences(rule, NewWindow(date(2024, time.March, 5), date(2024, time.April, 30)))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []time.Time{
			date(2024, time.March, 31),
			date(2024, time.April, 30),
		}
		assertDates(t, want, got)
	})

	t.Run("quarterly_keeps_anchor_months", func(t *testing.T) {
		// Quarterly from January 2020 hits Jan/Apr/Jul/Oct, so a window in
		// mid-2024 must see July, not the window's own month.
		rule := Rule{
			Pattern:    PatternQuarterly,
			Interval:   1,
			DayOfMonth: intPtr(10),
			StartDate:  date(2020, time.January, 10),
		}

		engine := NewEngine()
		got, err := engine.Occurrences(rule, NewWindow(date(2024, time.May, 1), date(2024, time.October, 31)))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []time.Time{
			date(2024, time.July, 10),
			date(2024, time.October, 10),
		}
		assertDates(t, want, got)
	})

	t.Run("biweekly_keeps_cycle_parity", func(t *testing.T) {
		// Bi-weekly Mondays from 2024-01-01: the cycle hits Jan 1, 15, 29,
		// Feb 12, 26... A February window must land on the 12th and 26th.
		rule := Rule{
			Pattern:   PatternBiweekly,
			Interval:  1,
			DayOfWeek: weekdayPtr(time.Monday),
			StartDate: date(2024, time.January, 1),
		}

		engine := NewEngine()
		got, err := engine.Occurrences(rule, NewWindow(date(2024, time.February, 1), date(2024, time.February, 29)))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []time.Time{
			date(2024, time.February, 12),
			date(2024, time.February, 26),
		}
		assertDates(t, want, got)
	})
}

func assertDates(t *testing.T, want, got []time.Time) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d occurrences, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("occurrence %d: expected %v, got %v", i, want[i].Format(time.DateOnly), got[i].Format(time.DateOnly))
		}
	}
}

func timePtr(t time.Time) *time.Time { return &t }
