package recurrence

import (
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestFirstBusinessDayScenario(t *testing.T) {
	// Monthly on day 1 with paymentDay=first-business-day across Jan–Mar
	// 2024: all three month starts are already business days, no rolling.
	rule := Rule{
		Pattern:    PatternMonthly,
		Interval:   1,
		DayOfMonth: intPtr(1),
		PaymentDay: PaymentDayFirstBusinessDay,
		StartDate:  date(2024, time.January, 1),
	}

	engine := NewEngine()
	got, err := engine.Occurrences(rule, NewWindow(date(2024, time.January, 1), date(2024, time.March, 31)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []time.Time{
		date(2024, time.January, 1),  // Monday
		date(2024, time.February, 1), // Thursday
		date(2024, time.March, 1),    // Friday
	}
	assertDates(t, want, got)
}

func TestDeterminism(t *testing.T) {
	rule := Rule{
		Pattern:                   PatternMonthly,
		Interval:                  1,
		DayOfMonth:                intPtr(15),
		PaymentDay:                PaymentDayClosestBusinessDay,
		ConsiderBrazilianHolidays: true,
		SkipWeekends:              true,
		StartDate:                 date(2023, time.June, 15),
	}
	w := NewWindow(date(2024, time.January, 1), date(2024, time.December, 31))

	engine := NewEngine()
	first, err := engine.Occurrences(rule, w)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := engine.Occurrences(rule, w)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical inputs produced different output:\n%v\n%v", first, second)
	}
}

func TestStartAfterWindowIsEmpty(t *testing.T) {
	rule := Rule{
		Pattern:   PatternDaily,
		Interval:  1,
		StartDate: date(2025, time.January, 1),
	}

	engine := NewEngine()
	got, err := engine.Occurrences(rule, NewWindow(date(2024, time.January, 1), date(2024, time.December, 31)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty result, got %d occurrences", len(got))
	}
}

func TestMaxOccurrencesBound(t *testing.T) {
	rule := Rule{
		Pattern:        PatternDaily,
		Interval:       1,
		StartDate:      date(2024, time.January, 1),
		MaxOccurrences: intPtr(5),
	}

	engine := NewEngine()
	got, err := engine.Occurrences(rule, NewWindow(date(2024, time.January, 1), date(2024, time.December, 31)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 5 {
		t.Errorf("expected 5 occurrences, got %d", len(got))
	}
}

func TestEndDateStopsGeneration(t *testing.T) {
	rule := Rule{
		Pattern:   PatternWeekly,
		Interval:  1,
		DayOfWeek: weekdayPtr(time.Monday),
		StartDate: date(2024, time.January, 1),
		EndDate:   timePtr(date(2024, time.January, 15)),
	}

	engine := NewEngine()
	got, err := engine.Occurrences(rule, NewWindow(date(2024, time.January, 1), date(2024, time.March, 31)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []time.Time{
		date(2024, time.January, 1),
		date(2024, time.January, 8),
		date(2024, time.January, 15),
	}
	assertDates(t, want, got)
}

func TestAdjustedDateOutsideWindowIsDropped(t *testing.T) {
	// last-day-of-month pushes the February occurrence to the 29th, past the
	// requested window end, so nothing is emitted.
	rule := Rule{
		Pattern:    PatternMonthly,
		Interval:   1,
		DayOfMonth: intPtr(1),
		PaymentDay: PaymentDayLastDayOfMonth,
		StartDate:  date(2024, time.January, 1),
	}

	engine := NewEngine()
	got, err := engine.Occurrences(rule, NewWindow(date(2024, time.February, 1), date(2024, time.February, 28)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected adjusted date past window end to be dropped, got %v", got)
	}
}

func TestOccurrencesStrictlyIncreasing(t *testing.T) {
	// first-business-day maps every raw date in a month to the same adjusted
	// date; duplicates must be collapsed.
	rule := Rule{
		Pattern:    PatternWeekly,
		Interval:   1,
		PaymentDay: PaymentDayFirstBusinessDay,
		StartDate:  date(2024, time.January, 1),
	}

	engine := NewEngine()
	got, err := engine.Occurrences(rule, NewWindow(date(2024, time.January, 1), date(2024, time.June, 30)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(got); i++ {
		if !got[i].After(got[i-1]) {
			t.Errorf("occurrences not strictly increasing at %d: %v then %v", i, got[i-1], got[i])
		}
	}
}

func TestGenerateMaterializesTemplate(t *testing.T) {
	amount := decimal.NewFromFloat(1850.00)
	categoryID := "cat-123"
	tpl := Template{
		UserID:             "user-1",
		RecurrenceParentID: "rec-1",
		Title:              "Aluguel",
		Description:        "Apartamento 42",
		Amount:             &amount,
		EventTypeID:        "expense",
		CategoryID:         &categoryID,
		Priority:           PriorityHigh,
		Tags:               []string{"moradia"},
	}
	rule := Rule{
		Pattern:    PatternMonthly,
		Interval:   1,
		DayOfMonth: intPtr(1),
		StartDate:  date(2024, time.January, 1),
	}

	engine := NewEngine()
	events, err := engine.Generate(rule, tpl, NewWindow(date(2024, time.January, 1), date(2024, time.March, 31)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}

	for i, ev := range events {
		if ev.Title != tpl.Title || ev.Description != tpl.Description {
			t.Errorf("event %d: template metadata not carried", i)
		}
		if ev.Amount == nil || !ev.Amount.Equal(amount) {
			t.Errorf("event %d: expected amount %v, got %v", i, amount, ev.Amount)
		}
		if ev.UserID != "user-1" || ev.RecurrenceParentID != "rec-1" {
			t.Errorf("event %d: ownership references not carried", i)
		}
		if ev.DueDate == nil || !ev.DueDate.Equal(ev.EventDate) {
			t.Errorf("event %d: expected due date to match event date", i)
		}
		if ev.Priority != PriorityHigh {
			t.Errorf("event %d: expected priority high, got %s", i, ev.Priority)
		}
	}

	// Mutating one event's tags must not leak into the template or siblings.
	events[0].Tags[0] = "changed"
	if tpl.Tags[0] != "moradia" || events[1].Tags[0] != "moradia" {
		t.Error("tags are shared between template and materialized events")
	}
}
