package recurrence

import (
	"testing"
	"time"
)

func TestEasterSunday(t *testing.T) {
	cases := []struct {
		year int
		want time.Time
	}{
		{2023, date(2023, time.April, 9)},
		{2024, date(2024, time.March, 31)},
		{2025, date(2025, time.April, 20)},
		{2026, date(2026, time.April, 5)},
		{2038, date(2038, time.April, 25)}, // latest possible Easter
	}

	for _, tc := range cases {
		if got := easterSunday(tc.year); !got.Equal(tc.want) {
			t.Errorf("easterSunday(%d): expected %v, got %v",
				tc.year, tc.want.Format(time.DateOnly), got.Format(time.DateOnly))
		}
	}
}

func TestMovableHolidays(t *testing.T) {
	src := NewBrazilianHolidays()

	cases := []struct {
		name string
		d    time.Time
	}{
		{"Carnaval", date(2024, time.February, 13)},
		{"Sexta-feira Santa", date(2024, time.March, 29)},
		{"Corpus Christi", date(2024, time.May, 30)},
		{"Carnaval", date(2025, time.March, 4)},
		{"Sexta-feira Santa", date(2025, time.April, 18)},
		{"Corpus Christi", date(2025, time.June, 19)},
	}

	for _, tc := range cases {
		if !src.IsHoliday(tc.d) {
			t.Errorf("expected %v to be a holiday (%s)", tc.d.Format(time.DateOnly), tc.name)
		}
		if got := src.Name(tc.d); got != tc.name {
			t.Errorf("expected %q on %v, got %q", tc.name, tc.d.Format(time.DateOnly), got)
		}
	}
}

func TestFixedHolidays(t *testing.T) {
	src := NewBrazilianHolidays()

	for _, d := range []time.Time{
		date(2024, time.January, 1),
		date(2024, time.April, 21),
		date(2024, time.May, 1),
		date(2024, time.September, 7),
		date(2024, time.October, 12),
		date(2024, time.November, 2),
		date(2024, time.November, 15),
		date(2024, time.November, 20),
		date(2024, time.December, 25),
	} {
		if !src.IsHoliday(d) {
			t.Errorf("expected %v to be a holiday", d.Format(time.DateOnly))
		}
	}

	if src.IsHoliday(date(2024, time.July, 9)) {
		t.Error("2024-07-09 is a state holiday, not a national one")
	}
}

func TestHolidayLookupIgnoresTimeOfDay(t *testing.T) {
	src := NewBrazilianHolidays()
	noon := time.Date(2024, time.December, 25, 12, 30, 0, 0, time.UTC)
	if !src.IsHoliday(noon) {
		t.Error("expected holiday match regardless of time of day")
	}
}

func TestNoHolidaysSource(t *testing.T) {
	src := NoHolidays()
	if src.IsHoliday(date(2024, time.December, 25)) {
		t.Error("NoHolidays must never match")
	}
}
