package recurrence

import (
	"sync"
	"time"
)

// HolidaySource answers whether a date is a public holiday. It is an
// interface so callers can plug regional calendars or a fixed test set; the
// engine defaults to the Brazilian national calendar.
type HolidaySource interface {
	IsHoliday(d time.Time) bool
}

// BrazilianHolidays implements HolidaySource for Brazilian national holidays:
// the fixed-date set plus the Easter-derived movable feasts (Carnival, Good
// Friday, Corpus Christi), computed per year and cached.
type BrazilianHolidays struct {
	mu    sync.RWMutex
	years map[int]map[time.Time]string
}

// NewBrazilianHolidays creates an empty, lazily-populated holiday calendar.
func NewBrazilianHolidays() *BrazilianHolidays {
	return &BrazilianHolidays{years: make(map[int]map[time.Time]string)}
}

// IsHoliday reports whether d falls on a Brazilian national holiday.
func (b *BrazilianHolidays) IsHoliday(d time.Time) bool {
	_, ok := b.year(d.Year())[DateOnly(d)]
	return ok
}

// Name returns the holiday name for d, or "" when d is not a holiday.
func (b *BrazilianHolidays) Name(d time.Time) string {
	return b.year(d.Year())[DateOnly(d)]
}

func (b *BrazilianHolidays) year(y int) map[time.Time]string {
	b.mu.RLock()
	m, ok := b.years[y]
	b.mu.RUnlock()
	if ok {
		return m
	}

	m = brazilianHolidaysForYear(y)
	b.mu.Lock()
	b.years[y] = m
	b.mu.Unlock()
	return m
}

func brazilianHolidaysForYear(y int) map[time.Time]string {
	day := func(month time.Month, d int) time.Time {
		return time.Date(y, month, d, 0, 0, 0, 0, time.UTC)
	}

	m := map[time.Time]string{
		day(time.January, 1):    "Confraternização Universal",
		day(time.April, 21):     "Tiradentes",
		day(time.May, 1):        "Dia do Trabalho",
		day(time.September, 7):  "Independência do Brasil",
		day(time.October, 12):   "Nossa Senhora Aparecida",
		day(time.November, 2):   "Finados",
		day(time.November, 15):  "Proclamação da República",
		day(time.November, 20):  "Dia da Consciência Negra",
		day(time.December, 25):  "Natal",
	}

	easter := easterSunday(y)
	m[easter.AddDate(0, 0, -47)] = "Carnaval"
	m[easter.AddDate(0, 0, -2)] = "Sexta-feira Santa"
	m[easter.AddDate(0, 0, 60)] = "Corpus Christi"
	return m
}

// easterSunday returns Easter Sunday for the given year in the Gregorian
// calendar, using the Meeus/Jones/Butcher computus.
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// noHolidays is a HolidaySource with no holidays at all; useful for tests and
// for rules evaluated outside any regional calendar.
type noHolidays struct{}

func (noHolidays) IsHoliday(time.Time) bool { return false }

// NoHolidays returns a HolidaySource that never matches.
func NoHolidays() HolidaySource { return noHolidays{} }
