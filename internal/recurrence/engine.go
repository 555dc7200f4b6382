package recurrence

import "time"

// Engine drives the generator and adjuster across a window to produce the
// bounded occurrence sequence for a rule. Engines are stateless apart from
// the holiday source and safe for concurrent use across rules.
type Engine struct {
	holidays HolidaySource
}

// NewEngine creates an engine using the Brazilian national holiday calendar.
func NewEngine() *Engine {
	return &Engine{holidays: NewBrazilianHolidays()}
}

// NewEngineWithHolidays creates an engine with a custom holiday source.
func NewEngineWithHolidays(holidays HolidaySource) *Engine {
	return &Engine{holidays: holidays}
}

// Occurrences expands the rule into adjusted occurrence dates within the
// window, oldest first and strictly increasing.
//
// Invalid rule fields reject up front with ErrInvalidRule and no output. A
// pattern with no registered step terminates the loop instead: the
// occurrences produced so far are returned with a nil error, so callers must
// treat a short result as potentially incomplete rather than as proof of an
// empty window.
func (e *Engine) Occurrences(rule Rule, w Window) ([]time.Time, error) {
	if err := rule.Validate(); err != nil {
		return nil, err
	}

	w = NewWindow(w.Start, w.End)
	start := DateOnly(rule.StartDate)
	if start.After(w.End) {
		return []time.Time{}, nil
	}

	adj := newAdjuster(rule, e.holidays)
	out := []time.Time{}

	raw, ok := firstOnOrAfter(rule, w.Start)
	var last time.Time
	for ok {
		if raw.After(w.End) {
			break
		}
		if rule.EndDate != nil && raw.After(DateOnly(*rule.EndDate)) {
			break
		}
		if rule.MaxOccurrences != nil && len(out) >= *rule.MaxOccurrences {
			break
		}

		if d := adj.Adjust(raw); e.accept(rule, w, d, last) {
			out = append(out, d)
			last = d
		}

		raw, ok = nextOccurrence(rule, raw)
	}
	return out, nil
}

// accept filters adjusted dates: adjustment may pull a date slightly outside
// the window or rule bounds (last-business-day, closest-business-day), or
// collapse two raw dates onto one adjusted date. Emitted dates must stay
// inside both bounds and strictly increase.
func (e *Engine) accept(rule Rule, w Window, d, last time.Time) bool {
	if d.Before(w.Start) || d.After(w.End) {
		return false
	}
	if d.Before(DateOnly(rule.StartDate)) {
		return false
	}
	if rule.EndDate != nil && d.After(DateOnly(*rule.EndDate)) {
		return false
	}
	if !last.IsZero() && !d.After(last) {
		return false
	}
	return true
}

// Generate expands the rule and materializes each occurrence into an event
// record carrying the template's financial metadata.
func (e *Engine) Generate(rule Rule, tpl Template, w Window) ([]Event, error) {
	occurrences, err := e.Occurrences(rule, w)
	if err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(occurrences))
	for _, d := range occurrences {
		events = append(events, materialize(tpl, d))
	}
	return events, nil
}

// materialize converts one occurrence date plus the owning template into a
// persistable event record.
func materialize(tpl Template, date time.Time) Event {
	due := date
	return Event{
		UserID:             tpl.UserID,
		RecurrenceParentID: tpl.RecurrenceParentID,
		Title:              tpl.Title,
		Description:        tpl.Description,
		Amount:             tpl.Amount,
		EventTypeID:        tpl.EventTypeID,
		CategoryID:         tpl.CategoryID,
		AccountID:          tpl.AccountID,
		EventDate:          date,
		DueDate:            &due,
		Priority:           tpl.Priority,
		Tags:               append([]string(nil), tpl.Tags...),
	}
}
