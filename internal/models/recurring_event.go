package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/GrupoUS/aegiswallet-sub008/internal/recurrence"
)

// RecurringEvent owns one recurrence rule plus the financial metadata copied
// onto every occurrence it generates. Users deactivate recurring events
// rather than delete them to preserve history; a hard delete cascades to the
// generated events.
type RecurringEvent struct {
	Base
	UserID string `gorm:"not null;index" json:"user_id"`

	// Financial template
	Title       string              `gorm:"not null" json:"title"`
	Description string              `json:"description"`
	Amount      *decimal.Decimal    `gorm:"type:decimal(14,2)" json:"amount,omitempty"`
	EventTypeID string              `gorm:"not null" json:"event_type_id"`
	CategoryID  *string             `json:"category_id,omitempty"`
	AccountID   *string             `json:"account_id,omitempty"`
	Priority    recurrence.Priority `gorm:"default:normal" json:"priority"`
	Tags        []string            `gorm:"serializer:json" json:"tags"`
	IsActive    bool                `gorm:"default:true" json:"is_active"`

	// Recurrence rule
	Pattern                   recurrence.Pattern    `gorm:"not null" json:"pattern"`
	RecurrenceInterval        int                   `gorm:"not null;default:1" json:"interval"`
	DayOfWeek                 *int                  `json:"day_of_week,omitempty"`
	DayOfMonth                *int                  `json:"day_of_month,omitempty"`
	WeekOfMonth               *int                  `json:"week_of_month,omitempty"`
	PaymentDay                recurrence.PaymentDay `json:"payment_day"`
	StartDate                 time.Time             `gorm:"not null" json:"start_date"`
	EndDate                   *time.Time            `json:"end_date,omitempty"`
	MaxOccurrences            *int                  `json:"max_occurrences,omitempty"`
	SkipWeekends              bool                  `json:"skip_weekends"`
	SkipHolidays              bool                  `json:"skip_holidays"`
	ConsiderBrazilianHolidays bool                  `json:"consider_brazilian_holidays"`
	MoveToNextBusinessDay     bool                  `json:"move_to_next_business_day"`

	// Relationships
	GeneratedEvents []GeneratedEvent `gorm:"foreignKey:RecurrenceParentID;constraint:OnDelete:CASCADE" json:"generated_events,omitempty"`
}

// Rule assembles the recurrence rule from the stored columns.
func (e *RecurringEvent) Rule() recurrence.Rule {
	var dow *time.Weekday
	if e.DayOfWeek != nil {
		d := time.Weekday(*e.DayOfWeek)
		dow = &d
	}
	return recurrence.Rule{
		Pattern:                   e.Pattern,
		Interval:                  e.RecurrenceInterval,
		DayOfWeek:                 dow,
		DayOfMonth:                e.DayOfMonth,
		WeekOfMonth:               e.WeekOfMonth,
		PaymentDay:                e.PaymentDay,
		StartDate:                 e.StartDate,
		EndDate:                   e.EndDate,
		MaxOccurrences:            e.MaxOccurrences,
		SkipWeekends:              e.SkipWeekends,
		SkipHolidays:              e.SkipHolidays,
		ConsiderBrazilianHolidays: e.ConsiderBrazilianHolidays,
		MoveToNextBusinessDay:     e.MoveToNextBusinessDay,
	}
}

// Template assembles the materialization template from the stored columns.
func (e *RecurringEvent) Template() recurrence.Template {
	return recurrence.Template{
		UserID:             e.UserID,
		RecurrenceParentID: e.ID,
		Title:              e.Title,
		Description:        e.Description,
		Amount:             e.Amount,
		EventTypeID:        e.EventTypeID,
		CategoryID:         e.CategoryID,
		AccountID:          e.AccountID,
		Priority:           e.Priority,
		Tags:               e.Tags,
	}
}
