package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/GrupoUS/aegiswallet-sub008/internal/recurrence"
)

// GeneratedEvent is one materialized occurrence of a recurring event. Records
// are created only by generation runs and never mutated in place; they are
// deleted individually by the user or en masse when their parent is deleted
// or a window is regenerated.
type GeneratedEvent struct {
	Base
	UserID             string `gorm:"not null;index" json:"user_id"`
	RecurrenceParentID string `gorm:"not null;index" json:"recurrence_parent_id"`

	Title       string              `gorm:"not null" json:"title"`
	Description string              `json:"description"`
	Amount      *decimal.Decimal    `gorm:"type:decimal(14,2)" json:"amount,omitempty"`
	EventTypeID string              `gorm:"not null" json:"event_type_id"`
	CategoryID  *string             `json:"category_id,omitempty"`
	AccountID   *string             `json:"account_id,omitempty"`
	EventDate   time.Time           `gorm:"not null;index" json:"event_date"`
	DueDate     *time.Time          `json:"due_date,omitempty"`
	Priority    recurrence.Priority `gorm:"default:normal" json:"priority"`
	Tags        []string            `gorm:"serializer:json" json:"tags"`
}

// FromRecurrenceEvent maps a materialized core event onto a persistable row.
func FromRecurrenceEvent(ev recurrence.Event) GeneratedEvent {
	return GeneratedEvent{
		UserID:             ev.UserID,
		RecurrenceParentID: ev.RecurrenceParentID,
		Title:              ev.Title,
		Description:        ev.Description,
		Amount:             ev.Amount,
		EventTypeID:        ev.EventTypeID,
		CategoryID:         ev.CategoryID,
		AccountID:          ev.AccountID,
		EventDate:          ev.EventDate,
		DueDate:            ev.DueDate,
		Priority:           ev.Priority,
		Tags:               ev.Tags,
	}
}
