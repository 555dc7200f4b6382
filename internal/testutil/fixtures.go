package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/GrupoUS/aegiswallet-sub008/internal/models"
	"github.com/GrupoUS/aegiswallet-sub008/internal/recurrence"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// NewTestUserID returns a fresh user ID. Users live in the external identity
// provider, so tests only need an opaque UUID.
func NewTestUserID() string {
	return uuid.NewString()
}

// CreateTestRecurringEvent creates an active monthly recurring event anchored
// on the 10th of the month, starting at the given date.
func CreateTestRecurringEvent(t *testing.T, db *gorm.DB, userID string, startDate time.Time) *models.RecurringEvent {
	t.Helper()

	n := nextID()
	day := 10
	amount := decimal.NewFromFloat(150.50)
	event := &models.RecurringEvent{
		UserID:             userID,
		Title:              fmt.Sprintf("Test Recurring Event %d", n),
		Description:        "fixture",
		Amount:             &amount,
		EventTypeID:        "expense",
		Priority:           recurrence.PriorityNormal,
		Tags:               []string{"test"},
		IsActive:           true,
		Pattern:            recurrence.PatternMonthly,
		RecurrenceInterval: 1,
		DayOfMonth:         &day,
		PaymentDay:         recurrence.PaymentDayNone,
		StartDate:          recurrence.DateOnly(startDate),
	}
	if err := db.Create(event).Error; err != nil {
		t.Fatalf("failed to create test recurring event: %v", err)
	}
	return event
}

// CreateTestWeeklyEvent creates an active weekly recurring event on the given
// weekday.
func CreateTestWeeklyEvent(t *testing.T, db *gorm.DB, userID string, startDate time.Time, weekday time.Weekday) *models.RecurringEvent {
	t.Helper()

	n := nextID()
	dow := int(weekday)
	event := &models.RecurringEvent{
		UserID:             userID,
		Title:              fmt.Sprintf("Test Weekly Event %d", n),
		EventTypeID:        "expense",
		Priority:           recurrence.PriorityNormal,
		IsActive:           true,
		Pattern:            recurrence.PatternWeekly,
		RecurrenceInterval: 1,
		DayOfWeek:          &dow,
		PaymentDay:         recurrence.PaymentDayNone,
		StartDate:          recurrence.DateOnly(startDate),
	}
	if err := db.Create(event).Error; err != nil {
		t.Fatalf("failed to create test weekly event: %v", err)
	}
	return event
}

// CreateTestGeneratedEvent creates a generated event row for the given parent
// on the given date.
func CreateTestGeneratedEvent(t *testing.T, db *gorm.DB, parent *models.RecurringEvent, date time.Time) *models.GeneratedEvent {
	t.Helper()

	d := recurrence.DateOnly(date)
	event := &models.GeneratedEvent{
		UserID:             parent.UserID,
		RecurrenceParentID: parent.ID,
		Title:              parent.Title,
		Description:        parent.Description,
		Amount:             parent.Amount,
		EventTypeID:        parent.EventTypeID,
		CategoryID:         parent.CategoryID,
		AccountID:          parent.AccountID,
		EventDate:          d,
		DueDate:            &d,
		Priority:           parent.Priority,
		Tags:               parent.Tags,
	}
	if err := db.Create(event).Error; err != nil {
		t.Fatalf("failed to create test generated event: %v", err)
	}
	return event
}
