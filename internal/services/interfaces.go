package services

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/GrupoUS/aegiswallet-sub008/internal/models"
	"github.com/GrupoUS/aegiswallet-sub008/internal/pagination"
	"github.com/GrupoUS/aegiswallet-sub008/internal/recurrence"
)

// RecurringEventInput holds the fields accepted when creating a recurring
// event: the financial template plus the recurrence rule.
type RecurringEventInput struct {
	Title       string
	Description string
	Amount      *decimal.Decimal
	EventTypeID string
	CategoryID  *string
	AccountID   *string
	Priority    recurrence.Priority
	Tags        []string

	Pattern        recurrence.Pattern
	Interval       int
	DayOfWeek      *int
	DayOfMonth     *int
	WeekOfMonth    *int
	PaymentDay     recurrence.PaymentDay
	StartDate      time.Time
	EndDate        *time.Time
	MaxOccurrences *int

	SkipWeekends              bool
	SkipHolidays              bool
	ConsiderBrazilianHolidays bool
	MoveToNextBusinessDay     bool
}

// RecurringEventUpdate holds optional updates to a recurring event. Nil
// pointers leave the stored value unchanged; a nil Tags slice is unchanged
// while an empty one clears the tags.
type RecurringEventUpdate struct {
	Title       *string
	Description *string
	Amount      *decimal.Decimal
	CategoryID  *string
	AccountID   *string
	Priority    *recurrence.Priority
	Tags        []string

	Pattern        *recurrence.Pattern
	Interval       *int
	DayOfWeek      *int
	DayOfMonth     *int
	WeekOfMonth    *int
	PaymentDay     *recurrence.PaymentDay
	StartDate      *time.Time
	EndDate        *time.Time
	MaxOccurrences *int

	SkipWeekends              *bool
	SkipHolidays              *bool
	ConsiderBrazilianHolidays *bool
	MoveToNextBusinessDay     *bool
}

// RecurringEventServicer defines the contract for recurring event business logic.
type RecurringEventServicer interface {
	Create(userID string, input RecurringEventInput) (*models.RecurringEvent, error)
	CreateFromTemplate(userID, slug string, startDate time.Time, amount *decimal.Decimal, accountID *string) (*models.RecurringEvent, error)
	GetByID(userID, eventID string) (*models.RecurringEvent, error)
	List(userID string, page pagination.PageRequest, isActive *bool) (*pagination.PageResponse[models.RecurringEvent], error)
	Update(userID, eventID string, update RecurringEventUpdate) (*models.RecurringEvent, error)
	Deactivate(userID, eventID string) (*models.RecurringEvent, error)
	Delete(userID, eventID string) error
}

// GenerationResult summarizes one generation run over a window.
type GenerationResult struct {
	Events    []models.GeneratedEvent `json:"events"`
	Generated int                     `json:"generated"`
	Failed    int                     `json:"failed"`
}

// GenerationServicer defines the contract for materializing recurring events
// into stored calendar entries.
type GenerationServicer interface {
	GenerateWindow(userID, eventID string, from, to time.Time) (*GenerationResult, error)
	GenerateHorizon(now time.Time, horizonDays int) error
}

// GeneratedEventServicer defines the contract for reading and removing
// materialized calendar entries.
type GeneratedEventServicer interface {
	ListWindow(userID string, from, to time.Time, page pagination.PageRequest) (*pagination.PageResponse[models.GeneratedEvent], error)
	Delete(userID, eventID string) error
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
