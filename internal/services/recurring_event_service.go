package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "github.com/GrupoUS/aegiswallet-sub008/internal/errors"
	"github.com/GrupoUS/aegiswallet-sub008/internal/models"
	"github.com/GrupoUS/aegiswallet-sub008/internal/pagination"
	"github.com/GrupoUS/aegiswallet-sub008/internal/recurrence"
)

// recurringEventService handles recurring event business logic.
type recurringEventService struct {
	db *gorm.DB
}

// NewRecurringEventService creates a new RecurringEventServicer.
func NewRecurringEventService(db *gorm.DB) RecurringEventServicer {
	return &recurringEventService{db: db}
}

// Create creates a new recurring event after validating its recurrence rule.
func (s *recurringEventService) Create(userID string, input RecurringEventInput) (*models.RecurringEvent, error) {
	event := &models.RecurringEvent{
		UserID:                    userID,
		Title:                     input.Title,
		Description:               input.Description,
		Amount:                    input.Amount,
		EventTypeID:               input.EventTypeID,
		CategoryID:                input.CategoryID,
		AccountID:                 input.AccountID,
		Priority:                  input.Priority,
		Tags:                      input.Tags,
		IsActive:                  true,
		Pattern:                   input.Pattern,
		RecurrenceInterval:        input.Interval,
		DayOfWeek:                 input.DayOfWeek,
		DayOfMonth:                input.DayOfMonth,
		WeekOfMonth:               input.WeekOfMonth,
		PaymentDay:                input.PaymentDay,
		StartDate:                 recurrence.DateOnly(input.StartDate),
		EndDate:                   normalizeDatePtr(input.EndDate),
		MaxOccurrences:            input.MaxOccurrences,
		SkipWeekends:              input.SkipWeekends,
		SkipHolidays:              input.SkipHolidays,
		ConsiderBrazilianHolidays: input.ConsiderBrazilianHolidays,
		MoveToNextBusinessDay:     input.MoveToNextBusinessDay,
	}
	if event.Priority == "" {
		event.Priority = recurrence.PriorityNormal
	}

	if err := event.Rule().Validate(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidRecurrenceRule, err)
	}

	if err := s.db.Create(event).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return event, nil
}

// CreateFromTemplate creates a recurring event from a named rule preset.
// The preset supplies the rule and defaults; amount and account always come
// from the caller.
func (s *recurringEventService) CreateFromTemplate(userID, slug string, startDate time.Time, amount *decimal.Decimal, accountID *string) (*models.RecurringEvent, error) {
	preset, ok := recurrence.PresetBySlug(slug)
	if !ok {
		return nil, apperrors.ErrTemplateNotFound
	}

	rule := preset.Rule(startDate)
	if err := rule.Validate(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidRecurrenceRule, err)
	}

	eventTypeID := "expense"
	if slug == "salario" {
		eventTypeID = "income"
	}

	event := &models.RecurringEvent{
		UserID:                    userID,
		Title:                     preset.Name,
		Description:               preset.Description,
		Amount:                    amount,
		EventTypeID:               eventTypeID,
		AccountID:                 accountID,
		Priority:                  preset.Priority,
		Tags:                      append([]string(nil), preset.Tags...),
		IsActive:                  true,
		Pattern:                   rule.Pattern,
		RecurrenceInterval:        rule.Interval,
		DayOfMonth:                rule.DayOfMonth,
		PaymentDay:                rule.PaymentDay,
		StartDate:                 rule.StartDate,
		ConsiderBrazilianHolidays: rule.ConsiderBrazilianHolidays,
	}

	if err := s.db.Create(event).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return event, nil
}

// GetByID returns a recurring event by ID if it belongs to the user.
func (s *recurringEventService) GetByID(userID, eventID string) (*models.RecurringEvent, error) {
	var event models.RecurringEvent
	if err := s.db.Where("id = ? AND user_id = ?", eventID, userID).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRecurringEventNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &event, nil
}

// List returns a paginated list of the user's recurring events, optionally
// filtered by active state.
func (s *recurringEventService) List(userID string, page pagination.PageRequest, isActive *bool) (*pagination.PageResponse[models.RecurringEvent], error) {
	page.Defaults()

	base := s.db.Model(&models.RecurringEvent{}).Where("user_id = ?", userID)
	if isActive != nil {
		base = base.Where("is_active = ?", *isActive)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var events []models.RecurringEvent
	if err := base.Order("start_date").Scopes(pagination.Paginate(page)).Find(&events).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(events, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// Update applies the given field updates and re-validates the resulting rule.
// Updating a rule only affects future generation runs; already generated
// events are untouched until the next regeneration.
func (s *recurringEventService) Update(userID, eventID string, update RecurringEventUpdate) (*models.RecurringEvent, error) {
	event, err := s.GetByID(userID, eventID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if update.Title != nil {
		event.Title = *update.Title
		updates["title"] = *update.Title
	}
	if update.Description != nil {
		event.Description = *update.Description
		updates["description"] = *update.Description
	}
	if update.Amount != nil {
		event.Amount = update.Amount
		updates["amount"] = update.Amount
	}
	if update.CategoryID != nil {
		event.CategoryID = update.CategoryID
		updates["category_id"] = update.CategoryID
	}
	if update.AccountID != nil {
		event.AccountID = update.AccountID
		updates["account_id"] = update.AccountID
	}
	if update.Priority != nil {
		event.Priority = *update.Priority
		updates["priority"] = *update.Priority
	}
	if update.Tags != nil {
		event.Tags = update.Tags
		updates["tags"] = update.Tags
	}
	if update.Pattern != nil {
		event.Pattern = *update.Pattern
		updates["pattern"] = *update.Pattern
	}
	if update.Interval != nil {
		event.RecurrenceInterval = *update.Interval
		updates["recurrence_interval"] = *update.Interval
	}
	if update.DayOfWeek != nil {
		event.DayOfWeek = update.DayOfWeek
		updates["day_of_week"] = update.DayOfWeek
	}
	if update.DayOfMonth != nil {
		event.DayOfMonth = update.DayOfMonth
		updates["day_of_month"] = update.DayOfMonth
	}
	if update.WeekOfMonth != nil {
		event.WeekOfMonth = update.WeekOfMonth
		updates["week_of_month"] = update.WeekOfMonth
	}
	if update.PaymentDay != nil {
		event.PaymentDay = *update.PaymentDay
		updates["payment_day"] = *update.PaymentDay
	}
	if update.StartDate != nil {
		d := recurrence.DateOnly(*update.StartDate)
		event.StartDate = d
		updates["start_date"] = d
	}
	if update.EndDate != nil {
		d := recurrence.DateOnly(*update.EndDate)
		event.EndDate = &d
		updates["end_date"] = &d
	}
	if update.MaxOccurrences != nil {
		event.MaxOccurrences = update.MaxOccurrences
		updates["max_occurrences"] = update.MaxOccurrences
	}
	if update.SkipWeekends != nil {
		event.SkipWeekends = *update.SkipWeekends
		updates["skip_weekends"] = *update.SkipWeekends
	}
	if update.SkipHolidays != nil {
		event.SkipHolidays = *update.SkipHolidays
		updates["skip_holidays"] = *update.SkipHolidays
	}
	if update.ConsiderBrazilianHolidays != nil {
		event.ConsiderBrazilianHolidays = *update.ConsiderBrazilianHolidays
		updates["consider_brazilian_holidays"] = *update.ConsiderBrazilianHolidays
	}
	if update.MoveToNextBusinessDay != nil {
		event.MoveToNextBusinessDay = *update.MoveToNextBusinessDay
		updates["move_to_next_business_day"] = *update.MoveToNextBusinessDay
	}

	if err := event.Rule().Validate(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidRecurrenceRule, err)
	}

	if len(updates) > 0 {
		if err := s.db.Model(event).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return event, nil
}

// Deactivate marks a recurring event inactive. Inactive events keep their
// generated history but are excluded from all future generation runs.
func (s *recurringEventService) Deactivate(userID, eventID string) (*models.RecurringEvent, error) {
	event, err := s.GetByID(userID, eventID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(event).Update("is_active", false).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	event.IsActive = false
	return event, nil
}

// Delete soft-deletes a recurring event together with all of its generated
// events.
func (s *recurringEventService) Delete(userID, eventID string) error {
	event, err := s.GetByID(userID, eventID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recurrence_parent_id = ?", event.ID).Delete(&models.GeneratedEvent{}).Error; err != nil {
			return err
		}
		return tx.Delete(event).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// normalizeDatePtr truncates an optional timestamp to a date-only value.
func normalizeDatePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := recurrence.DateOnly(*t)
	return &d
}
