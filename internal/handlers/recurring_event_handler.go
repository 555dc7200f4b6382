package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "github.com/GrupoUS/aegiswallet-sub008/internal/errors"
	"github.com/GrupoUS/aegiswallet-sub008/internal/pagination"
	"github.com/GrupoUS/aegiswallet-sub008/internal/recurrence"
	"github.com/GrupoUS/aegiswallet-sub008/internal/services"
)

// RecurringEventHandler handles recurring event requests.
type RecurringEventHandler struct {
	eventService      services.RecurringEventServicer
	generationService services.GenerationServicer
	auditService      services.AuditServicer
}

// NewRecurringEventHandler creates a new RecurringEventHandler.
func NewRecurringEventHandler(
	eventService services.RecurringEventServicer,
	generationService services.GenerationServicer,
	auditService services.AuditServicer,
) *RecurringEventHandler {
	return &RecurringEventHandler{
		eventService:      eventService,
		generationService: generationService,
		auditService:      auditService,
	}
}

// CreateRecurringEventRequest represents the request payload for creating a
// recurring event.
type CreateRecurringEventRequest struct {
	Title       string              `json:"title" binding:"required,min=1,max=200"`
	Description string              `json:"description" binding:"omitempty,max=1000"`
	Amount      *decimal.Decimal    `json:"amount"`
	EventTypeID string              `json:"event_type_id" binding:"required"`
	CategoryID  *string             `json:"category_id"`
	AccountID   *string             `json:"account_id"`
	Priority    recurrence.Priority `json:"priority" binding:"omitempty,priority"`
	Tags        []string            `json:"tags"`

	Pattern        recurrence.Pattern    `json:"pattern" binding:"required,recurrence_pattern"`
	Interval       int                   `json:"interval" binding:"omitempty,min=1"`
	DayOfWeek      *int                  `json:"day_of_week" binding:"omitempty,min=0,max=6"`
	DayOfMonth     *int                  `json:"day_of_month" binding:"omitempty,min=1,max=31"`
	WeekOfMonth    *int                  `json:"week_of_month" binding:"omitempty,min=1,max=5"`
	PaymentDay     recurrence.PaymentDay `json:"payment_day" binding:"omitempty,payment_day"`
	StartDate      time.Time             `json:"start_date" binding:"required"`
	EndDate        *time.Time            `json:"end_date"`
	MaxOccurrences *int                  `json:"max_occurrences" binding:"omitempty,min=1"`

	SkipWeekends              bool `json:"skip_weekends"`
	SkipHolidays              bool `json:"skip_holidays"`
	ConsiderBrazilianHolidays bool `json:"consider_brazilian_holidays"`
	MoveToNextBusinessDay     bool `json:"move_to_next_business_day"`
}

// UpdateRecurringEventRequest represents the request payload for updating a
// recurring event. Absent fields are left unchanged.
type UpdateRecurringEventRequest struct {
	Title       *string              `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string              `json:"description" binding:"omitempty,max=1000"`
	Amount      *decimal.Decimal     `json:"amount"`
	CategoryID  *string              `json:"category_id"`
	AccountID   *string              `json:"account_id"`
	Priority    *recurrence.Priority `json:"priority" binding:"omitempty,priority"`
	Tags        []string             `json:"tags"`

	Pattern        *recurrence.Pattern    `json:"pattern" binding:"omitempty,recurrence_pattern"`
	Interval       *int                   `json:"interval" binding:"omitempty,min=1"`
	DayOfWeek      *int                   `json:"day_of_week" binding:"omitempty,min=0,max=6"`
	DayOfMonth     *int                   `json:"day_of_month" binding:"omitempty,min=1,max=31"`
	WeekOfMonth    *int                   `json:"week_of_month" binding:"omitempty,min=1,max=5"`
	PaymentDay     *recurrence.PaymentDay `json:"payment_day" binding:"omitempty,payment_day"`
	StartDate      *time.Time             `json:"start_date"`
	EndDate        *time.Time             `json:"end_date"`
	MaxOccurrences *int                   `json:"max_occurrences" binding:"omitempty,min=1"`

	SkipWeekends              *bool `json:"skip_weekends"`
	SkipHolidays              *bool `json:"skip_holidays"`
	ConsiderBrazilianHolidays *bool `json:"consider_brazilian_holidays"`
	MoveToNextBusinessDay     *bool `json:"move_to_next_business_day"`
}

// CreateFromTemplateRequest represents the request payload for creating a
// recurring event from a rule preset.
type CreateFromTemplateRequest struct {
	Slug      string           `json:"slug" binding:"required"`
	StartDate time.Time        `json:"start_date" binding:"required"`
	Amount    *decimal.Decimal `json:"amount"`
	AccountID *string          `json:"account_id"`
}

// GenerateRequest represents the request payload for generating events over a
// window.
type GenerateRequest struct {
	From time.Time `json:"from" binding:"required"`
	To   time.Time `json:"to" binding:"required"`
}

// CreateRecurringEvent handles the creation of a new recurring event.
func (h *RecurringEventHandler) CreateRecurringEvent(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateRecurringEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	if req.Interval == 0 {
		req.Interval = 1
	}

	event, err := h.eventService.Create(userID, services.RecurringEventInput{
		Title:                     req.Title,
		Description:               req.Description,
		Amount:                    req.Amount,
		EventTypeID:               req.EventTypeID,
		CategoryID:                req.CategoryID,
		AccountID:                 req.AccountID,
		Priority:                  req.Priority,
		Tags:                      req.Tags,
		Pattern:                   req.Pattern,
		Interval:                  req.Interval,
		DayOfWeek:                 req.DayOfWeek,
		DayOfMonth:                req.DayOfMonth,
		WeekOfMonth:               req.WeekOfMonth,
		PaymentDay:                req.PaymentDay,
		StartDate:                 req.StartDate,
		EndDate:                   req.EndDate,
		MaxOccurrences:            req.MaxOccurrences,
		SkipWeekends:              req.SkipWeekends,
		SkipHolidays:              req.SkipHolidays,
		ConsiderBrazilianHolidays: req.ConsiderBrazilianHolidays,
		MoveToNextBusinessDay:     req.MoveToNextBusinessDay,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_RECURRING_EVENT", "recurring_event", event.ID, c.ClientIP(),
		map[string]interface{}{"title": req.Title, "pattern": req.Pattern})

	c.JSON(http.StatusCreated, gin.H{"recurring_event": event})
}

// CreateFromTemplate handles the creation of a recurring event from a preset.
func (h *RecurringEventHandler) CreateFromTemplate(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateFromTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	event, err := h.eventService.CreateFromTemplate(userID, req.Slug, req.StartDate, req.Amount, req.AccountID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_RECURRING_EVENT", "recurring_event", event.ID, c.ClientIP(),
		map[string]interface{}{"template": req.Slug})

	c.JSON(http.StatusCreated, gin.H{"recurring_event": event})
}

// GetTemplates handles listing the rule preset catalog.
func (h *RecurringEventHandler) GetTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"templates": recurrence.Presets()})
}

// GetRecurringEvents handles listing recurring events for the authenticated user.
func (h *RecurringEventHandler) GetRecurringEvents(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var isActive *bool
	if v := c.Query("is_active"); v != "" {
		switch v {
		case "true":
			b := true
			isActive = &b
		case "false":
			b := false
			isActive = &b
		default:
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "is_active must be 'true' or 'false'"))
			return
		}
	}

	result, err := h.eventService.List(userID, page, isActive)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetRecurringEvent handles retrieving a specific recurring event.
func (h *RecurringEventHandler) GetRecurringEvent(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	eventID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	event, err := h.eventService.GetByID(userID, eventID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recurring_event": event})
}

// UpdateRecurringEvent handles updating an existing recurring event.
func (h *RecurringEventHandler) UpdateRecurringEvent(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	eventID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateRecurringEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	event, err := h.eventService.Update(userID, eventID, services.RecurringEventUpdate{
		Title:                     req.Title,
		Description:               req.Description,
		Amount:                    req.Amount,
		CategoryID:                req.CategoryID,
		AccountID:                 req.AccountID,
		Priority:                  req.Priority,
		Tags:                      req.Tags,
		Pattern:                   req.Pattern,
		Interval:                  req.Interval,
		DayOfWeek:                 req.DayOfWeek,
		DayOfMonth:                req.DayOfMonth,
		WeekOfMonth:               req.WeekOfMonth,
		PaymentDay:                req.PaymentDay,
		StartDate:                 req.StartDate,
		EndDate:                   req.EndDate,
		MaxOccurrences:            req.MaxOccurrences,
		SkipWeekends:              req.SkipWeekends,
		SkipHolidays:              req.SkipHolidays,
		ConsiderBrazilianHolidays: req.ConsiderBrazilianHolidays,
		MoveToNextBusinessDay:     req.MoveToNextBusinessDay,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_RECURRING_EVENT", "recurring_event", eventID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"recurring_event": event})
}

// DeactivateRecurringEvent handles deactivating a recurring event.
func (h *RecurringEventHandler) DeactivateRecurringEvent(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	eventID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	event, err := h.eventService.Deactivate(userID, eventID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DEACTIVATE_RECURRING_EVENT", "recurring_event", eventID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"recurring_event": event})
}

// DeleteRecurringEvent handles deleting a recurring event and its generated
// events.
func (h *RecurringEventHandler) DeleteRecurringEvent(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	eventID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.eventService.Delete(userID, eventID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_RECURRING_EVENT", "recurring_event", eventID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Recurring event deleted successfully"})
}

// GenerateEvents handles materializing a recurring event over a window.
func (h *RecurringEventHandler) GenerateEvents(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	eventID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.generationService.GenerateWindow(userID, eventID, req.From, req.To)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
