package handlers

import (
	"fmt"
	"net/http"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/gin-gonic/gin"

	apperrors "github.com/GrupoUS/aegiswallet-sub008/internal/errors"
	"github.com/GrupoUS/aegiswallet-sub008/internal/models"
	"github.com/GrupoUS/aegiswallet-sub008/internal/pagination"
	"github.com/GrupoUS/aegiswallet-sub008/internal/services"
)

// Default feed window when the caller does not narrow it: the past month of
// history plus the upcoming half year.
const (
	feedPastDays   = 30
	feedFutureDays = 180
)

// CalendarHandler serves the materialized event calendar: JSON listings, single
// occurrence removal, and an iCalendar feed for external calendar apps.
type CalendarHandler struct {
	generatedService services.GeneratedEventServicer
	auditService     services.AuditServicer
}

// NewCalendarHandler creates a new CalendarHandler.
func NewCalendarHandler(generatedService services.GeneratedEventServicer, auditService services.AuditServicer) *CalendarHandler {
	return &CalendarHandler{generatedService: generatedService, auditService: auditService}
}

// GetCalendar handles listing generated events inside a window.
func (h *CalendarHandler) GetCalendar(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	from, err := parseDateQuery(c, "from")
	if err != nil {
		respondWithError(c, err)
		return
	}
	to, err := parseDateQuery(c, "to")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.generatedService.ListWindow(userID, from, to, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// DeleteGeneratedEvent handles removing a single materialized occurrence.
func (h *CalendarHandler) DeleteGeneratedEvent(c *gin.Context) {
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

	if err := h.generatedService.Delete(userID, eventID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_GENERATED_EVENT", "generated_event", eventID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}

// GetFeed handles serving the user's generated events as an iCalendar feed.
// Optional from/to query parameters narrow the window; otherwise the feed
// covers the recent past plus the upcoming half year.
func (h *CalendarHandler) GetFeed(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	from := today.AddDate(0, 0, -feedPastDays)
	to := today.AddDate(0, 0, feedFutureDays)
	if c.Query("from") != "" {
		if from, err = parseDateQuery(c, "from"); err != nil {
			respondWithError(c, err)
			return
		}
	}
	if c.Query("to") != "" {
		if to, err = parseDateQuery(c, "to"); err != nil {
			respondWithError(c, err)
			return
		}
	}

	events, err := h.collectWindow(userID, from, to)
	if err != nil {
		respondWithError(c, err)
		return
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//AegisWallet//Recurring Events//PT-BR")
	cal.SetName("AegisWallet")

	for i := range events {
		ev := &events[i]
		vevent := cal.AddEvent(fmt.Sprintf("%s@aegiswallet", ev.ID))
		vevent.SetDtStampTime(ev.CreatedAt.UTC())
		vevent.SetAllDayStartAt(ev.EventDate)
		vevent.SetAllDayEndAt(ev.EventDate.AddDate(0, 0, 1))
		vevent.SetSummary(ev.Title)

		description := ev.Description
		if ev.Amount != nil {
			if description != "" {
				description += "\n"
			}
			description += "R$ " + ev.Amount.StringFixed(2)
		}
		if description != "" {
			vevent.SetDescription(description)
		}
	}

	c.Header("Content-Type", "text/calendar; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="aegiswallet.ics"`)
	c.String(http.StatusOK, cal.Serialize())
}

// collectWindow pages through the full window so the feed is never truncated
// by the default page size.
func (h *CalendarHandler) collectWindow(userID string, from, to time.Time) ([]models.GeneratedEvent, error) {
	var out []models.GeneratedEvent
	page := pagination.PageRequest{Page: 1, PageSize: 100}
	for {
		result, err := h.generatedService.ListWindow(userID, from, to, page)
		if err != nil {
			return nil, err
		}
		out = append(out, result.Data...)
		if page.Page >= result.TotalPages {
			return out, nil
		}
		page.Page++
	}
}
