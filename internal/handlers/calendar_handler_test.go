package handlers

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "github.com/GrupoUS/aegiswallet-sub008/internal/errors"
	"github.com/GrupoUS/aegiswallet-sub008/internal/models"
	"github.com/GrupoUS/aegiswallet-sub008/internal/pagination"
	"github.com/GrupoUS/aegiswallet-sub008/internal/services"
)

type mockGeneratedEventService struct {
	listWindowFn func(userID string, from, to time.Time, page pagination.PageRequest) (*pagination.PageResponse[models.GeneratedEvent], error)
	deleteFn     func(userID, eventID string) error
}

func (m *mockGeneratedEventService) ListWindow(userID string, from, to time.Time, page pagination.PageRequest) (*pagination.PageResponse[models.GeneratedEvent], error) {
	if m.listWindowFn != nil {
		return m.listWindowFn(userID, from, to, page)
	}
	resp := pagination.NewPageResponse([]models.GeneratedEvent{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockGeneratedEventService) Delete(userID, eventID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(userID, eventID)
	}
	return nil
}

var _ services.GeneratedEventServicer = (*mockGeneratedEventService)(nil)

func setupCalendarRouter(handler *CalendarHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.GET("/calendar", handler.GetCalendar)
	auth.GET("/calendar/feed.ics", handler.GetFeed)
	auth.DELETE("/calendar/events/:id", handler.DeleteGeneratedEvent)
	return r
}

func TestCalendarHandler_GetCalendar(t *testing.T) {
	t.Run("returns events in window", func(t *testing.T) {
		svc := &mockGeneratedEventService{
			listWindowFn: func(userID string, from, to time.Time, page pagination.PageRequest) (*pagination.PageResponse[models.GeneratedEvent], error) {
				events := []models.GeneratedEvent{
					{Base: models.Base{ID: "g1"}, UserID: userID, Title: "Aluguel", EventDate: from},
				}
				resp := pagination.NewPageResponse(events, 1, 20, 1)
				return &resp, nil
			},
		}
		handler := NewCalendarHandler(svc, &mockAuditService{})
		r := setupCalendarRouter(handler)

		rec := doRequest(r, "GET", "/calendar?from=2024-01-01&to=2024-03-31", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["total_items"].(float64) != 1 {
			t.Errorf("expected 1 item, got %v", result["total_items"])
		}
	})

	t.Run("returns 400 without window", func(t *testing.T) {
		handler := NewCalendarHandler(&mockGeneratedEventService{}, &mockAuditService{})
		r := setupCalendarRouter(handler)

		rec := doRequest(r, "GET", "/calendar", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on malformed date", func(t *testing.T) {
		handler := NewCalendarHandler(&mockGeneratedEventService{}, &mockAuditService{})
		r := setupCalendarRouter(handler)

		rec := doRequest(r, "GET", "/calendar?from=01-01-2024&to=2024-03-31", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}

func TestCalendarHandler_GetFeed(t *testing.T) {
	amount := decimal.NewFromFloat(1800.00)
	eventDate := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)
	svc := &mockGeneratedEventService{
		listWindowFn: func(userID string, from, to time.Time, page pagination.PageRequest) (*pagination.PageResponse[models.GeneratedEvent], error) {
			events := []models.GeneratedEvent{
				{
					Base:      models.Base{ID: "g1", CreatedAt: eventDate},
					UserID:    userID,
					Title:     "Aluguel",
					Amount:    &amount,
					EventDate: eventDate,
				},
			}
			resp := pagination.NewPageResponse(events, page.Page, page.PageSize, 1)
			return &resp, nil
		},
	}
	handler := NewCalendarHandler(svc, &mockAuditService{})
	r := setupCalendarRouter(handler)

	rec := doRequest(r, "GET", "/calendar/feed.ics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Errorf("expected text/calendar content type, got %s", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "BEGIN:VCALENDAR") {
		t.Error("expected VCALENDAR envelope")
	}
	if !strings.Contains(body, "SUMMARY:Aluguel") {
		t.Error("expected event summary in feed")
	}
	if !strings.Contains(body, "g1@aegiswallet") {
		t.Error("expected stable event UID in feed")
	}
}

func TestCalendarHandler_DeleteGeneratedEvent(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		handler := NewCalendarHandler(&mockGeneratedEventService{}, &mockAuditService{})
		r := setupCalendarRouter(handler)

		rec := doRequest(r, "DELETE", "/calendar/events/"+testUserID, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockGeneratedEventService{
			deleteFn: func(_, _ string) error { return apperrors.ErrGeneratedEventNotFound },
		}
		handler := NewCalendarHandler(svc, &mockAuditService{})
		r := setupCalendarRouter(handler)

		rec := doRequest(r, "DELETE", "/calendar/events/"+testUserID, "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "GENERATED_EVENT_NOT_FOUND")
	})
}
