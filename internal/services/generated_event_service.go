package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/GrupoUS/aegiswallet-sub008/internal/errors"
	"github.com/GrupoUS/aegiswallet-sub008/internal/models"
	"github.com/GrupoUS/aegiswallet-sub008/internal/pagination"
	"github.com/GrupoUS/aegiswallet-sub008/internal/recurrence"
)

// generatedEventService handles reads and deletes of materialized events.
type generatedEventService struct {
	db *gorm.DB
}

// NewGeneratedEventService creates a new GeneratedEventServicer.
func NewGeneratedEventService(db *gorm.DB) GeneratedEventServicer {
	return &generatedEventService{db: db}
}

// ListWindow returns the user's generated events within the inclusive
// [from, to] window, ordered by event date.
func (s *generatedEventService) ListWindow(userID string, from, to time.Time, page pagination.PageRequest) (*pagination.PageResponse[models.GeneratedEvent], error) {
	if from.IsZero() || to.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidWindow, "Window start and end are required")
	}
	w := recurrence.NewWindow(from, to)
	if w.End.Before(w.Start) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidWindow, "Window end precedes window start")
	}

	page.Defaults()

	base := s.db.Model(&models.GeneratedEvent{}).
		Where("user_id = ? AND event_date BETWEEN ? AND ?", userID, w.Start, w.End)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var events []models.GeneratedEvent
	if err := base.Order("event_date").Scopes(pagination.Paginate(page)).Find(&events).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(events, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// Delete removes a single generated event. The parent rule is untouched, so
// the next regeneration of that window will recreate the occurrence.
func (s *generatedEventService) Delete(userID, eventID string) error {
	var event models.GeneratedEvent
	if err := s.db.Where("id = ? AND user_id = ?", eventID, userID).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrGeneratedEventNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Delete(&event).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
