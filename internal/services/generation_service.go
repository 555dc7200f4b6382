package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/GrupoUS/aegiswallet-sub008/internal/errors"
	"github.com/GrupoUS/aegiswallet-sub008/internal/logger"
	"github.com/GrupoUS/aegiswallet-sub008/internal/models"
	"github.com/GrupoUS/aegiswallet-sub008/internal/recurrence"
)

// maxWindowDays bounds a single generation window to two years.
const maxWindowDays = 731

// generationService materializes recurring events into stored calendar
// entries using the recurrence engine.
type generationService struct {
	db     *gorm.DB
	engine *recurrence.Engine
	audit  AuditServicer
}

// NewGenerationService creates a new GenerationServicer backed by the
// Brazilian holiday calendar.
func NewGenerationService(db *gorm.DB, audit AuditServicer) GenerationServicer {
	return &generationService{db: db, engine: recurrence.NewEngine(), audit: audit}
}

// GenerateWindow regenerates the stored events of one recurring event inside
// the inclusive [from, to] window. Existing rows in the window are replaced,
// so repeating a run is idempotent. Rows outside the window are untouched.
func (s *generationService) GenerateWindow(userID, eventID string, from, to time.Time) (*GenerationResult, error) {
	window, err := s.validateWindow(from, to)
	if err != nil {
		return nil, err
	}

	var event models.RecurringEvent
	if err := s.db.Where("id = ? AND user_id = ?", eventID, userID).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRecurringEventNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if !event.IsActive {
		return nil, apperrors.ErrRecurringEventInactive
	}

	result, err := s.regenerate(&event, window)
	if err != nil {
		return nil, err
	}

	s.audit.Log(userID, "generate", "recurring_event", event.ID, "", map[string]interface{}{
		"from":      window.Start.Format("2006-01-02"),
		"to":        window.End.Format("2006-01-02"),
		"generated": result.Generated,
		"failed":    result.Failed,
	})

	return result, nil
}

// GenerateHorizon regenerates the upcoming horizon for every active recurring
// event. Failures on individual events are logged and skipped so one bad rule
// cannot starve the rest of the run.
func (s *generationService) GenerateHorizon(now time.Time, horizonDays int) error {
	if horizonDays < 1 {
		return apperrors.WithMessage(apperrors.ErrInvalidWindow, "Horizon must be at least one day")
	}

	start := recurrence.DateOnly(now)
	window, err := s.validateWindow(start, start.AddDate(0, 0, horizonDays))
	if err != nil {
		return err
	}

	log := logger.Get()
	var processed, failed int

	var events []models.RecurringEvent
	err = s.db.Where("is_active = ?", true).FindInBatches(&events, 100, func(tx *gorm.DB, batch int) error {
		for i := range events {
			event := &events[i]
			result, err := s.regenerate(event, window)
			if err != nil {
				failed++
				log.Errorw("horizon generation failed for recurring event",
					"recurring_event_id", event.ID,
					"user_id", event.UserID,
					"error", err,
				)
				continue
			}
			processed++
			if result.Failed > 0 {
				log.Warnw("horizon generation stored a partial window",
					"recurring_event_id", event.ID,
					"failed_inserts", result.Failed,
				)
			}
		}
		return nil
	}).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	log.Infow("horizon generation completed",
		"window_start", window.Start.Format("2006-01-02"),
		"window_end", window.End.Format("2006-01-02"),
		"events_processed", processed,
		"events_failed", failed,
	)
	return nil
}

// regenerate expands the rule over the window, replaces the stored rows for
// that window, and inserts the fresh ones. Inserts are best effort: a row
// that fails to store is counted and logged, not fatal.
func (s *generationService) regenerate(event *models.RecurringEvent, window recurrence.Window) (*GenerationResult, error) {
	generated, err := s.engine.Generate(event.Rule(), event.Template(), window)
	if err != nil {
		if errors.Is(err, recurrence.ErrInvalidRule) {
			return nil, apperrors.Wrap(apperrors.ErrInvalidRecurrenceRule, err)
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	err = s.db.Where("recurrence_parent_id = ? AND event_date BETWEEN ? AND ?",
		event.ID, window.Start, window.End).Delete(&models.GeneratedEvent{}).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := &GenerationResult{Events: make([]models.GeneratedEvent, 0, len(generated))}
	for _, ev := range generated {
		row := models.FromRecurrenceEvent(ev)
		if err := s.db.Create(&row).Error; err != nil {
			result.Failed++
			logger.Get().Errorw("failed to store generated event",
				"recurrence_parent_id", event.ID,
				"event_date", ev.EventDate.Format("2006-01-02"),
				"error", err,
			)
			continue
		}
		result.Events = append(result.Events, row)
		result.Generated++
	}
	return result, nil
}

// validateWindow normalizes and bounds the requested window.
func (s *generationService) validateWindow(from, to time.Time) (recurrence.Window, error) {
	if from.IsZero() || to.IsZero() {
		return recurrence.Window{}, apperrors.WithMessage(apperrors.ErrInvalidWindow, "Window start and end are required")
	}
	w := recurrence.NewWindow(from, to)
	if w.End.Before(w.Start) {
		return recurrence.Window{}, apperrors.WithMessage(apperrors.ErrInvalidWindow, "Window end precedes window start")
	}
	if days := int(w.End.Sub(w.Start).Hours()/24) + 1; days > maxWindowDays {
		return recurrence.Window{}, apperrors.WithMessage(apperrors.ErrInvalidWindow,
			fmt.Sprintf("Window spans %d days; the maximum is %d", days, maxWindowDays))
	}
	return w, nil
}
