// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/GrupoUS/aegiswallet-sub008/internal/recurrence"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("recurrence_pattern", validateRecurrencePattern)
		_ = v.RegisterValidation("payment_day", validatePaymentDay)
		_ = v.RegisterValidation("priority", validatePriority)
	}
}

func validateRecurrencePattern(fl validator.FieldLevel) bool {
	switch recurrence.Pattern(fl.Field().String()) {
	case recurrence.PatternDaily, recurrence.PatternWeekly, recurrence.PatternBiweekly,
		recurrence.PatternMonthly, recurrence.PatternBimonthly, recurrence.PatternQuarterly,
		recurrence.PatternSemiannual, recurrence.PatternYearly, recurrence.PatternCustom:
		return true
	}
	return false
}

func validatePaymentDay(fl validator.FieldLevel) bool {
	switch recurrence.PaymentDay(fl.Field().String()) {
	case recurrence.PaymentDayNone, recurrence.PaymentDayBusinessDay,
		recurrence.PaymentDayFirstBusinessDay, recurrence.PaymentDayLastBusinessDay,
		recurrence.PaymentDayFixedDay, recurrence.PaymentDayLastDayOfMonth,
		recurrence.PaymentDayClosestBusinessDay:
		return true
	}
	return false
}

func validatePriority(fl validator.FieldLevel) bool {
	switch recurrence.Priority(fl.Field().String()) {
	case recurrence.PriorityLow, recurrence.PriorityNormal,
		recurrence.PriorityHigh, recurrence.PriorityUrgent:
		return true
	}
	return false
}
