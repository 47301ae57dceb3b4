package validation

import (
	"math"
	"strings"

	"zenith/internal/config"
	"zenith/internal/domain"
)

// Validator provides common validation utilities
type Validator struct {
	rules config.ValidationConfig
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{rules: config.NewConfig().Validation}
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	if cfg == nil {
		return NewValidator()
	}
	return &Validator{rules: cfg.Validation}
}

// Rules returns the limits the validator enforces.
func (v *Validator) Rules() config.ValidationConfig {
	return v.rules
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsFinite rejects NaN and the infinities.
func (v *Validator) IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// IsValidRating checks a raw effort or enjoyability rating against the
// configured scale.
func (v *Validator) IsValidRating(r float64) bool {
	return v.IsFinite(r) && r >= v.rules.MinRating && r <= v.rules.MaxRating
}

// IsValidWindow checks that a manual window has positive length.
func (v *Validator) IsValidWindow(start, end domain.ClockTime) bool {
	return end > start
}

// IsValidTaskCount checks the number of tasks in one request.
func (v *Validator) IsValidTaskCount(n int) bool {
	return n >= 0 && n <= v.rules.MaxTasks
}
