// Package config provides configuration management for the Sharp Props engine.
package config

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var seasonPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// CustomValidator wraps the validator with custom validation rules
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions
func NewValidator() *CustomValidator {
	v := validator.New()

	// Register custom validation functions
	_ = v.RegisterValidation("environment", validateEnvironment)
	_ = v.RegisterValidation("loglevel", validateLogLevel)
	_ = v.RegisterValidation("season", validateSeason)

	return &CustomValidator{validator: v}
}

// Validate validates the entire configuration
func Validate(cfg *Config) error {
	cv := NewValidator()
	return cv.Validate(cfg)
}

// Validate validates the configuration using registered validation rules
func (cv *CustomValidator) Validate(cfg *Config) error {
	err := cv.validator.Struct(cfg)
	if err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	// Additional cross-field validations
	return validateCrossField(cfg)
}

// validateEnvironment validates the environment field
func validateEnvironment(fl validator.FieldLevel) bool {
	env := fl.Field().String()
	switch env {
	case "development", "staging", "production":
		return true
	default:
		return false
	}
}

// validateLogLevel validates the log level field
func validateLogLevel(fl validator.FieldLevel) bool {
	level := fl.Field().String()
	switch level {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// validateSeason validates NBA season strings ("2025-26")
func validateSeason(fl validator.FieldLevel) bool {
	return seasonPattern.MatchString(fl.Field().String())
}

// validateCrossField performs cross-field validations
func validateCrossField(cfg *Config) error {
	if cfg.Engine.Overdispersed && cfg.Engine.Volatility <= 0 {
		return fmt.Errorf("engine.volatility must be positive when engine.overdispersed is enabled")
	}

	for key, mult := range cfg.Engine.PositionDefense {
		if mult <= 0 {
			return fmt.Errorf("engine.position_defense[%s] must be positive, got %f", key, mult)
		}
	}
	for name, bias := range cfg.Engine.RefereeBias {
		if bias <= 0 {
			return fmt.Errorf("engine.referee_bias[%s] must be positive, got %f", name, bias)
		}
	}

	if cfg.Metrics.Enabled && cfg.Metrics.Path == "" {
		return fmt.Errorf("metrics.path is required when metrics are enabled")
	}

	return nil
}

// formatValidationErrors formats validation errors into a readable message
func formatValidationErrors(errs validator.ValidationErrors) error {
	msg := "configuration validation failed:"
	for _, err := range errs {
		msg += fmt.Sprintf("\n  - field '%s' failed on '%s' rule", err.Namespace(), err.Tag())
	}
	return fmt.Errorf("%s", msg)
}
