// Package config provides configuration management for the Leaguebook application.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/yourusername/leaguebook/internal/models"
)

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
	_ = v.RegisterValidation("percentile", validatePercentile)
	_ = v.RegisterValidation("positions", validatePositions)

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
	if err := validateCrossField(cfg); err != nil {
		return err
	}

	return nil
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

// validatePercentile validates a probability used as a percentile cut
func validatePercentile(fl validator.FieldLevel) bool {
	p := fl.Field().Float()
	return p > 0 && p < 1
}

// validatePositions validates a slot's eligible position list
func validatePositions(fl validator.FieldLevel) bool {
	positions, ok := fl.Field().Interface().([]string)
	if !ok || len(positions) == 0 {
		return false
	}

	validPositions := map[string]bool{
		string(models.PositionQB):  true,
		string(models.PositionRB):  true,
		string(models.PositionWR):  true,
		string(models.PositionTE):  true,
		string(models.PositionK):   true,
		string(models.PositionDEF): true,
	}

	for _, pos := range positions {
		if !validPositions[pos] {
			return false
		}
	}
	return true
}

// validateCrossField performs cross-field validations
func validateCrossField(cfg *Config) error {
	// Validate production environment requirements
	if cfg.IsProduction() {
		if cfg.Database.SSLMode == "disable" {
			return fmt.Errorf("production environment requires SSL mode to be 'require' or 'verify-full'")
		}
	}

	// Validate connection pool settings
	if cfg.Database.MaxIdleConnections > cfg.Database.MaxConnections {
		return fmt.Errorf("max_idle_connections cannot exceed max_connections")
	}

	// A schedule expression is only meaningful when the scheduler runs
	if cfg.Schedule.Enabled && cfg.Schedule.WeeklyRun == "" {
		return fmt.Errorf("schedule.weekly_run is required when the scheduler is enabled")
	}
	if cfg.Schedule.SeasonStart != "" {
		if _, err := time.Parse("2006-01-02", cfg.Schedule.SeasonStart); err != nil {
			return fmt.Errorf("schedule.season_start must be a YYYY-MM-DD date: %w", err)
		}
	}

	// Duplicate slot names would make underfill reporting ambiguous
	seen := make(map[string]bool, len(cfg.League.Slots))
	for _, slot := range cfg.League.Slots {
		if seen[slot.Name] {
			return fmt.Errorf("duplicate lineup slot name %q", slot.Name)
		}
		seen[slot.Name] = true
	}

	return nil
}

// formatValidationErrors formats validation errors into a readable string
func formatValidationErrors(validationErrors validator.ValidationErrors) error {
	var errMsg string
	for _, fieldError := range validationErrors {
		field := fieldError.StructField()
		tag := fieldError.Tag()
		value := fieldError.Value()

		switch tag {
		case "required":
			errMsg += fmt.Sprintf("- Field '%s' is required\n", field)
		case "min", "max":
			errMsg += fmt.Sprintf("- Field '%s' validation failed: %s constraint violated\n", field, tag)
		case "gt", "gte", "lt", "lte":
			errMsg += fmt.Sprintf("- Field '%s' validation failed: numeric constraint %s violated\n", field, tag)
		case "environment":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: development, staging, production\n", field)
		case "loglevel":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: debug, info, warn, error\n", field)
		case "percentile":
			errMsg += fmt.Sprintf("- Field '%s' must be strictly between 0 and 1, got '%v'\n", field, value)
		case "positions":
			errMsg += fmt.Sprintf("- Field '%s' contains an unknown position\n", field)
		case "oneof":
			errMsg += fmt.Sprintf("- Field '%s' has invalid value '%v'\n", field, value)
		default:
			errMsg += fmt.Sprintf("- Field '%s' failed validation: %s\n", field, tag)
		}
	}
	return fmt.Errorf("configuration validation failed:\n%s", errMsg)
}

// ValidateEnvironment validates environment-specific requirements
func ValidateEnvironment(cfg *Config) error {
	if cfg.IsProduction() {
		// Production must have SSL enabled
		if cfg.Database.SSLMode == "disable" {
			return fmt.Errorf("production environment requires database SSL mode to be 'require' or 'verify-full'")
		}
	}

	return nil
}
