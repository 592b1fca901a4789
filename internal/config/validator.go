package config

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "display.max_text_width")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// slotNameRegex validates slot names. The name becomes a file name, so it is
// limited to alphanumerics, hyphen and underscore.
var slotNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]*$`)

const (
	minTextWidth = 10
	maxTextWidth = 200
)

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateStorage()...)
	errors = append(errors, c.validateLogging()...)
	errors = append(errors, c.validateDisplay()...)

	return errors
}

// validateStorage validates the StorageConfig
func (c *Config) validateStorage() []ValidationError {
	var errors []ValidationError

	if !slotNameRegex.MatchString(c.Storage.Slot) {
		errors = append(errors, ValidationError{
			Field:   "storage.slot",
			Value:   c.Storage.Slot,
			Message: "must start with a letter or digit and contain only letters, digits, hyphens, and underscores",
		})
	}

	if c.Storage.Dir != "" {
		path := c.Storage.Dir

		if strings.ContainsRune(path, '\x00') {
			errors = append(errors, ValidationError{
				Field:   "storage.dir",
				Value:   path,
				Message: "path contains invalid null character",
			})
		}

		const maxPathLength = 4096
		if len(path) > maxPathLength {
			errors = append(errors, ValidationError{
				Field:   "storage.dir",
				Value:   path,
				Message: fmt.Sprintf("path exceeds maximum length of %d characters", maxPathLength),
			})
		}
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	if c.Logging.MaxSizeMB <= 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: "must be positive",
		})
	}

	const maxLogSizeMB = 1000 // 1GB
	if c.Logging.MaxSizeMB > maxLogSizeMB {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: fmt.Sprintf("exceeds maximum of %dMB", maxLogSizeMB),
		})
	}

	if c.Logging.MaxBackups < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_backups",
			Value:   c.Logging.MaxBackups,
			Message: "must be non-negative",
		})
	}

	return errors
}

// validateDisplay validates the DisplayConfig
func (c *Config) validateDisplay() []ValidationError {
	var errors []ValidationError

	if c.Display.Theme != "" && !slices.Contains(ValidThemes(), c.Display.Theme) {
		errors = append(errors, ValidationError{
			Field:   "display.theme",
			Value:   c.Display.Theme,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidThemes(), ", ")),
		})
	}

	if c.Display.Color != "" && !slices.Contains(ValidColorModes(), c.Display.Color) {
		errors = append(errors, ValidationError{
			Field:   "display.color",
			Value:   c.Display.Color,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidColorModes(), ", ")),
		})
	}

	if c.Display.MaxTextWidth < minTextWidth || c.Display.MaxTextWidth > maxTextWidth {
		errors = append(errors, ValidationError{
			Field:   "display.max_text_width",
			Value:   c.Display.MaxTextWidth,
			Message: fmt.Sprintf("must be between %d and %d", minTextWidth, maxTextWidth),
		})
	}

	return errors
}
