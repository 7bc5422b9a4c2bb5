package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance.
// Struct tags on Config drive the rules; see the `validate:` tags.
var validate = validator.New()

// Validate checks the configuration for correctness.
//
// Validation is purely declarative via struct tags and does not mutate the
// configuration. Call ApplyDefaults first if normalization is desired.
//
// Returns a descriptive error listing every failed field, or nil if the
// configuration is valid.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return fmt.Errorf("config validation: %w", err)
		}

		var msgs []string
		for _, fieldErr := range validationErrors {
			msgs = append(msgs, formatFieldError(fieldErr))
		}
		return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(msgs, "\n  - "))
	}

	return nil
}

// formatFieldError renders a single validation failure as a readable message.
// The validation tag name (required, oneof, min, max, ...) is always included
// so the failure category is greppable.
func formatFieldError(fe validator.FieldError) string {
	field := fe.Namespace()
	// Strip the leading "Config." for brevity
	if idx := strings.Index(field, "."); idx >= 0 {
		field = field[idx+1:]
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be oneof [%s] (got %q)", field, fe.Param(), fe.Value())
	case "min":
		return fmt.Sprintf("%s must be at least %s (min, got %v)", field, fe.Param(), fe.Value())
	case "max":
		return fmt.Sprintf("%s must be at most %s (max, got %v)", field, fe.Param(), fe.Value())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s (got %v)", field, fe.Param(), fe.Value())
	case "gte":
		return fmt.Sprintf("%s must be >= %s (got %v)", field, fe.Param(), fe.Value())
	case "lte":
		return fmt.Sprintf("%s must be <= %s (got %v)", field, fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed validation: %s=%s (got %v)", field, fe.Tag(), fe.Param(), fe.Value())
	}
}
