package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/verte-zerg/sightdrill/internal/model"
)

var validate = validator.New()

// flagNames maps struct fields to the CLI flag users set them with.
var flagNames = map[string]string{
	"Profile":     "--profile",
	"Policy":      "--policy",
	"Mode":        "--mode",
	"PreviewMs":   "--preview-ms",
	"Lists":       "--list",
	"Backend":     "--backend",
	"LogLevel":    "--log-level",
	"Weak":        "--weak",
	"Last":        "--last",
	"CurveWindow": "--curve-window",
}

// Validate checks resolved run settings.
func Validate(cfg model.Config) error {
	return translate(validate.Struct(cfg))
}

// ValidateStats checks stats settings.
func ValidateStats(cfg model.StatsConfig) error {
	return translate(validate.Struct(cfg))
}

func translate(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	field, _, _ := strings.Cut(fe.StructField(), "[")
	flag, ok := flagNames[field]
	if !ok {
		flag = field
	}
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s must not be empty", flag)
	case "oneof":
		return fmt.Errorf("%s must be one of: %s", flag, fe.Param())
	case "gt":
		return fmt.Errorf("%s must be > %s", flag, fe.Param())
	case "gte":
		return fmt.Errorf("%s must be >= %s", flag, fe.Param())
	case "lte", "max":
		return fmt.Errorf("%s must be at most %s", flag, fe.Param())
	case "min":
		return fmt.Errorf("%s must be at least %s", flag, fe.Param())
	default:
		return fmt.Errorf("%s is invalid (%s)", flag, fe.Tag())
	}
}
