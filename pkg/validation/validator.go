// Package validation checks event reports and configuration before they reach
// the recorder or the analyzer.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dd0wney/plotgraph/pkg/annotation"
	"github.com/dd0wney/plotgraph/pkg/plotgraph"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// Validation constants
	MaxLabelLength     = 1024
	MaxCharacterLength = 64

	characterPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_\-]*$`)
)

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(fieldName)
	// Empty values pass the custom tags; pair them with required or
	// required_if.
	mustRegister("vertextype", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		_, err := plotgraph.ParseVertexType(s)
		return err == nil
	})
	mustRegister("plotlabel", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || ValidateLabel(s) == nil
	})
	mustRegister("character", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || ValidateCharacter(s) == nil
	})
}

func mustRegister(tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// fieldName reports fields by their JSON or YAML name so errors match what
// the user wrote.
func fieldName(f reflect.StructField) string {
	for _, key := range []string{"json", "yaml"} {
		name, _, _ := strings.Cut(f.Tag.Get(key), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// Struct validates s against its validate tags and returns every violation.
func Struct(s any) error {
	if s == nil {
		return errors.New("value cannot be nil")
	}
	if err := validate.Struct(s); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// ValidateLabel checks that a label is non-empty, bounded and parses as a
// term with an optional annotation block.
func ValidateLabel(label string) error {
	if label == "" {
		return errors.New("label cannot be empty")
	}
	if len(label) > MaxLabelLength {
		return fmt.Errorf("label exceeds maximum length of %d characters", MaxLabelLength)
	}
	if _, err := annotation.Parse(label); err != nil {
		return err
	}
	return nil
}

// ValidateCharacter checks a character name.
func ValidateCharacter(name string) error {
	if name == "" {
		return errors.New("character name cannot be empty")
	}
	if len(name) > MaxCharacterLength {
		return fmt.Errorf("character name '%s' exceeds maximum length of %d characters", name, MaxCharacterLength)
	}
	if !characterPattern.MatchString(name) {
		return fmt.Errorf("character name '%s' is invalid (must start with letter or underscore, followed by alphanumeric, underscore or dash)", name)
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	errs := make([]error, 0, len(validationErrs))
	for _, e := range validationErrs {
		field := e.Field()
		param := e.Param()

		switch e.Tag() {
		case "required":
			errs = append(errs, fmt.Errorf("%s: field is required", field))
		case "required_if":
			errs = append(errs, fmt.Errorf("%s: field is required when %s", field, param))
		case "min":
			errs = append(errs, fmt.Errorf("%s: must be at least %s", field, param))
		case "max":
			errs = append(errs, fmt.Errorf("%s: must not exceed %s", field, param))
		case "oneof":
			errs = append(errs, fmt.Errorf("%s: must be one of [%s]", field, param))
		case "vertextype":
			errs = append(errs, fmt.Errorf("%s: unknown vertex type %q", field, e.Value()))
		case "plotlabel":
			errs = append(errs, fmt.Errorf("%s: malformed label %q", field, e.Value()))
		case "character":
			errs = append(errs, fmt.Errorf("%s: invalid character name %q", field, e.Value()))
		default:
			errs = append(errs, fmt.Errorf("%s: validation failed (%s)", field, e.Tag()))
		}
	}
	return errors.Join(errs...)
}
