package services

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"
)

// validationMode selects how validateProduct treats the submitted fields.
type validationMode int

const (
	// strictMode is used on create: every field is required.
	strictMode validationMode = iota
	// patchMode is used on update: absent fields are skipped and blank
	// name/description values are dropped instead of rejected.
	patchMode
)

// ValidationError lists the offending fields of a rejected write, keyed by JSON name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// productFields is the validated subset of a product write.
type productFields struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
}

type strictRules struct {
	Name        string          `json:"name" validate:"notblank,max=100"`
	Description string          `json:"description" validate:"notblank,max=500"`
	Price       decimal.Decimal `json:"price" validate:"gt=0"`
}

type patchRules struct {
	Name        *string          `json:"name" validate:"omitnil,max=100"`
	Description *string          `json:"description" validate:"omitnil,max=500"`
	Price       *decimal.Decimal `json:"price" validate:"omitnil,gt=0"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	// Prices reach the gt rule as their sign (-1, 0 or 1).
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.Sign()
		}
		return nil
	}, decimal.Decimal{})
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateProduct is shared by create and update. It returns the fields that
// should be applied, which in patch mode omits blank name/description values.
func validateProduct(v *validator.Validate, mode validationMode, f productFields) (productFields, error) {
	var err error
	switch mode {
	case patchMode:
		f.Name = dropBlank(f.Name)
		f.Description = dropBlank(f.Description)
		err = v.Struct(patchRules{Name: f.Name, Description: f.Description, Price: f.Price})
	default:
		rules := strictRules{}
		if f.Name != nil {
			rules.Name = *f.Name
		}
		if f.Description != nil {
			rules.Description = *f.Description
		}
		if f.Price != nil {
			rules.Price = *f.Price
		}
		err = v.Struct(rules)
	}
	if err != nil {
		return f, toValidationError(err)
	}
	return f, nil
}

func toValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate product: %w", err)
	}
	out := &ValidationError{Fields: make(map[string]string, len(fieldErrs))}
	for _, e := range fieldErrs {
		out.Fields[e.Field()] = describe(e)
	}
	return out
}

func describe(e validator.FieldError) string {
	switch e.Tag() {
	case "notblank":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", e.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", e.Param())
	default:
		return fmt.Sprintf("failed on the '%s' rule", e.Tag())
	}
}

func dropBlank(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
