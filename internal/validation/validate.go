package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/boddenberg/tochka-go/internal/domain"
)

const (
	RulePhoneLength  = "phone_length"
	RulePhonePattern = "phone_pattern"
	RuleTaxLength    = "tax_length"
	RuleTaxPattern   = "tax_pattern"
)

// ValidatePhone accepts 11 to 15 bytes made of ASCII digits, optionally
// prefixed by a single '+'.
func ValidatePhone(phone string) error {
	if len(phone) < 11 || len(phone) > 15 {
		return &domain.ErrValidation{Field: "phone", Rule: RulePhoneLength, Message: "length must be between 11 and 15"}
	}
	if !allDigits(strings.TrimPrefix(phone, "+")) {
		return &domain.ErrValidation{Field: "phone", Rule: RulePhonePattern, Message: "must be digits with an optional leading '+'"}
	}
	return nil
}

// ValidateTaxCode accepts 10 to 12 ASCII digits.
func ValidateTaxCode(tax string) error {
	if len(tax) < 10 || len(tax) > 12 {
		return &domain.ErrValidation{Field: "taxCode", Rule: RuleTaxLength, Message: "length must be between 10 and 12"}
	}
	if !allDigits(tax) {
		return &domain.ErrValidation{Field: "taxCode", Rule: RuleTaxPattern, Message: "must contain digits only"}
	}
	return nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// NewValidator returns a validator that knows the phone and tax_code tags
// and reports fields by their JSON names.
func NewValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	_ = validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return ValidatePhone(fl.Field().String()) == nil
	})
	_ = validate.RegisterValidation("tax_code", func(fl validator.FieldLevel) bool {
		return ValidateTaxCode(fl.Field().String()) == nil
	})
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			name, _, _ = strings.Cut(f.Tag.Get("query"), ",")
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return validate
}

var defaultValidator = NewValidator()

// Struct validates v and returns domain.ValidationErrors listing every
// failed field, or nil.
func Struct(v any) error {
	err := defaultValidator.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := make(domain.ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, toDomain(fe))
	}
	return out
}

func toDomain(fe validator.FieldError) *domain.ErrValidation {
	field := fieldPath(fe)
	value := fmt.Sprint(fe.Value())

	switch fe.Tag() {
	case "phone":
		var ve *domain.ErrValidation
		if errors.As(ValidatePhone(value), &ve) {
			return &domain.ErrValidation{Field: field, Rule: ve.Rule, Message: ve.Message}
		}
	case "tax_code":
		var ve *domain.ErrValidation
		if errors.As(ValidateTaxCode(value), &ve) {
			return &domain.ErrValidation{Field: field, Rule: ve.Rule, Message: ve.Message}
		}
	}
	return &domain.ErrValidation{Field: field, Rule: fe.Tag(), Message: msgForFieldError(fe)}
}

// fieldPath drops the root struct name from the namespace,
// e.g. CreatePaymentPayload.Client.phone -> Client.phone.
func fieldPath(fe validator.FieldError) string {
	_, rest, found := strings.Cut(fe.Namespace(), ".")
	if !found {
		return fe.Field()
	}
	return rest
}

func msgForFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "len":
		return fmt.Sprintf("length must be exactly %s", fe.Param())
	case "min":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Slice {
			return fmt.Sprintf("length must be at least %s", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Slice {
			return fmt.Sprintf("length must be at most %s", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal %s", fe.Param())
	default:
		return "invalid value"
	}
}
