package forms

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

var validate = newValidator()

// newValidator builds a validator that reports errors under JSON field names
// rather than Go struct field names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// FieldError describes a single failed field in a submission.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every field that failed validation, not just the first.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	names := lo.Map(e.Fields, func(f FieldError, _ int) string { return f.Field })
	return fmt.Sprintf("validation failed: %s", strings.Join(names, ", "))
}

func checkStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	return &ValidationError{
		Fields: lo.Map(verrs, func(fe validator.FieldError, _ int) FieldError {
			return FieldError{Field: fe.Field(), Message: fieldMessage(fe)}
		}),
	}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// Validate trims every field and checks the consultation contract: all seven
// fields present and non-empty, email well formed.
func (in *ConsultationInput) Validate() error {
	in.BusinessName = strings.TrimSpace(in.BusinessName)
	in.ContactName = strings.TrimSpace(in.ContactName)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.BusinessType = strings.TrimSpace(in.BusinessType)
	in.AutomationNeeds = strings.TrimSpace(in.AutomationNeeds)
	in.PreferredContactMethod = strings.TrimSpace(in.PreferredContactMethod)
	return checkStruct(in)
}

// Validate trims every field and checks the demo-call contract.
func (in *DemoCallInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.BusinessName = strings.TrimSpace(in.BusinessName)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	return checkStruct(in)
}

// Validate trims every field and checks the contact contract. A phone that is
// missing or blank after trimming is normalized to absent.
func (in *ContactInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Message = strings.TrimSpace(in.Message)
	if in.Phone != nil {
		p := strings.TrimSpace(*in.Phone)
		if p == "" {
			in.Phone = nil
		} else {
			in.Phone = &p
		}
	}
	return checkStruct(in)
}
