// Package validation checks appointment submissions before they reach the store.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"tattoo-studio-server/internal/models"
)

// Reason codes reported per field.
const (
	CodeRequired       = "required"
	CodeTooShort       = "too_short"
	CodePhone          = "invalid_phone"
	CodeEmail          = "invalid_email"
	CodeDate           = "invalid_date"
	CodePastDate       = "past_date"
	CodeUnknownSlot    = "unknown_slot"
	CodeUnknownService = "unknown_service"
	CodeSlotTaken      = "slot_taken"
)

var (
	phonePattern = regexp.MustCompile(`^\(\d{2}\)\s\d{4,5}-\d{4}$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "phone_br", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "basic_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "iso_date", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(models.DateLayout, fl.Field().String())
		return err == nil
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s: %v", tag, err))
	}
}

// FieldError names the offending field and why it was rejected.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Result collects every failure found in a submission.
type Result struct {
	Errors []FieldError `json:"errors"`
}

func (r Result) OK() bool {
	return len(r.Errors) == 0
}

// Err returns the failures as an *Error, or nil when the submission passed.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	return &Error{Errors: r.Errors}
}

func (r *Result) add(field, code, msg string) {
	r.Errors = append(r.Errors, FieldError{Field: field, Code: code, Message: msg})
}

func (r Result) hasField(field string) bool {
	for _, e := range r.Errors {
		if e.Field == field {
			return true
		}
	}
	return false
}

// Error is a rejected submission.
type Error struct {
	Errors []FieldError
}

func (e *Error) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		msgs[i] = fe.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// HasCode reports whether any field failed with code.
func (e *Error) HasCode(code string) bool {
	for _, fe := range e.Errors {
		if fe.Code == code {
			return true
		}
	}
	return false
}

// AsError unwraps a validation *Error from err.
func AsError(err error) (*Error, bool) {
	var ve *Error
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// Submission validates c against the catalog and the appointments already
// booked on c.Date. now must be in the studio's location.
func Submission(c models.Candidate, catalog models.Catalog, booked []models.Appointment, now time.Time) Result {
	var res Result

	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			res.add("", CodeRequired, err.Error())
			return res
		}
		for _, fe := range verrs {
			code, msg := describe(fe)
			res.add(fe.Field(), code, msg)
		}
	}

	if !res.hasField("date") && c.Date < models.DateOf(now) {
		res.add("date", CodePastDate, "date cannot be in the past")
	}
	if !res.hasField("timeSlot") && !catalog.HasSlot(c.TimeSlot) {
		res.add("timeSlot", CodeUnknownSlot, fmt.Sprintf("time slot %q is not offered", c.TimeSlot))
	}
	if !res.hasField("service") && !catalog.HasService(c.Service) {
		res.add("service", CodeUnknownService, fmt.Sprintf("service %q is not offered", c.Service))
	}

	if !res.hasField("date") && !res.hasField("timeSlot") {
		for _, a := range booked {
			if a.Date == c.Date && a.TimeSlot == c.TimeSlot {
				res.add("timeSlot", CodeSlotTaken, "this time slot has already been booked")
				break
			}
		}
	}

	return res
}

func describe(fe validator.FieldError) (string, string) {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return CodeRequired, field + " is required"
	case "min":
		return CodeTooShort, fmt.Sprintf("%s must have at least %s characters", field, fe.Param())
	case "phone_br":
		return CodePhone, "phone must look like (11) 99999-9999"
	case "basic_email":
		return CodeEmail, "email is invalid"
	case "iso_date":
		return CodeDate, "date must be formatted as YYYY-MM-DD"
	default:
		return fe.Tag(), field + " is invalid"
	}
}
