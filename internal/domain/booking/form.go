package booking

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/pinecove/cabin-console/internal/domain"
)

// Form carries the candidate booking a client submitted. Structural bounds
// live in the validate tags; cross-field business rules are applied by
// ValidateForm.
type Form struct {
	Name         string    `json:"name" validate:"required,min=2"`
	Email        string    `json:"email" validate:"required,email"`
	Phone        string    `json:"phone" validate:"required,min=9,phone"`
	NumOfGuests  int       `json:"numOfGuests" validate:"required,gt=0"`
	Observations string    `json:"observations"`
	CabinID      uuid.UUID `json:"cabinId" validate:"required"`
	Dates        DateRange `json:"dates"`
	IsBreakfast  bool      `json:"isBreakfast"`
}

// FormRules are the data a validation pass checks the form against: the
// selected cabin's capacity, the occupied ranges for that cabin (already
// shrunk for turnover-day sharing, excluding the booking's own reservation
// when editing), and the configured night bounds.
type FormRules struct {
	MaxNumOfGuests int
	Occupied       []DateRange
	MinNights      int
	MaxNights      int
}

var phonePattern = regexp.MustCompile(`^\+?\d{1,3}?[ -]?\(?\d{2,4}\)?[ -]?\d{3,5}[ -]?\d{3,5}$`)

var formValidator = newFormValidator()

func newFormValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return v
}

// ValidateForm runs the structural schema and all business rules over the
// form and returns every field error found. The checks are independent; an
// invalid guest count and an unavailable date range are both reported in the
// same pass. A nil return means the form is valid.
func ValidateForm(form Form, rules FormRules, now time.Time) *domain.FieldValidationError {
	errs := make(map[string]domain.FieldError)

	if err := formValidator.Struct(form); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				errs[fe.Field()] = domain.FieldError{
					Kind:    fe.Tag(),
					Message: schemaMessage(fe),
				}
			}
		}
	}

	if rules.MaxNumOfGuests > 0 && form.NumOfGuests > rules.MaxNumOfGuests {
		errs["numOfGuests"] = domain.FieldError{
			Kind:    "manual",
			Message: "Exceeds max guests for cabin.",
		}
	}

	if RangeDisabled(form.Dates, rules.Occupied) {
		errs["dates"] = domain.FieldError{
			Kind:    "manual",
			Message: "Selected dates are already booked.",
		}
	}

	if rules.MaxNights > 0 {
		from := form.Dates.From
		if from.IsZero() {
			from = now
		}
		to := form.Dates.To
		if to.IsZero() {
			to = from
		}
		nights := CalendarDays(from, to)
		if nights < rules.MinNights || nights > rules.MaxNights {
			// The nights-bounds error takes precedence over the
			// availability error on this field.
			errs["dates"] = domain.FieldError{
				Kind:    "manual",
				Message: fmt.Sprintf("Booking must be between %d and %d nights.", rules.MinNights, rules.MaxNights),
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return &domain.FieldValidationError{Fields: errs}
}

func schemaMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "name":
		return "Name must be at least 2 characters."
	case "email":
		return "Invalid email address."
	case "phone":
		if fe.Tag() == "min" {
			return "Phone number must be at least 9 digits."
		}
		return "Invalid phone number format."
	case "numOfGuests":
		return "Number of guests must be a positive number."
	case "cabinId":
		return "Please select a cabin."
	default:
		return fmt.Sprintf("Invalid value for %s.", fe.Field())
	}
}
