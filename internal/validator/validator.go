package validator

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	ierr "github.com/claimsdesk/claims-service/internal/errors"
	"github.com/claimsdesk/claims-service/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	validate *validator.Validate
	once     sync.Once

	indexPattern = regexp.MustCompile(`\[\d+\]`)
)

// FieldError is one violated rule, addressed by the JSON path of the field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result is the outcome of validating a request. Every rule is evaluated, so
// Errors lists all violations at once.
type Result struct {
	Valid  bool         `json:"valid"`
	Errors []FieldError `json:"errors,omitempty"`
}

// NewValidator builds the shared validator with the custom rules registered
func NewValidator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		// report fields by their JSON names
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})

		// dates are validated as time.Time, decimals as their exact string form
		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if d, ok := field.Interface().(types.Date); ok && !d.IsZero() {
				return d.Time
			}
			return nil
		}, types.Date{})
		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				return d.String()
			}
			return nil
		}, decimal.Decimal{})

		_ = v.RegisterValidation("notfuture", func(fl validator.FieldLevel) bool {
			t, ok := fl.Field().Interface().(time.Time)
			if !ok {
				return true
			}
			return !types.NewDate(t).IsAfter(types.Today())
		})

		_ = v.RegisterValidation("decimalgt", compareDecimal(decimal.Decimal.GreaterThan))
		_ = v.RegisterValidation("decimallte", compareDecimal(decimal.Decimal.LessThanOrEqual))
		// decimalscale=N rejects values with more than N fractional digits
		_ = v.RegisterValidation("decimalscale", func(fl validator.FieldLevel) bool {
			d, ok := decimalField(fl)
			if !ok {
				return false
			}
			places, err := strconv.ParseInt(fl.Param(), 10, 32)
			if err != nil {
				return false
			}
			return d.Equal(d.Truncate(int32(places)))
		})

		validate = v
	})
	return validate
}

func decimalField(fl validator.FieldLevel) (decimal.Decimal, bool) {
	s, ok := fl.Field().Interface().(string)
	if !ok {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	return d, err == nil
}

func compareDecimal(cmp func(d, bound decimal.Decimal) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		d, ok := decimalField(fl)
		if !ok {
			return false
		}
		bound, err := decimal.NewFromString(fl.Param())
		if err != nil {
			return false
		}
		return cmp(d, bound)
	}
}

func GetValidator() *validator.Validate {
	return NewValidator()
}

// Validate runs every rule on req and reports all violations
func Validate(req interface{}) Result {
	err := GetValidator().Struct(req)
	if err == nil {
		return Result{Valid: true}
	}

	var validateErrs validator.ValidationErrors
	if !ierr.As(err, &validateErrs) {
		return Result{Errors: []FieldError{{Field: "", Message: err.Error()}}}
	}

	errs := make([]FieldError, 0, len(validateErrs))
	for _, fe := range validateErrs {
		field := fieldPath(fe.Namespace())
		errs = append(errs, FieldError{
			Field:   field,
			Message: messageFor(field, fe),
		})
	}
	return Result{Errors: errs}
}

// ValidateRequest validates req and returns an ErrValidation error carrying
// every violation in its reportable details under "errors"
func ValidateRequest(req interface{}) error {
	result := Validate(req)
	if result.Valid {
		return nil
	}
	return NewValidationError(result.Errors...)
}

// NewValidationError builds the error returned for failed validation. The
// first message becomes the display hint.
func NewValidationError(errs ...FieldError) error {
	hint := "Request validation failed"
	if len(errs) > 0 {
		hint = errs[0].Message
	}
	return ierr.NewErrorf("validation failed with %d error(s)", len(errs)).
		WithHint(hint).
		WithReportableDetails(map[string]any{"errors": errs}).
		Mark(ierr.ErrValidation)
}

// fieldPath drops the root struct name from a namespace
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		namespace = namespace[i+1:]
	}
	return namespace
}

func messageFor(field string, fe validator.FieldError) string {
	key := indexPattern.ReplaceAllString(field, "") + "." + fe.Tag()
	if msg, ok := messages[key]; ok {
		return msg
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", fe.Field())
	case "email":
		return "A valid email address is required."
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long.", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must not exceed %s characters.", fe.Field(), fe.Param())
	case "gt", "decimalgt":
		return fmt.Sprintf("%s must be greater than %s.", fe.Field(), fe.Param())
	case "decimallte":
		return fmt.Sprintf("%s must not exceed %s.", fe.Field(), fe.Param())
	case "decimalscale":
		return fmt.Sprintf("%s must have at most %s decimal places.", fe.Field(), fe.Param())
	case "gtefield":
		return fmt.Sprintf("%s must not be before %s.", fe.Field(), fe.Param())
	case "notfuture":
		return fmt.Sprintf("%s cannot be in the future.", fe.Field())
	case "eqfield":
		return fmt.Sprintf("%s must match %s.", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s is invalid.", fe.Field())
}
