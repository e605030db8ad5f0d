package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"game-store/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"
)

// ValidationProblem is the 400 body for requests that fail field validation.
// Errors maps a JSON field name to its messages.
type ValidationProblem struct {
	Type   string              `json:"type"`
	Title  string              `json:"title"`
	Status int                 `json:"status"`
	Errors map[string][]string `json:"errors"`
}

const validationTitle = "One or more validation errors occurred."

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// Decimals and dates are validated through their string forms.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(models.Date); ok {
			return d.String()
		}
		return nil
	}, models.Date{})

	must(v.RegisterValidation("notblank", validators.NotBlank))
	must(v.RegisterValidation("price", func(fl validator.FieldLevel) bool {
		price, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return false
		}
		return price.GreaterThanOrEqual(models.MinPrice) && price.LessThanOrEqual(models.MaxPrice)
	}))
	must(v.RegisterValidation("cents", func(fl validator.FieldLevel) bool {
		price, err := decimal.NewFromString(fl.Field().String())
		return err == nil && models.HasPriceScale(price)
	}))

	return v
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// validateRequest returns nil when req is valid, or the field errors otherwise.
func validateRequest(req any) map[string][]string {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return map[string][]string{"": {err.Error()}}
	}

	problems := make(map[string][]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems[fe.Field()] = append(problems[fe.Field()], fieldMessage(fe))
	}
	return problems
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("The %s field is required.", fe.Field())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("The field %s must be a string with a maximum length of %s.", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("The field %s must be at most %s.", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("The field %s must be at least %s.", fe.Field(), fe.Param())
	case "price":
		return fmt.Sprintf("The field %s must be between %s and %s.", fe.Field(), models.MinPrice, models.MaxPrice)
	case "cents":
		return fmt.Sprintf("The field %s must have at most %d decimal places.", fe.Field(), models.PriceDecimals)
	default:
		return fmt.Sprintf("The field %s is invalid.", fe.Field())
	}
}

func writeValidationProblem(w http.ResponseWriter, problems map[string][]string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(ValidationProblem{
		Type:   "https://tools.ietf.org/html/rfc9110#section-15.5.1",
		Title:  validationTitle,
		Status: http.StatusBadRequest,
		Errors: problems,
	})
}
