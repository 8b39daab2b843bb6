package services

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Error taxonomy shared by all services. Handlers translate these into HTTP
// status codes and the response envelope.
var (
	ErrNotFound               = errors.New("resource not found")
	ErrNotOwner               = errors.New("not authorized to access this resource")
	ErrDuplicateActiveBooking = errors.New("you already have an active booking")
	ErrEmailTaken             = errors.New("an account with this email already exists")
	ErrInvalidCredentials     = errors.New("invalid credentials")
)

// ValidationError lists the fields that failed validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid value for field(s): " + strings.Join(e.Fields, ", ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report field names as they appear on the wire.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct runs validator tags over s and converts failures into a
// ValidationError carrying the offending field names.
func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field())
		}
		return &ValidationError{Fields: fields}
	}
	return err
}
