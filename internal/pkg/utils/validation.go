package utils

import (
	"clinic-service/internal/pkg/constvars"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(jsonTagName)
	validate.RegisterValidation("gender", validateGender)
	validate.RegisterValidation("appointment_state", validateAppointmentState)
	validate.RegisterValidation("date_only", validateDateOnly)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// jsonTagName makes validation errors report the wire name of a field.
func jsonTagName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return field.Name
	}
	return name
}

func validateGender(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "M" || value == "F"
}

func validateAppointmentState(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case constvars.AppointmentStatusPending, constvars.AppointmentStatusConfirmed, constvars.AppointmentStatusCancelled:
		return true
	}
	return false
}

func validateDateOnly(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01-02", fl.Field().String())
	return err == nil
}
