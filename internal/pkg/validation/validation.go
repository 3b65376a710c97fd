package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate is the shared validator instance
var Validate *validator.Validate

func init() {
	Validate = validator.New()

	// Report field names as they appear on the wire
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
}

// FailingFields validates s and returns the wire name of every failing field,
// in declaration order. An empty slice means s is valid.
func FailingFields(s interface{}) []string {
	err := Validate.Struct(s)
	if err == nil {
		return nil
	}

	var fields []string
	for _, fe := range err.(validator.ValidationErrors) {
		fields = append(fields, fe.Field())
	}
	return fields
}
