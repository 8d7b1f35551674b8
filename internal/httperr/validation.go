package httperr

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterJSONFieldNames makes validation errors report json field names.
func RegisterJSONFieldNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
}

// FromBinding converts a gin binding failure into a VALIDATION_ERROR with per-field details.
func FromBinding(err error) error {
	var ves validator.ValidationErrors
	if errors.As(err, &ves) {
		details := make(map[string]string, len(ves))
		for _, fe := range ves {
			rule := fe.Tag()
			if fe.Param() != "" {
				rule += "=" + fe.Param()
			}
			details[fe.Field()] = rule
		}
		return Validation("invalid request", details)
	}
	return Validation("malformed request body", nil)
}
