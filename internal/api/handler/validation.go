package handler

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	// Report validation errors under the json field names, not the Go ones.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// bindJSON binds the request body into req. On failure it returns a
// per-field error map suitable for a 400 response.
func bindJSON(c *gin.Context, req any) (map[string][]string, bool) {
	if err := c.ShouldBindJSON(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fieldErrs := make(map[string][]string, len(verrs))
			for _, fe := range verrs {
				fieldErrs[fe.Field()] = append(fieldErrs[fe.Field()], validationMessage(fe))
			}
			return fieldErrs, false
		}
		return map[string][]string{"non_field_errors": {"invalid request body"}}, false
	}
	return nil, true
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "enter a valid email address"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return "invalid value"
	}
}
