package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	appErrors "github.com/stackboard/stackboard/pkg/errors"
	"github.com/stackboard/stackboard/pkg/response"
	appValidator "github.com/stackboard/stackboard/pkg/validator"
)

// bindAndValidate decodes the JSON body into dest and applies the struct's
// validation rules. On failure it writes the 400 itself and returns false.
func bindAndValidate[T any](c *gin.Context, dest *T) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		response.Error(c, appErrors.NewBadRequest("invalid JSON payload"))
		return false
	}

	if err := appValidator.ValidateStruct(dest); err != nil {
		response.Error(c, appErrors.NewBadRequest(describeValidationError(err)))
		return false
	}

	return true
}

var validationMessages = map[string]string{
	"required": "%s is required",
	"email":    "%s must be a valid email address",
	"min":      "%s must be at least %v characters",
	"max":      "%s must be at most %v characters",
	"uuid4":    "%s must be a valid UUID",
	"oneof":    "%s must be one of: %v",
}

func describeValidationError(err error) string {
	var failures appValidator.ValidationErrors
	if !errors.As(err, &failures) || len(failures) == 0 {
		return "invalid request payload"
	}

	messages := make([]string, 0, len(failures))
	for _, failure := range failures {
		field := humanizeField(failure.Field)

		if format, ok := validationMessages[failure.Tag]; ok {
			if strings.Count(format, "%") > 1 {
				messages = append(messages, fmt.Sprintf(format, field, failure.Param))
			} else {
				messages = append(messages, fmt.Sprintf(format, field))
			}
			continue
		}

		msg := fmt.Sprintf("%s failed validation: %s", field, failure.Tag)
		if failure.Param != "" {
			msg += "=" + failure.Param
		}
		messages = append(messages, msg)
	}
	return strings.Join(messages, "; ")
}

func humanizeField(name string) string {
	if name == "" {
		return "field"
	}
	return strings.ToLower(strings.ReplaceAll(name, "_", " "))
}
