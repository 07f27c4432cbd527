package ordersserver

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	sharederrors "github.com/skystore/storefront/internal/shared/errors"
)

// respondBindingError distinguishes malformed JSON from field-level validation failures.
func respondBindingError(c *gin.Context, err error) {
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) {
		fields := make(map[string]string, len(fieldErrors))
		for _, fieldError := range fieldErrors {
			fields[strings.ToLower(fieldError.Field())] = fieldError.Tag()
		}
		sharederrors.Respond(c, sharederrors.NewValidationProblem(fields))
		return
	}
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		sharederrors.Respond(c, sharederrors.ErrBadRequest.WithDetail("request body is not valid JSON"))
		return
	}
	sharederrors.Respond(c, sharederrors.ErrBadRequest.WithDetail(err.Error()))
}
