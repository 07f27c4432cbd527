package gatewayserver

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	gwapp "github.com/skystore/storefront/internal/domains/gateway/application"
	gwports "github.com/skystore/storefront/internal/domains/gateway/ports"
	sharederrors "github.com/skystore/storefront/internal/shared/errors"
)

// newResponder builds the gateway error chain. Backend not-found messages
// travel into the problem detail exactly as the backend worded them.
func newResponder() *sharederrors.ChainedResponder {
	return sharederrors.NewChainedResponder("",
		func(err error) (sharederrors.ProblemDetail, bool) {
			var notFound *gwports.NotFoundError
			if errors.As(err, &notFound) {
				return sharederrors.ErrNotFound.WithDetail(notFound.Message), true
			}
			return sharederrors.ProblemDetail{}, false
		},
		func(err error) (sharederrors.ProblemDetail, bool) {
			if errors.Is(err, gwapp.ErrUnknownProduct) || errors.Is(err, gwapp.ErrProductReferenced) {
				return sharederrors.ErrReferential.WithDetail(err.Error()), true
			}
			return sharederrors.ProblemDetail{}, false
		},
		func(err error) (sharederrors.ProblemDetail, bool) {
			if errors.Is(err, gwapp.ErrInvalidInput) {
				return sharederrors.ErrBadRequest.WithDetail(err.Error()), true
			}
			return sharederrors.ProblemDetail{}, false
		},
		func(err error) (sharederrors.ProblemDetail, bool) {
			if errors.Is(err, gwports.ErrIdempotencyConflict) {
				return sharederrors.ErrConflict.WithDetail(err.Error()), true
			}
			return sharederrors.ProblemDetail{}, false
		},
		func(err error) (sharederrors.ProblemDetail, bool) {
			if errors.Is(err, gwports.ErrBackendUnavailable) {
				return sharederrors.ErrUnavailable.WithDetail(err.Error()), true
			}
			return sharederrors.ProblemDetail{}, false
		},
		func(err error) (sharederrors.ProblemDetail, bool) {
			if errors.Is(err, gwapp.ErrProductDataMissing) {
				return sharederrors.ErrInternal.WithDetail(err.Error()), true
			}
			return sharederrors.ProblemDetail{}, false
		},
	)
}

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
