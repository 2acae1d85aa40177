package api

import (
	"net/http"

	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// ErrorBody is the JSON body of every failed request
type ErrorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// statusFor maps a rejection kind to its HTTP status. Errors without a kind are
// infrastructure failures.
func statusFor(err error) int {
	switch shared.KindOf(err) {
	case shared.KindAuthorization:
		return http.StatusForbidden
	case shared.KindNotFound:
		return http.StatusNotFound
	case shared.KindInvalidArgument, shared.KindBounds:
		return http.StatusBadRequest
	case shared.KindStateConflict, shared.KindDependency, shared.KindLifecycle:
		return http.StatusConflict
	case shared.KindInsufficient:
		return http.StatusPaymentRequired
	}
	return http.StatusInternalServerError
}

// kindForStatus recovers the rejection kind a client reports for a status without a kind
func kindForStatus(status int) shared.ErrorKind {
	switch status {
	case http.StatusForbidden:
		return shared.KindAuthorization
	case http.StatusNotFound:
		return shared.KindNotFound
	case http.StatusBadRequest:
		return shared.KindInvalidArgument
	case http.StatusConflict:
		return shared.KindStateConflict
	case http.StatusPaymentRequired:
		return shared.KindInsufficient
	}
	return ""
}

func kindOf(err error) string {
	return string(shared.KindOf(err))
}

func invalid(field, message string) error {
	return shared.NewValidationError(field, message)
}

func notFound(message string) error {
	return shared.NewDomainError(shared.KindNotFound, message)
}
