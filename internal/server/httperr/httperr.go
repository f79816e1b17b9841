// Package httperr maps domain error kinds to HTTP status codes.
// The mapping is the only knowledge of HTTP the error taxonomy ever gets;
// detection sites log and classify, handlers just translate.
package httperr

import (
	"errors"
	"net/http"

	"github.com/marshals/brokerage/internal/domain"
	"github.com/marshals/brokerage/internal/modules/portfolio"
	"github.com/marshals/brokerage/internal/modules/preferences"
)

// Status returns the HTTP status code for a classified error
func Status(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidDirection):
		return http.StatusNotAcceptable
	case errors.Is(err, domain.ErrUnknownInstrument),
		errors.Is(err, domain.ErrInstrumentNotHeld),
		errors.Is(err, portfolio.ErrClientNotFound),
		errors.Is(err, preferences.ErrPreferencesNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrInsufficientHoldings),
		errors.Is(err, domain.ErrAdvisorNotAccepted):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Write sends the error message with its mapped status code
func Write(w http.ResponseWriter, err error) {
	status := Status(err)
	if status == http.StatusInternalServerError {
		// Internal details stay in the logs
		http.Error(w, "internal server error", status)
		return
	}
	http.Error(w, err.Error(), status)
}
