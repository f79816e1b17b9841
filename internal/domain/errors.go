package domain

import "errors"

// Error kinds for the execution and recommendation engines. Callers branch on
// kind with errors.Is; wrapping sites use fmt.Errorf("%w: ...") so the kind
// survives propagation unchanged.
var (
	// ErrValidation covers null/missing order, trade or client identifier arguments
	ErrValidation = errors.New("validation failed")

	// ErrInvalidDirection is returned for an order direction outside {B, S}
	ErrInvalidDirection = errors.New("order direction is invalid")

	// ErrUnknownInstrument is returned for a buy order whose instrument is absent from the catalog
	ErrUnknownInstrument = errors.New("instrument is not present in the platform")

	// ErrInstrumentNotHeld is returned for a sell order whose instrument is absent from holdings
	ErrInstrumentNotHeld = errors.New("instrument not part of holdings")

	// ErrInsufficientFunds is returned when a buy cash value exceeds the available balance
	ErrInsufficientFunds = errors.New("insufficient balance to buy the instrument")

	// ErrInsufficientHoldings is returned when a sell quantity exceeds the held quantity
	ErrInsufficientHoldings = errors.New("insufficient quantity in holdings to sell the instrument")

	// ErrAdvisorNotAccepted is returned when recommendations are requested without opt-in
	ErrAdvisorNotAccepted = errors.New("cannot recommend without accepting the robo advisor")

	// ErrUpstreamUnavailable is returned when the trade-creation/live-price service fails
	ErrUpstreamUnavailable = errors.New("upstream pricing service unavailable")

	// ErrPersistence is returned when the trade persistence gateway fails
	ErrPersistence = errors.New("trade persistence failed")
)
