package polymarket

import "errors"

// Error taxonomy for the mandatory path. Handlers map these to HTTP
// statuses with errors.Is; everything else is an upstream failure.
var (
	// ErrInvalidURL means the input URL does not contain an event slug.
	ErrInvalidURL = errors.New("invalid polymarket url")

	// ErrMarketNotFound means the provider returned no market for the slug.
	ErrMarketNotFound = errors.New("market not found")

	// ErrInvalidMarketData means the provider payload is missing required
	// fields or cannot be normalized.
	ErrInvalidMarketData = errors.New("invalid market data")

	// ErrMultipleOutcomes means the event groups more than one sub-market,
	// which the analysis pipeline does not support.
	ErrMultipleOutcomes = errors.New("markets with multiple outcomes are not supported")

	// ErrUpstream wraps network errors and provider 5xx responses.
	ErrUpstream = errors.New("polymarket upstream error")
)
