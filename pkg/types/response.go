// Package types defines the JSON envelopes every storefront endpoint writes:
// success payloads under "data", failures under "error". Handlers never
// write ad-hoc shapes; the envelope is the whole wire contract.
package types

// SuccessEnvelope wraps any successful response body.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the public face of a failure: a stable machine-readable code,
// a customer-safe message, and optional details when the error code allows
// exposing them (validation field maps, unknown-destination hints).
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps an APIError for the wire.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
