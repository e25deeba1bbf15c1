package types

// SuccessEnvelope wraps every successful JSON payload the API returns.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the public error body. Details is populated only for
// codes whose metadata allows exposing them.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
