package types

// RequestIDHeader carries the request id on every response, errors included.
const RequestIDHeader = "X-Request-Id"

// SuccessEnvelope wraps every successful JSON body as {"data": ...}.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the public error shape. RequestID echoes the response header so
// a client report can be matched with the server logs.
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// NewErrorEnvelope builds the error body for code and message.
func NewErrorEnvelope(code, message, requestID string) ErrorEnvelope {
	return ErrorEnvelope{Error: APIError{Code: code, Message: message, RequestID: requestID}}
}
