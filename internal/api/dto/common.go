package dto

// Envelope wraps every API response
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
	Error   *ErrorBody  `json:"error,omitempty"`
}

// ErrorBody describes a failed request. Details carry only caller-safe
// values such as per-field validation messages.
type ErrorBody struct {
	Message       string         `json:"message"`
	Code          string         `json:"code,omitempty"`
	Details       map[string]any `json:"details,omitempty"`
	CorrelationID string         `json:"correlationId,omitempty"`
}

// NewSuccessEnvelope wraps data in a successful envelope
func NewSuccessEnvelope(message string, data interface{}) Envelope {
	return Envelope{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// NewErrorEnvelope wraps a failure
func NewErrorEnvelope(message string, body ErrorBody) Envelope {
	if body.Message == "" {
		body.Message = message
	}
	return Envelope{
		Message: message,
		Error:   &body,
	}
}
