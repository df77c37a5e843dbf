package common

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Code    string            `json:"code,omitempty"`
	Message string            `json:"message,omitempty"`
	Info    string            `json:"info,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// MessageResponse represents a bare confirmation response
type MessageResponse struct {
	Message string `json:"message"`
}
