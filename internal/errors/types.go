package errors

// standardized error envelope returned by every handler
type ErrorResponse struct {
	Error   string `json:"error"`             // error code (e.g., "bad_request", "service_unavailable")
	Message string `json:"message"`           // user-friendly message
	Details string `json:"details,omitempty"` // optional details (sanitized in production)
}

type ErrorInfo struct {
	category  string
	sanitized string
}
