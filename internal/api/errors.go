package api

import "fmt"

// statusMessages maps response status codes to the human-readable
// message shown when the server does not supply one of its own.
var statusMessages = map[int]string{
	400: "Invalid request. Please try again.",
	401: "Please log in to continue.",
	403: "Access denied.",
	404: "The content does not exist.",
	408: "Request took too long. Try again.",
	422: "Invalid input. Please try again.",
	500: "Oops! Something went wrong. Try later.",
	502: "Connection issue. Try later.",
	503: "Service is down. Try later.",
	504: "Server took too long. Try again.",
}

// CommonErrorMessage is the generic fallback when neither the server nor
// the status table offers anything better.
const CommonErrorMessage = "Oops! Something went wrong. Try later."

// Error is the normalized form of every server-rejected request. It is
// only produced when a response was actually received; transport
// failures and cancellations propagate unmodified.
type Error struct {
	// StatusCode is the HTTP status of the rejected response.
	StatusCode int
	// Message is the resolved human-readable message: the server's own
	// message field, else the status table entry, else the common fallback.
	Message string
	// Body is the raw response body, kept for callers needing the
	// original error payload.
	Body []byte
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.StatusCode)
}

// DisplayMessage returns the user-facing message for this error.
func (e *Error) DisplayMessage() string {
	return e.Message
}

// messageFor resolves the display message for a rejected response.
// Priority: server-supplied message, static status table, generic
// fallback.
func messageFor(status int, serverMessage string) string {
	if serverMessage != "" {
		return serverMessage
	}
	if msg, ok := statusMessages[status]; ok {
		return msg
	}
	return CommonErrorMessage
}
