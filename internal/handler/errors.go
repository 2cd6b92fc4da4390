package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/msomdec/careerforge/internal/domain"
	"github.com/msomdec/careerforge/internal/github"
)

const unexpectedErrorMessage = "An unexpected error occurred. Please try again."

// statusFor maps a service error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrProfileNotFound), errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateEmail), errors.Is(err, domain.ErrNegotiationOver):
		return http.StatusConflict
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrUpstreamModel), errors.Is(err, domain.ErrParse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// messageFor returns the single user-facing message for err. upstream is the
// feature's message for model failures.
func messageFor(err error, upstream string) string {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return "Unauthorized"
	case errors.Is(err, domain.ErrInvalidInput):
		return inputProblem(err)
	case errors.Is(err, domain.ErrProfileNotFound):
		return "GitHub user not found."
	case errors.Is(err, domain.ErrNotFound):
		return "Not found."
	case errors.Is(err, domain.ErrDuplicateEmail):
		return "An account with that email already exists."
	case errors.Is(err, domain.ErrNegotiationOver):
		return "This negotiation is over. Reset to play again."
	case errors.Is(err, domain.ErrRateLimited):
		return "Too many requests. Please wait a moment and try again."
	case errors.Is(err, domain.ErrUpstreamModel), errors.Is(err, domain.ErrParse):
		if upstream != "" {
			return upstream
		}
	}
	return unexpectedErrorMessage
}

// logFailure records err once; server-side failures at error level.
func logFailure(op string, err error, status int) {
	if status >= http.StatusInternalServerError {
		slog.Error(op, "error", err)
		return
	}
	slog.Warn(op, "error", err, "status", status)
}

// writeServiceError logs err and sends it as a JSON error response.
func writeServiceError(w http.ResponseWriter, op string, err error, upstream string) {
	status := statusFor(err)
	logFailure(op, err, status)
	setRetryAfter(w, err)
	writeError(w, status, messageFor(err, upstream))
}

// setRetryAfter forwards an upstream Retry-After wait, rounded up to whole seconds.
func setRetryAfter(w http.ResponseWriter, err error) {
	var httpErr *github.HTTPError
	if !errors.As(err, &httpErr) || httpErr.RetryAfter <= 0 || w.Header().Get("Retry-After") != "" {
		return
	}
	seconds := int((httpErr.RetryAfter + time.Second - 1) / time.Second)
	w.Header().Set("Retry-After", strconv.Itoa(seconds))
}

// inputProblem strips the sentinel text from a validation error, leaving
// the detail written for the user.
func inputProblem(err error) string {
	msg := err.Error()
	prefix := domain.ErrInvalidInput.Error() + ": "
	if i := strings.Index(msg, prefix); i >= 0 {
		msg = msg[i+len(prefix):]
	}
	if msg == "" || msg == domain.ErrInvalidInput.Error() {
		return "Please check your input and try again."
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}
