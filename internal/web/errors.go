package web

// errors.go turns handler errors into responses.
//
// The technical error is logged with the request ID; the client only sees
// the mapped core.UserMessage, as JSON for API callers and as an HTML page
// for browser form posts.

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/JonMunkholm/anonhelper/internal/catalog"
	"github.com/JonMunkholm/anonhelper/internal/core"
	"github.com/JonMunkholm/anonhelper/internal/logging"
)

// ErrorResponse is the JSON body for API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// respondError logs err and writes the user-facing message with a status
// derived from the error.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	ue := core.NewUserError(err)
	status := statusFor(err)
	userMsg := ue.User

	level := slog.LevelWarn
	if status >= http.StatusInternalServerError || !core.IsUserFacing(err) {
		level = slog.LevelError
	}
	requestLogger(r).Log(r.Context(), level, "request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", ue.Technical.Error(),
		"code", userMsg.Code,
	)

	if wantsJSON(r) {
		writeJSON(w, r, status, ErrorResponse{
			Error:   userMsg.Message,
			Message: userMsg.Message,
			Action:  userMsg.Action,
			Code:    userMsg.Code,
		})
		return
	}
	render(w, r, status, errorPage(userMsg))
}

// statusFor maps an error to an HTTP status code.
func statusFor(err error) int {
	var maxBytes *http.MaxBytesError
	var cfgErr *catalog.ConfigurationError
	var userErr *core.UserError

	switch {
	case errors.As(err, &userErr) && strings.HasPrefix(userErr.User.Code, "REQ"):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrFileTooLarge), errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, core.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, core.ErrNoFile), errors.Is(err, core.ErrEmptyFile):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, core.ErrTooManyRuns):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout
	case errors.As(err, &cfgErr):
		return http.StatusInternalServerError
	}

	if core.MapError(err).Code == "FILE002" {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// wantsJSON reports whether the client should get a JSON error body.
func wantsJSON(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func requestLogger(r *http.Request) *slog.Logger {
	return logging.FromContext(r.Context())
}
