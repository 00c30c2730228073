package core

// error_messages.go maps technical errors to user-facing messages with codes
// that can be quoted to support.
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large: upload exceeds the configured size limit
//	FILE002 - Invalid file: the file could not be parsed as CSV or workbook
//	FILE003 - Unsupported format: extension is not csv, tsv, txt or xlsx
//	FILE004 - No file: the form had no file field
//	FILE005 - Empty file: the file has no header row
//
// # Run Errors (RUN001-RUN099)
//
//	RUN001 - System busy: every run slot stayed occupied
//	RUN002 - Request cancelled: the client went away
//	RUN003 - Request timeout: the run did not finish in time
//
// # Configuration Errors (CFG001-CFG099)
//
//	CFG001 - Invalid catalog: a catalog pattern or label is invalid
//
// # Rate Limiting (RATE001-RATE099)
//
//	RATE001 - Rate limited: too many requests from one client
//
// # Default Error (ERR000)
//
//	ERR000 - Unknown error: nothing above matched
//
// Sentinel errors are matched with errors.Is first. Otherwise patterns are
// matched case-insensitively with strings.Contains and the first match wins.

import (
	"context"
	"errors"
	"strings"

	"github.com/JonMunkholm/anonhelper/internal/catalog"
)

// ErrNoFile is returned when an upload request carries no file.
var ErrNoFile = errors.New("no file provided")

// ErrRateLimited is returned when a client exceeds its request budget.
var ErrRateLimited = errors.New("rate limit exceeded")

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened
	Action  string // What to do about it
	Code    string // Support reference
}

var (
	msgFileTooLarge = UserMessage{
		Message: "File exceeds the maximum upload size",
		Action:  "Remove unneeded rows or columns and upload again",
		Code:    "FILE001",
	}
	msgInvalidFile = UserMessage{
		Message: "The file could not be read",
		Action:  "Save the file as CSV (UTF-8) or Excel workbook (.xlsx) and try again",
		Code:    "FILE002",
	}
	msgUnsupported = UserMessage{
		Message: "This file type is not supported",
		Action:  "Upload a .csv, .tsv, .txt or .xlsx file",
		Code:    "FILE003",
	}
	msgNoFile = UserMessage{
		Message: "No file was selected",
		Action:  "Please choose a file to classify",
		Code:    "FILE004",
	}
	msgEmptyFile = UserMessage{
		Message: "The uploaded file is empty",
		Action:  "Upload a file with a header row",
		Code:    "FILE005",
	}
	msgBusy = UserMessage{
		Message: "Too many files are being classified right now",
		Action:  "Please wait a moment and try again",
		Code:    "RUN001",
	}
	msgCancelled = UserMessage{
		Message: "Request was cancelled",
		Action:  "Please try again",
		Code:    "RUN002",
	}
	msgTimeout = UserMessage{
		Message: "Request timed out",
		Action:  "Try a smaller file or try again later",
		Code:    "RUN003",
	}
	msgCatalog = UserMessage{
		Message: "The pattern catalog is invalid",
		Action:  "Fix the catalog file reported in the server log and restart",
		Code:    "CFG001",
	}
	msgRateLimited = UserMessage{
		Message: "Too many requests",
		Action:  "Please wait a moment before trying again",
		Code:    "RATE001",
	}
	defaultMessage = UserMessage{
		Message: "An unexpected error occurred",
		Action:  "Please try again or contact support",
		Code:    "ERR000",
	}
)

// sentinelMessages is checked in order with errors.Is.
var sentinelMessages = []struct {
	err error
	msg UserMessage
}{
	{ErrFileTooLarge, msgFileTooLarge},
	{ErrUnsupportedFormat, msgUnsupported},
	{ErrNoFile, msgNoFile},
	{ErrEmptyFile, msgEmptyFile},
	{ErrTooManyRuns, msgBusy},
	{ErrRateLimited, msgRateLimited},
	{context.Canceled, msgCancelled},
	{context.DeadlineExceeded, msgTimeout},
}

// errorPatterns maps message fragments (case-insensitive) to user messages.
var errorPatterns = []struct {
	pattern string
	msg     UserMessage
}{
	{"request body too large", msgFileTooLarge},
	{"file too large", msgFileTooLarge},
	{"invalid csv", msgInvalidFile},
	{"invalid workbook", msgInvalidFile},
	{"read sheet", msgInvalidFile},
	{"unsupported file format", msgUnsupported},
	{"no file provided", msgNoFile},
	{"no such file", msgNoFile},
	{"empty file", msgEmptyFile},
	{"too many classification runs", msgBusy},
	{"context canceled", msgCancelled},
	{"context deadline exceeded", msgTimeout},
	{"timeout", msgTimeout},
	{"rate limit", msgRateLimited},
}

// MapError converts a technical error into a user-friendly message.
// Returns an empty UserMessage for nil.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var ue *UserError
	if errors.As(err, &ue) {
		return ue.User
	}

	var cfgErr *catalog.ConfigurationError
	if errors.As(err, &cfgErr) {
		return msgCatalog
	}

	for _, s := range sentinelMessages {
		if errors.Is(err, s.err) {
			return s.msg
		}
	}

	text := strings.ToLower(err.Error())
	for _, p := range errorPatterns {
		if strings.Contains(text, p.pattern) {
			return p.msg
		}
	}

	return defaultMessage
}

// IsUserFacing reports whether err maps to a specific message rather than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error with its user-facing message.
type UserError struct {
	Technical error
	User      UserMessage
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err to a UserError. An err that already carries a
// UserError is returned as that UserError. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	var ue *UserError
	if errors.As(err, &ue) {
		return ue
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
