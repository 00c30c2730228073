package core

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/JonMunkholm/anonhelper/internal/catalog"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    string
		wantMessage string
	}{
		{
			name:        "nil error returns empty",
			err:         nil,
			wantCode:    "",
			wantMessage: "",
		},
		{
			name:        "file too large sentinel",
			err:         fmt.Errorf("read upload: %w", ErrFileTooLarge),
			wantCode:    "FILE001",
			wantMessage: "File exceeds the maximum upload size",
		},
		{
			name:        "http body limit",
			err:         errors.New("http: request body too large"),
			wantCode:    "FILE001",
			wantMessage: "File exceeds the maximum upload size",
		},
		{
			name:        "invalid csv",
			err:         errors.New("invalid csv: record on line 3: wrong number of fields"),
			wantCode:    "FILE002",
			wantMessage: "The file could not be read",
		},
		{
			name:        "invalid workbook",
			err:         errors.New("invalid workbook: zip: not a valid zip file"),
			wantCode:    "FILE002",
			wantMessage: "The file could not be read",
		},
		{
			name:        "unsupported format",
			err:         fmt.Errorf("%w: %q", ErrUnsupportedFormat, ".pdf"),
			wantCode:    "FILE003",
			wantMessage: "This file type is not supported",
		},
		{
			name:        "no file",
			err:         ErrNoFile,
			wantCode:    "FILE004",
			wantMessage: "No file was selected",
		},
		{
			name:        "empty file",
			err:         ErrEmptyFile,
			wantCode:    "FILE005",
			wantMessage: "The uploaded file is empty",
		},
		{
			name:        "limiter busy",
			err:         ErrTooManyRuns,
			wantCode:    "RUN001",
			wantMessage: "Too many files are being classified right now",
		},
		{
			name:        "cancelled",
			err:         fmt.Errorf("acquire: %w", context.Canceled),
			wantCode:    "RUN002",
			wantMessage: "Request was cancelled",
		},
		{
			name:        "deadline",
			err:         context.DeadlineExceeded,
			wantCode:    "RUN003",
			wantMessage: "Request timed out",
		},
		{
			name:        "catalog error",
			err:         &catalog.ConfigurationError{Field: "system_id", Err: errors.New("bad")},
			wantCode:    "CFG001",
			wantMessage: "The pattern catalog is invalid",
		},
		{
			name:        "rate limit",
			err:         errors.New("Rate Limit exceeded for client"),
			wantCode:    "RATE001",
			wantMessage: "Too many requests",
		},
		{
			name:        "unknown error",
			err:         errors.New("something strange happened"),
			wantCode:    "ERR000",
			wantMessage: "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() Code = %q, want %q", got.Code, tt.wantCode)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("MapError() Message = %q, want %q", got.Message, tt.wantMessage)
			}
		})
	}
}

func TestMapError_UserErrorPassesThrough(t *testing.T) {
	custom := UserMessage{Message: "custom", Action: "do this", Code: "X001"}
	err := fmt.Errorf("wrapped: %w", &UserError{Technical: errors.New("x"), User: custom})

	if got := MapError(err); got != custom {
		t.Errorf("MapError() = %+v, want %+v", got, custom)
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{ErrNoFile, true},
		{errors.New("boom"), false},
	}
	for _, tt := range tests {
		if got := IsUserFacing(tt.err); got != tt.want {
			t.Errorf("IsUserFacing(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestNewUserError(t *testing.T) {
	if NewUserError(nil) != nil {
		t.Error("NewUserError(nil) should be nil")
	}

	ue := NewUserError(ErrTooManyRuns)
	if ue.User.Code != "RUN001" {
		t.Errorf("Code = %q, want RUN001", ue.User.Code)
	}
	if !errors.Is(ue, ErrTooManyRuns) {
		t.Error("UserError should unwrap to the technical error")
	}
	if ue.Error() != ue.User.Message {
		t.Errorf("Error() = %q, want user message", ue.Error())
	}

	custom := &UserError{Technical: errors.New("x"), User: UserMessage{Code: "X001"}}
	if got := NewUserError(fmt.Errorf("wrapped: %w", custom)); got != custom {
		t.Errorf("NewUserError() = %+v, want the wrapped UserError", got)
	}
}
