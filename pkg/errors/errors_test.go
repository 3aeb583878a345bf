package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(CodeValidation, "validation failed", http.StatusUnprocessableEntity)

	if err.Code != CodeValidation {
		t.Errorf("expected code %s, got %s", CodeValidation, err.Code)
	}
	if err.Message != "validation failed" {
		t.Errorf("expected message 'validation failed', got %s", err.Message)
	}
	if err.HTTPStatus != http.StatusUnprocessableEntity {
		t.Errorf("expected status %d, got %d", http.StatusUnprocessableEntity, err.HTTPStatus)
	}
}

func TestWrap(t *testing.T) {
	originalErr := errors.New("connection refused")
	wrapped := Wrap(originalErr, CodeUpstream, "fleet request failed", http.StatusBadGateway)

	if wrapped.Err != originalErr {
		t.Errorf("expected wrapped error to contain original error")
	}
	if !errors.Is(wrapped, originalErr) {
		t.Errorf("expected errors.Is to find the original error")
	}
	if wrapped.Code != CodeUpstream {
		t.Errorf("expected code %s, got %s", CodeUpstream, wrapped.Code)
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name: "without underlying error",
			appErr: &AppError{
				Code:    CodeNotFound,
				Message: "session not found",
			},
			expected: "NOT_FOUND: session not found",
		},
		{
			name: "with underlying error",
			appErr: &AppError{
				Code:    CodeUpstream,
				Message: "contacts request failed",
				Err:     errors.New("dial tcp: connection refused"),
			},
			expected: "UPSTREAM_ERROR: contacts request failed (caused by: dial tcp: connection refused)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.appErr.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAsAppError(t *testing.T) {
	appErr := InvalidInput("page out of range")
	if got := AsAppError(appErr); got != appErr {
		t.Errorf("expected AsAppError to return the same AppError")
	}

	plain := errors.New("boom")
	converted := AsAppError(plain)
	if converted.Code != CodeInternal {
		t.Errorf("expected plain errors to convert to %s, got %s", CodeInternal, converted.Code)
	}
	if !errors.Is(converted, plain) {
		t.Errorf("expected converted error to wrap the original")
	}
}

func TestNotFoundWithID(t *testing.T) {
	err := NotFoundWithID("Session", "abc-123")
	if err.HTTPStatus != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, err.HTTPStatus)
	}
	if err.Details["id"] != "abc-123" {
		t.Errorf("expected id detail to be preserved, got %v", err.Details["id"])
	}
}
