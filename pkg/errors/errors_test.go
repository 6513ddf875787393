package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "test message: %s", "value")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidInput)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_INPUT: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeRoutingInfeasible, cause, "edge north")

	if err.Code != ErrCodeRoutingInfeasible {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeRoutingInfeasible)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	// Test Unwrap
	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	// Test errors.Is with wrapped error
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeInvalidInput,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeRoutingInfeasible,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeRoutingInfeasible, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeRoutingInfeasible,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeUnknownPort, "test"),
			expected: ErrCodeUnknownPort,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidInput, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestTypedRoutingErrors(t *testing.T) {
	t.Run("no routable ports", func(t *testing.T) {
		err := fmt.Errorf("route: %w", &NoRoutablePortsError{Component: "mmi2x2"})
		if got := GetCode(err); got != ErrCodeNoRoutablePorts {
			t.Errorf("GetCode() = %v, want %v", got, ErrCodeNoRoutablePorts)
		}
		var np *NoRoutablePortsError
		if !errors.As(err, &np) || np.Component != "mmi2x2" {
			t.Errorf("errors.As() did not recover the component, got %+v", np)
		}
		if want := "no routable ports for mmi2x2"; np.Error() != want {
			t.Errorf("Error() = %q, want %q", np.Error(), want)
		}
	})

	t.Run("unknown port", func(t *testing.T) {
		err := &UnknownPortError{Component: "straight", Port: "o3"}
		if !Is(err, ErrCodeUnknownPort) {
			t.Error("Is(err, ErrCodeUnknownPort) = false, want true")
		}
		if Is(err, ErrCodeNoRoutablePorts) {
			t.Error("Is(err, ErrCodeNoRoutablePorts) = true, want false")
		}
		if want := `port "o3" not found on straight`; err.Error() != want {
			t.Errorf("Error() = %q, want %q", err.Error(), want)
		}
	})

	t.Run("coded wrapper wins", func(t *testing.T) {
		err := Wrap(ErrCodeRoutingInfeasible, &UnknownPortError{Port: "x"}, "edge south")
		if got := GetCode(err); got != ErrCodeRoutingInfeasible {
			t.Errorf("GetCode() = %v, want %v", got, ErrCodeRoutingInfeasible)
		}
	})
}
