package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestWrapKeepsCauseText(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(CodeStoreOperationFailed, cause)

	if err.Error() != "connection refused" {
		t.Fatalf("Error() = %q, want cause text", err.Error())
	}
	if !stderrors.Is(err, cause) {
		t.Fatal("expected wrapped cause to match")
	}
}

func TestNewUsesMessage(t *testing.T) {
	err := New(CodeConfigurationMissing, "store env not configured")
	if err.Error() != "store env not configured" {
		t.Fatalf("Error() = %q", err.Error())
	}
}

func TestIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("submit: %w", New(CodeConfigurationMissing, "missing url"))

	if !stderrors.Is(err, &Error{Code: CodeConfigurationMissing}) {
		t.Fatal("expected code match through wrapping")
	}
	if stderrors.Is(err, &Error{Code: CodeStoreOperationFailed}) {
		t.Fatal("did not expect a match on a different code")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(stderrors.New("plain")); got != CodeUnknown {
		t.Fatalf("GetCode(plain) = %s, want %s", got, CodeUnknown)
	}
	wrapped := fmt.Errorf("outer: %w", Wrap(CodeInvalidPayload, stderrors.New("bad")))
	if got := GetCode(wrapped); got != CodeInvalidPayload {
		t.Fatalf("GetCode(wrapped) = %s, want %s", got, CodeInvalidPayload)
	}
	if !IsCode(wrapped, CodeInvalidPayload) {
		t.Fatal("expected IsCode to match")
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: http.StatusOK},
		{name: "plain", err: stderrors.New("boom"), want: http.StatusInternalServerError},
		{name: "config", err: New(CodeConfigurationMissing, "x"), want: http.StatusInternalServerError},
		{name: "store", err: Wrap(CodeStoreOperationFailed, stderrors.New("x")), want: http.StatusInternalServerError},
		{name: "payload", err: Wrap(CodeInvalidPayload, stderrors.New("x")), want: http.StatusUnprocessableEntity},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := HTTPStatus(tc.err); got != tc.want {
				t.Fatalf("HTTPStatus() = %d, want %d", got, tc.want)
			}
		})
	}
}
