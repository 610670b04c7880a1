package errors

import (
	"fmt"
	"testing"
)

func TestExitError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ExitError
		want string
	}{
		{"wrapped", NewExitError(ErrNotFound, ExitUser), "not found"},
		{"nil error", NewExitError(nil, ExitSystem), "exit code 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorWrappingChain(t *testing.T) {
	wrapped := Wrap(ErrIndexOutOfRange, "selecting configuration 7")
	exitErr := NewUserError(fmt.Errorf("select: %w", wrapped), "Run: ccprops list")

	if !Is(exitErr, ErrIndexOutOfRange) {
		t.Error("Is() should find ErrIndexOutOfRange through the chain")
	}

	var target *ExitError
	if !As(exitErr, &target) {
		t.Fatal("As() should find ExitError")
	}
	if target.Code != ExitUser {
		t.Errorf("Code = %d, want %d", target.Code, ExitUser)
	}
	if target.Suggestion != "Run: ccprops list" {
		t.Errorf("Suggestion = %q", target.Suggestion)
	}

	want := "select: selecting configuration 7: configuration index out of range"
	if got := exitErr.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestNewConstructors(t *testing.T) {
	base := New("boom")

	if e := NewSystemError(base, "check permissions"); e.Code != ExitSystem || e.Err != base {
		t.Errorf("NewSystemError = %+v", e)
	}
	if e := NewConfigError(base); e.Code != ExitUser || e.Suggestion != "Run: ccprops validate" {
		t.Errorf("NewConfigError = %+v", e)
	}
}
