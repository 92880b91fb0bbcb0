package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidSizing, "width %d and scale %g are both non-positive", 0, -1.5)

	if err.Code != ErrCodeInvalidSizing {
		t.Errorf("Code = %s, want %s", err.Code, ErrCodeInvalidSizing)
	}
	if !strings.Contains(err.Error(), "INVALID_SIZING") {
		t.Errorf("Error() should contain code: %s", err.Error())
	}
	if !strings.Contains(err.Error(), "-1.5") {
		t.Errorf("Error() should contain formatted args: %s", err.Error())
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("unexpected element")
	err := Wrap(ErrCodeRenderFailure, cause, "rasterize svg")

	if err.Cause != cause {
		t.Error("Wrap should preserve cause")
	}
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the cause through Unwrap")
	}
	if !strings.Contains(err.Error(), "unexpected element") {
		t.Errorf("Error() should include cause: %s", err.Error())
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeEmptyInput, "svg source is empty")

	if !Is(err, ErrCodeEmptyInput) {
		t.Error("Is should match the error's code")
	}
	if Is(err, ErrCodeRenderFailure) {
		t.Error("Is should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeEmptyInput) {
		t.Error("Is should be false for non-structured errors")
	}
}

func TestIsWrappedChain(t *testing.T) {
	inner := New(ErrCodeInvalidColorFormat, "border color must be #RRGGBB")
	outer := fmt.Errorf("resolve request: %w", inner)

	if !Is(outer, ErrCodeInvalidColorFormat) {
		t.Error("Is should unwrap fmt.Errorf chains")
	}
	if GetCode(outer) != ErrCodeInvalidColorFormat {
		t.Errorf("GetCode = %s, want %s", GetCode(outer), ErrCodeInvalidColorFormat)
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeNotFound, "no such file")); got != ErrCodeNotFound {
		t.Errorf("GetCode = %s, want %s", got, ErrCodeNotFound)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode for plain error = %s, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidSizing, "either width or scale must be positive")
	if got := UserMessage(err); got != "either width or scale must be positive" {
		t.Errorf("UserMessage = %q", got)
	}

	plain := stderrors.New("plain failure")
	if got := UserMessage(plain); got != "plain failure" {
		t.Errorf("UserMessage for plain error = %q", got)
	}
}
