package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ErrCodeConstruction, "label %q is not rectangular", "a")
	want := `CONSTRUCTION_ERROR: label "a" is not rectangular`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("boom")
	err := Wrap(ErrCodeInvalidFigure, cause, "decode %s", "fig.toml")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match cause via errors.Is")
	}
	if got := err.Error(); got != "INVALID_FIGURE: decode fig.toml: boom" {
		t.Errorf("Error() = %q", got)
	}
}

func TestIsMatchesCode(t *testing.T) {
	err := New(ErrCodeIndexOutOfRange, "index 5 out of range [0, 3)")

	if !Is(err, ErrCodeIndexOutOfRange) {
		t.Error("Is should match the error's own code")
	}
	if Is(err, ErrCodeConstruction) {
		t.Error("Is should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeIndexOutOfRange) {
		t.Error("Is should not match plain errors")
	}
}

func TestIsThroughWrapping(t *testing.T) {
	inner := New(ErrCodeDegenerateBounds, "right <= left")
	outer := fmt.Errorf("placing inset: %w", inner)

	if !Is(outer, ErrCodeDegenerateBounds) {
		t.Error("Is should unwrap fmt.Errorf chains")
	}
	if got := GetCode(outer); got != ErrCodeDegenerateBounds {
		t.Errorf("GetCode = %q, want %q", got, ErrCodeDegenerateBounds)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidUnit, "unknown unit %q", "furlong")
	if got, want := UserMessage(err), `unknown unit "furlong"`; got != want {
		t.Errorf("UserMessage = %q, want %q", got, want)
	}

	plain := stderrors.New("plain error")
	if got := UserMessage(plain); got != "plain error" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeConstruction,
		ErrCodeIndexOutOfRange,
		ErrCodeDegenerateBounds,
		ErrCodeInvalidInput,
		ErrCodeInvalidFormat,
		ErrCodeInvalidUnit,
		ErrCodeInvalidTag,
		ErrCodeInvalidFigure,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
