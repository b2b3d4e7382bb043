package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestUnsupportedFormatError(t *testing.T) {
	t.Run("unwraps to sentinel", func(t *testing.T) {
		err := &UnsupportedFormatError{Extension: ".pdf", Hint: "convert to .txt"}
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Error("expected errors.Is to match ErrUnsupportedFormat")
		}
	})

	t.Run("message includes hint", func(t *testing.T) {
		err := &UnsupportedFormatError{Extension: ".pdf", Hint: "convert to .txt"}
		if !strings.Contains(err.Error(), ".pdf") || !strings.Contains(err.Error(), "convert to .txt") {
			t.Errorf("unexpected message: %s", err.Error())
		}
	})

	t.Run("message without hint", func(t *testing.T) {
		err := &UnsupportedFormatError{Extension: ".xyz"}
		if !strings.Contains(err.Error(), ".xyz") {
			t.Errorf("unexpected message: %s", err.Error())
		}
	})
}
