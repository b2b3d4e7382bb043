package extractors

import (
	"errors"
	"strings"
	"testing"

	"github.com/calypso-labs/contexta/internal/core/domain"
)

func TestRegistry_Supported(t *testing.T) {
	r := NewRegistry()

	for _, ext := range []string{".txt", ".docx", ".doc", ".csv", ".TXT"} {
		if !r.Supported(ext) {
			t.Errorf("expected %s to be supported", ext)
		}
	}
	for _, ext := range []string{".pdf", ".xlsx", ".xyz", ""} {
		if r.Supported(ext) {
			t.Errorf("expected %s to be unsupported", ext)
		}
	}
}

func TestRegistry_Extract(t *testing.T) {
	r := NewRegistry()

	t.Run("dispatches by extension", func(t *testing.T) {
		text, err := r.Extract([]byte("some plain content"), "notes.txt", ".txt")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if text != "some plain content" {
			t.Errorf("expected passthrough, got %q", text)
		}
	})

	t.Run("extension is case insensitive", func(t *testing.T) {
		if _, err := r.Extract([]byte("content"), "NOTES.TXT", ".TXT"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("recognised but unsupported format carries a hint", func(t *testing.T) {
		_, err := r.Extract([]byte("%PDF-1.4"), "doc.pdf", ".pdf")

		var ufe *domain.UnsupportedFormatError
		if !errors.As(err, &ufe) {
			t.Fatalf("expected UnsupportedFormatError, got %v", err)
		}
		if !errors.Is(err, domain.ErrUnsupportedFormat) {
			t.Error("expected error to unwrap to ErrUnsupportedFormat")
		}
		if !strings.Contains(ufe.Hint, ".txt or .docx") {
			t.Errorf("expected conversion hint, got %q", ufe.Hint)
		}
	})

	t.Run("spreadsheet hint suggests csv", func(t *testing.T) {
		_, err := r.Extract(nil, "sheet.xlsx", ".xlsx")

		var ufe *domain.UnsupportedFormatError
		if !errors.As(err, &ufe) {
			t.Fatalf("expected UnsupportedFormatError, got %v", err)
		}
		if !strings.Contains(ufe.Hint, ".csv") {
			t.Errorf("expected csv hint, got %q", ufe.Hint)
		}
	})

	t.Run("unknown extension gets generic hint", func(t *testing.T) {
		_, err := r.Extract(nil, "file.xyz", ".xyz")

		var ufe *domain.UnsupportedFormatError
		if !errors.As(err, &ufe) {
			t.Fatalf("expected UnsupportedFormatError, got %v", err)
		}
		if !strings.Contains(ufe.Hint, "supported format") {
			t.Errorf("expected generic hint, got %q", ufe.Hint)
		}
	})
}

func TestRegistry_Formats(t *testing.T) {
	r := NewRegistry()
	formats := r.Formats()

	if len(formats) != 10 {
		t.Fatalf("expected 10 recognised formats, got %d", len(formats))
	}

	// Supported extensions come first, each group alphabetical.
	seenUnsupported := false
	for _, f := range formats {
		if !f.Supported {
			seenUnsupported = true
			if f.Hint == "" {
				t.Errorf("unsupported format %s missing hint", f.Extension)
			}
		} else if seenUnsupported {
			t.Errorf("supported format %s listed after unsupported ones", f.Extension)
		}
	}

	if formats[0].Extension != ".csv" {
		t.Errorf("expected .csv first, got %s", formats[0].Extension)
	}
}
