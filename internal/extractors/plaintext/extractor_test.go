package plaintext

import "testing"

func TestExtractor_Extensions(t *testing.T) {
	e := New()
	exts := e.Extensions()
	if len(exts) != 1 || exts[0] != ".txt" {
		t.Errorf("expected [.txt], got %v", exts)
	}
}

func TestExtractor_Extract(t *testing.T) {
	e := New()

	t.Run("passes content through", func(t *testing.T) {
		text, err := e.Extract([]byte("hello world"), "a.txt")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if text != "hello world" {
			t.Errorf("expected unchanged content, got %q", text)
		}
	})

	t.Run("normalises windows line endings", func(t *testing.T) {
		text, err := e.Extract([]byte("line one\r\nline two\r\n"), "a.txt")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if text != "line one\nline two\n" {
			t.Errorf("expected normalised newlines, got %q", text)
		}
	})

	t.Run("empty file", func(t *testing.T) {
		text, err := e.Extract(nil, "a.txt")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if text != "" {
			t.Errorf("expected empty string, got %q", text)
		}
	})
}
