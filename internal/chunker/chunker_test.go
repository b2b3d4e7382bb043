package chunker

import (
	"strings"
	"testing"

	"github.com/calypso-labs/contexta/internal/core/domain"
)

func TestNew(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		c := New()
		if c.maxChunkSize != DefaultMaxChunkSize {
			t.Errorf("expected maxChunkSize %d, got %d", DefaultMaxChunkSize, c.maxChunkSize)
		}
		if c.overlapSize != DefaultOverlapSize {
			t.Errorf("expected overlapSize %d, got %d", DefaultOverlapSize, c.overlapSize)
		}
	})

	t.Run("custom max chunk size", func(t *testing.T) {
		c := New(WithMaxChunkSize(500))
		if c.maxChunkSize != 500 {
			t.Errorf("expected maxChunkSize 500, got %d", c.maxChunkSize)
		}
	})

	t.Run("custom overlap", func(t *testing.T) {
		c := New(WithOverlapSize(60))
		if c.overlapSize != 60 {
			t.Errorf("expected overlapSize 60, got %d", c.overlapSize)
		}
	})

	t.Run("invalid values ignored", func(t *testing.T) {
		c := New(WithMaxChunkSize(0), WithOverlapSize(-1))
		if c.maxChunkSize != DefaultMaxChunkSize {
			t.Errorf("expected default maxChunkSize, got %d", c.maxChunkSize)
		}
		if c.overlapSize != DefaultOverlapSize {
			t.Errorf("expected default overlapSize, got %d", c.overlapSize)
		}
	})
}

func TestChunker_Chunk_EmptyContent(t *testing.T) {
	c := New()

	for _, content := range []string{"", "   ", "\n\t  \n"} {
		if chunks := c.Chunk(content); len(chunks) != 0 {
			t.Errorf("expected 0 chunks for %q, got %d", content, len(chunks))
		}
	}
}

func TestChunker_Chunk_SmallContent(t *testing.T) {
	c := New()
	content := "This single sentence easily fits inside one chunk of the default size."

	chunks := c.Chunk(content)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if !strings.Contains(chunks[0], "single sentence") {
		t.Errorf("chunk content lost: %q", chunks[0])
	}
}

func TestChunker_Chunk_DropsShortChunks(t *testing.T) {
	c := New()

	// Long enough to survive TrimSpace but shorter than the keep floor.
	short := strings.Repeat("ab ", 10) // 30 chars
	if len(short) >= domain.MinContentLength {
		t.Fatalf("test content too long: %d", len(short))
	}

	if chunks := c.Chunk(short); len(chunks) != 0 {
		t.Errorf("expected short content to be dropped, got %d chunks", len(chunks))
	}
}

func TestChunker_Chunk_MultipleSentences(t *testing.T) {
	c := New(WithMaxChunkSize(120), WithOverlapSize(0))

	sentence := "The project plan defines scope schedule and budget for the team"
	content := strings.Repeat(sentence+". ", 6)

	chunks := c.Chunk(content)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	for i, chunk := range chunks {
		if len(chunk) > 120 {
			t.Errorf("chunk %d exceeds max size: %d chars", i, len(chunk))
		}
	}

	// Sentence-aligned chunks end with the terminator the splitter adds.
	for i, chunk := range chunks {
		if !strings.HasSuffix(chunk, ".") {
			t.Errorf("chunk %d missing sentence terminator: %q", i, chunk)
		}
	}
}

func TestChunker_Chunk_MaxSizeRespectedWithoutOverlap(t *testing.T) {
	c := New(WithMaxChunkSize(200), WithOverlapSize(0))

	var sb strings.Builder
	for i := 0; i < 40; i++ {
		sb.WriteString("Every milestone review produces a short written status summary. ")
	}

	for i, chunk := range c.Chunk(sb.String()) {
		if len(chunk) > 200 {
			t.Errorf("chunk %d exceeds max size: %d chars", i, len(chunk))
		}
	}
}

func TestChunker_Chunk_OverlapPrefix(t *testing.T) {
	c := New(WithMaxChunkSize(120), WithOverlapSize(60))

	sentence := "Risk registers track every open threat with an assigned owner"
	content := strings.Repeat(sentence+". ", 8)

	chunks := c.Chunk(content)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	if strings.Contains(chunks[0], OverlapMarker) {
		t.Error("first chunk must not carry an overlap prefix")
	}

	overlapWords := 60 / 6
	for i := 1; i < len(chunks); i++ {
		marker := strings.Index(chunks[i], OverlapMarker)
		if marker < 0 {
			t.Errorf("chunk %d missing overlap marker", i)
			continue
		}

		prefix := chunks[i][:marker]
		words := strings.Split(prefix, " ")
		if len(words) > overlapWords {
			t.Errorf("chunk %d overlap has %d words, want at most %d", i, len(words), overlapWords)
		}
		if !strings.HasSuffix(chunks[i-1], prefix) {
			t.Errorf("chunk %d overlap %q is not the tail of the previous chunk", i, prefix)
		}
	}
}

func TestChunker_Chunk_ZeroOverlapDisablesPrefix(t *testing.T) {
	c := New(WithMaxChunkSize(120), WithOverlapSize(0))

	content := strings.Repeat("Stakeholder communication follows the published escalation path. ", 8)
	for i, chunk := range c.Chunk(content) {
		if strings.Contains(chunk, OverlapMarker) {
			t.Errorf("chunk %d carries overlap despite zero overlap size", i)
		}
	}
}

func TestChunker_Chunk_OversizeSentence(t *testing.T) {
	c := New(WithMaxChunkSize(80), WithOverlapSize(0))

	// A single sentence far beyond the limit must fall back to word
	// packing instead of producing one giant chunk.
	content := strings.Repeat("deliverable ", 40)

	chunks := c.Chunk(content)
	if len(chunks) < 2 {
		t.Fatalf("expected word-packed chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if len(chunk) > 80 {
			t.Errorf("chunk %d exceeds max size: %d chars", i, len(chunk))
		}
	}
}

func TestChunker_Chunk_OversizeSingleToken(t *testing.T) {
	c := New(WithMaxChunkSize(80), WithOverlapSize(0))

	token := strings.Repeat("x", 200)
	chunks := c.Chunk(token + " " + strings.Repeat("word ", 20))

	found := false
	for _, chunk := range chunks {
		if strings.Contains(chunk, token) {
			found = true
		}
	}
	if !found {
		t.Error("oversize token was lost during word packing")
	}
}

func TestChunker_Chunk_Deterministic(t *testing.T) {
	c := New(WithMaxChunkSize(150), WithOverlapSize(60))
	content := strings.Repeat("Sprint reviews close with a demo and a retrospective action list. ", 10)

	first := c.Chunk(content)
	second := c.Chunk(content)

	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("chunk %d differs between runs", i)
		}
	}
}
