// Package chunker splits extracted text into bounded, overlapping
// segments suitable for lexical retrieval.
package chunker

import (
	"regexp"
	"strings"

	"github.com/calypso-labs/contexta/internal/core/domain"
)

// DefaultMaxChunkSize is the default number of characters per chunk.
const DefaultMaxChunkSize = 1000

// DefaultOverlapSize is the default overlap budget in characters.
// The overlap pass converts it to a word count (overlap / 6 words).
const DefaultOverlapSize = 100

// OverlapMarker separates the borrowed tail of the previous chunk from
// the chunk's own content.
const OverlapMarker = " ... "

// sentenceEnd matches sentence-terminal punctuation runs.
var sentenceEnd = regexp.MustCompile(`[.!?]+`)

// Chunker splits text into sentence-aligned chunks with overlap.
type Chunker struct {
	maxChunkSize int
	overlapSize  int
}

// Option configures a Chunker.
type Option func(*Chunker)

// WithMaxChunkSize sets the maximum chunk size in characters.
func WithMaxChunkSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.maxChunkSize = size
		}
	}
}

// WithOverlapSize sets the overlap budget in characters.
func WithOverlapSize(size int) Option {
	return func(c *Chunker) {
		if size >= 0 {
			c.overlapSize = size
		}
	}
}

// New creates a Chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		maxChunkSize: DefaultMaxChunkSize,
		overlapSize:  DefaultOverlapSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Chunk splits text into ordered chunk strings. Empty or whitespace-only
// input yields no chunks. Every chunk except the first carries an
// overlap prefix borrowed from the tail of the previous chunk, and
// chunks shorter than domain.MinContentLength are dropped.
func (c *Chunker) Chunk(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	chunks := c.splitSentences(text)
	chunks = c.applyOverlap(chunks)

	kept := chunks[:0]
	for _, chunk := range chunks {
		if len(chunk) >= domain.MinContentLength {
			kept = append(kept, chunk)
		}
	}
	return kept
}

// splitSentences greedily packs sentences into chunks of at most
// maxChunkSize characters. A sentence that alone exceeds the limit is
// packed word by word instead; a single word longer than the limit
// becomes a chunk of its own.
func (c *Chunker) splitSentences(text string) []string {
	var chunks []string
	var current string

	for _, sentence := range sentenceEnd.Split(text, -1) {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}

		proposed := sentence
		if current != "" {
			proposed = current + ". " + sentence
		}

		if len(proposed) <= c.maxChunkSize {
			current = proposed
			continue
		}

		if current != "" {
			chunks = append(chunks, current+".")
		}

		if len(sentence) > c.maxChunkSize {
			chunks, current = c.packWords(chunks, sentence)
		} else {
			current = sentence
		}
	}

	if current != "" {
		chunks = append(chunks, current+".")
	}
	return chunks
}

// packWords splits an oversize sentence at word boundaries. The last
// partial word chunk is returned as the new running buffer.
func (c *Chunker) packWords(chunks []string, sentence string) ([]string, string) {
	var wordChunk string
	for _, word := range strings.Split(sentence, " ") {
		if len(wordChunk)+len(word)+1 <= c.maxChunkSize {
			if wordChunk != "" {
				wordChunk += " "
			}
			wordChunk += word
			continue
		}
		if wordChunk != "" {
			chunks = append(chunks, wordChunk)
		}
		wordChunk = word
	}
	return chunks, wordChunk
}

// applyOverlap prepends the tail words of each preceding chunk so
// adjacent chunks share boundary context.
func (c *Chunker) applyOverlap(chunks []string) []string {
	if c.overlapSize <= 0 || len(chunks) < 2 {
		return chunks
	}

	overlapWords := c.overlapSize / 6
	if overlapWords < 1 {
		return chunks
	}

	overlapped := make([]string, len(chunks))
	overlapped[0] = chunks[0]
	for i := 1; i < len(chunks); i++ {
		words := strings.Split(chunks[i-1], " ")
		if len(words) > overlapWords {
			words = words[len(words)-overlapWords:]
		}
		overlapped[i] = strings.Join(words, " ") + OverlapMarker + chunks[i]
	}
	return overlapped
}
