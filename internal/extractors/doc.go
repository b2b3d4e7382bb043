// Package extractors provides the format-dispatch registry that turns
// uploaded or filesystem-resident files into plain text.
//
// Each supported extension maps to an extraction strategy implementing
// driven.Extractor. Recognized formats without a strategy (slide decks,
// spreadsheets, PDFs) resolve to a typed unsupported-format outcome
// carrying a conversion hint, never to a panic or a batch abort.
package extractors
