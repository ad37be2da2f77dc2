// Package ai provides the client for the external narrative generation
// service. The service is treated as an opaque text transform: raw diary
// text in, rewritten narrative out.
package ai

import "context"

// Generator rewrites raw text under a fixed instruction set.
// Implementations must honor ctx for cancellation and timeouts.
type Generator interface {
	// Generate returns the rewritten text for the given system instructions
	// and user text, or an error when the upstream service is unavailable,
	// errored, or produced no usable output.
	Generate(ctx context.Context, instructions, text string) (string, error)
}

// Fixed instruction sets. Wording is deliberately conservative: the
// generator must not invent events that are absent from the input.
const (
	// ChapterInstructions turn one week of diary entries into a chapter.
	// Entries arrive concatenated in chronological order without dates;
	// order is the only temporal signal the narrative may rely on.
	ChapterInstructions = "You turn a person's diary entries into a short book chapter. " +
		"Rewrite the following entries as one flowing third-person narrative. " +
		"Keep every event and feeling from the entries, in the order given. " +
		"Do not invent events, people, or details that are not in the text. " +
		"Do not mention dates or days of the week."

	// IntroInstructions turn profile facts into a book introduction.
	IntroInstructions = "You write the introduction of a personal memoir. " +
		"Using only the facts given, introduce the author in warm third-person " +
		"prose, two to three paragraphs. Do not invent facts."
)
