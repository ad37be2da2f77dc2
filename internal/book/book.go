// Package book assembles a user's chapters and optional prologue into a
// single linear document and renders it as plain text or as a paginated PDF.
//
// A Book is a fully derived view: nothing here is persisted. Chapter order
// is the fetch order (chronological by week start), and numbering always
// starts at 1.
package book

import "github.com/tbourn/go-journal-backend/internal/domain"

// DefaultAuthor is the placeholder used when the user has no profile name.
const DefaultAuthor = "Anonymous"

// Book is the assembled, ordered document for one user.
type Book struct {
	// Title of the assembled book.
	Title string
	// Author is the profile name or DefaultAuthor.
	Author string
	// Prologue is the profile's generated introduction; empty means the
	// prologue section is omitted entirely.
	Prologue string
	// Chapters in chronological week order; never empty for a valid Book.
	Chapters []domain.Chapter
}

// ChapterCount returns the number of chapters in the book.
func (b *Book) ChapterCount() int { return len(b.Chapters) }
