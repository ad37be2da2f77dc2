package book

import (
	"fmt"
	"strings"
)

// RenderText produces the plain-text form of a book: title, author line,
// the prologue section when present, then each chapter labeled
// "Chapter N" in order.
func RenderText(b *Book) string {
	var sb strings.Builder

	sb.WriteString(b.Title)
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "by %s\n", b.Author)

	if strings.TrimSpace(b.Prologue) != "" {
		sb.WriteString("\nIntroduction\n\n")
		sb.WriteString(strings.TrimSpace(b.Prologue))
		sb.WriteString("\n")
	}

	for i, c := range b.Chapters {
		fmt.Fprintf(&sb, "\nChapter %d\n\n", i+1)
		sb.WriteString(strings.TrimSpace(c.Content))
		sb.WriteString("\n")
	}

	return sb.String()
}
