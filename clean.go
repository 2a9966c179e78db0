package wikicat

import "strings"

// CleanSections removes every start...end section from text,
// including nested ones, and trims the result.
//
// Nesting is weighed by token length: the count starts at len(end),
// each nested start adds len(start) and each end takes away
// len(end).  The section closes when the count reaches zero.  With
// tokens of different lengths a nested section therefore needs more
// than one end token to close; that matches the output of the
// existing corpus, so don't change it without checking against it.
//
// A section that never closes runs to the end of the text.
func CleanSections(text, start, end string) string {
	if start == "" || end == "" {
		return strings.TrimSpace(text)
	}

	var b strings.Builder
	i := 0
	for i < len(text) {
		at := strings.Index(text[i:], start)
		if at < 0 {
			b.WriteString(text[i:])
			break
		}
		b.WriteString(text[i : i+at])

		count := len(end)
		j := i + at + len(start)
		for j < len(text) && count > 0 {
			switch {
			case strings.HasPrefix(text[j:], start):
				count += len(start)
				j += len(start)
			case strings.HasPrefix(text[j:], end):
				count -= len(end)
				j += len(end)
			default:
				j++
			}
		}
		i = j
	}
	return strings.TrimSpace(b.String())
}

// CleanText strips file references and then infoboxes from raw
// wikitext.
func CleanText(text string, m Markers) string {
	cleaned := CleanSections(text, "[["+m.File+":", "]]")
	return CleanSections(cleaned, "{{"+m.Infobox, "}}")
}

// FirstParagraph cuts text at the first blank line.
func FirstParagraph(text string) string {
	if i := strings.Index(text, "\n\n"); i >= 0 {
		return text[:i]
	}
	return text
}
