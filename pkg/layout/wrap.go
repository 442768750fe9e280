package layout

import "strings"

// Line is one wrapped line of a paragraph.
type Line struct {
	// Text is the line content with single spaces between words.
	Text string

	// Words are the individual words on the line, in order.
	Words []string

	// LastInParagraph marks the final line of the paragraph; it is
	// never justified.
	LastInParagraph bool
}

// Wrap breaks text into lines that fit within maxWidth at the given face
// and size, using greedy word wrap. A single word wider than maxWidth is
// placed whole on its own line rather than split. Empty or
// whitespace-only input returns nil.
func Wrap(text string, f Font, size, maxWidth float64) []Line {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []Line
	current := []string{words[0]}
	currentWidth := TextWidth(words[0], f, size)
	space := SpaceWidth(f, size)

	for _, word := range words[1:] {
		wordWidth := TextWidth(word, f, size)
		if currentWidth+space+wordWidth <= maxWidth {
			current = append(current, word)
			currentWidth += space + wordWidth
			continue
		}
		lines = append(lines, Line{
			Text:  strings.Join(current, " "),
			Words: current,
		})
		current = []string{word}
		currentWidth = wordWidth
	}

	lines = append(lines, Line{
		Text:            strings.Join(current, " "),
		Words:           current,
		LastInParagraph: true,
	})
	return lines
}
