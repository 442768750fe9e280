package layout

// PlacedWord is a word with its computed x offset relative to the line's
// left edge.
type PlacedWord struct {
	Text string
	X    float64
}

// Justify computes per-word x offsets for a line so that its visible
// span fills maxWidth exactly. Justification applies only to non-last
// lines with at least two words; last lines, single-word lines, and
// degenerate lines whose words alone exceed maxWidth fall back to
// natural spacing.
func Justify(line Line, f Font, size, maxWidth float64) []PlacedWord {
	if line.LastInParagraph || len(line.Words) < 2 {
		return naturalPlacement(line.Words, f, size)
	}

	totalWordWidth := 0.0
	for _, word := range line.Words {
		totalWordWidth += TextWidth(word, f, size)
	}

	// Guard: an overlong word (or accumulated rounding) can leave no
	// slack to distribute. Never emit negative gaps.
	slack := maxWidth - totalWordWidth
	if slack <= 0 {
		return naturalPlacement(line.Words, f, size)
	}

	gap := slack / float64(len(line.Words)-1)
	placed := make([]PlacedWord, len(line.Words))
	x := 0.0
	for i, word := range line.Words {
		placed[i] = PlacedWord{Text: word, X: x}
		x += TextWidth(word, f, size) + gap
	}
	return placed
}

// naturalPlacement lays words out left-aligned with normal inter-word
// spacing.
func naturalPlacement(words []string, f Font, size float64) []PlacedWord {
	space := SpaceWidth(f, size)
	placed := make([]PlacedWord, len(words))
	x := 0.0
	for i, word := range words {
		placed[i] = PlacedWord{Text: word, X: x}
		x += TextWidth(word, f, size) + space
	}
	return placed
}
