package render

import (
	"strings"

	"github.com/PlanningInsights2025/insightpress/pkg/layout"
)

// sectionState drives the per-section rendering state machine.
type sectionState int

const (
	stateHeading sectionState = iota
	stateDropCapOpening
	stateBody
	stateDone
)

// dropCapLeadChars is the approximate length of the bold lead-in run
// rendered beside the drop cap. The run is extended to the next word
// boundary so the case change never lands mid-word.
const dropCapLeadChars = 11

// renderSection lays out one titled section whose body has already been
// normalized and verified non-empty. number is the 1-based position
// among non-empty sections; dropCap selects the opening treatment for
// the first rendered section.
func (r *renderer) renderSection(number int, title, body string, dropCap bool) {
	remaining := body

	state := stateHeading
	for state != stateDone {
		switch state {
		case stateHeading:
			r.renderHeading(romanNumeral(number) + ". " + strings.ToUpper(title))
			if dropCap {
				state = stateDropCapOpening
			} else {
				state = stateBody
			}

		case stateDropCapOpening:
			remaining = r.renderDropCapOpening(remaining)
			state = stateBody

		case stateBody:
			r.renderJustifiedText(remaining)
			state = stateDone
		}
	}
}

// renderHeading draws a bold uppercase heading line. The page-break
// check reserves room for the heading plus one body line so a heading
// never sits alone at the bottom of a page.
func (r *renderer) renderHeading(text string) {
	size := r.cfg.BaseFontSize + 1
	headingHeight := size * lineSpacing

	r.cur.Ensure(headingHeight + r.bodyLineHeight())
	start := r.cur.Advance(headingHeight)
	r.page().Text(layout.FontBold, size, r.cur.Margin, r.cur.BaselineY(start+size), text)
	r.cur.Advance(headingGap)
}

// renderDropCapOpening draws the enlarged first character, the bold
// lead-in run, and as much of the following text as fits on the same
// first line. It returns the text still to be laid out as normal body.
func (r *renderer) renderDropCapOpening(text string) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	size := r.cfg.BaseFontSize
	capSize := size * 2.5
	lh := r.bodyLineHeight()

	capChar := strings.ToUpper(string(runes[0]))
	rest := runes[1:]

	// Extend the lead-in to the next word boundary.
	leadEnd := dropCapLeadChars
	if leadEnd > len(rest) {
		leadEnd = len(rest)
	}
	for leadEnd < len(rest) && rest[leadEnd] != ' ' {
		leadEnd++
	}
	lead := strings.ToUpper(strings.TrimSpace(string(rest[:leadEnd])))
	tail := strings.TrimSpace(string(rest[leadEnd:]))

	// Keep the drop cap and its first line together across page breaks.
	r.cur.Ensure(lh * 2)
	start := r.cur.Advance(lh)
	baseline := r.cur.BaselineY(start + size)
	cs := r.page()

	capWidth := layout.TextWidth(capChar, layout.FontBold, capSize) + dropCapPad
	cs.Text(layout.FontBold, capSize, r.cur.Margin, baseline, capChar)

	leadX := r.cur.Margin + capWidth
	cs.Text(layout.FontBold, size, leadX, baseline, lead)

	// Fill the rest of the first line with body words, budget permitting.
	x := leadX + layout.TextWidth(lead, layout.FontBold, size) + layout.SpaceWidth(layout.FontRegular, size)
	limit := r.cur.Margin + r.cur.ContentWidth()
	words := strings.Fields(tail)
	taken := 0
	for _, word := range words {
		w := layout.TextWidth(word, layout.FontRegular, size)
		if x+w > limit {
			break
		}
		cs.Text(layout.FontRegular, size, x, baseline, word)
		x += w + layout.SpaceWidth(layout.FontRegular, size)
		taken++
	}

	return strings.Join(words[taken:], " ")
}

// renderJustifiedText wraps text at the full content width and draws it
// with every line except the paragraph's last justified.
func (r *renderer) renderJustifiedText(text string) {
	size := r.cfg.BaseFontSize
	width := r.cur.ContentWidth()

	for _, line := range layout.Wrap(text, layout.FontRegular, size, width) {
		placed := layout.Justify(line, layout.FontRegular, size, width)
		r.drawPlacedLine(placed, layout.FontRegular, size, r.cur.Margin)
	}
}

// drawPlacedLine advances the cursor by one body line and draws the
// placed words at their computed offsets from x0. The page-break check
// happens here, before the line, so lines are never split across pages.
func (r *renderer) drawPlacedLine(placed []layout.PlacedWord, f layout.Font, size, x0 float64) {
	lh := size * lineSpacing
	r.cur.Ensure(lh)
	start := r.cur.Advance(lh)
	baseline := r.cur.BaselineY(start + size)
	cs := r.page()
	for _, pw := range placed {
		cs.Text(f, size, x0+pw.X, baseline, pw.Text)
	}
}

// romanNumeral converts a positive integer to an uppercase Roman
// numeral. Values below 1 return an empty string.
func romanNumeral(n int) string {
	if n < 1 {
		return ""
	}
	values := []int{1000, 900, 500, 400, 100, 90, 50, 40, 10, 9, 5, 4, 1}
	symbols := []string{"M", "CM", "D", "CD", "C", "XC", "L", "XL", "X", "IX", "V", "IV", "I"}

	var sb strings.Builder
	for i, v := range values {
		for n >= v {
			sb.WriteString(symbols[i])
			n -= v
		}
	}
	return sb.String()
}
