// Package render turns a paper.Paper into a finished multi-page PDF.
// It consumes geometry from pkg/layout and emits PDF drawing commands;
// all measurement decisions happen in layout, all drawing happens here.
package render

import (
	"fmt"
	"strings"

	"github.com/PlanningInsights2025/insightpress/pkg/layout"
)

// contentStream accumulates the drawing commands for one page.
type contentStream struct {
	sb strings.Builder
}

// newContentStream opens a page stream with a saved graphics state and a
// white background.
func newContentStream(width, height float64) *contentStream {
	cs := &contentStream{}
	cs.sb.WriteString("q\n")
	cs.sb.WriteString("1 1 1 rg\n")
	cs.sb.WriteString(fmt.Sprintf("0 0 %.2f %.2f re f\n", width, height))
	return cs
}

// Text draws a black text run with its baseline at (x, y) in PDF
// coordinates (origin bottom-left).
func (cs *contentStream) Text(f layout.Font, size, x, y float64, text string) {
	cs.sb.WriteString("BT\n")
	cs.sb.WriteString(fmt.Sprintf("/%s %.2f Tf\n", f.Resource(), size))
	cs.sb.WriteString("0 0 0 rg\n")
	cs.sb.WriteString(fmt.Sprintf("%.2f %.2f Td\n", x, y))
	cs.sb.WriteString(fmt.Sprintf("(%s) Tj\n", escapePDFString(text)))
	cs.sb.WriteString("ET\n")
}

// TextGray draws a text run in a gray level between 0 (black) and 1.
func (cs *contentStream) TextGray(f layout.Font, size, x, y, gray float64, text string) {
	cs.sb.WriteString("BT\n")
	cs.sb.WriteString(fmt.Sprintf("/%s %.2f Tf\n", f.Resource(), size))
	cs.sb.WriteString(fmt.Sprintf("%.2f %.2f %.2f rg\n", gray, gray, gray))
	cs.sb.WriteString(fmt.Sprintf("%.2f %.2f Td\n", x, y))
	cs.sb.WriteString(fmt.Sprintf("(%s) Tj\n", escapePDFString(text)))
	cs.sb.WriteString("ET\n")
}

// Rule draws a horizontal line of the given width starting at (x, y).
func (cs *contentStream) Rule(x, y, width, strokeWidth float64) {
	cs.sb.WriteString("0 0 0 RG\n")
	cs.sb.WriteString(fmt.Sprintf("%.2f w\n", strokeWidth))
	cs.sb.WriteString(fmt.Sprintf("%.2f %.2f m %.2f %.2f l S\n", x, y, x+width, y))
}

// String closes the graphics state and returns the finished stream.
func (cs *contentStream) String() string {
	return cs.sb.String() + "Q\n"
}

// winAnsiSpecials maps common typographic runes to their WinAnsi code
// points. Runes with no mapping and no Latin-1 equivalent degrade to '?'.
var winAnsiSpecials = map[rune]byte{
	'–': 0x96, // en dash
	'—': 0x97, // em dash
	'‘': 0x91, // left single quote
	'’': 0x92, // right single quote
	'“': 0x93, // left double quote
	'”': 0x94, // right double quote
	'•': 0x95, // bullet
	'…': 0x85, // ellipsis
}

// escapePDFString escapes delimiters and encodes text as WinAnsi bytes
// for embedding in a PDF literal string.
func escapePDFString(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch {
		case r == '\\' || r == '(' || r == ')':
			sb.WriteByte('\\')
			sb.WriteByte(byte(r))
		case r < 0x80:
			sb.WriteByte(byte(r))
		case r <= 0xff:
			// Latin-1 and WinAnsi agree on this range.
			sb.WriteByte(byte(r))
		default:
			if b, ok := winAnsiSpecials[r]; ok {
				sb.WriteByte(b)
			} else {
				sb.WriteByte('?')
			}
		}
	}
	return sb.String()
}
