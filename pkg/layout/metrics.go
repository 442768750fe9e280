// Package layout provides pure text measurement, line wrapping,
// justification, and pagination state for the PDF renderer. Nothing in
// this package emits drawing commands; it computes geometry only.
package layout

// Font identifies one of the four standard Helvetica faces available to
// the renderer. Values double as PDF resource indices (F1..F4).
type Font int

const (
	FontRegular Font = iota
	FontBold
	FontOblique
	FontBoldOblique
)

// Resource returns the PDF font resource name for this face.
func (f Font) Resource() string {
	switch f {
	case FontBold:
		return "F2"
	case FontOblique:
		return "F3"
	case FontBoldOblique:
		return "F4"
	default:
		return "F1"
	}
}

// BaseFont returns the PostScript base font name for this face.
func (f Font) BaseFont() string {
	switch f {
	case FontBold:
		return "Helvetica-Bold"
	case FontOblique:
		return "Helvetica-Oblique"
	case FontBoldOblique:
		return "Helvetica-BoldOblique"
	default:
		return "Helvetica"
	}
}

// Glyph widths for the printable ASCII range in 1/1000 em units, taken
// from the Adobe AFM metrics for the standard 14 fonts. The oblique
// faces share the upright widths.
var helveticaWidths = [95]int{
	278, 278, 355, 556, 556, 889, 667, 191, 333, 333, // space ! " # $ % & ' ( )
	389, 584, 278, 333, 278, 278, 556, 556, 556, 556, // * + , - . / 0 1 2 3
	556, 556, 556, 556, 556, 556, 278, 278, 584, 584, // 4 5 6 7 8 9 : ; < =
	584, 556, 1015, 667, 667, 722, 722, 667, 611, 778, // > ? @ A B C D E F G
	722, 278, 500, 667, 556, 833, 722, 778, 667, 778, // H I J K L M N O P Q
	722, 667, 611, 722, 667, 944, 667, 667, 611, 278, // R S T U V W X Y Z [
	278, 278, 469, 556, 333, 556, 556, 500, 556, 556, // \ ] ^ _ ` a b c d e
	278, 556, 556, 222, 222, 500, 222, 833, 556, 556, // f g h i j k l m n o
	556, 556, 333, 500, 278, 556, 500, 722, 500, 500, // p q r s t u v w x y
	500, 334, 260, 334, 584, // z { | } ~
}

var helveticaBoldWidths = [95]int{
	278, 333, 474, 556, 556, 889, 722, 238, 333, 333,
	389, 584, 278, 333, 278, 278, 556, 556, 556, 556,
	556, 556, 556, 556, 556, 556, 333, 333, 584, 584,
	584, 611, 975, 722, 722, 722, 722, 667, 611, 778,
	722, 278, 556, 722, 611, 833, 722, 778, 667, 778,
	722, 667, 611, 722, 667, 944, 667, 667, 611, 333,
	278, 333, 584, 556, 333, 556, 611, 556, 611, 556,
	333, 611, 611, 278, 278, 556, 278, 889, 611, 611,
	611, 611, 389, 556, 333, 611, 556, 778, 556, 556,
	500, 389, 280, 389, 584,
}

// glyphWidth returns the width of a single rune in 1/1000 em.
// Runes outside the ASCII table fall back to the average letter width.
func glyphWidth(r rune, f Font) int {
	table := &helveticaWidths
	fallback := 556
	if f == FontBold || f == FontBoldOblique {
		table = &helveticaBoldWidths
		fallback = 611
	}
	if r >= 0x20 && r < 0x7f {
		return table[r-0x20]
	}
	return fallback
}

// TextWidth measures the rendered width of s at the given face and font
// size, in points.
func TextWidth(s string, f Font, size float64) float64 {
	total := 0
	for _, r := range s {
		total += glyphWidth(r, f)
	}
	return float64(total) * size / 1000.0
}

// SpaceWidth returns the width of a single space at the given face and
// size, in points.
func SpaceWidth(f Font, size float64) float64 {
	return float64(glyphWidth(' ', f)) * size / 1000.0
}
