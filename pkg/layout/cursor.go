package layout

// Cursor tracks the vertical layout position on a page. Y is measured
// downward from the top of the page and only increases within a page;
// starting a new page resets it to the top margin. Each document
// generation owns exactly one Cursor, so no locking is needed.
type Cursor struct {
	PageWidth  float64
	PageHeight float64
	Margin     float64

	// Y is the current vertical offset from the top of the page.
	Y float64

	// Page is the zero-based index of the current page.
	Page int
}

// NewCursor creates a cursor positioned at the top margin of page 0.
func NewCursor(pageWidth, pageHeight, margin float64) *Cursor {
	return &Cursor{
		PageWidth:  pageWidth,
		PageHeight: pageHeight,
		Margin:     margin,
		Y:          margin,
	}
}

// ContentWidth returns the usable horizontal span between margins.
func (c *Cursor) ContentWidth() float64 {
	return c.PageWidth - 2*c.Margin
}

// Fits reports whether a block of the given height fits on the current
// page without crossing the bottom margin.
func (c *Cursor) Fits(height float64) bool {
	return c.Y+height <= c.PageHeight-c.Margin
}

// Ensure starts a new page if the given height does not fit, and
// reports whether a page break occurred. It is called before each
// indivisible unit (a line, a heading, a reference entry) so that no
// single line is ever split across pages.
func (c *Cursor) Ensure(height float64) bool {
	if c.Fits(height) {
		return false
	}
	c.BreakPage()
	return true
}

// BreakPage finalizes the current page and moves to the top margin of a
// fresh one.
func (c *Cursor) BreakPage() {
	c.Page++
	c.Y = c.Margin
}

// Advance reserves a block of the given height, returning the y offset
// at which the block starts.
func (c *Cursor) Advance(height float64) float64 {
	start := c.Y
	c.Y += height
	return start
}

// BaselineY converts a top-down cursor offset to the PDF coordinate
// system, whose origin is the bottom-left corner of the page.
func (c *Cursor) BaselineY(offset float64) float64 {
	return c.PageHeight - offset
}
