package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PlanningInsights2025/insightpress/pkg/errors"
	"github.com/PlanningInsights2025/insightpress/pkg/layout"
	"github.com/PlanningInsights2025/insightpress/pkg/paper"
)

// Layout constants shared by the composer and section renderer.
const (
	// lineSpacing is the line height multiplier applied to font sizes.
	lineSpacing = 1.7

	// headingGap is the extra space below a section heading.
	headingGap = 6.0

	// sectionGap is the space between consecutive blocks and sections.
	sectionGap = 14.0

	// dropCapPad separates the drop cap from its lead-in run.
	dropCapPad = 3.0

	// hangIndent is the continuation indent for reference entries.
	hangIndent = 18.0
)

// Config specifies page geometry and typography for generation.
type Config struct {
	// PageWidth is the page width in points (default: 612, US Letter).
	PageWidth float64 `yaml:"page_width" json:"pageWidth"`

	// PageHeight is the page height in points (default: 792).
	PageHeight float64 `yaml:"page_height" json:"pageHeight"`

	// Margin is applied equally to all four sides (default: 72).
	Margin float64 `yaml:"margin" json:"margin"`

	// BaseFontSize is the body text size in points (default: 11).
	BaseFontSize float64 `yaml:"base_font_size" json:"baseFontSize"`

	// PageNumbers adds a centered folio at the foot of each page.
	PageNumbers bool `yaml:"page_numbers" json:"pageNumbers"`

	// Compress enables zlib compression of content streams.
	Compress bool `yaml:"compress" json:"compress"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		PageWidth:    612,
		PageHeight:   792,
		Margin:       72,
		BaseFontSize: 11,
		PageNumbers:  true,
		Compress:     true,
	}
}

// applyDefaults fills zero values so partially specified configs work.
func (c *Config) applyDefaults() {
	d := DefaultConfig()
	if c.PageWidth == 0 {
		c.PageWidth = d.PageWidth
	}
	if c.PageHeight == 0 {
		c.PageHeight = d.PageHeight
	}
	if c.Margin == 0 {
		c.Margin = d.Margin
	}
	if c.BaseFontSize == 0 {
		c.BaseFontSize = d.BaseFontSize
	}
}

// Result is the outcome of one generation pass. On failure, Blob is nil
// and Error carries the reason; no partial output is ever returned.
type Result struct {
	Success   bool   `json:"success"`
	FileName  string `json:"fileName,omitempty"`
	Blob      []byte `json:"-"`
	PageCount int    `json:"pageCount,omitempty"`
	Error     string `json:"error,omitempty"`
	Code      string `json:"code,omitempty"`
}

// failed converts a structured error into a failure Result. The code is
// carried so callers can classify the failure without string matching.
func failed(pe *errors.PressError) Result {
	return Result{Success: false, Error: pe.Message, Code: pe.Code}
}

// renderer threads the cursor and per-page content streams through one
// generation pass. Each call to Generate constructs a fresh renderer;
// nothing is shared between invocations.
type renderer struct {
	cfg   *Config
	cur   *layout.Cursor
	pages []*contentStream
}

// page returns the content stream for the cursor's current page,
// creating streams as page breaks occur.
func (r *renderer) page() *contentStream {
	for len(r.pages) <= r.cur.Page {
		r.pages = append(r.pages, newContentStream(r.cfg.PageWidth, r.cfg.PageHeight))
	}
	return r.pages[r.cur.Page]
}

// bodyLineHeight is the advance for one body text line.
func (r *renderer) bodyLineHeight() float64 {
	return r.cfg.BaseFontSize * lineSpacing
}

// Generate lays out the paper and returns the finished PDF. The entire
// pass is synchronous and runs to completion in this call; any internal
// panic is recovered and reported as a failed Result rather than
// propagated.
func Generate(p *paper.Paper, cfg *Config) (result Result) {
	defer func() {
		if rec := recover(); rec != nil {
			result = failed(errors.LayoutPanic(rec))
		}
	}()

	if p == nil {
		return failed(errors.DocumentEmpty())
	}
	title := paper.Normalize(p.Title)
	if title == "" {
		return failed(errors.DocumentNoTitle())
	}

	if cfg == nil {
		cfg = DefaultConfig()
	} else {
		copied := *cfg
		cfg = &copied
	}
	cfg.applyDefaults()
	if cfg.PageWidth <= 2*cfg.Margin || cfg.PageHeight <= 2*cfg.Margin {
		return failed(errors.LayoutNoPageArea(cfg.PageWidth, cfg.PageHeight, cfg.Margin))
	}

	r := &renderer{
		cfg: cfg,
		cur: layout.NewCursor(cfg.PageWidth, cfg.PageHeight, cfg.Margin),
	}

	r.renderTitleBlock(p, title)
	r.renderSeparatorRule()
	r.renderLabeledParagraph("ABSTRACT—", layout.FontBold, paper.Normalize(p.Abstract))
	r.renderLabeledParagraph("Keywords—", layout.FontOblique, paper.Normalize(p.Keywords))
	r.renderSections(p)
	r.renderReferences(p.References)
	r.renderAcknowledgments(p.Acknowledgments)

	if cfg.PageNumbers {
		r.renderPageNumbers()
	}

	doc := newPDFDocument(cfg.PageWidth, cfg.PageHeight, cfg.Compress, documentInfo{
		Title:    title,
		Author:   paper.Normalize(p.Authors),
		Subject:  "Research Paper",
		Keywords: paper.Normalize(p.Keywords),
	})
	for _, cs := range r.pages {
		doc.addPage(cs.String())
	}

	return Result{
		Success:   true,
		FileName:  paper.FileName(p.Title),
		Blob:      doc.build(),
		PageCount: len(r.pages),
	}
}

// WriteFile saves a successful result's blob under dir using its derived
// file name. This is the follow-up "download" step; it waits on nothing
// because the layout pass has already completed by the time it runs.
func WriteFile(result Result, dir string) (string, error) {
	if !result.Success {
		return "", fmt.Errorf("cannot write failed result: %s", result.Error)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.IOWrap(err, errors.ErrIODirCreateFailed, "failed to create output directory").
			WithContext("path", dir)
	}
	path := filepath.Join(dir, result.FileName)
	if err := os.WriteFile(path, result.Blob, 0644); err != nil {
		return "", errors.IOWriteError(path, err)
	}
	return path, nil
}

// renderTitleBlock draws the centered title, author, affiliation, and
// email lines. The title block is always rendered.
func (r *renderer) renderTitleBlock(p *paper.Paper, title string) {
	titleSize := r.cfg.BaseFontSize * 2
	width := r.cur.ContentWidth()

	for _, line := range layout.Wrap(strings.ToUpper(title), layout.FontBold, titleSize, width) {
		lh := titleSize * 1.3
		r.cur.Ensure(lh)
		start := r.cur.Advance(lh)
		w := layout.TextWidth(line.Text, layout.FontBold, titleSize)
		x := r.cur.Margin + (width-w)/2
		r.page().Text(layout.FontBold, titleSize, x, r.cur.BaselineY(start+titleSize), line.Text)
	}
	r.cur.Advance(headingGap)

	r.renderCenteredLine(paper.Normalize(p.Authors), layout.FontRegular, r.cfg.BaseFontSize+1, 0)
	r.renderCenteredLine(paper.Normalize(p.Affiliation), layout.FontOblique, r.cfg.BaseFontSize, 0)
	r.renderCenteredLine(paper.Normalize(p.Email), layout.FontRegular, r.cfg.BaseFontSize-1, 0.3)
}

// renderCenteredLine draws one centered line, skipping empty text.
func (r *renderer) renderCenteredLine(text string, f layout.Font, size, gray float64) {
	if text == "" {
		return
	}
	lh := size * lineSpacing
	r.cur.Ensure(lh)
	start := r.cur.Advance(lh)
	w := layout.TextWidth(text, f, size)
	x := r.cur.Margin + (r.cur.ContentWidth()-w)/2
	if gray > 0 {
		r.page().TextGray(f, size, x, r.cur.BaselineY(start+size), gray, text)
	} else {
		r.page().Text(f, size, x, r.cur.BaselineY(start+size), text)
	}
}

// renderSeparatorRule draws the horizontal rule under the author block.
func (r *renderer) renderSeparatorRule() {
	r.cur.Ensure(sectionGap)
	start := r.cur.Advance(sectionGap)
	r.page().Rule(r.cur.Margin, r.cur.BaselineY(start+sectionGap/2), r.cur.ContentWidth(), 0.7)
}

// renderLabeledParagraph draws an inline label (bold or italic) followed
// by body text that starts on the same line and wraps normally after.
// Empty text skips the block entirely.
func (r *renderer) renderLabeledParagraph(label string, labelFont layout.Font, text string) {
	if text == "" {
		return
	}
	size := r.cfg.BaseFontSize
	lh := r.bodyLineHeight()
	width := r.cur.ContentWidth()
	labelWidth := layout.TextWidth(label, labelFont, size)
	space := layout.SpaceWidth(layout.FontRegular, size)

	r.cur.Advance(headingGap)
	r.cur.Ensure(lh * 2)
	start := r.cur.Advance(lh)
	baseline := r.cur.BaselineY(start + size)
	cs := r.page()
	cs.Text(labelFont, size, r.cur.Margin, baseline, label)

	// First line shares its budget with the label.
	x := r.cur.Margin + labelWidth + space/2
	limit := r.cur.Margin + width
	words := strings.Fields(text)
	taken := 0
	for _, word := range words {
		w := layout.TextWidth(word, layout.FontRegular, size)
		if x+w > limit {
			break
		}
		cs.Text(layout.FontRegular, size, x, baseline, word)
		x += w + space
		taken++
	}

	rest := strings.Join(words[taken:], " ")
	for _, line := range layout.Wrap(rest, layout.FontRegular, size, width) {
		placed := layout.Justify(line, layout.FontRegular, size, width)
		r.drawPlacedLine(placed, layout.FontRegular, size, r.cur.Margin)
	}
}

// renderSections lays out the canonical sections in order, numbering
// only the non-empty ones so the visible sequence has no gaps. The
// drop-cap flag is computed once here, after filtering, rather than
// inferred during iteration.
func (r *renderer) renderSections(p *paper.Paper) {
	type rendered struct {
		title string
		body  string
	}
	var nonEmpty []rendered
	for _, s := range p.Sections() {
		body := paper.Normalize(s.Body)
		if body == "" {
			continue
		}
		nonEmpty = append(nonEmpty, rendered{title: s.Title, body: body})
	}

	for i, s := range nonEmpty {
		r.cur.Advance(sectionGap)
		isFirstRenderedSection := i == 0
		r.renderSection(i+1, s.title, s.body, isFirstRenderedSection)
	}
}

// renderReferences draws the REFERENCES heading and each entry with a
// sequential bracketed number and hanging indent.
func (r *renderer) renderReferences(blob string) {
	entries := paper.SplitReferences(blob)
	if len(entries) == 0 {
		return
	}
	size := r.cfg.BaseFontSize
	width := r.cur.ContentWidth()

	r.cur.Advance(sectionGap)
	r.renderHeading("REFERENCES")

	for i, entry := range entries {
		num := fmt.Sprintf("[%d]", i+1)
		numWidth := layout.TextWidth(num, layout.FontRegular, size) + layout.SpaceWidth(layout.FontRegular, size)

		// First line: number at the margin, entry text beside it.
		firstWidth := width - numWidth
		lines := layout.Wrap(entry, layout.FontRegular, size, firstWidth)
		if len(lines) == 0 {
			continue
		}

		lh := size * lineSpacing
		r.cur.Ensure(lh)
		start := r.cur.Advance(lh)
		baseline := r.cur.BaselineY(start + size)
		cs := r.page()
		cs.Text(layout.FontRegular, size, r.cur.Margin, baseline, num)
		cs.Text(layout.FontRegular, size, r.cur.Margin+numWidth, baseline, lines[0].Text)

		// Continuation lines re-wrap at the hanging indent width.
		if len(lines) > 1 {
			var restWords []string
			for _, line := range lines[1:] {
				restWords = append(restWords, line.Words...)
			}
			rest := strings.Join(restWords, " ")
			for _, line := range layout.Wrap(rest, layout.FontRegular, size, width-hangIndent) {
				placed := layout.Justify(line, layout.FontRegular, size, width-hangIndent)
				r.drawPlacedLine(placed, layout.FontRegular, size, r.cur.Margin+hangIndent)
			}
		}
	}
}

// renderAcknowledgments draws the ACKNOWLEDGMENTS heading followed by
// justified paragraph text.
func (r *renderer) renderAcknowledgments(blob string) {
	text := paper.Normalize(blob)
	if text == "" {
		return
	}
	r.cur.Advance(sectionGap)
	r.renderHeading("ACKNOWLEDGMENTS")
	r.renderJustifiedText(text)
}

// renderPageNumbers writes a centered folio into the foot of every page.
func (r *renderer) renderPageNumbers() {
	size := r.cfg.BaseFontSize - 2
	for i, cs := range r.pages {
		folio := fmt.Sprintf("%d", i+1)
		w := layout.TextWidth(folio, layout.FontRegular, size)
		x := (r.cfg.PageWidth - w) / 2
		cs.TextGray(layout.FontRegular, size, x, r.cfg.Margin/2, 0.4, folio)
	}
}
