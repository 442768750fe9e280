package render

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PlanningInsights2025/insightpress/pkg/paper"
)

// rawConfig disables compression so tests can inspect content streams.
func rawConfig() *Config {
	cfg := DefaultConfig()
	cfg.Compress = false
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.PageWidth != 612 {
		t.Errorf("expected PageWidth 612, got %f", cfg.PageWidth)
	}
	if cfg.PageHeight != 792 {
		t.Errorf("expected PageHeight 792, got %f", cfg.PageHeight)
	}
	if cfg.Margin != 72 {
		t.Errorf("expected Margin 72, got %f", cfg.Margin)
	}
	if cfg.BaseFontSize != 11 {
		t.Errorf("expected BaseFontSize 11, got %f", cfg.BaseFontSize)
	}
	if !cfg.Compress {
		t.Error("expected Compress to be true")
	}
	if !cfg.PageNumbers {
		t.Error("expected PageNumbers to be true")
	}
}

func TestGenerateEndToEnd(t *testing.T) {
	p := &paper.Paper{
		Title:        "A Study Of Bridges",
		Authors:      "J. Doe",
		Abstract:     "<p>Short abstract text.</p>",
		Introduction: "<p>" + strings.Repeat("word ", 500) + "</p>",
	}

	result := Generate(p, nil)

	if !result.Success {
		t.Fatalf("expected success, got error: %s", result.Error)
	}
	if result.FileName != "a-study-of-bridges.pdf" {
		t.Errorf("expected file name 'a-study-of-bridges.pdf', got '%s'", result.FileName)
	}
	if len(result.Blob) == 0 {
		t.Fatal("expected non-empty blob")
	}
	if !bytes.HasPrefix(result.Blob, []byte("%PDF-1.4")) {
		t.Error("blob does not start with PDF header")
	}
	if !bytes.Contains(result.Blob, []byte("%%EOF")) {
		t.Error("blob is missing the PDF trailer")
	}
	if result.PageCount < 2 {
		t.Errorf("500 words at body size should span at least 2 pages, got %d", result.PageCount)
	}
}

func TestGenerateNilPaper(t *testing.T) {
	result := Generate(nil, nil)
	if result.Success {
		t.Fatal("expected failure for nil paper")
	}
	if result.Error == "" {
		t.Error("expected non-empty error message")
	}
	if result.Blob != nil {
		t.Error("failed result must not carry partial output")
	}
}

func TestGenerateMissingTitle(t *testing.T) {
	result := Generate(&paper.Paper{Title: "<p>   </p>"}, nil)
	if result.Success {
		t.Fatal("expected failure for empty-after-normalization title")
	}
	if result.Error == "" {
		t.Error("expected non-empty error message")
	}
}

func TestGenerateDegenerateGeometry(t *testing.T) {
	cfg := &Config{PageWidth: 100, PageHeight: 100, Margin: 60, BaseFontSize: 10}
	result := Generate(&paper.Paper{Title: "Tiny"}, cfg)
	if result.Success {
		t.Fatal("expected failure when margins consume the page")
	}
	if result.Error == "" {
		t.Error("expected non-empty error message")
	}
}

func TestGenerateNeverPanics(t *testing.T) {
	// Absurd inputs must come back as results, never as panics.
	configs := []*Config{
		{PageWidth: 612, PageHeight: 792, Margin: -20, BaseFontSize: 11},
		{PageWidth: 612, PageHeight: 792, Margin: 72, BaseFontSize: 400},
		{PageWidth: 10000, PageHeight: 50000, Margin: 1, BaseFontSize: 0.5},
	}
	p := &paper.Paper{Title: "Stress", Introduction: strings.Repeat("x ", 200)}
	for i, cfg := range configs {
		result := Generate(p, cfg)
		if !result.Success && result.Error == "" {
			t.Errorf("config %d: failed result without error message", i)
		}
	}
}

func TestGenerateAllSectionsEmptyNoHeadings(t *testing.T) {
	p := &paper.Paper{
		Title:        "Plain Document",
		Introduction: "<p>  </p>",
		Discussion:   "",
	}
	result := Generate(p, rawConfig())
	if !result.Success {
		t.Fatalf("unexpected failure: %s", result.Error)
	}
	if bytes.Contains(result.Blob, []byte("(I. ")) {
		t.Error("output contains a Roman-numeral heading despite all sections being empty")
	}
	if result.PageCount != 1 {
		t.Errorf("title-only document should fit one page, got %d", result.PageCount)
	}
}

func TestGenerateNumberingSkipsEmptySections(t *testing.T) {
	p := &paper.Paper{
		Title:       "Numbering",
		RelatedWork: "text A",
		Results:     "text B",
	}
	result := Generate(p, rawConfig())
	if !result.Success {
		t.Fatalf("unexpected failure: %s", result.Error)
	}

	if !bytes.Contains(result.Blob, []byte("(I. RELATED WORK)")) {
		t.Error("first non-empty section should be numbered I")
	}
	if !bytes.Contains(result.Blob, []byte("(II. RESULTS AND ANALYSIS)")) {
		t.Error("second non-empty section should be numbered II")
	}
	if bytes.Contains(result.Blob, []byte("(IV.")) {
		t.Error("numbering must skip empty sections, found IV")
	}
}

func TestGenerateDropCapFirstSectionOnly(t *testing.T) {
	p := &paper.Paper{
		Title:        "Caps",
		Introduction: "alpha beta gamma delta epsilon zeta eta theta",
		Discussion:   "iota kappa lambda mu nu xi omicron pi",
	}
	result := Generate(p, rawConfig())
	if !result.Success {
		t.Fatalf("unexpected failure: %s", result.Error)
	}

	// The drop cap is the only bold run at 2.5x the body size.
	capOp := []byte("/F2 27.50 Tf")
	if n := bytes.Count(result.Blob, capOp); n != 1 {
		t.Errorf("expected exactly one drop cap, found %d", n)
	}
	// Lead-in run is uppercased.
	if !bytes.Contains(result.Blob, []byte("LPHA BETA")) {
		t.Error("expected uppercase lead-in beside the drop cap")
	}
}

func TestGenerateAbstractLabelInline(t *testing.T) {
	p := &paper.Paper{
		Title:    "Labels",
		Abstract: "<p>An abstract about infrastructure.</p>",
		Keywords: "bridges, zoning",
	}
	result := Generate(p, rawConfig())
	if !result.Success {
		t.Fatalf("unexpected failure: %s", result.Error)
	}

	if !bytes.Contains(result.Blob, []byte("(ABSTRACT\x97)")) {
		t.Error("expected bold ABSTRACT label with em dash")
	}
	if !bytes.Contains(result.Blob, []byte("(Keywords\x97)")) {
		t.Error("expected italic Keywords label with em dash")
	}
}

func TestGenerateReferences(t *testing.T) {
	p := &paper.Paper{
		Title:      "Refs",
		References: "[4] A. Author, First Cited Work. [9] B. Writer, Second Cited Work.",
	}
	result := Generate(p, rawConfig())
	if !result.Success {
		t.Fatalf("unexpected failure: %s", result.Error)
	}

	if !bytes.Contains(result.Blob, []byte("(REFERENCES)")) {
		t.Error("expected REFERENCES heading")
	}
	// Entries are renumbered sequentially, ignoring source numbers.
	if !bytes.Contains(result.Blob, []byte("([1])")) {
		t.Error("expected renumbered entry [1]")
	}
	if !bytes.Contains(result.Blob, []byte("([2])")) {
		t.Error("expected renumbered entry [2]")
	}
	if bytes.Contains(result.Blob, []byte("([4])")) {
		t.Error("source numbering should be discarded")
	}
}

func TestGenerateAcknowledgments(t *testing.T) {
	p := &paper.Paper{
		Title:           "Thanks",
		Acknowledgments: "<p>The authors thank the planning department.</p>",
	}
	result := Generate(p, rawConfig())
	if !result.Success {
		t.Fatalf("unexpected failure: %s", result.Error)
	}
	if !bytes.Contains(result.Blob, []byte("(ACKNOWLEDGMENTS)")) {
		t.Error("expected ACKNOWLEDGMENTS heading")
	}
}

func TestGeneratePageNumbers(t *testing.T) {
	p := &paper.Paper{
		Title:        "Folios",
		Introduction: strings.Repeat("content flows across pages ", 150),
	}
	result := Generate(p, rawConfig())
	if !result.Success {
		t.Fatalf("unexpected failure: %s", result.Error)
	}
	if result.PageCount < 2 {
		t.Fatalf("expected multi-page output, got %d pages", result.PageCount)
	}
	if !bytes.Contains(result.Blob, []byte("(2)")) {
		t.Error("expected a folio on the second page")
	}

	cfg := rawConfig()
	cfg.PageNumbers = false
	plain := Generate(&paper.Paper{Title: "Quiet"}, cfg)
	if bytes.Contains(plain.Blob, []byte("(1) Tj")) {
		t.Error("folio rendered with page numbers disabled")
	}
}

func TestGenerateMetadata(t *testing.T) {
	p := &paper.Paper{
		Title:    "Metadata Check",
		Authors:  "C. Planner",
		Keywords: "transit",
	}
	result := Generate(p, rawConfig())
	if !result.Success {
		t.Fatalf("unexpected failure: %s", result.Error)
	}
	if !bytes.Contains(result.Blob, []byte("/Title (Metadata Check)")) {
		t.Error("missing Title in Info dictionary")
	}
	if !bytes.Contains(result.Blob, []byte("/Author (C. Planner)")) {
		t.Error("missing Author in Info dictionary")
	}
	if !bytes.Contains(result.Blob, []byte("/Producer (Insight Press Layout Engine)")) {
		t.Error("missing Producer in Info dictionary")
	}
}

func TestGenerateDeterministicPageCount(t *testing.T) {
	p := &paper.Paper{
		Title:        "Repeatable",
		Introduction: strings.Repeat("stable layout pass ", 100),
	}
	first := Generate(p, nil)
	second := Generate(p, nil)
	if first.PageCount != second.PageCount {
		t.Errorf("page count differs between runs: %d vs %d", first.PageCount, second.PageCount)
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	result := Generate(&paper.Paper{Title: "Saved Output"}, nil)
	if !result.Success {
		t.Fatalf("unexpected failure: %s", result.Error)
	}

	path, err := WriteFile(result, dir)
	if err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if filepath.Base(path) != "saved-output.pdf" {
		t.Errorf("unexpected output name: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !bytes.Equal(data, result.Blob) {
		t.Error("written file does not match generated blob")
	}
}

func TestWriteFileRejectsFailedResult(t *testing.T) {
	_, err := WriteFile(Result{Success: false, Error: "boom"}, t.TempDir())
	if err == nil {
		t.Fatal("expected error writing a failed result")
	}
}

func TestRomanNumeral(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, ""},
		{1, "I"},
		{2, "II"},
		{4, "IV"},
		{6, "VI"},
		{9, "IX"},
		{14, "XIV"},
	}
	for _, tt := range tests {
		if got := romanNumeral(tt.n); got != tt.want {
			t.Errorf("romanNumeral(%d): expected %s, got %s", tt.n, tt.want, got)
		}
	}
}

func TestEscapePDFString(t *testing.T) {
	got := escapePDFString(`a(b)c\d`)
	if got != `a\(b\)c\\d` {
		t.Errorf("unexpected escape result: %s", got)
	}
	if escapePDFString("em—dash") != "em\x97dash" {
		t.Error("em dash should encode to WinAnsi 0x97")
	}
	if escapePDFString("日") != "?" {
		t.Error("unmappable rune should degrade to '?'")
	}
}
