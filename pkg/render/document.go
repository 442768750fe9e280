package render

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"strings"
	"time"

	"github.com/PlanningInsights2025/insightpress/pkg/layout"
)

// PDF constants for document generation.
const (
	// PDFVersion is the PDF specification version used.
	PDFVersion = "1.4"

	// PDFProducer is the producer string embedded in PDF metadata.
	PDFProducer = "Insight Press Layout Engine"
)

// Fixed object numbers reserved ahead of page/stream objects:
// 1 catalog, 2 pages tree, 3-6 the four Helvetica font faces.
const reservedObjects = 6

// documentInfo holds the metadata embedded in the PDF Info dictionary.
type documentInfo struct {
	Title    string
	Author   string
	Subject  string
	Keywords string
}

// pdfDocument assembles a complete PDF file from page content streams.
type pdfDocument struct {
	width    float64
	height   float64
	compress bool
	info     documentInfo

	objects []string
	pages   []int
}

// newPDFDocument creates a document builder for fixed-size pages.
func newPDFDocument(width, height float64, compress bool, info documentInfo) *pdfDocument {
	return &pdfDocument{
		width:    width,
		height:   height,
		compress: compress,
		info:     info,
	}
}

// addObject appends an object body and returns its position among the
// dynamic objects (1-based, before the reserved offset is applied).
func (doc *pdfDocument) addObject(content string) int {
	doc.objects = append(doc.objects, content)
	return len(doc.objects)
}

// addPage adds one page with the given content stream.
func (doc *pdfDocument) addPage(content string) {
	var streamData []byte
	var filter string

	if doc.compress {
		var buf bytes.Buffer
		w := zlib.NewWriter(&buf)
		w.Write([]byte(content))
		w.Close()
		streamData = buf.Bytes()
		filter = "/Filter /FlateDecode\n"
	} else {
		streamData = []byte(content)
	}

	streamObj := fmt.Sprintf("<< /Length %d\n%s>>\nstream\n%sendstream",
		len(streamData), filter, streamData)
	streamObjNum := doc.addObject(streamObj)

	pageObj := fmt.Sprintf("<< /Type /Page\n/Parent 2 0 R\n/MediaBox [0 0 %.2f %.2f]\n/Contents %d 0 R\n/Resources << /Font << /F1 3 0 R /F2 4 0 R /F3 5 0 R /F4 6 0 R >> >>\n>>",
		doc.width, doc.height, streamObjNum+reservedObjects)
	pageObjNum := doc.addObject(pageObj)

	doc.pages = append(doc.pages, pageObjNum)
}

// build generates the complete PDF file.
func (doc *pdfDocument) build() []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("%%PDF-%s\n", PDFVersion))
	buf.WriteString("%\xE2\xE3\xCF\xD3\n") // Binary marker

	// Page tree kids array
	var kidsArray strings.Builder
	kidsArray.WriteString("[")
	for i, pageNum := range doc.pages {
		if i > 0 {
			kidsArray.WriteString(" ")
		}
		kidsArray.WriteString(fmt.Sprintf("%d 0 R", pageNum+reservedObjects))
	}
	kidsArray.WriteString("]")

	finalObjects := make([]string, 0, reservedObjects+len(doc.objects)+1)

	// Object 1: Catalog
	finalObjects = append(finalObjects, "<< /Type /Catalog\n/Pages 2 0 R\n>>")

	// Object 2: Pages
	finalObjects = append(finalObjects, fmt.Sprintf("<< /Type /Pages\n/Kids %s\n/Count %d\n>>",
		kidsArray.String(), len(doc.pages)))

	// Objects 3-6: the four Helvetica faces
	for _, f := range []layout.Font{layout.FontRegular, layout.FontBold, layout.FontOblique, layout.FontBoldOblique} {
		finalObjects = append(finalObjects, fmt.Sprintf("<< /Type /Font\n/Subtype /Type1\n/BaseFont /%s\n/Encoding /WinAnsiEncoding\n>>",
			f.BaseFont()))
	}

	finalObjects = append(finalObjects, doc.objects...)

	// Info dictionary
	finalObjects = append(finalObjects, doc.buildInfoDict())
	infoObjNum := len(finalObjects)

	// Write all objects and track xref positions
	xref := make([]int, len(finalObjects)+1)
	for i, obj := range finalObjects {
		xref[i+1] = buf.Len()
		buf.WriteString(fmt.Sprintf("%d 0 obj\n%s\nendobj\n", i+1, obj))
	}

	// Xref table
	xrefPos := buf.Len()
	buf.WriteString("xref\n")
	buf.WriteString(fmt.Sprintf("0 %d\n", len(finalObjects)+1))
	buf.WriteString("0000000000 65535 f \n")
	for i := 1; i <= len(finalObjects); i++ {
		buf.WriteString(fmt.Sprintf("%010d 00000 n \n", xref[i]))
	}

	// Trailer
	buf.WriteString("trailer\n")
	buf.WriteString(fmt.Sprintf("<< /Size %d\n/Root 1 0 R\n/Info %d 0 R\n>>", len(finalObjects)+1, infoObjNum))
	buf.WriteString("\nstartxref\n")
	buf.WriteString(fmt.Sprintf("%d\n", xrefPos))
	buf.WriteString("%%EOF\n")

	return buf.Bytes()
}

// buildInfoDict creates the PDF Info dictionary for metadata.
func (doc *pdfDocument) buildInfoDict() string {
	var sb strings.Builder
	sb.WriteString("<<\n")

	if doc.info.Title != "" {
		sb.WriteString(fmt.Sprintf("/Title (%s)\n", escapePDFString(doc.info.Title)))
	}
	if doc.info.Author != "" {
		sb.WriteString(fmt.Sprintf("/Author (%s)\n", escapePDFString(doc.info.Author)))
	}
	if doc.info.Subject != "" {
		sb.WriteString(fmt.Sprintf("/Subject (%s)\n", escapePDFString(doc.info.Subject)))
	}
	if doc.info.Keywords != "" {
		sb.WriteString(fmt.Sprintf("/Keywords (%s)\n", escapePDFString(doc.info.Keywords)))
	}

	sb.WriteString(fmt.Sprintf("/Producer (%s)\n", escapePDFString(PDFProducer)))
	sb.WriteString("/Creator (Planning Insights)\n")

	// Creation date in PDF date format: D:YYYYMMDDHHmmSS
	dateStr := time.Now().UTC().Format("D:20060102150405Z")
	sb.WriteString(fmt.Sprintf("/CreationDate (%s)\n", dateStr))
	sb.WriteString(fmt.Sprintf("/ModDate (%s)\n", dateStr))

	sb.WriteString(">>")
	return sb.String()
}
