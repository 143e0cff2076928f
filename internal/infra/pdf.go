package infra

// pdf.go — GST summary export using go-pdf/fpdf.
// The accounting role downloads this for the monthly filing: output tax
// split into CGST/SGST halves, input tax credit from vendor purchases,
// and the net payable figure.

import (
	"fmt"
	"os"
	"path/filepath"

	"sareepos/internal/dto"

	"github.com/go-pdf/fpdf"
)

// GenerateGSTReportPDF writes a one-page GST summary for the given range.
// storagePath is the directory where the PDF will be written (created if
// needed). Returns the absolute path to the generated file.
func GenerateGSTReportPDF(report *dto.GSTReportResponse, storeName, storeGSTIN, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("gst_%s_%s.pdf", report.From, report.To)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, storeName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	if storeGSTIN != "" {
		pdf.CellFormat(contentW, 6, "GSTIN: "+storeGSTIN, "", 1, "C", false, 0, "")
	}
	pdf.CellFormat(contentW, 6, "GST Summary", "", 1, "C", false, 0, "")
	pdf.CellFormat(contentW, 6, fmt.Sprintf("%s to %s", report.From, report.To), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(4)

	// ── Rows ─────────────────────────────────────────────────────────────────
	labelW := contentW * 0.6
	valueW := contentW * 0.4

	row := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 11)
		pdf.CellFormat(labelW, 8, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(valueW, 8, value, "", 1, "R", false, 0, "")
	}

	row("Output CGST (collected on sales)", report.OutputCGST.StringFixed(2), false)
	row("Output SGST (collected on sales)", report.OutputSGST.StringFixed(2), false)
	row("Input GST (paid on purchases)", report.InputGST.StringFixed(2), false)

	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)

	label := "Net GST payable"
	if report.NetPayable.IsNegative() {
		label = "Net GST credit carried forward"
	}
	row(label, report.NetPayable.Abs().StringFixed(2), true)

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write %s: %w", filePath, err)
	}
	return filePath, nil
}
