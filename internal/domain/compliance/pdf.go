package compliance

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

const dateLayout = "2006-01-02"

// RenderPDF writes a printable filing summary of the report and its items.
func RenderPDF(w io.Writer, r Report) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, r.Name)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	line := func(format string, args ...any) {
		pdf.Cell(0, 7, fmt.Sprintf(format, args...))
		pdf.Ln(6)
	}
	line("Type: %s", r.ReportType)
	if r.Authority != "" {
		line("Authority: %s", r.Authority)
	}
	line("Period: %s to %s", r.PeriodStart.Format(dateLayout), r.PeriodEnd.Format(dateLayout))
	line("Due: %s", r.DueDate.Format(dateLayout))
	line("Status: %s", r.Status)
	if r.ReferenceNumber != "" {
		line("Reference: %s", r.ReferenceNumber)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(130, 8, "Description", "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 8, "Amount", "1", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, it := range r.Items {
		pdf.CellFormat(130, 8, it.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 8, it.Amount.StringFixed(2), "1", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(130, 8, "Total", "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 8, r.Total.StringFixed(2), "1", 1, "R", false, 0, "")

	if r.Notes != "" {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 6, r.Notes, "", "L", false)
	}
	return pdf.Output(w)
}
