package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/noah-isme/timetable-api/internal/dto"
)

// TimetablePDFExporter renders a solved timetable's D×S matrix as a
// printable grid, landscape-oriented so a week's worth of slots fits one
// page — adapted from PDFExporter's generic Dataset table renderer to the
// fixed day/slot layout a timetable matrix needs.
type TimetablePDFExporter struct{}

// NewTimetablePDFExporter constructs a TimetablePDFExporter.
func NewTimetablePDFExporter() *TimetablePDFExporter {
	return &TimetablePDFExporter{}
}

// Render draws one row per day and one column per slot, each cell showing
// "subject (batch/faculty)" or left blank when the slot is empty; the room
// is not printed.
func (e *TimetablePDFExporter) Render(matrix []dto.MatrixRowView, title string) ([]byte, error) {
	if len(matrix) == 0 {
		return nil, fmt.Errorf("pdf requires at least one timetable row")
	}
	slotsPerDay := len(matrix[0].Slots)
	if slotsPerDay == 0 {
		return nil, fmt.Errorf("pdf requires at least one slot per day")
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(8, 12, 8)
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
		pdf.Ln(3)
	}

	dayColWidth := 22.0
	slotColWidth := (277.0 - dayColWidth) / float64(slotsPerDay)

	pdf.SetFont("Arial", "B", 8)
	pdf.CellFormat(dayColWidth, 8, "Day", "1", 0, "C", false, 0, "")
	for i := 0; i < slotsPerDay; i++ {
		pdf.CellFormat(slotColWidth, 8, fmt.Sprintf("Slot %d", i+1), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 7)
	for _, row := range matrix {
		pdf.CellFormat(dayColWidth, 14, row.Day, "1", 0, "C", false, 0, "")
		for _, cell := range row.Slots {
			pdf.CellFormat(slotColWidth, 14, cellText(cell), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render timetable pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func cellText(cell *dto.MatrixCellView) string {
	if cell == nil {
		return ""
	}
	return fmt.Sprintf("%s (%s/%s)", cell.Subject, cell.Batch, cell.Faculty)
}
