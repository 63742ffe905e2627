// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"

	"codeberg.org/go-pdf/fpdf"

	"github.com/pdiddy/tract-engine/pkg/types"
)

const (
	labelColWidth = 110
	countColWidth = 40
	rowHeight     = 8
)

// WritePDF renders all fiber-count records as a single table on one PDF
// page and writes the document to path. Records render in input order.
func WritePDF(path string, records []types.FiberCount) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "Fiber Counts", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(labelColWidth, rowHeight, columns[0], "1", 0, "L", true, 0, "")
	pdf.CellFormat(countColWidth, rowHeight, columns[1], "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, r := range records {
		pdf.CellFormat(labelColWidth, rowHeight, r.Label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(countColWidth, rowHeight, countCell(r), "1", 1, "R", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("writing PDF report %s: %w", path, err)
	}
	return nil
}
