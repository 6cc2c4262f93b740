package gallery

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/stillpage/gallerygen/internal/extract"
)

// WriteContactSheet renders a minimal PDF index of the album: title, source
// link, and one clickable line per image. Layout is intentionally simple.
func WriteContactSheet(images []extract.Image, albumURL, albumTitle, outPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, albumTitle, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.WriteLinkString(5, albumURL, albumURL)
	pdf.Ln(7)
	pdf.CellFormat(0, 6, fmt.Sprintf("%d photos", len(images)), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "", 8)
	for i, img := range images {
		label := fmt.Sprintf("%d. %s", i+1, img.BaseURL)
		if img.Width > 0 && img.Height > 0 {
			label = fmt.Sprintf("%s (%dx%d)", label, img.Width, img.Height)
		}
		pdf.WriteLinkString(4.5, label, img.DisplayURL)
		pdf.Ln(4.5)
	}

	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write contact sheet: %w", err)
	}
	return nil
}
