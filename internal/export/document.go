package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/alexivanou/weathertrack/internal/model"
	"github.com/go-pdf/fpdf"
)

// recordsToPDF renders a print-style paginated document: a header and
// batch summary, then one section per record. With more than three records
// in the batch, every record after the first starts on a fresh page.
// The core PDF fonts cannot encode the emoji glyphs, so daily lines carry
// the numeric weather code instead of the icon.
func recordsToPDF(records []model.Record, now time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(36, 36, 36)
	pdf.SetTitle("Weather Records Export", true)
	pdf.SetAuthor("WeatherTrack", true)
	pdf.SetSubject("Weather Data Export", true)
	pdf.SetCreationDate(now)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 24)
	pdf.CellFormat(0, 28, "Weather Records Export", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 16, fmt.Sprintf("Generated on %s at %s", now.Format("2006-01-02"), now.Format("15:04:05")), "", 1, "C", false, 0, "")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "BU", 14)
	pdf.CellFormat(0, 18, "Summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 16, fmt.Sprintf("Total Records: %d", len(records)), "", 1, "L", false, 0, "")
	pdf.Ln(12)

	for i, r := range records {
		if i > 0 && len(records) > 3 {
			pdf.AddPage()
		}

		pdf.SetFont("Helvetica", "BU", 16)
		pdf.CellFormat(0, 20, fmt.Sprintf("Record #%d", r.ID), "", 1, "L", false, 0, "")
		pdf.Ln(4)

		pdf.SetFont("Helvetica", "", 12)
		pdf.CellFormat(0, 15, tr(fmt.Sprintf("Location: %s", r.ResolvedName)), "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 15, fmt.Sprintf("Coordinates: %s", coordinates(r)), "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 15, fmt.Sprintf("Date Range: %s to %s", r.StartDate, r.EndDate), "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 15, fmt.Sprintf("Weather Source: %s", r.Source), "", 1, "L", false, 0, "")
		pdf.Ln(6)

		daily := dailyRows(r)
		if len(daily) > 0 {
			pdf.SetFont("Helvetica", "U", 12)
			pdf.CellFormat(0, 15, "Daily Weather Summary:", "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 12)
			pdf.Ln(4)

			for _, d := range daily {
				line := fmt.Sprintf("  %s: [%s] Min: %s°C, Max: %s°C", d.Date, codeOr(d.WeatherCode), numOr(d.TMin), numOr(d.TMax))
				pdf.CellFormat(0, 14, tr(line), "", 1, "L", false, 0, "")
				if d.Precip != nil && *d.Precip > 0 {
					pdf.CellFormat(0, 14, tr(fmt.Sprintf("    Precipitation: %smm", numOr(d.Precip))), "", 1, "L", false, 0, "")
				}
			}
		}

		pdf.Ln(12)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
