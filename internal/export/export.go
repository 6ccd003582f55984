// Package export renders stored weather records into the five supported
// output representations: JSON, CSV, XML, Markdown and PDF.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexivanou/weathertrack/internal/model"
)

const notAvailable = "N/A"

// Result is a rendered export ready to be served as an attachment
type Result struct {
	Data        []byte
	ContentType string
	Filename    string
}

// Engine renders record lists into export documents
type Engine struct {
	now func() time.Time
}

// NewEngine creates an export engine
func NewEngine() *Engine {
	return &Engine{now: time.Now}
}

// Export renders the records in the requested format. singleID carries the
// record id when the caller exported exactly one record by id; it only
// affects the suggested filename. An empty record list is a valid,
// well-formed document in every format.
func (e *Engine) Export(records []model.Record, format string, singleID *int64) (*Result, error) {
	now := e.now().UTC()
	timestamp := strings.ReplaceAll(now.Format("2006-01-02T15:04:05"), ":", "-")

	var base string
	if singleID != nil {
		base = fmt.Sprintf("weather-record-%d-%s", *singleID, timestamp)
	} else {
		base = fmt.Sprintf("weather-records-%d-%s", len(records), timestamp)
	}

	switch format {
	case "json":
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return nil, err
		}
		return &Result{Data: data, ContentType: "application/json", Filename: base + ".json"}, nil
	case "csv":
		data, err := recordsToCSV(records)
		if err != nil {
			return nil, err
		}
		return &Result{Data: data, ContentType: "text/csv; charset=utf-8", Filename: base + ".csv"}, nil
	case "xml":
		data, err := recordsToXML(records, now)
		if err != nil {
			return nil, err
		}
		return &Result{Data: data, ContentType: "application/xml; charset=utf-8", Filename: base + ".xml"}, nil
	case "md", "markdown":
		data := recordsToMarkdown(records, now)
		return &Result{Data: data, ContentType: "text/markdown; charset=utf-8", Filename: base + ".md"}, nil
	case "pdf":
		data, err := recordsToPDF(records, now)
		if err != nil {
			return nil, err
		}
		return &Result{Data: data, ContentType: "application/pdf", Filename: base + ".pdf"}, nil
	default:
		return nil, fmt.Errorf("%w: %q, use json,csv,xml,md,pdf", model.ErrUnsupportedFormat, format)
	}
}

func recordsToCSV(records []model.Record) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"ID", "Location Name", "Coordinates", "Date Range", "Weather Source", "Daily Summary", "Created", "Updated"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, r := range records {
		entries := make([]string, 0, len(dailyRows(r)))
		for _, d := range dailyRows(r) {
			entries = append(entries, dailyEntry(d))
		}
		row := []string{
			strconv.FormatInt(r.ID, 10),
			r.ResolvedName,
			coordinates(r),
			fmt.Sprintf("%s to %s", r.StartDate, r.EndDate),
			r.Source,
			strings.Join(entries, "; "),
			dateOnly(r.CreatedAt),
			dateOnly(r.UpdatedAt),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func recordsToMarkdown(records []model.Record, now time.Time) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "# Weather Records Export\n\n*Generated on %s at %s*\n\n",
		now.Format("2006-01-02"), now.Format("15:04:05"))
	fmt.Fprintf(&b, "## Summary\n\nTotal Records: **%d**\n\n", len(records))
	b.WriteString("| ID | Location | Coordinates | Date Range | Weather Source | Daily Summary |\n")
	b.WriteString("|---:|---|---|---|---|---|\n")

	for _, r := range records {
		entries := make([]string, 0, len(dailyRows(r)))
		for _, d := range dailyRows(r) {
			entries = append(entries, fmt.Sprintf("**%s**: %s", d.Date, strings.TrimPrefix(dailyEntry(d), d.Date+": ")))
		}
		fmt.Fprintf(&b, "| %d | **%s** | `%s` | %s → %s | %s | %s |\n",
			r.ID, r.ResolvedName, coordinates(r), r.StartDate, r.EndDate, r.Source,
			strings.Join(entries, "<br/>"))
	}

	return []byte(b.String())
}

// dailyEntry renders one summary row as
// "{date}: {icon} Min: {tmin}°C, Max: {tmax}°C[, Rain: {precip}mm]"
func dailyEntry(d model.DailySummaryRow) string {
	entry := fmt.Sprintf("%s: %s Min: %s°C, Max: %s°C", d.Date, d.Icon, numOr(d.TMin), numOr(d.TMax))
	if d.Precip != nil && *d.Precip > 0 {
		entry += fmt.Sprintf(", Rain: %smm", numOr(d.Precip))
	}
	return entry
}

func dailyRows(r model.Record) []model.DailySummaryRow {
	if r.Weather == nil {
		return nil
	}
	return r.Weather.DailySummary
}

func coordinates(r model.Record) string {
	return fmt.Sprintf("%.4f, %.4f", r.Latitude, r.Longitude)
}

func numOr(v *float64) string {
	if v == nil {
		return notAvailable
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// dateOnly trims a stored RFC3339 timestamp down to its calendar date
func dateOnly(ts string) string {
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return ts
	}
	return t.Format("2006-01-02")
}
