package export

import (
	"encoding/xml"
	"strconv"
	"time"

	"github.com/alexivanou/weathertrack/internal/model"
)

type xmlExport struct {
	XMLName  xml.Name    `xml:"weather_records"`
	Metadata xmlMetadata `xml:"metadata"`
	Records  []xmlRecord `xml:"record"`
}

type xmlMetadata struct {
	ExportDate   string `xml:"export_date"`
	TotalRecords int    `xml:"total_records"`
	GeneratedBy  string `xml:"generated_by"`
}

type xmlRecord struct {
	ID            int64          `xml:"id"`
	Location      xmlLocation    `xml:"location"`
	Coordinates   xmlCoordinates `xml:"coordinates"`
	DateRange     xmlDateRange   `xml:"date_range"`
	WeatherSource string         `xml:"weather_source"`
	CreatedAt     string         `xml:"created_at"`
	UpdatedAt     string         `xml:"updated_at"`
	DailySummary  xmlDaily       `xml:"daily_summary"`
}

type xmlLocation struct {
	Name      string `xml:"name"`
	InputText string `xml:"input_text,omitempty"`
}

type xmlCoordinates struct {
	Latitude  float64 `xml:"latitude"`
	Longitude float64 `xml:"longitude"`
}

type xmlDateRange struct {
	StartDate string `xml:"start_date"`
	EndDate   string `xml:"end_date"`
}

type xmlDaily struct {
	Days []xmlDay `xml:"day"`
}

type xmlDay struct {
	Date          string         `xml:"date"`
	Temperature   xmlTemperature `xml:"temperature"`
	Weather       xmlWeather     `xml:"weather"`
	Precipitation string         `xml:"precipitation,omitempty"`
}

type xmlTemperature struct {
	Min string `xml:"min"`
	Max string `xml:"max"`
}

type xmlWeather struct {
	Code string `xml:"code"`
	Icon string `xml:"icon"`
}

// recordsToXML renders records with a metadata block up front. Absent
// numeric fields render as an explicit "N/A" marker rather than an empty
// element.
func recordsToXML(records []model.Record, now time.Time) ([]byte, error) {
	doc := xmlExport{
		Metadata: xmlMetadata{
			ExportDate:   now.Format(time.RFC3339),
			TotalRecords: len(records),
			GeneratedBy:  "WeatherTrack Export System",
		},
		Records: make([]xmlRecord, 0, len(records)),
	}

	for _, r := range records {
		rec := xmlRecord{
			ID:            r.ID,
			Location:      xmlLocation{Name: r.ResolvedName},
			Coordinates:   xmlCoordinates{Latitude: r.Latitude, Longitude: r.Longitude},
			DateRange:     xmlDateRange{StartDate: r.StartDate, EndDate: r.EndDate},
			WeatherSource: r.Source,
			CreatedAt:     r.CreatedAt,
			UpdatedAt:     r.UpdatedAt,
		}
		if r.InputText != nil {
			rec.Location.InputText = *r.InputText
		}

		for _, d := range dailyRows(r) {
			day := xmlDay{
				Date:        d.Date,
				Temperature: xmlTemperature{Min: numOr(d.TMin), Max: numOr(d.TMax)},
				Weather:     xmlWeather{Code: codeOr(d.WeatherCode), Icon: d.Icon},
			}
			if d.Precip != nil && *d.Precip > 0 {
				day.Precipitation = numOr(d.Precip)
			}
			rec.DailySummary.Days = append(rec.DailySummary.Days, day)
		}

		doc.Records = append(doc.Records, rec)
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}

func codeOr(code *int) string {
	if code == nil {
		return notAvailable
	}
	return strconv.Itoa(*code)
}
