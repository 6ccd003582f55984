package weather

import (
	"encoding/json"

	"github.com/alexivanou/weathertrack/internal/model"
)

// dailyEnvelope picks out only the daily block of an open-meteo payload.
// Every array is optional upstream, so each is decoded independently.
type dailyEnvelope struct {
	Daily struct {
		Time        []string   `json:"time"`
		WeatherCode []*int     `json:"weathercode"`
		TMax        []*float64 `json:"temperature_2m_max"`
		TMin        []*float64 `json:"temperature_2m_min"`
		Precip      []*float64 `json:"precipitation_sum"`
	} `json:"daily"`
}

// SummarizeDaily derives one summary row per calendar day present in the
// payload's daily arrays. Missing upstream fields become nil values, never
// a panic; the icon falls back to the unknown glyph for absent codes.
func SummarizeDaily(payload json.RawMessage) []model.DailySummaryRow {
	if len(payload) == 0 {
		return nil
	}

	var env dailyEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil
	}

	d := env.Daily
	rows := make([]model.DailySummaryRow, 0, len(d.Time))
	for i, date := range d.Time {
		code := intAt(d.WeatherCode, i)
		rows = append(rows, model.DailySummaryRow{
			Date:        date,
			TMin:        floatAt(d.TMin, i),
			TMax:        floatAt(d.TMax, i),
			Precip:      floatAt(d.Precip, i),
			Icon:        IconForCode(code),
			WeatherCode: code,
		})
	}
	return rows
}

func floatAt(arr []*float64, i int) *float64 {
	if i >= len(arr) {
		return nil
	}
	return arr[i]
}

func intAt(arr []*int, i int) *int {
	if i >= len(arr) {
		return nil
	}
	return arr[i]
}
