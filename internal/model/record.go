package model

import "encoding/json"

// Query represents one saved weather search in the database
type Query struct {
	ID           int64   `db:"id" json:"id"`
	InputText    *string `db:"input_text" json:"input_text"`
	ResolvedName string  `db:"resolved_name" json:"resolved_name"`
	Latitude     float64 `db:"latitude" json:"latitude"`
	Longitude    float64 `db:"longitude" json:"longitude"`
	StartDate    string  `db:"start_date" json:"start_date"`
	EndDate      string  `db:"end_date" json:"end_date"`
	Source       string  `db:"source" json:"source"`
	CreatedAt    string  `db:"created_at" json:"created_at"`
	UpdatedAt    string  `db:"updated_at" json:"updated_at"`
}

// Weather source tags recorded on a Query
const (
	SourceForecast        = "forecast"
	SourceArchive         = "archive"
	SourceArchiveForecast = "archive+forecast"
)

// Record is a Query together with its current weather snapshot
type Record struct {
	Query
	Weather *WeatherData `json:"weather"`
}

// WeatherData is the merged weather payload persisted for one Query.
// Archive and Forecast hold the raw upstream responses verbatim; either
// may be absent depending on how the date span fell around today.
type WeatherData struct {
	Latitude     float64           `json:"latitude"`
	Longitude    float64           `json:"longitude"`
	Archive      json.RawMessage   `json:"archive,omitempty"`
	Forecast     json.RawMessage   `json:"forecast,omitempty"`
	DailySummary []DailySummaryRow `json:"daily_summary"`
}

// DailySummaryRow condenses one calendar day of upstream data.
// Pointer fields are nil when the upstream payload lacked the value.
type DailySummaryRow struct {
	Date        string   `json:"date"`
	TMin        *float64 `json:"tmin"`
	TMax        *float64 `json:"tmax"`
	Precip      *float64 `json:"precip"`
	Icon        string   `json:"icon"`
	WeatherCode *int     `json:"weathercode"`
}

// Location is a resolved geographic point with a display name
type Location struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Name string  `json:"name"`
}
