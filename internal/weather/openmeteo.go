package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/alexivanou/weathertrack/internal/config"
	"github.com/alexivanou/weathertrack/internal/model"
	"github.com/alexivanou/weathertrack/internal/upstream"
)

const (
	dailyVariables  = "weathercode,temperature_2m_max,temperature_2m_min,precipitation_sum"
	hourlyVariables = "temperature_2m,relative_humidity_2m,precipitation,weathercode"
)

// OpenMeteo fetches raw payloads from the open-meteo forecast and archive
// (ERA5) services. Payloads are returned verbatim so records keep the full
// upstream response alongside the derived daily summary.
type OpenMeteo struct {
	forecastClient *upstream.Client
	archiveClient  *upstream.Client
	forecastURL    string
	archiveURL     string
}

// NewOpenMeteo creates a client pair from upstream configuration
func NewOpenMeteo(cfg config.UpstreamConfig) *OpenMeteo {
	return &OpenMeteo{
		forecastClient: upstream.NewClient("forecast", cfg.ForecastTimeout, cfg.UserAgent),
		archiveClient:  upstream.NewClient("archive", cfg.ArchiveTimeout, cfg.UserAgent),
		forecastURL:    cfg.ForecastBaseURL,
		archiveURL:     cfg.ArchiveBaseURL,
	}
}

// FetchForecast returns the raw forecast payload for the given span
func (c *OpenMeteo) FetchForecast(ctx context.Context, lat, lon float64, startDate, endDate string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("latitude", formatCoord(lat))
	params.Set("longitude", formatCoord(lon))
	params.Set("timezone", "auto")
	params.Set("current_weather", "true")
	params.Set("daily", dailyVariables)
	params.Set("hourly", hourlyVariables)
	params.Set("start_date", startDate)
	params.Set("end_date", endDate)

	body, err := c.forecastClient.GetRaw(ctx, c.forecastURL, params)
	if err != nil {
		return nil, fmt.Errorf("%w: forecast: %v", model.ErrUpstreamFetch, err)
	}
	return body, nil
}

// FetchArchive returns the raw historical payload for the given span
func (c *OpenMeteo) FetchArchive(ctx context.Context, lat, lon float64, startDate, endDate string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("latitude", formatCoord(lat))
	params.Set("longitude", formatCoord(lon))
	params.Set("timezone", "auto")
	params.Set("daily", dailyVariables)
	params.Set("hourly", hourlyVariables)
	params.Set("start_date", startDate)
	params.Set("end_date", endDate)

	body, err := c.archiveClient.GetRaw(ctx, c.archiveURL, params)
	if err != nil {
		return nil, fmt.Errorf("%w: archive: %v", model.ErrUpstreamFetch, err)
	}
	return body, nil
}

// FetchCurrent returns current conditions only, without daily arrays
func (c *OpenMeteo) FetchCurrent(ctx context.Context, lat, lon float64) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("latitude", formatCoord(lat))
	params.Set("longitude", formatCoord(lon))
	params.Set("timezone", "auto")
	params.Set("current_weather", "true")

	body, err := c.forecastClient.GetRaw(ctx, c.forecastURL, params)
	if err != nil {
		return nil, fmt.Errorf("%w: current weather: %v", model.ErrUpstreamFetch, err)
	}
	return body, nil
}

// FetchFiveDay returns a forecast payload covering today plus four days
func (c *OpenMeteo) FetchFiveDay(ctx context.Context, lat, lon float64) (json.RawMessage, error) {
	today := time.Now().UTC()
	start := today.Format(DateLayout)
	end := today.AddDate(0, 0, 4).Format(DateLayout)
	return c.FetchForecast(ctx, lat, lon, start, end)
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
