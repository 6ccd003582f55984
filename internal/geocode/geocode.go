// Package geocode resolves heterogeneous location input into canonical
// coordinates plus a display name, backed by Nominatim.
package geocode

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/alexivanou/weathertrack/internal/config"
	"github.com/alexivanou/weathertrack/internal/model"
	"github.com/alexivanou/weathertrack/internal/upstream"
)

// Resolver turns free-form text or explicit coordinates into a Location
type Resolver struct {
	client  *upstream.Client
	baseURL string
}

// NewResolver creates a resolver using the configured Nominatim endpoint
func NewResolver(cfg config.UpstreamConfig) *Resolver {
	return &Resolver{
		client:  upstream.NewClient("geocode", cfg.GeocodeTimeout, cfg.UserAgent),
		baseURL: strings.TrimRight(cfg.GeocodeBaseURL, "/"),
	}
}

type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

type reverseResult struct {
	DisplayName string `json:"display_name"`
}

// Resolve applies the location precedence rules, strictly in order:
// explicit numeric coordinates win, then text that parses as a coordinate
// pair, then a forward geocoding lookup on the text.
func (r *Resolver) Resolve(ctx context.Context, inputText *string, latitude, longitude *float64) (model.Location, error) {
	if latitude != nil && longitude != nil {
		return model.Location{
			Lat:  *latitude,
			Lon:  *longitude,
			Name: coordinateName(*latitude, *longitude),
		}, nil
	}

	text := ""
	if inputText != nil {
		text = *inputText
	}

	if lat, lon, ok := ParseCoordinateText(text); ok {
		return model.Location{
			Lat:  lat,
			Lon:  lon,
			Name: formatFloat(lat) + ", " + formatFloat(lon),
		}, nil
	}

	params := url.Values{}
	params.Set("q", text)
	params.Set("format", "json")
	params.Set("addressdetails", "1")
	params.Set("limit", "1")

	var results []searchResult
	if err := r.client.GetJSON(ctx, r.baseURL+"/search", params, &results); err != nil {
		return model.Location{}, fmt.Errorf("%w: %v", model.ErrUpstreamFetch, err)
	}
	if len(results) == 0 {
		return model.Location{}, fmt.Errorf("%w: %q", model.ErrLocationNotFound, text)
	}

	first := results[0]
	lat, err := strconv.ParseFloat(first.Lat, 64)
	if err != nil {
		return model.Location{}, fmt.Errorf("%w: bad latitude %q", model.ErrUpstreamFetch, first.Lat)
	}
	lon, err := strconv.ParseFloat(first.Lon, 64)
	if err != nil {
		return model.Location{}, fmt.Errorf("%w: bad longitude %q", model.ErrUpstreamFetch, first.Lon)
	}

	return model.Location{Lat: lat, Lon: lon, Name: first.DisplayName}, nil
}

// ReverseResolve looks up a display name for the given coordinates,
// falling back to a synthesized coordinate string when the service
// returns no name.
func (r *Resolver) ReverseResolve(ctx context.Context, lat, lon float64) (model.Location, error) {
	params := url.Values{}
	params.Set("lat", formatFloat(lat))
	params.Set("lon", formatFloat(lon))
	params.Set("format", "json")
	params.Set("zoom", "10")

	var result reverseResult
	if err := r.client.GetJSON(ctx, r.baseURL+"/reverse", params, &result); err != nil {
		return model.Location{}, fmt.Errorf("%w: %v", model.ErrUpstreamFetch, err)
	}

	name := result.DisplayName
	if name == "" {
		name = coordinateName(lat, lon)
	}
	return model.Location{Lat: lat, Lon: lon, Name: name}, nil
}

// ParseCoordinateText interprets text containing exactly two numeric tokens
// separated by whitespace and/or a comma as a lat/lon pair, e.g.
// "37.7749,-122.4194" or "37.7749 , -122.4194". Both tokens must fall within
// valid geographic bounds.
func ParseCoordinateText(input string) (float64, float64, bool) {
	fields := strings.FieldsFunc(strings.TrimSpace(input), func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) != 2 {
		return 0, 0, false
	}

	lat, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, 0, false
	}
	lon, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return 0, 0, false
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, false
	}
	return lat, lon, true
}

func coordinateName(lat, lon float64) string {
	return fmt.Sprintf("%.4f, %.4f", lat, lon)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
