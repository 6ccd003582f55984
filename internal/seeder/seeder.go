package seeder

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/alexivanou/weathertrack/internal/model"
	"github.com/alexivanou/weathertrack/internal/repository"
	"github.com/alexivanou/weathertrack/internal/weather"
)

// SeedRecord is one entry of a seed fixture file. It carries a canned
// weather snapshot so seeding never touches the upstream APIs.
type SeedRecord struct {
	InputText    *string                 `json:"input_text"`
	ResolvedName string                  `json:"resolved_name"`
	Latitude     float64                 `json:"latitude"`
	Longitude    float64                 `json:"longitude"`
	StartDate    string                  `json:"start_date"`
	EndDate      string                  `json:"end_date"`
	Source       string                  `json:"source"`
	DailySummary []model.DailySummaryRow `json:"daily_summary"`
}

// LoadFile reads and validates a seed fixture
func LoadFile(path string) ([]SeedRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var records []SeedRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	for i, r := range records {
		if r.ResolvedName == "" {
			return nil, fmt.Errorf("seed record %d: resolved_name is required", i)
		}
		if err := weather.ValidateRange(r.StartDate, r.EndDate); err != nil {
			return nil, fmt.Errorf("seed record %d: %w", i, err)
		}
	}
	return records, nil
}

// Import inserts every seed record through the repository
func Import(ctx context.Context, repo repository.RecordRepository, records []SeedRecord) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	for i, r := range records {
		source := r.Source
		if source == "" {
			source = model.SourceArchive
		}

		data := &model.WeatherData{
			Latitude:     r.Latitude,
			Longitude:    r.Longitude,
			DailySummary: r.DailySummary,
		}
		weatherJSON, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("seed record %d: %w", i, err)
		}

		q := &model.Query{
			InputText:    r.InputText,
			ResolvedName: r.ResolvedName,
			Latitude:     r.Latitude,
			Longitude:    r.Longitude,
			StartDate:    r.StartDate,
			EndDate:      r.EndDate,
			Source:       source,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if _, err := repo.Insert(ctx, q, weatherJSON); err != nil {
			return fmt.Errorf("seed record %d: %w", i, err)
		}
	}
	return nil
}
