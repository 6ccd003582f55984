package service

import (
	"context"

	"github.com/alexivanou/weathertrack/internal/model"
	"github.com/alexivanou/weathertrack/internal/weather"
)

// ServiceInterface defines the record service interface for testing
type ServiceInterface interface {
	CreateRecord(ctx context.Context, req model.CreateRecordRequest) (*model.Record, error)
	GetRecord(ctx context.Context, id int64) (*model.Record, error)
	ListRecords(ctx context.Context, search string) ([]model.Record, error)
	UpdateRecord(ctx context.Context, id int64, req model.UpdateRecordRequest) (*model.Record, error)
	DeleteRecord(ctx context.Context, id int64) error
}

// Geocoder resolves heterogeneous location input into coordinates
type Geocoder interface {
	Resolve(ctx context.Context, inputText *string, latitude, longitude *float64) (model.Location, error)
}

// WeatherAggregator fetches and merges weather for a partitioned date span
type WeatherAggregator interface {
	Aggregate(ctx context.Context, lat, lon float64, part weather.Partition) (*model.WeatherData, string, error)
}
