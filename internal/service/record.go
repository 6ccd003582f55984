package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexivanou/weathertrack/internal/model"
	"github.com/alexivanou/weathertrack/internal/repository"
	"github.com/alexivanou/weathertrack/internal/weather"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// RecordService orchestrates the create/update pipeline: validate before
// any I/O, resolve the location, partition the date span around today,
// aggregate weather and persist the result as one record.
type RecordService struct {
	repo       repository.RecordRepository
	geocoder   Geocoder
	aggregator WeatherAggregator
	validate   *validator.Validate
	logger     *zap.Logger
	now        func() time.Time
}

// NewRecordService creates a new record service
func NewRecordService(
	repo repository.RecordRepository,
	geocoder Geocoder,
	aggregator WeatherAggregator,
	logger *zap.Logger,
) *RecordService {
	return &RecordService{
		repo:       repo,
		geocoder:   geocoder,
		aggregator: aggregator,
		validate:   validator.New(),
		logger:     logger,
		now:        time.Now,
	}
}

// CreateRecord resolves, aggregates and persists a new weather record
func (s *RecordService) CreateRecord(ctx context.Context, req model.CreateRecordRequest) (*model.Record, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidRange, err)
	}
	if err := weather.ValidateRange(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	loc, err := s.geocoder.Resolve(ctx, req.InputText, req.Latitude, req.Longitude)
	if err != nil {
		return nil, err
	}

	part := weather.SplitRange(req.StartDate, req.EndDate, s.today())
	data, source, err := s.aggregator.Aggregate(ctx, loc.Lat, loc.Lon, part)
	if err != nil {
		return nil, err
	}

	weatherJSON, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode weather payload: %w", err)
	}

	nowISO := s.now().UTC().Format(time.RFC3339Nano)
	q := &model.Query{
		InputText:    req.InputText,
		ResolvedName: loc.Name,
		Latitude:     loc.Lat,
		Longitude:    loc.Lon,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Source:       source,
		CreatedAt:    nowISO,
		UpdatedAt:    nowISO,
	}

	id, err := s.repo.Insert(ctx, q, weatherJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to persist record: %w", err)
	}

	s.logger.Info("record created",
		zap.Int64("id", id),
		zap.String("location", loc.Name),
		zap.String("source", source),
	)
	return s.repo.GetByID(ctx, id)
}

// GetRecord returns one record with its current snapshot
func (s *RecordService) GetRecord(ctx context.Context, id int64) (*model.Record, error) {
	return s.repo.GetByID(ctx, id)
}

// ListRecords returns stored records newest-first, optionally filtered by a
// case-insensitive substring match against the resolved name or input text
func (s *RecordService) ListRecords(ctx context.Context, search string) ([]model.Record, error) {
	return s.repo.List(ctx, search)
}

// UpdateRecord merges the supplied fields over the stored record,
// re-resolves the location when any location field changed, re-aggregates
// weather for the resulting span and replaces the snapshot.
func (s *RecordService) UpdateRecord(ctx context.Context, id int64, req model.UpdateRecordRequest) (*model.Record, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidRange, err)
	}

	newStart := existing.StartDate
	if req.StartDate != nil {
		newStart = *req.StartDate
	}
	newEnd := existing.EndDate
	if req.EndDate != nil {
		newEnd = *req.EndDate
	}
	if err := weather.ValidateRange(newStart, newEnd); err != nil {
		return nil, err
	}

	inputText := existing.InputText
	if req.InputText != nil {
		inputText = req.InputText
	}

	loc := model.Location{Lat: existing.Latitude, Lon: existing.Longitude, Name: existing.ResolvedName}
	if req.HasLocationChange() {
		// Only the supplied fields drive re-resolution; a lone coordinate
		// is merged with its stored counterpart
		lat, lon := req.Latitude, req.Longitude
		if lat != nil || lon != nil {
			if lat == nil {
				v := existing.Latitude
				lat = &v
			}
			if lon == nil {
				v := existing.Longitude
				lon = &v
			}
		}
		loc, err = s.geocoder.Resolve(ctx, inputText, lat, lon)
		if err != nil {
			return nil, err
		}
	}

	part := weather.SplitRange(newStart, newEnd, s.today())
	data, source, err := s.aggregator.Aggregate(ctx, loc.Lat, loc.Lon, part)
	if err != nil {
		return nil, err
	}

	weatherJSON, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode weather payload: %w", err)
	}

	q := &model.Query{
		ID:           id,
		InputText:    inputText,
		ResolvedName: loc.Name,
		Latitude:     loc.Lat,
		Longitude:    loc.Lon,
		StartDate:    newStart,
		EndDate:      newEnd,
		Source:       source,
		CreatedAt:    existing.CreatedAt,
		UpdatedAt:    s.now().UTC().Format(time.RFC3339Nano),
	}

	if err := s.repo.Update(ctx, q, weatherJSON); err != nil {
		return nil, fmt.Errorf("failed to update record: %w", err)
	}

	s.logger.Info("record updated", zap.Int64("id", id), zap.String("source", source))
	return s.repo.GetByID(ctx, id)
}

// DeleteRecord removes a record and its snapshot
func (s *RecordService) DeleteRecord(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *RecordService) today() string {
	return s.now().UTC().Format(weather.DateLayout)
}
