package weather

import (
	"context"
	"sync"

	"github.com/alexivanou/weathertrack/internal/model"
	"go.uber.org/zap"
)

// Aggregator merges archive and forecast data for a partitioned date span
// into a single chronological daily view.
type Aggregator struct {
	meteo  *OpenMeteo
	logger *zap.Logger
}

// NewAggregator creates an aggregator over the open-meteo client pair
func NewAggregator(meteo *OpenMeteo, logger *zap.Logger) *Aggregator {
	return &Aggregator{meteo: meteo, logger: logger}
}

// Aggregate fetches from the source(s) the partition requires and merges
// the result. When both sub-spans are present the two fetches run
// concurrently and a failure in either aborts the whole merge; there is no
// partial-success payload. The returned source tag records which fetches
// occurred. Archive rows always precede forecast rows, which keeps the
// summary chronological because the past sub-span precedes the
// present/future one.
func (a *Aggregator) Aggregate(ctx context.Context, lat, lon float64, part Partition) (*model.WeatherData, string, error) {
	data := &model.WeatherData{Latitude: lat, Longitude: lon}

	switch {
	case part.Past != nil && part.PresentFuture != nil:
		var (
			wg      sync.WaitGroup
			archErr error
			foreErr error
		)
		wg.Add(2)
		go func() {
			defer wg.Done()
			data.Archive, archErr = a.meteo.FetchArchive(ctx, lat, lon, part.Past.Start, part.Past.End)
		}()
		go func() {
			defer wg.Done()
			data.Forecast, foreErr = a.meteo.FetchForecast(ctx, lat, lon, part.PresentFuture.Start, part.PresentFuture.End)
		}()
		wg.Wait()

		if archErr != nil {
			a.logger.Warn("archive fetch failed", zap.Error(archErr))
			return nil, "", archErr
		}
		if foreErr != nil {
			a.logger.Warn("forecast fetch failed", zap.Error(foreErr))
			return nil, "", foreErr
		}

		data.DailySummary = append(SummarizeDaily(data.Archive), SummarizeDaily(data.Forecast)...)
		return data, model.SourceArchiveForecast, nil

	case part.Past != nil:
		payload, err := a.meteo.FetchArchive(ctx, lat, lon, part.Past.Start, part.Past.End)
		if err != nil {
			a.logger.Warn("archive fetch failed", zap.Error(err))
			return nil, "", err
		}
		data.Archive = payload
		data.DailySummary = SummarizeDaily(payload)
		return data, model.SourceArchive, nil

	default:
		span := part.PresentFuture
		payload, err := a.meteo.FetchForecast(ctx, lat, lon, span.Start, span.End)
		if err != nil {
			a.logger.Warn("forecast fetch failed", zap.Error(err))
			return nil, "", err
		}
		data.Forecast = payload
		data.DailySummary = SummarizeDaily(payload)
		return data, model.SourceForecast, nil
	}
}
