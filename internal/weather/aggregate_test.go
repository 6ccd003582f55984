package weather

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alexivanou/weathertrack/internal/config"
	"github.com/alexivanou/weathertrack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func dailyPayload(dates ...string) string {
	out := `{"daily":{"time":[`
	for i, d := range dates {
		if i > 0 {
			out += ","
		}
		out += fmt.Sprintf("%q", d)
	}
	return out + `],"temperature_2m_max":[],"temperature_2m_min":[]}}`
}

func newTestAggregator(t *testing.T, archive, forecast http.HandlerFunc) *Aggregator {
	t.Helper()
	archiveSrv := httptest.NewServer(archive)
	forecastSrv := httptest.NewServer(forecast)
	t.Cleanup(archiveSrv.Close)
	t.Cleanup(forecastSrv.Close)

	meteo := NewOpenMeteo(config.UpstreamConfig{
		ForecastBaseURL: forecastSrv.URL,
		ArchiveBaseURL:  archiveSrv.URL,
		ForecastTimeout: 2 * time.Second,
		ArchiveTimeout:  2 * time.Second,
	})
	return NewAggregator(meteo, zap.NewNop())
}

func TestAggregator_BothSpans(t *testing.T) {
	var archiveCalls, forecastCalls int32

	agg := newTestAggregator(t,
		func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&archiveCalls, 1)
			assert.Equal(t, "2024-01-01", r.URL.Query().Get("start_date"))
			assert.Equal(t, "2024-01-02", r.URL.Query().Get("end_date"))
			w.Write([]byte(dailyPayload("2024-01-01", "2024-01-02")))
		},
		func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&forecastCalls, 1)
			assert.Equal(t, "2024-01-03", r.URL.Query().Get("start_date"))
			assert.Equal(t, "2024-01-05", r.URL.Query().Get("end_date"))
			w.Write([]byte(dailyPayload("2024-01-03", "2024-01-04", "2024-01-05")))
		},
	)

	part := Partition{
		Past:          &DateSpan{Start: "2024-01-01", End: "2024-01-02"},
		PresentFuture: &DateSpan{Start: "2024-01-03", End: "2024-01-05"},
	}
	data, source, err := agg.Aggregate(context.Background(), 52.52, 13.405, part)
	require.NoError(t, err)

	assert.Equal(t, model.SourceArchiveForecast, source)
	assert.Equal(t, int32(1), atomic.LoadInt32(&archiveCalls))
	assert.Equal(t, int32(1), atomic.LoadInt32(&forecastCalls))
	assert.NotEmpty(t, data.Archive)
	assert.NotEmpty(t, data.Forecast)

	// Archive days first, forecast days after; chronological overall
	require.Len(t, data.DailySummary, 5)
	for i, want := range []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05"} {
		assert.Equal(t, want, data.DailySummary[i].Date)
	}
}

func TestAggregator_PastOnly(t *testing.T) {
	agg := newTestAggregator(t,
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(dailyPayload("2024-01-01")))
		},
		func(w http.ResponseWriter, r *http.Request) {
			t.Error("forecast source must not be called for a past-only span")
		},
	)

	part := Partition{Past: &DateSpan{Start: "2024-01-01", End: "2024-01-01"}}
	data, source, err := agg.Aggregate(context.Background(), 52.52, 13.405, part)
	require.NoError(t, err)

	assert.Equal(t, model.SourceArchive, source)
	assert.NotEmpty(t, data.Archive)
	assert.Empty(t, data.Forecast)
	assert.Len(t, data.DailySummary, 1)
}

func TestAggregator_FutureOnly(t *testing.T) {
	agg := newTestAggregator(t,
		func(w http.ResponseWriter, r *http.Request) {
			t.Error("archive source must not be called for a future-only span")
		},
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(dailyPayload("2024-06-01", "2024-06-02")))
		},
	)

	part := Partition{PresentFuture: &DateSpan{Start: "2024-06-01", End: "2024-06-02"}}
	data, source, err := agg.Aggregate(context.Background(), 52.52, 13.405, part)
	require.NoError(t, err)

	assert.Equal(t, model.SourceForecast, source)
	assert.Empty(t, data.Archive)
	assert.NotEmpty(t, data.Forecast)
	assert.Len(t, data.DailySummary, 2)
}

// A failure in either fetch aborts the whole merge; no partial payload
func TestAggregator_EitherFailureAbortsMerge(t *testing.T) {
	t.Run("archive fails", func(t *testing.T) {
		agg := newTestAggregator(t,
			func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(dailyPayload("2024-01-03")))
			},
		)
		part := Partition{
			Past:          &DateSpan{Start: "2024-01-01", End: "2024-01-02"},
			PresentFuture: &DateSpan{Start: "2024-01-03", End: "2024-01-03"},
		}
		data, _, err := agg.Aggregate(context.Background(), 1, 2, part)
		assert.ErrorIs(t, err, model.ErrUpstreamFetch)
		assert.Nil(t, data)
	})

	t.Run("forecast fails", func(t *testing.T) {
		agg := newTestAggregator(t,
			func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(dailyPayload("2024-01-01")))
			},
			func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
		)
		part := Partition{
			Past:          &DateSpan{Start: "2024-01-01", End: "2024-01-02"},
			PresentFuture: &DateSpan{Start: "2024-01-03", End: "2024-01-03"},
		}
		data, _, err := agg.Aggregate(context.Background(), 1, 2, part)
		assert.ErrorIs(t, err, model.ErrUpstreamFetch)
		assert.Nil(t, data)
	})
}
