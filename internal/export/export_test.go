package export

import (
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/alexivanou/weathertrack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine() *Engine {
	e := NewEngine()
	e.now = func() time.Time {
		return time.Date(2024, 6, 1, 12, 30, 45, 0, time.UTC)
	}
	return e
}

func sampleRecords() []model.Record {
	input := "Dublin"
	tmin, tmax, precip := -1.5, 8.0, 4.2
	code := 63
	return []model.Record{
		{
			Query: model.Query{
				ID:           2,
				InputText:    &input,
				ResolvedName: "Dublin, Ireland",
				Latitude:     53.3498,
				Longitude:    -6.2603,
				StartDate:    "2024-01-01",
				EndDate:      "2024-01-02",
				Source:       model.SourceArchive,
				CreatedAt:    "2024-02-01T10:00:00Z",
				UpdatedAt:    "2024-02-02T11:00:00Z",
			},
			Weather: &model.WeatherData{
				Latitude:  53.3498,
				Longitude: -6.2603,
				DailySummary: []model.DailySummaryRow{
					{Date: "2024-01-01", TMin: &tmin, TMax: &tmax, Precip: &precip, Icon: "🌧️", WeatherCode: &code},
					{Date: "2024-01-02", Icon: "❓"},
				},
			},
		},
		{
			Query: model.Query{
				ID:           1,
				ResolvedName: "48.8566, 2.3522",
				Latitude:     48.8566,
				Longitude:    2.3522,
				StartDate:    "2024-03-01",
				EndDate:      "2024-03-03",
				Source:       model.SourceForecast,
				CreatedAt:    "2024-01-15T08:00:00Z",
				UpdatedAt:    "2024-01-15T08:00:00Z",
			},
		},
	}
}

func TestEngine_Export_JSON(t *testing.T) {
	e := newTestEngine()
	res, err := e.Export(sampleRecords(), "json", nil)
	require.NoError(t, err)

	assert.Equal(t, "application/json", res.ContentType)
	assert.Equal(t, "weather-records-2-2024-06-01T12-30-45.json", res.Filename)

	var decoded []model.Record
	require.NoError(t, json.Unmarshal(res.Data, &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "Dublin, Ireland", decoded[0].ResolvedName)
}

func TestEngine_Export_CSV(t *testing.T) {
	e := newTestEngine()
	res, err := e.Export(sampleRecords(), "csv", nil)
	require.NoError(t, err)

	assert.Equal(t, "text/csv; charset=utf-8", res.ContentType)
	assert.True(t, strings.HasSuffix(res.Filename, ".csv"))

	rows, err := csv.NewReader(strings.NewReader(string(res.Data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"ID", "Location Name", "Coordinates", "Date Range", "Weather Source", "Daily Summary", "Created", "Updated"}, rows[0])
	assert.Equal(t, "2", rows[1][0])
	assert.Equal(t, "53.3498, -6.2603", rows[1][2])
	assert.Equal(t, "2024-01-01 to 2024-01-02", rows[1][3])
	assert.Equal(t, "archive", rows[1][4])
	assert.Equal(t, "2024-01-01: 🌧️ Min: -1.5°C, Max: 8°C, Rain: 4.2mm; 2024-01-02: ❓ Min: N/A°C, Max: N/A°C", rows[1][5])
	assert.Equal(t, "2024-02-01", rows[1][6])

	// Record without a snapshot renders an empty daily cell
	assert.Equal(t, "", rows[2][5])
}

func TestEngine_Export_Markdown(t *testing.T) {
	e := newTestEngine()
	res, err := e.Export(sampleRecords(), "md", nil)
	require.NoError(t, err)

	assert.Equal(t, "text/markdown; charset=utf-8", res.ContentType)
	out := string(res.Data)
	assert.Contains(t, out, "# Weather Records Export")
	assert.Contains(t, out, "Total Records: **2**")
	assert.Contains(t, out, "| ID | Location | Coordinates | Date Range | Weather Source | Daily Summary |")
	assert.Contains(t, out, "**Dublin, Ireland**")
	assert.Contains(t, out, "`53.3498, -6.2603`")
	assert.Contains(t, out, "2024-03-01 → 2024-03-03")
	assert.Contains(t, out, "**2024-01-01**: 🌧️ Min: -1.5°C, Max: 8°C, Rain: 4.2mm<br/>**2024-01-02**:")
}

func TestEngine_Export_XML(t *testing.T) {
	e := newTestEngine()
	res, err := e.Export(sampleRecords(), "xml", nil)
	require.NoError(t, err)

	assert.Equal(t, "application/xml; charset=utf-8", res.ContentType)
	assert.True(t, strings.HasPrefix(string(res.Data), xml.Header))

	var decoded xmlExport
	require.NoError(t, xml.Unmarshal(res.Data, &decoded))
	assert.Equal(t, 2, decoded.Metadata.TotalRecords)
	require.Len(t, decoded.Records, 2)

	first := decoded.Records[0]
	assert.Equal(t, int64(2), first.ID)
	assert.Equal(t, "Dublin, Ireland", first.Location.Name)
	assert.Equal(t, "Dublin", first.Location.InputText)
	require.Len(t, first.DailySummary.Days, 2)
	assert.Equal(t, "-1.5", first.DailySummary.Days[0].Temperature.Min)
	assert.Equal(t, "63", first.DailySummary.Days[0].Weather.Code)
	// Absent numerics are explicit markers, not empty elements
	assert.Equal(t, "N/A", first.DailySummary.Days[1].Temperature.Min)
	assert.Equal(t, "N/A", first.DailySummary.Days[1].Weather.Code)
}

func TestEngine_Export_PDF(t *testing.T) {
	e := newTestEngine()
	res, err := e.Export(sampleRecords(), "pdf", nil)
	require.NoError(t, err)

	assert.Equal(t, "application/pdf", res.ContentType)
	assert.True(t, strings.HasSuffix(res.Filename, ".pdf"))
	assert.True(t, strings.HasPrefix(string(res.Data), "%PDF-"))
}

func TestEngine_Export_SingleRecordFilename(t *testing.T) {
	e := newTestEngine()
	records := sampleRecords()[:1]
	id := records[0].ID

	res, err := e.Export(records, "json", &id)
	require.NoError(t, err)
	assert.Equal(t, "weather-record-2-2024-06-01T12-30-45.json", res.Filename)
}

func TestEngine_Export_EmptyList(t *testing.T) {
	e := newTestEngine()

	for _, format := range []string{"json", "csv", "xml", "md", "pdf"} {
		t.Run(format, func(t *testing.T) {
			res, err := e.Export(nil, format, nil)
			require.NoError(t, err)
			assert.NotEmpty(t, res.Data)
			assert.Contains(t, res.Filename, "weather-records-0-")
		})
	}

	t.Run("json is a well-formed empty array", func(t *testing.T) {
		res, err := e.Export([]model.Record{}, "json", nil)
		require.NoError(t, err)
		var decoded []model.Record
		require.NoError(t, json.Unmarshal(res.Data, &decoded))
		assert.Empty(t, decoded)
	})

	t.Run("xml is parseable", func(t *testing.T) {
		res, err := e.Export(nil, "xml", nil)
		require.NoError(t, err)
		var decoded xmlExport
		require.NoError(t, xml.Unmarshal(res.Data, &decoded))
		assert.Zero(t, decoded.Metadata.TotalRecords)
	})

	t.Run("csv keeps its header row", func(t *testing.T) {
		res, err := e.Export(nil, "csv", nil)
		require.NoError(t, err)
		rows, err := csv.NewReader(strings.NewReader(string(res.Data))).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "ID", rows[0][0])
	})
}

func TestEngine_Export_UnsupportedFormat(t *testing.T) {
	e := newTestEngine()
	_, err := e.Export(sampleRecords(), "yaml", nil)
	assert.ErrorIs(t, err, model.ErrUnsupportedFormat)
}
