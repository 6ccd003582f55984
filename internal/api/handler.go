package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/alexivanou/weathertrack/internal/export"
	"github.com/alexivanou/weathertrack/internal/model"
	"github.com/alexivanou/weathertrack/internal/service"
	"github.com/gorilla/mux"
)

// Geocoder is the subset of the geocode resolver the handlers need.
type Geocoder interface {
	Resolve(ctx context.Context, inputText *string, latitude, longitude *float64) (model.Location, error)
	ReverseResolve(ctx context.Context, lat, lon float64) (model.Location, error)
}

// WeatherReader serves the passthrough forecast endpoints.
type WeatherReader interface {
	FetchCurrent(ctx context.Context, lat, lon float64) (json.RawMessage, error)
	FetchFiveDay(ctx context.Context, lat, lon float64) (json.RawMessage, error)
}

// Exporter renders a record batch into a downloadable document.
type Exporter interface {
	Export(records []model.Record, format string, singleID *int64) (*export.Result, error)
}

// VideoSearcher proxies video search queries.
type VideoSearcher interface {
	Search(ctx context.Context, query string) (json.RawMessage, error)
}

// Handler handles HTTP requests
type Handler struct {
	service  service.ServiceInterface
	geocoder Geocoder
	weather  WeatherReader
	exporter Exporter
	media    VideoSearcher
}

// NewHandler creates a new handler instance
func NewHandler(service service.ServiceInterface, geocoder Geocoder, weather WeatherReader, exporter Exporter, media VideoSearcher) *Handler {
	return &Handler{
		service:  service,
		geocoder: geocoder,
		weather:  weather,
		exporter: exporter,
		media:    media,
	}
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.HealthResponse{
		OK:  true,
		Now: time.Now().UTC().Format(time.RFC3339),
	})
}

// Geocode handles GET /geocode
func (h *Handler) Geocode(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	latStr := r.URL.Query().Get("lat")
	lonStr := r.URL.Query().Get("lon")

	var loc model.Location
	var err error

	switch {
	case latStr != "" && lonStr != "":
		lat, lon, perr := parseCoords(latStr, lonStr)
		if perr != nil {
			writeErrorMessage(w, http.StatusBadRequest, perr.Error())
			return
		}
		loc, err = h.geocoder.ReverseResolve(r.Context(), lat, lon)
	case q != "":
		loc, err = h.geocoder.Resolve(r.Context(), &q, nil, nil)
	default:
		writeErrorMessage(w, http.StatusBadRequest, "provide 'q' or 'lat' and 'lon'")
		return
	}

	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loc)
}

// CreateRecord handles POST /records
func (h *Handler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var req model.CreateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := h.service.CreateRecord(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, record)
}

// ListRecords handles GET /records
func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.ListRecords(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, err)
		return
	}

	if records == nil {
		records = []model.Record{}
	}
	writeJSON(w, http.StatusOK, records)
}

// GetRecord handles GET /records/{id}
func (h *Handler) GetRecord(w http.ResponseWriter, r *http.Request) {
	id, err := recordID(r)
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid record id")
		return
	}

	record, err := h.service.GetRecord(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// UpdateRecord handles PUT /records/{id}
func (h *Handler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	id, err := recordID(r)
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid record id")
		return
	}

	var req model.UpdateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := h.service.UpdateRecord(r.Context(), id, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// DeleteRecord handles DELETE /records/{id}
func (h *Handler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	id, err := recordID(r)
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid record id")
		return
	}

	if err := h.service.DeleteRecord(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.DeleteResponse{OK: true})
}

// ExportRecords handles GET /records/export
func (h *Handler) ExportRecords(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}

	var records []model.Record
	var singleID *int64

	if idStr := r.URL.Query().Get("id"); idStr != "" {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			writeErrorMessage(w, http.StatusBadRequest, "invalid record id")
			return
		}
		record, err := h.service.GetRecord(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		records = []model.Record{*record}
		singleID = &id
	} else {
		var err error
		records, err = h.service.ListRecords(r.Context(), "")
		if err != nil {
			writeError(w, err)
			return
		}
	}

	result, err := h.exporter.Export(records, format, singleID)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(result.Data)
}

// CurrentWeather handles GET /weather/current
func (h *Handler) CurrentWeather(w http.ResponseWriter, r *http.Request) {
	h.passthrough(w, r, h.weather.FetchCurrent)
}

// FiveDayForecast handles GET /weather/forecast5
func (h *Handler) FiveDayForecast(w http.ResponseWriter, r *http.Request) {
	h.passthrough(w, r, h.weather.FetchFiveDay)
}

func (h *Handler) passthrough(w http.ResponseWriter, r *http.Request, fetch func(context.Context, float64, float64) (json.RawMessage, error)) {
	lat, lon, err := parseCoords(r.URL.Query().Get("lat"), r.URL.Query().Get("lon"))
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	body, err := fetch(r.Context(), lat, lon)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Write(body)
}

// SearchVideos handles GET /media/videos
func (h *Handler) SearchVideos(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeErrorMessage(w, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}

	body, err := h.media.Search(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Write(body)
}

func recordID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

func parseCoords(latStr, lonStr string) (float64, float64, error) {
	if latStr == "" || lonStr == "" {
		return 0, 0, errors.New("parameters 'lat' and 'lon' are required")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return 0, 0, errors.New("invalid lat parameter")
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return 0, 0, errors.New("invalid lon parameter")
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, errors.New("invalid coordinates range")
	}
	return lat, lon, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeError maps domain errors onto HTTP statuses. Anything unrecognized
// is logged and reported as a generic 500.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		writeErrorMessage(w, http.StatusNotFound, "record not found")
	case errors.Is(err, model.ErrInvalidRange),
		errors.Is(err, model.ErrLocationNotFound),
		errors.Is(err, model.ErrUpstreamFetch),
		errors.Is(err, model.ErrUnsupportedFormat):
		writeErrorMessage(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("Internal error: %v", err)
		writeErrorMessage(w, http.StatusInternalServerError, "internal server error")
	}
}
