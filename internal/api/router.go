package api

import (
	"github.com/alexivanou/weathertrack/internal/service"
	"github.com/alexivanou/weathertrack/internal/stats"
	"github.com/gorilla/mux"
)

// NewRouter creates a new HTTP router
func NewRouter(svc service.ServiceInterface, geocoder Geocoder, weather WeatherReader, exporter Exporter, media VideoSearcher, statsCollector *stats.Collector) *mux.Router {
	handler := NewHandler(svc, geocoder, weather, exporter, media)
	statsHandler := NewStatsHandler(statsCollector)

	router := mux.NewRouter()
	router.Use(corsMiddleware)

	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")
	router.HandleFunc("/geocode", handler.Geocode).Methods("GET")

	// The export route must be registered before the {id} routes so
	// "export" is never parsed as a record id.
	router.HandleFunc("/records/export", handler.ExportRecords).Methods("GET")
	router.HandleFunc("/records", handler.CreateRecord).Methods("POST")
	router.HandleFunc("/records", handler.ListRecords).Methods("GET")
	router.HandleFunc("/records/{id}", handler.GetRecord).Methods("GET")
	router.HandleFunc("/records/{id}", handler.UpdateRecord).Methods("PUT")
	router.HandleFunc("/records/{id}", handler.DeleteRecord).Methods("DELETE")

	router.HandleFunc("/weather/current", handler.CurrentWeather).Methods("GET")
	router.HandleFunc("/weather/forecast5", handler.FiveDayForecast).Methods("GET")
	router.HandleFunc("/media/videos", handler.SearchVideos).Methods("GET")
	router.HandleFunc("/stats", statsHandler.GetStats).Methods("GET")

	return router
}
