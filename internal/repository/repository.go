package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/alexivanou/weathertrack/internal/config"
	"github.com/alexivanou/weathertrack/internal/model"
	"github.com/jmoiron/sqlx"
)

// RecordRepository defines persistence operations for weather records.
// A query and its snapshot always move together: inserts and snapshot
// replacement run inside one transaction, so there is no observable moment
// where a query exists without a current snapshot.
type RecordRepository interface {
	Insert(ctx context.Context, q *model.Query, weatherJSON []byte) (int64, error)
	GetByID(ctx context.Context, id int64) (*model.Record, error)
	List(ctx context.Context, search string) ([]model.Record, error)
	Update(ctx context.Context, q *model.Query, weatherJSON []byte) error
	Delete(ctx context.Context, id int64) error
}

// NewRepository creates a repository implementation based on DB type
func NewRepository(db *sqlx.DB, dbType config.DBType) RecordRepository {
	if dbType == config.DBTypePostgreSQL {
		return &pgRecordRepository{db: db}
	}
	// Default to SQLite
	return &sqliteRecordRepository{db: db}
}

// recordRow is the scan target for the queries ⨝ weather_data join
type recordRow struct {
	model.Query
	DataJSON sql.NullString `db:"data_json"`
}

func (r recordRow) toRecord() (model.Record, error) {
	rec := model.Record{Query: r.Query}
	if r.DataJSON.Valid {
		var weather model.WeatherData
		if err := json.Unmarshal([]byte(r.DataJSON.String), &weather); err != nil {
			return model.Record{}, err
		}
		rec.Weather = &weather
	}
	return rec, nil
}
