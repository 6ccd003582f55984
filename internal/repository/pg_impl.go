package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexivanou/weathertrack/internal/model"
	"github.com/jmoiron/sqlx"
)

type pgRecordRepository struct {
	db *sqlx.DB
}

const pgSelectRecord = `
	SELECT q.id, q.input_text, q.resolved_name, q.latitude, q.longitude,
	       q.start_date, q.end_date, q.source, q.created_at, q.updated_at,
	       w.data_json
	FROM queries q
	LEFT JOIN weather_data w ON w.query_id = q.id
`

func (r *pgRecordRepository) Insert(ctx context.Context, q *model.Query, weatherJSON []byte) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var id int64
	err = tx.GetContext(ctx, &id, `
		INSERT INTO queries (input_text, resolved_name, latitude, longitude, start_date, end_date, source, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		q.InputText, q.ResolvedName, q.Latitude, q.Longitude, q.StartDate, q.EndDate, q.Source, q.CreatedAt, q.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("insert query: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO weather_data (query_id, data_json, created_at)
		VALUES ($1, $2, $3)`,
		id, string(weatherJSON), q.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("insert snapshot: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *pgRecordRepository) GetByID(ctx context.Context, id int64) (*model.Record, error) {
	var row recordRow
	err := r.db.GetContext(ctx, &row, pgSelectRecord+" WHERE q.id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	rec, err := row.toRecord()
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *pgRecordRepository) List(ctx context.Context, search string) ([]model.Record, error) {
	query := pgSelectRecord
	args := []interface{}{}
	if search != "" {
		query += ` WHERE q.resolved_name ILIKE '%' || $1 || '%'
		           OR COALESCE(q.input_text, '') ILIKE '%' || $1 || '%'`
		args = append(args, search)
	}
	query += " ORDER BY q.id DESC"

	var rows []recordRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	records := make([]model.Record, 0, len(rows))
	for _, row := range rows {
		rec, err := row.toRecord()
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func (r *pgRecordRepository) Update(ctx context.Context, q *model.Query, weatherJSON []byte) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE queries
		SET input_text = $1, resolved_name = $2, latitude = $3, longitude = $4,
		    start_date = $5, end_date = $6, source = $7, updated_at = $8
		WHERE id = $9`,
		q.InputText, q.ResolvedName, q.Latitude, q.Longitude,
		q.StartDate, q.EndDate, q.Source, q.UpdatedAt, q.ID)
	if err != nil {
		return fmt.Errorf("update query: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return model.ErrNotFound
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO weather_data (query_id, data_json, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (query_id) DO UPDATE SET
			data_json = excluded.data_json,
			created_at = excluded.created_at`,
		q.ID, string(weatherJSON), q.UpdatedAt)
	if err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}

	return tx.Commit()
}

func (r *pgRecordRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM queries WHERE id = $1", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return model.ErrNotFound
	}
	return nil
}
