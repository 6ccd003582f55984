package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexivanou/weathertrack/internal/model"
	"github.com/jmoiron/sqlx"
)

type sqliteRecordRepository struct {
	db *sqlx.DB
}

const sqliteSelectRecord = `
	SELECT q.id, q.input_text, q.resolved_name, q.latitude, q.longitude,
	       q.start_date, q.end_date, q.source, q.created_at, q.updated_at,
	       w.data_json
	FROM queries q
	LEFT JOIN weather_data w ON w.query_id = q.id
`

func (r *sqliteRecordRepository) Insert(ctx context.Context, q *model.Query, weatherJSON []byte) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO queries (input_text, resolved_name, latitude, longitude, start_date, end_date, source, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		q.InputText, q.ResolvedName, q.Latitude, q.Longitude, q.StartDate, q.EndDate, q.Source, q.CreatedAt, q.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("insert query: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO weather_data (query_id, data_json, created_at)
		VALUES (?, ?, ?)`,
		id, string(weatherJSON), q.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("insert snapshot: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *sqliteRecordRepository) GetByID(ctx context.Context, id int64) (*model.Record, error) {
	var row recordRow
	err := r.db.GetContext(ctx, &row, sqliteSelectRecord+" WHERE q.id = ?", id)
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

func (r *sqliteRecordRepository) List(ctx context.Context, search string) ([]model.Record, error) {
	query := sqliteSelectRecord
	args := []interface{}{}
	if search != "" {
		query += ` WHERE LOWER(q.resolved_name) LIKE '%' || LOWER(?) || '%'
		           OR LOWER(COALESCE(q.input_text, '')) LIKE '%' || LOWER(?) || '%'`
		args = append(args, search, search)
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

func (r *sqliteRecordRepository) Update(ctx context.Context, q *model.Query, weatherJSON []byte) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE queries
		SET input_text = ?, resolved_name = ?, latitude = ?, longitude = ?,
		    start_date = ?, end_date = ?, source = ?, updated_at = ?
		WHERE id = ?`,
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

	// Replace the snapshot in place; the UNIQUE(query_id) constraint keeps
	// exactly one current snapshot per query
	_, err = tx.ExecContext(ctx, `
		INSERT INTO weather_data (query_id, data_json, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(query_id) DO UPDATE SET
			data_json = excluded.data_json,
			created_at = excluded.created_at`,
		q.ID, string(weatherJSON), q.UpdatedAt)
	if err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}

	return tx.Commit()
}

func (r *sqliteRecordRepository) Delete(ctx context.Context, id int64) error {
	// weather_data rows cascade via the foreign key
	res, err := r.db.ExecContext(ctx, "DELETE FROM queries WHERE id = ?", id)
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
