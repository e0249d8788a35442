package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"mailmeter/internal/core"
	"mailmeter/internal/dataset"

	_ "modernc.org/sqlite"
)

// SQLiteRepository is the durable dataset archive: uploads survive restarts
// when DATA_BACKEND=sqlite.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Save implements dataset.Writer.
func (r *SQLiteRepository) Save(ctx context.Context, name string, records []core.MailRecord) (string, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `INSERT INTO datasets (name) VALUES (?)`, name)
	if err != nil {
		return "", fmt.Errorf("insert dataset: %w", err)
	}
	datasetID, err := res.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("dataset id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO mail_records (dataset_id, sender, subject, received_at)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("prepare record insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		receivedAt := ""
		if rec.HasDate() {
			receivedAt = rec.Date.UTC().Format(time.RFC3339)
		}
		if _, err := stmt.ExecContext(ctx, datasetID, rec.Sender, rec.Subject, receivedAt); err != nil {
			return "", fmt.Errorf("insert record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit save: %w", err)
	}

	slog.InfoContext(ctx, "Dataset saved to SQLite",
		"id", datasetID,
		"name", name,
		"records", len(records))

	return strconv.FormatInt(datasetID, 10), nil
}

// Load implements dataset.Reader.
func (r *SQLiteRepository) Load(ctx context.Context, id string) ([]core.MailRecord, error) {
	datasetID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", dataset.ErrNotFound, id)
	}

	var exists int
	err = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM datasets WHERE id = ?`, datasetID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("check dataset: %w", err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("%w: %s", dataset.ErrNotFound, id)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT sender, subject, received_at
		FROM mail_records
		WHERE dataset_id = ?
		ORDER BY id`, datasetID)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var records []core.MailRecord
	for rows.Next() {
		var rec core.MailRecord
		var receivedAt string
		if err := rows.Scan(&rec.Sender, &rec.Subject, &receivedAt); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		if receivedAt != "" {
			if t, err := time.Parse(time.RFC3339, receivedAt); err == nil {
				rec.Date = t
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}

// List implements dataset.Lister.
func (r *SQLiteRepository) List(ctx context.Context) ([]dataset.Meta, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT d.id, d.name, d.created_at, COUNT(m.id)
		FROM datasets d
		LEFT JOIN mail_records m ON m.dataset_id = d.id
		GROUP BY d.id, d.name, d.created_at
		ORDER BY d.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query datasets: %w", err)
	}
	defer rows.Close()

	var metas []dataset.Meta
	for rows.Next() {
		var (
			id        int64
			meta      dataset.Meta
			createdAt string
		)
		if err := rows.Scan(&id, &meta.Name, &createdAt, &meta.Records); err != nil {
			return nil, fmt.Errorf("scan dataset: %w", err)
		}
		meta.ID = strconv.FormatInt(id, 10)
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			meta.CreatedAt = t
		}
		metas = append(metas, meta)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate datasets: %w", err)
	}
	return metas, nil
}
