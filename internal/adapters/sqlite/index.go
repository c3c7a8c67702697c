package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"kundli/internal/domain"
	"kundli/internal/ports"

	_ "modernc.org/sqlite"
)

const schemaVersion = "1"

// Index implements ports.ChartStore using SQLite
type Index struct {
	db     *sql.DB
	dbPath string
}

// Ensure Index implements ChartStore
var _ ports.ChartStore = (*Index)(nil)

// NewIndex creates a new SQLite chart index
func NewIndex() *Index {
	return &Index{}
}

// Open initializes the index at dbPath. An empty path uses DefaultPath.
func (idx *Index) Open(dbPath string) error {
	if dbPath == "" {
		dbPath = DefaultPath()
	}
	// Expand ~ in path
	if len(dbPath) > 0 && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}
	idx.dbPath = dbPath

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(idx.dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", idx.dbPath+"?_journal_mode=WAL")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	idx.db = db

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS charts (
			id TEXT PRIMARY KEY,
			cache_key TEXT NOT NULL UNIQUE,
			label TEXT NOT NULL DEFAULT '',
			provider TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			data TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_charts_created ON charts(created_at);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	if err := idx.checkSchema(); err != nil {
		db.Close()
		return err
	}
	return nil
}

// Close closes the database connection
func (idx *Index) Close() error {
	if idx.db != nil {
		return idx.db.Close()
	}
	return nil
}

// Path returns the database file in use
func (idx *Index) Path() string {
	return idx.dbPath
}

// DefaultPath returns the chart database under the XDG data directory
func DefaultPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "kundli", "charts.db")
}

// checkSchema records the schema version, clearing cached charts written by another version
func (idx *Index) checkSchema() error {
	var version string
	err := idx.db.QueryRow("SELECT value FROM meta WHERE key = 'schema_version'").Scan(&version)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to read metadata: %w", err)
	}
	if version == schemaVersion {
		return nil
	}

	tx, err := idx.begin(context.Background())
	if err != nil {
		return err
	}
	if version != "" {
		if err := tx.clear(); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to clear stale charts: %w", err)
		}
	}
	if err := tx.setMeta("schema_version", schemaVersion); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to update metadata: %w", err)
	}
	return tx.Commit()
}

const selectChart = `SELECT id, cache_key, label, provider, created_at, data FROM charts`

type scanner interface {
	Scan(dest ...any) error
}

func scanChart(row scanner) (*ports.ChartRecord, error) {
	var rec ports.ChartRecord
	var created int64
	var data string

	if err := row.Scan(&rec.ID, &rec.Key, &rec.Label, &rec.Provider, &created, &data); err != nil {
		return nil, err
	}
	rec.CreatedAt = time.Unix(created, 0).UTC()

	var chart domain.Kundli
	if err := json.Unmarshal([]byte(data), &chart); err != nil {
		return nil, fmt.Errorf("failed to decode chart %s: %w", rec.ID, err)
	}
	rec.Chart = chart
	return &rec, nil
}

func (idx *Index) getOne(ctx context.Context, where string, arg string) (*ports.ChartRecord, error) {
	rec, err := scanChart(idx.db.QueryRowContext(ctx, selectChart+" WHERE "+where+" = ?", arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// GetByKey retrieves a chart by its input hash
func (idx *Index) GetByKey(ctx context.Context, key string) (*ports.ChartRecord, error) {
	return idx.getOne(ctx, "cache_key", key)
}

// GetByID retrieves a chart by ID
func (idx *Index) GetByID(ctx context.Context, id string) (*ports.ChartRecord, error) {
	return idx.getOne(ctx, "id", id)
}

// List returns all charts, newest first
func (idx *Index) List(ctx context.Context) ([]ports.ChartRecord, error) {
	rows, err := idx.db.QueryContext(ctx, selectChart+" ORDER BY created_at DESC, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []ports.ChartRecord
	for rows.Next() {
		rec, err := scanChart(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

// Put stores a chart, replacing any chart with the same key
func (idx *Index) Put(ctx context.Context, rec *ports.ChartRecord) error {
	data, err := json.Marshal(rec.Chart)
	if err != nil {
		return fmt.Errorf("failed to encode chart: %w", err)
	}

	tx, err := idx.begin(ctx)
	if err != nil {
		return err
	}
	if err := tx.deleteByKey(rec.Key); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.insert(rec, string(data)); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Delete removes a chart by ID
func (idx *Index) Delete(ctx context.Context, id string) error {
	res, err := idx.db.ExecContext(ctx, `DELETE FROM charts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ports.ErrChartNotFound, id)
	}
	return nil
}
