package sqlite

import (
	"context"
	"database/sql"

	"kundli/internal/ports"
)

// indexTx groups chart writes that must land together
type indexTx struct {
	tx *sql.Tx
}

func (idx *Index) begin(ctx context.Context) (*indexTx, error) {
	tx, err := idx.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &indexTx{tx: tx}, nil
}

// insert adds a chart row
func (t *indexTx) insert(rec *ports.ChartRecord, data string) error {
	_, err := t.tx.Exec(`
		INSERT INTO charts (id, cache_key, label, provider, created_at, data)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Key, rec.Label, rec.Provider, rec.CreatedAt.Unix(), data)
	return err
}

// deleteByKey removes the chart cached under a key, if any
func (t *indexTx) deleteByKey(key string) error {
	_, err := t.tx.Exec(`DELETE FROM charts WHERE cache_key = ?`, key)
	return err
}

// clear removes every chart
func (t *indexTx) clear() error {
	_, err := t.tx.Exec(`DELETE FROM charts`)
	return err
}

func (t *indexTx) setMeta(key, value string) error {
	_, err := t.tx.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)`, key, value)
	return err
}

// Commit commits the transaction
func (t *indexTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *indexTx) Rollback() error {
	return t.tx.Rollback()
}
