// Package tallydb persists raw tally tensors in DuckDB so a finished
// run can be reloaded, merged, or queried downstream without re-reading
// the source VCFs.
package tallydb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/inodb/svstats/internal/stats"
)

// Store manages a DuckDB connection holding one tally tensor.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// ensureSchema creates tables if they don't exist. Name columns are
// denormalized so the table is queryable without the Go enums.
func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS tally (
		sv SMALLINT,
		szbin SMALLINT,
		gt SMALLINT,
		qualbin SMALLINT,
		sv_name VARCHAR,
		szbin_name VARCHAR,
		gt_name VARCHAR,
		n BIGINT,
		PRIMARY KEY (sv, szbin, gt, qualbin)
	)`)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`CREATE TABLE IF NOT EXISTS tally_meta (
		key VARCHAR PRIMARY KEY,
		value BIGINT
	)`)
	return err
}

// Save replaces the stored tensor with t. Only nonzero cells are
// written.
func (s *Store) Save(t *stats.Tensor) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM tally`); err != nil {
		return fmt.Errorf("clear tally: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM tally_meta`); err != nil {
		return fmt.Errorf("clear meta: %w", err)
	}
	if _, err := tx.Exec(`INSERT INTO tally_meta VALUES ('qual_buckets', ?)`,
		t.Dim(stats.AxisQual)); err != nil {
		return fmt.Errorf("write meta: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO tally VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for sv := 0; sv < t.Dim(stats.AxisSV); sv++ {
		for size := 0; size < t.Dim(stats.AxisSize); size++ {
			for gt := 0; gt < t.Dim(stats.AxisGT); gt++ {
				for qual := 0; qual < t.Dim(stats.AxisQual); qual++ {
					n := t.Cell(stats.SVType(sv), size, stats.Genotype(gt), qual)
					if n == 0 {
						continue
					}
					_, err := stmt.Exec(sv, size, gt, qual,
						stats.SVType(sv).String(),
						stats.SizeBinName(size),
						stats.Genotype(gt).String(),
						n)
					if err != nil {
						return fmt.Errorf("insert cell: %w", err)
					}
				}
			}
		}
	}

	return tx.Commit()
}

// Load reconstructs the stored tensor. The result merges cleanly with
// tensors aggregated under the same quality scale.
func (s *Store) Load() (*stats.Tensor, error) {
	var qualBuckets int
	err := s.db.QueryRow(`SELECT value FROM tally_meta WHERE key = 'qual_buckets'`).
		Scan(&qualBuckets)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no tally stored")
	}
	if err != nil {
		return nil, fmt.Errorf("read meta: %w", err)
	}

	t := stats.NewTensor(qualBuckets)

	rows, err := s.db.Query(`SELECT sv, szbin, gt, qualbin, n FROM tally`)
	if err != nil {
		return nil, fmt.Errorf("read tally: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sv, size, gt, qual int
		var n uint64
		if err := rows.Scan(&sv, &size, &gt, &qual, &n); err != nil {
			return nil, fmt.Errorf("scan cell: %w", err)
		}
		if sv < 0 || sv >= t.Dim(stats.AxisSV) ||
			size < 0 || size >= t.Dim(stats.AxisSize) ||
			gt < 0 || gt >= t.Dim(stats.AxisGT) ||
			qual < 0 || qual >= t.Dim(stats.AxisQual) {
			return nil, fmt.Errorf("stored cell (%d,%d,%d,%d) out of range", sv, size, gt, qual)
		}
		t.Add(stats.SVType(sv), size, stats.Genotype(gt), qual, n)
	}
	return t, rows.Err()
}
