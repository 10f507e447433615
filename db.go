package benchreport

import (
	"context"
	"database/sql"

	_ "github.com/go-sql-driver/mysql"
)

const runsSchema = `CREATE TABLE IF NOT EXISTS runs (
	run_date    VARCHAR(32)  NOT NULL,
	commit_hash VARCHAR(64)  NOT NULL,
	bench       VARCHAR(255) NOT NULL,
	pkg         VARCHAR(255) NOT NULL,
	delta       DOUBLE       NOT NULL,
	lower_bound DOUBLE       NOT NULL,
	upper_bound DOUBLE       NOT NULL,
	KEY idx_run (run_date, commit_hash)
)`

// DB archives runs in MySQL, one row per estimate, for setups where the CI
// workspace is not durable enough to keep a data directory.
type DB struct {
	db *sql.DB
}

func OpenDB(dsn string) (*DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(runsSchema); err != nil {
		db.Close()
		return nil, err
	}
	return &DB{db: db}, nil
}

func (s *DB) Close() error {
	return s.db.Close()
}

// SaveRun replaces any archived rows for the same date and commit, matching
// the file store's overwrite semantics.
func (s *DB) SaveRun(ctx context.Context, r Run) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM runs WHERE run_date = ? AND commit_hash = ?`,
		r.Date, r.Commit); err != nil {
		tx.Rollback()
		return err
	}
	for _, e := range r.Results {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO runs (run_date, commit_hash, bench, pkg, delta, lower_bound, upper_bound)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			r.Date, r.Commit, e.Name, e.Package, e.Change, e.Lower, e.Upper); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (s *DB) LoadRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_date, commit_hash, bench, pkg, delta, lower_bound, upper_bound
		 FROM runs ORDER BY run_date, commit_hash`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []Run
	for rows.Next() {
		var date, commit string
		var e Estimate
		if err := rows.Scan(&date, &commit, &e.Name, &e.Package, &e.Change, &e.Lower, &e.Upper); err != nil {
			return nil, err
		}
		if n := len(res); n > 0 && res[n-1].Date == date && res[n-1].Commit == commit {
			res[n-1].Results = append(res[n-1].Results, e)
			continue
		}
		res = append(res, Run{Date: date, Commit: commit, Results: []Estimate{e}})
	}
	return res, rows.Err()
}
