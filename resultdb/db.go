// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resultdb archives summaries in a SQL database so that
// results from different benchmark runs can be compared later.
package resultdb

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/ArushiG11/COS568-LI-SP25/resultagg"
)

// ErrNotFound is returned when a run does not exist.
var ErrNotFound = errors.New("run not found")

// DB is an archive of summaries. It's safe for concurrent use by
// multiple goroutines.
type DB struct {
	sql *sql.DB
	// prepared statements
	insertRun   *sql.Stmt
	insertKey   *sql.Stmt
	insertEntry *sql.Stmt
}

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Only sqlite3 is registered
// by this package.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			db.Close()
			return nil, err
		}
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		db.Close()
		return nil, err
	}
	if err := d.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

// Open opens or creates the SQLite archive at path.
func Open(path string) (*DB, error) {
	return OpenSQL("sqlite3", path)
}

var openHooks = make(map[string]func(*sql.DB) error)

// createTmpl is evaluated with . as a map containing one entry whose
// key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Runs (
	RunID {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}SERIAL PRIMARY KEY AUTO_INCREMENT{{end}},
	Chart VARCHAR(255) NOT NULL,
	Created BIGINT NOT NULL,
	Reduction VARCHAR(32) NOT NULL,
	Metrics VARCHAR(8192) NOT NULL
);
CREATE TABLE IF NOT EXISTS RunKeys (
	RunID BIGINT UNSIGNED,
	Kind VARCHAR(8),
	Pos INT,
	Name VARCHAR(255),
	PRIMARY KEY (RunID, Kind, Pos)
);
CREATE TABLE IF NOT EXISTS Entries (
	RunID BIGINT UNSIGNED,
	Identifier VARCHAR(255),
	GroupName VARCHAR(255),
	Value DOUBLE,
	PRIMARY KEY (RunID, Identifier, GroupName)
);
`))

// createTables creates any missing tables.
func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %v", err)
		}
	}
	return nil
}

func (db *DB) prepareStatements() error {
	var err error
	db.insertRun, err = db.sql.Prepare("INSERT INTO Runs(Chart, Created, Reduction, Metrics) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	db.insertKey, err = db.sql.Prepare("INSERT INTO RunKeys(RunID, Kind, Pos, Name) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	db.insertEntry, err = db.sql.Prepare("INSERT INTO Entries(RunID, Identifier, GroupName, Value) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	return nil
}

// A Run describes one archived summary.
type Run struct {
	ID        int64
	Chart     string
	Created   time.Time
	Reduction resultagg.Reduction
	Metrics   []string
}

const (
	kindID    = "id"
	kindGroup = "group"
)

// now is overridden by tests.
var now = time.Now

// SaveSummary stores s as a new run described by r and returns the new
// run's ID. r.ID and r.Created are ignored.
func (db *DB) SaveSummary(ctx context.Context, r Run, s *resultagg.Summary) (id int64, err error) {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	res, err := tx.StmtContext(ctx, db.insertRun).ExecContext(ctx, r.Chart, now().Unix(), r.Reduction.String(), strings.Join(r.Metrics, ","))
	if err != nil {
		return 0, err
	}
	if id, err = res.LastInsertId(); err != nil {
		return 0, err
	}

	insertKey := tx.StmtContext(ctx, db.insertKey)
	for kind, names := range map[string][]string{kindID: s.Identifiers(), kindGroup: s.Groups()} {
		for pos, name := range names {
			if _, err = insertKey.ExecContext(ctx, id, kind, pos, name); err != nil {
				return 0, err
			}
		}
	}
	insertEntry := tx.StmtContext(ctx, db.insertEntry)
	for _, e := range s.Entries() {
		if _, err = insertEntry.ExecContext(ctx, id, e.Identifier, e.Group, e.Value); err != nil {
			return 0, err
		}
	}
	return id, nil
}

// LoadSummary returns the run with the given ID and its summary.
// Absent entries stay absent.
func (db *DB) LoadSummary(ctx context.Context, id int64) (Run, *resultagg.Summary, error) {
	r, err := db.run(ctx, id)
	if err != nil {
		return Run{}, nil, err
	}

	keys := map[string][]string{}
	rows, err := db.sql.QueryContext(ctx, "SELECT Kind, Name FROM RunKeys WHERE RunID = ? ORDER BY Kind, Pos", id)
	if err != nil {
		return Run{}, nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var kind, name string
		if err := rows.Scan(&kind, &name); err != nil {
			return Run{}, nil, err
		}
		keys[kind] = append(keys[kind], name)
	}
	if err := rows.Err(); err != nil {
		return Run{}, nil, err
	}
	rows.Close()

	var entries []resultagg.Entry
	rows, err = db.sql.QueryContext(ctx, "SELECT Identifier, GroupName, Value FROM Entries WHERE RunID = ?", id)
	if err != nil {
		return Run{}, nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var e resultagg.Entry
		if err := rows.Scan(&e.Identifier, &e.Group, &e.Value); err != nil {
			return Run{}, nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return Run{}, nil, err
	}
	return r, resultagg.FromEntries(keys[kindID], keys[kindGroup], entries), nil
}

func (db *DB) run(ctx context.Context, id int64) (Run, error) {
	row := db.sql.QueryRowContext(ctx, "SELECT RunID, Chart, Created, Reduction, Metrics FROM Runs WHERE RunID = ?", id)
	r, err := scanRun(row)
	if err == sql.ErrNoRows {
		return Run{}, fmt.Errorf("run %d: %w", id, ErrNotFound)
	}
	return r, err
}

// ListRuns returns all archived runs, newest first. If chart is not
// empty, only runs of that chart are returned.
func (db *DB) ListRuns(ctx context.Context, chart string) ([]Run, error) {
	q := "SELECT RunID, Chart, Created, Reduction, Metrics FROM Runs"
	var args []interface{}
	if chart != "" {
		q += " WHERE Chart = ?"
		args = append(args, chart)
	}
	q += " ORDER BY RunID DESC"
	rows, err := db.sql.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		r       Run
		created int64
		red     string
		metrics string
	)
	if err := sc.Scan(&r.ID, &r.Chart, &created, &red, &metrics); err != nil {
		return Run{}, err
	}
	r.Created = time.Unix(created, 0)
	if err := r.Reduction.UnmarshalText([]byte(red)); err != nil {
		return Run{}, fmt.Errorf("run %d: %w", r.ID, err)
	}
	if metrics != "" {
		r.Metrics = strings.Split(metrics, ",")
	}
	return r, nil
}

// DeleteRun removes a run and its entries.
func (db *DB) DeleteRun(ctx context.Context, id int64) (err error) {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	res, err := tx.ExecContext(ctx, "DELETE FROM Runs WHERE RunID = ?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return fmt.Errorf("run %d: %w", id, ErrNotFound)
	}
	for _, q := range []string{"DELETE FROM RunKeys WHERE RunID = ?", "DELETE FROM Entries WHERE RunID = ?"} {
		if _, err = tx.ExecContext(ctx, q, id); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	for _, stmt := range []*sql.Stmt{db.insertRun, db.insertKey, db.insertEntry} {
		if err := stmt.Close(); err != nil {
			return err
		}
	}
	return db.sql.Close()
}
