package tracing

import (
	"database/sql"
	"fmt"
	"os"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"

	"github.com/rs/xid"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/cohsim/cache"
)

// SQLiteWriter writes access records into an "access" table of a SQLite
// database, in batched transactions.
type SQLiteWriter struct {
	*sql.DB
	statement *sql.Stmt

	dbName    string
	records   []cache.AccessRecord
	batchSize int
}

// NewSQLiteWriter creates a SQLiteWriter. The ".sqlite3" suffix is appended
// to path. An empty path picks a unique name.
func NewSQLiteWriter(path string) *SQLiteWriter {
	return &SQLiteWriter{
		dbName:    path,
		batchSize: 100000,
	}
}

// Path returns the database file the writer writes to.
func (w *SQLiteWriter) Path() string {
	return w.dbName + ".sqlite3"
}

// Init creates the database and the access table.
func (w *SQLiteWriter) Init() error {
	if w.dbName == "" {
		w.dbName = "cohsim_trace_" + xid.New().String()
	}

	filename := w.Path()
	if _, err := os.Stat(filename); err == nil {
		return fmt.Errorf("file %s already exists", filename)
	}

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		return fmt.Errorf("failed to open trace database: %w", err)
	}
	w.DB = db

	_, err = w.Exec(`
		create table access (
			cache        varchar(200) not null,
			action       varchar(10)  not null,
			addr         integer      not null,
			set_id       integer      not null,
			way_id       integer      not null,
			hit          integer      not null,
			writeback    integer      not null,
			upgrade_miss integer      not null,
			state        varchar(2)   not null
		);`)
	if err != nil {
		return fmt.Errorf("failed to create access table: %w", err)
	}

	w.statement, err = w.Prepare(`
		insert into access(
			cache, action, addr, set_id, way_id,
			hit, writeback, upgrade_miss, state
		) values(?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}

	atexit.Register(func() {
		if err := w.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing trace database: %v\n", err)
		}
	})

	return nil
}

// Write buffers one record.
func (w *SQLiteWriter) Write(r cache.AccessRecord) {
	w.records = append(w.records, r)
	if len(w.records) >= w.batchSize {
		if err := w.Flush(); err != nil {
			panic(err)
		}
	}
}

// Flush inserts the buffered records in one transaction.
func (w *SQLiteWriter) Flush() error {
	if len(w.records) == 0 || w.DB == nil {
		return nil
	}

	tx, err := w.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt := tx.Stmt(w.statement)
	for _, r := range w.records {
		_, err := stmt.Exec(
			r.Cache, r.Action.String(), r.Addr, r.Set, r.Way,
			r.Hit, r.Writeback, r.UpgradeMiss, r.State.String(),
		)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to insert access record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit access records: %w", err)
	}

	w.records = nil

	return nil
}

// Close flushes the buffer and closes the database.
func (w *SQLiteWriter) Close() error {
	if w.DB == nil {
		return nil
	}

	if err := w.Flush(); err != nil {
		return err
	}

	err := w.DB.Close()
	w.DB = nil

	return err
}
