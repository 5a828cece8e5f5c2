package stress

import (
	"database/sql"
	"fmt"
	"os"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// Recorder keeps stress reports.
type Recorder interface {
	// Record buffers a report.
	Record(r Report)

	// Flush writes all the buffered reports.
	Flush()

	// Close flushes and releases the database.
	Close() error
}

// SQLiteRecorder writes reports into the stress_runs table of a SQLite
// database. Only run summaries are stored, never tokens.
type SQLiteRecorder struct {
	*sql.DB
	statement *sql.Stmt

	dbName    string
	reports   []Report
	batchSize int
	closed    bool
}

// NewSQLiteRecorder creates a recorder that writes to <path>.sqlite3. An
// empty path picks a unique name. The recorder is closed, flushing buffered
// reports, when the process exits through atexit.
func NewSQLiteRecorder(path string) *SQLiteRecorder {
	r := &SQLiteRecorder{
		dbName:    path,
		batchSize: 1000,
	}

	r.Init()

	atexit.Register(func() {
		if err := r.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to close %s: %v\n", r.Filename(), err)
		}
	})

	return r
}

// Init creates the database file and the table.
func (r *SQLiteRecorder) Init() {
	if r.dbName == "" {
		r.dbName = "cuid_stress_" + xid.New().String()
	}

	filename := r.dbName + ".sqlite3"

	_, err := os.Stat(filename)
	if err == nil {
		panic(fmt.Errorf("file %s already exists", filename))
	}

	fmt.Fprintf(os.Stderr, "Database created for recording: %s\n", filename)

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		panic(err)
	}

	// Transactions are issued as plain statements, so every statement has
	// to run on the same connection.
	db.SetMaxOpenConns(1)

	r.DB = db

	r.createTable()
	r.prepareStatement()
}

// Filename returns the path of the database file.
func (r *SQLiteRecorder) Filename() string {
	return r.dbName + ".sqlite3"
}

func (r *SQLiteRecorder) createTable() {
	r.mustExecute(`CREATE TABLE stress_runs (
	ID          TEXT PRIMARY KEY,
	Variant     TEXT,
	Threads     INTEGER,
	PerThread   INTEGER,
	Total       INTEGER,
	UniqueCount INTEGER,
	Duplicates  INTEGER,
	Malformed   INTEGER,
	DurationNs  INTEGER
);`)
}

func (r *SQLiteRecorder) prepareStatement() {
	stmt, err := r.Prepare(`INSERT INTO stress_runs VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		panic(err)
	}

	r.statement = stmt
}

// Record buffers a report. The buffer is flushed once it reaches the batch
// size.
func (r *SQLiteRecorder) Record(report Report) {
	r.reports = append(r.reports, report)

	if len(r.reports) >= r.batchSize {
		r.Flush()
	}
}

// Flush writes all the buffered reports in a single transaction.
func (r *SQLiteRecorder) Flush() {
	if len(r.reports) == 0 {
		return
	}

	r.mustExecute("BEGIN TRANSACTION")
	defer r.mustExecute("COMMIT TRANSACTION")

	for _, rep := range r.reports {
		_, err := r.statement.Exec(
			rep.ID,
			rep.Variant,
			rep.Threads,
			rep.PerThread,
			rep.Total,
			rep.Unique,
			rep.Duplicates,
			rep.Malformed,
			rep.Duration.Nanoseconds(),
		)
		if err != nil {
			panic(err)
		}
	}

	r.reports = nil
}

// Close flushes the buffered reports and closes the statement and the
// database. Closing a closed recorder does nothing.
func (r *SQLiteRecorder) Close() error {
	if r.closed {
		return nil
	}

	r.Flush()
	r.closed = true

	if err := r.statement.Close(); err != nil {
		return fmt.Errorf("closing statement: %w", err)
	}

	return r.DB.Close()
}

func (r *SQLiteRecorder) mustExecute(query string) sql.Result {
	res, err := r.Exec(query)
	if err != nil {
		fmt.Printf("Failed to execute: %s\n", query)
		panic(err)
	}

	return res
}
