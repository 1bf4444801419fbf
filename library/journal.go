package library

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// MemoryJournal is the DSN of a process-private, in-memory journal.
const MemoryJournal = ":memory:"

// LoanRecord is one borrow, and its return once it happened.
type LoanRecord struct {
	LoanID     uuid.UUID  `json:"loan_id"`
	BookID     int        `json:"book_id"`
	Title      string     `json:"title"`
	UserID     int        `json:"user_id"`
	BorrowedAt time.Time  `json:"borrowed_at"`
	ReturnedAt *time.Time `json:"returned_at,omitempty"`
}

// Open reports whether the book has not been returned yet.
func (r LoanRecord) Open() bool { return r.ReturnedAt == nil }

// LoanJournal keeps an audit trail of loans in SQLite. It is written after
// the in-memory state has changed and is never read back into it.
type LoanJournal struct {
	db *sql.DB

	borrowStmt *sql.Stmt
	returnStmt *sql.Stmt

	now func() time.Time
}

// NewLoanJournal opens the SQLite database at dsn, applies schema migrations,
// and prepares common statements.
func NewLoanJournal(dsn string) (*LoanJournal, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Every connection to :memory: is its own database.
	db.SetMaxOpenConns(1)

	if err := applyMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	journal := &LoanJournal{db: db, now: time.Now}
	if err := journal.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}
	return journal, nil
}

// Close releases prepared statements and closes the DB.
func (j *LoanJournal) Close() error {
	if j.borrowStmt != nil {
		j.borrowStmt.Close()
	}
	if j.returnStmt != nil {
		j.returnStmt.Close()
	}
	return j.db.Close()
}

// ---------------------------------------------------------------------------
// Schema migration
// ---------------------------------------------------------------------------

const schemaVersion = 1

func applyMigrations(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT);`); err != nil {
		return err
	}

	var current int
	_ = db.QueryRow(`SELECT value FROM meta WHERE key='schema_version';`).Scan(&current)
	if current >= schemaVersion {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS loans (
            id TEXT PRIMARY KEY,
            book_id INTEGER NOT NULL,
            title TEXT NOT NULL,
            user_id INTEGER NOT NULL,
            borrowed_at DATETIME NOT NULL,
            returned_at DATETIME
        );`,
		`CREATE INDEX IF NOT EXISTS idx_loans_user ON loans(user_id, borrowed_at);`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}
	if _, err := tx.Exec(`INSERT INTO meta(key,value) VALUES('schema_version',?)
            ON CONFLICT(key) DO UPDATE SET value=excluded.value;`, schemaVersion); err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}

	return tx.Commit()
}

// ---------------------------------------------------------------------------
// Prepared statements
// ---------------------------------------------------------------------------

func (j *LoanJournal) prepareStatements() error {
	var err error
	if j.borrowStmt, err = j.db.Prepare(`INSERT INTO loans(id,book_id,title,user_id,borrowed_at) VALUES(?,?,?,?,?)`); err != nil {
		return err
	}
	if j.returnStmt, err = j.db.Prepare(`UPDATE loans SET returned_at=? WHERE book_id=? AND user_id=? AND returned_at IS NULL`); err != nil {
		return err
	}
	return nil
}

// ---------------------------------------------------------------------------
// Loans
// ---------------------------------------------------------------------------

// RecordBorrow opens a loan of book to user and returns its id.
func (j *LoanJournal) RecordBorrow(book *Book, user *User) (uuid.UUID, error) {
	loanID := uuid.New()
	if _, err := j.borrowStmt.Exec(loanID.String(), book.ID, book.Title, user.ID, j.now().UTC()); err != nil {
		return uuid.Nil, fmt.Errorf("record borrow: %w", err)
	}
	return loanID, nil
}

// RecordReturn closes the open loan of book bookID by user userID.
func (j *LoanJournal) RecordReturn(bookID, userID int) error {
	res, err := j.returnStmt.Exec(j.now().UTC(), bookID, userID)
	if err != nil {
		return fmt.Errorf("record return: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("no open loan of book %d by user %d", bookID, userID)
	}
	return nil
}

// History returns the loans of a user, oldest first.
func (j *LoanJournal) History(userID int) ([]LoanRecord, error) {
	rows, err := j.db.Query(`SELECT id,book_id,title,user_id,borrowed_at,returned_at FROM loans WHERE user_id=? ORDER BY borrowed_at, rowid`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []LoanRecord
	for rows.Next() {
		var (
			r        LoanRecord
			id       string
			returned sql.NullTime
		)
		if err := rows.Scan(&id, &r.BookID, &r.Title, &r.UserID, &r.BorrowedAt, &returned); err != nil {
			return nil, err
		}
		if r.LoanID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("loan id %q: %w", id, err)
		}
		if returned.Valid {
			t := returned.Time
			r.ReturnedAt = &t
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
