package library

import (
	"errors"
	"fmt"
	"io"
)

// ErrJournalDisabled is returned by LoanHistory when no journal is configured.
var ErrJournalDisabled = errors.New("loan journal disabled")

// LibraryManager is a thin façade over catalog, directory and journal,
// keeping front-end code simple.
type LibraryManager struct {
	catalog *Catalog
	users   *UserDirectory
	loans   LoanCoordinator
	journal *LoanJournal // nil if disabled
}

// NewLibraryManager assembles an empty catalog and a directory as described
// by cfg.
func NewLibraryManager(cfg Config) (*LibraryManager, error) {
	lm := &LibraryManager{
		catalog: NewCatalog(),
		users:   NewUserDirectory(),
	}
	if cfg.SeedUsers {
		SeedUsers(lm.users)
	}
	if cfg.JournalDSN != "" {
		journal, err := NewLoanJournal(cfg.JournalDSN)
		if err != nil {
			return nil, err
		}
		lm.journal = journal
	}
	T().Infof("library: %d users, journal enabled=%v", lm.users.Len(), lm.journal != nil)
	return lm, nil
}

// Close closes the loan journal.
func (lm *LibraryManager) Close() error {
	if lm.journal == nil {
		return nil
	}
	return lm.journal.Close()
}

// ------------------ Book helpers ------------------

func (lm *LibraryManager) AddBook(id int, title, author string) *Book {
	return lm.catalog.Insert(id, title, author)
}

// LoadBooks inserts every book of a JSON book list and returns how many were
// added.
func (lm *LibraryManager) LoadBooks(r io.Reader) (int, error) {
	entries, err := ReadBookList(r)
	if err != nil {
		return 0, err
	}
	for _, e := range entries {
		lm.catalog.Insert(e.ID, e.Title, e.Author)
	}
	T().Infof("library: loaded %d books, tree height %d", len(entries), lm.catalog.Height())
	return len(entries), nil
}

func (lm *LibraryManager) GetAllBooks() []BookView { return lm.catalog.DisplayAll() }

func (lm *LibraryManager) SearchByTitle(title string) (*Book, bool) {
	return lm.catalog.SearchByTitle(title)
}

func (lm *LibraryManager) SearchByID(id int) (*Book, bool) { return lm.catalog.SearchByID(id) }

// Catalog exposes the underlying tree, mainly for diagnostics.
func (lm *LibraryManager) Catalog() *Catalog { return lm.catalog }

// ------------------ User helpers ------------------

func (lm *LibraryManager) AddUser(id int, name string) *User { return lm.users.AddUser(id, name) }
func (lm *LibraryManager) FindUser(id int) (*User, bool)     { return lm.users.FindByID(id) }
func (lm *LibraryManager) GetAllUsers() []*User              { return lm.users.All() }

// ------------------ Circulation ------------------

// Borrow lends title to user userID and journals the loan.
func (lm *LibraryManager) Borrow(userID int, title string) (*Book, error) {
	book, err := lm.loans.Borrow(lm.catalog, lm.users, userID, title)
	if err != nil {
		return nil, err
	}
	if lm.journal != nil {
		user, _ := lm.users.FindByID(userID)
		if _, err := lm.journal.RecordBorrow(book, user); err != nil {
			T().Errorf("library: %v", err)
		}
	}
	return book, nil
}

// Return takes back the book held by user userID and journals the return.
func (lm *LibraryManager) Return(userID int) (*Book, error) {
	book, err := lm.loans.Return(lm.catalog, lm.users, userID)
	if err != nil {
		return nil, err
	}
	if lm.journal != nil {
		if err := lm.journal.RecordReturn(book.ID, userID); err != nil {
			T().Errorf("library: %v", err)
		}
	}
	return book, nil
}

// LoanHistory lists the journaled loans of a user, oldest first.
func (lm *LibraryManager) LoanHistory(userID int) ([]LoanRecord, error) {
	if lm.journal == nil {
		return nil, ErrJournalDisabled
	}
	if _, ok := lm.users.FindByID(userID); !ok {
		return nil, fmt.Errorf("%w: %d", ErrUserNotFound, userID)
	}
	return lm.journal.History(userID)
}

// ------------------ Export ------------------

// WriteJSON writes the catalog listing as JSON.
func (lm *LibraryManager) WriteJSON(w io.Writer) error {
	return WriteJSON(w, lm.catalog.DisplayAll())
}

// WriteDot writes the catalog tree in Graphviz DOT format.
func (lm *LibraryManager) WriteDot(w io.Writer) error {
	return Catalog2Dot(lm.catalog, w)
}

// ------------------ Utilities ------------------

// PrettyBook formats a book for lists. status is printed as given so callers
// may decorate it; an empty status falls back to "Available" or "Borrowed".
func PrettyBook(b BookView, status string) string {
	if status == "" {
		status = "Available"
		if b.Borrowed {
			status = "Borrowed"
		}
	}
	return fmt.Sprintf("%-5d %-30s %-25s %s", b.ID, Truncate(b.Title, 30), Truncate(b.Author, 25), status)
}

// Truncate shortens s to maxLength bytes, marking the cut with "...".
func Truncate(s string, maxLength int) string {
	if len(s) <= maxLength {
		return s
	}
	if maxLength <= 3 {
		return s[:maxLength]
	}
	return s[:maxLength-3] + "..."
}
