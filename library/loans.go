package library

import "fmt"

// LoanCoordinator moves books between Available and Borrowed. It is the only
// mutator of Book.Borrowed and User loans and keeps them in step: a user's
// BorrowedBookID always names a borrowed book, and no two users hold the
// same book. Returns resolve books by id, so at most one book per id is out
// on loan at any time.
type LoanCoordinator struct{}

// Borrow lends the first available copy of title to user userID. A copy is
// available if it is not borrowed and no other book with its id is borrowed.
//
// Checks run in order: the title must exist (ErrBookNotFound), a copy must
// be available (ErrAlreadyBorrowed), the user must exist (ErrUserNotFound)
// and must not already hold a book (ErrLoanOutstanding). Nothing is mutated
// unless all checks pass.
func (LoanCoordinator) Borrow(c *Catalog, d *UserDirectory, userID int, title string) (*Book, error) {
	copies := c.SearchAllByTitle(title)
	if len(copies) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrBookNotFound, title)
	}
	var book *Book
	for _, b := range copies {
		if borrowedCopy(c, b.ID) == nil {
			book = b
			break
		}
	}
	if book == nil {
		return nil, fmt.Errorf("%w: %q", ErrAlreadyBorrowed, title)
	}
	user, ok := d.FindByID(userID)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUserNotFound, userID)
	}
	if user.HasLoan() {
		return nil, fmt.Errorf("%w: user %d holds book %d", ErrLoanOutstanding, userID, user.BorrowedBookID)
	}
	book.Borrowed = true
	user.lend(book.ID)
	T().Debugf("loan: book %d %q lent to user %d", book.ID, book.Title, user.ID)
	return book, nil
}

// Return takes back the book held by user userID.
func (LoanCoordinator) Return(c *Catalog, d *UserDirectory, userID int) (*Book, error) {
	user, ok := d.FindByID(userID)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUserNotFound, userID)
	}
	if !user.HasLoan() {
		return nil, fmt.Errorf("%w: user %d", ErrNoActiveLoan, userID)
	}
	book := borrowedCopy(c, user.BorrowedBookID)
	if book == nil {
		return nil, fmt.Errorf("%w: id %d", ErrBookNotFound, user.BorrowedBookID)
	}
	book.Borrowed = false
	user.clearLoan()
	T().Debugf("loan: book %d %q returned by user %d", book.ID, book.Title, user.ID)
	return book, nil
}

// borrowedCopy returns the book with the given id that is out on loan, or
// nil. Borrow keeps this unique per id.
func borrowedCopy(c *Catalog, id int) *Book {
	for _, b := range c.booksWithID(id) {
		if b.Borrowed {
			return b
		}
	}
	return nil
}
