package library

import "errors"

var (
	// ErrBookNotFound signals that no book matches a title or id lookup.
	ErrBookNotFound = errors.New("book not found")
	// ErrUserNotFound signals that no user with the given id is registered.
	ErrUserNotFound = errors.New("user not found")
	// ErrAlreadyBorrowed signals that every copy of a title is out on loan.
	ErrAlreadyBorrowed = errors.New("book is already borrowed")
	// ErrNoActiveLoan signals a return for a user without an outstanding loan.
	ErrNoActiveLoan = errors.New("no active loan")
	// ErrLoanOutstanding signals a borrow by a user who still holds a book.
	ErrLoanOutstanding = errors.New("user already has a book on loan")
	// ErrCorruptCatalog is reported by Catalog.Check.
	ErrCorruptCatalog = errors.New("catalog: broken tree invariant")
)
