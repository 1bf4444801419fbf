package library

// Book is a catalog record. It is owned by the catalog node holding it and
// only the LoanCoordinator flips Borrowed.
type Book struct {
	ID       int
	Title    string
	Author   string
	Borrowed bool
}

// View returns a detached copy suitable for listings.
func (b *Book) View() BookView {
	return BookView{ID: b.ID, Title: b.Title, Author: b.Author, Borrowed: b.Borrowed}
}

// BookView is one row of the catalog listing.
type BookView struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Borrowed bool   `json:"borrowed"`
}

// User is a registered library user holding at most one book.
// BorrowedBookID is only meaningful while HasLoan reports true; book ids are
// chosen by the caller, so no id value can stand for "no loan".
type User struct {
	ID             int
	Name           string
	BorrowedBookID int
	onLoan         bool
}

// HasLoan reports whether the user currently holds a book.
func (u *User) HasLoan() bool { return u.onLoan }

func (u *User) lend(bookID int) {
	u.BorrowedBookID = bookID
	u.onLoan = true
}

func (u *User) clearLoan() {
	u.BorrowedBookID = 0
	u.onLoan = false
}
