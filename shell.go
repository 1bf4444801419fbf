package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"library-catalog/library"
)

var (
	available = color.New(color.FgGreen).SprintFunc()
	borrowed  = color.New(color.FgRed).SprintFunc()
	failure   = color.New(color.FgYellow).SprintFunc()
)

// shell is the text front end: it reads one command per line and calls into
// the library manager.
type shell struct {
	sc      *bufio.Scanner
	out     io.Writer
	mgr     *library.LibraryManager
	prompts bool // print prompts; off when input is not a terminal
}

func newShell(in io.Reader, out io.Writer, mgr *library.LibraryManager) *shell {
	return &shell{sc: bufio.NewScanner(in), out: out, mgr: mgr}
}

func (s *shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func (s *shell) prompt(p string) {
	if s.prompts {
		s.printf("%s", p)
	}
}

// ask prompts for one line of input. It reports false at end of input.
func (s *shell) ask(p string) (string, bool) {
	s.prompt(p)
	if !s.sc.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.sc.Text()), true
}

// askInt prompts for an integer. It reports false at end of input or if the
// answer is not a number.
func (s *shell) askInt(p, what string) (int, bool) {
	raw, ok := s.ask(p)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		s.printf("Invalid %s: %s\n", what, raw)
		return 0, false
	}
	return n, true
}

func (s *shell) run() {
	s.printf("Welcome to the Library Management System!\n")
	s.help()

	for {
		s.prompt("\n> ")
		if !s.sc.Scan() {
			break
		}
		cmd := strings.TrimSpace(s.sc.Text())

		switch cmd {
		case "":
			continue
		case "add book":
			s.handleAddBook()
		case "list books":
			s.handleListBooks()
		case "search book":
			s.handleSearchBook()
		case "find book":
			s.handleFindBook()
		case "add user":
			s.handleAddUser()
		case "list users":
			s.handleListUsers()
		case "borrow":
			s.handleBorrow()
		case "return":
			s.handleReturn()
		case "history":
			s.handleHistory()
		case "export json":
			if err := s.mgr.WriteJSON(s.out); err != nil {
				s.printf("Error: %v\n", err)
			}
		case "export dot":
			if err := s.mgr.WriteDot(s.out); err != nil {
				s.printf("Error: %v\n", err)
			}
		case "help":
			s.help()
		case "exit":
			s.printf("Goodbye!\n")
			return
		default:
			s.printf("Unknown command. Type 'help' to list the available commands.\n")
		}
	}
}

func (s *shell) help() {
	s.printf("Available commands:\n")
	s.printf("  Books: add book, list books, search book, find book\n")
	s.printf("  Users: add user, list users\n")
	s.printf("  Circulation: borrow, return, history\n")
	s.printf("  System: export json, export dot, help, exit\n")
}

func (s *shell) handleAddBook() {
	id, ok := s.askInt("Book ID: ", "book ID")
	if !ok {
		return
	}
	title, ok := s.ask("Title: ")
	if !ok {
		return
	}
	author, ok := s.ask("Author: ")
	if !ok {
		return
	}
	s.mgr.AddBook(id, title, author)
	s.printf("Added book ID %d '%s'\n", id, title)
}

func (s *shell) handleListBooks() {
	books := s.mgr.GetAllBooks()
	if len(books) == 0 {
		s.printf("No books in library.\n")
		return
	}
	s.printf("%-5s %-30s %-25s %s\n", "ID", "Title", "Author", "Status")
	s.printf("%s\n", strings.Repeat("-", 72))
	for _, b := range books {
		s.printf("%s\n", library.PrettyBook(b, status(b.Borrowed)))
	}
}

func (s *shell) handleSearchBook() {
	title, ok := s.ask("Title: ")
	if !ok {
		return
	}
	book, found := s.mgr.SearchByTitle(title)
	if !found {
		s.printf("No book titled '%s'.\n", title)
		return
	}
	s.printf("Book found: ID: %d, Author: %s, Status: %s\n", book.ID, book.Author, status(book.Borrowed))
}

func (s *shell) handleFindBook() {
	id, ok := s.askInt("Book ID: ", "book ID")
	if !ok {
		return
	}
	book, found := s.mgr.SearchByID(id)
	if !found {
		s.printf("No book with ID %d.\n", id)
		return
	}
	s.printf("Book found: '%s' by %s, Status: %s\n", book.Title, book.Author, status(book.Borrowed))
}

func (s *shell) handleAddUser() {
	id, ok := s.askInt("User ID: ", "user ID")
	if !ok {
		return
	}
	name, ok := s.ask("Name: ")
	if !ok {
		return
	}
	s.mgr.AddUser(id, name)
	s.printf("Added user '%s' with ID %d\n", name, id)
}

func (s *shell) handleListUsers() {
	users := s.mgr.GetAllUsers()
	if len(users) == 0 {
		s.printf("No users registered.\n")
		return
	}
	s.printf("%-5s %-30s %s\n", "ID", "Name", "Borrowed Book")
	s.printf("%s\n", strings.Repeat("-", 50))
	for _, u := range users {
		loan := "None"
		if u.HasLoan() {
			loan = strconv.Itoa(u.BorrowedBookID)
		}
		s.printf("%-5d %-30s %s\n", u.ID, library.Truncate(u.Name, 30), loan)
	}
}

func (s *shell) handleBorrow() {
	userID, ok := s.askInt("User ID: ", "user ID")
	if !ok {
		return
	}
	title, ok := s.ask("Title: ")
	if !ok {
		return
	}
	book, err := s.mgr.Borrow(userID, title)
	if err != nil {
		s.printf("%s\n", failure(loanMessage(err)))
		return
	}
	user, _ := s.mgr.FindUser(userID)
	s.printf("Book '%s' (ID %d) borrowed by %s\n", book.Title, book.ID, user.Name)
}

func (s *shell) handleReturn() {
	userID, ok := s.askInt("User ID: ", "user ID")
	if !ok {
		return
	}
	book, err := s.mgr.Return(userID)
	if err != nil {
		s.printf("%s\n", failure(loanMessage(err)))
		return
	}
	s.printf("Book '%s' returned\n", book.Title)
}

func (s *shell) handleHistory() {
	userID, ok := s.askInt("User ID: ", "user ID")
	if !ok {
		return
	}
	records, err := s.mgr.LoanHistory(userID)
	if err != nil {
		s.printf("Error: %v\n", err)
		return
	}
	if len(records) == 0 {
		s.printf("No loans recorded for user %d.\n", userID)
		return
	}
	s.printf("%-5s %-30s %-20s %s\n", "ID", "Title", "Borrowed", "Returned")
	s.printf("%s\n", strings.Repeat("-", 72))
	for _, r := range records {
		returned := "-"
		if !r.Open() {
			returned = r.ReturnedAt.Local().Format("2006-01-02 15:04")
		}
		s.printf("%-5d %-30s %-20s %s\n", r.BookID, library.Truncate(r.Title, 30),
			r.BorrowedAt.Local().Format("2006-01-02 15:04"), returned)
	}
}

// loanMessage turns a circulation error into a message for the user.
func loanMessage(err error) string {
	switch {
	case errors.Is(err, library.ErrBookNotFound):
		return "Book not found in the catalog!"
	case errors.Is(err, library.ErrAlreadyBorrowed):
		return "Book is already borrowed by someone else!"
	case errors.Is(err, library.ErrUserNotFound):
		return "User not found!"
	case errors.Is(err, library.ErrNoActiveLoan):
		return "No borrowed book found for this user!"
	case errors.Is(err, library.ErrLoanOutstanding):
		return "Return your current book before borrowing another one!"
	}
	return fmt.Sprintf("Error: %v", err)
}

func status(isBorrowed bool) string {
	if isBorrowed {
		return borrowed("Borrowed")
	}
	return available("Available")
}
