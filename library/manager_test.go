package library

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T, cfg Config) *LibraryManager {
	t.Helper()
	mgr, err := NewLibraryManager(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { mgr.Close() })
	return mgr
}

const bookList = `[
  {"id": 1, "title": "Dune", "author": "Herbert"},
  {"id": 2, "title": "Atlas", "author": "Author"},
  {"id": 3, "title": "Emma", "author": "Austen"}
]`

func TestManagerScenario(t *testing.T) {
	mgr := newManager(t, DefaultConfig())
	n, err := mgr.LoadBooks(strings.NewReader(bookList))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []string{"Atlas", "Dune", "Emma"}, titles(mgr.GetAllBooks()))

	_, err = mgr.Return(101)
	assert.ErrorIs(t, err, ErrNoActiveLoan, "no loans right after seeding")

	book, err := mgr.Borrow(101, "Dune")
	require.NoError(t, err)
	assert.True(t, book.Borrowed)

	_, err = mgr.Borrow(102, "Dune")
	assert.ErrorIs(t, err, ErrAlreadyBorrowed)

	_, err = mgr.Borrow(999, "Nonexistent")
	assert.ErrorIs(t, err, ErrBookNotFound)
	_, err = mgr.Return(999)
	assert.ErrorIs(t, err, ErrUserNotFound)

	book, err = mgr.Return(101)
	require.NoError(t, err)
	assert.False(t, book.Borrowed)

	history, err := mgr.LoanHistory(101)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 1, history[0].BookID)
	assert.False(t, history[0].Open())

	_, err = mgr.LoanHistory(999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestManagerWithoutSeedOrJournal(t *testing.T) {
	mgr := newManager(t, Config{})
	assert.Empty(t, mgr.GetAllUsers())

	mgr.AddUser(1, "Dora")
	mgr.AddBook(9, "Solaris", "Lem")
	_, err := mgr.Borrow(1, "Solaris")
	require.NoError(t, err)
	u, ok := mgr.FindUser(1)
	require.True(t, ok)
	assert.Equal(t, 9, u.BorrowedBookID)

	_, err = mgr.LoanHistory(1)
	assert.ErrorIs(t, err, ErrJournalDisabled)
	b, ok := mgr.SearchByID(9)
	require.True(t, ok)
	assert.True(t, b.Borrowed)
}

func TestLoadBooksRejectsBadInput(t *testing.T) {
	mgr := newManager(t, Config{})
	_, err := mgr.LoadBooks(strings.NewReader(`{"id": 1}`))
	assert.Error(t, err)
	assert.Equal(t, 0, mgr.Catalog().Len())
}

func TestManagerExports(t *testing.T) {
	mgr := newManager(t, DefaultConfig())
	_, err := mgr.LoadBooks(strings.NewReader(bookList))
	require.NoError(t, err)
	_, err = mgr.Borrow(102, "Emma")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, mgr.WriteJSON(&buf))
	assert.Regexp(t, `"borrowed":\s*true`, buf.String())

	buf.Reset()
	require.NoError(t, mgr.WriteDot(&buf))
	assert.Contains(t, buf.String(), "Emma")
}

func TestPrettyBook(t *testing.T) {
	line := PrettyBook(BookView{ID: 1, Title: "Dune", Author: "Herbert", Borrowed: true}, "")
	assert.True(t, strings.HasPrefix(line, "1     Dune"))
	assert.True(t, strings.HasSuffix(line, "Borrowed"))

	line = PrettyBook(BookView{ID: 2, Title: strings.Repeat("x", 40), Author: "A"}, "on shelf")
	assert.Contains(t, line, strings.Repeat("x", 27)+"...")
	assert.NotContains(t, line, strings.Repeat("x", 28))
	assert.True(t, strings.HasSuffix(line, "on shelf"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcd...", Truncate("abcdefghij", 7))
	assert.Equal(t, "ab", Truncate("abcdef", 2))
}
