package library

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempJournal(t *testing.T) *LoanJournal {
	t.Helper()
	j, err := NewLoanJournal(MemoryJournal)
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

// tick makes the journal clock advance by one minute per call.
func tick(j *LoanJournal, start time.Time) {
	now := start
	j.now = func() time.Time {
		now = now.Add(time.Minute)
		return now
	}
}

func TestJournalBorrowReturnFlow(t *testing.T) {
	j := tempJournal(t)
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	tick(j, start)

	book := &Book{ID: 1, Title: "Dune", Author: "Herbert"}
	user := &User{ID: 101, Name: "Alice"}

	loanID, err := j.RecordBorrow(book, user)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, loanID)

	history, err := j.History(101)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.True(t, history[0].Open())
	assert.Equal(t, loanID, history[0].LoanID)
	assert.Equal(t, "Dune", history[0].Title)
	assert.True(t, history[0].BorrowedAt.Equal(start.Add(time.Minute)))

	require.NoError(t, j.RecordReturn(1, 101))
	history, err = j.History(101)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.False(t, history[0].Open())
	assert.True(t, history[0].ReturnedAt.Equal(start.Add(2*time.Minute)))
}

func TestJournalReturnWithoutOpenLoan(t *testing.T) {
	j := tempJournal(t)
	assert.Error(t, j.RecordReturn(1, 101))

	book := &Book{ID: 1, Title: "Dune"}
	_, err := j.RecordBorrow(book, &User{ID: 101})
	require.NoError(t, err)
	require.NoError(t, j.RecordReturn(1, 101))
	assert.Error(t, j.RecordReturn(1, 101), "loan already closed")
}

func TestJournalHistoryPerUser(t *testing.T) {
	j := tempJournal(t)
	tick(j, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))

	alice := &User{ID: 101}
	bob := &User{ID: 102}
	dune := &Book{ID: 1, Title: "Dune"}
	emma := &Book{ID: 3, Title: "Emma"}

	_, err := j.RecordBorrow(dune, alice)
	require.NoError(t, err)
	_, err = j.RecordBorrow(emma, bob)
	require.NoError(t, err)
	require.NoError(t, j.RecordReturn(1, 101))
	_, err = j.RecordBorrow(emma, alice)
	require.NoError(t, err)
	require.Error(t, j.RecordReturn(3, 103))

	history, err := j.History(101)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "Dune", history[0].Title)
	assert.False(t, history[0].Open())
	assert.Equal(t, "Emma", history[1].Title)
	assert.True(t, history[1].Open())

	history, err = j.History(103)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestJournalMigrationsAreIdempotent(t *testing.T) {
	j := tempJournal(t)
	require.NoError(t, applyMigrations(j.db))
	var version int
	require.NoError(t, j.db.QueryRow(`SELECT value FROM meta WHERE key='schema_version'`).Scan(&version))
	assert.Equal(t, schemaVersion, version)
}
