package library

// Config controls how a LibraryManager is assembled.
type Config struct {
	// SeedUsers registers users 101, 102 and 103 on start.
	SeedUsers bool
	// JournalDSN is the SQLite DSN of the loan journal. Empty disables
	// journaling.
	JournalDSN string
}

// DefaultConfig seeds the directory and journals loans in memory.
func DefaultConfig() Config {
	return Config{
		SeedUsers:  true,
		JournalDSN: MemoryJournal,
	}
}
