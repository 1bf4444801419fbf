package library

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// BookEntry is one book of a book list file.
type BookEntry struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

// ReadBookList decodes a JSON array of book entries.
func ReadBookList(r io.Reader) ([]BookEntry, error) {
	var entries []BookEntry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode book list: %w", err)
	}
	return entries, nil
}

// WriteJSON writes the catalog listing as an indented JSON array.
func WriteJSON(w io.Writer, books []BookView) error {
	if books == nil {
		books = []BookView{}
	}
	out, err := json.MarshalIndent(books, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	out = append(out, '\n')
	_, err = w.Write(out)
	return err
}
