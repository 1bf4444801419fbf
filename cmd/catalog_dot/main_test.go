package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBooks(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "books.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunDot(t *testing.T) {
	path := writeBooks(t, `[{"id":1,"title":"Dune","author":"Herbert"},{"id":2,"title":"Atlas","author":"Author"}]`)
	var out, errOut bytes.Buffer
	require.NoError(t, run(path, "dot", &out, &errOut))
	assert.Contains(t, out.String(), "strict digraph {")
	assert.Contains(t, out.String(), `2\nAtlas`)
	assert.Equal(t, "Loaded 2 books, tree height 2\n", errOut.String())
}

func TestRunJSON(t *testing.T) {
	path := writeBooks(t, `[{"id":1,"title":"Dune","author":"Herbert"},{"id":2,"title":"Atlas","author":"Author"}]`)
	var out bytes.Buffer
	require.NoError(t, run(path, "json", &out, &bytes.Buffer{}))
	assert.Less(t, bytes.Index(out.Bytes(), []byte("Atlas")), bytes.Index(out.Bytes(), []byte("Dune")))
}

func TestRunErrors(t *testing.T) {
	good := writeBooks(t, `[]`)
	bad := writeBooks(t, `not json`)
	assert.Error(t, run(good, "svg", &bytes.Buffer{}, &bytes.Buffer{}))
	assert.Error(t, run(bad, "dot", &bytes.Buffer{}, &bytes.Buffer{}))
	assert.Error(t, run(filepath.Join(t.TempDir(), "missing.json"), "dot", &bytes.Buffer{}, &bytes.Buffer{}))
}

func TestCommandRequiresBooks(t *testing.T) {
	cmd := newCommand()
	cmd.SetArgs([]string{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	assert.Error(t, cmd.Execute())
}
