package main

import (
	"path/filepath"
	"testing"

	"github.com/sigreer/pactlgod/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingCloser struct {
	name   string
	closed *[]string
}

func (r recordingCloser) Close() error {
	*r.closed = append(*r.closed, r.name)
	return nil
}

func stubExit(t *testing.T) *[]int {
	t.Helper()
	var codes []int
	prev := osExit
	osExit = func(code int) { codes = append(codes, code) }
	t.Cleanup(func() {
		osExit = prev
		closers = nil
	})
	return &codes
}

func TestExit_ClosesHandlesInReverseOrder(t *testing.T) {
	codes := stubExit(t)

	var closed []string
	closers = append(closers,
		recordingCloser{name: "first", closed: &closed},
		recordingCloser{name: "second", closed: &closed},
	)

	exit(1)

	assert.Equal(t, []string{"second", "first"}, closed)
	assert.Equal(t, []int{1}, *codes)
	assert.Empty(t, closers)
}

func TestOpenDB_RegistersForExit(t *testing.T) {
	codes := stubExit(t)

	cfg := config.Default()
	cfg.Database = filepath.Join(t.TempDir(), "pactlgod.db")

	database := openDB(cfg)
	require.NotNil(t, database)
	require.Len(t, closers, 1)

	exit(1)

	assert.Equal(t, []int{1}, *codes)
	_, err := database.SchemaVersion()
	assert.Error(t, err, "database should be closed after exit")
}
