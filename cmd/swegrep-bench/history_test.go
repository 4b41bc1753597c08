package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mosif16/swe-grep/internal/history"
)

func TestHistoryCmd_List(t *testing.T) {
	created := time.Date(2026, 8, 20, 10, 30, 0, 0, time.UTC)
	store := &mockHistoryStore{entries: []history.Entry{
		{ID: 2, Kind: history.KindStartup, Symbol: "http_client", Repository: "/work/repo", Runs: 5, CreatedAt: created},
		{ID: 1, Kind: history.KindCompare, Symbol: "parse_args", Repository: "/work/repo", Runs: 10, CreatedAt: created},
	}}
	useMockArchive(t, store)

	output, err := executeCommand(rootCmd, "history")
	require.NoError(t, err)

	assert.Contains(t, output, "ID")
	assert.Contains(t, output, "KIND")
	assert.Contains(t, output, "startup")
	assert.Contains(t, output, "parse_args")
	assert.Contains(t, output, "2026-08-20 10:30:00")
}

func TestHistoryCmd_Empty(t *testing.T) {
	useMockArchive(t, &mockHistoryStore{})

	output, err := executeCommand(rootCmd, "history")
	require.NoError(t, err)
	assert.Contains(t, output, "No archived reports yet.")
}

func TestHistoryCmd_NoDatabase(t *testing.T) {
	_, err := executeCommand(rootCmd, "history")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no history database configured")
}

func TestHistoryCmd_DBFlag(t *testing.T) {
	var openedPath string
	origFactory := historyStoreFactory
	historyStoreFactory = func(path string) (history.Store, error) {
		openedPath = path
		return &mockHistoryStore{}, nil
	}
	t.Cleanup(func() { historyStoreFactory = origFactory })

	_, err := executeCommand(rootCmd, "history", "--db", "custom.db")
	require.NoError(t, err)
	assert.Equal(t, "custom.db", openedPath)
}

func TestHistoryCmd_Limit(t *testing.T) {
	created := time.Now()
	store := &mockHistoryStore{entries: []history.Entry{
		{ID: 3, Kind: history.KindCompare, Symbol: "alpha", CreatedAt: created},
		{ID: 2, Kind: history.KindCompare, Symbol: "bravo", CreatedAt: created},
		{ID: 1, Kind: history.KindCompare, Symbol: "charlie", CreatedAt: created},
	}}
	useMockArchive(t, store)

	output, err := executeCommand(rootCmd, "history", "--limit", "2")
	require.NoError(t, err)
	assert.Contains(t, output, "alpha")
	assert.Contains(t, output, "bravo")
	assert.NotContains(t, output, "charlie")
}
