package main

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mosif16/swe-grep/internal/bench"
	"github.com/mosif16/swe-grep/internal/history"
)

// mockHistoryStore is an in-memory implementation of the history.Store
// interface for command tests.
type mockHistoryStore struct {
	entries  []history.Entry
	saved    []string
	failSave bool
	closed   bool
}

func (m *mockHistoryStore) Close() error {
	m.closed = true
	return nil
}

func (m *mockHistoryStore) SaveCompare(report *bench.CompareReport) (int64, error) {
	if m.failSave {
		return 0, fmt.Errorf("save failed")
	}
	m.saved = append(m.saved, history.KindCompare)
	return int64(len(m.saved)), nil
}

func (m *mockHistoryStore) SaveStartup(report *bench.StartupReport) (int64, error) {
	if m.failSave {
		return 0, fmt.Errorf("save failed")
	}
	m.saved = append(m.saved, history.KindStartup)
	return int64(len(m.saved)), nil
}

func (m *mockHistoryStore) Recent(limit int) ([]history.Entry, error) {
	if limit > len(m.entries) {
		limit = len(m.entries)
	}
	return m.entries[:limit], nil
}

func (m *mockHistoryStore) Get(id int64) (*history.Entry, error) {
	for i := range m.entries {
		if m.entries[i].ID == id {
			return &m.entries[i], nil
		}
	}
	return nil, fmt.Errorf("%w: id %d", history.ErrNotFound, id)
}

// executeCommand executes a cobra command and returns its combined output.
// A non-zero exit through the exit seam comes back as an "exit-N" error so
// tests can assert on the status without the process dying.
func executeCommand(root *cobra.Command, args ...string) (output string, err error) {
	resetFlags(root)
	b := new(bytes.Buffer)

	// Mock exit
	oldExit := exit
	exit = func(code int) {
		if code != 0 {
			panic(fmt.Sprintf("exit-%d", code))
		}
	}
	defer func() { exit = oldExit }()
	defer func() {
		if r := recover(); r != nil {
			if s, ok := r.(string); ok && strings.HasPrefix(s, "exit-") {
				output = b.String()
				err = errors.New(s)
				return
			}
			panic(r) // Re-panic actual panics
		}
	}()

	root.SetArgs(args)
	root.SetOut(b)
	root.SetErr(b)
	// Mock Stdin to avoid hanging on interactive prompts
	root.SetIn(bytes.NewBufferString(""))
	err = root.Execute()
	return b.String(), err
}

// resetFlags resets all flags to their default values.
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			f.Value.Set(f.DefValue)
			f.Changed = false
		}
	})
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
