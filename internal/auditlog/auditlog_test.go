package auditlog

import (
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readRows(t *testing.T, path string) [][]string {
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestNewWritesHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log", "audit.csv")

	l, err := New(path)
	require.NoError(t, err)
	require.NoError(t, l.Close())

	rows := readRows(t, path)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"DATE", "LEVEL", "MESSAGE", "ERROR", "FILE", "LINE"}, rows[0])
}

func TestReopenDoesNotDuplicateHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.csv")

	l, err := New(path)
	require.NoError(t, err)
	l.Info("first run")
	require.NoError(t, l.Close())

	l, err = New(path)
	require.NoError(t, err)
	l.Info("second run")
	require.NoError(t, l.Close())

	rows := readRows(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, "MESSAGE", rows[0][2])
	assert.Equal(t, "first run", rows[1][2])
	assert.Equal(t, "second run", rows[2][2])
}

func TestInfoRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.csv")

	l, err := New(path)
	require.NoError(t, err)
	l.Info("starting up")
	require.NoError(t, l.Close())

	rows := readRows(t, path)
	require.Len(t, rows, 2)
	row := rows[1]
	assert.Equal(t, "INFO", row[1])
	assert.Equal(t, "starting up", row[2])
	assert.Equal(t, "", row[3])
	assert.Equal(t, "auditlog_test.go", row[4])
}

func TestInfoWithEmptyMessage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.csv")

	l, err := New(path)
	require.NoError(t, err)
	l.Info("")
	require.NoError(t, l.Close())

	rows := readRows(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, "No message provided.", rows[1][2])
}

func TestErrorRowCarriesErrorDetails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.csv")

	l, err := New(path)
	require.NoError(t, err)
	l.Error("request failed", errors.New("connection refused"))
	require.NoError(t, l.Close())

	rows := readRows(t, path)
	require.Len(t, rows, 2)
	row := rows[1]
	assert.Equal(t, "ERROR", row[1])
	assert.Equal(t, "request failed", row[2])
	assert.Equal(t, "connection refused", row[3])
}

func TestCriticalRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.csv")

	l, err := New(path)
	require.NoError(t, err)
	l.Critical("", errors.New("history corrupt"))
	require.NoError(t, l.Close())

	rows := readRows(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, "CRITICAL", rows[1][1])
	assert.Equal(t, "history corrupt", rows[1][3])
}

func TestFieldsWithCommasSurviveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.csv")

	l, err := New(path)
	require.NoError(t, err)
	l.Error("failed, badly", errors.New("one, two, three"))
	require.NoError(t, l.Close())

	rows := readRows(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, "failed, badly", rows[1][2])
	assert.Equal(t, "one, two, three", rows[1][3])
}
