package audit

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_Record(t *testing.T) {
	t.Run("creates log file on first record", func(t *testing.T) {
		dir := t.TempDir()
		l := New()

		require.NoError(t, l.Record(dir, "Upload succeeded! File: orders_001.csv"))

		data, err := os.ReadFile(filepath.Join(dir, FileName))
		require.NoError(t, err)
		assert.Contains(t, string(data), "Upload succeeded! File: orders_001.csv")
	})

	t.Run("formats line with local timestamp", func(t *testing.T) {
		dir := t.TempDir()
		l := New()
		l.now = func() time.Time {
			return time.Date(2026, 8, 31, 14, 30, 5, 0, time.Local)
		}

		require.NoError(t, l.Record(dir, "Upload succeeded! File: a.csv"))

		data, err := os.ReadFile(filepath.Join(dir, FileName))
		require.NoError(t, err)
		assert.Equal(t, "2026-08-31 14:30:05 - Upload succeeded! File: a.csv\n", string(data))
	})

	t.Run("appends records in order", func(t *testing.T) {
		dir := t.TempDir()
		l := New()

		require.NoError(t, l.Record(dir, "first"))
		require.NoError(t, l.Record(dir, "second"))

		data, err := os.ReadFile(filepath.Join(dir, FileName))
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
		require.Len(t, lines, 2)
		assert.Contains(t, lines[0], "first")
		assert.Contains(t, lines[1], "second")
	})

	t.Run("fails for non-existent directory", func(t *testing.T) {
		l := New()

		err := l.Record("/non/existent/dir", "message")

		require.Error(t, err)
	})

	t.Run("serialises concurrent appends to the same log", func(t *testing.T) {
		dir := t.TempDir()
		l := New()

		const writers = 20
		var wg sync.WaitGroup
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				assert.NoError(t, l.Record(dir, fmt.Sprintf("record %d", n)))
			}(i)
		}
		wg.Wait()

		data, err := os.ReadFile(filepath.Join(dir, FileName))
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
		require.Len(t, lines, writers)
		for _, line := range lines {
			// Every line is whole: timestamp, separator, message.
			assert.Regexp(t, `^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2} - record \d+$`, line)
		}
	})
}
