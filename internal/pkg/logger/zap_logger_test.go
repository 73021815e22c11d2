package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsolatedLoggerWritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ws.log")
	l := NewIsolatedLogger(path)

	l.Info("CHAT", "turn completed", map[string]interface{}{"chat_id": 7})
	l.Debug("CHAT", "below file level", nil)
	_ = l.Sync()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `"module":"CHAT"`)
	assert.Contains(t, lines[0], `"message":"turn completed"`)
	assert.Contains(t, lines[0], `"chat_id":7`)
}

func TestNopLoggerAcceptsNilDetails(t *testing.T) {
	var l ILogger = NewNopLogger()
	assert.NotPanics(t, func() {
		l.Error("CHAT", "nil details", nil)
	})
}
