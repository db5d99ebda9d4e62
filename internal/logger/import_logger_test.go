package logger

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportLoggerStarted(t *testing.T) {
	base, buf := setupTestLogger()
	il := NewImportLogger(base)

	il.LogImportStarted("weeks/week3.json", 2025, 3, 12, 6)

	entry := parseLogOutput(buf)
	require.NotNil(t, entry)
	assert.Equal(t, "import", entry["component"])
	assert.Equal(t, "weeks/week3.json", entry["path"])
	assert.Equal(t, float64(2025), entry["season"])
	assert.Equal(t, float64(3), entry["week"])
	assert.Equal(t, float64(12), entry["rosters"])
	assert.Equal(t, "info", entry["level"])
}

func TestImportLoggerRosterSkipped(t *testing.T) {
	base, buf := setupTestLogger()
	il := NewImportLogger(base)

	il.LogRosterSkipped("team-a", fmt.Errorf("roster validation failed"))

	entry := parseLogOutput(buf)
	require.NotNil(t, entry)
	assert.Equal(t, "team-a", entry["team_id"])
	assert.Equal(t, "roster validation failed", entry["reason"])
	assert.Equal(t, "warning", entry["level"])
}

func TestImportLoggerCompleted(t *testing.T) {
	base, buf := setupTestLogger()
	il := NewImportLogger(base)

	il.LogImportCompleted(12, 180, 6, 1, 0, 450*time.Millisecond)

	entry := parseLogOutput(buf)
	require.NotNil(t, entry)
	assert.Equal(t, float64(12), entry["rosters"])
	assert.Equal(t, float64(180), entry["players"])
	assert.Equal(t, float64(6), entry["matchups"])
	assert.Equal(t, float64(1), entry["validation_errors"])
	assert.Equal(t, float64(450), entry["duration_ms"])
}
