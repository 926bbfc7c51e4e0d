package export

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/julianstephens/plantpal/internal/models"
)

func TestWriteHistory(t *testing.T) {
	at := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)
	logs := []models.ActivityLog{
		{ActivityType: models.ActivityStageChange, Note: "seedling -> sprout", CreatedAt: at.Add(time.Minute)},
		{ActivityType: models.ActivityMoodGrowth, Note: "happy mood", Value: 0.85, GrowthImpact: 3, CreatedAt: at},
	}

	path := filepath.Join(t.TempDir(), "history.xlsx")
	require.NoError(t, WriteHistory(path, logs, time.UTC))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(HistorySheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, HistoryHeaders, rows[0])
	assert.Equal(t, []string{"2024-06-01T09:31:00Z", "stage_change", "seedling -> sprout", "0", "0"}, rows[1])
	assert.Equal(t, []string{"2024-06-01T09:30:00Z", "mood_growth", "happy mood", "0.85", "3"}, rows[2])
}

func TestWriteHistoryEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, WriteHistory(path, nil, nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(HistorySheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestWriteHistoryBadPath(t *testing.T) {
	err := WriteHistory(filepath.Join(t.TempDir(), "missing", "history.xlsx"), nil, time.UTC)
	assert.Error(t, err)
}
