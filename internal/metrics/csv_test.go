package metrics

import (
	"encoding/csv"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edrostering/edflow/internal/entity"
)

func TestFileNameFormatsDdMmHhMmSs(t *testing.T) {
	at := time.Date(2026, time.March, 5, 14, 30, 1, 0, time.UTC)
	assert.Equal(t, "log_0503143001.csv", FileName(at))
}

func TestWriteCSVProducesHeaderAndOneRowPerHour(t *testing.T) {
	dir := t.TempDir()
	rows := []entity.HourlyMetrics{
		{HourIndex: 0, ArrivalsThisHour: 3, WaitingSize: 1, TreatingSize: 2, AvailableRooms: 4, TotalArrivalsCum: 3},
		{HourIndex: 1, ArrivalsThisHour: 2, WaitingSize: 0, TreatingSize: 3, AvailableRooms: 3, TotalArrivalsCum: 5},
	}
	at := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

	path, err := WriteCSV(dir, rows, at)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, header, records[0])
	assert.Equal(t, "3", records[1][1])
	assert.Equal(t, "5", records[2][9])
}
