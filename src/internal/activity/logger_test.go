package activity

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"hotspot-portal-svc/src/internal/config"
	"hotspot-portal-svc/src/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (Service, string, string) {
	t.Helper()
	dir := t.TempDir()
	eventPath := filepath.Join(dir, "events.log")
	activityPath := filepath.Join(dir, "user_activity.log")

	svc, err := NewService(&config.ActivityConfig{
		EventLogPath:    eventPath,
		ActivityLogPath: activityPath,
	})
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })

	return svc, eventPath, activityPath
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	require.NoError(t, scanner.Err())
	return lines
}

func TestRecordAppendsJSONLine(t *testing.T) {
	svc, eventPath, _ := newTestService(t)

	svc.Record("192.168.4.10", models.ActionUploaded, map[string]any{"count": 2})

	lines := readLines(t, eventPath)
	require.Len(t, lines, 1)

	var entry models.EventEntry
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "192.168.4.10", entry.IP)
	assert.Equal(t, models.ActionUploaded, entry.Action)
	assert.NotEmpty(t, entry.Timestamp)
}

func TestRecordUserActivityIncludesFilename(t *testing.T) {
	svc, _, activityPath := newTestService(t)

	svc.RecordUserActivity("192.168.4.10", models.ActionUploaded, "20240601_120000_ab12cd34_a.jpg")
	svc.RecordUserActivity("192.168.4.10", models.ActionConnected, "")

	lines := readLines(t, activityPath)
	require.Len(t, lines, 2)

	var entry models.UserActivityEntry
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "20240601_120000_ab12cd34_a.jpg", entry.Filename)
}

func TestLogsAreIndependent(t *testing.T) {
	svc, eventPath, activityPath := newTestService(t)

	svc.Record("10.0.0.1", models.ActionConnected, nil)

	assert.Len(t, readLines(t, eventPath), 1)
	assert.Empty(t, readLines(t, activityPath))
}

func TestConcurrentRecordsNeverInterleave(t *testing.T) {
	svc, eventPath, _ := newTestService(t)

	const writers = 8
	const perWriter = 50

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			ip := fmt.Sprintf("10.0.0.%d", w)
			for i := 0; i < perWriter; i++ {
				svc.Record(ip, models.ActionUploaded, map[string]any{"seq": i})
			}
		}(w)
	}
	wg.Wait()

	lines := readLines(t, eventPath)
	require.Len(t, lines, writers*perWriter)

	for _, line := range lines {
		var entry models.EventEntry
		assert.NoError(t, json.Unmarshal([]byte(line), &entry), "line %q must be a complete JSON object", line)
	}
}

func TestNewServiceCreatesLogDirectory(t *testing.T) {
	dir := t.TempDir()
	svc, err := NewService(&config.ActivityConfig{
		EventLogPath:    filepath.Join(dir, "nested", "events.log"),
		ActivityLogPath: filepath.Join(dir, "nested", "user_activity.log"),
	})
	require.NoError(t, err)
	defer svc.Close()

	svc.Record("10.0.0.1", models.ActionConnected, nil)
	assert.FileExists(t, filepath.Join(dir, "nested", "events.log"))
}
