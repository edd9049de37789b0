package portal_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/hours-reporter/portal"
)

func TestFileDriver_PicksNewestSpreadsheet(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "old.xlsx")
	newer := filepath.Join(dir, "newer.xlsm")
	require.NoError(t, os.WriteFile(old, []byte("old-report"), 0o644))
	require.NoError(t, os.WriteFile(newer, []byte("newer-report"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip me"), 0o644))

	// Make the mtime ordering explicit; some filesystems are coarse.
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(old, past, past))

	driver := &portal.FileDriver{Dir: dir}
	path, err := driver.Download(context.Background(), "current-month")
	require.NoError(t, err)
	defer os.Remove(path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "newer-report", string(content))
}

func TestFileDriver_HandsOutPrivateCopy(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "report.xlsx")
	require.NoError(t, os.WriteFile(src, []byte("report"), 0o644))

	driver := &portal.FileDriver{Dir: dir}
	path, err := driver.Download(context.Background(), "current-month")
	require.NoError(t, err)

	assert.NotEqual(t, src, path)

	// The orchestrator removes its copy after the run; the drop
	// directory must survive that.
	require.NoError(t, os.Remove(path))
	_, err = os.Stat(src)
	assert.NoError(t, err)
}

func TestFileDriver_EmptyDirectoryIsAnError(t *testing.T) {
	driver := &portal.FileDriver{Dir: t.TempDir()}
	_, err := driver.Download(context.Background(), "current-month")
	assert.Error(t, err)
}

func TestPassthroughUnlocker(t *testing.T) {
	assert.NoError(t, portal.PassthroughUnlocker{}.Unlock(context.Background(), "whatever.xlsx"))
}
