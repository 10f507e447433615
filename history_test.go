package benchreport

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRun(t *testing.T) {
	dir := t.TempDir()
	run := Run{
		Date:   "1620259200",
		Commit: "0ec8f2d9f",
		Results: []Estimate{
			{Name: "parse_bench", Change: 0.07, Lower: 0.06, Upper: 0.09, Package: "core"},
		},
	}

	require.NoError(t, SaveRun(dir, run))

	got, err := LoadRuns(dir)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, run, got[0])
}

func TestSaveRunBadDate(t *testing.T) {
	err := SaveRun(t.TempDir(), Run{Date: "2021-05-06", Commit: "abc"})
	assert.Error(t, err)
}

func TestLoadRunsIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("not a run"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, SaveRun(dir, Run{Date: "1620259200", Commit: "abc"}))

	got, err := LoadRuns(dir)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestMergeRunsReplacesSameRun(t *testing.T) {
	dst := t.TempDir()
	src := t.TempDir()

	old := Run{Date: "1620259200", Commit: "abc", Results: []Estimate{{Name: "x", Change: 0.01}}}
	require.NoError(t, SaveRun(dst, old))

	patched := Run{Date: "1620259200", Commit: "abc", Results: []Estimate{{Name: "x", Change: 0.09}}}
	extra := Run{Date: "1620345600", Commit: "def", Results: []Estimate{{Name: "x", Change: 0.0}}}
	require.NoError(t, SaveRun(src, patched))
	require.NoError(t, SaveRun(src, extra))

	n, err := MergeRuns(dst, src)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := LoadRuns(dst)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, r := range got {
		if r.Commit == "abc" {
			assert.Equal(t, 0.09, r.Results[0].Change)
		}
	}
}

func TestRunFileName(t *testing.T) {
	tm := time.Date(2021, 5, 6, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2021-05-06_0ec8f2d9f.json", RunFileName(tm, "0ec8f2d9f"))
}

func TestUnixDateToTime(t *testing.T) {
	tm, err := UnixDateToTime("1620259200")
	require.NoError(t, err)
	assert.Equal(t, int64(1620259200), tm.Unix())

	_, err = UnixDateToTime("yesterday")
	assert.Error(t, err)
}
