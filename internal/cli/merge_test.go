package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exportSumTTL exports the sum dump to path so merge and query tests
// have a real statement file to work with.
func exportSumTTL(t *testing.T, path string) {
	t.Helper()
	cmd := NewExportCommand(&RootOptions{Format: "text"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{filepath.Join("testdata", "sum.json"), "-o", path})
	require.NoError(t, cmd.Execute())
}

func TestMergeSingleFile(t *testing.T) {
	tmpDir := t.TempDir()
	ttl := filepath.Join(tmpDir, "sum.ttl")
	db := filepath.Join(tmpDir, "graph.db")
	exportSumTTL(t, ttl)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewMergeCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--db", db, ttl})

	err := cmd.Execute()
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "✓ Merged 1 file(s): 69 inserted, 0 duplicate")
	assert.Contains(t, buf.String(), ttl+": 69 inserted, 0 duplicate")
}

func TestMergeIsIdempotent(t *testing.T) {
	tmpDir := t.TempDir()
	ttl := filepath.Join(tmpDir, "sum.ttl")
	db := filepath.Join(tmpDir, "graph.db")
	exportSumTTL(t, ttl)

	first := NewMergeCommand(&RootOptions{Format: "text"})
	first.SetOut(&bytes.Buffer{})
	first.SetArgs([]string{"--db", db, ttl})
	require.NoError(t, first.Execute())

	buf := &bytes.Buffer{}
	second := NewMergeCommand(&RootOptions{Format: "text"})
	second.SetOut(buf)
	second.SetArgs([]string{"--db", db, ttl})
	require.NoError(t, second.Execute())

	assert.Contains(t, buf.String(), "✓ Merged 1 file(s): 0 inserted, 69 duplicate",
		"re-merging a file inserts nothing")
}

func TestMergeMultipleFiles(t *testing.T) {
	tmpDir := t.TempDir()
	ttl1 := filepath.Join(tmpDir, "sum1.ttl")
	ttl2 := filepath.Join(tmpDir, "sum2.ttl")
	db := filepath.Join(tmpDir, "graph.db")
	exportSumTTL(t, ttl1)
	data, err := os.ReadFile(ttl1)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(ttl2, data, 0644))

	buf := &bytes.Buffer{}
	cmd := NewMergeCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--db", db, ttl1, ttl2})

	err = cmd.Execute()
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "✓ Merged 2 file(s): 69 inserted, 69 duplicate")
	assert.Contains(t, buf.String(), ttl1+": 69 inserted, 0 duplicate")
	assert.Contains(t, buf.String(), ttl2+": 0 inserted, 69 duplicate")
}

func TestMergeJSON(t *testing.T) {
	tmpDir := t.TempDir()
	ttl := filepath.Join(tmpDir, "sum.ttl")
	db := filepath.Join(tmpDir, "graph.db")
	exportSumTTL(t, ttl)

	buf := &bytes.Buffer{}
	cmd := NewMergeCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--db", db, ttl})

	err := cmd.Execute()
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(69), data["inserted"])
	assert.Equal(t, float64(0), data["duplicate"])

	files, ok := data["files"].([]interface{})
	require.True(t, ok)
	require.Len(t, files, 1)
	entry, ok := files[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "sum_sum", entry["prefix"], "the run records the function prefix from the file header")
	assert.NotEmpty(t, entry["run"])
}

func TestMergeParseError(t *testing.T) {
	tmpDir := t.TempDir()
	bad := filepath.Join(tmpDir, "bad.ttl")
	db := filepath.Join(tmpDir, "graph.db")
	require.NoError(t, os.WriteFile(bad, []byte("this is not a statement\n"), 0644))

	buf := &bytes.Buffer{}
	cmd := NewMergeCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--db", db, bad})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "E004")
	assert.Contains(t, buf.String(), "Error [E004]")
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestMergeMissingFile(t *testing.T) {
	tmpDir := t.TempDir()
	db := filepath.Join(tmpDir, "graph.db")

	buf := &bytes.Buffer{}
	cmd := NewMergeCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--db", db, filepath.Join(tmpDir, "absent.ttl")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "E005")
	assert.Contains(t, buf.String(), "not found")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestMergeRequiresDatabaseFlag(t *testing.T) {
	cmd := NewMergeCommand(&RootOptions{Format: "text"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"sum.ttl"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
