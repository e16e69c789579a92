package cli

import (
	"bytes"
	"encoding/json"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintVersionText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintVersion(&buf, ToolName, false))

	out := buf.String()
	assert.Contains(t, out, "minijs v"+Version+"\n")
	assert.Contains(t, out, "Go Version: "+runtime.Version())
	assert.NotContains(t, out, "Commit:")
}

func TestPrintVersionJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintVersion(&buf, ToolName, true))

	var got struct {
		Tool        string      `json:"tool"`
		VersionInfo VersionInfo `json:"version_info"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, ToolName, got.Tool)
	assert.Equal(t, *GetVersionInfo(), got.VersionInfo)
}

func TestPrintVersionWithCommit(t *testing.T) {
	old := CommitSHA
	CommitSHA = "abc123"
	t.Cleanup(func() { CommitSHA = old })

	var buf bytes.Buffer
	require.NoError(t, PrintVersion(&buf, ToolName, false))
	assert.Contains(t, buf.String(), "Commit: abc123\n")
}
