package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "batch.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCSVCanonicalHeaders(t *testing.T) {
	path := writeCSV(t, `Transcript_ID,Agent_ID,Agent_Name,Transcript_Call
T100,A7,Dana,"Agent: thanks for calling..."
T101,A8,Robin,"Agent: hello..."
`)

	items, err := Load(path)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "T100", items[0].ID)
	assert.Equal(t, "A7", items[0].AgentID)
	assert.Equal(t, "Dana", items[0].AgentName)
	assert.Equal(t, "Agent: thanks for calling...", items[0].Transcript)
}

func TestLoadCSVAliasHeaders(t *testing.T) {
	path := writeCSV(t, `call_id,rep_id,agent,text
c1,r1,Jesse,hello there
`)

	items, err := Load(path)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "c1", items[0].ID)
	assert.Equal(t, "r1", items[0].AgentID)
	assert.Equal(t, "Jesse", items[0].AgentName)
}

func TestLoadCSVSynthesizesIDs(t *testing.T) {
	path := writeCSV(t, `transcript
first call text
second call text
`)

	items, err := Load(path)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "T1", items[0].ID)
	assert.Equal(t, "A1", items[0].AgentID)
	assert.Equal(t, "T2", items[1].ID)
	assert.Equal(t, "A2", items[1].AgentID)
}

func TestLoadCSVSkipsEmptyTranscripts(t *testing.T) {
	path := writeCSV(t, `transcript_id,transcript
t1,real content
t2,
t3,"  "
t4,more content
`)

	items, err := Load(path)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "t1", items[0].ID)
	assert.Equal(t, "t4", items[1].ID)
}

func TestLoadCSVMissingTranscriptColumn(t *testing.T) {
	path := writeCSV(t, `id,agent_id
t1,a1
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no transcript column")
}

func TestLoadCSVAllRowsEmpty(t *testing.T) {
	path := writeCSV(t, "transcript\n\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no rows with a transcript")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}

func TestLoadCSVShortRows(t *testing.T) {
	path := writeCSV(t, `transcript_id,agent_id,agent_name,transcript
t1,a1,Dana,content here
t2,a2
`)

	// The short row has no transcript cell and is skipped.
	items, err := Load(path)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "t1", items[0].ID)
}

func TestHeaderMatchingIsCaseInsensitive(t *testing.T) {
	path := writeCSV(t, `TRANSCRIPT_ID,AGENT_ID,TRANSCRIPT
t1,a1,content
`)

	items, err := Load(path)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "t1", items[0].ID)
}
