package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/arthur-debert/scaffold/pkg/types"
	"github.com/arthur-debert/scaffold/pkg/ui"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRun() *types.RunResult {
	return &types.RunResult{
		Scaffold: "core",
		BaseDir:  "/tmp/out",
		Mode:     types.ModeDirect,
		Entries: []types.EntryResult{
			{Kind: types.EntryDirectory, Path: "app", Status: types.StatusCreated},
			{Kind: types.EntryDirectory, Path: "lib", Status: types.StatusExisted},
			{Kind: types.EntryFile, Path: "app/globals.css", Status: types.StatusCreated, Bytes: 10},
			{Kind: types.EntryFile, Path: "lib/database.ts", Status: types.StatusSkipped},
		},
	}
}

func TestNoticeLabel(t *testing.T) {
	assert.Equal(t, "Created", NoticeLabel(types.StatusCreated))
	assert.Equal(t, "Created", NoticeLabel(types.StatusExisted))
	assert.Equal(t, "Created", NoticeLabel(types.StatusOverwritten))
	assert.Equal(t, "Skipped", NoticeLabel(types.StatusSkipped))
	assert.Equal(t, "Failed", NoticeLabel(types.StatusFailed))
}

func TestTextReporter_Notices(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(ui.FormatText, &buf)

	run := sampleRun()
	for _, e := range run.Entries {
		r.Entry(e)
	}
	r.Done(run)

	expected := "Created: app\n" +
		"Created: lib\n" +
		"Created: app/globals.css\n" +
		"Skipped: lib/database.ts\n" +
		"\n✓ core files created successfully!\n"
	assert.Equal(t, expected, buf.String())
}

func TestTextReporter_DryRunNote(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(ui.FormatText, &buf)

	run := sampleRun()
	run.DryRun = true
	r.Done(run)

	assert.Contains(t, buf.String(), "dry run")
}

func TestTextReporter_Templates(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(ui.FormatText, &buf)

	err := r.Templates(&types.ListTemplatesResult{Templates: []types.TemplateInfo{
		{Name: "api", Description: "API routes\nsecond line"},
		{Name: "components", Description: "React components"},
	}})
	require.NoError(t, err)

	assert.Equal(t, "api         API routes\ncomponents  React components\n", buf.String())
}

func TestTextReporter_Describe(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(ui.FormatText, &buf)

	info := types.TemplateInfo{
		Name:        "core",
		Description: "Application shell",
		Directories: []string{"app"},
		Files:       []string{"app/page.tsx"},
	}
	require.NoError(t, r.Describe(info))

	assert.Equal(t, DescribeMarkdown(info), buf.String())
	assert.Contains(t, buf.String(), "# core")
	assert.Contains(t, buf.String(), "- `app/`")
	assert.Contains(t, buf.String(), "- `app/page.tsx`")
}

func TestTerminalReporter_Describe(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(ui.FormatTerminal, &buf)

	err := r.Describe(types.TemplateInfo{Name: "core", Files: []string{"app/page.tsx"}})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "app/page.tsx")
}

func TestJSONReporter_Done(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(ui.FormatJSON, &buf)

	run := sampleRun()
	for _, e := range run.Entries {
		r.Entry(e)
	}
	r.Done(run)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "core", doc["scaffold"])
	assert.Equal(t, float64(2), doc["directories"])
	assert.Equal(t, float64(1), doc["files"])
	assert.Equal(t, float64(1), doc["skipped"])
	assert.Len(t, doc["entries"], 4)
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("stdout closed")
}

func TestJSONReporter_DoneLogsWriteFailure(t *testing.T) {
	var logs bytes.Buffer
	saved := log.Logger
	log.Logger = zerolog.New(&logs).Level(zerolog.DebugLevel)
	t.Cleanup(func() { log.Logger = saved })

	r := NewReporter(ui.FormatJSON, brokenWriter{})
	r.Done(sampleRun())

	assert.Contains(t, logs.String(), "Failed to write run summary")
	assert.Contains(t, logs.String(), "stdout closed")
	assert.Contains(t, logs.String(), `"component":"output"`)
}

func TestJSONReporter_Message(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(ui.FormatJSON, &buf)

	require.NoError(t, r.Message("hello"))
	assert.JSONEq(t, `{"message":"hello"}`, buf.String())
}

func TestNewReporter_AutoOnBuffer(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(ui.FormatAuto, &buf)
	r.Entry(types.EntryResult{Kind: types.EntryFile, Path: "a.txt", Status: types.StatusCreated})

	assert.Equal(t, "Created: a.txt\n", buf.String())
}
