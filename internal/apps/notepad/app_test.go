package notepad_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/miniapp/internal/apps/notepad"
	"github.com/GriffinCanCode/miniapp/internal/domain/app"
	"github.com/GriffinCanCode/miniapp/tests/helpers/testutil"
)

func newRunner(t *testing.T, dir string, out *bytes.Buffer, lines ...string) *app.Runner[notepad.State] {
	t.Helper()
	adapters, err := notepad.Adapters()
	require.NoError(t, err)
	return app.NewRunner[notepad.State](notepad.Name, notepad.New()).
		WithAdapters(adapters...).
		WithResourcesPath(dir).
		WithConsole(testutil.Input(lines...), out)
}

// finalNote returns the note Shutdown handed to the state context.
func finalNote(t *testing.T, r *app.Runner[notepad.State]) string {
	t.Helper()
	s, ok := r.Context().Data()
	require.True(t, ok)
	return s.Note
}

func run(t *testing.T, dir string, lines ...string) (string, string) {
	t.Helper()
	var out bytes.Buffer
	r := newRunner(t, dir, &out, lines...)
	require.NoError(t, r.Run(context.Background()))
	return out.String(), finalNote(t, r)
}

func TestAppendClearAndLength(t *testing.T) {
	out, note := run(t, t.TempDir(),
		"1", "Hello",
		"1", " World",
		"3",
		"2",
		"3",
		"6",
	)
	assert.Contains(t, out, "Starting with a new empty note.")
	assert.Contains(t, out, "Append Note: Hello")
	assert.Contains(t, out, "--- Current Note: Hello World ---")
	assert.Contains(t, out, "Note length: 11")
	assert.Contains(t, out, "Note cleared")
	assert.Contains(t, out, "Note length: 0")
	assert.Equal(t, "", note)
}

func TestAppendPreservesWhitespace(t *testing.T) {
	_, note := run(t, t.TempDir(), "1", "  padded  ", "6")
	assert.Equal(t, "  padded  ", note)
}

func TestMenuRendering(t *testing.T) {
	out, _ := run(t, t.TempDir(), "6")
	assert.Contains(t, out, "=== NotePad App ===")
	for _, label := range []string{
		"1. Append Text",
		"2. Clear Note",
		"3. Get Note Length",
		"4. Export to JSON file",
		"5. Import from JSON file",
		"6. Exit",
	} {
		assert.Contains(t, out, label)
	}
	assert.Contains(t, out, "Final note text: ")
	assert.Contains(t, out, "Goodbye!")
}

func TestExportThenImportInNewRun(t *testing.T) {
	dir := t.TempDir()

	out, _ := run(t, dir, "1", "Hello World", "4", "6")
	assert.Contains(t, out, "NotePad state exported successfully to: "+filepath.Join(dir, "NotePad.json"))
	assert.Contains(t, testutil.ReadFile(t, dir, "NotePad.json"), `"note": "Hello World"`)

	out, note := run(t, dir, "5", "6")
	assert.Contains(t, out, "New text: Hello World")
	assert.Equal(t, "Hello World", note)
}

func TestImportReplacesNote(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "NotePad.yaml", "- note: from yaml\n")

	var out bytes.Buffer
	r := newRunner(t, dir, &out, "1", "draft", "5", "6")
	require.NoError(t, r.WithDefaultFormat("yaml").Run(context.Background()))

	assert.Contains(t, out.String(), "5. Import from YAML file")
	assert.Equal(t, "from yaml", finalNote(t, r))
}

func TestImportRejectsMiscasedKeys(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "NotePad.json", `[{"Note": "wrong case"}]`)

	out, note := run(t, dir, "1", "kept", "5", "6")
	assert.Contains(t, out, "Error importing file: parse json")
	assert.Equal(t, "kept", note)
}

func TestEndOfInputWhileAppending(t *testing.T) {
	out, note := run(t, t.TempDir(), "1", "first", "1")
	assert.Contains(t, out, "Enter text to append:")
	assert.Contains(t, out, "Exiting...")
	assert.Equal(t, "first", note)
}

func TestInvalidOption(t *testing.T) {
	out, _ := run(t, t.TempDir(), "7", "6")
	assert.Contains(t, out, "Invalid option. Please choose 1-6.")
}

func TestAppendRejectsInvalidUTF8(t *testing.T) {
	dir := t.TempDir()
	out, note := run(t, dir, "1", "ok", "1", "bad \xff byte", "4", "6")
	assert.Contains(t, out, "Error: text must be valid UTF-8.")
	assert.Equal(t, "ok", note)
	assert.Contains(t, testutil.ReadFile(t, dir, "NotePad.json"), `"note": "ok"`)
}
