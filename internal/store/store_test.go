package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"howett.net/plist"
)

func samplePrefs() map[string]any {
	return map[string]any{
		KeyDefaultGUID: "G1",
		KeyBookmarks: []any{
			map[string]any{KeyGUID: "G0", KeyName: "Other", "Columns": int64(100)},
			map[string]any{KeyGUID: "G1", KeyName: "Main", "Columns": int64(80)},
		},
		"SUEnableAutomaticChecks": true,
		"NoSyncWindowRestores":    false,
	}
}

func writePlist(t *testing.T, root map[string]any, format int) string {
	t.Helper()
	data, err := plist.Marshal(root, format)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "com.googlecode.iterm2.plist")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func quietLogger() *log.Logger {
	l := log.New(os.Stderr)
	l.SetLevel(log.FatalLevel)
	return l
}

func TestAccessor_LoadMissing(t *testing.T) {
	a := NewAccessor(filepath.Join(t.TempDir(), "missing.plist"), quietLogger())

	_, err := a.Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestAccessor_LoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.plist")
	require.NoError(t, os.WriteFile(path, []byte("bplist00truncated"), 0o644))

	_, err := NewAccessor(path, quietLogger()).Load()
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestAccessor_RoundTripPreservesFormatAndKeys(t *testing.T) {
	tests := []struct {
		name   string
		format int
	}{
		{name: "xml", format: plist.XMLFormat},
		{name: "binary", format: plist.BinaryFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writePlist(t, samplePrefs(), tt.format)
			a := NewAccessor(path, quietLogger())

			doc, err := a.Load()
			require.NoError(t, err)
			assert.Equal(t, tt.format, doc.Format)

			rec, ok := doc.Record("G1")
			require.True(t, ok)
			rec["Rows"] = int64(35)

			require.NoError(t, a.Save(doc))

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			var root map[string]any
			format, err := plist.Unmarshal(data, &root)
			require.NoError(t, err)
			assert.Equal(t, tt.format, format)

			assert.Equal(t, true, root["SUEnableAutomaticChecks"])
			assert.Equal(t, false, root["NoSyncWindowRestores"])
			assert.Equal(t, "G1", root[KeyDefaultGUID])

			reloaded, err := a.Load()
			require.NoError(t, err)
			main, ok := reloaded.Record("G1")
			require.True(t, ok)
			assert.EqualValues(t, 35, main["Rows"])
			assert.EqualValues(t, 80, main["Columns"])
			other, ok := reloaded.Record("G0")
			require.True(t, ok)
			assert.NotContains(t, other, "Rows")
		})
	}
}

func TestAccessor_SaveKeepsPermissions(t *testing.T) {
	path := writePlist(t, samplePrefs(), plist.XMLFormat)
	require.NoError(t, os.Chmod(path, 0o640))
	a := NewAccessor(path, quietLogger())

	doc, err := a.Load()
	require.NoError(t, err)
	require.NoError(t, a.Save(doc))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file should not be left behind")
}

func TestAccessor_SaveThroughSymlink(t *testing.T) {
	target := writePlist(t, samplePrefs(), plist.BinaryFormat)
	link := filepath.Join(t.TempDir(), "com.googlecode.iterm2.plist")
	require.NoError(t, os.Symlink(target, link))

	a := NewAccessor(link, quietLogger())
	doc, err := a.Load()
	require.NoError(t, err)
	doc.Root["PromptOnQuit"] = true
	require.NoError(t, a.Save(doc))

	info, err := os.Lstat(link)
	require.NoError(t, err)
	assert.Equal(t, os.ModeSymlink, info.Mode()&os.ModeSymlink, "link must survive the save")

	saved, err := NewAccessor(target, quietLogger()).Load()
	require.NoError(t, err)
	assert.Equal(t, true, saved.Root["PromptOnQuit"])
	assert.Equal(t, plist.BinaryFormat, saved.Format)

	entries, err := os.ReadDir(filepath.Dir(target))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file should not be left behind")
}

func TestEncode_Empty(t *testing.T) {
	_, err := Encode(nil)
	assert.Error(t, err)
}

func TestDocument_Lookup(t *testing.T) {
	doc := NewDocument(samplePrefs())
	doc.Root[KeyBookmarks] = append(doc.Root[KeyBookmarks].([]any), "not a dict")

	assert.Equal(t, "G1", doc.DefaultGUID())
	assert.Len(t, doc.Records(), 2)
	assert.Equal(t, "XML", doc.FormatName())

	rec, ok := doc.Record("G1")
	require.True(t, ok)
	assert.Equal(t, "Main", rec.Name())
	assert.Equal(t, "G1", rec.GUID())

	_, ok = doc.Record("G9")
	assert.False(t, ok)
}

func TestDocument_MissingFields(t *testing.T) {
	doc := NewDocument(nil)

	assert.Empty(t, doc.DefaultGUID())
	assert.Empty(t, doc.Records())
	assert.Equal(t, "Default", Record{}.Name())
}

func TestDocument_RecordSharesStorage(t *testing.T) {
	doc := NewDocument(samplePrefs())

	rec, ok := doc.Record("G0")
	require.True(t, ok)
	rec["Transparency"] = 0.5

	raw := doc.Root[KeyBookmarks].([]any)[0].(map[string]any)
	assert.Equal(t, 0.5, raw["Transparency"])
}
