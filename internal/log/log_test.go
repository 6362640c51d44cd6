package log

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	ts := time.Date(2025, 12, 6, 10, 45, 0, 0, time.UTC)

	got := format(ts, LevelError, CatSearch, "lookup failed", "query", "lodash", "status", 502)
	require.Equal(t, "2025-12-06T10:45:00 [ERROR] [search] lookup failed query=lodash status=502\n", got)
}

func TestFormat_OddFields(t *testing.T) {
	ts := time.Date(2025, 12, 6, 10, 45, 0, 0, time.UTC)

	got := format(ts, LevelInfo, CatUI, "resize", "width")
	require.Equal(t, "2025-12-06T10:45:00 [INFO] [ui] resize width=<missing>\n", got)
}

func TestLog_NoLoggerIsNoop(t *testing.T) {
	Reset()
	require.NotPanics(t, func() {
		Info(CatConfig, "nothing happens")
		ErrorErr(CatConfig, "still nothing", errors.New("boom"))
	})
}

func TestLog_MinLevel(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(Reset)

	SetMinLevel(LevelWarn)
	Debug(CatSearch, "dropped")
	Info(CatSearch, "dropped")
	Warn(CatSearch, "kept")

	require.NotContains(t, buf.String(), "dropped")
	require.Contains(t, buf.String(), "[WARN] [search] kept")
}

func TestLog_Disabled(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(Reset)

	SetEnabled(false)
	Error(CatFavorites, "hidden")
	require.Empty(t, buf.String())

	SetEnabled(true)
	Error(CatFavorites, "visible")
	require.Contains(t, buf.String(), "visible")
}

func TestErrorErr_NilError(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(Reset)

	ErrorErr(CatFavorites, "commit failed", nil, "name", "lodash")
	require.Contains(t, buf.String(), "name=lodash error=<nil>")
}

func TestInit_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	cleanup, err := Init(path)
	require.NoError(t, err)
	t.Cleanup(Reset)

	Info(CatConfig, "hello")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "[INFO] [config] hello")
}
