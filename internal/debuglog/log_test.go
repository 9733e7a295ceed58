package debuglog

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLog(t *testing.T, level LogLevel) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf, level)
	t.Cleanup(func() { SetOutput(nil, LevelOff) })
	return &buf
}

func lines(buf *bytes.Buffer) []string {
	out := strings.TrimSpace(buf.String())
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

func TestParseLogLevel_Aliases(t *testing.T) {
	cases := map[string]LogLevel{
		" debug ": LevelDebug,
		"Info":    LevelInfo,
		"warning": LevelWarn,
		"ERROR":   LevelError,
		"none":    LevelOff,
		"off":     LevelOff,
		"verbose": LevelInfo,
		"":        LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLogLevel(in), "input %q", in)
	}
	assert.Equal(t, "OFF", ParseLogLevel("NONE").String())
	assert.Equal(t, "UNKNOWN", LogLevel(42).String())
}

func TestSetOutput_TextFormat(t *testing.T) {
	buf := captureLog(t, LevelDebug)

	Infof("loaded %d articles", 3)

	got := lines(buf)
	require.Len(t, got, 1)
	assert.Contains(t, got[0], "level=INFO")
	assert.Contains(t, got[0], `msg="loaded 3 articles"`)
	assert.Contains(t, got[0], "app=dentalink")
}

func TestSetOutput_LevelThreshold(t *testing.T) {
	tests := []struct {
		level LogLevel
		want  []string
	}{
		{LevelDebug, []string{"level=DEBUG", "level=INFO", "level=WARN", "level=ERROR"}},
		{LevelWarn, []string{"level=WARN", "level=ERROR"}},
		{LevelError, []string{"level=ERROR"}},
		{LevelOff, nil},
	}
	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			buf := captureLog(t, tt.level)

			Debugf("d")
			Infof("i")
			Warnf("w")
			Errorf("e")

			got := lines(buf)
			require.Len(t, got, len(tt.want))
			for i, prefix := range tt.want {
				assert.Contains(t, got[i], prefix)
			}
		})
	}
}

func TestWithFields_SortedKeys(t *testing.T) {
	buf := captureLog(t, LevelDebug)

	WithFields(map[string]any{"view": "research", "gen": 4, "base": "/api"}).Warnf("stale settle")

	got := lines(buf)
	require.Len(t, got, 1)
	line := got[0]
	assert.Contains(t, line, "level=WARN")
	base := strings.Index(line, "base=/api")
	gen := strings.Index(line, "gen=4")
	view := strings.Index(line, "view=research")
	require.True(t, base > 0 && gen > 0 && view > 0, line)
	assert.Less(t, base, gen)
	assert.Less(t, gen, view)
	assert.Less(t, strings.Index(line, "app=dentalink"), base)
}

func TestWithFields_RespectsLevel(t *testing.T) {
	buf := captureLog(t, LevelError)

	fl := WithFields(map[string]any{"path": "/articles"})
	fl.Debugf("hidden")
	fl.Infof("hidden")
	fl.Errorf("shown")

	got := lines(buf)
	require.Len(t, got, 1)
	assert.Contains(t, got[0], "path=/articles")
}

func TestClose_StopsOutput(t *testing.T) {
	buf := captureLog(t, LevelInfo)

	Infof("before")
	require.NoError(t, Close())
	Infof("after")

	got := lines(buf)
	require.Len(t, got, 1)
	assert.Contains(t, got[0], "before")
	assert.NoError(t, Close(), "closing twice is fine")
}

func TestSetLevel_RaisesThreshold(t *testing.T) {
	buf := captureLog(t, LevelDebug)

	SetLevel(LevelError)
	assert.Equal(t, LevelError, GetLevel())
	Warnf("dropped")
	assert.Empty(t, lines(buf))

	SetLevel(LevelOff)
	Errorf("dropped too")
	assert.Empty(t, lines(buf))
}

func TestSetup_WritesFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "nested", "dentalink.log")
	require.NoError(t, Setup(LevelWarn, logPath))
	t.Cleanup(func() { _ = Close() })

	Infof("skipped")
	Errorf("fetch failed: %s", "timeout")
	require.NoError(t, Close())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "skipped")
	assert.Contains(t, string(data), "level=ERROR")
	assert.Contains(t, string(data), `msg="fetch failed: timeout"`)
}

func TestSetup_OffCreatesNothing(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "off.log")
	require.NoError(t, Setup(LevelOff, logPath))
	t.Cleanup(func() { _ = Close() })

	Errorf("nothing")

	_, err := os.Stat(logPath)
	assert.True(t, os.IsNotExist(err))
	assert.Equal(t, LevelOff, GetLevel())
}

func TestConcurrentLoggingAndLevelChanges(t *testing.T) {
	buf := captureLog(t, LevelInfo)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				WithFields(map[string]any{"worker": i}).Infof("tick %d", j)
				if j%10 == 0 {
					SetLevel(LevelInfo)
					_ = GetLevel()
				}
			}
		}(i)
	}
	wg.Wait()

	got := lines(buf)
	assert.Len(t, got, 8*50)
	for _, l := range got {
		assert.Contains(t, l, "app=dentalink")
	}
}
