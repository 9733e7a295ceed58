package opener

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dentalink/dentalink/internal/config"
)

func TestDetectType(t *testing.T) {
	d, err := NewTypeDetector()
	require.NoError(t, err)

	tests := []struct {
		name string
		link string
		want Type
	}{
		{"pdf", "https://cdn.dental.example/papers/caries.pdf", TypePDF},
		{"pdf with query", "https://cdn.dental.example/p.PDF?v=2", TypePDF},
		{"pdf by pattern", "https://journal.example/download?format=pdf", TypePDF},
		{"jpeg", "https://cdn.dental.example/cover.jpeg", TypeImage},
		{"pexels cover", "https://images.pexels.com/photos/5327585/pexels-photo-5327585.jpeg?auto=compress", TypeImage},
		{"html", "https://journal.example/article.html", TypeUnknown},
		{"no extension", "https://journal.example/resource", TypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.DetectType(tt.link))
		})
	}
}

func TestGetDefaultOpener(t *testing.T) {
	d, err := NewTypeDetector()
	require.NoError(t, err)

	want := map[string]string{"darwin": "open", "linux": "xdg-open", "windows": "start"}
	if expected, ok := want[runtime.GOOS]; ok {
		assert.Equal(t, expected, d.GetDefaultOpener())
	} else {
		assert.Equal(t, "open", d.GetDefaultOpener())
	}
}

func TestViewerRegistry_GetCommand(t *testing.T) {
	registry := &ViewerRegistry{viewers: map[string]ViewerDefinition{
		"zathura": {
			Platforms: []string{runtime.GOOS},
			PDF:       &TypeArgs{Args: []string{"--fork"}},
		},
		"elsewhere": {
			Platforms: []string{"plan9"},
			PDF:       &TypeArgs{},
		},
	}}

	cmd, err := registry.GetCommand("zathura", TypePDF, "https://x.example/a.pdf")
	require.NoError(t, err)
	assert.Equal(t, []string{"zathura", "--fork", "https://x.example/a.pdf"}, cmd.Args)

	_, err = registry.GetCommand("zathura", TypeImage, "https://x.example/a.png")
	assert.Error(t, err, "viewer without image support")

	_, err = registry.GetCommand("elsewhere", TypePDF, "https://x.example/a.pdf")
	assert.Error(t, err, "unsupported platform")

	cmd, err = registry.GetCommand("unlisted", TypePDF, "https://x.example/a.pdf")
	require.NoError(t, err)
	assert.Equal(t, []string{"unlisted", "https://x.example/a.pdf"}, cmd.Args)
}

func TestEmbeddedViewersParse(t *testing.T) {
	r, err := NewViewerRegistry()
	require.NoError(t, err)
	assert.Contains(t, r.viewers, "zathura")
	assert.NotNil(t, r.viewers["feh"].Image)
}

func TestViewerRegistry_MergeUserFile(t *testing.T) {
	r := &ViewerRegistry{viewers: map[string]ViewerDefinition{}}
	path := filepath.Join(t.TempDir(), "viewers.toml")
	require.NoError(t, os.WriteFile(path, []byte("[viewers.mupdf]\nplatforms = [\"linux\"]\npdf = { args = [\"-r\", \"96\"] }\n"), 0o644))

	r.merge(path)
	require.Contains(t, r.viewers, "mupdf")
	assert.Equal(t, []string{"-r", "96"}, r.viewers["mupdf"].PDF.Args)
}

func newTestLauncher(t *testing.T) (*Launcher, *[]*exec.Cmd) {
	t.Helper()
	cfg := config.TestConfig()
	cfg.Media.DefaultOpener = "test-opener"
	cfg.Media.Linux = config.MediaPlayers{}
	cfg.Media.Darwin = config.MediaPlayers{}
	cfg.Media.Windows = config.MediaPlayers{}

	l := NewLauncher(cfg)
	var started []*exec.Cmd
	l.start = func(cmd *exec.Cmd) error {
		started = append(started, cmd)
		return nil
	}
	return l, &started
}

func TestLauncher_Open(t *testing.T) {
	l, started := newTestLauncher(t)

	require.NoError(t, l.Open("https://cdn.dental.example/papers/caries.pdf"))
	require.Len(t, *started, 1)
	assert.Equal(t, "test-opener", (*started)[0].Args[0])
	assert.Equal(t, "https://cdn.dental.example/papers/caries.pdf", (*started)[0].Args[len((*started)[0].Args)-1])
}

func TestLauncher_OpenRejectsBadLinks(t *testing.T) {
	l, started := newTestLauncher(t)

	assert.Error(t, l.Open("javascript:alert(1)"))
	assert.Error(t, l.Open("file:///etc/passwd"))
	assert.Error(t, l.Open(""))
	assert.Empty(t, *started)
}

func TestLauncher_StartFailure(t *testing.T) {
	l, _ := newTestLauncher(t)
	l.start = func(*exec.Cmd) error { return errors.New("boom") }

	err := l.Open("https://cdn.dental.example/cover.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "test-opener")
}
