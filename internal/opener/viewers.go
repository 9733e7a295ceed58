package opener

import (
	_ "embed"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/pelletier/go-toml/v2"
)

//go:embed viewers.toml
var viewersTOML []byte

// ViewerDefinition defines how a viewer should be invoked
type ViewerDefinition struct {
	Description string      `toml:"description"`
	Platforms   []string    `toml:"platforms"`
	Image       *TypeArgs   `toml:"image,omitempty"`
	PDF         *TypeArgs   `toml:"pdf,omitempty"`
}

// TypeArgs holds invocation arguments for one file type.
type TypeArgs struct {
	Args        []string `toml:"args,omitempty"`
	ArgsDarwin  []string `toml:"args_darwin,omitempty"`
	ArgsLinux   []string `toml:"args_linux,omitempty"`
	ArgsWindows []string `toml:"args_windows,omitempty"`
}

type ViewersConfig struct {
	Viewers map[string]ViewerDefinition `toml:"viewers"`
}

// ViewerRegistry manages viewer definitions
type ViewerRegistry struct {
	viewers map[string]ViewerDefinition
}

// NewViewerRegistry creates a registry from the embedded TOML, merged with
// ~/.config/dentalink/viewers.toml when present.
func NewViewerRegistry() (*ViewerRegistry, error) {
	var config ViewersConfig
	if err := toml.Unmarshal(viewersTOML, &config); err != nil {
		return nil, fmt.Errorf("parsing viewers.toml: %w", err)
	}

	registry := &ViewerRegistry{viewers: config.Viewers}
	if home, err := os.UserHomeDir(); err == nil {
		registry.merge(filepath.Join(home, ".config", "dentalink", "viewers.toml"))
	}
	return registry, nil
}

func (r *ViewerRegistry) merge(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	var userConfig ViewersConfig
	if err := toml.Unmarshal(data, &userConfig); err != nil {
		return
	}
	for name, def := range userConfig.Viewers {
		r.viewers[name] = def
	}
}

// GetCommand builds the command for a specific viewer and file type
func (r *ViewerRegistry) GetCommand(viewer string, fileType Type, link string) (*exec.Cmd, error) {
	def, exists := r.viewers[viewer]
	if !exists {
		return exec.Command(viewer, link), nil
	}

	supportsPlatform := false
	for _, p := range def.Platforms {
		if p == runtime.GOOS {
			supportsPlatform = true
			break
		}
	}
	if !supportsPlatform {
		return nil, fmt.Errorf("%s not supported on %s", viewer, runtime.GOOS)
	}

	var config *TypeArgs
	switch fileType {
	case TypeImage:
		config = def.Image
	case TypePDF:
		config = def.PDF
	}
	if config == nil {
		return nil, fmt.Errorf("%s doesn't support %s files", viewer, fileType)
	}

	args := append(getArgs(config), link)
	return exec.Command(viewer, args...), nil
}

// getArgs returns the appropriate args for the current platform
func getArgs(config *TypeArgs) []string {
	var platform []string
	switch runtime.GOOS {
	case "darwin":
		platform = config.ArgsDarwin
	case "linux":
		platform = config.ArgsLinux
	case "windows":
		platform = config.ArgsWindows
	}
	if len(platform) > 0 {
		return append([]string(nil), platform...)
	}
	return append([]string(nil), config.Args...)
}
