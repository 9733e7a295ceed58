package opener

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/dentalink/dentalink/internal/config"
	"github.com/dentalink/dentalink/internal/debuglog"
	"github.com/dentalink/dentalink/internal/validation"
)

// Launcher opens research files and cover images with an external viewer.
type Launcher struct {
	imageViewer   string
	pdfViewer     string
	defaultOpener string
	registry      *ViewerRegistry
	detector      *TypeDetector
	validator     *validation.URLValidator

	// start launches the command; replaced in tests.
	start func(*exec.Cmd) error
}

func NewLauncher(cfg *config.Config) *Launcher {
	registry, err := NewViewerRegistry()
	if err != nil {
		debuglog.Warnf("opener: viewer definitions unavailable: %v", err)
		registry = &ViewerRegistry{viewers: make(map[string]ViewerDefinition)}
	}

	detector, err := NewTypeDetector()
	if err != nil {
		debuglog.Warnf("opener: file types unavailable: %v", err)
		detector = &TypeDetector{config: &TypesConfig{}}
	}

	defaultOpener := cfg.Media.DefaultOpener
	if defaultOpener == "" {
		defaultOpener = detector.GetDefaultOpener()
	}

	l := &Launcher{
		defaultOpener: defaultOpener,
		registry:      registry,
		detector:      detector,
		validator:     validation.NewLinkValidator(),
		start:         startDetached,
	}

	var players config.MediaPlayers
	switch runtime.GOOS {
	case "darwin":
		players = cfg.Media.Darwin
	case "linux":
		players = cfg.Media.Linux
	case "windows":
		players = cfg.Media.Windows
	default:
		players = cfg.Media.Darwin
	}

	l.imageViewer = findCommand(players.Image...)
	l.pdfViewer = findCommand(players.PDF...)

	if l.imageViewer == "" {
		l.imageViewer = l.defaultOpener
	}
	if l.pdfViewer == "" {
		l.pdfViewer = l.defaultOpener
	}

	return l
}

// Open validates link and hands it to the viewer for its file type.
func (l *Launcher) Open(link string) error {
	normalized, err := l.validator.ValidateAndNormalize(link)
	if err != nil {
		return fmt.Errorf("refusing to open link: %w", err)
	}

	fileType := l.detector.DetectType(normalized)

	var viewer string
	switch fileType {
	case TypePDF:
		viewer = l.pdfViewer
	case TypeImage:
		viewer = l.imageViewer
	default:
		viewer = l.defaultOpener
	}
	if viewer == "" {
		viewer = l.detector.GetDefaultOpener()
	}
	if viewer == "" {
		return fmt.Errorf("no application found to open URL")
	}

	cmd, err := l.registry.GetCommand(viewer, fileType, normalized)
	if err != nil {
		cmd = exec.Command(viewer, normalized)
	}

	debuglog.WithFields(map[string]any{"viewer": viewer, "type": fileType.String()}).Infof("opening %s", normalized)
	if err := l.start(cmd); err != nil {
		return fmt.Errorf("failed to start %s: %w", viewer, err)
	}
	return nil
}

// Start GUI applications detached
func startDetached(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}

func findCommand(commands ...string) string {
	for _, cmd := range commands {
		if _, err := exec.LookPath(cmd); err == nil {
			return cmd
		}
	}
	return ""
}
