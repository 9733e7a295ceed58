package opener

import (
	_ "embed"
	"net/url"
	"path"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed file_types.toml
var fileTypesTOML []byte

type Type int

const (
	TypeUnknown Type = iota
	TypePDF
	TypeImage
)

func (t Type) String() string {
	switch t {
	case TypePDF:
		return "pdf"
	case TypeImage:
		return "image"
	default:
		return "unknown"
	}
}

type TypeConfig struct {
	Extensions  []string `toml:"extensions"`
	URLPatterns []string `toml:"url_patterns"`
}

type TypesConfig struct {
	PDF       TypeConfig                `toml:"pdf"`
	Image     TypeConfig                `toml:"image"`
	Platforms map[string]PlatformConfig `toml:"platforms"`
}

type PlatformConfig struct {
	DefaultOpener string `toml:"default_opener"`
}

type TypeDetector struct {
	config *TypesConfig
}

func NewTypeDetector() (*TypeDetector, error) {
	var config TypesConfig
	if err := toml.Unmarshal(fileTypesTOML, &config); err != nil {
		return nil, err
	}

	return &TypeDetector{config: &config}, nil
}

// DetectType classifies a link by extension first, then by URL pattern.
func (d *TypeDetector) DetectType(link string) Type {
	lower := strings.ToLower(link)

	p := lower
	if u, err := url.Parse(lower); err == nil {
		p = u.Path
	}
	ext := strings.TrimPrefix(path.Ext(p), ".")

	if ext != "" {
		if contains(d.config.PDF.Extensions, ext) {
			return TypePDF
		}
		if contains(d.config.Image.Extensions, ext) {
			return TypeImage
		}
	}

	if matchesPattern(lower, d.config.PDF.URLPatterns) {
		return TypePDF
	}
	if matchesPattern(lower, d.config.Image.URLPatterns) {
		return TypeImage
	}

	return TypeUnknown
}

func (d *TypeDetector) GetDefaultOpener() string {
	if platformConfig, ok := d.config.Platforms[runtime.GOOS]; ok {
		return platformConfig.DefaultOpener
	}
	if fallback, ok := d.config.Platforms["fallback"]; ok {
		return fallback.DefaultOpener
	}
	return "open"
}

func contains(values []string, v string) bool {
	for _, e := range values {
		if e == v {
			return true
		}
	}
	return false
}

func matchesPattern(link string, patterns []string) bool {
	for _, pattern := range patterns {
		if strings.Contains(link, pattern) {
			return true
		}
	}
	return false
}
