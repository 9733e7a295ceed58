package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/dentalink/dentalink/internal/validation"
)

type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Site     SiteConfig     `mapstructure:"site"`
	Listing  ListingConfig  `mapstructure:"listing"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	UI       UIConfig       `mapstructure:"ui"`
	Media    MediaConfig    `mapstructure:"media"`
	Keys     KeyConfig      `mapstructure:"keys"`
}

// APIConfig points at the content API. Timeout 0 leaves the transport default in place.
type APIConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// SiteConfig is the public web address used when sharing a location.
type SiteConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

type ListingConfig struct {
	ArticleLimit        int `mapstructure:"article_limit"`
	PageLimit           int `mapstructure:"page_limit"`
	ResearchLimit       int `mapstructure:"research_limit"`
	HomeLatest          int `mapstructure:"home_latest"`
	CategorySourceLimit int `mapstructure:"category_source_limit"`
	CategoryCount       int `mapstructure:"category_count"`
	RelatedLimit        int `mapstructure:"related_limit"`
	Skeletons           int `mapstructure:"skeletons"`
	SummaryLines        int `mapstructure:"summary_lines"`
	AbstractLines       int `mapstructure:"abstract_lines"`
}

type DatabaseConfig struct {
	Path    string        `mapstructure:"path"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

type UIConfig struct {
	Colors           UIColors `mapstructure:"colors"`
	CardWidth        int      `mapstructure:"card_width"`
	WordWrapMaxWidth int      `mapstructure:"word_wrap_max_width"`
	WordWrapMinWidth int      `mapstructure:"word_wrap_min_width"`
}

type UIColors struct {
	Primary   string `mapstructure:"primary"`
	Secondary string `mapstructure:"secondary"`
	Accent    string `mapstructure:"accent"`
	Text      string `mapstructure:"text"`
	Muted     string `mapstructure:"muted"`
	Error     string `mapstructure:"error"`
	Success   string `mapstructure:"success"`
}

type MediaConfig struct {
	Darwin        MediaPlayers `mapstructure:"darwin"`
	Linux         MediaPlayers `mapstructure:"linux"`
	Windows       MediaPlayers `mapstructure:"windows"`
	DefaultOpener string       `mapstructure:"default_opener"`
}

type MediaPlayers struct {
	Image []string `mapstructure:"image"`
	PDF   []string `mapstructure:"pdf"`
}

type KeyConfig struct {
	Modifier string `mapstructure:"modifier"`
}

func defaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		API: APIConfig{
			BaseURL:   "http://localhost:5000",
			UserAgent: "dentalink/1.0",
		},
		Site: SiteConfig{
			BaseURL: "http://localhost:5173",
		},
		Listing: ListingConfig{
			ArticleLimit:        12,
			PageLimit:           24,
			ResearchLimit:       12,
			HomeLatest:          6,
			CategorySourceLimit: 100,
			CategoryCount:       6,
			RelatedLimit:        3,
			Skeletons:           6,
			SummaryLines:        2,
			AbstractLines:       3,
		},
		Database: DatabaseConfig{
			Path:    filepath.Join(homeDir, ".dentalink", "bookmarks.db"),
			Timeout: 1 * time.Second,
		},
		Log: LogConfig{
			Level: "off",
			Path:  filepath.Join(homeDir, ".dentalink", "dentalink.log"),
		},
		UI: UIConfig{
			Colors: UIColors{
				Primary:   "#005CB9",
				Secondary: "#0047A0",
				Accent:    "#60A5FA",
				Text:      "#EAEAEA",
				Muted:     "#94A3B8",
				Error:     "#F87171",
				Success:   "#4ADE80",
			},
			CardWidth:        38,
			WordWrapMaxWidth: 100,
			WordWrapMinWidth: 40,
		},
		Media: MediaConfig{
			Darwin: MediaPlayers{
				Image: []string{"preview", "open"},
				PDF:   []string{"preview", "open"},
			},
			Linux: MediaPlayers{
				Image: []string{"sxiv", "feh", "eog", "xdg-open"},
				PDF:   []string{"zathura", "evince", "xdg-open"},
			},
			Windows: MediaPlayers{
				Image: []string{"start"},
				PDF:   []string{"start"},
			},
			DefaultOpener: getDefaultOpener(),
		},
		Keys: KeyConfig{
			Modifier: "ctrl",
		},
	}
}

func getDefaultOpener() string {
	switch runtime.GOOS {
	case "darwin":
		return "open"
	case "linux":
		return "xdg-open"
	case "windows":
		return "start"
	default:
		return "open"
	}
}

// setDefaults registers every leaf key so that env overrides such as
// DENTALINK_API_BASE_URL resolve through Unmarshal.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("api.base_url", cfg.API.BaseURL)
	v.SetDefault("api.timeout", cfg.API.Timeout)
	v.SetDefault("api.user_agent", cfg.API.UserAgent)

	v.SetDefault("site.base_url", cfg.Site.BaseURL)

	v.SetDefault("listing.article_limit", cfg.Listing.ArticleLimit)
	v.SetDefault("listing.page_limit", cfg.Listing.PageLimit)
	v.SetDefault("listing.research_limit", cfg.Listing.ResearchLimit)
	v.SetDefault("listing.home_latest", cfg.Listing.HomeLatest)
	v.SetDefault("listing.category_source_limit", cfg.Listing.CategorySourceLimit)
	v.SetDefault("listing.category_count", cfg.Listing.CategoryCount)
	v.SetDefault("listing.related_limit", cfg.Listing.RelatedLimit)
	v.SetDefault("listing.skeletons", cfg.Listing.Skeletons)
	v.SetDefault("listing.summary_lines", cfg.Listing.SummaryLines)
	v.SetDefault("listing.abstract_lines", cfg.Listing.AbstractLines)

	v.SetDefault("database.path", cfg.Database.Path)
	v.SetDefault("database.timeout", cfg.Database.Timeout)

	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.path", cfg.Log.Path)

	v.SetDefault("ui.colors.primary", cfg.UI.Colors.Primary)
	v.SetDefault("ui.colors.secondary", cfg.UI.Colors.Secondary)
	v.SetDefault("ui.colors.accent", cfg.UI.Colors.Accent)
	v.SetDefault("ui.colors.text", cfg.UI.Colors.Text)
	v.SetDefault("ui.colors.muted", cfg.UI.Colors.Muted)
	v.SetDefault("ui.colors.error", cfg.UI.Colors.Error)
	v.SetDefault("ui.colors.success", cfg.UI.Colors.Success)
	v.SetDefault("ui.card_width", cfg.UI.CardWidth)
	v.SetDefault("ui.word_wrap_max_width", cfg.UI.WordWrapMaxWidth)
	v.SetDefault("ui.word_wrap_min_width", cfg.UI.WordWrapMinWidth)

	v.SetDefault("media.darwin", cfg.Media.Darwin)
	v.SetDefault("media.linux", cfg.Media.Linux)
	v.SetDefault("media.windows", cfg.Media.Windows)
	v.SetDefault("media.default_opener", cfg.Media.DefaultOpener)

	v.SetDefault("keys.modifier", cfg.Keys.Modifier)
}

// Load reads configuration from configPath, or from the default search
// locations when configPath is empty. A missing file is not an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v, defaultConfig())

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(DefaultDir())
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("DENTALINK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	expandPaths(&config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the values that would otherwise fail late, at the first request.
func (c *Config) Validate() error {
	baseURL, err := validation.NewBaseURLValidator().ValidateAndNormalize(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("api.base_url: %w", err)
	}
	c.API.BaseURL = baseURL

	if c.Site.BaseURL != "" {
		siteURL, err := validation.NewBaseURLValidator().ValidateAndNormalize(c.Site.BaseURL)
		if err != nil {
			return fmt.Errorf("site.base_url: %w", err)
		}
		c.Site.BaseURL = siteURL
	}

	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative")
	}
	if c.Listing.ArticleLimit <= 0 || c.Listing.PageLimit <= 0 {
		return fmt.Errorf("listing limits must be positive")
	}
	if c.Listing.ResearchLimit <= 0 {
		c.Listing.ResearchLimit = defaultConfig().Listing.ResearchLimit
	}
	if c.Listing.Skeletons <= 0 {
		c.Listing.Skeletons = defaultConfig().Listing.Skeletons
	}
	return nil
}

// DefaultDir is where the config file is looked up when no path is given.
func DefaultDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "dentalink")
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) string {
	if path == "" {
		return path
	}

	if len(path) >= 2 && path[:2] == "~/" {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}

	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}

	return path
}

func expandPaths(cfg *Config) {
	cfg.Database.Path = expandPath(cfg.Database.Path)
	cfg.Log.Path = expandPath(cfg.Log.Path)
}

// Save writes config as TOML. Durations are written as strings so the
// file stays readable and round-trips through Load.
func Save(config *Config, path string) error {
	doc := map[string]any{
		"api": map[string]any{
			"base_url":   config.API.BaseURL,
			"timeout":    config.API.Timeout.String(),
			"user_agent": config.API.UserAgent,
		},
		"site": map[string]any{
			"base_url": config.Site.BaseURL,
		},
		"listing": map[string]any{
			"article_limit":         config.Listing.ArticleLimit,
			"page_limit":            config.Listing.PageLimit,
			"research_limit":        config.Listing.ResearchLimit,
			"home_latest":           config.Listing.HomeLatest,
			"category_source_limit": config.Listing.CategorySourceLimit,
			"category_count":        config.Listing.CategoryCount,
			"related_limit":         config.Listing.RelatedLimit,
			"skeletons":             config.Listing.Skeletons,
			"summary_lines":         config.Listing.SummaryLines,
			"abstract_lines":        config.Listing.AbstractLines,
		},
		"database": map[string]any{
			"path":    config.Database.Path,
			"timeout": config.Database.Timeout.String(),
		},
		"log": map[string]any{
			"level": config.Log.Level,
			"path":  config.Log.Path,
		},
		"ui": map[string]any{
			"card_width":          config.UI.CardWidth,
			"word_wrap_max_width": config.UI.WordWrapMaxWidth,
			"word_wrap_min_width": config.UI.WordWrapMinWidth,
			"colors": map[string]any{
				"primary":   config.UI.Colors.Primary,
				"secondary": config.UI.Colors.Secondary,
				"accent":    config.UI.Colors.Accent,
				"text":      config.UI.Colors.Text,
				"muted":     config.UI.Colors.Muted,
				"error":     config.UI.Colors.Error,
				"success":   config.UI.Colors.Success,
			},
		},
		"media": map[string]any{
			"default_opener": config.Media.DefaultOpener,
			"darwin":         playersDoc(config.Media.Darwin),
			"linux":          playersDoc(config.Media.Linux),
			"windows":        playersDoc(config.Media.Windows),
		},
		"keys": map[string]any{
			"modifier": config.Keys.Modifier,
		},
	}

	data, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}

func playersDoc(p MediaPlayers) map[string]any {
	return map[string]any{
		"image": p.Image,
		"pdf":   p.PDF,
	}
}

func GenerateDefaultConfig(path string) error {
	return Save(defaultConfig(), path)
}
