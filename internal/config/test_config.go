package config

import "time"

// TestConfig returns a config suitable for testing
func TestConfig() *Config {
	cfg := defaultConfig()
	cfg.API = APIConfig{
		BaseURL:   "http://127.0.0.1:5000",
		Timeout:   5 * time.Second,
		UserAgent: "dentalink-test/1.0",
	}
	cfg.Site.BaseURL = "https://dental.test"
	cfg.Database = DatabaseConfig{
		Path:    ":memory:",
		Timeout: 1 * time.Second,
	}
	cfg.Log = LogConfig{Level: "off"}
	return cfg
}
