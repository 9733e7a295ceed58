package validation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBaseURLValidator(t *testing.T) {
	v := NewBaseURLValidator()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"local dev server", "http://localhost:5000", "http://localhost:5000", false},
		{"trailing slash trimmed", "https://api.dental.example/", "https://api.dental.example", false},
		{"nested path trimmed", "https://dental.example/content/", "https://dental.example/content", false},
		{"scheme added", "api.dental.example", "https://api.dental.example", false},
		{"private ip allowed", "http://192.168.1.20:5000", "http://192.168.1.20:5000", false},
		{"empty", "", "", true},
		{"ftp rejected", "ftp://files.example", "", true},
		{"script chars", "https://a.example/<script>", "", true},
		{"traversal", "https://a.example/../etc", "", true},
		{"javascript query", "https://a.example/?x=javascript:alert(1)", "", true},
		{"unspecified address", "http://0.0.0.0:5000", "", true},
		{"ipv6 loopback without port", "http://[::1]", "http://[::1]", false},
		{"ipv6 loopback with port", "http://[::1]:5000/", "http://[::1]:5000", false},
		{"ipv6 public", "https://[2001:db8::10]/api", "https://[2001:db8::10]/api", false},
		{"port without host", "http://:5000", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.ValidateAndNormalize(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateAndNormalize(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ValidateAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLinkValidator(t *testing.T) {
	v := NewLinkValidator()

	if _, err := v.ValidateAndNormalize("http://10.0.0.5/paper.pdf"); err == nil {
		t.Error("expected private IP link to be rejected")
	}
	if _, err := v.ValidateAndNormalize("http://[fd00::5]/paper.pdf"); err == nil {
		t.Error("expected private IPv6 link to be rejected")
	}
	if _, err := v.ValidateAndNormalize("http://localhost:5000/uploads/paper.pdf"); err != nil {
		t.Errorf("localhost link rejected: %v", err)
	}
	got, err := v.ValidateAndNormalize("https://cdn.dental.example/files/paper.pdf/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "https://cdn.dental.example/files/paper.pdf/" {
		t.Errorf("link validator should keep the path as-is, got %q", got)
	}
	if _, err := v.ValidateAndNormalize("https://a.example/" + strings.Repeat("x", 5000)); err == nil {
		t.Error("expected overlong link to be rejected")
	}
}

func TestPrepareDataPath(t *testing.T) {
	dir := t.TempDir()

	path, err := PrepareDataPath(filepath.Join(dir, "nested", "deeper", "bookmarks.db"))
	if err != nil {
		t.Fatalf("PrepareDataPath() error = %v", err)
	}
	if info, statErr := os.Stat(filepath.Dir(path)); statErr != nil || !info.IsDir() {
		t.Errorf("parent directory not created for %s", path)
	}

	if _, err := PrepareDataPath(""); err == nil {
		t.Error("expected error for empty path")
	}
	if _, err := PrepareDataPath(dir); err == nil {
		t.Error("expected error when path is a directory")
	}
	if _, err := PrepareDataPath(filepath.Join(dir, "bad\x01name")); err == nil {
		t.Error("expected error for control characters")
	}
}
